package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCompleted BookingStatus = "COMPLETED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// ValidBookingStatus reports whether s is one of the known booking statuses.
func ValidBookingStatus(s string) bool {
	switch BookingStatus(s) {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are allowed from s.
func (s BookingStatus) Terminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled
}

// CanTransitionTo reports whether the edge s -> to exists in the booking
// state machine: PENDING -> {CONFIRMED, CANCELLED},
// CONFIRMED -> {COMPLETED, CANCELLED}.
func (s BookingStatus) CanTransitionTo(to BookingStatus) bool {
	switch s {
	case BookingStatusPending:
		return to == BookingStatusConfirmed || to == BookingStatusCancelled
	case BookingStatusConfirmed:
		return to == BookingStatusCompleted || to == BookingStatusCancelled
	}
	return false
}

type Booking struct {
	ID        int32         `json:"id"`
	UserID    int32         `json:"user_id"`
	CarID     int32         `json:"car_id"`
	User      *User         `json:"user,omitempty"` // Populated when fetching booking details
	Car       *Car          `json:"car,omitempty"`
	StartDate time.Time     `json:"start_date"`
	EndDate   time.Time     `json:"end_date"`
	Status    BookingStatus `json:"status"`
	// RentalDays and TotalCost are computed once at creation from the car's
	// price per day and never recomputed afterwards.
	RentalDays int32     `json:"rental_days"`
	TotalCost  float64   `json:"total_cost"`
	CreatedOn  time.Time `json:"created_on"`
	UpdatedOn  time.Time `json:"updated_on"`
}

// BookingFilter narrows booking listings. Zero values mean "no constraint".
type BookingFilter struct {
	UserID    int32
	CarID     int32
	Status    string
	StartDate time.Time // bookings starting on or after
	EndDate   time.Time // bookings ending on or before
}

// StatusCount is one row of the per-status booking summary.
type StatusCount struct {
	Status       BookingStatus `json:"status"`
	Count        int32         `json:"count"`
	TotalRevenue float64       `json:"total_revenue"`
}

// BookingSummary is the aggregate view used by the admin dashboard.
type BookingSummary struct {
	TotalBookings    int32         `json:"total_bookings"`
	BookingsByStatus []StatusCount `json:"bookings_by_status"`
	TotalRevenue     float64       `json:"total_revenue"`
	RecentBookings   []Booking     `json:"recent_bookings"`
}
