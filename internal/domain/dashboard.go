package domain

// DashboardStats is the headline view of the back office landing page.
type DashboardStats struct {
	TotalCars      int32     `json:"total_cars"`
	TotalUsers     int32     `json:"total_users"`
	ActiveBookings int32     `json:"active_bookings"`
	TotalRevenue   float64   `json:"total_revenue"`
	RecentBookings []Booking `json:"recent_bookings"`
}
