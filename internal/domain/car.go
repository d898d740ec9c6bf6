package domain

import "time"

type CarStatus string

const (
	CarStatusAvailable   CarStatus = "AVAILABLE"
	CarStatusRented      CarStatus = "RENTED"
	CarStatusMaintenance CarStatus = "MAINTENANCE"
)

// ValidCarStatus reports whether s is one of the known car statuses.
func ValidCarStatus(s string) bool {
	switch CarStatus(s) {
	case CarStatusAvailable, CarStatusRented, CarStatusMaintenance:
		return true
	}
	return false
}

type Car struct {
	ID           int32     `json:"id"`
	OwnerID      int32     `json:"owner_id"`
	Owner        *User     `json:"owner,omitempty"` // Populated when fetching car details
	Brand        string    `json:"brand"`
	Model        string    `json:"model"`
	LicensePlate string    `json:"license_plate"`
	PricePerDay  float64   `json:"price_per_day"`
	Status       CarStatus `json:"status"`
	Approved     bool      `json:"approved"`
	CreatedOn    time.Time `json:"created_on"`
	UpdatedOn    time.Time `json:"updated_on"`
}

// CarFilter narrows car listings. Zero values mean "no constraint".
type CarFilter struct {
	Status   string
	MinPrice float64
	MaxPrice float64
	Name     string // matched against brand and model, case-insensitive
}
