package domain

import "time"

type ContractStatus string

const (
	ContractStatusActive    ContractStatus = "ACTIVE"
	ContractStatusCompleted ContractStatus = "COMPLETED"
	ContractStatusCancelled ContractStatus = "CANCELLED"
)

// Contract is created exactly once, when a booking is confirmed. It snapshots
// the booking's total cost and is immutable afterwards.
type Contract struct {
	ID           int32          `json:"id"`
	Reference    string         `json:"reference"` // human-facing contract number
	BookingID    int32          `json:"booking_id"`
	UserID       int32          `json:"user_id"`
	CarID        int32          `json:"car_id"`
	ContractDate time.Time      `json:"contract_date"`
	Status       ContractStatus `json:"status"`
	TotalCost    float64        `json:"total_cost"`
	CreatedOn    time.Time      `json:"created_on"`
}
