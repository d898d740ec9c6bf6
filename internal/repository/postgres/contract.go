package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"carrental-backoffice/internal/domain"
	"carrental-backoffice/internal/repository"
)

type contractRepository struct {
	db *sql.DB
}

func NewContractRepository(db *sql.DB) repository.ContractRepository {
	return &contractRepository{db: db}
}

const contractColumns = `id, reference, booking_id, user_id, car_id, contract_date, status, total_cost, created_on`

func (r *contractRepository) Create(ctx context.Context, c *domain.Contract) error {
	query := `INSERT INTO contracts (reference, booking_id, user_id, car_id, contract_date, status, total_cost, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	return r.db.QueryRowContext(ctx, query, c.Reference, c.BookingID, c.UserID, c.CarID, c.ContractDate, c.Status, c.TotalCost, time.Now()).Scan(&c.ID)
}

func (r *contractRepository) GetByBookingID(ctx context.Context, bookingID int32) (*domain.Contract, error) {
	c := &domain.Contract{}
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE booking_id = $1`
	err := r.db.QueryRowContext(ctx, query, bookingID).
		Scan(&c.ID, &c.Reference, &c.BookingID, &c.UserID, &c.CarID, &c.ContractDate, &c.Status, &c.TotalCost, &c.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *contractRepository) ListByUser(ctx context.Context, userID int32) ([]domain.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE user_id = $1 ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contracts []domain.Contract
	for rows.Next() {
		var c domain.Contract
		if err := rows.Scan(&c.ID, &c.Reference, &c.BookingID, &c.UserID, &c.CarID, &c.ContractDate, &c.Status, &c.TotalCost, &c.CreatedOn); err != nil {
			return nil, err
		}
		contracts = append(contracts, c)
	}
	return contracts, rows.Err()
}
