package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"carrental-backoffice/internal/domain"
	"carrental-backoffice/internal/repository"
)

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

const bookingColumns = `id, user_id, car_id, start_date, end_date, status, rental_days, total_cost, created_on, updated_on`

func scanBooking(row interface{ Scan(...interface{}) error }, b *domain.Booking) error {
	return row.Scan(&b.ID, &b.UserID, &b.CarID, &b.StartDate, &b.EndDate, &b.Status, &b.RentalDays, &b.TotalCost, &b.CreatedOn, &b.UpdatedOn)
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	query := `INSERT INTO bookings (user_id, car_id, start_date, end_date, status, rental_days, total_cost, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, b.UserID, b.CarID, b.StartDate, b.EndDate, b.Status, b.RentalDays, b.TotalCost, now, now).Scan(&b.ID)
}

func (r *bookingRepository) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	b := &domain.Booking{}
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	err := scanBooking(r.db.QueryRowContext(ctx, query, id), b)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Kind: "booking", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *bookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	query := `UPDATE bookings SET status=$1, updated_on=$2 WHERE id=$3`
	_, err := r.db.ExecContext(ctx, query, b.Status, time.Now(), b.ID)
	return err
}

func (r *bookingRepository) List(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE 1=1`
	var args []interface{}

	if filter.UserID != 0 {
		args = append(args, filter.UserID)
		query += fmt.Sprintf(" AND user_id = $%d", len(args))
	}
	if filter.CarID != 0 {
		args = append(args, filter.CarID)
		query += fmt.Sprintf(" AND car_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if !filter.StartDate.IsZero() {
		args = append(args, filter.StartDate)
		query += fmt.Sprintf(" AND start_date >= $%d", len(args))
	}
	if !filter.EndDate.IsZero() {
		args = append(args, filter.EndDate)
		query += fmt.Sprintf(" AND end_date <= $%d", len(args))
	}
	query += ` ORDER BY created_on DESC`

	return r.queryBookings(ctx, query, args...)
}

func (r *bookingRepository) ListByCar(ctx context.Context, carID int32) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE car_id = $1 ORDER BY start_date`
	return r.queryBookings(ctx, query, carID)
}

func (r *bookingRepository) ListByUser(ctx context.Context, userID int32) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = $1 ORDER BY created_on DESC`
	return r.queryBookings(ctx, query, userID)
}

func (r *bookingRepository) ListByOwner(ctx context.Context, ownerID int32) ([]domain.Booking, error) {
	query := `SELECT b.id, b.user_id, b.car_id, b.start_date, b.end_date, b.status, b.rental_days, b.total_cost, b.created_on, b.updated_on
	          FROM bookings b JOIN cars c ON c.id = b.car_id
	          WHERE c.owner_id = $1 ORDER BY b.created_on DESC`
	return r.queryBookings(ctx, query, ownerID)
}

func (r *bookingRepository) CountActive(ctx context.Context) (int32, error) {
	var count int32
	query := `SELECT count(*) FROM bookings WHERE status IN ($1, $2)`
	err := r.db.QueryRowContext(ctx, query, domain.BookingStatusPending, domain.BookingStatusConfirmed).Scan(&count)
	return count, err
}

func (r *bookingRepository) Summary(ctx context.Context, recentLimit int32) (*domain.BookingSummary, error) {
	summary := &domain.BookingSummary{}

	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM bookings`).Scan(&summary.TotalBookings); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `SELECT status, count(*), coalesce(sum(total_cost), 0) FROM bookings GROUP BY status ORDER BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var sc domain.StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count, &sc.TotalRevenue); err != nil {
			return nil, err
		}
		summary.BookingsByStatus = append(summary.BookingsByStatus, sc)
		summary.TotalRevenue += sc.TotalRevenue
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	recent, err := r.queryBookings(ctx, `SELECT `+bookingColumns+` FROM bookings ORDER BY created_on DESC LIMIT $1`, recentLimit)
	if err != nil {
		return nil, err
	}
	summary.RecentBookings = recent
	return summary, nil
}

func (r *bookingRepository) queryBookings(ctx context.Context, query string, args ...interface{}) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		var b domain.Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}
