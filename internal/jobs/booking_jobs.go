package jobs

import (
	"context"
	"time"

	"carrental-backoffice/internal/logger"
)

// CompleteOverdueBookings completes CONFIRMED bookings whose end date has
// passed, releasing their cars through the normal lifecycle transition. This
// also heals cars stuck in RENTED after a partial write, as long as the
// booking row exists.
func (jr *JobRunner) CompleteOverdueBookings() {
	jr.runWithRecovery("CompleteOverdueBookings", func() {
		ctx := context.Background()

		query := `SELECT id, end_date FROM bookings WHERE status = 'CONFIRMED' AND end_date < $1`
		rows, err := jr.db.QueryContext(ctx, query, time.Now())
		if err != nil {
			logger.Error("Failed to query overdue bookings", "error", err)
			return
		}
		defer rows.Close()

		var overdue []int32
		for rows.Next() {
			var id int32
			var endDate time.Time
			if err := rows.Scan(&id, &endDate); err != nil {
				logger.Error("Failed to scan overdue booking", "error", err)
				continue
			}
			overdue = append(overdue, id)
		}
		if err := rows.Err(); err != nil {
			logger.Error("Error iterating overdue bookings", "error", err)
			return
		}

		completed := 0
		for _, id := range overdue {
			if _, _, err := jr.bookingSvc.UpdateBookingStatus(ctx, id, "COMPLETED"); err != nil {
				logger.Error("Failed to complete overdue booking", "booking_id", id, "error", err)
				continue
			}
			completed++
			logger.Debug("Completed overdue booking", "booking_id", id)
		}

		logger.Info("Completed overdue bookings", "found", len(overdue), "completed", completed)
	})
}
