package repository

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/lib/pq"

	"github.com/loicperes14/mobirent/internal/db"
)

// FinishedBooking pairs a booking past its end date with the car it holds.
type FinishedBooking struct {
	BookingID string
	CarID     string
}

type JobRepository struct {
	DB *sql.DB
}

func NewJobRepository(database *sql.DB) *JobRepository {
	return &JobRepository{DB: database}
}

// GetFinishedBookings returns paid, confirmed bookings whose end date has
// passed, with the car each one holds.
func (r *JobRepository) GetFinishedBookings() ([]FinishedBooking, error) {
	query := `
		SELECT id, car_id FROM bookings
		WHERE booking_status = $1 AND payment_status = $2 AND end_date < NOW()`
	rows, err := r.DB.Query(query, db.BookingConfirmed, db.PaymentPaid)
	if err != nil {
		return nil, fmt.Errorf("error querying finished bookings: %w", err)
	}
	defer rows.Close()

	var finished []FinishedBooking
	for rows.Next() {
		var f FinishedBooking
		if err := rows.Scan(&f.BookingID, &f.CarID); err != nil {
			return nil, fmt.Errorf("error scanning finished booking: %w", err)
		}
		finished = append(finished, f)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}
	return finished, nil
}

// UpdateBookingStatuses sets a batch of bookings to the given status.
func (r *JobRepository) UpdateBookingStatuses(ids []string, newStatus string) error {
	if len(ids) == 0 {
		return nil
	}
	query := `UPDATE bookings SET booking_status = $1 WHERE id = ANY($2)`
	result, err := r.DB.Exec(query, newStatus, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("error updating booking statuses: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Printf("Could not get rows affected: %v", err)
	} else {
		log.Printf("Updated status for %d bookings to '%s'", rowsAffected, newStatus)
	}
	return nil
}

// ReleaseCars puts a batch of cars back to available.
func (r *JobRepository) ReleaseCars(carIDs []string) error {
	if len(carIDs) == 0 {
		return nil
	}
	query := `UPDATE cars SET status = $1 WHERE id = ANY($2) AND status = $3`
	_, err := r.DB.Exec(query, db.CarAvailable, pq.Array(carIDs), db.CarBooked)
	if err != nil {
		return fmt.Errorf("error releasing cars: %w", err)
	}
	return nil
}
