package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/loicperes14/mobirent/internal/db"
	"github.com/loicperes14/mobirent/internal/entities"
	httperr "github.com/loicperes14/mobirent/internal/errors"
)

type BookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(database *sql.DB) *BookingRepository {
	return &BookingRepository{DB: database}
}

func (r *BookingRepository) Create(b *db.Booking) error {
	query := `
		INSERT INTO bookings (id, user_id, car_id, start_date, end_date, total_price, payment_status, booking_status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at`
	return r.DB.QueryRow(query,
		b.ID, b.UserID, b.CarID, b.StartDate, b.EndDate,
		b.TotalPrice, b.PaymentStatus, b.BookingStatus, b.CreatedAt,
	).Scan(&b.CreatedAt)
}

const bookingSelect = `
	SELECT
		b.id, b.user_id, u.full_name, u.email, COALESCE(u.phone_number, ''),
		c.id, c.brand, c.model, c.price_per_day, COALESCE(c.image_url, ''), l.city,
		b.start_date, b.end_date, b.total_price, b.payment_status, b.booking_status, b.created_at
	FROM bookings b
	JOIN users u ON b.user_id = u.id
	JOIN cars c ON b.car_id = c.id
	JOIN locations l ON c.location_id = l.id`

func scanBooking(row interface{ Scan(...interface{}) error }) (*entities.BookingDetail, error) {
	var b entities.BookingDetail
	err := row.Scan(
		&b.ID, &b.UserID, &b.UserFullName, &b.UserEmail, &b.UserPhone,
		&b.Car.ID, &b.Car.Brand, &b.Car.Model, &b.Car.PricePerDay, &b.Car.ImageURL, &b.Car.City,
		&b.StartDate, &b.EndDate, &b.TotalPrice, &b.PaymentStatus, &b.BookingStatus, &b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) GetDetail(id string) (*entities.BookingDetail, error) {
	query := bookingSelect + `
	WHERE b.id = $1`

	b, err := scanBooking(r.DB.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httperr.ErrNotFound(fmt.Sprintf("booking %s not found", id))
		}
		return nil, fmt.Errorf("error querying booking: %w", err)
	}
	return b, nil
}

func (r *BookingRepository) ListByUser(userID string) ([]entities.BookingDetail, error) {
	query := bookingSelect + `
	WHERE b.user_id = $1
	ORDER BY b.created_at DESC`
	return r.list(query, userID)
}

// ListByRentalService returns the bookings on a fleet operator's own cars,
// optionally filtered by booking status.
func (r *BookingRepository) ListByRentalService(rentalServiceID, status string) ([]entities.BookingDetail, error) {
	query := bookingSelect + `
	WHERE c.rental_service_id = $1`
	args := []interface{}{rentalServiceID}
	if status != "" {
		query += " AND b.booking_status = $" + strconv.Itoa(len(args)+1)
		args = append(args, status)
	}
	query += `
	ORDER BY b.created_at DESC`
	return r.list(query, args...)
}

func (r *BookingRepository) list(query string, args ...interface{}) ([]entities.BookingDetail, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing bookings: %w", err)
	}
	defer rows.Close()

	var bookings []entities.BookingDetail
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning booking: %w", err)
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func (r *BookingRepository) UpdateBookingStatus(id, status string) error {
	result, err := r.DB.Exec(`UPDATE bookings SET booking_status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("error updating booking %s status: %w", id, err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return fmt.Errorf("booking %s not found", id)
	}
	return nil
}

func (r *BookingRepository) UpdatePaymentStatus(id, status string) error {
	result, err := r.DB.Exec(`UPDATE bookings SET payment_status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("error updating booking %s payment status: %w", id, err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return fmt.Errorf("booking %s not found", id)
	}
	return nil
}
