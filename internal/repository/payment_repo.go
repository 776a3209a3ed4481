package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/loicperes14/mobirent/internal/db"
	"github.com/loicperes14/mobirent/internal/entities"
	httperr "github.com/loicperes14/mobirent/internal/errors"
)

type PaymentRepository struct {
	DB *sql.DB
}

func NewPaymentRepository(database *sql.DB) *PaymentRepository {
	return &PaymentRepository{DB: database}
}

func (r *PaymentRepository) Create(p *db.Payment) error {
	var paidAt interface{}
	if !p.PaidAt.IsZero() {
		paidAt = p.PaidAt
	}
	query := `
		INSERT INTO payments (id, booking_id, method, amount, transaction_reference, status, stripe_session_id, paid_at, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, NULLIF($7, ''), $8, $9)`
	_, err := r.DB.Exec(query,
		p.ID, p.BookingID, p.Method, p.Amount, p.TransactionReference,
		p.Status, p.StripeSessionID, paidAt, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("error creating payment: %w", err)
	}
	return nil
}

const paymentSelect = `
	SELECT
		p.id, p.booking_id, p.method, p.amount, COALESCE(p.transaction_reference, ''),
		p.status, COALESCE(p.paid_at, 'epoch'::timestamptz), p.created_at,
		c.brand, c.model
	FROM payments p
	JOIN bookings b ON p.booking_id = b.id
	JOIN cars c ON b.car_id = c.id`

func (r *PaymentRepository) ListByUser(userID string) ([]entities.PaymentDetail, error) {
	query := paymentSelect + `
	WHERE b.user_id = $1
	ORDER BY p.created_at DESC`
	return r.list(query, userID)
}

func (r *PaymentRepository) ListByRentalService(rentalServiceID string) ([]entities.PaymentDetail, error) {
	query := paymentSelect + `
	WHERE c.rental_service_id = $1
	ORDER BY p.created_at DESC`
	return r.list(query, rentalServiceID)
}

func (r *PaymentRepository) list(query string, args ...interface{}) ([]entities.PaymentDetail, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing payments: %w", err)
	}
	defer rows.Close()

	var payments []entities.PaymentDetail
	for rows.Next() {
		var p entities.PaymentDetail
		err := rows.Scan(
			&p.ID, &p.BookingID, &p.Method, &p.Amount, &p.TransactionReference,
			&p.Status, &p.PaidAt, &p.CreatedAt, &p.CarBrand, &p.CarModel,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// GetByStripeSessionID resolves the pending card payment a Stripe webhook
// event refers to.
func (r *PaymentRepository) GetByStripeSessionID(sessionID string) (*db.Payment, error) {
	query := `
		SELECT id, booking_id, method, amount, COALESCE(transaction_reference, ''), status,
		       COALESCE(stripe_session_id, ''), COALESCE(paid_at, 'epoch'::timestamptz), created_at
		FROM payments WHERE stripe_session_id = $1`

	var p db.Payment
	err := r.DB.QueryRow(query, sessionID).Scan(
		&p.ID, &p.BookingID, &p.Method, &p.Amount, &p.TransactionReference,
		&p.Status, &p.StripeSessionID, &p.PaidAt, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httperr.ErrNotFound(fmt.Sprintf("payment for session %s not found", sessionID))
		}
		return nil, fmt.Errorf("error querying payment by session: %w", err)
	}
	return &p, nil
}

// MarkSucceeded finalizes a payment with its gateway reference and paid-at
// timestamp.
func (r *PaymentRepository) MarkSucceeded(id, reference string, paidAt time.Time) error {
	query := `
		UPDATE payments
		SET status = $2, transaction_reference = $3, paid_at = $4
		WHERE id = $1`
	result, err := r.DB.Exec(query, id, db.TxnSuccess, reference, paidAt)
	if err != nil {
		return fmt.Errorf("error marking payment %s succeeded: %w", id, err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return fmt.Errorf("payment %s not found", id)
	}
	return nil
}
