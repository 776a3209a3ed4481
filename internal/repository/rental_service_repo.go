package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/loicperes14/mobirent/internal/db"
	httperr "github.com/loicperes14/mobirent/internal/errors"
)

type RentalServiceRepository struct {
	DB *sql.DB
}

func NewRentalServiceRepository(database *sql.DB) *RentalServiceRepository {
	return &RentalServiceRepository{DB: database}
}

func (r *RentalServiceRepository) Create(s *db.RentalService) error {
	query := `
		INSERT INTO rental_services (id, company_name, email, phone_number, city, branch_name, address, website, description, logo_url, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.DB.Exec(query,
		s.ID, s.CompanyName, s.Email, s.PhoneNumber, s.City, s.BranchName,
		s.Address, s.Website, s.Description, s.LogoURL, s.Status, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("error creating rental service: %w", err)
	}
	return nil
}

func (r *RentalServiceRepository) GetByID(id string) (*db.RentalService, error) {
	query := `
		SELECT id, company_name, email, phone_number, city, branch_name, address,
		       COALESCE(website, ''), COALESCE(description, ''), COALESCE(logo_url, ''), status, created_at
		FROM rental_services WHERE id = $1`

	var s db.RentalService
	err := r.DB.QueryRow(query, id).Scan(
		&s.ID, &s.CompanyName, &s.Email, &s.PhoneNumber, &s.City, &s.BranchName,
		&s.Address, &s.Website, &s.Description, &s.LogoURL, &s.Status, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httperr.ErrNotFound(fmt.Sprintf("rental service %s not found", id))
		}
		return nil, fmt.Errorf("error querying rental service: %w", err)
	}
	return &s, nil
}

func (r *RentalServiceRepository) CreatePayoutAccount(p *db.RentalServicePayment) error {
	query := `
		INSERT INTO rental_service_payments (id, rental_service_id, payment_method, phone_number, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.DB.Exec(query, p.ID, p.RentalServiceID, p.PaymentMethod, p.PhoneNumber, p.IsActive, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating payout account: %w", err)
	}
	return nil
}

func (r *RentalServiceRepository) ListPayoutAccounts(rentalServiceID string) ([]db.RentalServicePayment, error) {
	query := `
		SELECT id, rental_service_id, payment_method, phone_number, is_active, created_at
		FROM rental_service_payments
		WHERE rental_service_id = $1
		ORDER BY created_at DESC`

	rows, err := r.DB.Query(query, rentalServiceID)
	if err != nil {
		return nil, fmt.Errorf("error listing payout accounts: %w", err)
	}
	defer rows.Close()

	var accounts []db.RentalServicePayment
	for rows.Next() {
		var p db.RentalServicePayment
		if err := rows.Scan(&p.ID, &p.RentalServiceID, &p.PaymentMethod, &p.PhoneNumber, &p.IsActive, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning payout account: %w", err)
		}
		accounts = append(accounts, p)
	}
	return accounts, rows.Err()
}

func (r *RentalServiceRepository) SetPayoutAccountActive(id, rentalServiceID string, active bool) error {
	query := `UPDATE rental_service_payments SET is_active = $3 WHERE id = $1 AND rental_service_id = $2`
	result, err := r.DB.Exec(query, id, rentalServiceID, active)
	if err != nil {
		return fmt.Errorf("error toggling payout account %s: %w", id, err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return fmt.Errorf("payout account %s not found", id)
	}
	return nil
}

func (r *RentalServiceRepository) DeletePayoutAccount(id, rentalServiceID string) error {
	query := `DELETE FROM rental_service_payments WHERE id = $1 AND rental_service_id = $2`
	result, err := r.DB.Exec(query, id, rentalServiceID)
	if err != nil {
		return fmt.Errorf("error deleting payout account %s: %w", id, err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return fmt.Errorf("payout account %s not found", id)
	}
	return nil
}
