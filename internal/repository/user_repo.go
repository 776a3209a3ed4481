package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/loicperes14/mobirent/internal/db"
)

// UserRepository persists customer and fleet-operator accounts.
type UserRepository interface {
	Create(u *db.User) error
	GetByEmail(email string) (*db.User, error)
	GetByID(id string) (*db.User, error)
	UpdateProfile(id, fullName, phoneNumber, location, language string) error
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(database *sql.DB) UserRepository {
	return &userRepository{db: database}
}

func (r *userRepository) Create(u *db.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, full_name, phone_number, location, language, role, rental_service_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), $10)`
	_, err := r.db.Exec(query,
		u.ID, u.Email, u.PasswordHash, u.FullName, u.PhoneNumber,
		u.Location, u.Language, u.Role, u.RentalServiceID, u.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("error creating user: %w", err)
	}
	return nil
}

func (r *userRepository) GetByEmail(email string) (*db.User, error) {
	return r.getBy("email", email)
}

func (r *userRepository) GetByID(id string) (*db.User, error) {
	return r.getBy("id", id)
}

func (r *userRepository) getBy(column, value string) (*db.User, error) {
	query := fmt.Sprintf(`
		SELECT id, email, password_hash, full_name, phone_number, location, language, role, COALESCE(rental_service_id::text, ''), created_at
		FROM users WHERE %s = $1`, column)

	var u db.User
	err := r.db.QueryRow(query, value).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.PhoneNumber,
		&u.Location, &u.Language, &u.Role, &u.RentalServiceID, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying user by %s: %w", column, err)
	}
	return &u, nil
}

func (r *userRepository) UpdateProfile(id, fullName, phoneNumber, location, language string) error {
	query := `
		UPDATE users
		SET full_name = $2, phone_number = $3, location = $4, language = $5
		WHERE id = $1`
	result, err := r.db.Exec(query, id, fullName, phoneNumber, location, language)
	if err != nil {
		return fmt.Errorf("error updating profile for user %s: %w", id, err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return fmt.Errorf("user %s not found", id)
	}
	return nil
}
