package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/loicperes14/mobirent/internal/db"
	"github.com/loicperes14/mobirent/internal/entities"
	httperr "github.com/loicperes14/mobirent/internal/errors"
)

type CarRepository struct {
	DB *sql.DB
}

func NewCarRepository(database *sql.DB) *CarRepository {
	return &CarRepository{DB: database}
}

const carSelect = `
	SELECT
		c.id, c.brand, c.model, c.price_per_day, COALESCE(c.image_url, ''), c.status,
		c.rental_service_id, rs.company_name,
		l.id, l.city, l.branch_name, l.address,
		c.created_at
	FROM cars c
	JOIN locations l ON c.location_id = l.id
	JOIN rental_services rs ON c.rental_service_id = rs.id`

func scanCar(row interface{ Scan(...interface{}) error }) (*entities.CarDetail, error) {
	var c entities.CarDetail
	err := row.Scan(
		&c.ID, &c.Brand, &c.Model, &c.PricePerDay, &c.ImageURL, &c.Status,
		&c.RentalServiceID, &c.RentalService,
		&c.Location.ID, &c.Location.City, &c.Location.BranchName, &c.Location.Address,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListAvailable returns every available car joined with its location and
// rental service, newest first. This feeds the landing page through the
// read-through cache.
func (r *CarRepository) ListAvailable() ([]entities.CarDetail, error) {
	query := carSelect + `
	WHERE c.status = $1
	ORDER BY c.created_at DESC`

	rows, err := r.DB.Query(query, db.CarAvailable)
	if err != nil {
		return nil, fmt.Errorf("error listing available cars: %w", err)
	}
	defer rows.Close()

	var cars []entities.CarDetail
	for rows.Next() {
		c, err := scanCar(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning car: %w", err)
		}
		cars = append(cars, *c)
	}
	return cars, rows.Err()
}

func (r *CarRepository) ListByRentalService(rentalServiceID string) ([]entities.CarDetail, error) {
	query := carSelect + `
	WHERE c.rental_service_id = $1
	ORDER BY c.created_at DESC`

	rows, err := r.DB.Query(query, rentalServiceID)
	if err != nil {
		return nil, fmt.Errorf("error listing fleet cars: %w", err)
	}
	defer rows.Close()

	var cars []entities.CarDetail
	for rows.Next() {
		c, err := scanCar(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning car: %w", err)
		}
		cars = append(cars, *c)
	}
	return cars, rows.Err()
}

func (r *CarRepository) GetByID(id string) (*entities.CarDetail, error) {
	query := carSelect + `
	WHERE c.id = $1`

	c, err := scanCar(r.DB.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httperr.ErrNotFound(fmt.Sprintf("car %s not found", id))
		}
		return nil, fmt.Errorf("error querying car: %w", err)
	}
	return c, nil
}

func (r *CarRepository) Create(car *db.Car) error {
	query := `
		INSERT INTO cars (id, rental_service_id, location_id, brand, model, price_per_day, image_url, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9)`
	_, err := r.DB.Exec(query,
		car.ID, car.RentalServiceID, car.LocationID, car.Brand, car.Model,
		car.PricePerDay, car.ImageURL, car.Status, car.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("error creating car: %w", err)
	}
	return nil
}

// UpdateStatus flips a car's availability. The write is unconditional: there
// is no check that the previous status still allowed the transition.
func (r *CarRepository) UpdateStatus(id, status string) error {
	result, err := r.DB.Exec(`UPDATE cars SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("error updating car %s status: %w", id, err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return fmt.Errorf("car %s not found", id)
	}
	return nil
}

func (r *CarRepository) ListLocations() ([]entities.Location, error) {
	rows, err := r.DB.Query(`SELECT id, city, branch_name, address FROM locations ORDER BY city`)
	if err != nil {
		return nil, fmt.Errorf("error listing locations: %w", err)
	}
	defer rows.Close()

	var locations []entities.Location
	for rows.Next() {
		var l entities.Location
		if err := rows.Scan(&l.ID, &l.City, &l.BranchName, &l.Address); err != nil {
			return nil, fmt.Errorf("error scanning location: %w", err)
		}
		locations = append(locations, l)
	}
	return locations, rows.Err()
}

// FindOrCreateLocation reuses an existing branch in the same city or inserts
// a new one, returning its id.
func (r *CarRepository) FindOrCreateLocation(city, branchName, address string) (string, error) {
	var id string
	err := r.DB.QueryRow(
		`SELECT id FROM locations WHERE city = $1 AND branch_name = $2`,
		city, branchName,
	).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("error querying location: %w", err)
	}

	id = uuid.NewString()
	_, err = r.DB.Exec(
		`INSERT INTO locations (id, city, branch_name, address, created_at) VALUES ($1, $2, $3, $4, NOW())`,
		id, city, branchName, address,
	)
	if err != nil {
		return "", fmt.Errorf("error creating location: %w", err)
	}
	return id, nil
}
