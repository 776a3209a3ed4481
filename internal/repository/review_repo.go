package repository

import (
	"database/sql"
	"fmt"

	"github.com/loicperes14/mobirent/internal/db"
	"github.com/loicperes14/mobirent/internal/entities"
)

type ReviewRepository struct {
	DB *sql.DB
}

func NewReviewRepository(database *sql.DB) *ReviewRepository {
	return &ReviewRepository{DB: database}
}

func (r *ReviewRepository) Create(review *db.Review) error {
	query := `
		INSERT INTO reviews (id, car_id, user_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)`
	_, err := r.DB.Exec(query, review.ID, review.CarID, review.UserID, review.Rating, review.Comment, review.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating review: %w", err)
	}
	return nil
}

func (r *ReviewRepository) ListByCar(carID string) ([]entities.ReviewItem, error) {
	query := `
		SELECT rv.id, u.full_name, rv.rating, COALESCE(rv.comment, ''), rv.created_at
		FROM reviews rv
		JOIN users u ON rv.user_id = u.id
		WHERE rv.car_id = $1
		ORDER BY rv.created_at DESC`

	rows, err := r.DB.Query(query, carID)
	if err != nil {
		return nil, fmt.Errorf("error listing reviews: %w", err)
	}
	defer rows.Close()

	var reviews []entities.ReviewItem
	for rows.Next() {
		var rv entities.ReviewItem
		if err := rows.Scan(&rv.ID, &rv.UserName, &rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning review: %w", err)
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

// RatingSummary returns the average rating and review count for a car.
func (r *ReviewRepository) RatingSummary(carID string) (float64, int, error) {
	var avg sql.NullFloat64
	var count int
	err := r.DB.QueryRow(
		`SELECT AVG(rating), COUNT(*) FROM reviews WHERE car_id = $1`,
		carID,
	).Scan(&avg, &count)
	if err != nil {
		return 0, 0, fmt.Errorf("error querying rating summary: %w", err)
	}
	return avg.Float64, count, nil
}
