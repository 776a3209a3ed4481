package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/loicperes14/mobirent/internal/cache"
	"github.com/loicperes14/mobirent/internal/db"
	"github.com/loicperes14/mobirent/internal/entities"
	httperr "github.com/loicperes14/mobirent/internal/errors"
	"github.com/loicperes14/mobirent/internal/repository"
)

// Landing-page cache keys and freshness windows.
const (
	cacheKeyHomeCars  = "homepage_cars"
	cacheKeyLocations = "locations"

	homeCarsTTL  = 2 * time.Minute
	locationsTTL = 10 * time.Minute
)

// CarService serves the catalog. Landing-page reads go through the
// read-through cache; fleet mutations invalidate the affected keys.
type CarService struct {
	repo    *repository.CarRepository
	reviews *repository.ReviewRepository
	cache   *cache.Cache
}

func NewCarService(repo *repository.CarRepository, reviews *repository.ReviewRepository, c *cache.Cache) *CarService {
	return &CarService{repo: repo, reviews: reviews, cache: c}
}

func (s *CarService) ListAvailableCars(ctx context.Context) ([]entities.CarDetail, error) {
	return cache.Fetch(ctx, s.cache, cacheKeyHomeCars, homeCarsTTL,
		func(ctx context.Context) ([]entities.CarDetail, error) {
			return s.repo.ListAvailable()
		})
}

func (s *CarService) ListLocations(ctx context.Context) ([]entities.Location, error) {
	return cache.Fetch(ctx, s.cache, cacheKeyLocations, locationsTTL,
		func(ctx context.Context) ([]entities.Location, error) {
			return s.repo.ListLocations()
		})
}

func (s *CarService) GetCar(id string) (*entities.CarDetail, error) {
	car, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if avg, count, err := s.reviews.RatingSummary(id); err == nil {
		car.Rating = avg
		car.ReviewCount = count
	}
	return car, nil
}

func (s *CarService) ListReviews(carID string) ([]entities.ReviewItem, error) {
	return s.reviews.ListByCar(carID)
}

func (s *CarService) AddReview(userID, carID string, req entities.CreateReviewRequest) error {
	if _, err := s.repo.GetByID(carID); err != nil {
		return err
	}
	return s.reviews.Create(&db.Review{
		ID:        uuid.NewString(),
		CarID:     carID,
		UserID:    userID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: time.Now().UTC(),
	})
}

func (s *CarService) ListFleet(rentalServiceID string) ([]entities.CarDetail, error) {
	return s.repo.ListByRentalService(rentalServiceID)
}

// AddCar registers a car on the operator's fleet, reusing or creating the
// branch location, and invalidates the landing-page caches.
func (s *CarService) AddCar(ctx context.Context, rentalServiceID string, req entities.AddCarRequest) (*entities.CarDetail, error) {
	locationID, err := s.repo.FindOrCreateLocation(req.City, req.BranchName, req.Address)
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = db.CarAvailable
	}

	car := &db.Car{
		ID:              uuid.NewString(),
		RentalServiceID: rentalServiceID,
		LocationID:      locationID,
		Brand:           req.Brand,
		Model:           req.Model,
		PricePerDay:     req.PricePerDay,
		ImageURL:        req.ImageURL,
		Status:          status,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.repo.Create(car); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, cacheKeyHomeCars)
	s.cache.Invalidate(ctx, cacheKeyLocations)

	return s.repo.GetByID(car.ID)
}

// UpdateCarStatus flips availability of a car on the operator's own fleet.
func (s *CarService) UpdateCarStatus(ctx context.Context, rentalServiceID, carID, status string) error {
	car, err := s.repo.GetByID(carID)
	if err != nil {
		return err
	}
	if car.RentalServiceID != rentalServiceID {
		return httperr.ErrForbidden("car is not on this fleet")
	}
	if err := s.repo.UpdateStatus(carID, status); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, cacheKeyHomeCars)
	return nil
}
