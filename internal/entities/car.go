package entities

import "time"

type CarSummary struct {
	ID          string `json:"id"`
	Brand       string `json:"brand"`
	Model       string `json:"model"`
	PricePerDay int    `json:"price_per_day"`
	ImageURL    string `json:"image_url,omitempty"`
	City        string `json:"city,omitempty"`
}

// CarDetail is a car row joined with its location and rental service.
type CarDetail struct {
	ID              string    `json:"id"`
	Brand           string    `json:"brand"`
	Model           string    `json:"model"`
	PricePerDay     int       `json:"price_per_day"`
	ImageURL        string    `json:"image_url,omitempty"`
	Status          string    `json:"status"`
	RentalServiceID string    `json:"rental_service_id"`
	RentalService   string    `json:"rental_service,omitempty"`
	Location        Location  `json:"location"`
	Rating          float64   `json:"rating,omitempty"`
	ReviewCount     int       `json:"review_count,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type Location struct {
	ID         string `json:"id"`
	City       string `json:"city"`
	BranchName string `json:"branch_name"`
	Address    string `json:"address"`
}

type AddCarRequest struct {
	Brand       string `json:"brand" validate:"required"`
	Model       string `json:"model" validate:"required"`
	PricePerDay int    `json:"price_per_day" validate:"required,gt=0"`
	ImageURL    string `json:"image_url" validate:"omitempty,url"`
	Status      string `json:"status" validate:"omitempty,oneof=available booked maintenance"`
	City        string `json:"city" validate:"required"`
	BranchName  string `json:"branch_name" validate:"required"`
	Address     string `json:"address" validate:"required"`
}

type UpdateCarStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=available booked maintenance"`
}
