package entities

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestCreateBookingRequestValidation(t *testing.T) {
	validate := validator.New()

	// Car and dates are the whole confirm contract; no payment method here.
	req := CreateBookingRequest{
		CarID:     "7f9c24e5-2f4b-4b8d-9d8f-1a2b3c4d5e6f",
		StartDate: "2024-01-01",
		EndDate:   "2024-01-04",
	}
	assert.NoError(t, validate.Struct(req))

	req.EndDate = "04-01-2024"
	assert.Error(t, validate.Struct(req))

	req.EndDate = "2024-01-04"
	req.CarID = "not-a-uuid"
	assert.Error(t, validate.Struct(req))
}
