package entities

import "time"

type PayBookingRequest struct {
	Method      string `json:"method" validate:"required,oneof=mtn_momo orange_money card"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,e164"`
}

type PaymentResult struct {
	PaymentID            string `json:"payment_id"`
	Status               string `json:"status"`
	TransactionReference string `json:"transaction_reference,omitempty"`
	// RedirectURL is set for checkout-based methods (card): the payer
	// completes the charge there and a webhook finalizes the booking.
	RedirectURL string `json:"redirect_url,omitempty"`
	Message     string `json:"message"`
}

type PaymentDetail struct {
	ID                   string    `json:"id"`
	BookingID            string    `json:"booking_id"`
	Method               string    `json:"method"`
	Amount               int       `json:"amount"`
	TransactionReference string    `json:"transaction_reference,omitempty"`
	Status               string    `json:"status"`
	PaidAt               time.Time `json:"paid_at,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
	CarBrand             string    `json:"car_brand,omitempty"`
	CarModel             string    `json:"car_model,omitempty"`
}

type PayoutAccount struct {
	ID            string    `json:"id"`
	PaymentMethod string    `json:"payment_method"`
	PhoneNumber   string    `json:"phone_number"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

type PayoutAccountRequest struct {
	PaymentMethod string `json:"payment_method" validate:"required,oneof=mtn_momo orange_money"`
	PhoneNumber   string `json:"phone_number" validate:"required"`
}
