package entities

import "time"

// CreateBookingRequest confirms a booking. The payment method is not part of
// the confirm call: it is supplied to the payment endpoint afterwards.
type CreateBookingRequest struct {
	CarID     string `json:"car_id" validate:"required,uuid4"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

type CreateBookingResponse struct {
	BookingID     string `json:"booking_id"`
	TotalDays     int    `json:"total_days"`
	TotalPrice    int    `json:"total_price"`
	PaymentStatus string `json:"payment_status"`
	BookingStatus string `json:"booking_status"`
	Message       string `json:"message"`
}

// BookingDetail is a booking row joined with its car and location.
type BookingDetail struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	UserFullName  string     `json:"user_full_name,omitempty"`
	UserEmail     string     `json:"user_email,omitempty"`
	UserPhone     string     `json:"user_phone,omitempty"`
	Car           CarSummary `json:"car"`
	StartDate     time.Time  `json:"start_date"`
	EndDate       time.Time  `json:"end_date"`
	TotalPrice    int        `json:"total_price"`
	PaymentStatus string     `json:"payment_status"`
	BookingStatus string     `json:"booking_status"`
	CreatedAt     time.Time  `json:"created_at"`
}

type BookingsList struct {
	Total    int             `json:"total"`
	Bookings []BookingDetail `json:"bookings"`
}
