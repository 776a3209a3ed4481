package entities

import "time"

type NotificationItem struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// BookingEmailData feeds the confirmation/payment email bodies.
type BookingEmailData struct {
	UserName           string
	BookingCode        string
	CarBrand           string
	CarModel           string
	StartDateFormatted string
	EndDateFormatted   string
	TotalFormatted     string
	Status             string
	CurrentYear        int
}
