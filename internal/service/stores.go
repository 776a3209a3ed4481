package service

import (
	"time"

	"github.com/loicperes14/mobirent/internal/db"
	"github.com/loicperes14/mobirent/internal/entities"
)

// Storage interfaces the booking and payment workflows depend on. The
// repository package provides the Postgres implementations; tests substitute
// in-memory fakes.

type BookingStore interface {
	Create(b *db.Booking) error
	GetDetail(id string) (*entities.BookingDetail, error)
	ListByUser(userID string) ([]entities.BookingDetail, error)
	ListByRentalService(rentalServiceID, status string) ([]entities.BookingDetail, error)
	UpdateBookingStatus(id, status string) error
	UpdatePaymentStatus(id, status string) error
}

type CarStore interface {
	GetByID(id string) (*entities.CarDetail, error)
	UpdateStatus(id, status string) error
}

type NotificationStore interface {
	Create(n *db.Notification) error
}

type PaymentStore interface {
	Create(p *db.Payment) error
	GetByStripeSessionID(sessionID string) (*db.Payment, error)
	MarkSucceeded(id, reference string, paidAt time.Time) error
}

// Notifier dispatches email/SMS to the renter outside the request path.
type Notifier interface {
	BookingConfirmed(booking entities.BookingDetail)
	PaymentReceived(booking entities.BookingDetail)
}
