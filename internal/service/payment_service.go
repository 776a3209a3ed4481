package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/loicperes14/mobirent/internal/db"
	"github.com/loicperes14/mobirent/internal/entities"
	httperr "github.com/loicperes14/mobirent/internal/errors"
)

// ChargeRequest describes a charge handed to a payment processor.
type ChargeRequest struct {
	BookingID   string
	Method      string
	Amount      int
	Description string
	Email       string
	PhoneNumber string
}

// ChargeOutcome is what a processor reports back. Status is one of the
// payment transaction statuses: success for synchronous processors,
// initiated for checkout-based ones that finalize through a webhook.
type ChargeOutcome struct {
	Status      string
	Reference   string
	SessionID   string
	RedirectURL string
	PaidAt      time.Time
}

// PaymentProcessor charges a booking through one payment method. The booking
// workflow depends only on this interface, so a real gateway can replace the
// simulated one without changing the workflow.
type PaymentProcessor interface {
	Charge(ctx context.Context, req ChargeRequest) (*ChargeOutcome, error)
}

// PaymentService runs the payment step that follows booking confirmation.
type PaymentService struct {
	payments      PaymentStore
	bookings      BookingStore
	notifications NotificationStore
	notifier      Notifier
	processors    map[string]PaymentProcessor
	now           func() time.Time
}

func NewPaymentService(payments PaymentStore, bookings BookingStore, notifications NotificationStore, notifier Notifier, processors map[string]PaymentProcessor) *PaymentService {
	return &PaymentService{
		payments:      payments,
		bookings:      bookings,
		notifications: notifications,
		notifier:      notifier,
		processors:    processors,
		now:           time.Now,
	}
}

// PayBooking charges a pending booking through the processor registered for
// the chosen method. On a success outcome it records the payment, marks the
// booking paid and notifies the renter; an initiated outcome records the
// payment and hands back the redirect URL for the payer to finish there.
func (s *PaymentService) PayBooking(ctx context.Context, userID, bookingID string, req entities.PayBookingRequest) (*entities.PaymentResult, error) {
	booking, err := s.bookings.GetDetail(bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, httperr.ErrForbidden("booking belongs to another account")
	}
	if booking.PaymentStatus == db.PaymentPaid {
		return nil, httperr.ErrConflict("booking is already paid")
	}

	processor, ok := s.processors[req.Method]
	if !ok {
		return nil, httperr.ErrBadRequest(fmt.Sprintf("unsupported payment method: %s", req.Method))
	}

	outcome, err := processor.Charge(ctx, ChargeRequest{
		BookingID:   booking.ID,
		Method:      req.Method,
		Amount:      booking.TotalPrice,
		Description: fmt.Sprintf("Rental of %s %s", booking.Car.Brand, booking.Car.Model),
		Email:       booking.UserEmail,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		return nil, fmt.Errorf("error charging booking %s: %w", bookingID, err)
	}

	payment := &db.Payment{
		ID:                   uuid.NewString(),
		BookingID:            booking.ID,
		Method:               req.Method,
		Amount:               booking.TotalPrice,
		TransactionReference: outcome.Reference,
		Status:               outcome.Status,
		StripeSessionID:      outcome.SessionID,
		PaidAt:               outcome.PaidAt,
		CreatedAt:            s.now().UTC(),
	}
	if err := s.payments.Create(payment); err != nil {
		return nil, err
	}

	message := "Payment is being processed."
	if outcome.Status == db.TxnSuccess {
		if err := s.finalize(payment.ID, booking); err != nil {
			return nil, err
		}
		message = "Payment successful! Your booking is confirmed."
	}

	return &entities.PaymentResult{
		PaymentID:            payment.ID,
		Status:               outcome.Status,
		TransactionReference: outcome.Reference,
		RedirectURL:          outcome.RedirectURL,
		Message:              message,
	}, nil
}

// FinalizeCardPayment completes a checkout-based payment when the gateway
// webhook reports the session as paid.
func (s *PaymentService) FinalizeCardPayment(sessionID, gatewayReference string) error {
	payment, err := s.payments.GetByStripeSessionID(sessionID)
	if err != nil {
		return err
	}
	booking, err := s.bookings.GetDetail(payment.BookingID)
	if err != nil {
		return err
	}
	// The booking's payment status is the idempotency key: a retry after a
	// partial failure must still mark the booking paid, while a retry after
	// a complete run is a no-op.
	if booking.PaymentStatus == db.PaymentPaid {
		return nil
	}

	if payment.Status != db.TxnSuccess {
		if err := s.payments.MarkSucceeded(payment.ID, gatewayReference, s.now().UTC()); err != nil {
			return err
		}
	}
	return s.finalize(payment.ID, booking)
}

// finalize marks the booking paid and notifies the renter. The notification
// insert is best effort, mirroring the rest of the side-effect chain.
func (s *PaymentService) finalize(paymentID string, booking *entities.BookingDetail) error {
	if err := s.bookings.UpdatePaymentStatus(booking.ID, db.PaymentPaid); err != nil {
		return fmt.Errorf("payment %s recorded but booking not marked paid: %w", paymentID, err)
	}

	notification := &db.Notification{
		ID:     uuid.NewString(),
		UserID: booking.UserID,
		Message: fmt.Sprintf("Payment successful! Your booking for %s %s is confirmed.",
			booking.Car.Brand, booking.Car.Model),
		CreatedAt: s.now().UTC(),
	}
	if err := s.notifications.Create(notification); err != nil {
		log.Printf("ALERT: payment %s succeeded but notification failed: %v", paymentID, err)
	}

	if s.notifier != nil {
		s.notifier.PaymentReceived(*booking)
	}
	return nil
}

// MobileMoneyProcessor simulates a mobile-money charge: it waits a fixed
// processing delay, then reports success with a time-based transaction
// reference. No provider is contacted.
type MobileMoneyProcessor struct {
	Delay time.Duration
	now   func() time.Time
}

func NewMobileMoneyProcessor(delay time.Duration) *MobileMoneyProcessor {
	return &MobileMoneyProcessor{Delay: delay, now: time.Now}
}

func (p *MobileMoneyProcessor) Charge(ctx context.Context, req ChargeRequest) (*ChargeOutcome, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(p.Delay):
	}

	now := p.now()
	return &ChargeOutcome{
		Status:    db.TxnSuccess,
		Reference: fmt.Sprintf("TXN-%d", now.UnixMilli()),
		PaidAt:    now,
	}, nil
}
