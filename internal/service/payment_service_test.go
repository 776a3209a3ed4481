package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loicperes14/mobirent/internal/db"
	"github.com/loicperes14/mobirent/internal/entities"
	httperr "github.com/loicperes14/mobirent/internal/errors"
)

func pendingBooking() *entities.BookingDetail {
	return &entities.BookingDetail{
		ID:            "b-1",
		UserID:        "user-1",
		UserEmail:     "renter@example.com",
		Car:           entities.CarSummary{ID: "car-1", Brand: "Toyota", Model: "Corolla"},
		TotalPrice:    75000,
		PaymentStatus: db.PaymentPending,
		BookingStatus: db.BookingConfirmed,
	}
}

func TestPayBookingSuccess(t *testing.T) {
	bookings := newFakeBookingStore()
	bookings.details["b-1"] = pendingBooking()
	payments := newFakePaymentStore()
	notifications := &fakeNotificationStore{}
	notifier := &fakeNotifier{}
	processor := &fakeProcessor{outcome: &ChargeOutcome{
		Status:    db.TxnSuccess,
		Reference: "TXN-1700000000000",
		PaidAt:    time.Now(),
	}}

	svc := NewPaymentService(payments, bookings, notifications, notifier,
		map[string]PaymentProcessor{db.MethodMTNMoMo: processor})

	result, err := svc.PayBooking(context.Background(), "user-1", "b-1",
		entities.PayBookingRequest{Method: db.MethodMTNMoMo, PhoneNumber: "+237670000000"})
	require.NoError(t, err)

	assert.Equal(t, db.TxnSuccess, result.Status)
	assert.Equal(t, "TXN-1700000000000", result.TransactionReference)

	require.Len(t, processor.charges, 1)
	assert.Equal(t, 75000, processor.charges[0].Amount)
	assert.Equal(t, "renter@example.com", processor.charges[0].Email)

	require.Len(t, payments.created, 1)
	assert.Equal(t, db.PaymentPaid, bookings.paymentStatuses["b-1"])
	require.Len(t, notifications.created, 1)
	assert.Contains(t, notifications.created[0].Message, "Payment successful")
	assert.Len(t, notifier.paid, 1)
}

func TestPayBookingWrongOwner(t *testing.T) {
	bookings := newFakeBookingStore()
	bookings.details["b-1"] = pendingBooking()
	svc := NewPaymentService(newFakePaymentStore(), bookings, &fakeNotificationStore{}, nil, nil)

	_, err := svc.PayBooking(context.Background(), "someone-else", "b-1",
		entities.PayBookingRequest{Method: db.MethodMTNMoMo})
	var httpErr *httperr.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 403, httpErr.Code)
}

func TestPayBookingAlreadyPaid(t *testing.T) {
	bookings := newFakeBookingStore()
	booking := pendingBooking()
	booking.PaymentStatus = db.PaymentPaid
	bookings.details["b-1"] = booking
	svc := NewPaymentService(newFakePaymentStore(), bookings, &fakeNotificationStore{}, nil, nil)

	_, err := svc.PayBooking(context.Background(), "user-1", "b-1",
		entities.PayBookingRequest{Method: db.MethodMTNMoMo})
	var httpErr *httperr.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 409, httpErr.Code)
}

func TestPayBookingUnsupportedMethod(t *testing.T) {
	bookings := newFakeBookingStore()
	bookings.details["b-1"] = pendingBooking()
	payments := newFakePaymentStore()
	svc := NewPaymentService(payments, bookings, &fakeNotificationStore{}, nil,
		map[string]PaymentProcessor{})

	_, err := svc.PayBooking(context.Background(), "user-1", "b-1",
		entities.PayBookingRequest{Method: "cash"})
	var httpErr *httperr.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.Code)
	assert.Empty(t, payments.created)
}

func TestPayBookingChargeFailure(t *testing.T) {
	bookings := newFakeBookingStore()
	bookings.details["b-1"] = pendingBooking()
	payments := newFakePaymentStore()
	processor := &fakeProcessor{err: errors.New("provider timeout")}
	svc := NewPaymentService(payments, bookings, &fakeNotificationStore{}, nil,
		map[string]PaymentProcessor{db.MethodOrangeMoney: processor})

	_, err := svc.PayBooking(context.Background(), "user-1", "b-1",
		entities.PayBookingRequest{Method: db.MethodOrangeMoney})
	require.Error(t, err)
	assert.Empty(t, payments.created)
	assert.Empty(t, bookings.paymentStatuses)
}

func TestPayBookingInitiatedOutcomeDefersFinalization(t *testing.T) {
	bookings := newFakeBookingStore()
	bookings.details["b-1"] = pendingBooking()
	payments := newFakePaymentStore()
	notifications := &fakeNotificationStore{}
	processor := &fakeProcessor{outcome: &ChargeOutcome{
		Status:      db.TxnInitiated,
		SessionID:   "cs_test_123",
		RedirectURL: "https://checkout.example.com/cs_test_123",
	}}
	svc := NewPaymentService(payments, bookings, notifications, nil,
		map[string]PaymentProcessor{db.MethodCard: processor})

	result, err := svc.PayBooking(context.Background(), "user-1", "b-1",
		entities.PayBookingRequest{Method: db.MethodCard})
	require.NoError(t, err)

	assert.Equal(t, db.TxnInitiated, result.Status)
	assert.Equal(t, "https://checkout.example.com/cs_test_123", result.RedirectURL)
	// The booking stays pending until the webhook lands.
	assert.Empty(t, bookings.paymentStatuses)
	assert.Empty(t, notifications.created)
}

func TestFinalizeCardPayment(t *testing.T) {
	bookings := newFakeBookingStore()
	bookings.details["b-1"] = pendingBooking()
	payments := newFakePaymentStore()
	payments.created = append(payments.created, &db.Payment{
		ID:              "p-1",
		BookingID:       "b-1",
		Method:          db.MethodCard,
		Status:          db.TxnInitiated,
		StripeSessionID: "cs_test_123",
	})
	notifications := &fakeNotificationStore{}
	notifier := &fakeNotifier{}
	svc := NewPaymentService(payments, bookings, notifications, notifier, nil)

	require.NoError(t, svc.FinalizeCardPayment("cs_test_123", "pi_456"))

	assert.Equal(t, "pi_456", payments.succeeded["p-1"])
	assert.Equal(t, db.PaymentPaid, bookings.paymentStatuses["b-1"])
	assert.Len(t, notifications.created, 1)
	assert.Len(t, notifier.paid, 1)
}

func TestFinalizeCardPaymentIsIdempotent(t *testing.T) {
	bookings := newFakeBookingStore()
	booking := pendingBooking()
	booking.PaymentStatus = db.PaymentPaid
	bookings.details["b-1"] = booking
	payments := newFakePaymentStore()
	payments.created = append(payments.created, &db.Payment{
		ID:              "p-1",
		BookingID:       "b-1",
		Method:          db.MethodCard,
		Status:          db.TxnSuccess,
		StripeSessionID: "cs_test_123",
	})
	notifications := &fakeNotificationStore{}
	svc := NewPaymentService(payments, bookings, notifications, nil, nil)

	// A webhook retry after a fully finalized payment is a no-op.
	require.NoError(t, svc.FinalizeCardPayment("cs_test_123", "pi_456"))
	assert.Empty(t, payments.succeeded)
	assert.Empty(t, notifications.created)
}

func TestFinalizeCardPaymentRetryAfterTransientFailure(t *testing.T) {
	bookings := newFakeBookingStore()
	bookings.details["b-1"] = pendingBooking()
	payments := newFakePaymentStore()
	payments.created = append(payments.created, &db.Payment{
		ID:              "p-1",
		BookingID:       "b-1",
		Method:          db.MethodCard,
		Status:          db.TxnInitiated,
		StripeSessionID: "cs_test_123",
	})
	notifications := &fakeNotificationStore{}
	svc := NewPaymentService(payments, bookings, notifications, nil, nil)

	// First delivery hits a transient store failure and errors out.
	bookings.detailErr = errors.New("connection reset")
	require.Error(t, svc.FinalizeCardPayment("cs_test_123", "pi_456"))
	assert.Empty(t, bookings.paymentStatuses)

	// The retry must still mark the booking paid.
	bookings.detailErr = nil
	require.NoError(t, svc.FinalizeCardPayment("cs_test_123", "pi_456"))
	assert.Equal(t, "pi_456", payments.succeeded["p-1"])
	assert.Equal(t, db.PaymentPaid, bookings.paymentStatuses["b-1"])
	assert.Len(t, notifications.created, 1)
}

func TestFinalizeCardPaymentRepairsPendingBooking(t *testing.T) {
	bookings := newFakeBookingStore()
	bookings.details["b-1"] = pendingBooking()
	payments := newFakePaymentStore()
	payments.created = append(payments.created, &db.Payment{
		ID:              "p-1",
		BookingID:       "b-1",
		Method:          db.MethodCard,
		Status:          db.TxnSuccess,
		StripeSessionID: "cs_test_123",
	})
	notifications := &fakeNotificationStore{}
	svc := NewPaymentService(payments, bookings, notifications, nil, nil)

	// The payment row already reads success (an earlier delivery died after
	// marking it) but the booking is still pending; the retry finishes the job.
	require.NoError(t, svc.FinalizeCardPayment("cs_test_123", "pi_456"))
	assert.Equal(t, db.PaymentPaid, bookings.paymentStatuses["b-1"])
	assert.Len(t, notifications.created, 1)
}

func TestFinalizeCardPaymentUnknownSession(t *testing.T) {
	svc := NewPaymentService(newFakePaymentStore(), newFakeBookingStore(), &fakeNotificationStore{}, nil, nil)
	require.Error(t, svc.FinalizeCardPayment("cs_missing", "pi_456"))
}

func TestMobileMoneyProcessorCharge(t *testing.T) {
	p := NewMobileMoneyProcessor(10 * time.Millisecond)

	outcome, err := p.Charge(context.Background(), ChargeRequest{BookingID: "b-1", Amount: 75000})
	require.NoError(t, err)
	assert.Equal(t, db.TxnSuccess, outcome.Status)
	assert.Regexp(t, `^TXN-\d+$`, outcome.Reference)
	assert.False(t, outcome.PaidAt.IsZero())
}

func TestMobileMoneyProcessorHonorsContext(t *testing.T) {
	p := NewMobileMoneyProcessor(time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := p.Charge(ctx, ChargeRequest{BookingID: "b-1"})
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
