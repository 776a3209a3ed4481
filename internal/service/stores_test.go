package service

import (
	"context"
	"errors"
	"time"

	"github.com/loicperes14/mobirent/internal/db"
	"github.com/loicperes14/mobirent/internal/entities"
)

// In-memory fakes for the store interfaces.

type fakeBookingStore struct {
	created         []*db.Booking
	details         map[string]*entities.BookingDetail
	bookingStatuses map[string]string
	paymentStatuses map[string]string
	createErr       error
	detailErr       error
	payStatusErr    error
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{
		details:         map[string]*entities.BookingDetail{},
		bookingStatuses: map[string]string{},
		paymentStatuses: map[string]string{},
	}
}

func (f *fakeBookingStore) Create(b *db.Booking) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, b)
	f.details[b.ID] = &entities.BookingDetail{
		ID:            b.ID,
		UserID:        b.UserID,
		Car:           entities.CarSummary{ID: b.CarID},
		StartDate:     b.StartDate,
		EndDate:       b.EndDate,
		TotalPrice:    b.TotalPrice,
		PaymentStatus: b.PaymentStatus,
		BookingStatus: b.BookingStatus,
		CreatedAt:     b.CreatedAt,
	}
	return nil
}

func (f *fakeBookingStore) GetDetail(id string) (*entities.BookingDetail, error) {
	if f.detailErr != nil {
		return nil, f.detailErr
	}
	d, ok := f.details[id]
	if !ok {
		return nil, errors.New("booking not found")
	}
	return d, nil
}

func (f *fakeBookingStore) ListByUser(userID string) ([]entities.BookingDetail, error) {
	var out []entities.BookingDetail
	for _, d := range f.details {
		if d.UserID == userID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (f *fakeBookingStore) ListByRentalService(rentalServiceID, status string) ([]entities.BookingDetail, error) {
	return nil, nil
}

func (f *fakeBookingStore) UpdateBookingStatus(id, status string) error {
	f.bookingStatuses[id] = status
	if d, ok := f.details[id]; ok {
		d.BookingStatus = status
	}
	return nil
}

func (f *fakeBookingStore) UpdatePaymentStatus(id, status string) error {
	if f.payStatusErr != nil {
		return f.payStatusErr
	}
	f.paymentStatuses[id] = status
	if d, ok := f.details[id]; ok {
		d.PaymentStatus = status
	}
	return nil
}

type fakeCarStore struct {
	cars      map[string]*entities.CarDetail
	statuses  map[string]string
	updateErr error
}

func newFakeCarStore() *fakeCarStore {
	return &fakeCarStore{cars: map[string]*entities.CarDetail{}, statuses: map[string]string{}}
}

func (f *fakeCarStore) GetByID(id string) (*entities.CarDetail, error) {
	car, ok := f.cars[id]
	if !ok {
		return nil, errors.New("car not found")
	}
	return car, nil
}

func (f *fakeCarStore) UpdateStatus(id, status string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.statuses[id] = status
	return nil
}

type fakeNotificationStore struct {
	created   []*db.Notification
	createErr error
}

func (f *fakeNotificationStore) Create(n *db.Notification) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, n)
	return nil
}

type fakePaymentStore struct {
	created   []*db.Payment
	succeeded map[string]string
}

func newFakePaymentStore() *fakePaymentStore {
	return &fakePaymentStore{succeeded: map[string]string{}}
}

func (f *fakePaymentStore) Create(p *db.Payment) error {
	f.created = append(f.created, p)
	return nil
}

func (f *fakePaymentStore) GetByStripeSessionID(sessionID string) (*db.Payment, error) {
	for _, p := range f.created {
		if p.StripeSessionID == sessionID {
			return p, nil
		}
	}
	return nil, errors.New("payment not found")
}

func (f *fakePaymentStore) MarkSucceeded(id, reference string, paidAt time.Time) error {
	f.succeeded[id] = reference
	for _, p := range f.created {
		if p.ID == id {
			p.Status = db.TxnSuccess
			p.TransactionReference = reference
			p.PaidAt = paidAt
		}
	}
	return nil
}

type fakeNotifier struct {
	confirmed []entities.BookingDetail
	paid      []entities.BookingDetail
}

func (f *fakeNotifier) BookingConfirmed(booking entities.BookingDetail) {
	f.confirmed = append(f.confirmed, booking)
}

func (f *fakeNotifier) PaymentReceived(booking entities.BookingDetail) {
	f.paid = append(f.paid, booking)
}

type fakeProcessor struct {
	outcome *ChargeOutcome
	err     error
	charges []ChargeRequest
}

func (f *fakeProcessor) Charge(_ context.Context, req ChargeRequest) (*ChargeOutcome, error) {
	f.charges = append(f.charges, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.outcome, nil
}
