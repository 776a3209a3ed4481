package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loicperes14/mobirent/internal/db"
	"github.com/loicperes14/mobirent/internal/entities"
	httperr "github.com/loicperes14/mobirent/internal/errors"
)

func testCar() *entities.CarDetail {
	return &entities.CarDetail{
		ID:              "car-1",
		Brand:           "Toyota",
		Model:           "Corolla",
		PricePerDay:     25000,
		Status:          db.CarAvailable,
		RentalServiceID: "rs-1",
	}
}

func TestCreateBooking(t *testing.T) {
	bookings := newFakeBookingStore()
	cars := newFakeCarStore()
	cars.cars["car-1"] = testCar()
	notifications := &fakeNotificationStore{}
	notifier := &fakeNotifier{}

	svc := NewBookingService(bookings, cars, notifications, notifier)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC)
	resp, err := svc.CreateBooking("user-1", "car-1", start, end)
	require.NoError(t, err)

	assert.Equal(t, 3, resp.TotalDays)
	assert.Equal(t, 75000, resp.TotalPrice)
	assert.Equal(t, db.PaymentPending, resp.PaymentStatus)
	assert.Equal(t, db.BookingConfirmed, resp.BookingStatus)

	require.Len(t, bookings.created, 1)
	assert.Equal(t, "user-1", bookings.created[0].UserID)
	assert.Equal(t, db.CarBooked, cars.statuses["car-1"])

	require.Len(t, notifications.created, 1)
	assert.Contains(t, notifications.created[0].Message, "Toyota Corolla")
	assert.Len(t, notifier.confirmed, 1)
}

func TestCreateBookingUnknownCar(t *testing.T) {
	bookings := newFakeBookingStore()
	cars := newFakeCarStore()
	svc := NewBookingService(bookings, cars, &fakeNotificationStore{}, nil)

	_, err := svc.CreateBooking("user-1", "missing", time.Now(), time.Now().AddDate(0, 0, 2))
	require.Error(t, err)
	assert.Empty(t, bookings.created)
}

func TestCreateBookingInsertFailureHasNoSideEffects(t *testing.T) {
	bookings := newFakeBookingStore()
	bookings.createErr = errors.New("insert failed")
	cars := newFakeCarStore()
	cars.cars["car-1"] = testCar()
	notifications := &fakeNotificationStore{}

	svc := NewBookingService(bookings, cars, notifications, nil)

	_, err := svc.CreateBooking("user-1", "car-1", time.Now(), time.Now().AddDate(0, 0, 2))
	require.Error(t, err)
	assert.Empty(t, cars.statuses)
	assert.Empty(t, notifications.created)
}

func TestCreateBookingSurvivesCarFlipFailure(t *testing.T) {
	bookings := newFakeBookingStore()
	cars := newFakeCarStore()
	cars.cars["car-1"] = testCar()
	cars.updateErr = errors.New("update failed")
	notifications := &fakeNotificationStore{}

	svc := NewBookingService(bookings, cars, notifications, nil)

	// The booking stands even when the car flip fails afterwards.
	resp, err := svc.CreateBooking("user-1", "car-1", time.Now(), time.Now().AddDate(0, 0, 2))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.BookingID)
	require.Len(t, bookings.created, 1)
	assert.Len(t, notifications.created, 1)
}

func TestCreateBookingSurvivesNotificationFailure(t *testing.T) {
	bookings := newFakeBookingStore()
	cars := newFakeCarStore()
	cars.cars["car-1"] = testCar()
	notifications := &fakeNotificationStore{createErr: errors.New("insert failed")}

	svc := NewBookingService(bookings, cars, notifications, nil)

	resp, err := svc.CreateBooking("user-1", "car-1", time.Now(), time.Now().AddDate(0, 0, 2))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.BookingID)
}

func TestCancelByRenter(t *testing.T) {
	bookings := newFakeBookingStore()
	bookings.details["b-1"] = &entities.BookingDetail{
		ID:            "b-1",
		UserID:        "user-1",
		Car:           entities.CarSummary{ID: "car-1"},
		BookingStatus: db.BookingConfirmed,
	}
	cars := newFakeCarStore()
	svc := NewBookingService(bookings, cars, &fakeNotificationStore{}, nil)

	require.NoError(t, svc.CancelByRenter("user-1", "b-1"))
	assert.Equal(t, db.BookingCancelled, bookings.bookingStatuses["b-1"])
	assert.Equal(t, db.CarAvailable, cars.statuses["car-1"])
}

func TestCancelByRenterWrongOwner(t *testing.T) {
	bookings := newFakeBookingStore()
	bookings.details["b-1"] = &entities.BookingDetail{
		ID:            "b-1",
		UserID:        "user-1",
		BookingStatus: db.BookingConfirmed,
	}
	svc := NewBookingService(bookings, newFakeCarStore(), &fakeNotificationStore{}, nil)

	err := svc.CancelByRenter("someone-else", "b-1")
	var httpErr *httperr.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 403, httpErr.Code)
}

func TestCancelByRenterAlreadyCancelled(t *testing.T) {
	bookings := newFakeBookingStore()
	bookings.details["b-1"] = &entities.BookingDetail{
		ID:            "b-1",
		UserID:        "user-1",
		BookingStatus: db.BookingCancelled,
	}
	svc := NewBookingService(bookings, newFakeCarStore(), &fakeNotificationStore{}, nil)

	err := svc.CancelByRenter("user-1", "b-1")
	var httpErr *httperr.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 409, httpErr.Code)
}

func TestUpdateStatusByOperator(t *testing.T) {
	bookings := newFakeBookingStore()
	bookings.details["b-1"] = &entities.BookingDetail{
		ID:            "b-1",
		UserID:        "user-1",
		Car:           entities.CarSummary{ID: "car-1"},
		BookingStatus: db.BookingConfirmed,
	}
	cars := newFakeCarStore()
	cars.cars["car-1"] = testCar()
	svc := NewBookingService(bookings, cars, &fakeNotificationStore{}, nil)

	require.NoError(t, svc.UpdateStatusByOperator("rs-1", "b-1", db.BookingCompleted))
	assert.Equal(t, db.BookingCompleted, bookings.bookingStatuses["b-1"])
}

func TestUpdateStatusByOperatorForeignFleet(t *testing.T) {
	bookings := newFakeBookingStore()
	bookings.details["b-1"] = &entities.BookingDetail{
		ID:  "b-1",
		Car: entities.CarSummary{ID: "car-1"},
	}
	cars := newFakeCarStore()
	cars.cars["car-1"] = testCar()
	svc := NewBookingService(bookings, cars, &fakeNotificationStore{}, nil)

	err := svc.UpdateStatusByOperator("another-service", "b-1", db.BookingCancelled)
	var httpErr *httperr.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 403, httpErr.Code)
}

func TestUpdateStatusByOperatorRejectsOtherStatuses(t *testing.T) {
	svc := NewBookingService(newFakeBookingStore(), newFakeCarStore(), &fakeNotificationStore{}, nil)

	err := svc.UpdateStatusByOperator("rs-1", "b-1", db.BookingConfirmed)
	var httpErr *httperr.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.Code)
}
