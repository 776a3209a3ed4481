package service

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/loicperes14/mobirent/internal/db"
	"github.com/loicperes14/mobirent/internal/entities"
	httperr "github.com/loicperes14/mobirent/internal/errors"
	"github.com/loicperes14/mobirent/internal/utils"
)

// BookingService drives the booking lifecycle: confirmation out of the
// three-step flow, the renter's dashboard, and the fleet operator's status
// updates.
type BookingService struct {
	bookings      BookingStore
	cars          CarStore
	notifications NotificationStore
	notifier      Notifier
	now           func() time.Time
}

func NewBookingService(bookings BookingStore, cars CarStore, notifications NotificationStore, notifier Notifier) *BookingService {
	return &BookingService{
		bookings:      bookings,
		cars:          cars,
		notifications: notifications,
		notifier:      notifier,
		now:           time.Now,
	}
}

// CreateBooking is the irreversible confirm action at the end of the booking
// flow. Side effects run in sequence: booking row, car flip, notification.
// If the booking insert fails nothing else runs; if a later step fails the
// booking stays in place with no compensation and the failure is logged.
func (s *BookingService) CreateBooking(userID string, carID string, start, end time.Time) (*entities.CreateBookingResponse, error) {
	car, err := s.cars.GetByID(carID)
	if err != nil {
		return nil, err
	}

	days, total := entities.RentalPrice(start, end, car.PricePerDay)

	booking := &db.Booking{
		ID:            uuid.NewString(),
		UserID:        userID,
		CarID:         car.ID,
		StartDate:     start,
		EndDate:       end,
		TotalPrice:    total,
		PaymentStatus: db.PaymentPending,
		BookingStatus: db.BookingConfirmed,
		CreatedAt:     s.now().UTC(),
	}
	if err := s.bookings.Create(booking); err != nil {
		return nil, fmt.Errorf("error creating booking: %w", err)
	}

	if err := s.cars.UpdateStatus(car.ID, db.CarBooked); err != nil {
		log.Printf("ALERT: booking %s created but car %s not marked booked: %v", booking.ID, car.ID, err)
	}

	notification := &db.Notification{
		ID:     uuid.NewString(),
		UserID: userID,
		Message: fmt.Sprintf("Your booking for %s %s has been confirmed. Booking ID: %s",
			car.Brand, car.Model, utils.ShortID(booking.ID)),
		CreatedAt: s.now().UTC(),
	}
	if err := s.notifications.Create(notification); err != nil {
		log.Printf("ALERT: booking %s created but notification failed: %v", booking.ID, err)
	}

	if s.notifier != nil {
		if detail, err := s.bookings.GetDetail(booking.ID); err == nil {
			s.notifier.BookingConfirmed(*detail)
		} else {
			log.Printf("ALERT: could not load booking %s for confirmation message: %v", booking.ID, err)
		}
	}

	return &entities.CreateBookingResponse{
		BookingID:     booking.ID,
		TotalDays:     days,
		TotalPrice:    total,
		PaymentStatus: booking.PaymentStatus,
		BookingStatus: booking.BookingStatus,
		Message:       "Booking confirmed. Proceed to payment.",
	}, nil
}

func (s *BookingService) GetBooking(id string) (*entities.BookingDetail, error) {
	return s.bookings.GetDetail(id)
}

func (s *BookingService) ListUserBookings(userID string) (*entities.BookingsList, error) {
	bookings, err := s.bookings.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	return &entities.BookingsList{Total: len(bookings), Bookings: bookings}, nil
}

func (s *BookingService) ListServiceBookings(rentalServiceID, status string) (*entities.BookingsList, error) {
	bookings, err := s.bookings.ListByRentalService(rentalServiceID, status)
	if err != nil {
		return nil, err
	}
	return &entities.BookingsList{Total: len(bookings), Bookings: bookings}, nil
}

// CancelByRenter cancels the renter's own booking and puts the car back on
// the market. Like the confirm side effects, the car flip is unconditional
// and best effort.
func (s *BookingService) CancelByRenter(userID, bookingID string) error {
	booking, err := s.bookings.GetDetail(bookingID)
	if err != nil {
		return err
	}
	if booking.UserID != userID {
		return httperr.ErrForbidden("booking belongs to another account")
	}
	if booking.BookingStatus != db.BookingConfirmed {
		return httperr.ErrConflict(fmt.Sprintf("booking is already %s", booking.BookingStatus))
	}
	if err := s.bookings.UpdateBookingStatus(bookingID, db.BookingCancelled); err != nil {
		return err
	}
	if err := s.cars.UpdateStatus(booking.Car.ID, db.CarAvailable); err != nil {
		log.Printf("ALERT: booking %s cancelled but car %s not released: %v", bookingID, booking.Car.ID, err)
	}
	return nil
}

// UpdateStatusByOperator lets a fleet operator mark bookings on its own cars
// completed or cancelled.
func (s *BookingService) UpdateStatusByOperator(rentalServiceID, bookingID, status string) error {
	if status != db.BookingCompleted && status != db.BookingCancelled {
		return httperr.ErrBadRequest("status must be completed or cancelled")
	}

	booking, err := s.bookings.GetDetail(bookingID)
	if err != nil {
		return err
	}
	car, err := s.cars.GetByID(booking.Car.ID)
	if err != nil {
		return err
	}
	if car.RentalServiceID != rentalServiceID {
		return httperr.ErrForbidden("booking is not on this fleet")
	}
	return s.bookings.UpdateBookingStatus(bookingID, status)
}
