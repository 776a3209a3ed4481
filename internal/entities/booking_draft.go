package entities

import (
	"math"
	"time"
)

// BookingStep identifies a stage of the booking flow.
type BookingStep int

const (
	StepDates BookingStep = iota + 1
	StepPaymentMethod
	StepReview
)

// BookingDraft models the renter-facing multi-step flow (dates, payment
// method, review) that precedes the single confirm call to the server. It
// lives only in the active session and is discarded, never persisted, when
// the flow is abandoned; clients embedding this package drive it directly,
// the HTTP API only sees the confirm.
type BookingDraft struct {
	Step          BookingStep
	StartDate     time.Time
	EndDate       time.Time
	PaymentMethod string
	PricePerDay   int
	TotalDays     int
	TotalPrice    int
}

func NewBookingDraft(pricePerDay int) *BookingDraft {
	return &BookingDraft{Step: StepDates, PricePerDay: pricePerDay}
}

// SetDates records the rental window and recomputes the derived day count
// and total price.
func (d *BookingDraft) SetDates(start, end time.Time) {
	d.StartDate = start
	d.EndDate = end
	d.TotalDays, d.TotalPrice = RentalPrice(start, end, d.PricePerDay)
}

func (d *BookingDraft) SetPaymentMethod(method string) {
	d.PaymentMethod = method
}

// Next advances one step when the current step's inputs are present:
// both dates to leave StepDates, a method choice to leave StepPaymentMethod.
func (d *BookingDraft) Next() bool {
	switch d.Step {
	case StepDates:
		if d.StartDate.IsZero() || d.EndDate.IsZero() {
			return false
		}
		d.Step = StepPaymentMethod
	case StepPaymentMethod:
		if d.PaymentMethod == "" {
			return false
		}
		d.Step = StepReview
	default:
		return false
	}
	return true
}

// Back returns to the previous step.
func (d *BookingDraft) Back() bool {
	if d.Step <= StepDates {
		return false
	}
	d.Step--
	return true
}

// RentalPrice computes the chargeable day count and total for a rental
// window: the ceiling of the absolute difference in days times the daily
// rate. The absolute difference means an inverted range prices the same
// span instead of being rejected.
func RentalPrice(start, end time.Time, pricePerDay int) (days, total int) {
	diff := end.Sub(start)
	if diff < 0 {
		diff = -diff
	}
	days = int(math.Ceil(diff.Hours() / 24))
	total = days * pricePerDay
	return days, total
}
