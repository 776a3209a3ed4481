package service

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"

	"github.com/loicperes14/mobirent/internal/db"
)

// StripeCardProcessor is the card implementation of PaymentProcessor. It
// opens a Stripe Checkout session and reports the charge as initiated; the
// webhook finalizes the booking once the session completes.
type StripeCardProcessor struct {
	SuccessURL string
	CancelURL  string
}

func NewStripeCardProcessor(successURL, cancelURL string) *StripeCardProcessor {
	return &StripeCardProcessor{SuccessURL: successURL, CancelURL: cancelURL}
}

func (p *StripeCardProcessor) Charge(ctx context.Context, req ChargeRequest) (*ChargeOutcome, error) {
	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String("xaf"),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.Description),
					},
					UnitAmount: stripe.Int64(int64(req.Amount)),
				},
				Quantity: stripe.Int64(1),
			},
		},
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(p.SuccessURL),
		CancelURL:         stripe.String(p.CancelURL),
		CustomerEmail:     stripe.String(req.Email),
		ClientReferenceID: stripe.String(req.BookingID),
	}
	params.Context = ctx

	sess, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("error creating checkout session: %w", err)
	}

	return &ChargeOutcome{
		Status:      db.TxnInitiated,
		SessionID:   sess.ID,
		RedirectURL: sess.URL,
	}, nil
}
