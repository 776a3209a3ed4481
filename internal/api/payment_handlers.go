package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/loicperes14/mobirent/internal/auth"
	"github.com/loicperes14/mobirent/internal/entities"
	"github.com/loicperes14/mobirent/internal/repository"
	"github.com/loicperes14/mobirent/internal/service"
)

type PaymentHandler struct {
	Service  *service.PaymentService
	Payments *repository.PaymentRepository
	Validate *validator.Validate
}

func NewPaymentHandler(svc *service.PaymentService, payments *repository.PaymentRepository, validate *validator.Validate) *PaymentHandler {
	return &PaymentHandler{Service: svc, Payments: payments, Validate: validate}
}

// PayBooking charges the renter for a pending booking. Mobile money methods
// settle inline; card returns a checkout URL and settles via webhook.
func (h *PaymentHandler) PayBooking(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	bookingID := mux.Vars(r)["id"]
	var req entities.PayBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}

	result, err := h.Service.PayBooking(r.Context(), claims.UserID, bookingID, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *PaymentHandler) ListMyPayments(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	payments, err := h.Payments.ListByUser(claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	if payments == nil {
		payments = []entities.PaymentDetail{}
	}
	writeJSON(w, http.StatusOK, payments)
}
