package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/loicperes14/mobirent/internal/auth"
	"github.com/loicperes14/mobirent/internal/db"
	"github.com/loicperes14/mobirent/internal/entities"
	"github.com/loicperes14/mobirent/internal/repository"
	"github.com/loicperes14/mobirent/internal/service"
)

// OperatorHandler serves the rental service dashboard: fleet management,
// bookings over the fleet, received payments and payout accounts.
type OperatorHandler struct {
	Cars     *service.CarService
	Bookings *service.BookingService
	Payments *repository.PaymentRepository
	Services *repository.RentalServiceRepository
	Validate *validator.Validate
}

func NewOperatorHandler(cars *service.CarService, bookings *service.BookingService, payments *repository.PaymentRepository, services *repository.RentalServiceRepository, validate *validator.Validate) *OperatorHandler {
	return &OperatorHandler{
		Cars:     cars,
		Bookings: bookings,
		Payments: payments,
		Services: services,
		Validate: validate,
	}
}

func (h *OperatorHandler) AddCar(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.FromContext(r.Context())
	var req entities.AddCarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}
	car, err := h.Cars.AddCar(r.Context(), claims.RentalServiceID, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, car)
}

func (h *OperatorHandler) ListFleet(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.FromContext(r.Context())
	cars, err := h.Cars.ListFleet(claims.RentalServiceID)
	if err != nil {
		writeError(w, err)
		return
	}
	if cars == nil {
		cars = []entities.CarDetail{}
	}
	writeJSON(w, http.StatusOK, cars)
}

func (h *OperatorHandler) UpdateCarStatus(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.FromContext(r.Context())
	carID := mux.Vars(r)["id"]
	var req entities.UpdateCarStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}
	if err := h.Cars.UpdateCarStatus(r.Context(), claims.RentalServiceID, carID, req.Status); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Car status updated"})
}

func (h *OperatorHandler) ListServiceBookings(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.FromContext(r.Context())
	status := r.URL.Query().Get("status")
	list, err := h.Bookings.ListServiceBookings(claims.RentalServiceID, status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *OperatorHandler) UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.FromContext(r.Context())
	bookingID := mux.Vars(r)["id"]
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := h.Bookings.UpdateStatusByOperator(claims.RentalServiceID, bookingID, req.Status); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Booking updated"})
}

func (h *OperatorHandler) ListServicePayments(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.FromContext(r.Context())
	payments, err := h.Payments.ListByRentalService(claims.RentalServiceID)
	if err != nil {
		writeError(w, err)
		return
	}
	if payments == nil {
		payments = []entities.PaymentDetail{}
	}
	writeJSON(w, http.StatusOK, payments)
}

func (h *OperatorHandler) CreatePayoutAccount(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.FromContext(r.Context())
	var req entities.PayoutAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}
	account := &db.RentalServicePayment{
		ID:              uuid.NewString(),
		RentalServiceID: claims.RentalServiceID,
		PaymentMethod:   req.PaymentMethod,
		PhoneNumber:     req.PhoneNumber,
		IsActive:        true,
		CreatedAt:       time.Now().UTC(),
	}
	if err := h.Services.CreatePayoutAccount(account); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, payoutAccountResponse(account))
}

func (h *OperatorHandler) ListPayoutAccounts(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.FromContext(r.Context())
	accounts, err := h.Services.ListPayoutAccounts(claims.RentalServiceID)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]entities.PayoutAccount, 0, len(accounts))
	for i := range accounts {
		out = append(out, *payoutAccountResponse(&accounts[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *OperatorHandler) SetPayoutAccountActive(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.FromContext(r.Context())
	id := mux.Vars(r)["id"]
	var req struct {
		IsActive bool `json:"is_active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := h.Services.SetPayoutAccountActive(id, claims.RentalServiceID, req.IsActive); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Payout account updated"})
}

func (h *OperatorHandler) DeletePayoutAccount(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.FromContext(r.Context())
	id := mux.Vars(r)["id"]
	if err := h.Services.DeletePayoutAccount(id, claims.RentalServiceID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Payout account deleted"})
}

func payoutAccountResponse(a *db.RentalServicePayment) *entities.PayoutAccount {
	return &entities.PayoutAccount{
		ID:            a.ID,
		PaymentMethod: a.PaymentMethod,
		PhoneNumber:   a.PhoneNumber,
		IsActive:      a.IsActive,
		CreatedAt:     a.CreatedAt,
	}
}
