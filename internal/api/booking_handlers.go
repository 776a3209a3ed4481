package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/loicperes14/mobirent/internal/auth"
	"github.com/loicperes14/mobirent/internal/db"
	"github.com/loicperes14/mobirent/internal/entities"
	"github.com/loicperes14/mobirent/internal/service"
)

const dateLayout = "2006-01-02"

type BookingHandler struct {
	Service  *service.BookingService
	Validate *validator.Validate
}

func NewBookingHandler(svc *service.BookingService, validate *validator.Validate) *BookingHandler {
	return &BookingHandler{Service: svc, Validate: validate}
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	var req entities.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}

	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		http.Error(w, "Invalid start_date", http.StatusBadRequest)
		return
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		http.Error(w, "Invalid end_date", http.StatusBadRequest)
		return
	}

	resp, err := h.Service.CreateBooking(claims.UserID, req.CarID, start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *BookingHandler) ListMyBookings(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	list, err := h.Service.ListUserBookings(claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id := mux.Vars(r)["id"]
	booking, err := h.Service.GetBooking(id)
	if err != nil {
		writeError(w, err)
		return
	}
	if booking.UserID != claims.UserID && claims.Role != db.RoleAdmin {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id := mux.Vars(r)["id"]
	if err := h.Service.CancelByRenter(claims.UserID, id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Booking cancelled"})
}
