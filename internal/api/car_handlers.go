package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/loicperes14/mobirent/internal/auth"
	"github.com/loicperes14/mobirent/internal/entities"
	"github.com/loicperes14/mobirent/internal/service"
)

type CarHandler struct {
	Service  *service.CarService
	Validate *validator.Validate
}

func NewCarHandler(svc *service.CarService, validate *validator.Validate) *CarHandler {
	return &CarHandler{Service: svc, Validate: validate}
}

// ListCars serves the landing page listing of available cars. Results come
// from the read-through cache, so freshly added cars may lag up to the
// cache window.
func (h *CarHandler) ListCars(w http.ResponseWriter, r *http.Request) {
	cars, err := h.Service.ListAvailableCars(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if cars == nil {
		cars = []entities.CarDetail{}
	}
	writeJSON(w, http.StatusOK, cars)
}

func (h *CarHandler) GetCar(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	car, err := h.Service.GetCar(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, car)
}

func (h *CarHandler) ListLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.Service.ListLocations(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if locations == nil {
		locations = []entities.Location{}
	}
	writeJSON(w, http.StatusOK, locations)
}

func (h *CarHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	carID := mux.Vars(r)["id"]
	reviews, err := h.Service.ListReviews(carID)
	if err != nil {
		writeError(w, err)
		return
	}
	if reviews == nil {
		reviews = []entities.ReviewItem{}
	}
	writeJSON(w, http.StatusOK, reviews)
}

func (h *CarHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	carID := mux.Vars(r)["id"]
	var req entities.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}
	if err := h.Service.AddReview(claims.UserID, carID, req); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message": "Review submitted"})
}
