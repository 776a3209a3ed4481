package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/loicperes14/mobirent/internal/auth"
	"github.com/loicperes14/mobirent/internal/entities"
	"github.com/loicperes14/mobirent/internal/service"
)

type AuthHandler struct {
	Service  service.AuthService
	Validate *validator.Validate
}

func NewAuthHandler(svc service.AuthService, validate *validator.Validate) *AuthHandler {
	return &AuthHandler{Service: svc, Validate: validate}
}

func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req entities.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}
	resp, err := h.Service.SignUp(req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req entities.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}
	resp, err := h.Service.SignIn(req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// RegisterService onboards a rental company together with its admin account.
func (h *AuthHandler) RegisterService(w http.ResponseWriter, r *http.Request) {
	var req entities.RegisterServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}
	resp, err := h.Service.RegisterRentalService(req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	profile, err := h.Service.GetProfile(claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	var req entities.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}
	if err := h.Service.UpdateProfile(claims.UserID, req); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Profile updated"})
}
