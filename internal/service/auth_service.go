package service

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/loicperes14/mobirent/internal/db"
	"github.com/loicperes14/mobirent/internal/entities"
	httperr "github.com/loicperes14/mobirent/internal/errors"
	"github.com/loicperes14/mobirent/internal/repository"
)

const tokenLifetime = 72 * time.Hour

type AuthService interface {
	SignUp(req entities.SignUpRequest) (*entities.AuthResponse, error)
	SignIn(email, password string) (*entities.AuthResponse, error)
	RegisterRentalService(req entities.RegisterServiceRequest) (*entities.AuthResponse, error)
	GetProfile(userID string) (*entities.UserProfile, error)
	UpdateProfile(userID string, req entities.UpdateProfileRequest) error
}

type authService struct {
	users    repository.UserRepository
	services *repository.RentalServiceRepository
}

func NewAuthService(users repository.UserRepository, services *repository.RentalServiceRepository) AuthService {
	return &authService{users: users, services: services}
}

func (s *authService) SignUp(req entities.SignUpRequest) (*entities.AuthResponse, error) {
	existing, err := s.users.GetByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, httperr.ErrConflict("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &db.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		PhoneNumber:  req.PhoneNumber,
		Location:     req.Location,
		Language:     "en",
		Role:         db.RoleCustomer,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}

	return s.respondWithToken(user)
}

func (s *authService) SignIn(email, password string) (*entities.AuthResponse, error) {
	user, err := s.users.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, httperr.ErrUnauthorized("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, httperr.ErrUnauthorized("invalid credentials")
	}

	return s.respondWithToken(user)
}

// RegisterRentalService creates the company record (pending review) together
// with its operator account.
func (s *authService) RegisterRentalService(req entities.RegisterServiceRequest) (*entities.AuthResponse, error) {
	existing, err := s.users.GetByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, httperr.ErrConflict("email already registered")
	}

	rentalService := &db.RentalService{
		ID:          uuid.NewString(),
		CompanyName: req.CompanyName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		City:        req.City,
		BranchName:  req.BranchName,
		Address:     req.Address,
		Website:     req.Website,
		Description: req.Description,
		LogoURL:     req.LogoURL,
		Status:      "pending",
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.services.Create(rentalService); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &db.User{
		ID:              uuid.NewString(),
		Email:           req.Email,
		PasswordHash:    string(hash),
		FullName:        req.CompanyName,
		PhoneNumber:     req.PhoneNumber,
		Location:        req.City,
		Language:        "en",
		Role:            db.RoleAdmin,
		RentalServiceID: rentalService.ID,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}

	return s.respondWithToken(user)
}

func (s *authService) GetProfile(userID string) (*entities.UserProfile, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, httperr.ErrNotFound("user not found")
	}
	profile := profileFrom(user)
	return &profile, nil
}

func (s *authService) UpdateProfile(userID string, req entities.UpdateProfileRequest) error {
	language := req.Language
	if language == "" {
		language = "en"
	}
	return s.users.UpdateProfile(userID, req.FullName, req.PhoneNumber, req.Location, language)
}

func (s *authService) respondWithToken(user *db.User) (*entities.AuthResponse, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET not set")
	}

	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(tokenLifetime).Unix(),
	}
	if user.RentalServiceID != "" {
		claims["rental_service_id"] = user.RentalServiceID
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return nil, fmt.Errorf("error signing token: %w", err)
	}

	return &entities.AuthResponse{Token: token, User: profileFrom(user)}, nil
}

func profileFrom(user *db.User) entities.UserProfile {
	return entities.UserProfile{
		ID:              user.ID,
		Email:           user.Email,
		FullName:        user.FullName,
		PhoneNumber:     user.PhoneNumber,
		Location:        user.Location,
		Language:        user.Language,
		Role:            user.Role,
		RentalServiceID: user.RentalServiceID,
	}
}
