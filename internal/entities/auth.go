package entities

type SignUpRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	FullName    string `json:"full_name" validate:"required"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,e164"`
	Location    string `json:"location"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}

type UserProfile struct {
	ID              string `json:"id"`
	Email           string `json:"email"`
	FullName        string `json:"full_name"`
	PhoneNumber     string `json:"phone_number,omitempty"`
	Location        string `json:"location,omitempty"`
	Language        string `json:"language"`
	Role            string `json:"role"`
	RentalServiceID string `json:"rental_service_id,omitempty"`
}

type UpdateProfileRequest struct {
	FullName    string `json:"full_name" validate:"required"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,e164"`
	Location    string `json:"location"`
	Language    string `json:"language" validate:"omitempty,oneof=en fr"`
}

type RegisterServiceRequest struct {
	CompanyName string `json:"company_name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	PhoneNumber string `json:"phone_number" validate:"required"`
	City        string `json:"city" validate:"required"`
	BranchName  string `json:"branch_name" validate:"required"`
	Address     string `json:"address" validate:"required"`
	Website     string `json:"website" validate:"omitempty,url"`
	Description string `json:"description"`
	LogoURL     string `json:"logo_url" validate:"omitempty,url"`
}
