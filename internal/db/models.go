package db

import "time"

// Car statuses.
const (
	CarAvailable   = "available"
	CarBooked      = "booked"
	CarMaintenance = "maintenance"
)

// Booking payment statuses.
const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
	PaymentFailed  = "failed"
)

// Booking statuses.
const (
	BookingConfirmed = "confirmed"
	BookingCompleted = "completed"
	BookingCancelled = "cancelled"
)

// Payment transaction statuses.
const (
	TxnInitiated = "initiated"
	TxnSuccess   = "success"
	TxnFailed    = "failed"
)

// Account roles.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// Payment method labels.
const (
	MethodMTNMoMo     = "mtn_momo"
	MethodOrangeMoney = "orange_money"
	MethodCard        = "card"
)

type User struct {
	ID              string
	Email           string
	PasswordHash    string
	FullName        string
	PhoneNumber     string
	Location        string
	Language        string
	Role            string
	RentalServiceID string
	CreatedAt       time.Time
}

type RentalService struct {
	ID          string
	CompanyName string
	Email       string
	PhoneNumber string
	City        string
	BranchName  string
	Address     string
	Website     string
	Description string
	LogoURL     string
	Status      string
	CreatedAt   time.Time
}

type Location struct {
	ID         string
	City       string
	BranchName string
	Address    string
	CreatedAt  time.Time
}

type Car struct {
	ID              string
	RentalServiceID string
	LocationID      string
	Brand           string
	Model           string
	PricePerDay     int
	ImageURL        string
	Status          string
	CreatedAt       time.Time
}

type Booking struct {
	ID            string
	UserID        string
	CarID         string
	StartDate     time.Time
	EndDate       time.Time
	TotalPrice    int
	PaymentStatus string
	BookingStatus string
	CreatedAt     time.Time
}

type Payment struct {
	ID                   string
	BookingID            string
	Method               string
	Amount               int
	TransactionReference string
	Status               string
	StripeSessionID      string
	PaidAt               time.Time
	CreatedAt            time.Time
}

type Notification struct {
	ID        string
	UserID    string
	Message   string
	IsRead    bool
	CreatedAt time.Time
}

type RentalServicePayment struct {
	ID              string
	RentalServiceID string
	PaymentMethod   string
	PhoneNumber     string
	IsActive        bool
	CreatedAt       time.Time
}

type Review struct {
	ID        string
	CarID     string
	UserID    string
	Rating    int
	Comment   string
	CreatedAt time.Time
}
