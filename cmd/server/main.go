package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"

	"github.com/go-playground/validator/v10"
	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/stripe/stripe-go/v82"

	"github.com/loicperes14/mobirent/internal/api"
	"github.com/loicperes14/mobirent/internal/auth"
	"github.com/loicperes14/mobirent/internal/cache"
	"github.com/loicperes14/mobirent/internal/config"
	"github.com/loicperes14/mobirent/internal/db"
	"github.com/loicperes14/mobirent/internal/repository"
	"github.com/loicperes14/mobirent/internal/service"
)

func main() {
	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET not set")
	}

	database, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := database.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	appCache := cache.New(cache.NewRedisStore(rdb), nil)

	stripe.Key = cfg.StripeSecretKey

	userRepo := repository.NewUserRepository(database)
	rentalServiceRepo := repository.NewRentalServiceRepository(database)
	carRepo := repository.NewCarRepository(database)
	bookingRepo := repository.NewBookingRepository(database)
	paymentRepo := repository.NewPaymentRepository(database)
	notificationRepo := repository.NewNotificationRepository(database)
	reviewRepo := repository.NewReviewRepository(database)
	jobRepo := repository.NewJobRepository(database)

	senderService := service.NewSenderService()
	authService := service.NewAuthService(userRepo, rentalServiceRepo)
	carService := service.NewCarService(carRepo, reviewRepo, appCache)
	bookingService := service.NewBookingService(bookingRepo, carRepo, notificationRepo, senderService)

	processors := map[string]service.PaymentProcessor{
		db.MethodMTNMoMo:     service.NewMobileMoneyProcessor(cfg.PaymentDelay),
		db.MethodOrangeMoney: service.NewMobileMoneyProcessor(cfg.PaymentDelay),
		db.MethodCard: service.NewStripeCardProcessor(
			os.Getenv("STRIPE_SUCCESS_URL"),
			os.Getenv("STRIPE_CANCEL_URL"),
		),
	}
	paymentService := service.NewPaymentService(paymentRepo, bookingRepo, notificationRepo, senderService, processors)
	jobService := service.NewJobService(jobRepo)

	validate := validator.New()

	authHandler := api.NewAuthHandler(authService, validate)
	carHandler := api.NewCarHandler(carService, validate)
	bookingHandler := api.NewBookingHandler(bookingService, validate)
	paymentHandler := api.NewPaymentHandler(paymentService, paymentRepo, validate)
	notificationHandler := api.NewNotificationHandler(notificationRepo)
	operatorHandler := api.NewOperatorHandler(carService, bookingService, paymentRepo, rentalServiceRepo, validate)
	stripeHandler := api.NewStripeWebhookHandler(cfg.StripeWebhookSecret, paymentService)

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/api/auth/signup", authHandler.SignUp).Methods("POST")
	r.HandleFunc("/api/auth/signin", authHandler.SignIn).Methods("POST")
	r.HandleFunc("/api/auth/register-service", authHandler.RegisterService).Methods("POST")
	r.HandleFunc("/api/cars", carHandler.ListCars).Methods("GET")
	r.HandleFunc("/api/cars/{id}", carHandler.GetCar).Methods("GET")
	r.HandleFunc("/api/cars/{id}/reviews", carHandler.ListReviews).Methods("GET")
	r.HandleFunc("/api/locations", carHandler.ListLocations).Methods("GET")
	r.HandleFunc("/api/webhooks/stripe", stripeHandler.HandleWebhook).Methods("POST")

	// Authenticated endpoints
	authed := r.PathPrefix("/api").Subrouter()
	authed.Use(auth.Middleware)
	authed.HandleFunc("/me", authHandler.GetProfile).Methods("GET")
	authed.HandleFunc("/me", authHandler.UpdateProfile).Methods("PUT")
	authed.HandleFunc("/bookings", bookingHandler.CreateBooking).Methods("POST")
	authed.HandleFunc("/bookings", bookingHandler.ListMyBookings).Methods("GET")
	authed.HandleFunc("/bookings/{id}", bookingHandler.GetBooking).Methods("GET")
	authed.HandleFunc("/bookings/{id}", bookingHandler.CancelBooking).Methods("DELETE")
	authed.HandleFunc("/bookings/{id}/pay", paymentHandler.PayBooking).Methods("POST")
	authed.HandleFunc("/payments", paymentHandler.ListMyPayments).Methods("GET")
	authed.HandleFunc("/cars/{id}/reviews", carHandler.CreateReview).Methods("POST")
	authed.HandleFunc("/notifications", notificationHandler.ListNotifications).Methods("GET")
	authed.HandleFunc("/notifications/read-all", notificationHandler.MarkAllRead).Methods("PUT")
	authed.HandleFunc("/notifications/{id}/read", notificationHandler.MarkRead).Methods("PUT")
	authed.HandleFunc("/notifications/{id}", notificationHandler.DeleteNotification).Methods("DELETE")

	// Rental service dashboard (protected)
	operator := r.PathPrefix("/api/operator").Subrouter()
	operator.Use(auth.Middleware, auth.RequireRole(db.RoleAdmin))
	operator.HandleFunc("/cars", operatorHandler.AddCar).Methods("POST")
	operator.HandleFunc("/cars", operatorHandler.ListFleet).Methods("GET")
	operator.HandleFunc("/cars/{id}/status", operatorHandler.UpdateCarStatus).Methods("PUT")
	operator.HandleFunc("/bookings", operatorHandler.ListServiceBookings).Methods("GET")
	operator.HandleFunc("/bookings/{id}/status", operatorHandler.UpdateBookingStatus).Methods("PUT")
	operator.HandleFunc("/payments", operatorHandler.ListServicePayments).Methods("GET")
	operator.HandleFunc("/payout-accounts", operatorHandler.CreatePayoutAccount).Methods("POST")
	operator.HandleFunc("/payout-accounts", operatorHandler.ListPayoutAccounts).Methods("GET")
	operator.HandleFunc("/payout-accounts/{id}", operatorHandler.SetPayoutAccountActive).Methods("PUT")
	operator.HandleFunc("/payout-accounts/{id}", operatorHandler.DeletePayoutAccount).Methods("DELETE")

	c := cron.New()
	if _, err := c.AddFunc("@hourly", jobService.CompleteFinishedBookings); err != nil {
		log.Fatalf("Failed to schedule booking sweep: %v", err)
	}
	c.Start()

	cors := gorillahandlers.CORS(
		gorillahandlers.AllowedOrigins(cfg.AllowedOrigins),
		gorillahandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorillahandlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	log.Printf("Server running on port %s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, cors(r)))
}
