package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                string
	DatabaseURL         string
	RedisAddr           string
	JWTSecret           string
	StripeSecretKey     string
	StripeWebhookSecret string
	AllowedOrigins      []string
	// PaymentDelay is how long the simulated mobile-money processor waits
	// before reporting success.
	PaymentDelay time.Duration
}

func Load() Config {
	godotenv.Load()

	return Config{
		Port:                getenv("PORT", "8080"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		RedisAddr:           getenv("REDIS_ADDR", "localhost:6379"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		AllowedOrigins:      splitCSV(getenv("ALLOWED_ORIGINS", "http://localhost:3000")),
		PaymentDelay:        time.Duration(getenvInt("PAYMENT_DELAY_SECONDS", 3)) * time.Second,
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
