package main

import (
	"log"
	"os"
	"time"

	"log/slog"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	apphttp "github.com/kmoo25z/ameriduka/internal/http"
	"github.com/kmoo25z/ameriduka/internal/modules/payments"
	"github.com/kmoo25z/ameriduka/internal/modules/users"
)

func main() {
	// Load .env file (ignore error if not found - prod uses real env vars)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN environment variable is required")
	}
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable is required")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	userSvc := users.NewService(db, jwtSecret, 24*time.Hour)

	var provider payments.Provider
	if base := os.Getenv("PAYMENT_API_URL"); base != "" {
		provider = payments.NewHostedProvider(base,
			os.Getenv("PAYMENT_API_KEY"),
			os.Getenv("PAYMENT_WEBHOOK_SECRET"))
	} else {
		logger.Warn("PAYMENT_API_URL not set, using mock payment provider")
		provider = payments.NewMockProvider(os.Getenv("PAYMENT_WEBHOOK_SECRET"))
	}

	r := apphttp.NewRouter(apphttp.Deps{
		Logger:   logger,
		DB:       db,
		Users:    userSvc,
		Provider: provider,
	})

	addr := ":8080"
	if p := os.Getenv("PORT"); p != "" {
		addr = ":" + p
	}
	if err := r.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
