package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/kmoo25z/ameriduka/internal/modules/admin"
	"github.com/kmoo25z/ameriduka/internal/modules/cart"
	"github.com/kmoo25z/ameriduka/internal/modules/catalog"
	"github.com/kmoo25z/ameriduka/internal/modules/orders"
	"github.com/kmoo25z/ameriduka/internal/modules/payments"
	"github.com/kmoo25z/ameriduka/internal/modules/promos"
	"github.com/kmoo25z/ameriduka/internal/modules/reviews"
	"github.com/kmoo25z/ameriduka/internal/modules/users"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN environment variable is required")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&users.User{},
		&catalog.Product{},
		&cart.Item{},
		&orders.Order{},
		&payments.Transaction{},
		&reviews.Review{},
		&promos.PromoCode{},
		&admin.Employee{},
		&admin.CustomerNote{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate: %v", err)
	}

	log.Println("Tables created")
}
