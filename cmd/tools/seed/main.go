package main

import (
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/kmoo25z/ameriduka/internal/modules/catalog"
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

	seedAdmin(db)
	seedProducts(db)
	log.Println("Seed complete")
}

func seedAdmin(db *gorm.DB) {
	email := os.Getenv("SEED_ADMIN_EMAIL")
	if email == "" {
		email = "admin@techgalaxy.local"
	}
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	var existing users.User
	if err := db.First(&existing, "email = ?", email).Error; err == nil {
		log.Printf("Admin %s already exists, skipping", email)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	u := users.User{
		UserID:       "user_" + uuid.NewString()[:12],
		Email:        email,
		PasswordHash: string(hash),
		Name:         "Store Admin",
		Role:         users.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
	}
	if err := db.Create(&u).Error; err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}
	log.Printf("Created admin %s", email)
}

type seedProduct struct {
	name       string
	category   string
	brand      string
	priceCents int64
	stock      int
	featured   bool
	tags       string
}

func seedProducts(db *gorm.DB) {
	var count int64
	db.Model(&catalog.Product{}).Count(&count)
	if count > 0 {
		log.Printf("Products already seeded (%d rows), skipping", count)
		return
	}

	items := []seedProduct{
		{"Galaxy S24 Ultra", catalog.CategoryPhones, "Samsung", 119900, 25, true, `["flagship","android"]`},
		{"iPhone 15 Pro", catalog.CategoryPhones, "Apple", 99900, 30, true, `["flagship","ios"]`},
		{"MacBook Air M3", catalog.CategoryLaptops, "Apple", 129900, 15, true, `["ultrabook"]`},
		{"ThinkPad X1 Carbon", catalog.CategoryLaptops, "Lenovo", 149900, 10, false, `["business"]`},
		{"iPad Air", catalog.CategoryTablets, "Apple", 59900, 20, false, `["tablet"]`},
		{"WH-1000XM5", catalog.CategoryAudio, "Sony", 39900, 40, true, `["headphones","anc"]`},
		{"Watch Series 9", catalog.CategoryWearables, "Apple", 42900, 18, false, `["smartwatch"]`},
		{"65W GaN Charger", catalog.CategoryAccessories, "Anker", 4900, 100, false, `["charging"]`},
	}

	for _, it := range items {
		p := catalog.Product{
			ProductID:      "prod_" + uuid.NewString()[:12],
			Name:           it.name,
			Description:    it.name + " - quality tech from TechGalaxy.",
			Category:       it.category,
			Brand:          it.brand,
			Condition:      catalog.ConditionNew,
			PriceUSDCents:  it.priceCents,
			Stock:          it.stock,
			Images:         datatypes.JSON(`[]`),
			Specifications: datatypes.JSON(`{}`),
			WarrantyMonths: 12,
			Featured:       it.featured,
			Tags:           datatypes.JSON(it.tags),
			CreatedAt:      time.Now().UTC(),
		}
		if err := db.Create(&p).Error; err != nil {
			log.Fatalf("Failed to seed product %s: %v", it.name, err)
		}
	}
	log.Printf("Seeded %d products", len(items))
}
