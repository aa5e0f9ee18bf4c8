package config

import (
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"zatoka-backend/models"
)

var DB *gorm.DB

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "UTC")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := os.Getenv("DB_PASS")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "zatoka_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		user, pass, host, port, dbName,
	), nil
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}

	DB = db

	if err := DB.AutoMigrate(
		&models.Admin{},
		&models.Room{},
		&models.Booking{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}

func jsonList(items ...string) datatypes.JSON {
	data, _ := json.Marshal(items)
	return datatypes.JSON(data)
}

// SeedDatabase is idempotent: the default admin and demo rooms are created
// only when their tables are empty. Demo bookings additionally require
// SEED_DEMO_BOOKINGS=true so a fresh production database starts clean.
func SeedDatabase() {
	// ---------------- Admin ----------------
	var adminCount int64
	DB.Model(&models.Admin{}).Count(&adminCount)
	if adminCount == 0 {
		username := envOrDefault("ADMIN_USERNAME", "admin@zatoka.local")
		password := envOrDefault("ADMIN_PASSWORD", "admin123")
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("warning: failed to hash default admin password: %v", err)
		} else {
			admin := models.Admin{
				FullName: "Admin User",
				Username: username,
				Password: string(hash),
			}
			if err := DB.Create(&admin).Error; err != nil {
				log.Printf("warning: failed to create default admin: %v", err)
			} else {
				log.Println("Default admin seeded")
			}
		}
	}

	// ---------------- Rooms ----------------
	var roomCount int64
	DB.Model(&models.Room{}).Count(&roomCount)
	if roomCount == 0 {
		rooms := []models.Room{
			{
				ID:          "standard",
				Name:        "Standard Sea View",
				Description: "A cozy room with a stunning view of the Black Sea. Perfect for couples, it features a comfortable queen-sized bed and a modern bathroom.",
				Price:       1500,
				Capacity:    2,
				Amenities:   jsonList("Wi-Fi", "Air Conditioning", "TV", "Mini-bar"),
				ImageURL:    "https://picsum.photos/seed/standard-room/600/400",
				ImageHint:   "standard-room",
			},
			{
				ID:          "deluxe",
				Name:        "Deluxe Suite",
				Description: "Spacious and elegant, our deluxe suite offers a private balcony to enjoy the sea breeze, a plush king-sized bed, and a luxurious bathroom with a jacuzzi.",
				Price:       2500,
				Capacity:    2,
				Amenities:   jsonList("Wi-Fi", "Air Conditioning", "TV", "Mini-bar", "Balcony", "Jacuzzi"),
				ImageURL:    "https://picsum.photos/seed/deluxe-room/600/400",
				ImageHint:   "deluxe-room",
			},
			{
				ID:          "family",
				Name:        "Family Garden View",
				Description: "A large room with a king bed and a bunk bed, ideal for families. Overlooks our beautiful garden and includes a small kitchenette for your convenience.",
				Price:       2200,
				Capacity:    4,
				Amenities:   jsonList("Wi-Fi", "Air Conditioning", "TV", "Kitchenette"),
				ImageURL:    "https://picsum.photos/seed/family-room/600/400",
				ImageHint:   "family-room",
			},
			{
				ID:          "suite",
				Name:        "Presidential Suite",
				Description: "The ultimate luxury experience with a separate living room, panoramic sea views from a large private terrace, and exclusive services including a personal butler.",
				Price:       5000,
				Capacity:    3,
				Amenities:   jsonList("Wi-Fi", "Air Conditioning", "Smart TV", "Full Kitchen", "Private Terrace", "Personal Butler"),
				ImageURL:    "https://picsum.photos/seed/suite-room/600/400",
				ImageHint:   "suite-room",
			},
		}
		if err := DB.Create(&rooms).Error; err != nil {
			log.Printf("warning: failed to seed rooms: %v", err)
		} else {
			log.Printf("Seeded %d rooms", len(rooms))
		}
	}

	// ---------------- Demo bookings ----------------
	if strings.EqualFold(os.Getenv("SEED_DEMO_BOOKINGS"), "true") {
		var bookingCount int64
		DB.Model(&models.Booking{}).Count(&bookingCount)
		if bookingCount == 0 {
			today := time.Now().UTC().Truncate(24 * time.Hour)
			email := func(s string) *string { return &s }
			bookings := []models.Booking{
				{
					ID:        uuid.NewString(),
					RoomID:    "standard",
					StartDate: today.AddDate(0, 0, 7),
					EndDate:   today.AddDate(0, 0, 12),
					Name:      "Ivan Ivanov",
					Phone:     "+380501234567",
					Email:     email("ivan@example.com"),
				},
				{
					ID:        uuid.NewString(),
					RoomID:    "standard",
					StartDate: today.AddDate(0, 0, 14),
					EndDate:   today.AddDate(0, 0, 16),
					Name:      "Maria Petrova",
					Phone:     "+380502345678",
					Email:     email("maria@example.com"),
				},
				{
					ID:        uuid.NewString(),
					RoomID:    "deluxe",
					StartDate: today.AddDate(0, 0, 21),
					EndDate:   today.AddDate(0, 0, 28),
					Name:      "Oleg Sidorov",
					Phone:     "+380503456789",
					Email:     email("oleg@example.com"),
				},
				{
					ID:        uuid.NewString(),
					RoomID:    "family",
					StartDate: today.AddDate(0, 1, 0),
					EndDate:   today.AddDate(0, 1, 9),
					Name:      "Anna Kovalenko",
					Phone:     "+380504567890",
					Email:     email("anna@example.com"),
				},
			}
			if err := DB.Create(&bookings).Error; err != nil {
				log.Printf("warning: failed to seed demo bookings: %v", err)
			} else {
				log.Printf("Seeded %d demo bookings", len(bookings))
			}
		}
	}
}
