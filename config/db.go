package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"villa-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
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
		q.Set("loc", "Local")
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
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "villa_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

// SeedDatabase ensures the rows the portals need on a fresh database: a default
// admin, the site settings row and the baseline loyalty rules.
func SeedDatabase() {
	// ---------------- Admins ----------------
	var adminCount int64
	DB.Model(&models.Admin{}).Count(&adminCount)
	if adminCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("warning: failed to hash default admin password: %v", err)
		} else {
			admin := models.Admin{
				FullName: "Admin User",
				Username: "admin@luxestaycations.local",
				Password: string(hash),
			}
			if err := DB.Create(&admin).Error; err != nil {
				log.Printf("warning: failed to create default admin: %v", err)
			} else {
				log.Println("Default admin seeded")
			}
		}
	}

	// ---------------- Site settings ----------------
	var settingCount int64
	DB.Model(&models.SiteSetting{}).Count(&settingCount)
	if settingCount == 0 {
		setting := models.SiteSetting{
			Name:            "Luxe Staycations",
			Tagline:         "Handpicked villas for unforgettable stays",
			MetaTitle:       "Luxe Staycations — Luxury Villa Rentals",
			MetaDescription: "Book handpicked luxury villas with instant availability.",
		}
		if err := DB.Create(&setting).Error; err != nil {
			log.Printf("warning: failed to seed site settings: %v", err)
		} else {
			log.Println("Site settings seeded")
		}
	}

	// ---------------- Loyalty rules ----------------
	var ruleCount int64
	DB.Model(&models.LoyaltyRule{}).Count(&ruleCount)
	if ruleCount == 0 {
		rules := []models.LoyaltyRule{
			{
				Name:         "Base earn rate",
				Slug:         "base-earn",
				Description:  "1 point per 100 spent on any booking",
				PointsPer100: 1,
				Multiplier:   1,
			},
			{
				Name:             "Premium stays",
				Slug:             "premium-stays",
				Description:     "Double points on bookings of 50000 or more",
				PointsPer100:     1,
				Multiplier:       2,
				MinBookingAmount: 50000,
			},
		}
		if err := DB.Create(&rules).Error; err != nil {
			log.Printf("warning: failed to seed loyalty rules: %v", err)
		} else {
			log.Println("Loyalty rules seeded")
		}
	}
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

	// AutoMigrate in parent->child order
	if err := DB.AutoMigrate(
		&models.Admin{},
		&models.SiteSetting{},
		&models.Host{},
		&models.Property{},
		&models.Booking{},
		&models.Payment{},
		&models.Coupon{},
		&models.CouponRedemption{},
		&models.LoyaltyRule{},
		&models.LoyaltyTransaction{},
		&models.EmailLog{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}
