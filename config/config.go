package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"storefront-api/models"
	"storefront-api/pricing"
	"storefront-api/storage"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MemoryDB opens a private in-memory database
const MemoryDB = ":memory:"

type Config struct {
	Port               string
	GinMode            string
	DBPath             string
	JWTSecret          []byte
	JWTTTL             time.Duration
	Currency           string
	DeliveryFee        float64
	TaxRate            float64
	StripeSecretKey    string
	PaymentRelayURL    string
	PaymentDescription string
	AMQPURL            string
	AMQPExchange       string
	CORSOrigins        []string
	AdminEmail         string
	AdminPassword      string
}

// Load reads .env when present, then the environment
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("⚠️  Could not read .env: %v", err)
	}

	return &Config{
		Port:               getEnv("PORT", "8080"),
		GinMode:            os.Getenv("GIN_MODE"),
		DBPath:             getEnv("DB_PATH", "storefront.db"),
		JWTSecret:          []byte(getEnv("JWT_SECRET", "storefront_super_secret_2024")),
		JWTTTL:             getDuration("JWT_TTL", 24*time.Hour),
		Currency:           strings.ToLower(getEnv("CURRENCY", pricing.DefaultCurrency)),
		DeliveryFee:        getFloat("DELIVERY_FEE", pricing.DefaultDeliveryFee),
		TaxRate:            getFloat("TAX_RATE", pricing.DefaultTaxRate),
		StripeSecretKey:    os.Getenv("STRIPE_SECRET_KEY"),
		PaymentRelayURL:    os.Getenv("PAYMENT_RELAY_URL"),
		PaymentDescription: getEnv("PAYMENT_DESCRIPTION", "Restaurant order"),
		AMQPURL:            os.Getenv("AMQP_URL"),
		AMQPExchange:       getEnv("AMQP_EXCHANGE", "orders_topic"),
		CORSOrigins:        splitList(getEnv("CORS_ORIGINS", "*")),
		AdminEmail:         os.Getenv("ADMIN_EMAIL"),
		AdminPassword:      os.Getenv("ADMIN_PASSWORD"),
	}
}

func (c *Config) FeeSchedule() pricing.FeeSchedule {
	return pricing.FeeSchedule{
		DeliveryFee: c.DeliveryFee,
		TaxRate:     c.TaxRate,
		Currency:    c.Currency,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("⚠️  %s=%q is not a number, using %v", key, v, fallback)
		return fallback
	}
	return f
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("⚠️  %s=%q is not a duration, using %v", key, v, fallback)
		return fallback
	}
	return d
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// OpenDB connects to the sqlite database at path and migrates every model
func OpenDB(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if path == MemoryDB {
		// every pooled connection would otherwise get its own empty database
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.MenuItem{},
		&models.RestaurantInfo{},
		&models.OrderRecord{},
		&models.OrderStatusHistory{},
		&storage.Entry{},
	)
	if err != nil {
		return nil, err
	}
	return db, nil
}
