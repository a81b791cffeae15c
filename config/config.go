package config

import (
	"os"
	"time"

	"foodplatform/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config carries everything the services need at startup. It is built once
// in main and passed into constructors; nothing reads the environment after
// Load returns.
type Config struct {
	Port      string
	DBPath    string
	JWTSecret []byte
	TokenTTL  time.Duration
}

func Load() Config {
	ttl := 24 * time.Hour
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			ttl = d
		}
	}
	return Config{
		Port:      getEnv("PORT", "8080"),
		DBPath:    getEnv("DB_PATH", "foodplatform.db"),
		JWTSecret: []byte(getEnv("JWT_SECRET", "food_platform_super_secret_2024")),
		TokenTTL:  ttl,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// OpenDB connects to SQLite and migrates all models.
func OpenDB(cfg Config) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderStatusHistory{},
	)
	if err != nil {
		return nil, err
	}
	return db, nil
}
