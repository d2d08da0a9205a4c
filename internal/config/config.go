package config

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/carshop/backend/internal/models"
)

type Config struct {
	AppName string
	Host    string
	Port    int

	AdminName         string
	AdminPasswordHash string

	JWTSecret          string
	JWTAlgorithm       string
	TokenExpireMinutes int

	DatabaseURL string
	UploadDir   string

	KafkaAddress string

	ES_URL      string
	ES_User     string
	ES_Password string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	cfg := &Config{
		AppName: EnvDefault("APP_NAME", "Shop API"),
		Host:    EnvDefault("HOST", "0.0.0.0"),
		Port:    EnvIntDefault("PORT", 5000),

		AdminName:         os.Getenv("ADMIN_NAME"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),

		JWTSecret:          os.Getenv("JWT_SECRET"),
		JWTAlgorithm:       EnvDefault("JWT_ALGORITHM", "HS256"),
		TokenExpireMinutes: EnvIntDefault("ACCESS_TOKEN_EXPIRE_MINUTES", 30),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		UploadDir:   EnvDefault("UPLOAD_DIR", "uploads"),

		KafkaAddress: os.Getenv("KAFKA_ADDRESS"),

		ES_URL:      os.Getenv("ES_URL"),
		ES_User:     os.Getenv("ES_USER"),
		ES_Password: os.Getenv("ES_PASSWORD"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is empty")
	}
	if cfg.AdminName == "" || cfg.AdminPasswordHash == "" {
		return nil, fmt.Errorf("ADMIN_NAME and ADMIN_PASSWORD_HASH must be set")
	}

	return cfg, nil
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
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

func configurePool(sqlDB *sql.DB) {
	const (
		maxOpenConns    = 20
		maxIdleConns    = 10
		connMaxLifetime = 30 * time.Minute
		connMaxIdleTime = 5 * time.Minute
	)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)
}

func InitDB(ctx context.Context, dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt: true,
		NowFunc:     func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("could not connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("could not get sql.DB: %w", err)
	}
	configurePool(sqlDB)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("database ping: %w", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Admin{}, &models.Car{}, &models.CartItem{}); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return db, nil
}
