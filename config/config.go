package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string
	AppEnv  string

	JWTSecret string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Credentials for signing browser-direct uploads to the image host.
	UploadAPIKey    string
	UploadAPISecret string
}

func get(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() *Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	return &Config{
		AppPort: get("APP_PORT", "8080"),
		AppEnv:  get("APP_ENV", "dev"),

		JWTSecret: get("JWT_SECRET", "dev-secret"),

		DBHost:     get("DB_HOST", "localhost"),
		DBPort:     get("DB_PORT", "5432"),
		DBUser:     get("DB_USER", "postgres"),
		DBPassword: get("DB_PASSWORD", "postgres"),
		DBName:     get("DB_NAME", "psmadmin"),
		DBSSLMode:  get("DB_SSLMODE", "disable"),

		UploadAPIKey:    get("UPLOAD_API_KEY", ""),
		UploadAPISecret: get("UPLOAD_API_SECRET", ""),
	}
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode,
	)
}
