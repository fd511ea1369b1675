package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	AppEnv        string
	DatabaseURL   string
	JWTSecret     string
	JWTIssuer     string
	JWTTTLMinutes int

	GoogleClientID string

	GeminiAPIKey string
	GeminiBase   string
	GeminiModel  string

	PlantIDAPIKey string
	PlantIDBase   string
}

// Load reads environment variables, optionally from a .env file if present.
func Load() Config {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		AppEnv:        getEnv("APP_ENV", "development"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		JWTSecret:     getEnv("JWT_SECRET", "dev-secret-change"),
		JWTIssuer:     getEnv("JWT_ISSUER", "daunku"),
		JWTTTLMinutes: getEnvInt("JWT_TTL_MINUTES", 24*60),

		GoogleClientID: os.Getenv("GOOGLE_CLIENT_ID"),

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiBase:   os.Getenv("GEMINI_API_BASE"),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-pro"),

		PlantIDAPIKey: os.Getenv("PLANTID_API_KEY"),
		PlantIDBase:   os.Getenv("PLANTID_API_BASE"),
	}
	return cfg
}

// Production reports whether the service runs in production mode.
// Google sign-in verification and image upload fall back to stubs otherwise.
func (c Config) Production() bool {
	return c.AppEnv == "production"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
