package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config carries every secret and tunable the process needs. It is built
// once in main and handed to the components that use it; nothing reads the
// environment after startup.
type Config struct {
	Port string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	GeminiAPIKey string
	GeminiModel  string
	USDAAPIKey   string

	JWTSecret          string
	TokenExpireMinutes int
}

func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		Port: getEnv("PORT", "8080"),

		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     getEnv("DB_PORT", "5432"),

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-pro"),
		USDAAPIKey:   os.Getenv("USDA_API_KEY"),

		JWTSecret:          os.Getenv("JWT_SECRET"),
		TokenExpireMinutes: getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 60),
	}

	var missing []string
	required := map[string]string{
		"GEMINI_API_KEY": cfg.GeminiAPIKey,
		"USDA_API_KEY":   cfg.USDAAPIKey,
		"DB_HOST":        cfg.DBHost,
		"DB_USER":        cfg.DBUser,
		"DB_PASSWORD":    cfg.DBPassword,
		"DB_NAME":        cfg.DBName,
		"JWT_SECRET":     cfg.JWTSecret,
	}
	for name, v := range required {
		if v == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
