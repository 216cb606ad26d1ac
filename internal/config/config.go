package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RedisAddr        string        // empty disables the category cache
	CategoryCacheTTL time.Duration

	JWTSecret          string
	JWTExpirationHours time.Duration

	GeminiAPIKey string // empty disables the delegated planner
	GeminiModel  string

	QuoteTaxRate float64
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not load .env file: %v", err)
	}

	dbPort, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))
	jwtExpHours, _ := strconv.Atoi(getEnv("JWT_EXPIRATION_HOURS", "24"))
	cacheTTLMin, _ := strconv.Atoi(getEnv("CATEGORY_CACHE_TTL_MINUTES", "10"))
	taxRate, err := strconv.ParseFloat(getEnv("QUOTE_TAX_RATE", "0.18"), 64)
	if err != nil {
		taxRate = 0.18
	}

	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     dbPort,
		DBUser:     getEnv("DB_USER", "elfsod"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "elfsod"),
		DBSslMode:  getEnv("DB_SSLMODE", "disable"),

		RedisAddr:        getEnv("REDIS_ADDR", ""),
		CategoryCacheTTL: time.Duration(cacheTTLMin) * time.Minute,

		JWTSecret:          getEnv("JWT_SECRET", "change-me-in-production"),
		JWTExpirationHours: time.Duration(jwtExpHours) * time.Hour,

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.0-flash"),

		QuoteTaxRate: taxRate,
	}
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
