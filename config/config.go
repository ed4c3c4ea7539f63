package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	ServerPort     string
	DBHost         string
	DBPort         int
	DBUser         string
	DBPassword     string
	DBName         string
	DBSSLMode      string
	SessionSecret  string
	JWTSecret      string
	JWTExpiry      int // в часах
	PasswordScheme string
}

func Load() *Config {
	return &Config{
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnvAsInt("DB_PORT", 5432),
		DBUser:         getEnv("DB_USER", "academy"),
		DBPassword:     getEnv("DB_PASSWORD", "123456"),
		DBName:         getEnv("DB_NAME", "academy_db"),
		DBSSLMode:      getEnv("DB_SSLMODE", "disable"),
		SessionSecret:  getEnv("SESSION_SECRET", "change-me-session-secret"),
		JWTSecret:      getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		JWTExpiry:      getEnvAsInt("JWT_EXPIRY", 24),
		PasswordScheme: getEnv("PASSWORD_SCHEME", "plain"),
	}
}

// DSN собирает строку подключения к PostgreSQL
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
