package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort int
	Database   DatabaseConfig
	Mongo      MongoConfig
	JWT        JWTConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	UseSSL   bool
}

type MongoConfig struct {
	URI string
}

type JWTConfig struct {
	Secret string
	Expiry time.Duration
}

// requiredVars must be present in the environment; startup aborts otherwise.
var requiredVars = []string{
	"PG_HOST",
	"PG_USER",
	"PG_PASSWORD",
	"PG_DATABASE",
	"MONGO_URI",
	"JWT_SECRET",
}

func Load() (Config, error) {
	if os.Getenv("ENV") == "dev" {
		godotenv.Load()
	}

	for _, key := range requiredVars {
		if os.Getenv(key) == "" {
			return Config{}, fmt.Errorf("missing required environment variable: %s", key)
		}
	}

	expiry, err := getEnvDuration("JWT_EXPIRES_IN", 168*time.Hour)
	if err != nil {
		return Config{}, err
	}

	return Config{
		ServerPort: getEnvInt("PORT", 4001),
		Database: DatabaseConfig{
			Host:     os.Getenv("PG_HOST"),
			Port:     getEnvInt("PG_PORT", 5432),
			User:     os.Getenv("PG_USER"),
			Password: os.Getenv("PG_PASSWORD"),
			DBName:   os.Getenv("PG_DATABASE"),
			UseSSL:   getEnv("PG_SSL", "false") == "true",
		},
		Mongo: MongoConfig{
			URI: os.Getenv("MONGO_URI"),
		},
		JWT: JWTConfig{
			Secret: os.Getenv("JWT_SECRET"),
			Expiry: expiry,
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		var value int
		fmt.Sscanf(valueStr, "%d", &value)
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}
