package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort   string
	Environment  string
	DatabasePath string
	UploadDir    string

	JWTSecret          string
	TokenValidityHours int

	AIServerURL      string
	AITimeoutSeconds int

	// Logging
	LogFilePath   string
	LogHMACKey    string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	}

	return &Config{
		ServerPort:   getEnv("SERVER_PORT", "8800"),
		Environment:  getEnv("ENVIRONMENT", "development"),
		DatabasePath: getEnv("DATABASE_PATH", "music.db"),
		UploadDir:    getEnv("UPLOAD_DIR", "uploads"),

		JWTSecret:          getEnv("JWT_SECRET", "SUPER_SECRET_KEY"),
		TokenValidityHours: getEnvAsInt("TOKEN_VALIDITY_HOURS", 24),

		AIServerURL:      getEnv("AI_SERVER_URL", "http://127.0.0.1:5000"),
		AITimeoutSeconds: getEnvAsInt("AI_TIMEOUT_SECONDS", 10),

		LogFilePath:   getEnv("LOG_FILE_PATH", "logs/app.log"),
		LogHMACKey:    getEnv("LOG_HMAC_KEY", "default-hmac-key-change-in-production"),
		LogMaxSizeMB:  getEnvAsInt("LOG_MAX_SIZE_MB", 100),
		LogMaxBackups: getEnvAsInt("LOG_MAX_BACKUPS", 5),
		LogMaxAgeDays: getEnvAsInt("LOG_MAX_AGE_DAYS", 30),
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
