// Package config loads application configuration from the environment.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Telegram
	TelegramBotToken string
	TelegramChatID   int64

	// AI oracle
	OpenAIAPIKey string

	// Bill reminder scheduler: hours of day (0-23) when a scan may run.
	ReminderHours []int

	// How long an unconfirmed pending transaction survives.
	PendingTTL time.Duration
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Port: getEnv("PORT", "8080"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "finbot"),
		DBPassword: getEnv("DB_PASSWORD", "finbot"),
		DBName:     getEnv("DB_NAME", "finbot"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		OpenAIAPIKey:     getEnv("OPENAI_API_KEY", ""),
	}

	chatIDStr := getEnv("TELEGRAM_CHAT_ID", "0")
	chatID, err := strconv.ParseInt(chatIDStr, 10, 64)
	if err != nil {
		log.Printf("Warning: invalid TELEGRAM_CHAT_ID value '%s', reminders disabled\n", chatIDStr)
		chatID = 0
	}
	config.TelegramChatID = chatID

	config.ReminderHours = parseHours(getEnv("REMINDER_HOURS", "9,18"))

	ttlStr := getEnv("PENDING_TTL", "30m")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		log.Printf("Warning: invalid PENDING_TTL value '%s', falling back to 30m\n", ttlStr)
		ttl = 30 * time.Minute
	}
	config.PendingTTL = ttl

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// parseHours parses a comma-separated hour list, dropping invalid entries.
func parseHours(s string) []int {
	var hours []int
	for _, part := range strings.Split(s, ",") {
		h, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || h < 0 || h > 23 {
			log.Printf("Warning: ignoring invalid reminder hour %q\n", part)
			continue
		}
		hours = append(hours, h)
	}
	if len(hours) == 0 {
		hours = []int{9, 18}
	}
	return hours
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
