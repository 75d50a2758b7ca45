package config

import "os"

type Config struct {
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	BotToken       string
	JWTSecret      string
	WebhookSecret  string
	WebhookBaseURL string
	ServerPort     string
	LogLevel       string
}

func Load() *Config {
	return &Config{
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASSWORD", "postgres"),
		DBName:         getEnv("DB_NAME", "shoppinglist"),
		BotToken:       getEnv("TELEGRAM_BOT_TOKEN", ""),
		JWTSecret:      getEnv("JWT_SECRET", "super-secret-key-change-me"),
		WebhookSecret:  getEnv("WEBHOOK_SECRET", "webhook-secret-change-me"),
		WebhookBaseURL: getEnv("WEBHOOK_BASE_URL", ""),
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
