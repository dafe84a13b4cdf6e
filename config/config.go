package config

import (
	"log/slog"
	"os"
)

type Config struct {
	// MongoDB configuration
	MongoURI     string
	DatabaseName string

	// Server configuration
	Port string

	// Meta (Instagram via Facebook Login) OAuth configuration
	MetaAppID       string
	MetaAppSecret   string
	MetaRedirectURI string

	// TikTok OAuth configuration
	TikTokClientKey    string
	TikTokClientSecret string
	TikTokRedirectURI  string
}

func LoadConfig() *Config {
	cfg := &Config{
		MongoURI:     getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DatabaseName: getEnv("MONGO_DB_NAME", "guestboard"),
		Port:         getEnv("PORT", "8080"),

		MetaAppID:       getEnv("META_APP_ID", ""),
		MetaAppSecret:   getEnv("META_APP_SECRET", ""),
		MetaRedirectURI: getEnv("IG_REDIRECT_URI", ""),

		TikTokClientKey:    getEnv("TIKTOK_CLIENT_KEY", ""),
		TikTokClientSecret: getEnv("TIKTOK_CLIENT_SECRET", ""),
		TikTokRedirectURI:  getEnv("TIKTOK_REDIRECT_URI", ""),
	}

	// Validate required configuration
	if cfg.MongoURI == "" {
		slog.Error("MONGO_URI not set")
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
