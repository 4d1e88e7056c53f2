package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv      string
	Port        string
	MongoURI    string
	MongoDBName string
	TokenSecret string
	JWTExpiry   string
	RedisAddr   string
	RedisURL    string
	OriginURL   string
}

var AppConfig *Config

func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	AppConfig = &Config{
		AppEnv:      getEnv("APP_ENV", "development"),
		Port:        getEnv("APP_PORT", getEnv("PORT", "4242")),
		MongoURI:    getEnv("MONGO_CONNECTION_STRING", "mongodb://localhost:27017"),
		MongoDBName: getEnv("MONGO_DB", "prodigy"),
		TokenSecret: getEnv("TOKEN_SECRET", "secret"),
		JWTExpiry:   getEnv("JWT_EXPIRY", "24h"),
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		RedisURL:    getEnv("REDIS_URL", ""),
		OriginURL:   getEnv("ORIGIN_URL", ""),
	}

	log.Println("Configuration loaded successfully")
	log.Printf("Environment: %s", AppConfig.AppEnv)
	log.Printf("Server will run on port: %s", AppConfig.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
