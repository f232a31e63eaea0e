package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI string
	MongoDB  string
	Port     string

	RedisAddr     string
	RedisPassword string

	StripeSecretKey string
	StripeAPIKey    string

	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFrom       string
}

func LoadConfig() *Config {
	// Only load .env when present; deployed environments rely on
	// system environment variables.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			log.Println("error loading .env file:", err)
		}
	}

	return &Config{
		MongoURI:         getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:          getEnv("MONGO_DB", "farmhub"),
		Port:             getEnv("PORT", "8080"),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		StripeSecretKey:  getEnv("STRIPE_SECRET_KEY", ""),
		StripeAPIKey:     getEnv("STRIPE_API_KEY", ""),
		TwilioAccountSID: getEnv("ACCOUNT_SID", ""),
		TwilioAuthToken:  getEnv("AUTH_TOKEN", ""),
		TwilioFrom:       getEnv("TWILIO_FROM", ""),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
