package config

import "os"

// Config collects every environment-driven setting. Defaults suit local
// development; production overrides them via the environment or .env.
type Config struct {
	Port                string
	DB                  DBConfig
	PredictorURL        string
	FirebaseCredentials string
	LogLevel            string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func Load() *Config {
	return &Config{
		Port: getEnvOrDefault("PORT", "8080"),
		DB: DBConfig{
			Host:     getEnvOrDefault("DB_HOST", "localhost"),
			Port:     getEnvOrDefault("DB_PORT", "3306"),
			User:     getEnvOrDefault("DB_USER", "root"),
			Password: getEnvOrDefault("DB_PASSWORD", ""),
			Name:     getEnvOrDefault("DB_NAME", "heartguard"),
		},
		PredictorURL:        getEnvOrDefault("PREDICTOR_URL", "http://localhost:5142"),
		FirebaseCredentials: os.Getenv("FIREBASE_CREDENTIALS"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
	}
}
