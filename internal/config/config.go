package config

import "os"

type Config struct {
	DatabaseURL string
	JWTSecret   string
	Port        string
	AdminEmail  string
	MetricsUser string
	MetricsPass string
}

func Load() *Config {
	return &Config{
		DatabaseURL: getEnv("DATABASE_URL", "fitsquad.db"),
		JWTSecret:   getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		Port:        getEnv("PORT", "8080"),
		AdminEmail:  getEnv("ADMIN_EMAIL", ""),
		MetricsUser: getEnv("METRICS_USER", ""),
		MetricsPass: getEnv("METRICS_PASS", ""),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
