package config

import "os"

type Config struct {
	Port          string
	DSN           string
	SessionSecret string
	UploadDir     string
	TemplateGlob  string
	AdminUsername string
	AdminPassword string
	Environment   string
}

// Load reads configuration from the environment. Callers are expected
// to have loaded .env files (godotenv) beforehand.
func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "3000"),
		DSN:           getEnv("DB_DSN", ""),
		SessionSecret: getEnv("SESSION_SECRET", ""),
		UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
		TemplateGlob:  getEnv("TEMPLATE_GLOB", "templates/*.tmpl"),
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		Environment:   getEnv("ENV", "development"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
