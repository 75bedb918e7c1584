package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr   string
	GinMode   string
	DBUser    string
	DBPass    string
	DBHost    string
	DBName    string
	JWTSecret string
	UploadDir string
	LogFile   string
}

// LoadEnv membaca .env (kalau ada) lalu environment variables dengan default.
func LoadEnv() Env {
	_ = godotenv.Load()

	return Env{
		AppAddr:   getenv("APP_ADDR", ":8080"),
		GinMode:   getenv("GIN_MODE", ""),
		DBUser:    getenv("DB_USER", "root"),
		DBPass:    getenv("DB_PASS", ""),
		DBHost:    getenv("DB_HOST", "127.0.0.1:3306"),
		DBName:    getenv("DB_NAME", "driver_portal"),
		JWTSecret: getenv("JWT_SECRET", "super-secret-key-change-me"),
		UploadDir: getenv("UPLOAD_DIR", "./uploads"),
		LogFile:   getenv("LOG_FILE", "./logs/app.log"),
	}
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}
