package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Settings is the server configuration read from the environment.
type Settings struct {
	Port        string
	Env         string
	DBDriver    string
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string
	SQLitePath  string

	RedisAddr     string
	RedisUser     string
	RedisPassword string

	CloudinaryURL string
	MediaDir      string

	JWTSecret string
	TokenTTL  time.Duration

	AdminEmail    string
	AdminPassword string

	CORSOrigins []string
}

func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env not loaded, using process environment: %v", err)
	}
}

func GetEnv(key string) string {
	return os.Getenv(key)
}

func envOrDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Warning: %s=%q is not an integer, using %d", key, v, def)
		return def
	}
	return n
}

// FromEnv reads Settings; call LoadEnv first to pick up a .env file.
func FromEnv() Settings {
	s := Settings{
		Port:          envOrDefault("PORT", "8000"),
		Env:           envOrDefault("ENV", "dev"),
		DBDriver:      envOrDefault("DB_DRIVER", "sqlite"),
		DatabaseURL:   GetEnv("DATABASE_URL"),
		DBHost:        envOrDefault("DB_HOST", "localhost"),
		DBPort:        envOrDefault("DB_PORT", "5432"),
		DBUser:        envOrDefault("DB_USER", "postgres"),
		DBPassword:    GetEnv("DB_PASSWORD"),
		DBName:        envOrDefault("DB_NAME", "travelcms"),
		DBSSLMode:     envOrDefault("DB_SSLMODE", "disable"),
		SQLitePath:    envOrDefault("SQLITE_PATH", "travelcms.db"),
		RedisAddr:     GetEnv("REDIS_ADDR"),
		RedisUser:     GetEnv("REDIS_USER"),
		RedisPassword: GetEnv("REDIS_PASSWORD"),
		CloudinaryURL: GetEnv("CLOUDINARY_URL"),
		MediaDir:      envOrDefault("MEDIA_DIR", "uploads"),
		JWTSecret:     envOrDefault("JWT_SECRET", "change-me"),
		TokenTTL:      time.Duration(envInt("TOKEN_TTL_MINUTES", 60*24)) * time.Minute,
		AdminEmail:    GetEnv("ADMIN_EMAIL"),
		AdminPassword: GetEnv("ADMIN_PASSWORD"),
	}
	for _, o := range strings.Split(GetEnv("CORS_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			s.CORSOrigins = append(s.CORSOrigins, o)
		}
	}
	if s.JWTSecret == "change-me" && s.Env == "prod" {
		log.Printf("Warning: JWT_SECRET is not set in prod")
	}
	return s
}
