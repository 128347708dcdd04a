package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Settings holds everything the server reads from the environment.
// Load is called once from main after godotenv has run.
type Settings struct {
	Port     string
	GinMode  string
	MongoURI string
	MongoDB  string

	JWTSecret string
	JWTExpiry time.Duration

	UploadDir   string
	MaxUploadMB int64

	// AllowedOrigins lists the origins the browser client may call from.
	// "*" allows any origin but then no credentials header is sent.
	AllowedOrigins []string

	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
	OTPTTL   time.Duration
}

// App is the process-wide settings instance, set by Load.
var App Settings

// Load reads settings from the environment. MONGO_URI, MONGO_DB and
// JWT_SECRET are required; everything else has a default.
func Load() error {
	s := Settings{
		Port:           getenv("PORT", "8080"),
		GinMode:        getenv("GIN_MODE", "debug"),
		MongoURI:       os.Getenv("MONGO_URI"),
		MongoDB:        os.Getenv("MONGO_DB"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		JWTExpiry:      time.Duration(getenvInt("JWT_EXP_HOURS", 24)) * time.Hour,
		UploadDir:      getenv("UPLOAD_DIR", "uploads"),
		MaxUploadMB:    int64(getenvInt("MAX_UPLOAD_MB", 5)),
		AllowedOrigins: splitList(getenv("ALLOWED_ORIGINS", "http://localhost:3000")),
		SMTPHost:       os.Getenv("SMTP_HOST"),
		SMTPPort:       os.Getenv("SMTP_PORT"),
		SMTPUser:       os.Getenv("SMTP_USER"),
		SMTPPass:       os.Getenv("SMTP_PASS"),
		OTPTTL:         time.Duration(getenvInt("OTP_TTL_MIN", 10)) * time.Minute,
	}

	if s.MongoURI == "" {
		return errors.New("MONGO_URI not set in env")
	}
	if s.MongoDB == "" {
		return errors.New("MONGO_DB not set in env")
	}
	if s.JWTSecret == "" {
		return errors.New("JWT_SECRET not set in env")
	}

	App = s
	return nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
