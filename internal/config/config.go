package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr             string
	DatabaseURL          string
	CORSAllowedOrigins   []string
	CORSAllowCredentials bool

	JWTSecret string

	// Optional: image generation is disabled when empty.
	OpenAIAPIKey string

	// Optional: the send-email route fails with a config error when unset.
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		HTTPAddr:             getenv("HTTP_ADDR", ":8080"),
		DatabaseURL:          mustGetenv("DATABASE_URL"),
		CORSAllowCredentials: getenv("CORS_ALLOW_CREDENTIALS", "false") == "true",
	}

	origins := strings.Split(getenv("CORS_ALLOWED_ORIGINS", ""), ",")
	for _, o := range origins {
		o = strings.TrimSpace(o)
		if o != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
		}
	}

	cfg.JWTSecret = mustGetenv("JWT_SECRET")

	cfg.OpenAIAPIKey = getenv("OPENAI_API_KEY", "")

	cfg.SMTPHost = getenv("SMTP_HOST", "")
	cfg.SMTPPort, _ = strconv.Atoi(getenv("SMTP_PORT", "587"))
	cfg.SMTPUser = getenv("SMTP_USER", "")
	cfg.SMTPPassword = getenv("SMTP_PASSWORD", "")
	cfg.SMTPFrom = getenv("SMTP_FROM", cfg.SMTPUser)

	return cfg, nil
}

// SMTPConfigured reports whether the mail relay settings are complete.
func (c Config) SMTPConfigured() bool {
	return c.SMTPHost != "" && c.SMTPUser != "" && c.SMTPPassword != ""
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func mustGetenv(key string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		panic("missing env: " + key)
	}
	return v
}
