package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	AuthFirebase = "firebase"
	AuthJWT      = "jwt"

	ImageHostNone  = ""
	ImageHostImgBB = "imgbb"
	ImageHostGCS   = "gcs"
)

type Config struct {
	Port           string   `envconfig:"PORT" default:"8080"`
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	StaticDir      string   `envconfig:"STATIC_DIR"`
	LogLevel       string   `envconfig:"LOG_LEVEL" default:"info"`
	Env            string   `envconfig:"ENV" default:"dev"`

	// External backend
	BackendURL     string        `envconfig:"BACKEND_URL" required:"true"`
	BackendTimeout time.Duration `envconfig:"BACKEND_TIMEOUT" default:"15s"`

	// Session
	AuthProvider       string        `envconfig:"AUTH_PROVIDER" default:"firebase"`
	ProjectID          string        `envconfig:"FIREBASE_PROJECT_ID"`
	ServiceAccountJSON string        `envconfig:"FIREBASE_SERVICE_ACCOUNT_JSON"`
	SessionSecret      string        `envconfig:"SESSION_SECRET"`
	SessionTTL         time.Duration `envconfig:"SESSION_TTL" default:"24h"`
	SessionCookie      string        `envconfig:"SESSION_COOKIE" default:"session"`
	LoginPath          string        `envconfig:"LOGIN_PATH" default:"/login"`
	DeniedPath         string        `envconfig:"DENIED_PATH" default:"/acesso-negado"`

	// Uploads
	ImageHost      string `envconfig:"IMAGE_HOST"`
	ImgBBAPIKey    string `envconfig:"IMGBB_API_KEY"`
	ImgBBURL       string `envconfig:"IMGBB_URL" default:"https://api.imgbb.com/1/upload"`
	GCSBucket      string `envconfig:"GCS_BUCKET"`
	MaxUploadBytes int64  `envconfig:"MAX_UPLOAD_BYTES" default:"5242880"`

	// Countdowns
	RedisURL       string        `envconfig:"REDIS_URL"`
	ResendCooldown time.Duration `envconfig:"RESEND_COOLDOWN" default:"60s"`

	StripeSecretKey string `envconfig:"STRIPE_SECRET_KEY"`

	OTLPEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// Load reads the process environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}

	// FIREBASE_PROJECT_ID falls back to GOOGLE_CLOUD_PROJECT
	if cfg.ProjectID == "" {
		cfg.ProjectID = strings.TrimSpace(os.Getenv("GOOGLE_CLOUD_PROJECT"))
	}

	allowed := make([]string, 0, len(cfg.AllowedOrigins))
	for _, o := range cfg.AllowedOrigins {
		o = strings.TrimSpace(o)
		if o != "" {
			allowed = append(allowed, o)
		}
	}
	cfg.AllowedOrigins = allowed
	cfg.BackendURL = strings.TrimRight(strings.TrimSpace(cfg.BackendURL), "/")
	cfg.AuthProvider = strings.ToLower(strings.TrimSpace(cfg.AuthProvider))
	cfg.ImageHost = strings.ToLower(strings.TrimSpace(cfg.ImageHost))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings that depend on each other.
func (c Config) Validate() error {
	var problems []string

	if c.BackendURL == "" {
		problems = append(problems, "BACKEND_URL is required")
	}
	if c.BackendTimeout <= 0 {
		problems = append(problems, "BACKEND_TIMEOUT must be positive")
	}

	switch c.AuthProvider {
	case AuthFirebase:
	case AuthJWT:
		if len(c.SessionSecret) < 32 {
			problems = append(problems, "SESSION_SECRET must have at least 32 bytes when AUTH_PROVIDER=jwt")
		}
		if c.SessionTTL <= 0 {
			problems = append(problems, "SESSION_TTL must be positive")
		}
	default:
		problems = append(problems, fmt.Sprintf("AUTH_PROVIDER %q is not supported", c.AuthProvider))
	}

	switch c.ImageHost {
	case ImageHostNone:
	case ImageHostImgBB:
		if c.ImgBBAPIKey == "" {
			problems = append(problems, "IMGBB_API_KEY is required when IMAGE_HOST=imgbb")
		}
	case ImageHostGCS:
		if c.GCSBucket == "" {
			problems = append(problems, "GCS_BUCKET is required when IMAGE_HOST=gcs")
		}
	default:
		problems = append(problems, fmt.Sprintf("IMAGE_HOST %q is not supported", c.ImageHost))
	}

	if c.MaxUploadBytes <= 0 {
		problems = append(problems, "MAX_UPLOAD_BYTES must be positive")
	}
	if c.ResendCooldown <= 0 {
		problems = append(problems, "RESEND_COOLDOWN must be positive")
	}
	if !strings.HasPrefix(c.LoginPath, "/") || !strings.HasPrefix(c.DeniedPath, "/") {
		problems = append(problems, "LOGIN_PATH and DENIED_PATH must be absolute paths")
	}

	if len(problems) > 0 {
		return errors.New("invalid configuration: " + strings.Join(problems, "; "))
	}
	return nil
}
