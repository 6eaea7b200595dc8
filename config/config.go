package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// UploadProviderCloudinary sends payment confirmations to Cloudinary
	UploadProviderCloudinary = "cloudinary"
	// UploadProviderStorage sends payment confirmations to the configured StorageProvider (R2 or local)
	UploadProviderStorage = "storage"
)

type Config struct {
	ServerPort  string
	DBPath      string
	Environment string
	UploadDir   string
	AppURL      string
	// Lead submission backend
	APIBaseURL string
	// Payment confirmation uploads
	UploadProvider         string
	CloudinaryCloudName    string
	CloudinaryUploadPreset string
	// Form behaviour
	AutoCloseDelay time.Duration
	SessionIdleTTL time.Duration
	StagedFileTTL  time.Duration
	MaxStagedMB    int // shared cap on payment confirmations held in memory
	// Email (Resend)
	ResendAPIKey  string
	EmailFrom     string
	EmailFromName string
	EmailTestMode bool // When true, emails are logged to console instead of sent
	// Turso (remote libsql) database for lead records
	TursoDatabaseURL string
	TursoAuthToken   string
	// Cloudflare Turnstile
	TurnstileSiteKey   string
	TurnstileSecretKey string
	// Cloudflare R2 Storage
	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicURL       string
}

func Load() *Config {
	// Load .env file (ignore error if not present - use system env vars)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := &Config{
		ServerPort:             getEnv("SERVER_PORT", "8080"),
		DBPath:                 getEnv("DB_PATH", "db/leads.db"),
		Environment:            getEnv("ENVIRONMENT", "development"),
		UploadDir:              getEnv("UPLOAD_DIR", "static/uploads"),
		AppURL:                 getEnv("APP_URL", "http://localhost:8080"),
		APIBaseURL:             strings.TrimSuffix(getEnv("API_BASE_URL", "http://localhost:8000"), "/"),
		UploadProvider:         strings.ToLower(getEnv("UPLOAD_PROVIDER", UploadProviderCloudinary)),
		CloudinaryCloudName:    getEnv("CLOUDINARY_CLOUD_NAME", "dzqtygtxd"),
		CloudinaryUploadPreset: getEnv("CLOUDINARY_UPLOAD_PRESET", "ml_default"),
		AutoCloseDelay:         getEnvDuration("AUTO_CLOSE_DELAY", 3*time.Second),
		SessionIdleTTL:         getEnvDuration("SESSION_IDLE_TTL", 1*time.Hour),
		StagedFileTTL:          getEnvDuration("STAGED_FILE_TTL", 10*time.Minute),
		MaxStagedMB:            getEnvInt("MAX_STAGED_MB", 256),
		ResendAPIKey:           getEnv("RESEND_API_KEY", ""),
		EmailFrom:              getEnv("EMAIL_FROM", "hello@streamgrowth.gg"),
		EmailFromName:          getEnv("EMAIL_FROM_NAME", "StreamGrowth"),
		EmailTestMode:          getEnvBool("EMAIL_TEST_MODE", true), // Default true for safety
		TursoDatabaseURL:       getEnv("TURSO_DATABASE_URL", ""),
		TursoAuthToken:         getEnv("TURSO_AUTH_TOKEN", ""),
		TurnstileSiteKey:       getEnv("TURNSTILE_SITE_KEY", ""),
		TurnstileSecretKey:     getEnv("TURNSTILE_SECRET_KEY", ""),
		R2AccountID:            getEnv("R2_ACCOUNT_ID", ""),
		R2AccessKeyID:          getEnv("R2_ACCESS_KEY_ID", ""),
		R2SecretAccessKey:      getEnv("R2_SECRET_ACCESS_KEY", ""),
		R2BucketName:           getEnv("R2_BUCKET_NAME", ""),
		R2PublicURL:            getEnv("R2_PUBLIC_URL", ""),
	}

	if cfg.UploadProvider != UploadProviderCloudinary && cfg.UploadProvider != UploadProviderStorage {
		log.Printf("[WARNING] Unknown UPLOAD_PROVIDER %q, falling back to %s", cfg.UploadProvider, UploadProviderCloudinary)
		cfg.UploadProvider = UploadProviderCloudinary
	}

	return cfg
}

// IsProduction reports whether the app runs with production settings
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Printf("Using default value for %s: %s", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	// Accept common boolean representations
	switch strings.ToLower(value) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return defaultValue
	}
}

// getEnvDuration parses Go duration strings such as "3s" or "90m"
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		log.Printf("[WARNING] Invalid duration for %s: %q, using %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		log.Printf("[WARNING] Invalid number for %s: %q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}
