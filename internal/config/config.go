package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	// Application
	AppName string
	AppEnv  string
	AppURL  string
	Port    string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Security
	JWTSecret                string
	JWTExpiry                time.Duration
	JWTIssuer                string
	BcryptCost               int
	TokenPasswordResetExpiry time.Duration
	AdminEmails              []string

	// HTTP
	CORSAllowedOrigins  []string
	RateLimitAuth       int
	RateLimitAuthWindow time.Duration
	TrustProxyHeaders   bool

	// Email
	EmailFrom    string
	ResendAPIKey string

	// Observability (optional)
	SentryDSN string

	// Storage (S3-compatible: MinIO, AWS S3, Cloudflare R2, DigitalOcean Spaces, etc.)
	S3Region              string
	S3Bucket              string
	S3AccessKey           string
	S3SecretKey           string
	S3Endpoint            string        // Optional: for S3-compatible services (MinIO, DO Spaces, R2, etc.)
	S3PublicURL           string        // Optional: CDN base URL in front of the bucket
	S3PresignExpiryUpload time.Duration // Expiry for direct-upload PUT URLs
	S3CreateBucket        bool          // Create the bucket at start-up when missing
}

// Load reads the process configuration once at start-up. Missing required
// values terminate the process.
func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		AppName: envString("APP_NAME", "VidShare"),
		AppEnv:  envRequired("APP_ENV"), // 'development' or 'production'
		AppURL:  envRequired("APP_URL"), // base URL for reset links
		Port:    envString("PORT", "8090"),

		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/vidshare.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_time_format=sqlite"),

		JWTSecret:                envRequired("JWT_SECRET"),
		JWTExpiry:                envDuration("JWT_EXPIRY", 30*24*time.Hour),
		JWTIssuer:                envString("JWT_ISSUER", "vidshare"),
		BcryptCost:               envInt("BCRYPT_COST", bcrypt.DefaultCost),
		TokenPasswordResetExpiry: envDuration("TOKEN_PASSWORD_RESET_EXPIRY", 10*time.Minute),
		AdminEmails:              ParseAdminEmails(os.Getenv("ADMIN_EMAILS")),

		CORSAllowedOrigins:  envList("CORS_ALLOWED_ORIGINS", nil),
		RateLimitAuth:       envInt("RATE_LIMIT_AUTH", 10),
		RateLimitAuthWindow: envDuration("RATE_LIMIT_AUTH_WINDOW", 15*time.Minute),
		TrustProxyHeaders:   envBool("TRUST_PROXY_HEADERS", false),

		// RESEND_API_KEY optional in development, required in production
		EmailFrom:    envString("EMAIL_FROM", "noreply@example.com"),
		ResendAPIKey: envString("RESEND_API_KEY", ""),

		SentryDSN: envString("SENTRY_DSN", ""),

		S3Region:              envRequired("S3_REGION"),
		S3Bucket:              envRequired("S3_BUCKET"),
		S3AccessKey:           envString("S3_ACCESS_KEY", ""),
		S3SecretKey:           envString("S3_SECRET_KEY", ""),
		S3Endpoint:            envString("S3_ENDPOINT", ""),
		S3PublicURL:           envString("S3_PUBLIC_URL", ""),
		S3PresignExpiryUpload: envDuration("S3_PRESIGN_EXPIRY_UPLOAD", 15*time.Minute),
		S3CreateBucket:        envBool("S3_CREATE_BUCKET", envString("APP_ENV", "development") == "development"),
	}

	if cfg.BcryptCost < bcrypt.DefaultCost {
		slog.Warn("config bcrypt cost below minimum, raising", "value", cfg.BcryptCost, "min", bcrypt.DefaultCost)
		cfg.BcryptCost = bcrypt.DefaultCost
	}

	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// validateProduction ensures all required services are configured for production deployments.
// Development allows email to run in log mode.
func validateProduction(cfg *Config) {
	if cfg.ResendAPIKey == "" {
		slog.Error("production deployment requires RESEND_API_KEY",
			"hint", "set APP_ENV=development for local testing with email log mode")
		os.Exit(1)
	}
}

// ParseAdminEmails splits a comma-separated list into normalized addresses.
// Empty entries are dropped.
func ParseAdminEmails(raw string) []string {
	var emails []string
	for _, part := range strings.Split(raw, ",") {
		email := strings.ToLower(strings.TrimSpace(part))
		if email != "" {
			emails = append(emails, email)
		}
	}
	return emails
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Sanitized returns a copy of the config with only public/safe fields.
// Secrets, credentials and the admin list are excluded.
func (c *Config) Sanitized() *Config {
	return &Config{
		AppName:     c.AppName,
		AppEnv:      c.AppEnv,
		AppURL:      c.AppURL,
		Port:        c.Port,
		DBDriver:    c.DBDriver,
		JWTExpiry:   c.JWTExpiry,
		JWTIssuer:   c.JWTIssuer,
		EmailFrom:   c.EmailFrom,
		S3Region:    c.S3Region,
		S3Bucket:    c.S3Bucket,
		S3Endpoint:  c.S3Endpoint,
		S3PublicURL: c.S3PublicURL,
	}
}
