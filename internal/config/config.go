package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	DatabaseURL     string
	DBMaxOpenConns  int
	DBMaxIdleConns  int
	DBConnLifetime  time.Duration
	JWTSecret       string
	SessionTTL      time.Duration
	GoogleAudience  string
	AllowOrigins    []string
	AdminEmails     []string
	LogstashTCPAddr string
	FrontendURL     string

	MinIOEndpoint           string
	MinIOAccessKey          string
	MinIOSecretKey          string
	MinIOUseSSL             bool
	MinIOBucketDestinations string
	MinIOPublicURL          string

	DestinationImageMaxBytes int64

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	ReviewAutoApprove      bool
	ItineraryRatePerMinute int
	ItineraryRateBurst     int
	StrictTagMapping       bool
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	return Config{
		Port:            getenv("PORT", "8080"),
		DatabaseURL:     must("DATABASE_URL"),
		DBMaxOpenConns:  getInt("DB_MAX_OPEN_CONNS", 20),
		DBMaxIdleConns:  getInt("DB_MAX_IDLE_CONNS", 5),
		DBConnLifetime:  getDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		JWTSecret:       must("JWT_SECRET"),
		SessionTTL:      getDuration("SESSION_TTL", 24*time.Hour),
		GoogleAudience:  getenv("GOOGLE_AUDIENCE", ""),
		AllowOrigins:    splitAndTrim(getenv("ALLOW_ORIGINS", "*"), "*"),
		AdminEmails:     lowerAll(splitAndTrim(getenv("ADMIN_EMAILS", ""), "")),
		LogstashTCPAddr: getenv("LOGSTASH_TCP_ADDR", ""),
		FrontendURL:     getenv("FRONTEND_URL", ""),

		MinIOEndpoint:           getenv("MINIO_ENDPOINT", ""),
		MinIOAccessKey:          getenv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey:          getenv("MINIO_SECRET_KEY", ""),
		MinIOUseSSL:             getBool("MINIO_USE_SSL", false),
		MinIOBucketDestinations: getenv("MINIO_BUCKET_DESTINATIONS", "tripplanner-destinations"),
		MinIOPublicURL:          getenv("MINIO_PUBLIC_URL", ""),

		DestinationImageMaxBytes: getInt64("DESTINATION_IMAGE_MAX_BYTES", 5*1024*1024),

		SMTPHost:     getenv("SMTP_HOST", ""),
		SMTPPort:     getInt("SMTP_PORT", 587),
		SMTPUsername: getenv("SMTP_USERNAME", ""),
		SMTPPassword: getenv("SMTP_PASSWORD", ""),
		SMTPFrom:     getenv("SMTP_FROM", ""),

		ReviewAutoApprove:      getBool("REVIEW_AUTO_APPROVE", false),
		ItineraryRatePerMinute: getInt("ITINERARY_RATE_PER_MINUTE", 30),
		ItineraryRateBurst:     getInt("ITINERARY_RATE_BURST", 10),
		StrictTagMapping:       getBool("STRICT_TAG_MAPPING", false),
	}
}

// StorageEnabled reports whether enough MinIO settings are present to accept uploads.
func (c Config) StorageEnabled() bool {
	return c.MinIOEndpoint != "" && c.MinIOAccessKey != "" && c.MinIOSecretKey != ""
}

func (c Config) MailEnabled() bool {
	return c.SMTPHost != "" && c.SMTPFrom != ""
}

func splitAndTrim(input, fallback string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 && fallback != "" {
		return []string{fallback}
	}
	return out
}

func lowerAll(values []string) []string {
	for i, v := range values {
		values[i] = strings.ToLower(v)
	}
	return values
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getInt(k string, d int) int {
	v, err := strconv.Atoi(getenv(k, ""))
	if err != nil || v <= 0 {
		return d
	}
	return v
}

func getInt64(k string, d int64) int64 {
	v, err := strconv.ParseInt(getenv(k, ""), 10, 64)
	if err != nil || v <= 0 {
		return d
	}
	return v
}

func getBool(k string, d bool) bool {
	v, err := strconv.ParseBool(getenv(k, ""))
	if err != nil {
		return d
	}
	return v
}

func getDuration(k string, d time.Duration) time.Duration {
	raw := getenv(k, "")
	if raw == "" {
		return d
	}
	v, err := time.ParseDuration(raw)
	if err != nil || v <= 0 {
		log.Printf("config: invalid duration for %s=%q, using %s", k, raw, d)
		return d
	}
	return v
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
