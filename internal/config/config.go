package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	// Environment
	RunMode string // Set via flag, not env

	// MongoDB
	MongoURI    string
	MongoDbName string

	// Redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// JWT
	JwtSecret string

	// Server
	ApiPort string

	// Auth service (remote identity)
	AuthServiceURL   string // public base, e.g. https://stay-next-auth-service.onrender.com
	AuthInternalURL  string // internal users API base
	AuthTimeout      time.Duration
	AuthUserCacheTTL time.Duration

	// Media storage
	StorageBackend      string // "cloudinary" or "s3"
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	// AWS S3 (alternate storage backend)
	AwsAccessKeyID     string
	AwsSecretAccessKey string
	AwsRegion          string
	AwsS3Bucket        string
	MediaBaseS3URL     string

	// YouTube
	YoutubeCredentialsFile string
	YoutubeCategoryID      string
	YoutubePrivacyStatus   string

	// Referral
	ReferralReward float64

	// App Defaults
	RecentActivityLimit int

	// Rate Limiting Defaults
	RateLimitBucketSize int
	RateLimitRefillRate int // tokens per second
}

// Load configuration from environment variables.
// RunMode needs to be passed in as it comes from command-line flags.
func Load(runMode string) (*Config, error) {
	// Load .env file, ignoring errors if it doesn't exist
	godotenv.Load()

	cfg := &Config{
		RunMode: runMode, // Set from flag
	}

	var err error

	// Helper function to get env var or default
	getEnv := func(key, defaultValue string) string {
		if value, exists := os.LookupEnv(key); exists {
			return value
		}
		return defaultValue
	}

	// Helper function to get required env var
	getRequiredEnv := func(key string) (string, error) {
		value, exists := os.LookupEnv(key)
		if !exists {
			return "", fmt.Errorf("missing required environment variable: %s", key)
		}
		return value, nil
	}

	cfg.MongoURI, err = getRequiredEnv("MONGO_URI")
	if err != nil {
		return nil, err
	}
	cfg.MongoDbName = getEnv("MONGO_DB_NAME", "agent_service")
	cfg.RedisAddr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	cfg.JwtSecret, err = getRequiredEnv("JWT_SECRET")
	if err != nil {
		return nil, err
	}
	cfg.ApiPort = getEnv("API_PORT", "8080")

	cfg.AuthServiceURL = getEnv("AUTH_SERVICE_URL", "http://localhost:3000")
	cfg.AuthInternalURL = getEnv("AUTH_INTERNAL_URL", cfg.AuthServiceURL+"/api/auth/internal")

	cfg.StorageBackend = getEnv("STORAGE_BACKEND", "cloudinary")
	cfg.CloudinaryCloudName = getEnv("CLOUDINARY_CLOUD_NAME", "")
	cfg.CloudinaryAPIKey = getEnv("CLOUDINARY_API_KEY", "")
	cfg.CloudinaryAPISecret = getEnv("CLOUDINARY_API_SECRET", "")

	cfg.AwsAccessKeyID = getEnv("AWS_ACCESS_KEY_ID", "")
	cfg.AwsSecretAccessKey = getEnv("AWS_SECRET_ACCESS_KEY", "")
	cfg.AwsRegion = getEnv("AWS_REGION", "")
	cfg.AwsS3Bucket = getEnv("AWS_S3_BUCKET", "")
	cfg.MediaBaseS3URL = getEnv("MEDIA_BASE_S3_URL", "")

	cfg.YoutubeCredentialsFile = getEnv("YOUTUBE_CREDENTIALS_FILE", "")
	cfg.YoutubeCategoryID = getEnv("YOUTUBE_CATEGORY_ID", "22")
	cfg.YoutubePrivacyStatus = getEnv("YOUTUBE_PRIVACY_STATUS", "public")

	// Load numeric and time duration values with defaults and parsing
	cfg.RedisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	authTimeoutSeconds, err := strconv.ParseInt(getEnv("AUTH_TIMEOUT_SECONDS", "5"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_TIMEOUT_SECONDS: %w", err)
	}
	cfg.AuthTimeout = time.Duration(authTimeoutSeconds) * time.Second

	authCacheTTLSeconds, err := strconv.ParseInt(getEnv("AUTH_USER_CACHE_TTL_SECONDS", "60"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_USER_CACHE_TTL_SECONDS: %w", err)
	}
	cfg.AuthUserCacheTTL = time.Duration(authCacheTTLSeconds) * time.Second

	cfg.ReferralReward, err = strconv.ParseFloat(getEnv("REFERRAL_REWARD", "500"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid REFERRAL_REWARD: %w", err)
	}

	cfg.RecentActivityLimit, err = strconv.Atoi(getEnv("RECENT_ACTIVITY_LIMIT", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid RECENT_ACTIVITY_LIMIT: %w", err)
	}

	cfg.RateLimitBucketSize, err = strconv.Atoi(getEnv("RATE_LIMIT_BUCKET_SIZE", "8"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_BUCKET_SIZE: %w", err)
	}
	cfg.RateLimitRefillRate, err = strconv.Atoi(getEnv("RATE_LIMIT_REFILL_RATE", "4"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_REFILL_RATE: %w", err)
	}

	return cfg, nil
}
