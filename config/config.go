package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is read once at startup and passed by reference into every
// component; nothing reads the environment after Load returns.
type Config struct {
	Port     string
	MongoURI string
	DBName   string

	// JWTSecret signs session tokens. Required; startup aborts without it.
	JWTSecret string
	TokenTTL  time.Duration

	MaxTitleLength       int
	MaxDescriptionLength int
	MaxBodyLength        int

	// DefaultThumbnailURI is the last link in the thumbnail fallback chain:
	// request value, then site config default, then this.
	DefaultThumbnailURI string

	S3Bucket      string
	S3Region      string
	S3AccessKeyID string
	S3SecretKey   string
	MaxUploadMB   int64
}

func Load() (*Config, error) {
	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		return nil, errors.New("JWT_SECRET is not set in environment")
	}

	ttl := time.Hour
	if v := getEnv("TOKEN_TTL_MINUTES", ""); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid TOKEN_TTL_MINUTES %q", v)
		}
		ttl = time.Duration(n) * time.Minute
	}

	maxMB := int64(10)
	if v := getEnv("MAX_UPLOAD_MB", ""); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			maxMB = n
		}
	}

	return &Config{
		Port:                 getEnv("PORT", "5000"),
		MongoURI:             getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		DBName:               getEnv("MONGODB_DB", "walnut"),
		JWTSecret:            secret,
		TokenTTL:             ttl,
		MaxTitleLength:       getEnvInt("MAX_TITLE_LENGTH", 50),
		MaxDescriptionLength: getEnvInt("MAX_DESCRIPTION_LENGTH", 1000),
		MaxBodyLength:        getEnvInt("MAX_BODY_LENGTH", 100000),
		DefaultThumbnailURI:  getEnv("DEFAULT_POST_THUMBNAIL_LINK", ""),
		S3Bucket:             getEnv("AWS_S3_BUCKET", ""),
		S3Region:             getEnv("AWS_REGION", "us-east-1"),
		S3AccessKeyID:        getEnv("AWS_ACCESS_KEY_ID", ""),
		S3SecretKey:          getEnv("AWS_SECRET_ACCESS_KEY", ""),
		MaxUploadMB:          maxMB,
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
