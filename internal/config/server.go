package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names for the catalog server
const (
	EnvServerHost       = "SERVER_HOST"
	EnvServerPort       = "SERVER_PORT"
	EnvBucketName       = "AWS_BUCKET_NAME"
	EnvRegion           = "AWS_REGION"
	EnvThumbnailTimeout = "THUMBNAIL_TIMEOUT"
	EnvPresignExpiry    = "PRESIGN_EXPIRY"
)

// ServerConfig is the catalog server configuration
type ServerConfig struct {
	Host             string
	Port             string
	Bucket           string
	Region           string
	ThumbnailTimeout time.Duration
	PresignExpiry    time.Duration
}

// Addr returns host:port for the listener
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// LoadServerConfig reads the server configuration from the environment,
// after loading any of the given .env files that exist.
func LoadServerConfig(envFiles ...string) (*ServerConfig, error) {
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil {
			log.Printf("No %s file loaded, using system environment variables", file)
		}
	}

	cfg := &ServerConfig{
		Host:             getEnv(EnvServerHost, "localhost"),
		Port:             getEnv(EnvServerPort, "3000"),
		Bucket:           os.Getenv(EnvBucketName),
		Region:           getEnv(EnvRegion, DefaultRegion),
		ThumbnailTimeout: getEnvAsSeconds(EnvThumbnailTimeout, DefaultThumbnailTimeout*time.Second),
		PresignExpiry:    getEnvAsSeconds(EnvPresignExpiry, time.Hour),
	}

	if cfg.Bucket == "" {
		return nil, fmt.Errorf("%s is not set", EnvBucketName)
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsSeconds(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * time.Second
		}
		log.Printf("Ignoring invalid %s=%q", key, value)
	}
	return defaultValue
}
