package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearServerEnv(t *testing.T) {
	for _, key := range []string{EnvServerHost, EnvServerPort, EnvBucketName, EnvRegion, EnvThumbnailTimeout, EnvPresignExpiry} {
		t.Setenv(key, "")
	}
}

func TestLoadServerConfig_Defaults(t *testing.T) {
	clearServerEnv(t)
	t.Setenv(EnvBucketName, "media")

	cfg, err := LoadServerConfig()
	if err != nil {
		t.Fatalf("LoadServerConfig failed: %v", err)
	}

	if cfg.Addr() != "localhost:3000" {
		t.Errorf("Expected localhost:3000, got %s", cfg.Addr())
	}
	if cfg.Region != DefaultRegion {
		t.Errorf("Expected region %s, got %s", DefaultRegion, cfg.Region)
	}
	if cfg.ThumbnailTimeout != 10*time.Second {
		t.Errorf("Expected 10s thumbnail timeout, got %v", cfg.ThumbnailTimeout)
	}
	if cfg.PresignExpiry != time.Hour {
		t.Errorf("Expected 1h presign expiry, got %v", cfg.PresignExpiry)
	}
}

func TestLoadServerConfig_FromEnv(t *testing.T) {
	clearServerEnv(t)
	t.Setenv(EnvServerHost, "0.0.0.0")
	t.Setenv(EnvServerPort, "8080")
	t.Setenv(EnvBucketName, "media")
	t.Setenv(EnvRegion, "ap-northeast-1")
	t.Setenv(EnvThumbnailTimeout, "20")
	t.Setenv(EnvPresignExpiry, "not-a-number")

	cfg, err := LoadServerConfig()
	if err != nil {
		t.Fatalf("LoadServerConfig failed: %v", err)
	}

	if cfg.Addr() != "0.0.0.0:8080" || cfg.Region != "ap-northeast-1" {
		t.Errorf("Unexpected config %+v", cfg)
	}
	if cfg.ThumbnailTimeout != 20*time.Second {
		t.Errorf("Expected 20s, got %v", cfg.ThumbnailTimeout)
	}
	if cfg.PresignExpiry != time.Hour {
		t.Errorf("Invalid value should fall back to 1h, got %v", cfg.PresignExpiry)
	}
}

func TestLoadServerConfig_DotEnv(t *testing.T) {
	clearServerEnv(t)
	os.Unsetenv(EnvBucketName)
	os.Unsetenv(EnvServerPort)

	envFile := filepath.Join(t.TempDir(), ".env")
	content := "AWS_BUCKET_NAME=from-file\nSERVER_PORT=4000\n"
	if err := os.WriteFile(envFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write env file: %v", err)
	}
	t.Cleanup(func() {
		os.Unsetenv(EnvBucketName)
		os.Unsetenv(EnvServerPort)
	})

	cfg, err := LoadServerConfig(envFile, filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("LoadServerConfig failed: %v", err)
	}
	if cfg.Bucket != "from-file" || cfg.Port != "4000" {
		t.Errorf("Expected values from .env, got %+v", cfg)
	}
}

func TestLoadServerConfig_MissingBucket(t *testing.T) {
	clearServerEnv(t)

	if _, err := LoadServerConfig(); err == nil {
		t.Error("Expected error when bucket is not set")
	}
}
