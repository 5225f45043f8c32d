package redis

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// getTestConfig returns config for testing
func getTestConfig() *Config {
	cfg := DefaultConfig()

	if host := os.Getenv("TEST_REDIS_HOST"); host != "" {
		cfg.Host = host
	}
	if password := os.Getenv("TEST_REDIS_PASSWORD"); password != "" {
		cfg.Password = password
	}

	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Host != "localhost" {
		t.Errorf("Expected host 'localhost', got '%s'", cfg.Host)
	}
	if cfg.Port != 6379 {
		t.Errorf("Expected port 6379, got %d", cfg.Port)
	}
	if cfg.PoolSize != 100 {
		t.Errorf("Expected pool size 100, got %d", cfg.PoolSize)
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("Expected max retries 3, got %d", cfg.MaxRetries)
	}
}

func TestConfig_Addr(t *testing.T) {
	cfg := &Config{
		Host: "redis.example.com",
		Port: 6380,
	}

	expected := "redis.example.com:6380"
	if cfg.Addr() != expected {
		t.Errorf("Expected addr '%s', got '%s'", expected, cfg.Addr())
	}
}

func TestNewClient_InvalidConfig(t *testing.T) {
	cfg := &Config{
		Host:          "invalid-host-that-does-not-exist",
		Port:          9999,
		MaxRetries:    0,
		RetryInterval: 100 * time.Millisecond,
		DialTimeout:   500 * time.Millisecond,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := NewClient(ctx, cfg)
	if err == nil {
		t.Error("Expected error for invalid config, got nil")
	}
	if err != nil && !strings.Contains(err.Error(), "failed to connect to redis") {
		t.Errorf("Expected connection failure error, got: %v", err)
	}
}

func TestDeleteByPattern_CancelledContext(t *testing.T) {
	// Unreachable client is enough here; the scan must surface the
	// context error instead of silently deleting nothing.
	c := &Client{
		client: goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:1"}),
		config: DefaultConfig(),
	}
	defer c.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.DeleteByPattern(ctx, "insights:*")
	if err == nil {
		t.Error("Expected error from cancelled context, got nil")
	}
}

// Integration tests - require Redis to be running

func TestDeleteByPattern_Integration(t *testing.T) {
	if os.Getenv("INTEGRATION_TEST") != "true" {
		t.Skip("Skipping integration test. Set INTEGRATION_TEST=true to run")
	}

	ctx := context.Background()
	client, err := NewClient(ctx, getTestConfig())
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	defer client.Close()

	for i := 0; i < 3; i++ {
		key := fmt.Sprintf("testpattern:item:%d", i)
		if err := client.Set(ctx, key, "v", time.Minute).Err(); err != nil {
			t.Fatalf("Failed to set %s: %v", key, err)
		}
	}
	if err := client.Set(ctx, "other:keep", "v", time.Minute).Err(); err != nil {
		t.Fatalf("Failed to set sentinel key: %v", err)
	}
	defer client.Del(ctx, "other:keep")

	if err := client.DeleteByPattern(ctx, "testpattern:*"); err != nil {
		t.Fatalf("DeleteByPattern failed: %v", err)
	}

	n, err := client.Exists(ctx, "testpattern:item:0", "testpattern:item:1", "testpattern:item:2").Result()
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if n != 0 {
		t.Errorf("Expected matching keys gone, %d remain", n)
	}

	kept, err := client.Exists(ctx, "other:keep").Result()
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if kept != 1 {
		t.Error("Non-matching key should survive pattern deletion")
	}
}

func TestHealthCheck_Integration(t *testing.T) {
	if os.Getenv("INTEGRATION_TEST") != "true" {
		t.Skip("Skipping integration test. Set INTEGRATION_TEST=true to run")
	}

	ctx := context.Background()
	client, err := NewClient(ctx, getTestConfig())
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	defer client.Close()

	if err := client.HealthCheck(ctx); err != nil {
		t.Errorf("HealthCheck failed: %v", err)
	}
}
