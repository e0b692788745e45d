package redis

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	port, err := strconv.Atoi(mr.Port())
	if err != nil {
		t.Fatalf("invalid miniredis port: %v", err)
	}

	client := NewClient(NewRedisConfig().WithHost(mr.Host()).WithPort(port))
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func TestIncrWithExpire(t *testing.T) {
	client, mr := newTestClient(t)
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		got, err := client.IncrWithExpire(ctx, "counter", time.Minute)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != want {
			t.Errorf("expected %d, got %d", want, got)
		}
	}

	if ttl := mr.TTL("counter"); ttl != time.Minute {
		t.Errorf("expected ttl 1m, got %s", ttl)
	}

	mr.FastForward(2 * time.Minute)
	if got, _ := client.GetInt(ctx, "counter"); got != 0 {
		t.Errorf("expected expired counter to read 0, got %d", got)
	}
}

func TestGetIntMissingKey(t *testing.T) {
	client, _ := newTestClient(t)

	got, err := client.GetInt(context.Background(), "missing")
	if err != nil || got != 0 {
		t.Errorf("expected 0 and no error, got %d, %v", got, err)
	}
}

func TestHealthCheck(t *testing.T) {
	client, mr := newTestClient(t)
	checker := NewHealthChecker(client)

	report := checker.HealthCheck(context.Background())
	if report.Status != StatusUp {
		t.Fatalf("expected UP, got %s (%s)", report.Status, report.Details["last_error"])
	}
	if mr.Exists("health-check::probe") {
		t.Error("probe key should be removed")
	}

	mr.Close()
	report = checker.HealthCheck(context.Background())
	if report.Status != StatusDown {
		t.Errorf("expected DOWN after server stop, got %s", report.Status)
	}
	if checker.GetLastError() == "" {
		t.Error("expected last error to be recorded")
	}
}

func TestValidate(t *testing.T) {
	config := NewRedisConfig()
	config.Host = ""
	if err := config.Validate(); err == nil {
		t.Error("expected empty host to be rejected")
	}
}
