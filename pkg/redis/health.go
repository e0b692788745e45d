package redis

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"
)

// HealthCheck is the health report for the Redis connection
type HealthCheck struct {
	Status  HealthStatus      `json:"status"`
	Details map[string]string `json:"details"`
}

// HealthChecker pings Redis and round-trips a probe key
type HealthChecker struct {
	client    *Client
	timeout   time.Duration
	mu        sync.Mutex
	lastCheck time.Time
	lastError string
}

// NewHealthChecker creates a new Redis health checker
func NewHealthChecker(client *Client) *HealthChecker {
	return &HealthChecker{
		client:  client,
		timeout: 2 * time.Second,
	}
}

// HealthCheck performs a ping followed by an INCR/DEL on a probe key
func (h *HealthChecker) HealthCheck(ctx context.Context) HealthCheck {
	h.mu.Lock()
	defer h.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	h.lastError = ""
	pingOK := h.testPing(ctx)
	opsOK := pingOK && h.testCounter(ctx)
	h.lastCheck = time.Now()

	status := StatusDown
	if pingOK && opsOK {
		status = StatusUp
	}

	config := h.client.GetConfig()
	return HealthCheck{
		Status: status,
		Details: map[string]string{
			"address":               config.Addr(),
			"database":              strconv.Itoa(config.Database),
			"ping_successful":       strconv.FormatBool(pingOK),
			"operations_successful": strconv.FormatBool(opsOK),
			"last_check":            h.lastCheck.Format(time.RFC3339),
			"last_error":            h.lastError,
		},
	}
}

func (h *HealthChecker) testPing(ctx context.Context) bool {
	if err := h.client.Ping(ctx); err != nil {
		h.lastError = fmt.Sprintf("ping failed: %v", err)
		return false
	}
	return true
}

func (h *HealthChecker) testCounter(ctx context.Context) bool {
	const probeKey = "health-check::probe"

	if _, err := h.client.IncrWithExpire(ctx, probeKey, time.Minute); err != nil {
		h.lastError = fmt.Sprintf("incr operation failed: %v", err)
		return false
	}
	if err := h.client.Delete(ctx, probeKey); err != nil {
		h.lastError = fmt.Sprintf("delete operation failed: %v", err)
		return false
	}
	return true
}

// GetLastError returns the last error encountered during health checks
func (h *HealthChecker) GetLastError() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lastError
}
