package health

import (
	"context"
	"time"
)

// Pinger is anything reachable with a cheap round trip.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthChecker struct {
	backend Pinger
	redis   func(ctx context.Context) bool
}

type HealthStatus struct {
	Status  string          `json:"status"`
	Backend ComponentHealth `json:"backend"`
	Redis   ComponentHealth `json:"redis"`
}

type ComponentHealth struct {
	Status       string `json:"status"`
	ResponseTime int64  `json:"response_time_ms"`
}

// NewHealthChecker checks the membership backend and, when redisCheck is
// non-nil, Redis. Redis being down degrades but does not fail readiness.
func NewHealthChecker(backend Pinger, redisCheck func(ctx context.Context) bool) *HealthChecker {
	return &HealthChecker{backend: backend, redis: redisCheck}
}

func (h *HealthChecker) CheckBasic(ctx context.Context) HealthStatus {
	backendHealth := h.checkBackend(ctx)
	redisHealth := h.checkRedis(ctx)

	status := "healthy"
	switch {
	case backendHealth.Status != "healthy":
		status = "unhealthy"
	case redisHealth.Status == "unhealthy":
		status = "degraded"
	}

	return HealthStatus{
		Status:  status,
		Backend: backendHealth,
		Redis:   redisHealth,
	}
}

func (h *HealthChecker) checkBackend(ctx context.Context) ComponentHealth {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	err := h.backend.Ping(ctx)
	responseTime := time.Since(start).Milliseconds()

	if err != nil {
		return ComponentHealth{Status: "unhealthy", ResponseTime: responseTime}
	}
	return ComponentHealth{Status: "healthy", ResponseTime: responseTime}
}

func (h *HealthChecker) checkRedis(ctx context.Context) ComponentHealth {
	if h.redis == nil {
		return ComponentHealth{Status: "disabled"}
	}

	start := time.Now()
	ok := h.redis(ctx)
	responseTime := time.Since(start).Milliseconds()

	if !ok {
		return ComponentHealth{Status: "unhealthy", ResponseTime: responseTime}
	}
	return ComponentHealth{Status: "healthy", ResponseTime: responseTime}
}
