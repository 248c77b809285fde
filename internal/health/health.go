package health

import (
	"context"
	"time"
)

// Pinger probes the remote backend. *upstream.Client satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthChecker struct {
	upstream Pinger
}

type HealthStatus struct {
	Status   string         `json:"status"`
	Upstream UpstreamHealth `json:"upstream"`
}

type UpstreamHealth struct {
	Status       string `json:"status"`
	ResponseTime int64  `json:"response_time_ms"`
}

func NewHealthChecker(upstream Pinger) *HealthChecker {
	return &HealthChecker{upstream: upstream}
}

func (h *HealthChecker) CheckBasic() HealthStatus {
	upstreamHealth := h.checkUpstream()

	status := "healthy"
	if upstreamHealth.Status != "healthy" {
		status = "degraded"
	}

	return HealthStatus{
		Status:   status,
		Upstream: upstreamHealth,
	}
}

func (h *HealthChecker) checkUpstream() UpstreamHealth {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	start := time.Now()
	err := h.upstream.Ping(ctx)
	responseTime := time.Since(start).Milliseconds()

	if err != nil {
		return UpstreamHealth{
			Status:       "unhealthy",
			ResponseTime: responseTime,
		}
	}

	return UpstreamHealth{
		Status:       "healthy",
		ResponseTime: responseTime,
	}
}
