// Package monitor keeps the gRPC health status in step with store reachability.
package monitor

import (
	"context"
	"time"

	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dtroode/healthnest-server/internal/logger"
	"github.com/dtroode/healthnest-server/internal/model"
)

// Service is the health service name reported next to the overall ("") status.
const Service = "healthnest"

// Monitor pings the store on an interval and flips the health status.
type Monitor struct {
	pinger   model.Pinger
	health   *health.Server
	interval time.Duration
	timeout  time.Duration
	logger   *logger.Logger

	serving bool
}

// New creates a monitor that pings every interval, each ping bounded by timeout.
func New(pinger model.Pinger, hs *health.Server, interval, timeout time.Duration, logger *logger.Logger) *Monitor {
	return &Monitor{
		pinger:   pinger,
		health:   hs,
		interval: interval,
		timeout:  timeout,
		logger:   logger,
	}
}

// Run checks once immediately and then on every tick until ctx is done, when
// the health server is shut down and every service reports NOT_SERVING.
func (m *Monitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Check(ctx)
	for {
		select {
		case <-ctx.Done():
			m.health.Shutdown()
			return
		case <-ticker.C:
			m.Check(ctx)
		}
	}
}

// Check pings the store once and publishes the result. It reports whether the store answered.
func (m *Monitor) Check(ctx context.Context) bool {
	pingCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	err := m.pinger.Ping(pingCtx)
	if err != nil {
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}

	switch {
	case err != nil && m.serving:
		m.logger.Warn("HealthMonitor: store unreachable", "error", err)
	case err == nil && !m.serving:
		m.logger.Info("HealthMonitor: store reachable")
	}
	m.serving = err == nil

	m.health.SetServingStatus("", status)
	m.health.SetServingStatus(Service, status)
	return m.serving
}
