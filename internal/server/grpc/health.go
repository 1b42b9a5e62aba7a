// Package grpcserver runs the gRPC health endpoint used by orchestrators to probe the API process.
package grpcserver

import (
	"context"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName is the health service name reported alongside the overall ("") status.
const ServiceName = "nutrilog.API"

// Pinger is satisfied by the database handle.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthMonitor mirrors database reachability into a grpc health server.
type HealthMonitor struct {
	hs       *health.Server
	db       Pinger
	interval time.Duration
	timeout  time.Duration
	log      *zap.Logger
}

// NewHealthMonitor starts in NOT_SERVING until the first successful probe.
func NewHealthMonitor(db Pinger, interval time.Duration, log *zap.Logger) *HealthMonitor {
	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	return &HealthMonitor{hs: hs, db: db, interval: interval, timeout: 2 * time.Second, log: log}
}

// Server returns the health service implementation for registration.
func (m *HealthMonitor) Server() *health.Server { return m.hs }

// Probe pings the database once and publishes the result.
func (m *HealthMonitor) Probe(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	pctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	st := healthpb.HealthCheckResponse_SERVING
	if err := m.db.Ping(pctx); err != nil {
		m.log.Warn("database ping failed", zap.Error(err))
		st = healthpb.HealthCheckResponse_NOT_SERVING
	}
	m.hs.SetServingStatus("", st)
	m.hs.SetServingStatus(ServiceName, st)
	return st
}

// Run probes on every interval tick until ctx is done, then marks everything as shut down.
func (m *HealthMonitor) Run(ctx context.Context) error {
	m.Probe(ctx)
	t := time.NewTicker(m.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			m.hs.Shutdown()
			return nil
		case <-t.C:
			m.Probe(ctx)
		}
	}
}

// NewServer builds a grpc.Server with recovery and logging interceptors and the health service.
// Reflection is registered only in development.
func NewServer(m *HealthMonitor, log *zap.Logger, dev bool) *grpc.Server {
	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			RecoverUnary(log),
			LoggingUnary(log),
		),
		grpc.ChainStreamInterceptor(
			RecoverStream(log),
			LoggingStream(log),
		),
	)
	healthpb.RegisterHealthServer(s, m.Server())
	if dev {
		reflection.Register(s)
	}
	return s
}

// Stop attempts a graceful stop and forces it after grace.
func Stop(s *grpc.Server, grace time.Duration) {
	done := make(chan struct{})
	go func() {
		s.GracefulStop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(grace):
		s.Stop()
	}
}
