// Package grpc exposes the standard gRPC health service so orchestrators can
// check the API process and its backing stores.
package grpc

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"wheelhub-backend/internal/api/grpc/interceptor"
	"wheelhub-backend/internal/logger"
)

// ServiceName is the health service entry for the booking API as a whole.
const ServiceName = "wheelhub.Booking"

// Dependency is a backing store whose reachability decides serving status.
type Dependency struct {
	Name string
	Ping func(ctx context.Context) error
}

type HealthServer struct {
	server *grpc.Server
	health *health.Server
	deps   []Dependency
}

func NewHealthServer(deps ...Dependency) *HealthServer {
	s := grpc.NewServer(grpc.ChainUnaryInterceptor(interceptor.Recovery(), interceptor.Logging()))
	h := health.NewServer()
	healthpb.RegisterHealthServer(s, h)
	reflection.Register(s)
	return &HealthServer{server: s, health: h, deps: deps}
}

func (h *HealthServer) Server() *grpc.Server { return h.server }

// Check pings every dependency once and publishes the combined status.
func (h *HealthServer) Check(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	st := healthpb.HealthCheckResponse_SERVING
	for _, d := range h.deps {
		pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := d.Ping(pctx)
		cancel()
		if err != nil {
			logger.Warn("Health dependency unreachable", "dependency", d.Name, "error", err)
			st = healthpb.HealthCheckResponse_NOT_SERVING
		}
	}
	h.health.SetServingStatus("", st)
	h.health.SetServingStatus(ServiceName, st)
	return st
}

// Watch re-checks dependencies every interval until ctx is done.
func (h *HealthServer) Watch(ctx context.Context, interval time.Duration) {
	h.Check(ctx)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.Check(ctx)
		}
	}
}

// Shutdown marks the process as not serving and drains in-flight RPCs.
func (h *HealthServer) Shutdown() {
	h.health.Shutdown()
	h.server.GracefulStop()
}
