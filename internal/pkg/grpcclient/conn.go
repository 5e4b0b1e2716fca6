package grpcclient

import (
	"context"
	"fmt"
	"time"

	"freight/internal/pkg/readiness"
	"freight/pkg/logger"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"
)

const (
	keepaliveTime    = 5 * time.Minute
	keepaliveTimeout = 3 * time.Second
	checkTimeout     = 2 * time.Second
)

// NewConnClient соединение с платформенным сервисом; готовность проверяется стандартным health-протоколом.
func NewConnClient(ctx context.Context, log logger.Logger, host string, service string) (*grpc.ClientConn, error) {
	conn, err := grpc.NewClient(
		host,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithKeepaliveParams(keepalive.ClientParameters{
			Time:    keepaliveTime,
			Timeout: keepaliveTimeout,
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("grpc client for %s: %w", service, err)
	}

	grpcLog := log.With(
		logger.NewField("component", "grpc-client"),
		logger.NewField("host", host),
	)

	err = readiness.UntilReady(ctx, grpcLog, service, HealthCheck(conn, service))
	if err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			grpcLog.With(logger.NewField("error", closeErr)).Warn("close grpc connection")
		}
		return nil, err
	}

	return conn, nil
}

// HealthCheck проверка grpc.health.v1 для конкретного сервиса; NOT_SERVING считается ошибкой.
func HealthCheck(conn grpc.ClientConnInterface, service string) readiness.Check {
	client := healthpb.NewHealthClient(conn)

	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, checkTimeout)
		defer cancel()

		resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: service})
		if err != nil {
			return err
		}
		if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
			return fmt.Errorf("service %s is %s", service, resp.GetStatus())
		}
		return nil
	}
}
