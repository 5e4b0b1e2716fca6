package rpc

import (
	"context"
	"fmt"
	"time"

	retrierconfig "freight/pkg/retrier"
	"freight/pkg/retrier/backoff_adapter"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	initialInterval = 100 * time.Millisecond
	maxInterval     = 2 * time.Second
	maxElapsedTime  = 1 * time.Second
	randomization   = 0.5
	multiplier      = 2.0
)

// Client унарные вызовы внешних платформенных сервисов. Сообщения передаются как
// google.protobuf.Struct, поэтому сгенерированные стабы не нужны.
type Client struct {
	service string
	conn    conn
	retrier retrier
}

func New(service string, conn conn) *Client {
	retryConfig := retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
		ShouldRetry:     isRetryableCode,
	}

	return NewWithRetrier(service, conn, backoff_adapter.New(retryConfig))
}

func NewWithRetrier(service string, conn conn, retrier retrier) *Client {
	return &Client{
		service: service,
		conn:    conn,
		retrier: retrier,
	}
}

func (c *Client) Call(ctx context.Context, method string, req map[string]any) (*structpb.Struct, error) {
	in, err := structpb.NewStruct(req)
	if err != nil {
		return nil, fmt.Errorf("gateway %s, encode %s request: %w", c.service, method, err)
	}

	resp := &structpb.Struct{}
	err = c.executeWithMetrics(ctx, method, func(ctx context.Context) error {
		return c.conn.Invoke(ctx, c.fullMethod(method), in, resp)
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func (c *Client) fullMethod(method string) string {
	return "/" + c.service + "/" + method
}

func (c *Client) executeWithMetrics(ctx context.Context, method string, fn func(context.Context) error) error {
	var attempt uint64
	start := time.Now()

	err := c.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		return fn(ctx)
	})

	grpcCode := Code(err).String()
	GatewayRequestDuration.WithLabelValues(c.service, method, grpcCode).Observe(time.Since(start).Seconds())

	if attempt > 1 {
		GatewayRetriesTotal.WithLabelValues(c.service, method, grpcCode).Inc()
	}

	return err
}

func isRetryableCode(err error) bool {
	if err == nil {
		return false
	}
	st, ok := status.FromError(err)
	if !ok {
		return false
	}

	switch st.Code() {
	case codes.ResourceExhausted,
		codes.Unavailable,
		codes.DeadlineExceeded:
		return true
	default:
		return false
	}
}

// Code gRPC-код ошибки; не-gRPC ошибки считаются Unknown.
func Code(err error) codes.Code {
	if err == nil {
		return codes.OK
	}
	if st, ok := status.FromError(err); ok {
		return st.Code()
	}
	return codes.Unknown
}

func Bool(resp *structpb.Struct, key string) bool {
	if resp == nil {
		return false
	}
	return resp.GetFields()[key].GetBoolValue()
}
