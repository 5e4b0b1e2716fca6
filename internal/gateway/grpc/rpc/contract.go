//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=rpc_test
package rpc

import (
	"context"

	"google.golang.org/grpc"
)

// conn подмножество grpc.ClientConnInterface, которого достаточно для унарных вызовов.
type conn interface {
	Invoke(ctx context.Context, method string, args any, reply any, opts ...grpc.CallOption) error
}

type retrier interface {
	ExecuteWithContext(ctx context.Context, fn func(context.Context) error) error
}
