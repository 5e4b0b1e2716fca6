//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=credential_test
package credential

import (
	"context"

	"google.golang.org/protobuf/types/known/structpb"
)

type caller interface {
	Call(ctx context.Context, method string, req map[string]any) (*structpb.Struct, error)
}
