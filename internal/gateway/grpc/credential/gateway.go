package credential

import (
	"context"
	"fmt"

	"freight/internal/gateway/grpc/rpc"

	"google.golang.org/grpc/codes"
)

const ServiceName = "freight.credential.v1.CredentialService"

type CredentialGateway struct {
	caller caller
}

func New(caller caller) *CredentialGateway {
	return &CredentialGateway{
		caller: caller,
	}
}

// IsActive неизвестный водитель или документ трактуются как отсутствие допуска.
func (c *CredentialGateway) IsActive(ctx context.Context, driverID string, credential string) (bool, error) {
	resp, err := c.caller.Call(ctx, "IsActive", map[string]any{
		"driver_id":  driverID,
		"credential": credential,
	})
	if err != nil {
		if rpc.Code(err) == codes.NotFound {
			return false, nil
		}
		return false, fmt.Errorf("gateway credential, is active: %s: %w", credential, err)
	}

	return rpc.Bool(resp, "active"), nil
}
