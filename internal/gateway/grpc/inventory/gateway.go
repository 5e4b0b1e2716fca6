package inventory

import (
	"context"
	"fmt"

	"freight/internal/gateway/grpc/rpc"

	"google.golang.org/grpc/codes"
)

const ServiceName = "freight.inventory.v1.InventoryService"

type InventoryGateway struct {
	caller caller
}

func New(caller caller) *InventoryGateway {
	return &InventoryGateway{
		caller: caller,
	}
}

// Grant повторная выдача того же документа не ошибка.
func (i *InventoryGateway) Grant(ctx context.Context, driverID string, artifact string) error {
	_, err := i.caller.Call(ctx, "Grant", map[string]any{
		"driver_id": driverID,
		"artifact":  artifact,
	})
	if err != nil && rpc.Code(err) != codes.AlreadyExists {
		return fmt.Errorf("gateway inventory, grant %s: %w", artifact, err)
	}
	return nil
}

func (i *InventoryGateway) Revoke(ctx context.Context, driverID string, artifact string) error {
	_, err := i.caller.Call(ctx, "Revoke", map[string]any{
		"driver_id": driverID,
		"artifact":  artifact,
	})
	if err != nil && rpc.Code(err) != codes.NotFound {
		return fmt.Errorf("gateway inventory, revoke %s: %w", artifact, err)
	}
	return nil
}
