package wallet

import (
	"context"
	"fmt"

	"freight/internal/gateway/grpc/rpc"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
)

const ServiceName = "freight.wallet.v1.WalletService"

type WalletGateway struct {
	caller caller
}

func New(caller caller) *WalletGateway {
	return &WalletGateway{
		caller: caller,
	}
}

// Debit false без ошибки означает нехватку средств. Ключ идемпотентности общий
// для всех повторов одного списания.
func (w *WalletGateway) Debit(ctx context.Context, driverID string, amount int64, memo string) (bool, error) {
	resp, err := w.caller.Call(ctx, "Debit", map[string]any{
		"driver_id":       driverID,
		"amount":          amount,
		"memo":            memo,
		"idempotency_key": uuid.NewString(),
	})
	if err != nil {
		if rpc.Code(err) == codes.FailedPrecondition {
			return false, nil
		}
		return false, fmt.Errorf("gateway wallet, debit: %w", err)
	}

	return rpc.Bool(resp, "ok"), nil
}

func (w *WalletGateway) Credit(ctx context.Context, driverID string, amount int64, memo string) error {
	_, err := w.caller.Call(ctx, "Credit", map[string]any{
		"driver_id":       driverID,
		"amount":          amount,
		"memo":            memo,
		"idempotency_key": uuid.NewString(),
	})
	if err != nil {
		return fmt.Errorf("gateway wallet, credit: %w", err)
	}
	return nil
}
