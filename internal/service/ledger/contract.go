//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=ledger_test
package ledger

import (
	"context"

	"freight/internal/entities"
)

type Repository interface {
	CreateBOL(ctx context.Context, bol entities.BOLCreate) (*entities.BOL, error)
	CreateDeposit(ctx context.Context, bolID int64, driverID string, amount int64) (*entities.Deposit, error)
	FinalizeBOL(ctx context.Context, bolID int64, finalize entities.BOLFinalize) error
	ResolveDeposit(ctx context.Context, bolID int64, status entities.DepositStatus) (*entities.Deposit, error)
	PatchFlags(ctx context.Context, bolID int64, patch entities.BOLFlagsPatch) error

	AppendEvent(ctx context.Context, event entities.AuditEvent) (int64, error)

	GetBOL(ctx context.Context, bolID int64) (*entities.BOL, error)
	GetDeposit(ctx context.Context, bolID int64) (*entities.Deposit, error)
	ListEvents(ctx context.Context, bolID int64) ([]entities.AuditEvent, error)
}
