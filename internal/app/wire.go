//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"freight/internal/gateway/grpc/credential"
	"freight/internal/gateway/grpc/inventory"
	"freight/internal/gateway/grpc/wallet"
	"freight/internal/gateway/kafka/notification"
	"freight/internal/pkg/config"
	"freight/internal/pkg/factory/bol_number"
	"freight/internal/pkg/factory/delivery_window"
	"freight/internal/pkg/mission_index"
	bolRepo "freight/internal/repository/bol"
	driverRepo "freight/internal/repository/driver"
	loadRepo "freight/internal/repository/load"
	missionRepo "freight/internal/repository/mission"
	ledgerService "freight/internal/service/ledger"
	missionService "freight/internal/service/mission"
	payoutService "freight/internal/service/payout"
	reconcilerService "freight/internal/service/reconciler"
	reputationService "freight/internal/service/reputation"
	reservationService "freight/internal/service/reservation"
	"freight/pkg/logger"
	"freight/pkg/tx"

	"github.com/IBM/sarama"
	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"
)

var repositorySet = wire.NewSet(
	provideTxManager,
	provideQuerier,

	provideLoadRepository,
	provideDriverRepository,
	provideMissionRepository,
	provideBOLRepository,
)

var missionSet = wire.NewSet(
	mission_index.New,
	providePayoutCalculator,
	provideLedger,
	provideReputation,
	provideWalletGateway,
	provideInventoryGateway,
	provideNotifier,
	provideMissionService,

	wire.Bind(new(ledgerService.Repository), new(*bolRepo.Repository)),
	wire.Bind(new(reputationService.Repository), new(*driverRepo.Repository)),

	wire.Bind(new(missionService.Repository), new(*missionRepo.Repository)),
	wire.Bind(new(missionService.LoadRepository), new(*loadRepo.Repository)),
	wire.Bind(new(missionService.Ledger), new(*ledgerService.Ledger)),
	wire.Bind(new(missionService.ReputationService), new(*reputationService.Service)),
	wire.Bind(new(missionService.PayoutCalculator), new(*payoutService.Calculator)),
	wire.Bind(new(missionService.MissionIndex), new(*mission_index.Index)),
	wire.Bind(new(missionService.WalletGateway), new(*wallet.WalletGateway)),
	wire.Bind(new(missionService.InventoryGateway), new(*inventory.InventoryGateway)),
	wire.Bind(new(missionService.Notifier), new(*notification.Gateway)),
	wire.Bind(new(missionService.TxManager), new(*tx.Manager)),
)

var reconcilerSet = wire.NewSet(
	provideReconcilerConfig,
	provideReconciler,

	wire.Bind(new(reconcilerService.LoadRepository), new(*loadRepo.Repository)),
	wire.Bind(new(reconcilerService.MissionRepository), new(*missionRepo.Repository)),
	wire.Bind(new(reconcilerService.MissionService), new(*missionService.Service)),
)

// InitializeApplication для HTTP сервиса (cmd/service)
func InitializeApplication(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	conns PlatformConns,
	producer sarama.SyncProducer,
	cfg *config.Config,
) (*Application, error) {
	wire.Build(
		repositorySet,
		missionSet,
		reconcilerSet,

		provideReservationConfig,
		provideBOLNumberFactory,
		delivery_window.New,
		provideCredentialGateway,
		provideReservationService,

		provideTaskList,
		provideBackgroundWorkers,

		wire.Struct(new(Application), "*"),

		wire.Bind(new(reservationService.LoadRepository), new(*loadRepo.Repository)),
		wire.Bind(new(reservationService.DriverRepository), new(*driverRepo.Repository)),
		wire.Bind(new(reservationService.MissionRepository), new(*missionRepo.Repository)),
		wire.Bind(new(reservationService.Ledger), new(*ledgerService.Ledger)),
		wire.Bind(new(reservationService.ReputationService), new(*reputationService.Service)),
		wire.Bind(new(reservationService.CredentialGateway), new(*credential.CredentialGateway)),
		wire.Bind(new(reservationService.WalletGateway), new(*wallet.WalletGateway)),
		wire.Bind(new(reservationService.InventoryGateway), new(*inventory.InventoryGateway)),
		wire.Bind(new(reservationService.MissionIndex), new(*mission_index.Index)),
		wire.Bind(new(reservationService.BOLNumberFactory), new(*bol_number.Factory)),
		wire.Bind(new(reservationService.WindowFactory), new(*delivery_window.WindowFactory)),
		wire.Bind(new(reservationService.TxManager), new(*tx.Manager)),
	)
	return &Application{}, nil
}

// InitializeKafkaWorkerApp для Kafka воркера (cmd/worker-driver-presence)
func InitializeKafkaWorkerApp(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	conns PlatformConns,
	producer sarama.SyncProducer,
	cfg *config.Config,
) (*KafkaWorkerApp, error) {
	wire.Build(
		repositorySet,
		missionSet,

		wire.Struct(new(KafkaWorkerApp), "*"),
	)
	return nil, nil
}

// InitializeMaintenanceApp для разового прогона сверки (cmd/freightctl)
func InitializeMaintenanceApp(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	conns PlatformConns,
	producer sarama.SyncProducer,
	cfg *config.Config,
) (*MaintenanceApp, error) {
	wire.Build(
		repositorySet,
		missionSet,
		reconcilerSet,

		wire.Struct(new(MaintenanceApp), "*"),
	)
	return nil, nil
}
