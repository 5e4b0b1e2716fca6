package app

import (
	"context"
	"fmt"
	"time"

	"freight/internal/gateway/grpc/credential"
	"freight/internal/gateway/grpc/inventory"
	"freight/internal/gateway/grpc/rpc"
	"freight/internal/gateway/grpc/wallet"
	"freight/internal/gateway/kafka/notification"
	"freight/internal/handlers/tasks/delivery_window_sweep"
	"freight/internal/handlers/tasks/maintenance"
	"freight/internal/handlers/tasks/mission_index_rebuild"
	"freight/internal/handlers/tasks/reservation_hold_sweep"
	"freight/internal/pkg/config"
	"freight/internal/pkg/factory/bol_number"
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
	"freight/pkg/background"
	"freight/pkg/logger"
	"freight/pkg/querier"
	retrierconfig "freight/pkg/retrier"
	"freight/pkg/retrier/backoff_adapter"
	"freight/pkg/tx"

	"github.com/IBM/sarama"
	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/jackc/pgx/v5/pgxpool"
	"google.golang.org/grpc"
)

// PlatformConns соединения с внешними сервисами платформы.
type PlatformConns struct {
	Wallet     *grpc.ClientConn
	Credential *grpc.ClientConn
	Inventory  *grpc.ClientConn
}

func provideTxManager(pool *pgxpool.Pool) *tx.Manager {
	retrier := backoff_adapter.New(retrierconfig.Config{
		InitialInterval: 10 * time.Millisecond,
		MaxInterval:     200 * time.Millisecond,
		MaxElapsedTime:  2 * time.Second,
		Randomization:   0.5,
		Multiplier:      2,
		MaxRetries:      5,
		ShouldRetry:     tx.IsSerializationFailure,
	})
	return tx.New(pool, tx.WithRetrier(retrier))
}

func provideQuerier(pool *pgxpool.Pool, getter *pgxv5.CtxGetter) *querier.Querier {
	return querier.New(pool, getter)
}

func provideLoadRepository(querier *querier.Querier) *loadRepo.Repository {
	return loadRepo.New(querier)
}

func provideDriverRepository(querier *querier.Querier) *driverRepo.Repository {
	return driverRepo.New(querier)
}

func provideMissionRepository(querier *querier.Querier) *missionRepo.Repository {
	return missionRepo.New(querier)
}

func provideBOLRepository(querier *querier.Querier) *bolRepo.Repository {
	return bolRepo.New(querier)
}

func provideBOLNumberFactory(cfg *config.Config) (*bol_number.Factory, error) {
	return bol_number.New(cfg.Freight.SnowflakeNode)
}

func providePayoutCalculator(cfg *config.Config) (*payoutService.Calculator, error) {
	tables, err := payoutService.LoadConfig(cfg.Freight.PayoutTablesPath)
	if err != nil {
		return nil, fmt.Errorf("payout tables: %w", err)
	}
	return payoutService.New(tables), nil
}

func provideWalletGateway(conns PlatformConns) *wallet.WalletGateway {
	return wallet.New(rpc.New(wallet.ServiceName, conns.Wallet))
}

func provideCredentialGateway(conns PlatformConns) *credential.CredentialGateway {
	return credential.New(rpc.New(credential.ServiceName, conns.Credential))
}

func provideInventoryGateway(conns PlatformConns) *inventory.InventoryGateway {
	return inventory.New(rpc.New(inventory.ServiceName, conns.Inventory))
}

func provideNotifier(producer sarama.SyncProducer, cfg *config.Config) *notification.Gateway {
	return notification.New(producer, cfg.Kafka.NotificationTopic)
}

func provideLedger(repository ledgerService.Repository) *ledgerService.Ledger {
	return ledgerService.New(repository)
}

func provideReputation(repository reputationService.Repository) *reputationService.Service {
	return reputationService.New(repository)
}

func provideReservationConfig(cfg *config.Config) reservationService.Config {
	return reservationService.Config{
		DefaultHold:     cfg.Freight.ReservationHold,
		MaxHold:         cfg.Freight.ReservationMaxHold,
		ReleaseCooldown: cfg.Freight.ReleaseCooldown,
	}
}

func provideReconcilerConfig(cfg *config.Config) reconcilerService.Config {
	return reconcilerService.Config{
		OrphanTimeout: cfg.Freight.OrphanTimeout,
	}
}

func provideReservationService(
	cfg reservationService.Config,
	log logger.Logger,
	loads reservationService.LoadRepository,
	drivers reservationService.DriverRepository,
	missions reservationService.MissionRepository,
	ledger reservationService.Ledger,
	reputation reservationService.ReputationService,
	credentials reservationService.CredentialGateway,
	wallet reservationService.WalletGateway,
	inventory reservationService.InventoryGateway,
	index reservationService.MissionIndex,
	bolNumbers reservationService.BOLNumberFactory,
	windowFactory reservationService.WindowFactory,
	txManager reservationService.TxManager,
) *reservationService.Service {
	return reservationService.New(
		cfg,
		log,
		loads,
		drivers,
		missions,
		ledger,
		reputation,
		credentials,
		wallet,
		inventory,
		index,
		bolNumbers,
		windowFactory,
		txManager,
	)
}

func provideMissionService(
	log logger.Logger,
	missions missionService.Repository,
	loads missionService.LoadRepository,
	ledger missionService.Ledger,
	reputation missionService.ReputationService,
	payout missionService.PayoutCalculator,
	index missionService.MissionIndex,
	wallet missionService.WalletGateway,
	inventory missionService.InventoryGateway,
	notifier missionService.Notifier,
	txManager missionService.TxManager,
) *missionService.Service {
	return missionService.New(
		missionService.DefaultConfig(),
		log,
		missions,
		loads,
		ledger,
		reputation,
		payout,
		index,
		wallet,
		inventory,
		notifier,
		txManager,
	)
}

func provideReconciler(
	cfg reconcilerService.Config,
	log logger.Logger,
	loads reconcilerService.LoadRepository,
	missions reconcilerService.MissionRepository,
	service reconcilerService.MissionService,
	index *mission_index.Index,
) *reconcilerService.Service {
	return reconcilerService.New(cfg, log, loads, missions, service, index)
}

func provideTaskList(
	log logger.Logger,
	cfg *config.Config,
	reconciler *reconcilerService.Service,
) []background.Task {
	return []background.Task{
		mission_index_rebuild.NewMissionIndexRebuild(log, reconciler, cfg.Tasks.IndexRebuildInterval),
		reservation_hold_sweep.NewReservationHoldSweep(log, reconciler, cfg.Tasks.ReservationSweepInterval),
		delivery_window_sweep.NewDeliveryWindowSweep(log, reconciler, cfg.Tasks.WindowSweepInterval),
		maintenance.NewMaintenance(log, reconciler, cfg.Tasks.MaintenanceInterval),
	}
}

func provideBackgroundWorkers(ctx context.Context, log logger.Logger, tasks []background.Task) (*background.Worker, error) {
	return background.New(ctx, log, tasks)
}
