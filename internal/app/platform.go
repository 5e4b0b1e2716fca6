package app

import (
	"context"
	"fmt"

	"freight/internal/gateway/grpc/credential"
	"freight/internal/gateway/grpc/inventory"
	"freight/internal/gateway/grpc/wallet"
	"freight/internal/pkg/config"
	"freight/internal/pkg/grpcclient"
	"freight/pkg/logger"

	"google.golang.org/grpc"
)

// ConnectPlatform поднимает соединения с кошельком, реестром допусков и складом.
// При ошибке уже открытые соединения закрываются.
func ConnectPlatform(ctx context.Context, log logger.Logger, cfg *config.Platform) (PlatformConns, error) {
	var conns PlatformConns

	wallets, err := grpcclient.NewConnClient(ctx, log, cfg.WalletGRPCHost, wallet.ServiceName)
	if err != nil {
		return conns, fmt.Errorf("wallet: %w", err)
	}
	conns.Wallet = wallets

	credentials, err := grpcclient.NewConnClient(ctx, log, cfg.CredentialGRPCHost, credential.ServiceName)
	if err != nil {
		conns.Close(log)
		return PlatformConns{}, fmt.Errorf("credential: %w", err)
	}
	conns.Credential = credentials

	inventories, err := grpcclient.NewConnClient(ctx, log, cfg.InventoryGRPCHost, inventory.ServiceName)
	if err != nil {
		conns.Close(log)
		return PlatformConns{}, fmt.Errorf("inventory: %w", err)
	}
	conns.Inventory = inventories

	return conns, nil
}

func (c PlatformConns) Close(log logger.Logger) {
	for name, conn := range map[string]*grpc.ClientConn{
		wallet.ServiceName:     c.Wallet,
		credential.ServiceName: c.Credential,
		inventory.ServiceName:  c.Inventory,
	} {
		if conn == nil {
			continue
		}
		if err := conn.Close(); err != nil {
			log.Error("failed to close gRPC connection",
				logger.NewField("service", name),
				logger.NewField("error", err),
			)
		}
	}
}
