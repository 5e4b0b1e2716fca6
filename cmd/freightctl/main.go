package main

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"

	"freight/internal/pkg/config"
	"freight/pkg/logger"
	"freight/pkg/logger/zap_adapter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "freightctl",
	Short: "Freight operations CLI",
	Long: `freightctl обслуживает freight вне HTTP сервиса:
миграции схемы, разовый прогон сверки, расчёт выплаты по таблицам и выпуск токенов сессии.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		envFile, _ := cmd.Flags().GetString("env-file")
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", envFile, err)
		}
		return nil
	},
}

func main() {
	zapLogger, err := zap_adapter.NewZapAdapter(zap_adapter.WithConsole(), zap_adapter.WithLevel(os.Getenv("LOG_LEVEL")))
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			stdlog.Printf("failed to sync logger: %v", err)
		}
	}()

	var appLogger logger.Logger = zapLogger

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	rootCmd.PersistentFlags().String("env-file", ".env", "dotenv file, ignored when missing")
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(reconcileCmd(appLogger))
	rootCmd.AddCommand(payoutCmd())
	rootCmd.AddCommand(tokenCmd())

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		appLogger.Error("command failed", logger.NewField("error", err))
		stop()
		os.Exit(1) //nolint:gocritic // defer stop() уже вызван явно
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
