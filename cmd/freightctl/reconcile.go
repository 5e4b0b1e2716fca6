package main

import (
	"fmt"
	"os"

	"freight/internal/app"
	"freight/internal/pkg/kafka"
	"freight/internal/pkg/postgres"
	"freight/pkg/logger"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func reconcileCmd(log logger.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Run the maintenance reconciler",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "once",
		Short: "Sweep holds, windows, postings and orphans once and print a report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			pool, err := postgres.NewConnPool(ctx, log, &cfg.Database)
			if err != nil {
				return fmt.Errorf("database: %w", err)
			}
			defer pool.Close()

			conns, err := app.ConnectPlatform(ctx, log, &cfg.Platform)
			if err != nil {
				return fmt.Errorf("gRPC clients: %w", err)
			}
			defer conns.Close(log)

			producer, err := kafka.NewSyncProducer(ctx, log, &cfg.Kafka, kafka.SplitBrokers(cfg.Kafka.Brokers))
			if err != nil {
				return fmt.Errorf("kafka producer: %w", err)
			}
			defer func() {
				if err := producer.Close(); err != nil {
					log.Error("failed to close kafka producer", logger.NewField("error", err))
				}
			}()

			maintenance, err := app.InitializeMaintenanceApp(ctx, log, pool, pgxv5.DefaultCtxGetter, conns, producer, cfg)
			if err != nil {
				return fmt.Errorf("business logic: %w", err)
			}
			reconciler := maintenance.Reconciler

			// завершение миссии снимает её из индекса, поэтому индекс строится первым
			indexed, err := reconciler.RebuildIndex(ctx)
			if err != nil {
				return fmt.Errorf("rebuild index: %w", err)
			}

			released, err := reconciler.SweepReservations(ctx)
			if err != nil {
				return fmt.Errorf("sweep reservations: %w", err)
			}

			windows, err := reconciler.SweepWindows(ctx)
			if err != nil {
				return fmt.Errorf("sweep windows: %w", err)
			}

			report, err := reconciler.Maintain(ctx)
			if err != nil {
				return fmt.Errorf("maintain: %w", err)
			}

			tw := table.NewWriter()
			tw.SetOutputMirror(os.Stdout)
			tw.AppendHeader(table.Row{"Pass", "Processed", "Skipped", "Failed"})
			tw.AppendRow(table.Row{"active missions indexed", indexed, "", ""})
			tw.AppendRow(table.Row{"reservation holds released", released, "", ""})
			tw.AppendRow(table.Row{"delivery windows expired", windows.Processed, windows.Skipped, windows.Failed})
			tw.AppendRow(table.Row{"postings expired", report.ExpiredPostings, "", ""})
			tw.AppendRow(table.Row{"orphans resolved", report.Orphans.Processed, report.Orphans.Skipped, report.Orphans.Failed})
			tw.Render()
			return nil
		},
	})
	return cmd
}
