package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"freight/internal/entities"
	"freight/internal/service/payout"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

type quoteFlags struct {
	tables         string
	tier           int
	cargo          string
	surge          float64
	distance       float64
	weight         float64
	stops          int
	ownership      string
	window         time.Duration
	elapsed        time.Duration
	deliveredAt    string
	integrity      int
	tempMonitoring bool
	tempClass      string
	rating         int
	shipperTier    int
	convoy         int
	weighStation   bool
	sealIntact     bool
	licenseMatch   bool
	preTrip        bool
	manifest       bool
	asJSON         bool
}

func payoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payout",
		Short: "Inspect payout tables",
	}

	var f quoteFlags
	quote := &cobra.Command{
		Use:   "quote",
		Short: "Compute a payout with its step-by-step breakdown",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if f.tables == "" {
				f.tables = os.Getenv("PAYOUT_TABLES_PATH")
			}
			cfg, err := payout.LoadConfig(f.tables)
			if err != nil {
				return err
			}

			in, err := f.input()
			if err != nil {
				return err
			}

			result := payout.New(cfg).Calculate(in)
			if f.asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}

			tw := table.NewWriter()
			tw.SetOutputMirror(os.Stdout)
			tw.AppendHeader(table.Row{"#", "Step", "Before", "Delta", "After"})
			for _, step := range result.Breakdown {
				tw.AppendRow(table.Row{step.Step, step.Name, fmt.Sprintf("%.2f", step.Before), fmt.Sprintf("%+.2f", step.Delta), fmt.Sprintf("%.2f", step.After)})
			}
			tw.AppendFooter(table.Row{"", result.Status, "", "", result.Amount})
			tw.Render()
			return nil
		},
	}

	fl := quote.Flags()
	fl.StringVar(&f.tables, "tables", "", "YAML payout tables, PAYOUT_TABLES_PATH when empty")
	fl.IntVar(&f.tier, "tier", 1, "load tier 0..3")
	fl.StringVar(&f.cargo, "cargo", string(entities.CargoGeneral), "cargo class")
	fl.Float64Var(&f.surge, "surge", 1, "surge multiplier")
	fl.Float64Var(&f.distance, "distance", 1000, "route distance")
	fl.Float64Var(&f.weight, "weight", 0, "cargo weight")
	fl.IntVar(&f.stops, "stops", 0, "intermediate stops")
	fl.StringVar(&f.ownership, "ownership", string(entities.OwnershipCompany), "company or owner_operator")
	fl.DurationVar(&f.window, "window", 2*time.Hour, "delivery window length")
	fl.DurationVar(&f.elapsed, "elapsed", time.Hour, "time from acceptance to delivery")
	fl.StringVar(&f.deliveredAt, "delivered-at", "", "delivery time RFC3339, now when empty")
	fl.IntVar(&f.integrity, "integrity", 100, "cargo integrity 0..100")
	fl.BoolVar(&f.tempMonitoring, "temp-monitoring", false, "temperature monitored cargo")
	fl.StringVar(&f.tempClass, "temp-class", string(entities.TempClean), "clean, minor or significant")
	fl.IntVar(&f.rating, "rating", 0, "livestock welfare rating 1..5, 0 for none")
	fl.IntVar(&f.shipperTier, "shipper-tier", 0, "shipper loyalty tier")
	fl.IntVar(&f.convoy, "convoy", 1, "convoy size")
	fl.BoolVar(&f.weighStation, "weigh-station", false, "weigh station stamped")
	fl.BoolVar(&f.sealIntact, "seal-intact", true, "seal intact")
	fl.BoolVar(&f.licenseMatch, "license-match", false, "license requirement met")
	fl.BoolVar(&f.preTrip, "pre-trip", false, "pre-trip inspection done")
	fl.BoolVar(&f.manifest, "manifest", false, "manifest verified")
	fl.BoolVar(&f.asJSON, "json", false, "print JSON instead of a table")

	cmd.AddCommand(quote)
	return cmd
}

func (f quoteFlags) input() (entities.PayoutInput, error) {
	deliveredAt := time.Now().UTC()
	if f.deliveredAt != "" {
		parsed, err := time.Parse(time.RFC3339, f.deliveredAt)
		if err != nil {
			return entities.PayoutInput{}, fmt.Errorf("delivered-at: %w", err)
		}
		deliveredAt = parsed
	}
	acceptedAt := deliveredAt.Add(-f.elapsed)

	var rating *int
	if f.rating > 0 {
		rating = &f.rating
	}

	return entities.PayoutInput{
		Tier:            f.tier,
		CargoClass:      entities.CargoClass(f.cargo),
		SurgeMultiplier: f.surge,
		Distance:        f.distance,
		Weight:          f.weight,
		StopCount:       f.stops,
		Ownership:       entities.Ownership(f.ownership),
		AcceptedAt:      acceptedAt,
		WindowExpiresAt: acceptedAt.Add(f.window),
		DeliveredAt:     deliveredAt,
		Integrity:       f.integrity,
		TempMonitoring:  f.tempMonitoring,
		TempClass:       entities.TempClass(f.tempClass),
		WelfareRating:   rating,
		Compliance: entities.ComplianceFlags{
			WeighStation:     f.weighStation,
			SealIntact:       f.sealIntact,
			LicenseMatch:     f.licenseMatch,
			PreTrip:          f.preTrip,
			ManifestVerified: f.manifest,
		},
		ShipperTier: f.shipperTier,
		ConvoySize:  f.convoy,
	}, nil
}
