package mission

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MissionOutcomesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "freight_mission_outcomes_total",
			Help: "Terminal mission outcomes by status",
		},
		[]string{"status"},
	)

	PayoutAmount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "freight_payout_amount",
			Help:    "Final payout credited on delivery",
			Buckets: []float64{75, 150, 300, 500, 1000, 2500, 5000, 10000},
		},
	)

	SignalsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "freight_mission_signals_total",
			Help: "Mission lifecycle and compliance signals by outcome",
		},
		[]string{"signal", "outcome"},
	)
)
