package reconciler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var ReconciledTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "freight_reconciled_total",
		Help: "Records changed by maintenance jobs",
	},
	[]string{"job", "outcome"},
)
