package driver_debounce

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var DebouncedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "freight_debounced_commands_total",
		Help: "Total driver commands dropped as repeats within the debounce window",
	},
	[]string{"method", "route"},
)
