package reservation

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var ReservationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "freight_reservation_operations_total",
		Help: "Reservation, cancellation and acceptance attempts by outcome",
	},
	[]string{"operation", "outcome"},
)
