package rate_limiter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var RateLimitExceededTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "freight_rate_limited_requests_total",
		Help: "Requests rejected by the global token bucket",
	},
	[]string{"method", "route"},
)
