package delivery_window

import (
	"math"
	"time"
)

const perStopAllowance = 10 * time.Minute

var (
	tierBaseMinutes = map[int]float64{0: 20, 1: 30, 2: 45, 3: 60}
	tierPerMile     = map[int]float64{0: 2, 1: 2, 2: 2.5, 3: 3}
)

type WindowFactory struct{}

func New() *WindowFactory {
	return &WindowFactory{}
}

// CalculateWindow окно доставки отсчитывается от момента принятия груза.
func (f *WindowFactory) CalculateWindow(tier int, distance float64, stops int, acceptedAt time.Time) time.Time {
	base, ok := tierBaseMinutes[tier]
	if !ok {
		base = tierBaseMinutes[0]
	}
	perMile, ok := tierPerMile[tier]
	if !ok {
		perMile = tierPerMile[0]
	}

	minutes := base + math.Max(distance, 0)*perMile
	window := time.Duration(math.Ceil(minutes)) * time.Minute
	if stops > 0 {
		window += time.Duration(stops) * perStopAllowance
	}

	return acceptedAt.Add(window)
}
