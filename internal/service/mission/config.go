package mission

type Config struct {
	// StopRadius допуск до точки промежуточной остановки.
	StopRadius float64
	// DestinationRadius допуск до точки назначения по уровню груза.
	DestinationRadius map[int]float64
}

func DefaultConfig() Config {
	return Config{
		StopRadius:        1.5,
		DestinationRadius: map[int]float64{0: 2, 1: 2.5, 2: 3, 3: 4},
	}
}

func (c Config) destinationRadius(tier int) float64 {
	if r, ok := c.DestinationRadius[tier]; ok {
		return r
	}
	return c.StopRadius
}
