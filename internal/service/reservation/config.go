package reservation

import "time"

const (
	// CooldownTierThreshold с этого уровня груза действует блокировка после серии отказов.
	CooldownTierThreshold = 2

	releaseWarnAt     = 3
	releaseCooldownAt = 5

	insuranceCredential = "insurance"
)

type Config struct {
	DefaultHold     time.Duration
	MaxHold         time.Duration
	ReleaseCooldown time.Duration
}
