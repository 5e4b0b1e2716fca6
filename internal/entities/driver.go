package entities

import "time"

type Role string

const (
	RoleDriver Role = "driver"
	RoleSystem Role = "system"
)

type Identity struct {
	DriverID string
	Role     Role
}

type Ownership string

const (
	OwnershipCompany       Ownership = "company"
	OwnershipOwnerOperator Ownership = "owner_operator"
)

func (o Ownership) String() string {
	return string(o)
}

type Equipment struct {
	ID          string
	TrailerType string
	Ownership   Ownership
}

type DriverStats struct {
	DriverID            string
	ConsecutiveReleases int
	CooldownUntil       *time.Time
	ReputationPoints    int64
}

func (s *DriverStats) InCooldown(now time.Time) bool {
	return s.CooldownUntil != nil && now.Before(*s.CooldownUntil)
}

type ReputationTier struct {
	Name        string
	MinPoints   int64
	MaxLoadTier int
}

// ReputationTiers единственная таблица уровней репутации, по возрастанию MinPoints.
var ReputationTiers = []ReputationTier{
	{Name: "rookie", MinPoints: 0, MaxLoadTier: 1},
	{Name: "professional", MinPoints: 100, MaxLoadTier: 2},
	{Name: "veteran", MinPoints: 500, MaxLoadTier: 3},
	{Name: "elite", MinPoints: 1500, MaxLoadTier: 3},
}

func ReputationTierFor(points int64) ReputationTier {
	tier := ReputationTiers[0]
	for _, t := range ReputationTiers {
		if points >= t.MinPoints {
			tier = t
		}
	}
	return tier
}
