package entities

import "time"

type PayoutStatus string

const (
	PayoutSuccess  PayoutStatus = "success"
	PayoutRejected PayoutStatus = "rejected"
)

func (s PayoutStatus) String() string {
	return string(s)
}

type BreakdownStep struct {
	Step   int                `json:"step"`
	Name   string             `json:"name"`
	Inputs map[string]float64 `json:"inputs,omitempty"`
	Before float64            `json:"before"`
	Delta  float64            `json:"delta"`
	After  float64            `json:"after"`
}

type ComplianceFlags struct {
	WeighStation     bool
	SealIntact       bool
	LicenseMatch     bool
	PreTrip          bool
	ManifestVerified bool
}

type PayoutInput struct {
	Tier            int
	CargoClass      CargoClass
	SurgeMultiplier float64
	Distance        float64
	Weight          float64
	StopCount       int
	Ownership       Ownership
	AcceptedAt      time.Time
	WindowExpiresAt time.Time
	DeliveredAt     time.Time
	Integrity       int
	TempMonitoring  bool
	TempClass       TempClass
	WelfareRating   *int
	Compliance      ComplianceFlags
	ShipperTier     int
	ConvoySize      int
}

type PayoutResult struct {
	Amount    int64
	Status    PayoutStatus
	Breakdown []BreakdownStep
}
