package bol

import "time"

type BreakdownStepDB struct {
	Step   int                `json:"step"`
	Name   string             `json:"name"`
	Inputs map[string]float64 `json:"inputs,omitempty"`
	Before float64            `json:"before"`
	Delta  float64            `json:"delta"`
	After  float64            `json:"after"`
}

type BOLDB struct {
	ID                  int64
	BOLNumber           string
	LoadID              int64
	DriverID            string
	Status              string
	Tier                int
	CargoClass          string
	Distance            float64
	Weight              float64
	StopCount           int
	Ownership           string
	WeighStationStamped bool
	ManifestVerified    bool
	PreTripDone         bool
	TempClass           string
	WelfareRating       *int
	LicenseMatch        bool
	SealState           string
	FinalPayout         *int64
	Breakdown           []BreakdownStepDB
	CreatedAt           time.Time
	DeliveredAt         *time.Time
}

type BOLFlagsPatchDB struct {
	WeighStationStamped *bool
	ManifestVerified    *bool
	PreTripDone         *bool
	TempClass           *string
	WelfareRating       *int
	SealState           *string
}

type DepositDB struct {
	ID       int64
	BOLID    int64
	DriverID string
	Status   string
	Amount   int64
}

type AuditEventDB struct {
	ID         int64
	BOLID      int64
	Type       string
	Data       map[string]any
	OccurredAt time.Time
}
