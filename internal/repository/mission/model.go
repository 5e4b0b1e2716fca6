package mission

import "time"

type MissionDB struct {
	ID              int64
	LoadID          int64
	BOLID           int64
	DriverID        string
	EquipmentID     string
	Ownership       string
	Status          string
	Tier            int
	NextStop        int
	StopCount       int
	Integrity       int
	SealState       string
	CargoSecured    bool
	TempMonitoring  bool
	AcceptedAt      time.Time
	DepartedAt      *time.Time
	WindowExpiresAt time.Time
	DepositAmount   int64
	DisconnectedAt  *time.Time
	UpdatedAt       time.Time
}

// MissionLoadDB поля груза, которые читаются вместе с миссией.
type MissionLoadDB struct {
	CargoClass      string
	Distance        float64
	Weight          float64
	ShipperTier     int
	SurgeMultiplier float64
	DestinationX    float64
	DestinationY    float64
	Stops           []CoordDB
}

type CoordDB struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type MissionPatchDB struct {
	Status          *string
	NextStop        *int
	Integrity       *int
	SealState       *string
	CargoSecured    *bool
	DepartedAt      *time.Time
	WindowExpiresAt *time.Time
}
