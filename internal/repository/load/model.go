package load

import "time"

type CoordDB struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type RequirementsDB struct {
	License        string   `json:"license,omitempty"`
	Endorsements   []string `json:"endorsements,omitempty"`
	Certifications []string `json:"certifications,omitempty"`
	TrailerType    string   `json:"trailer_type,omitempty"`
}

type LoadDB struct {
	ID                   int64
	Status               string
	Tier                 int
	CargoClass           string
	OriginX              float64
	OriginY              float64
	DestinationX         float64
	DestinationY         float64
	Stops                []CoordDB
	Distance             float64
	Weight               float64
	Requirements         RequirementsDB
	DepositAmount        int64
	ShipperTier          int
	SurgeMultiplier      float64
	ReservedBy           *string
	ReservationExpiresAt *time.Time
	PostingExpiresAt     time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
