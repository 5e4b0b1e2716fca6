package entities

import (
	"math"
	"time"
)

type LoadStatus string

const (
	LoadAvailable LoadStatus = "available"
	LoadReserved  LoadStatus = "reserved"
	LoadAccepted  LoadStatus = "accepted"
	LoadCompleted LoadStatus = "completed"
	LoadExpired   LoadStatus = "expired"
	LoadOrphaned  LoadStatus = "orphaned"
)

func (s LoadStatus) String() string {
	return string(s)
}

const (
	MinTier = 0
	MaxTier = 3
)

type CargoClass string

const (
	CargoGeneral      CargoClass = "general"
	CargoFragile      CargoClass = "fragile"
	CargoRefrigerated CargoClass = "refrigerated"
	CargoLivestock    CargoClass = "livestock"
	CargoHazmat       CargoClass = "hazmat"
	CargoOversized    CargoClass = "oversized"
	CargoHighValue    CargoClass = "high_value"
)

func (c CargoClass) String() string {
	return string(c)
}

// RequiresSecuring груз нельзя везти без крепления.
func (c CargoClass) RequiresSecuring() bool {
	switch c {
	case CargoOversized, CargoHazmat, CargoLivestock:
		return true
	default:
		return false
	}
}

// RequiresSeal пломба ставится автоматически при отправлении.
func (c CargoClass) RequiresSeal() bool {
	return c == CargoHighValue || c == CargoHazmat
}

func (c CargoClass) TemperatureControlled() bool {
	return c == CargoRefrigerated
}

func (c CargoClass) IsLivestock() bool {
	return c == CargoLivestock
}

type Coord struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (c Coord) DistanceTo(other Coord) float64 {
	return math.Hypot(c.X-other.X, c.Y-other.Y)
}

type Requirements struct {
	License        string   `json:"license,omitempty"`
	Endorsements   []string `json:"endorsements,omitempty"`
	Certifications []string `json:"certifications,omitempty"`
	TrailerType    string   `json:"trailer_type,omitempty"`
}

type Load struct {
	ID                   int64
	Status               LoadStatus
	Tier                 int
	CargoClass           CargoClass
	Origin               Coord
	Destination          Coord
	Stops                []Coord
	Distance             float64
	Weight               float64
	Requirements         Requirements
	DepositAmount        int64
	ShipperTier          int
	SurgeMultiplier      float64
	ReservedBy           *string
	ReservationExpiresAt *time.Time
	PostingExpiresAt     time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (l *Load) IsReservedBy(driverID string) bool {
	return l.Status == LoadReserved && l.ReservedBy != nil && *l.ReservedBy == driverID
}

type Reservation struct {
	LoadID    int64
	DriverID  string
	ExpiresAt time.Time
}

type ReservationRelease struct {
	LoadID              int64
	DriverID            string
	ConsecutiveReleases int
	Warning             bool
	CooldownUntil       *time.Time
}
