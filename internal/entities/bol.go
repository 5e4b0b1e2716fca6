package entities

import "time"

type BOLStatus string

const (
	BOLActive    BOLStatus = "active"
	BOLDelivered BOLStatus = "delivered"
	BOLRejected  BOLStatus = "rejected"
	BOLStolen    BOLStatus = "stolen"
	BOLAbandoned BOLStatus = "abandoned"
	BOLExpired   BOLStatus = "expired"
	BOLPartial   BOLStatus = "partial"
)

func (s BOLStatus) String() string {
	return string(s)
}

func (s BOLStatus) IsTerminal() bool {
	switch s {
	case BOLDelivered, BOLRejected, BOLStolen, BOLAbandoned, BOLExpired, BOLPartial:
		return true
	default:
		return false
	}
}

type TempClass string

const (
	TempClean       TempClass = "clean"
	TempMinor       TempClass = "minor"
	TempSignificant TempClass = "significant"
)

func (t TempClass) String() string {
	return string(t)
}

func (t TempClass) IsValid() bool {
	switch t {
	case TempClean, TempMinor, TempSignificant:
		return true
	default:
		return false
	}
}

// LessSevere классы, из которых допустим переход в t.
func (t TempClass) LessSevere() []TempClass {
	var classes []TempClass
	for _, c := range []TempClass{TempClean, TempMinor, TempSignificant} {
		if c.Severity() < t.Severity() {
			classes = append(classes, c)
		}
	}
	return classes
}

// Severity для сравнения: класс экскурсии может только ухудшаться.
func (t TempClass) Severity() int {
	switch t {
	case TempMinor:
		return 1
	case TempSignificant:
		return 2
	default:
		return 0
	}
}

const (
	MinWelfareRating = 1
	MaxWelfareRating = 5
)

type BOL struct {
	ID                  int64
	BOLNumber           string
	LoadID              int64
	DriverID            string
	Status              BOLStatus
	Tier                int
	CargoClass          CargoClass
	Distance            float64
	Weight              float64
	StopCount           int
	Ownership           Ownership
	WeighStationStamped bool
	ManifestVerified    bool
	PreTripDone         bool
	TempClass           TempClass
	WelfareRating       *int
	LicenseMatch        bool
	SealState           SealState
	FinalPayout         *int64
	Breakdown           []BreakdownStep
	CreatedAt           time.Time
	DeliveredAt         *time.Time

	Deposit *Deposit
	Events  []AuditEvent
}

type BOLCreate struct {
	BOLNumber    string
	LoadID       int64
	DriverID     string
	Tier         int
	CargoClass   CargoClass
	Distance     float64
	Weight       float64
	StopCount    int
	Ownership    Ownership
	LicenseMatch bool
	CreatedAt    time.Time
}

// BOLFlagsPatch закрытый набор флагов соответствия, которые пишут сигналы миссии.
type BOLFlagsPatch struct {
	WeighStationStamped *bool
	ManifestVerified    *bool
	PreTripDone         *bool
	TempClass           *TempClass
	WelfareRating       *int
	SealState           *SealState
}

func (p BOLFlagsPatch) IsEmpty() bool {
	return p.WeighStationStamped == nil &&
		p.ManifestVerified == nil &&
		p.PreTripDone == nil &&
		p.TempClass == nil &&
		p.WelfareRating == nil &&
		p.SealState == nil
}

type BOLFinalize struct {
	Status      BOLStatus
	FinalPayout int64
	Breakdown   []BreakdownStep
	DeliveredAt time.Time
}

type DepositStatus string

const (
	DepositHeld      DepositStatus = "held"
	DepositReturned  DepositStatus = "returned"
	DepositForfeited DepositStatus = "forfeited"
)

func (s DepositStatus) String() string {
	return string(s)
}

type Deposit struct {
	ID       int64
	BOLID    int64
	DriverID string
	Status   DepositStatus
	Amount   int64
}
