package entities

import "time"

type MissionStatus string

const (
	MissionAtOrigin      MissionStatus = "at_origin"
	MissionInTransit     MissionStatus = "in_transit"
	MissionAtStop        MissionStatus = "at_stop"
	MissionAtDestination MissionStatus = "at_destination"

	MissionDelivered MissionStatus = "delivered"
	MissionRejected  MissionStatus = "rejected"
	MissionAbandoned MissionStatus = "abandoned"
	MissionExpired   MissionStatus = "expired"
	MissionStolen    MissionStatus = "stolen"
	MissionPartial   MissionStatus = "partial"
)

func (s MissionStatus) String() string {
	return string(s)
}

func (s MissionStatus) IsTerminal() bool {
	switch s {
	case MissionDelivered, MissionRejected, MissionAbandoned, MissionExpired, MissionStolen, MissionPartial:
		return true
	default:
		return false
	}
}

// LiveMissionStatuses статусы, при которых строка active_missions существует.
var LiveMissionStatuses = []MissionStatus{
	MissionAtOrigin,
	MissionInTransit,
	MissionAtStop,
	MissionAtDestination,
}

type SealState string

const (
	SealNone    SealState = "none"
	SealApplied SealState = "applied"
	SealBroken  SealState = "broken"
)

func (s SealState) String() string {
	return string(s)
}

const (
	MaxIntegrity = 100
	MinIntegrity = 0
)

type Mission struct {
	ID              int64
	LoadID          int64
	BOLID           int64
	DriverID        string
	EquipmentID     string
	Ownership       Ownership
	Status          MissionStatus
	Tier            int
	NextStop        int
	StopCount       int
	Integrity       int
	SealState       SealState
	CargoSecured    bool
	TempMonitoring  bool
	AcceptedAt      time.Time
	DepartedAt      *time.Time
	WindowExpiresAt time.Time
	DepositAmount   int64
	DisconnectedAt  *time.Time
	UpdatedAt       time.Time

	// из loads, только чтение
	CargoClass      CargoClass
	Distance        float64
	Weight          float64
	ShipperTier     int
	SurgeMultiplier float64
	Destination     Coord
	Stops           []Coord
}

func (m *Mission) StopsDone() bool {
	return m.NextStop >= m.StopCount
}

func (m *Mission) IsConnected() bool {
	return m.DisconnectedAt == nil
}

// MissionPatch закрытый набор изменяемых полей миссии.
type MissionPatch struct {
	Status          *MissionStatus
	NextStop        *int
	Integrity       *int
	SealState       *SealState
	CargoSecured    *bool
	DepartedAt      *time.Time
	WindowExpiresAt *time.Time
}

func (p MissionPatch) IsEmpty() bool {
	return p.Status == nil &&
		p.NextStop == nil &&
		p.Integrity == nil &&
		p.SealState == nil &&
		p.CargoSecured == nil &&
		p.DepartedAt == nil &&
		p.WindowExpiresAt == nil
}

// MissionGuard условие WHERE для условного обновления: ожидаемый статус
// и, при необходимости, ожидаемые значения счетчиков.
type MissionGuard struct {
	Status       MissionStatus
	NextStop     *int
	Integrity    *int
	CargoSecured *bool
}

// MissionRemoval условие удаления живой миссии. Сверка добавляет к статусу
// условия своего снимка: если водитель успел переподключиться или окно
// сдвинулось, удаление ничего не находит.
type MissionRemoval struct {
	Status MissionStatus
	// DisconnectedBy водитель отключен, разрыв начался не позже этого момента.
	DisconnectedBy *time.Time
	// ExpiredBy окно истекло к этому моменту, водитель на связи.
	ExpiredBy *time.Time
}

type MissionCreate struct {
	LoadID          int64
	BOLID           int64
	DriverID        string
	EquipmentID     string
	Ownership       Ownership
	Tier            int
	StopCount       int
	TempMonitoring  bool
	AcceptedAt      time.Time
	WindowExpiresAt time.Time
	DepositAmount   int64
}

// MissionRef то, что держит индекс в памяти.
type MissionRef struct {
	MissionID int64
	BOLID     int64
	DriverID  string
	Status    MissionStatus
}

func (m *Mission) Ref() MissionRef {
	return MissionRef{
		MissionID: m.ID,
		BOLID:     m.BOLID,
		DriverID:  m.DriverID,
		Status:    m.Status,
	}
}

type Acceptance struct {
	Mission   Mission
	BOLNumber string
}

type DeliveryOutcome struct {
	BOLID       int64
	BOLNumber   string
	Status      BOLStatus
	Payout      int64
	Breakdown   []BreakdownStep
	DeliveredAt time.Time
}

// WindowExtension результат переподключения: окно сдвинуто на длительность разрыва.
type WindowExtension struct {
	BOLID           int64
	DriverID        string
	Extension       time.Duration
	WindowExpiresAt time.Time
}

// Presence событие подключения/отключения водителя из топика присутствия.
type Presence struct {
	DriverID  string
	Connected bool
	At        time.Time
}
