package dto

import (
	"errors"
	"time"

	"freight/internal/entities"

	"github.com/AlekSi/pointer"
)

var ErrMissingPosition = errors.New("position x and y are required")

func (p PositionRequest) ToCoord() (entities.Coord, error) {
	return toCoord(p.X, p.Y)
}

func (r DeliverRequest) ToCoord() (entities.Coord, error) {
	return toCoord(r.X, r.Y)
}

// ToConvoySize без поля водитель едет один.
func (r DeliverRequest) ToConvoySize() int {
	return pointer.GetInt(r.ConvoySize)
}

func (r PartialRequest) ToCoord() (entities.Coord, error) {
	return toCoord(r.X, r.Y)
}

func toCoord(x, y *float64) (entities.Coord, error) {
	if x == nil || y == nil {
		return entities.Coord{}, ErrMissingPosition
	}
	return entities.Coord{X: *x, Y: *y}, nil
}

// ToHold ноль означает удержание по умолчанию.
func (r ReserveRequest) ToHold() time.Duration {
	if r.HoldSeconds == nil {
		return 0
	}
	return time.Duration(*r.HoldSeconds) * time.Second
}

func (r AcceptRequest) ToEquipment() entities.Equipment {
	return entities.Equipment{
		ID:          r.EquipmentID,
		TrailerType: r.TrailerType,
		Ownership:   entities.Ownership(r.Ownership),
	}
}

func (r SignalRequest) ToSignal() entities.Signal {
	return entities.Signal{
		Kind:   entities.SignalKind(r.Type),
		Cause:  pointer.GetString(r.Cause),
		Loss:   pointer.GetInt(r.Loss),
		Amount: pointer.GetInt(r.Amount),
		Class:  entities.TempClass(pointer.GetString(r.Class)),
		Rating: pointer.GetInt(r.Rating),
	}
}

func FromReservation(r *entities.Reservation) ReservationResponse {
	return ReservationResponse{
		LoadID:    r.LoadID,
		ExpiresAt: r.ExpiresAt,
	}
}

func FromRelease(r *entities.ReservationRelease) ReleaseResponse {
	return ReleaseResponse{
		LoadID:              r.LoadID,
		ConsecutiveReleases: r.ConsecutiveReleases,
		Warning:             r.Warning,
		CooldownUntil:       r.CooldownUntil,
	}
}

func FromMission(m *entities.Mission) MissionResponse {
	stops := m.Stops
	if stops == nil {
		stops = []entities.Coord{}
	}

	return MissionResponse{
		BOLID:           m.BOLID,
		LoadID:          m.LoadID,
		Status:          m.Status.String(),
		Tier:            m.Tier,
		CargoClass:      m.CargoClass.String(),
		NextStop:        m.NextStop,
		StopCount:       m.StopCount,
		Integrity:       m.Integrity,
		SealState:       m.SealState.String(),
		CargoSecured:    m.CargoSecured,
		AcceptedAt:      m.AcceptedAt,
		DepartedAt:      m.DepartedAt,
		WindowExpiresAt: m.WindowExpiresAt,
		DepositAmount:   m.DepositAmount,
		Destination:     m.Destination,
		Stops:           stops,
	}
}

func FromAcceptance(a *entities.Acceptance) AcceptResponse {
	return AcceptResponse{
		BOLNumber: a.BOLNumber,
		Mission:   FromMission(&a.Mission),
	}
}

func FromOutcome(o *entities.DeliveryOutcome) OutcomeResponse {
	breakdown := o.Breakdown
	if breakdown == nil {
		breakdown = []entities.BreakdownStep{}
	}

	return OutcomeResponse{
		BOLID:       o.BOLID,
		BOLNumber:   o.BOLNumber,
		Status:      o.Status.String(),
		Payout:      o.Payout,
		Breakdown:   breakdown,
		DeliveredAt: o.DeliveredAt,
	}
}

func FromBOL(b *entities.BOL) BOLResponse {
	res := BOLResponse{
		ID:                  b.ID,
		BOLNumber:           b.BOLNumber,
		LoadID:              b.LoadID,
		DriverID:            b.DriverID,
		Status:              b.Status.String(),
		Tier:                b.Tier,
		CargoClass:          b.CargoClass.String(),
		Distance:            b.Distance,
		WeighStationStamped: b.WeighStationStamped,
		ManifestVerified:    b.ManifestVerified,
		PreTripDone:         b.PreTripDone,
		TempClass:           b.TempClass.String(),
		WelfareRating:       b.WelfareRating,
		SealState:           b.SealState.String(),
		FinalPayout:         b.FinalPayout,
		Breakdown:           b.Breakdown,
		CreatedAt:           b.CreatedAt,
		DeliveredAt:         b.DeliveredAt,
		Events:              make([]EventResponse, 0, len(b.Events)),
	}

	if b.Deposit != nil {
		res.Deposit = &DepositResponse{
			Status: b.Deposit.Status.String(),
			Amount: b.Deposit.Amount,
		}
	}

	for _, e := range b.Events {
		res.Events = append(res.Events, EventResponse{
			Type:       e.Type.String(),
			Data:       e.Data,
			OccurredAt: e.OccurredAt,
		})
	}
	return res
}
