package entities

import "time"

type AuditEventType string

const (
	EventAccepted             AuditEventType = "accepted"
	EventDeparted             AuditEventType = "departed"
	EventStopCompleted        AuditEventType = "stop_completed"
	EventArrived              AuditEventType = "arrived"
	EventDelivered            AuditEventType = "delivered"
	EventRejected             AuditEventType = "rejected"
	EventAbandoned            AuditEventType = "abandoned"
	EventExpired              AuditEventType = "expired"
	EventOrphaned             AuditEventType = "orphaned"
	EventStolen               AuditEventType = "stolen"
	EventPartial              AuditEventType = "partial"
	EventManifestVerified     AuditEventType = "manifest_verified"
	EventWeighStationStamped  AuditEventType = "weigh_station_stamped"
	EventCargoSecured         AuditEventType = "cargo_secured"
	EventPreTripCompleted     AuditEventType = "pre_trip_completed"
	EventSealApplied          AuditEventType = "seal_applied"
	EventSealBroken           AuditEventType = "seal_broken"
	EventIntegrity            AuditEventType = "integrity_event"
	EventCargoRepaired        AuditEventType = "cargo_repaired"
	EventTemperatureExcursion AuditEventType = "temperature_excursion"
	EventWelfareRated         AuditEventType = "welfare_rated"
	EventDriverDisconnected   AuditEventType = "driver_disconnected"
	EventDriverReconnected    AuditEventType = "driver_reconnected"
	EventDepositReturned      AuditEventType = "deposit_returned"
	EventDepositForfeited     AuditEventType = "deposit_forfeited"
	EventPayoutCredited       AuditEventType = "payout_credited"
	EventPayoutCreditFailed   AuditEventType = "payout_credit_failed"
)

var knownAuditEventTypes = map[AuditEventType]struct{}{
	EventAccepted:             {},
	EventDeparted:             {},
	EventStopCompleted:        {},
	EventArrived:              {},
	EventDelivered:            {},
	EventRejected:             {},
	EventAbandoned:            {},
	EventExpired:              {},
	EventOrphaned:             {},
	EventStolen:               {},
	EventPartial:              {},
	EventManifestVerified:     {},
	EventWeighStationStamped:  {},
	EventCargoSecured:         {},
	EventPreTripCompleted:     {},
	EventSealApplied:          {},
	EventSealBroken:           {},
	EventIntegrity:            {},
	EventCargoRepaired:        {},
	EventTemperatureExcursion: {},
	EventWelfareRated:         {},
	EventDriverDisconnected:   {},
	EventDriverReconnected:    {},
	EventDepositReturned:      {},
	EventDepositForfeited:     {},
	EventPayoutCredited:       {},
	EventPayoutCreditFailed:   {},
}

func (t AuditEventType) String() string {
	return string(t)
}

func (t AuditEventType) IsKnown() bool {
	_, ok := knownAuditEventTypes[t]
	return ok
}

type AuditEvent struct {
	ID         int64
	BOLID      int64
	Type       AuditEventType
	Data       map[string]any
	OccurredAt time.Time
}

func NewAuditEvent(bolID int64, eventType AuditEventType, data map[string]any) AuditEvent {
	return AuditEvent{
		BOLID:      bolID,
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now().UTC(),
	}
}
