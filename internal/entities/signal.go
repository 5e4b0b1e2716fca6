package entities

type SignalKind string

const (
	SignalManifestVerified     SignalKind = "manifest_verified"
	SignalWeighStationStamped  SignalKind = "weigh_station_stamped"
	SignalCargoSecured         SignalKind = "cargo_secured"
	SignalPreTripCompleted     SignalKind = "pre_trip_completed"
	SignalSealBreak            SignalKind = "seal_break"
	SignalIntegrityEvent       SignalKind = "integrity_event"
	SignalCargoRepaired        SignalKind = "cargo_repaired"
	SignalTemperatureExcursion SignalKind = "temperature_excursion"
	SignalWelfareRated         SignalKind = "welfare_rated"
)

func (k SignalKind) String() string {
	return string(k)
}

// Signal сигнал соответствия от водителя; набор заполненных полей зависит от Kind.
type Signal struct {
	Kind   SignalKind
	Cause  string
	Loss   int
	Amount int
	Class  TempClass
	Rating int
}
