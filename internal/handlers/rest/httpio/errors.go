package httpio

import (
	"context"
	"errors"
	"net/http"

	"freight/internal/service/ledger"
	"freight/internal/service/mission"
	"freight/internal/service/reservation"
)

// Reason закрытый набор кодов причин в теле ошибки.
type Reason string

const (
	ReasonInvalidRequest  Reason = "invalid_request"
	ReasonUnauthenticated Reason = "unauthenticated"
	ReasonInternal        Reason = "internal"
	ReasonTimeout         Reason = "timeout"
)

type rule struct {
	err    error
	status int
	reason Reason
}

var rules = []rule{
	{reservation.ErrInvalidHold, http.StatusBadRequest, "invalid_hold"},
	{reservation.ErrInvalidEquipment, http.StatusBadRequest, "invalid_equipment"},
	{mission.ErrInvalidSignal, http.StatusBadRequest, "invalid_signal"},
	{mission.ErrInvalidRating, http.StatusBadRequest, "invalid_rating"},
	{mission.ErrInvalidFraction, http.StatusBadRequest, "invalid_fraction"},
	{mission.ErrNotLivestock, http.StatusBadRequest, "not_livestock"},

	{mission.ErrNotMissionOwner, http.StatusForbidden, "not_mission_owner"},
	{mission.ErrForbidden, http.StatusForbidden, "forbidden"},

	{reservation.ErrLoadNotFound, http.StatusNotFound, "load_not_found"},
	{mission.ErrMissionNotFound, http.StatusNotFound, "mission_not_found"},
	{ledger.ErrBOLNotFound, http.StatusNotFound, "bol_not_found"},

	{reservation.ErrLoadUnavailable, http.StatusConflict, "load_unavailable"},
	{reservation.ErrReservationNotHeld, http.StatusConflict, "reservation_not_held"},
	{reservation.ErrDriverHasMission, http.StatusConflict, "driver_has_mission"},
	{mission.ErrInvalidTransition, http.StatusConflict, "invalid_transition"},
	{mission.ErrDuplicateSignal, http.StatusConflict, "duplicate_signal"},
	{mission.ErrMissionFinished, http.StatusConflict, "mission_finished"},
	{mission.ErrLoadStateChanged, http.StatusConflict, "load_state_changed"},
	{ledger.ErrBOLAlreadyFinalized, http.StatusConflict, "bol_already_finalized"},

	{reservation.ErrInsufficientFunds, http.StatusPaymentRequired, "insufficient_funds"},

	{reservation.ErrCooldownActive, http.StatusUnprocessableEntity, "cooldown_active"},
	{reservation.ErrMissingCredential, http.StatusUnprocessableEntity, "missing_credential"},
	{reservation.ErrEquipmentMismatch, http.StatusUnprocessableEntity, "equipment_mismatch"},
	{reservation.ErrInsuranceRequired, http.StatusUnprocessableEntity, "insurance_required"},
	{reservation.ErrReputationTooLow, http.StatusUnprocessableEntity, "reputation_too_low"},
	{mission.ErrCargoNotSecured, http.StatusUnprocessableEntity, "cargo_not_secured"},
	{mission.ErrStopOutOfOrder, http.StatusUnprocessableEntity, "stop_out_of_order"},
	{mission.ErrStopsRemaining, http.StatusUnprocessableEntity, "stops_remaining"},
	{mission.ErrNotAtLocation, http.StatusUnprocessableEntity, "not_at_location"},
}

// ReasonFor сопоставляет ошибку сервиса HTTP-статусу и коду причины.
func ReasonFor(err error) (int, Reason) {
	for _, r := range rules {
		if errors.Is(err, r.err) {
			return r.status, r.reason
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout, ReasonTimeout
	}
	return http.StatusInternalServerError, ReasonInternal
}
