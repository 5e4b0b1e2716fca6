package reservation

import "errors"

var (
	ErrInvalidHold      = errors.New("invalid reservation hold")
	ErrInvalidEquipment = errors.New("invalid equipment")

	ErrLoadNotFound       = errors.New("load not found")
	ErrLoadUnavailable    = errors.New("load unavailable")
	ErrReservationNotHeld = errors.New("reservation not held by driver")
	ErrCooldownActive     = errors.New("release cooldown active")

	ErrDriverHasMission  = errors.New("driver already has a live mission")
	ErrMissingCredential = errors.New("missing required credential")
	ErrEquipmentMismatch = errors.New("equipment does not match load requirements")
	ErrInsuranceRequired = errors.New("active insurance required")
	ErrReputationTooLow  = errors.New("reputation tier too low for load tier")
	ErrInsufficientFunds = errors.New("insufficient funds for deposit")
)
