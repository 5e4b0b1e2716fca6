package mission

import "errors"

var (
	ErrMissionNotFound  = errors.New("mission not found")
	ErrMissionFinished  = errors.New("mission already finished")
	ErrNotMissionOwner  = errors.New("caller does not own mission")
	ErrForbidden        = errors.New("operation requires system role")
	ErrLoadStateChanged = errors.New("load state changed")

	ErrInvalidTransition = errors.New("invalid transition for mission state")
	ErrDuplicateSignal   = errors.New("duplicate signal")
	ErrCargoNotSecured   = errors.New("cargo must be secured before departure")
	ErrStopOutOfOrder    = errors.New("stop out of order")
	ErrStopsRemaining    = errors.New("stops remaining")
	ErrNotAtLocation     = errors.New("driver not at required location")

	ErrInvalidSignal   = errors.New("invalid signal")
	ErrNotLivestock    = errors.New("cargo is not livestock")
	ErrInvalidRating   = errors.New("welfare rating out of range")
	ErrInvalidFraction = errors.New("partial fraction out of range")
)
