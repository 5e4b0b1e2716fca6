package ledger

import "errors"

var (
	ErrBOLNotFound            = errors.New("bol not found")
	ErrBOLNumberConflict      = errors.New("bol number already exists")
	ErrBOLAlreadyFinalized    = errors.New("bol already finalized")
	ErrDepositNotFound        = errors.New("deposit not found")
	ErrDepositAlreadyResolved = errors.New("deposit already resolved")
	ErrUnknownEventType       = errors.New("unknown audit event type")
	ErrNotTerminalStatus      = errors.New("status is not terminal")
	ErrEmptyPatch             = errors.New("empty patch")
	ErrFlagsUnchanged         = errors.New("bol flags already recorded")
)
