package reservation

import (
	"errors"
	"strings"

	"freight/internal/entities"
	"freight/pkg/logger"
)

func isValidEquipment(equipment entities.Equipment) bool {
	if strings.TrimSpace(equipment.ID) == "" {
		return false
	}
	switch equipment.Ownership {
	case entities.OwnershipCompany, entities.OwnershipOwnerOperator:
		return true
	default:
		return false
	}
}

// requiredCredentials лицензия, затем допуски и сертификаты в порядке объявления.
func requiredCredentials(req entities.Requirements) []string {
	credentials := make([]string, 0, 1+len(req.Endorsements)+len(req.Certifications))
	if req.License != "" {
		credentials = append(credentials, req.License)
	}
	credentials = append(credentials, req.Endorsements...)
	credentials = append(credentials, req.Certifications...)
	return credentials
}

func outcome(err error) string {
	switch {
	case errors.Is(err, ErrLoadUnavailable):
		return "unavailable"
	case errors.Is(err, ErrReservationNotHeld):
		return "not_held"
	case errors.Is(err, ErrDriverHasMission):
		return "has_mission"
	case errors.Is(err, ErrMissingCredential),
		errors.Is(err, ErrInsuranceRequired),
		errors.Is(err, ErrEquipmentMismatch),
		errors.Is(err, ErrReputationTooLow):
		return "ineligible"
	default:
		return "error"
	}
}

func fieldDriver(driverID string) logger.Field { return logger.NewField("driver_id", driverID) }
func fieldLoad(loadID int64) logger.Field      { return logger.NewField("load_id", loadID) }
func fieldBOL(number string) logger.Field      { return logger.NewField("bol_number", number) }
func fieldAmount(amount int64) logger.Field    { return logger.NewField("amount", amount) }
func fieldCause(err error) logger.Field        { return logger.NewField("cause", err) }
func fieldError(err error) logger.Field        { return logger.NewField("error", err) }
