package bol

import (
	"freight/internal/entities"
)

func ToDomain(b *BOLDB) *entities.BOL {
	if b == nil {
		return nil
	}

	return &entities.BOL{
		ID:                  b.ID,
		BOLNumber:           b.BOLNumber,
		LoadID:              b.LoadID,
		DriverID:            b.DriverID,
		Status:              entities.BOLStatus(b.Status),
		Tier:                b.Tier,
		CargoClass:          entities.CargoClass(b.CargoClass),
		Distance:            b.Distance,
		Weight:              b.Weight,
		StopCount:           b.StopCount,
		Ownership:           entities.Ownership(b.Ownership),
		WeighStationStamped: b.WeighStationStamped,
		ManifestVerified:    b.ManifestVerified,
		PreTripDone:         b.PreTripDone,
		TempClass:           entities.TempClass(b.TempClass),
		WelfareRating:       b.WelfareRating,
		LicenseMatch:        b.LicenseMatch,
		SealState:           entities.SealState(b.SealState),
		FinalPayout:         b.FinalPayout,
		Breakdown:           breakdownToDomain(b.Breakdown),
		CreatedAt:           b.CreatedAt,
		DeliveredAt:         b.DeliveredAt,
	}
}

func breakdownToDomain(steps []BreakdownStepDB) []entities.BreakdownStep {
	if steps == nil {
		return nil
	}

	result := make([]entities.BreakdownStep, len(steps))
	for i, s := range steps {
		result[i] = entities.BreakdownStep{
			Step:   s.Step,
			Name:   s.Name,
			Inputs: s.Inputs,
			Before: s.Before,
			Delta:  s.Delta,
			After:  s.After,
		}
	}
	return result
}

func FromDomainBreakdown(steps []entities.BreakdownStep) []BreakdownStepDB {
	result := make([]BreakdownStepDB, len(steps))
	for i, s := range steps {
		result[i] = BreakdownStepDB{
			Step:   s.Step,
			Name:   s.Name,
			Inputs: s.Inputs,
			Before: s.Before,
			Delta:  s.Delta,
			After:  s.After,
		}
	}
	return result
}

func FromDomainFlagsPatch(patch entities.BOLFlagsPatch) BOLFlagsPatchDB {
	patchDB := BOLFlagsPatchDB{
		WeighStationStamped: patch.WeighStationStamped,
		ManifestVerified:    patch.ManifestVerified,
		PreTripDone:         patch.PreTripDone,
		WelfareRating:       patch.WelfareRating,
	}

	if patch.TempClass != nil {
		tempClass := patch.TempClass.String()
		patchDB.TempClass = &tempClass
	}
	if patch.SealState != nil {
		seal := patch.SealState.String()
		patchDB.SealState = &seal
	}

	return patchDB
}

func DepositToDomain(d *DepositDB) *entities.Deposit {
	if d == nil {
		return nil
	}

	return &entities.Deposit{
		ID:       d.ID,
		BOLID:    d.BOLID,
		DriverID: d.DriverID,
		Status:   entities.DepositStatus(d.Status),
		Amount:   d.Amount,
	}
}

func EventsToDomain(eventsDB []AuditEventDB) []entities.AuditEvent {
	if len(eventsDB) == 0 {
		return []entities.AuditEvent{}
	}

	result := make([]entities.AuditEvent, len(eventsDB))
	for i, e := range eventsDB {
		result[i] = entities.AuditEvent{
			ID:         e.ID,
			BOLID:      e.BOLID,
			Type:       entities.AuditEventType(e.Type),
			Data:       e.Data,
			OccurredAt: e.OccurredAt,
		}
	}
	return result
}
