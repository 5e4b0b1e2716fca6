package mission

import (
	"freight/internal/entities"
)

func ToDomain(m *MissionDB, l *MissionLoadDB) *entities.Mission {
	if m == nil {
		return nil
	}

	mission := &entities.Mission{
		ID:              m.ID,
		LoadID:          m.LoadID,
		BOLID:           m.BOLID,
		DriverID:        m.DriverID,
		EquipmentID:     m.EquipmentID,
		Ownership:       entities.Ownership(m.Ownership),
		Status:          entities.MissionStatus(m.Status),
		Tier:            m.Tier,
		NextStop:        m.NextStop,
		StopCount:       m.StopCount,
		Integrity:       m.Integrity,
		SealState:       entities.SealState(m.SealState),
		CargoSecured:    m.CargoSecured,
		TempMonitoring:  m.TempMonitoring,
		AcceptedAt:      m.AcceptedAt,
		DepartedAt:      m.DepartedAt,
		WindowExpiresAt: m.WindowExpiresAt,
		DepositAmount:   m.DepositAmount,
		DisconnectedAt:  m.DisconnectedAt,
		UpdatedAt:       m.UpdatedAt,
	}

	if l != nil {
		mission.CargoClass = entities.CargoClass(l.CargoClass)
		mission.Distance = l.Distance
		mission.Weight = l.Weight
		mission.ShipperTier = l.ShipperTier
		mission.SurgeMultiplier = l.SurgeMultiplier
		mission.Destination = entities.Coord{X: l.DestinationX, Y: l.DestinationY}
		mission.Stops = make([]entities.Coord, len(l.Stops))
		for i, stop := range l.Stops {
			mission.Stops[i] = entities.Coord{X: stop.X, Y: stop.Y}
		}
	}

	return mission
}

func FromDomainPatch(patch entities.MissionPatch) MissionPatchDB {
	patchDB := MissionPatchDB{
		NextStop:        patch.NextStop,
		Integrity:       patch.Integrity,
		CargoSecured:    patch.CargoSecured,
		DepartedAt:      patch.DepartedAt,
		WindowExpiresAt: patch.WindowExpiresAt,
	}

	if patch.Status != nil {
		status := patch.Status.String()
		patchDB.Status = &status
	}
	if patch.SealState != nil {
		seal := patch.SealState.String()
		patchDB.SealState = &seal
	}

	return patchDB
}
