package load

import (
	"freight/internal/entities"
)

func ToDomain(l *LoadDB) *entities.Load {
	if l == nil {
		return nil
	}

	stops := make([]entities.Coord, len(l.Stops))
	for i, stop := range l.Stops {
		stops[i] = entities.Coord{X: stop.X, Y: stop.Y}
	}

	return &entities.Load{
		ID:          l.ID,
		Status:      entities.LoadStatus(l.Status),
		Tier:        l.Tier,
		CargoClass:  entities.CargoClass(l.CargoClass),
		Origin:      entities.Coord{X: l.OriginX, Y: l.OriginY},
		Destination: entities.Coord{X: l.DestinationX, Y: l.DestinationY},
		Stops:       stops,
		Distance:    l.Distance,
		Weight:      l.Weight,
		Requirements: entities.Requirements{
			License:        l.Requirements.License,
			Endorsements:   l.Requirements.Endorsements,
			Certifications: l.Requirements.Certifications,
			TrailerType:    l.Requirements.TrailerType,
		},
		DepositAmount:        l.DepositAmount,
		ShipperTier:          l.ShipperTier,
		SurgeMultiplier:      l.SurgeMultiplier,
		ReservedBy:           l.ReservedBy,
		ReservationExpiresAt: l.ReservationExpiresAt,
		PostingExpiresAt:     l.PostingExpiresAt,
		CreatedAt:            l.CreatedAt,
		UpdatedAt:            l.UpdatedAt,
	}
}
