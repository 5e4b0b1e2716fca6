package reputation

import (
	"context"
	"fmt"

	"freight/internal/entities"
)

var (
	penaltyByTier = map[int]int64{0: 10, 1: 25, 2: 50, 3: 100}
	rewardByTier  = map[int]int64{0: 5, 1: 10, 2: 20, 3: 40}
)

type Service struct {
	repository Repository
}

func New(repository Repository) *Service {
	return &Service{
		repository: repository,
	}
}

func (s *Service) Tier(ctx context.Context, driverID string) (entities.ReputationTier, error) {
	stats, err := s.repository.GetStats(ctx, driverID)
	if err != nil {
		return entities.ReputationTier{}, fmt.Errorf("get driver stats: %w", err)
	}
	return entities.ReputationTierFor(stats.ReputationPoints), nil
}

// Penalize штраф за брошенный или просроченный груз, очки не уходят ниже нуля.
func (s *Service) Penalize(ctx context.Context, driverID string, loadTier int) error {
	_, err := s.repository.AddReputation(ctx, driverID, -PenaltyFor(loadTier))
	if err != nil {
		return fmt.Errorf("apply reputation penalty: %w", err)
	}
	return nil
}

func (s *Service) Reward(ctx context.Context, driverID string, loadTier int) error {
	_, err := s.repository.AddReputation(ctx, driverID, RewardFor(loadTier))
	if err != nil {
		return fmt.Errorf("apply reputation reward: %w", err)
	}
	return nil
}

func PenaltyFor(loadTier int) int64 {
	return lookup(penaltyByTier, loadTier)
}

func RewardFor(loadTier int) int64 {
	return lookup(rewardByTier, loadTier)
}

func lookup(table map[int]int64, tier int) int64 {
	if tier < entities.MinTier {
		tier = entities.MinTier
	}
	if tier > entities.MaxTier {
		tier = entities.MaxTier
	}
	return table[tier]
}
