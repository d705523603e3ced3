package core

import (
	"context"
	"time"
)

// StatsService aggregates the stored portfolio as of the current time.
type StatsService interface {
	Portfolio(ctx context.Context) (PortfolioStats, error)
}

type statsService struct {
	policies PolicyRepo
	clock    func() time.Time
}

func NewStatsService(policies PolicyRepo) StatsService {
	return &statsService{policies: policies, clock: time.Now}
}

func (s *statsService) Portfolio(ctx context.Context) (PortfolioStats, error) {
	policies, err := s.policies.List(ctx)
	if err != nil {
		return PortfolioStats{}, err
	}
	return Aggregate(policies, s.clock()), nil
}
