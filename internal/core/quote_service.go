package core

import (
	"context"
	"time"
)

type quoteService struct {
	clock func() time.Time
}

func NewQuoteService() QuoteService {
	return &quoteService{clock: time.Now}
}

func (s *quoteService) Price(_ context.Context, profile RatingProfile) (Quote, error) {
	now := s.clock()

	premium, err := ComputePremium(profile, now)
	if err != nil {
		return Quote{}, err
	}

	return Quote{
		Premium:        premium,
		CoverageMonths: profile.CoverageMonths,
		Factors: QuoteFactors{
			Power:      PowerRate(profile.EnginePowerHP),
			VehicleAge: VehicleAgeRate(now.Year() - profile.VehicleYear),
			Experience: ExperienceRate(profile.DriverExperienceYears),
			DriverAge:  DriverAgeRate(profile.DriverAge),
			BonusMalus: profile.BonusMalus,
		},
		QuotedAt: now,
	}, nil
}
