package core

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Coverage periods sold, in months.
const (
	CoverageMonthsQuarter = 3
	CoverageMonthsHalf    = 6
	CoverageMonthsYear    = 12
)

// RatingProfile is the input to a premium calculation. It is assembled by the
// caller (form/handler) from vehicle and driver data and discarded after the
// calculation.
type RatingProfile struct {
	EnginePowerHP         int             `json:"engine_power_hp"`
	VehicleYear           int             `json:"vehicle_year"`
	CoverageMonths        int             `json:"coverage_months"`
	DriverAge             int             `json:"driver_age"`
	DriverExperienceYears int             `json:"driver_experience_years"`
	BonusMalus            decimal.Decimal `json:"bonus_malus"`
}

func (p RatingProfile) Validate() error {
	if p.EnginePowerHP <= 0 {
		return fmt.Errorf("%w: engine power must be > 0", ErrInvalidProfile)
	}
	switch p.CoverageMonths {
	case CoverageMonthsQuarter, CoverageMonthsHalf, CoverageMonthsYear:
	default:
		return fmt.Errorf("%w: coverage period must be 3, 6 or 12 months", ErrInvalidProfile)
	}
	if p.DriverAge < 18 || p.DriverAge > 99 {
		return fmt.Errorf("%w: driver age must be between 18 and 99", ErrInvalidProfile)
	}
	if p.DriverExperienceYears < 0 || p.DriverExperienceYears > 60 {
		return fmt.Errorf("%w: driving experience must be between 0 and 60 years", ErrInvalidProfile)
	}
	if p.DriverExperienceYears > p.DriverAge-18 {
		return fmt.Errorf("%w: driving experience cannot exceed driver age minus 18", ErrInvalidProfile)
	}
	if !ValidBonusMalus(p.BonusMalus) {
		return fmt.Errorf("%w: unknown bonus-malus factor %s", ErrInvalidProfile, p.BonusMalus)
	}
	return nil
}

// ComputePremium prices a policy for the given profile:
//
//	5000 × power × vehicleAge × experience × driverAge × bonusMalus × months/12
//
// The result is rounded to 2 decimal places once, at the end, using round
// half away from zero. The vehicle age is derived from now's calendar year;
// now is injected so the calculation stays deterministic under test.
func ComputePremium(p RatingProfile, now time.Time) (decimal.Decimal, error) {
	if err := p.Validate(); err != nil {
		return decimal.Decimal{}, err
	}

	vehicleAge := now.Year() - p.VehicleYear

	premium := BaseRate.
		Mul(PowerRate(p.EnginePowerHP)).
		Mul(VehicleAgeRate(vehicleAge)).
		Mul(ExperienceRate(p.DriverExperienceYears)).
		Mul(DriverAgeRate(p.DriverAge)).
		Mul(p.BonusMalus).
		Mul(decimal.NewFromInt(int64(p.CoverageMonths)).Div(decimal.NewFromInt(12)))

	return premium.Round(2), nil
}
