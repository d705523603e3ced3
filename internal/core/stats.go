package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodBucket groups policies by coverage span.
type PeriodBucket string

const (
	Period3Months  PeriodBucket = "3 months"
	Period6Months  PeriodBucket = "6 months"
	Period12Months PeriodBucket = "12 months"
)

// CoveragePeriod buckets a coverage span by day count. The 100/190 day
// thresholds absorb the 28–31 day month variance of the start+30×N
// construction; they are a fixed lookup, not calendar month arithmetic.
func CoveragePeriod(start, end time.Time) PeriodBucket {
	days := int(end.Sub(start).Hours() / 24)
	switch {
	case days <= 100:
		return Period3Months
	case days <= 190:
		return Period6Months
	default:
		return Period12Months
	}
}

// PortfolioStats is a point-in-time aggregation over a policy portfolio.
// Active counts policies currently in force, including those expiring soon.
type PortfolioStats struct {
	Total        int `json:"total"`
	Active       int `json:"active"`
	Cancelled    int `json:"cancelled"`
	Expired      int `json:"expired"`
	ExpiringSoon int `json:"expiring_soon"`

	ActiveSum decimal.Decimal `json:"active_sum"`
	TotalSum  decimal.Decimal `json:"total_sum"`

	ByPeriod    map[PeriodBucket]int             `json:"by_period"`
	PeriodShare map[PeriodBucket]decimal.Decimal `json:"period_share"` // percent of total
	ByMonth     map[string]int                   `json:"by_month"`     // issuance month, YYYY-MM
}

// Aggregate scans the portfolio once and partitions it by effective status as
// of now. It is a pure read-only fold: order-independent, never mutating a
// policy, and idempotent for a fixed input and now.
func Aggregate(policies []Policy, now time.Time) PortfolioStats {
	stats := PortfolioStats{
		ActiveSum:   decimal.Zero,
		TotalSum:    decimal.Zero,
		ByPeriod:    make(map[PeriodBucket]int),
		PeriodShare: make(map[PeriodBucket]decimal.Decimal),
		ByMonth:     make(map[string]int),
	}

	for _, p := range policies {
		stats.Total++
		stats.TotalSum = stats.TotalSum.Add(p.Cost)
		stats.ByPeriod[CoveragePeriod(p.StartDate, p.EndDate)]++
		stats.ByMonth[p.CreatedAt.Format("2006-01")]++

		switch p.EffectiveStatus(now) {
		case StatusCancelled:
			stats.Cancelled++
		case StatusExpired:
			stats.Expired++
		case StatusExpiringSoon:
			stats.ExpiringSoon++
			stats.Active++
			stats.ActiveSum = stats.ActiveSum.Add(p.Cost)
		case StatusActive:
			stats.Active++
			stats.ActiveSum = stats.ActiveSum.Add(p.Cost)
		}
	}

	// Shares are 0% for an empty portfolio, never a division by zero.
	if stats.Total > 0 {
		total := decimal.NewFromInt(int64(stats.Total))
		hundred := decimal.NewFromInt(100)
		for bucket, count := range stats.ByPeriod {
			stats.PeriodShare[bucket] = decimal.NewFromInt(int64(count)).Mul(hundred).Div(total).Round(2)
		}
	}

	return stats
}
