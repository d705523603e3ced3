package core

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var statsNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func TestCoveragePeriod(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		days int
		want PeriodBucket
	}{
		{90, Period3Months},
		{100, Period3Months},
		{101, Period6Months},
		{180, Period6Months},
		{190, Period6Months},
		{191, Period12Months},
		{360, Period12Months},
	}
	for _, c := range cases {
		got := CoveragePeriod(start, start.AddDate(0, 0, c.days))
		require.Equal(t, c.want, got, "days=%d", c.days)
	}
}

func statsPolicy(status StoredStatus, endOffsetDays, coverageDays int, cost string, createdAt time.Time) Policy {
	end := statsNow.AddDate(0, 0, endOffsetDays)
	return Policy{
		Status:    status,
		StartDate: end.AddDate(0, 0, -coverageDays),
		EndDate:   end,
		Cost:      decimal.RequireFromString(cost),
		CreatedAt: createdAt,
	}
}

func TestAggregatePartitionsByEffectiveStatus(t *testing.T) {
	jan := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	may := time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)

	policies := []Policy{
		statsPolicy(StoredStatusActive, 200, 360, "6300", jan),  // active
		statsPolicy(StoredStatusActive, 10, 180, "3150", may),   // expiring soon
		statsPolicy(StoredStatusActive, -5, 90, "1575", jan),    // expired
		statsPolicy(StoredStatusCancelled, 100, 360, "5000", may), // cancelled
	}

	stats := Aggregate(policies, statsNow)

	require.Equal(t, 4, stats.Total)
	require.Equal(t, 2, stats.Active, "expiring soon still counts as in force")
	require.Equal(t, 1, stats.ExpiringSoon)
	require.Equal(t, 1, stats.Expired)
	require.Equal(t, 1, stats.Cancelled)

	require.True(t, stats.TotalSum.Equal(decimal.RequireFromString("16025")), "got %s", stats.TotalSum)
	require.True(t, stats.ActiveSum.Equal(decimal.RequireFromString("9450")), "got %s", stats.ActiveSum)

	require.Equal(t, 1, stats.ByPeriod[Period3Months])
	require.Equal(t, 1, stats.ByPeriod[Period6Months])
	require.Equal(t, 2, stats.ByPeriod[Period12Months])

	require.True(t, stats.PeriodShare[Period3Months].Equal(decimal.RequireFromString("25")))
	require.True(t, stats.PeriodShare[Period12Months].Equal(decimal.RequireFromString("50")))

	require.Equal(t, 2, stats.ByMonth["2025-01"])
	require.Equal(t, 2, stats.ByMonth["2025-05"])
}

func TestAggregateEmptyPortfolio(t *testing.T) {
	stats := Aggregate(nil, statsNow)

	require.Equal(t, 0, stats.Total)
	require.True(t, stats.TotalSum.IsZero())
	require.True(t, stats.ActiveSum.IsZero())
	require.Empty(t, stats.PeriodShare, "no shares without policies, never a division by zero")
}

func TestAggregateIsIdempotent(t *testing.T) {
	policies := []Policy{
		statsPolicy(StoredStatusActive, 200, 360, "6300", statsNow),
		statsPolicy(StoredStatusActive, 10, 90, "1575", statsNow),
	}

	first := Aggregate(policies, statsNow)
	second := Aggregate(policies, statsNow)
	require.Equal(t, first, second)

	// Input order must not matter.
	reversed := []Policy{policies[1], policies[0]}
	require.Equal(t, first, Aggregate(reversed, statsNow))
}

func TestAggregateNeverMutatesInput(t *testing.T) {
	policies := []Policy{
		statsPolicy(StoredStatusActive, -5, 90, "1575", statsNow),
	}
	before := policies[0]

	_ = Aggregate(policies, statsNow)
	require.Equal(t, before, policies[0])
}

func TestAggregateShareRounding(t *testing.T) {
	policies := []Policy{
		statsPolicy(StoredStatusActive, 200, 90, "1000", statsNow),
		statsPolicy(StoredStatusActive, 200, 180, "1000", statsNow),
		statsPolicy(StoredStatusActive, 200, 360, "1000", statsNow),
	}

	stats := Aggregate(policies, statsNow)
	require.True(t, stats.PeriodShare[Period3Months].Equal(decimal.RequireFromString("33.33")),
		"got %s", stats.PeriodShare[Period3Months])
}
