package core

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestQuotePrice(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	svc := &quoteService{clock: func() time.Time { return now }}

	quote, err := svc.Price(context.Background(), baseProfile())
	require.NoError(t, err)

	require.True(t, quote.Premium.Equal(decimal.RequireFromString("6300")), "got %s", quote.Premium)
	require.Equal(t, 12, quote.CoverageMonths)
	require.Equal(t, now, quote.QuotedAt)

	require.True(t, quote.Factors.Power.Equal(decimal.RequireFromString("1.4")))
	require.True(t, quote.Factors.VehicleAge.Equal(decimal.RequireFromString("1.0")))
	require.True(t, quote.Factors.Experience.Equal(decimal.RequireFromString("0.9")))
	require.True(t, quote.Factors.DriverAge.Equal(decimal.RequireFromString("1.0")))
	require.True(t, quote.Factors.BonusMalus.Equal(decimal.RequireFromString("1.0")))
}

func TestQuotePriceRejectsInvalidProfile(t *testing.T) {
	svc := &quoteService{clock: time.Now}

	p := baseProfile()
	p.CoverageMonths = 5
	_, err := svc.Price(context.Background(), p)
	require.ErrorIs(t, err, ErrInvalidProfile)
}
