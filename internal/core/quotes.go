package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Quote is a priced rating profile with its factor breakdown. Quotes are
// ephemeral: they are computed, shown to the caller and discarded.
type Quote struct {
	Premium        decimal.Decimal `json:"premium"`
	CoverageMonths int             `json:"coverage_months"`
	Factors        QuoteFactors    `json:"factors"`
	QuotedAt       time.Time       `json:"quoted_at"`
}

// QuoteFactors lists every multiplier that went into the premium.
type QuoteFactors struct {
	Power      decimal.Decimal `json:"power"`
	VehicleAge decimal.Decimal `json:"vehicle_age"`
	Experience decimal.Decimal `json:"experience"`
	DriverAge  decimal.Decimal `json:"driver_age"`
	BonusMalus decimal.Decimal `json:"bonus_malus"`
}

// QuoteService prices rating profiles. Pricing is pure domain logic; nothing
// is persisted.
type QuoteService interface {
	Price(ctx context.Context, profile RatingProfile) (Quote, error)
}
