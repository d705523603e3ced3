package core

import "github.com/shopspring/decimal"

// BaseRate is the base CTP tariff before risk factors are applied.
var BaseRate = decimal.NewFromInt(5000)

// rateBracket maps factor values up to and including Max to a rate.
// Max < 0 marks the open-ended final bracket.
type rateBracket struct {
	Max  int
	Rate decimal.Decimal
}

// Brackets are ordered ascending and checked in order; the first satisfied
// bracket wins. The final bracket catches every remaining value, so a lookup
// never fails — range validation happens upstream in RatingProfile.Validate.
var (
	powerBrackets = []rateBracket{
		{Max: 50, Rate: dec("0.6")},
		{Max: 100, Rate: dec("1.0")},
		{Max: 150, Rate: dec("1.4")},
		{Max: 200, Rate: dec("1.8")},
		{Max: -1, Rate: dec("2.2")},
	}

	vehicleAgeBrackets = []rateBracket{
		{Max: 3, Rate: dec("1.0")},
		{Max: 7, Rate: dec("1.1")},
		{Max: 10, Rate: dec("1.3")},
		{Max: -1, Rate: dec("1.5")},
	}

	experienceBrackets = []rateBracket{
		{Max: 3, Rate: dec("1.3")},
		{Max: 5, Rate: dec("1.1")},
		{Max: 10, Rate: dec("0.9")},
		{Max: -1, Rate: dec("0.8")},
	}

	// Bounds are <22, <25, <60 in the tariff book; ages are whole years so
	// the inclusive equivalents are 21, 24 and 59.
	driverAgeBrackets = []rateBracket{
		{Max: 21, Rate: dec("1.7")},
		{Max: 24, Rate: dec("1.3")},
		{Max: 59, Rate: dec("1.0")},
		{Max: -1, Rate: dec("1.2")},
	}
)

func lookupRate(brackets []rateBracket, v int) decimal.Decimal {
	for _, b := range brackets {
		if b.Max < 0 || v <= b.Max {
			return b.Rate
		}
	}
	return brackets[len(brackets)-1].Rate
}

// PowerRate returns the engine power factor for the given horsepower.
func PowerRate(hp int) decimal.Decimal { return lookupRate(powerBrackets, hp) }

// VehicleAgeRate returns the vehicle age factor for the given age in years.
func VehicleAgeRate(years int) decimal.Decimal { return lookupRate(vehicleAgeBrackets, years) }

// ExperienceRate returns the driving experience factor for the given years.
func ExperienceRate(years int) decimal.Decimal { return lookupRate(experienceBrackets, years) }

// DriverAgeRate returns the driver age factor for the given age in years.
func DriverAgeRate(age int) decimal.Decimal { return lookupRate(driverAgeBrackets, age) }

// BonusMalusClass is one entry of the fixed no-claims discount/surcharge scale.
type BonusMalusClass struct {
	Factor decimal.Decimal `json:"factor"`
	Label  string          `json:"label"`
}

// BonusMalusClasses is the closed set of accepted bonus-malus factors.
var BonusMalusClasses = []BonusMalusClass{
	{Factor: dec("0.5"), Label: "Class M (50% discount)"},
	{Factor: dec("0.65"), Label: "Class 13-14 (35% discount)"},
	{Factor: dec("0.8"), Label: "Class 10-12 (20% discount)"},
	{Factor: dec("0.9"), Label: "Class 7-9 (10% discount)"},
	{Factor: dec("1.0"), Label: "Class 3-6 (no adjustment)"},
	{Factor: dec("1.4"), Label: "Class 1-2 (40% surcharge)"},
	{Factor: dec("1.6"), Label: "Class 0 to -2 (60% surcharge)"},
	{Factor: dec("2.45"), Label: "Class M (145% surcharge)"},
}

// ValidBonusMalus reports whether f is a member of the bonus-malus scale.
func ValidBonusMalus(f decimal.Decimal) bool {
	for _, c := range BonusMalusClasses {
		if c.Factor.Equal(f) {
			return true
		}
	}
	return false
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
