package core

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestPowerRateBrackets(t *testing.T) {
	cases := []struct {
		hp   int
		want string
	}{
		{1, "0.6"},
		{50, "0.6"},
		{51, "1.0"},
		{100, "1.0"},
		{101, "1.4"},
		{150, "1.4"},
		{151, "1.8"},
		{200, "1.8"},
		{201, "2.2"},
		{500, "2.2"},
	}
	for _, c := range cases {
		require.True(t, PowerRate(c.hp).Equal(decimal.RequireFromString(c.want)),
			"hp=%d: got %s, want %s", c.hp, PowerRate(c.hp), c.want)
	}
}

func TestVehicleAgeRateBrackets(t *testing.T) {
	cases := []struct {
		years int
		want  string
	}{
		{0, "1.0"},
		{3, "1.0"},
		{4, "1.1"},
		{7, "1.1"},
		{8, "1.3"},
		{10, "1.3"},
		{11, "1.5"},
		{30, "1.5"},
	}
	for _, c := range cases {
		require.True(t, VehicleAgeRate(c.years).Equal(decimal.RequireFromString(c.want)),
			"years=%d: got %s, want %s", c.years, VehicleAgeRate(c.years), c.want)
	}
}

func TestExperienceRateBrackets(t *testing.T) {
	cases := []struct {
		years int
		want  string
	}{
		{0, "1.3"},
		{3, "1.3"},
		{4, "1.1"},
		{5, "1.1"},
		{6, "0.9"},
		{10, "0.9"},
		{11, "0.8"},
		{40, "0.8"},
	}
	for _, c := range cases {
		require.True(t, ExperienceRate(c.years).Equal(decimal.RequireFromString(c.want)),
			"years=%d: got %s, want %s", c.years, ExperienceRate(c.years), c.want)
	}
}

func TestDriverAgeRateBrackets(t *testing.T) {
	cases := []struct {
		age  int
		want string
	}{
		{18, "1.7"},
		{21, "1.7"},
		{22, "1.3"},
		{24, "1.3"},
		{25, "1.0"},
		{59, "1.0"},
		{60, "1.2"},
		{85, "1.2"},
	}
	for _, c := range cases {
		require.True(t, DriverAgeRate(c.age).Equal(decimal.RequireFromString(c.want)),
			"age=%d: got %s, want %s", c.age, DriverAgeRate(c.age), c.want)
	}
}

func TestValidBonusMalus(t *testing.T) {
	for _, class := range BonusMalusClasses {
		require.True(t, ValidBonusMalus(class.Factor), "factor %s should be accepted", class.Factor)
	}

	for _, s := range []string{"0.55", "1.05", "2.0", "0", "-0.5"} {
		require.False(t, ValidBonusMalus(decimal.RequireFromString(s)), "factor %s should be rejected", s)
	}
}

func TestValidBonusMalusEqualByValue(t *testing.T) {
	// 0.50 and 0.5 differ in representation but not in value.
	require.True(t, ValidBonusMalus(decimal.RequireFromString("0.50")))
	require.True(t, ValidBonusMalus(decimal.RequireFromString("1.00")))
}
