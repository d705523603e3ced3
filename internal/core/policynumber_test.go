package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func neverTaken(_ context.Context, _ PolicyNumber) (bool, error) {
	return false, nil
}

func TestGenerateNumberFormat(t *testing.T) {
	issueDate := time.Date(2025, 3, 7, 10, 30, 0, 0, time.UTC)

	number, err := GenerateNumber(context.Background(), issueDate, func(int) int { return 42 }, neverTaken)
	require.NoError(t, err)
	require.Equal(t, PolicyNumber("OSG-20250307-0042"), number)
}

func TestGenerateNumberPadsSuffix(t *testing.T) {
	issueDate := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)

	number, err := GenerateNumber(context.Background(), issueDate, func(int) int { return 7 }, neverTaken)
	require.NoError(t, err)
	require.Equal(t, PolicyNumber("OSG-20251231-0007"), number)
}

func TestGenerateNumberResamplesOnCollision(t *testing.T) {
	issueDate := time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC)

	suffixes := []int{1, 2, 3}
	draws := 0
	intn := func(int) int {
		s := suffixes[draws]
		draws++
		return s
	}

	taken := map[PolicyNumber]bool{
		"OSG-20250307-0001": true,
		"OSG-20250307-0002": true,
	}
	checks := 0
	exists := func(_ context.Context, n PolicyNumber) (bool, error) {
		checks++
		return taken[n], nil
	}

	number, err := GenerateNumber(context.Background(), issueDate, intn, exists)
	require.NoError(t, err)
	require.Equal(t, PolicyNumber("OSG-20250307-0003"), number)
	require.Equal(t, 3, draws)
	require.Equal(t, 3, checks)
}

func TestGenerateNumberExhaustsAfterRetryCap(t *testing.T) {
	issueDate := time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC)

	checks := 0
	alwaysTaken := func(_ context.Context, _ PolicyNumber) (bool, error) {
		checks++
		return true, nil
	}

	_, err := GenerateNumber(context.Background(), issueDate, func(int) int { return 1 }, alwaysTaken)
	require.ErrorIs(t, err, ErrNumbersExhausted)
	require.ErrorIs(t, err, ErrConflict)
	require.Equal(t, 50, checks)
}

func TestGenerateNumberPropagatesLookupError(t *testing.T) {
	issueDate := time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC)

	boom := errors.New("store unavailable")
	exists := func(_ context.Context, _ PolicyNumber) (bool, error) {
		return false, boom
	}

	_, err := GenerateNumber(context.Background(), issueDate, func(int) int { return 1 }, exists)
	require.ErrorIs(t, err, boom)
}
