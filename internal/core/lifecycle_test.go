package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var statusNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func TestResolveStatus(t *testing.T) {
	cases := []struct {
		name    string
		stored  StoredStatus
		endDate time.Time
		want    EffectiveStatus
	}{
		{"well before end date", StoredStatusActive, statusNow.AddDate(0, 0, 60), StatusActive},
		{"exactly at window edge", StoredStatusActive, statusNow.Add(ExpiringSoonWindow), StatusActive},
		{"inside window", StoredStatusActive, statusNow.AddDate(0, 0, 10), StatusExpiringSoon},
		{"just inside window", StoredStatusActive, statusNow.Add(ExpiringSoonWindow - time.Second), StatusExpiringSoon},
		{"end date passed", StoredStatusActive, statusNow.AddDate(0, 0, -1), StatusExpired},
		{"exactly at end date", StoredStatusActive, statusNow, StatusExpiringSoon},
		{"cancelled overrides future end", StoredStatusCancelled, statusNow.AddDate(0, 0, 60), StatusCancelled},
		{"cancelled overrides past end", StoredStatusCancelled, statusNow.AddDate(0, 0, -60), StatusCancelled},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.want, ResolveStatus(c.stored, c.endDate, statusNow))
		})
	}
}

func TestEffectiveStatusNeverMutates(t *testing.T) {
	p := Policy{
		Status:  StoredStatusActive,
		EndDate: statusNow.AddDate(0, 0, -10),
	}

	require.Equal(t, StatusExpired, p.EffectiveStatus(statusNow))
	require.Equal(t, StoredStatusActive, p.Status, "expiry is a view, not a write")
}

func TestCancel(t *testing.T) {
	p := Policy{Status: StoredStatusActive, EndDate: statusNow.AddDate(0, 0, 60)}

	require.NoError(t, p.Cancel("vehicle sold"))
	require.Equal(t, StoredStatusCancelled, p.Status)
	require.Equal(t, "vehicle sold", p.Notes)
}

func TestCancelRequiresReason(t *testing.T) {
	p := Policy{Status: StoredStatusActive}

	for _, reason := range []string{"", "   ", "\t\n"} {
		err := p.Cancel(reason)
		require.ErrorIs(t, err, ErrMissingReason)
		require.ErrorIs(t, err, ErrValidation)
		require.Equal(t, StoredStatusActive, p.Status, "policy must be untouched on failure")
		require.Empty(t, p.Notes)
	}
}

func TestCancelIsAbsorbing(t *testing.T) {
	p := Policy{Status: StoredStatusActive}
	require.NoError(t, p.Cancel("first reason"))

	err := p.Cancel("second reason")
	require.ErrorIs(t, err, ErrAlreadyCancelled)
	require.ErrorIs(t, err, ErrInvalidState)
	require.Equal(t, "first reason", p.Notes, "original reason must survive a repeat cancel")
}

func TestCancelExpiredPolicyStillAllowed(t *testing.T) {
	// Storage only knows active/cancelled; expiry is derived. Cancelling a
	// policy whose coverage already ran out is a legal bookkeeping action.
	p := Policy{Status: StoredStatusActive, EndDate: statusNow.AddDate(0, 0, -5)}

	require.NoError(t, p.Cancel("late paperwork"))
	require.Equal(t, StatusCancelled, p.EffectiveStatus(statusNow))
}
