package core

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// StoredStatus is the persisted status of a policy. Lapsing is never written
// back: a policy whose coverage ran out stays active in storage and only the
// effective-status view reports it as expired.
type StoredStatus string

const (
	StoredStatusActive    StoredStatus = "active"
	StoredStatusCancelled StoredStatus = "cancelled"
)

// EffectiveStatus is the point-in-time status derived from stored status and
// the current date. It is recomputed on every read and never persisted.
type EffectiveStatus string

const (
	StatusActive       EffectiveStatus = "active"
	StatusExpiringSoon EffectiveStatus = "expiring_soon"
	StatusExpired      EffectiveStatus = "expired"
	StatusCancelled    EffectiveStatus = "cancelled"
)

// Policy represents an issued CTP policy.
type Policy struct {
	ID        string          `json:"id"`
	Number    PolicyNumber    `json:"number"`
	VehicleID string          `json:"vehicle_id"`
	StartDate time.Time       `json:"start_date"`
	EndDate   time.Time       `json:"end_date"` // StartDate + 30×coverage months days
	Cost      decimal.Decimal `json:"cost"`
	Status    StoredStatus    `json:"status"`
	Notes     string          `json:"notes,omitempty"` // cancellation reason
	CreatedAt time.Time       `json:"created_at"`
}

type PolicyFilter struct {
	VehicleID string
	// Status filters by effective status, resolved against the current time
	// at read, so "expired" never doubles as "active".
	Status EffectiveStatus
}

type PolicyRepo interface {
	Create(ctx context.Context, policy Policy) error
	Get(ctx context.Context, id string) (Policy, error)
	GetByNumber(ctx context.Context, number PolicyNumber) (Policy, error)
	NumberExists(ctx context.Context, number PolicyNumber) (bool, error)
	Update(ctx context.Context, policy Policy) error
	List(ctx context.Context) ([]Policy, error)
	ListByVehicle(ctx context.Context, vehicleID string) ([]Policy, error)
	FindExpiring(ctx context.Context, from, to time.Time) ([]Policy, error)
}

var (
	ErrPolicyNotFound = fmt.Errorf("%w: policy not found", ErrNotFound)
	ErrPolicyExists   = fmt.Errorf("%w: policy number already issued", ErrConflict)
)
