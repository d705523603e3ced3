package core

import (
	"context"
	"fmt"
	"strings"
)

// Vehicle is a registered vehicle owned by a client.
type Vehicle struct {
	ID            string `json:"id"`
	ClientID      string `json:"client_id"`
	Brand         string `json:"brand"`
	Model         string `json:"model"`
	Year          int    `json:"year"`
	VIN           string `json:"vin"`        // 17 characters, unique
	RegNumber     string `json:"reg_number"` // unique
	EnginePowerHP int    `json:"engine_power_hp"`
}

type VehicleRepo interface {
	Create(ctx context.Context, v Vehicle) error
	Get(ctx context.Context, id string) (Vehicle, error)
	Update(ctx context.Context, v Vehicle) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Vehicle, error)
	ListByClient(ctx context.Context, clientID string) ([]Vehicle, error)
}

func (v Vehicle) Validate() error {
	if v.ClientID == "" {
		return fmt.Errorf("%w: missing client ID", ErrValidation)
	}
	if strings.TrimSpace(v.Brand) == "" || strings.TrimSpace(v.Model) == "" {
		return fmt.Errorf("%w: missing brand or model", ErrValidation)
	}
	if v.Year <= 0 {
		return fmt.Errorf("%w: invalid model year", ErrValidation)
	}
	if len(v.VIN) != 17 {
		return fmt.Errorf("%w: VIN must contain 17 characters", ErrValidation)
	}
	if len(v.RegNumber) < 6 {
		return fmt.Errorf("%w: registration number is too short", ErrValidation)
	}
	if v.EnginePowerHP <= 0 {
		return fmt.Errorf("%w: engine power must be > 0", ErrValidation)
	}
	return nil
}

var (
	ErrVehicleNotFound    = fmt.Errorf("%w: vehicle not found", ErrNotFound)
	ErrVehicleExists      = fmt.Errorf("%w: vehicle with this VIN or registration number already exists", ErrConflict)
	ErrVehicleHasPolicies = fmt.Errorf("%w: vehicle still has policies", ErrConflict)
)
