package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/Vare321/-AIS-of-the-CTP-Insurance-Company/internal/platform/ids"
)

type VehicleService interface {
	Create(ctx context.Context, v Vehicle) (Vehicle, error)
	Get(ctx context.Context, id string) (Vehicle, error)
	Update(ctx context.Context, v Vehicle) (Vehicle, error)

	// Delete removes a vehicle, refusing while policies reference it.
	Delete(ctx context.Context, id string) error

	List(ctx context.Context) ([]Vehicle, error)
	ListByClient(ctx context.Context, clientID string) ([]Vehicle, error)
}

type vehicleService struct {
	vehicles VehicleRepo
	clients  ClientRepo
	policies PolicyRepo
}

func NewVehicleService(vehicles VehicleRepo, clients ClientRepo, policies PolicyRepo) VehicleService {
	return &vehicleService{vehicles: vehicles, clients: clients, policies: policies}
}

func (s *vehicleService) Create(ctx context.Context, v Vehicle) (Vehicle, error) {
	if err := v.Validate(); err != nil {
		return Vehicle{}, err
	}

	// The owner must be on file before a vehicle can reference them.
	if _, err := s.clients.Get(ctx, v.ClientID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return Vehicle{}, fmt.Errorf("%w: owner %q", ErrNotFound, v.ClientID)
		}
		return Vehicle{}, err
	}

	v.ID = ids.New()
	if err := s.vehicles.Create(ctx, v); err != nil {
		return Vehicle{}, err
	}
	return v, nil
}

func (s *vehicleService) Get(ctx context.Context, id string) (Vehicle, error) {
	if id == "" {
		return Vehicle{}, fmt.Errorf("%w: missing vehicle ID", ErrValidation)
	}
	return s.vehicles.Get(ctx, id)
}

func (s *vehicleService) Update(ctx context.Context, v Vehicle) (Vehicle, error) {
	if v.ID == "" {
		return Vehicle{}, fmt.Errorf("%w: missing vehicle ID", ErrValidation)
	}
	if err := v.Validate(); err != nil {
		return Vehicle{}, err
	}
	if err := s.vehicles.Update(ctx, v); err != nil {
		return Vehicle{}, err
	}
	return v, nil
}

func (s *vehicleService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: missing vehicle ID", ErrValidation)
	}

	policies, err := s.policies.ListByVehicle(ctx, id)
	if err != nil {
		return err
	}
	if len(policies) > 0 {
		return ErrVehicleHasPolicies
	}

	return s.vehicles.Delete(ctx, id)
}

func (s *vehicleService) List(ctx context.Context) ([]Vehicle, error) {
	return s.vehicles.List(ctx)
}

func (s *vehicleService) ListByClient(ctx context.Context, clientID string) ([]Vehicle, error) {
	if clientID == "" {
		return nil, fmt.Errorf("%w: missing client ID", ErrValidation)
	}
	return s.vehicles.ListByClient(ctx, clientID)
}
