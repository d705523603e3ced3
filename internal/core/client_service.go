package core

import (
	"context"
	"fmt"

	"github.com/Vare321/-AIS-of-the-CTP-Insurance-Company/internal/platform/ids"
)

type ClientService interface {
	Create(ctx context.Context, c Client) (Client, error)
	Get(ctx context.Context, id string) (Client, error)
	Update(ctx context.Context, c Client) (Client, error)

	// Delete removes a client, refusing while dependent vehicles exist.
	Delete(ctx context.Context, id string) error

	List(ctx context.Context) ([]Client, error)
}

type clientService struct {
	clients  ClientRepo
	vehicles VehicleRepo
}

func NewClientService(clients ClientRepo, vehicles VehicleRepo) ClientService {
	return &clientService{clients: clients, vehicles: vehicles}
}

func (s *clientService) Create(ctx context.Context, c Client) (Client, error) {
	if err := c.Validate(); err != nil {
		return Client{}, err
	}
	c.ID = ids.New()
	if err := s.clients.Create(ctx, c); err != nil {
		return Client{}, err
	}
	return c, nil
}

func (s *clientService) Get(ctx context.Context, id string) (Client, error) {
	if id == "" {
		return Client{}, fmt.Errorf("%w: missing client ID", ErrValidation)
	}
	return s.clients.Get(ctx, id)
}

func (s *clientService) Update(ctx context.Context, c Client) (Client, error) {
	if c.ID == "" {
		return Client{}, fmt.Errorf("%w: missing client ID", ErrValidation)
	}
	if err := c.Validate(); err != nil {
		return Client{}, err
	}
	if err := s.clients.Update(ctx, c); err != nil {
		return Client{}, err
	}
	return c, nil
}

func (s *clientService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: missing client ID", ErrValidation)
	}

	vehicles, err := s.vehicles.ListByClient(ctx, id)
	if err != nil {
		return err
	}
	if len(vehicles) > 0 {
		return ErrClientHasVehicles
	}

	return s.clients.Delete(ctx, id)
}

func (s *clientService) List(ctx context.Context) ([]Client, error) {
	return s.clients.List(ctx)
}
