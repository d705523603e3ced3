package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func validVehicleInput() Vehicle {
	return Vehicle{
		ClientID:      "cli-1",
		Brand:         "Toyota",
		Model:         "Camry",
		Year:          2022,
		VIN:           "JT2BF22K123456789",
		RegNumber:     "A123BC 77",
		EnginePowerHP: 181,
	}
}

func TestVehicleValidate(t *testing.T) {
	require.NoError(t, validVehicleInput().Validate())

	cases := []struct {
		name   string
		mutate func(*Vehicle)
	}{
		{"missing client", func(v *Vehicle) { v.ClientID = "" }},
		{"missing brand", func(v *Vehicle) { v.Brand = " " }},
		{"missing model", func(v *Vehicle) { v.Model = "" }},
		{"zero year", func(v *Vehicle) { v.Year = 0 }},
		{"short VIN", func(v *Vehicle) { v.VIN = "JT2BF22K12345678" }},
		{"long VIN", func(v *Vehicle) { v.VIN = "JT2BF22K1234567890" }},
		{"short registration", func(v *Vehicle) { v.RegNumber = "A123" }},
		{"zero power", func(v *Vehicle) { v.EnginePowerHP = 0 }},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v := validVehicleInput()
			c.mutate(&v)
			require.ErrorIs(t, v.Validate(), ErrValidation)
		})
	}
}

func TestVehicleServiceCreateRequiresOwner(t *testing.T) {
	svc := NewVehicleService(newFakeVehicleRepo(), newFakeClientRepo(), newFakePolicyRepo())

	_, err := svc.Create(context.Background(), validVehicleInput())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestVehicleServiceCreate(t *testing.T) {
	owner := validClient()
	owner.ID = "cli-1"
	svc := NewVehicleService(newFakeVehicleRepo(), newFakeClientRepo(owner), newFakePolicyRepo())

	created, err := svc.Create(context.Background(), validVehicleInput())
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "cli-1", created.ClientID)
}

func TestVehicleServiceDeleteRefusedWithPolicies(t *testing.T) {
	vehicles := newFakeVehicleRepo(Vehicle{ID: "veh-1", ClientID: "cli-1"})
	policies := newFakePolicyRepo()
	policies.byID["p-1"] = Policy{ID: "p-1", VehicleID: "veh-1"}

	svc := NewVehicleService(vehicles, newFakeClientRepo(), policies)

	err := svc.Delete(context.Background(), "veh-1")
	require.ErrorIs(t, err, ErrVehicleHasPolicies)

	_, err = svc.Get(context.Background(), "veh-1")
	require.NoError(t, err)
}

func TestVehicleServiceDeleteWithoutPolicies(t *testing.T) {
	vehicles := newFakeVehicleRepo(Vehicle{ID: "veh-1", ClientID: "cli-1"})
	svc := NewVehicleService(vehicles, newFakeClientRepo(), newFakePolicyRepo())

	require.NoError(t, svc.Delete(context.Background(), "veh-1"))

	_, err := svc.Get(context.Background(), "veh-1")
	require.ErrorIs(t, err, ErrVehicleNotFound)
}

func TestVehicleServiceListByClient(t *testing.T) {
	vehicles := newFakeVehicleRepo(
		Vehicle{ID: "veh-1", ClientID: "cli-1"},
		Vehicle{ID: "veh-2", ClientID: "cli-2"},
		Vehicle{ID: "veh-3", ClientID: "cli-1"},
	)
	svc := NewVehicleService(vehicles, newFakeClientRepo(), newFakePolicyRepo())

	fleet, err := svc.ListByClient(context.Background(), "cli-1")
	require.NoError(t, err)
	require.Len(t, fleet, 2)
}
