package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeClientRepo struct {
	byID map[string]Client
}

func newFakeClientRepo(clients ...Client) *fakeClientRepo {
	r := &fakeClientRepo{byID: make(map[string]Client)}
	for _, c := range clients {
		r.byID[c.ID] = c
	}
	return r
}

func (r *fakeClientRepo) Create(_ context.Context, c Client) error {
	for _, existing := range r.byID {
		if existing.Passport == c.Passport {
			return ErrClientExists
		}
	}
	r.byID[c.ID] = c
	return nil
}

func (r *fakeClientRepo) Get(_ context.Context, id string) (Client, error) {
	c, ok := r.byID[id]
	if !ok {
		return Client{}, ErrClientNotFound
	}
	return c, nil
}

func (r *fakeClientRepo) Update(_ context.Context, c Client) error {
	if _, ok := r.byID[c.ID]; !ok {
		return ErrClientNotFound
	}
	r.byID[c.ID] = c
	return nil
}

func (r *fakeClientRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrClientNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeClientRepo) List(_ context.Context) ([]Client, error) {
	out := make([]Client, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, c)
	}
	return out, nil
}

func validClient() Client {
	return Client{
		FullName: "Ivanov Ivan Ivanovich",
		Passport: "4512 356789",
		Phone:    "+79001234567",
		Email:    "ivanov@mail.ru",
	}
}

func TestClientValidate(t *testing.T) {
	require.NoError(t, validClient().Validate())

	cases := []struct {
		name   string
		mutate func(*Client)
	}{
		{"missing name", func(c *Client) { c.FullName = "  " }},
		{"short passport", func(c *Client) { c.Passport = "123456789" }},
		{"long passport", func(c *Client) { c.Passport = "12345678901" }},
		{"letters in passport", func(c *Client) { c.Passport = "45123567AB" }},
		{"phone without plus", func(c *Client) { c.Phone = "79001234567" }},
		{"phone with letters", func(c *Client) { c.Phone = "+7900abc4567" }},
		{"email without at", func(c *Client) { c.Email = "ivanov.mail.ru" }},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			client := validClient()
			c.mutate(&client)
			require.ErrorIs(t, client.Validate(), ErrValidation)
		})
	}
}

func TestClientValidateOptionalContacts(t *testing.T) {
	c := validClient()
	c.Phone = ""
	c.Email = ""
	require.NoError(t, c.Validate())
}

func TestClientValidatePassportSpaces(t *testing.T) {
	// Passports are commonly written "NNNN NNNNNN"; spaces are not digits.
	c := validClient()
	c.Passport = "4512356789"
	require.NoError(t, c.Validate())
}

func TestClientServiceCreateAssignsID(t *testing.T) {
	svc := NewClientService(newFakeClientRepo(), newFakeVehicleRepo())

	created, err := svc.Create(context.Background(), validClient())
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
}

func TestClientServiceCreateDuplicatePassport(t *testing.T) {
	repo := newFakeClientRepo()
	svc := NewClientService(repo, newFakeVehicleRepo())

	_, err := svc.Create(context.Background(), validClient())
	require.NoError(t, err)

	dup := validClient()
	dup.FullName = "Someone Else Entirely"
	_, err = svc.Create(context.Background(), dup)
	require.ErrorIs(t, err, ErrClientExists)
}

func TestClientServiceDeleteRefusedWithVehicles(t *testing.T) {
	client := validClient()
	client.ID = "cli-1"
	repo := newFakeClientRepo(client)
	vehicles := newFakeVehicleRepo(Vehicle{ID: "veh-1", ClientID: "cli-1"})

	svc := NewClientService(repo, vehicles)

	err := svc.Delete(context.Background(), "cli-1")
	require.ErrorIs(t, err, ErrClientHasVehicles)

	// Still on file.
	_, err = svc.Get(context.Background(), "cli-1")
	require.NoError(t, err)
}

func TestClientServiceDeleteWithoutVehicles(t *testing.T) {
	client := validClient()
	client.ID = "cli-1"
	svc := NewClientService(newFakeClientRepo(client), newFakeVehicleRepo())

	require.NoError(t, svc.Delete(context.Background(), "cli-1"))

	_, err := svc.Get(context.Background(), "cli-1")
	require.ErrorIs(t, err, ErrClientNotFound)
}
