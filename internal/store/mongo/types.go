package mongo

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Vare321/-AIS-of-the-CTP-Insurance-Company/internal/core"
)

const (
	ColClients  = "clients"
	ColVehicles = "vehicles"
	ColPolicies = "policies"
)

// Client
type ClientDoc struct {
	ID       string `bson:"_id"`
	FullName string `bson:"full_name"`
	Passport string `bson:"passport"` // unique index
	Phone    string `bson:"phone,omitempty"`
	Email    string `bson:"email,omitempty"`
}

func fromClientDoc(d ClientDoc) core.Client {
	return core.Client{
		ID:       d.ID,
		FullName: d.FullName,
		Passport: d.Passport,
		Phone:    d.Phone,
		Email:    d.Email,
	}
}

func toClientDoc(c core.Client) ClientDoc {
	return ClientDoc{
		ID:       c.ID,
		FullName: c.FullName,
		Passport: c.Passport,
		Phone:    c.Phone,
		Email:    c.Email,
	}
}

// Vehicle
type VehicleDoc struct {
	ID            string `bson:"_id"`
	ClientID      string `bson:"client_id"`
	Brand         string `bson:"brand"`
	Model         string `bson:"model"`
	Year          int    `bson:"year"`
	VIN           string `bson:"vin"`        // unique index
	RegNumber     string `bson:"reg_number"` // unique index
	EnginePowerHP int    `bson:"engine_power_hp"`
}

func fromVehicleDoc(d VehicleDoc) core.Vehicle {
	return core.Vehicle{
		ID:            d.ID,
		ClientID:      d.ClientID,
		Brand:         d.Brand,
		Model:         d.Model,
		Year:          d.Year,
		VIN:           d.VIN,
		RegNumber:     d.RegNumber,
		EnginePowerHP: d.EnginePowerHP,
	}
}

func toVehicleDoc(v core.Vehicle) VehicleDoc {
	return VehicleDoc{
		ID:            v.ID,
		ClientID:      v.ClientID,
		Brand:         v.Brand,
		Model:         v.Model,
		Year:          v.Year,
		VIN:           v.VIN,
		RegNumber:     v.RegNumber,
		EnginePowerHP: v.EnginePowerHP,
	}
}

// Policy. Cost is stored as its exact decimal string; the values are written
// by this store only, so parse failures are not expected.
type PolicyDoc struct {
	ID        string    `bson:"_id"`
	Number    string    `bson:"number"` // unique index
	VehicleID string    `bson:"vehicle_id"`
	StartDate time.Time `bson:"start_date"`
	EndDate   time.Time `bson:"end_date"`
	Cost      string    `bson:"cost"`
	Status    string    `bson:"status"`
	Notes     string    `bson:"notes,omitempty"`
	CreatedAt time.Time `bson:"created_at"`
}

func fromPolicyDoc(d PolicyDoc) core.Policy {
	cost, _ := decimal.NewFromString(d.Cost)
	return core.Policy{
		ID:        d.ID,
		Number:    core.PolicyNumber(d.Number),
		VehicleID: d.VehicleID,
		StartDate: d.StartDate,
		EndDate:   d.EndDate,
		Cost:      cost,
		Status:    core.StoredStatus(d.Status),
		Notes:     d.Notes,
		CreatedAt: d.CreatedAt,
	}
}

func toPolicyDoc(p core.Policy) PolicyDoc {
	return PolicyDoc{
		ID:        p.ID,
		Number:    string(p.Number),
		VehicleID: p.VehicleID,
		StartDate: p.StartDate,
		EndDate:   p.EndDate,
		Cost:      p.Cost.String(),
		Status:    string(p.Status),
		Notes:     p.Notes,
		CreatedAt: p.CreatedAt,
	}
}
