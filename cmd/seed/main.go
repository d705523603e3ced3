package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Vare321/-AIS-of-the-CTP-Insurance-Company/internal/core"
	"github.com/Vare321/-AIS-of-the-CTP-Insurance-Company/internal/platform/config"
	"github.com/Vare321/-AIS-of-the-CTP-Insurance-Company/internal/platform/logging"
	"github.com/Vare321/-AIS-of-the-CTP-Insurance-Company/internal/store/mongo"
)

type seedVehicle struct {
	brand   string
	model   string
	year    int
	vin     string
	reg     string
	powerHP int

	// issuance input for the demo policy
	coverageMonths int
	driverAge      int
	experience     int
	bonusMalus     string
}

type seedEntry struct {
	client  core.Client
	vehicle seedVehicle
}

func main() {
	cfg := config.MustLoad()
	log := logging.New(cfg.Env)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.NewClient(cfg)
	if err != nil {
		log.Error("failed to connect to MongoDB", "err", err)
		return
	}
	defer client.Close(ctx)

	if err := mongo.EnsureIndexes(ctx, client.DB); err != nil {
		log.Error("failed to ensure indexes", "err", err)
		return
	}

	opTimeout := time.Duration(cfg.MongoOpTimeoutMs) * time.Millisecond
	clientRepo := mongo.NewClientRepo(client.DB, opTimeout)
	vehicleRepo := mongo.NewVehicleRepo(client.DB, opTimeout)
	policyRepo := mongo.NewPolicyRepo(client.DB, opTimeout)

	clientSvc := core.NewClientService(clientRepo, vehicleRepo)
	vehicleSvc := core.NewVehicleService(vehicleRepo, clientRepo, policyRepo)
	policySvc := core.NewPolicyService(policyRepo, vehicleRepo)

	log.Info("seeding demo portfolio")
	seedPortfolio(ctx, log, clientSvc, vehicleSvc, policySvc)
	log.Info("done seeding")
}

func seedPortfolio(
	ctx context.Context,
	log *slog.Logger,
	clients core.ClientService,
	vehicles core.VehicleService,
	policies core.PolicyService,
) {
	entries := []seedEntry{
		{
			client: core.Client{
				FullName: "Ivanov Ivan Ivanovich",
				Passport: "4512 356789",
				Phone:    "+79001234567",
				Email:    "ivanov@mail.ru",
			},
			vehicle: seedVehicle{
				brand: "Toyota", model: "Camry", year: 2022,
				vin: "JT2BF22K123456789", reg: "A123BC 77", powerHP: 181,
				coverageMonths: 12, driverAge: 35, experience: 12, bonusMalus: "0.9",
			},
		},
		{
			client: core.Client{
				FullName: "Petrov Petr Petrovich",
				Passport: "4513 567890",
				Phone:    "+79002345678",
				Email:    "petrov@gmail.com",
			},
			vehicle: seedVehicle{
				brand: "Volkswagen", model: "Polo", year: 2019,
				vin: "WVWZZZ6RZ98765432", reg: "B456KM 78", powerHP: 90,
				coverageMonths: 6, driverAge: 24, experience: 4, bonusMalus: "1.0",
			},
		},
		{
			client: core.Client{
				FullName: "Sidorova Anna Ivanovna",
				Passport: "4514 678901",
				Phone:    "+79003456789",
				Email:    "sidorova@yandex.ru",
			},
			vehicle: seedVehicle{
				brand: "Kia", model: "Rio", year: 2023,
				vin: "KNADN512AC6789012", reg: "E789HM 50", powerHP: 123,
				coverageMonths: 12, driverAge: 42, experience: 20, bonusMalus: "0.65",
			},
		},
		{
			client: core.Client{
				FullName: "Kuznetsov Alexey Sergeevich",
				Passport: "4515 789012",
				Phone:    "+79004567890",
				Email:    "kuznetsov@mail.ru",
			},
			vehicle: seedVehicle{
				brand: "BMW", model: "5 Series", year: 2016,
				vin: "WBAJA5C50GG345678", reg: "K012OP 99", powerHP: 249,
				coverageMonths: 12, driverAge: 51, experience: 28, bonusMalus: "0.5",
			},
		},
		{
			client: core.Client{
				FullName: "Smirnova Elena Pavlovna",
				Passport: "4516 890123",
				Phone:    "+79005678901",
				Email:    "smirnova@gmail.com",
			},
			vehicle: seedVehicle{
				brand: "Renault", model: "Duster", year: 2021,
				vin: "X7LHSRGAN65432109", reg: "M345CT 97", powerHP: 143,
				coverageMonths: 3, driverAge: 29, experience: 2, bonusMalus: "1.4",
			},
		},
	}

	for _, e := range entries {
		client, err := clients.Create(ctx, e.client)
		if err != nil {
			fmt.Printf("skipping client %s: %v\n", e.client.FullName, err)
			continue
		}
		log.Info("seeded client", "full_name", client.FullName)

		vehicle, err := vehicles.Create(ctx, core.Vehicle{
			ClientID:      client.ID,
			Brand:         e.vehicle.brand,
			Model:         e.vehicle.model,
			Year:          e.vehicle.year,
			VIN:           e.vehicle.vin,
			RegNumber:     e.vehicle.reg,
			EnginePowerHP: e.vehicle.powerHP,
		})
		if err != nil {
			fmt.Printf("skipping vehicle %s %s: %v\n", e.vehicle.brand, e.vehicle.model, err)
			continue
		}
		log.Info("seeded vehicle", "brand", vehicle.Brand, "model", vehicle.Model, "reg_number", vehicle.RegNumber)

		policy, err := policies.Issue(ctx, core.IssueInput{
			VehicleID:             vehicle.ID,
			CoverageMonths:        e.vehicle.coverageMonths,
			DriverAge:             e.vehicle.driverAge,
			DriverExperienceYears: e.vehicle.experience,
			BonusMalus:            decimal.RequireFromString(e.vehicle.bonusMalus),
		})
		if err != nil {
			fmt.Printf("skipping policy for %s: %v\n", vehicle.RegNumber, err)
			continue
		}
		log.Info("seeded policy", "number", policy.Number, "cost", policy.Cost)
	}
}
