package core

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Vare321/-AIS-of-the-CTP-Insurance-Company/internal/platform/ids"
)

// issueRaces bounds regenerate-and-retry cycles when a concurrent issuance
// wins the unique-index race on the freshly generated number.
const issueRaces = 3

// IssueInput carries everything needed to issue a policy for a vehicle on
// file. Engine power and model year come from the vehicle record.
type IssueInput struct {
	VehicleID             string          `json:"vehicle_id"`
	CoverageMonths        int             `json:"coverage_months"`
	DriverAge             int             `json:"driver_age"`
	DriverExperienceYears int             `json:"driver_experience_years"`
	BonusMalus            decimal.Decimal `json:"bonus_malus"`
}

type PolicyService interface {
	// Issue prices and creates a policy for a stored vehicle.
	Issue(ctx context.Context, in IssueInput) (Policy, error)

	// Cancel performs the active → cancelled transition with a mandatory reason.
	Cancel(ctx context.Context, id, reason string) (Policy, error)

	// Get retrieves a policy by ID.
	Get(ctx context.Context, id string) (Policy, error)

	// GetByNumber retrieves a policy by policy number.
	GetByNumber(ctx context.Context, number PolicyNumber) (Policy, error)

	// List returns policies filtered by effective status, newest first.
	List(ctx context.Context, filter PolicyFilter, limit, offset int) ([]Policy, int, error)
}

type policyService struct {
	policies PolicyRepo
	vehicles VehicleRepo
	clock    func() time.Time
	intn     func(int) int
}

func NewPolicyService(policies PolicyRepo, vehicles VehicleRepo) PolicyService {
	return &policyService{
		policies: policies,
		vehicles: vehicles,
		clock:    time.Now,
		intn:     rand.Intn,
	}
}

func (s *policyService) Issue(ctx context.Context, in IssueInput) (Policy, error) {
	// 1) load vehicle
	vehicle, err := s.vehicles.Get(ctx, in.VehicleID)
	if err != nil {
		return Policy{}, err
	}

	// 2) price
	now := s.clock()
	profile := RatingProfile{
		EnginePowerHP:         vehicle.EnginePowerHP,
		VehicleYear:           vehicle.Year,
		CoverageMonths:        in.CoverageMonths,
		DriverAge:             in.DriverAge,
		DriverExperienceYears: in.DriverExperienceYears,
		BonusMalus:            in.BonusMalus,
	}
	cost, err := ComputePremium(profile, now)
	if err != nil {
		return Policy{}, err
	}

	// 3) generate number and insert; the unique index on the number is the
	// final arbiter, so regenerate on a duplicate-key insert
	for attempt := 0; ; attempt++ {
		number, err := GenerateNumber(ctx, now, s.intn, s.policies.NumberExists)
		if err != nil {
			return Policy{}, fmt.Errorf("generate policy number: %w", err)
		}

		policy := Policy{
			ID:        ids.New(),
			Number:    number,
			VehicleID: vehicle.ID,
			StartDate: now,
			EndDate:   now.AddDate(0, 0, 30*in.CoverageMonths),
			Cost:      cost,
			Status:    StoredStatusActive,
			CreatedAt: now,
		}

		err = s.policies.Create(ctx, policy)
		if err == nil {
			return policy, nil
		}
		if !errors.Is(err, ErrPolicyExists) || attempt >= issueRaces {
			return Policy{}, err
		}
	}
}

func (s *policyService) Cancel(ctx context.Context, id, reason string) (Policy, error) {
	if id == "" {
		return Policy{}, fmt.Errorf("%w: missing policy ID", ErrValidation)
	}

	policy, err := s.policies.Get(ctx, id)
	if err != nil {
		return Policy{}, err
	}

	if err := policy.Cancel(reason); err != nil {
		return Policy{}, err
	}

	if err := s.policies.Update(ctx, policy); err != nil {
		return Policy{}, err
	}
	return policy, nil
}

func (s *policyService) Get(ctx context.Context, id string) (Policy, error) {
	if id == "" {
		return Policy{}, fmt.Errorf("%w: missing policy ID", ErrValidation)
	}
	return s.policies.Get(ctx, id)
}

func (s *policyService) GetByNumber(ctx context.Context, number PolicyNumber) (Policy, error) {
	if number == "" {
		return Policy{}, fmt.Errorf("%w: missing policy number", ErrValidation)
	}
	return s.policies.GetByNumber(ctx, number)
}

func (s *policyService) List(ctx context.Context, filter PolicyFilter, limit, offset int) ([]Policy, int, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	all, err := s.policies.List(ctx)
	if err != nil {
		return nil, 0, err
	}

	// Status filtering works on the effective status, which only exists at
	// read time, so it happens here rather than in the store.
	now := s.clock()
	matched := make([]Policy, 0, len(all))
	for _, p := range all {
		if filter.VehicleID != "" && p.VehicleID != filter.VehicleID {
			continue
		}
		if filter.Status != "" && p.EffectiveStatus(now) != filter.Status {
			continue
		}
		matched = append(matched, p)
	}

	total := len(matched)
	if offset >= total {
		return []Policy{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}
