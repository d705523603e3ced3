package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	mongodrv "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Vare321/-AIS-of-the-CTP-Insurance-Company/internal/core"
)

type PolicyRepoMongo struct {
	coll      *mongodrv.Collection
	opTimeout time.Duration
}

func NewPolicyRepo(db *mongodrv.Database, opTimeout time.Duration) *PolicyRepoMongo {
	return &PolicyRepoMongo{
		coll:      db.Collection(ColPolicies),
		opTimeout: opTimeout,
	}
}

func (repo *PolicyRepoMongo) Create(ctx context.Context, policy core.Policy) error {
	ctx, cancel := context.WithTimeout(ctx, repo.opTimeout)
	defer cancel()

	doc := toPolicyDoc(policy)
	_, err := repo.coll.InsertOne(ctx, doc)
	if err != nil {
		var we mongodrv.WriteException
		if errors.As(err, &we) {
			for _, e := range we.WriteErrors {
				if e.Code == 11000 {
					return core.ErrPolicyExists
				}
			}
		}
		return fmt.Errorf("policies.insert: %w", err)
	}
	return nil
}

func (repo *PolicyRepoMongo) Get(ctx context.Context, id string) (core.Policy, error) {
	ctx, cancel := context.WithTimeout(ctx, repo.opTimeout)
	defer cancel()

	var doc PolicyDoc
	err := repo.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongodrv.ErrNoDocuments) {
			return core.Policy{}, core.ErrPolicyNotFound
		}
		return core.Policy{}, fmt.Errorf("policies.findOne: %w", err)
	}
	return fromPolicyDoc(doc), nil
}

func (repo *PolicyRepoMongo) GetByNumber(ctx context.Context, number core.PolicyNumber) (core.Policy, error) {
	ctx, cancel := context.WithTimeout(ctx, repo.opTimeout)
	defer cancel()

	var doc PolicyDoc
	err := repo.coll.FindOne(ctx, bson.M{"number": string(number)}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongodrv.ErrNoDocuments) {
			return core.Policy{}, core.ErrPolicyNotFound
		}
		return core.Policy{}, fmt.Errorf("policies.findByNumber: %w", err)
	}
	return fromPolicyDoc(doc), nil
}

func (repo *PolicyRepoMongo) NumberExists(ctx context.Context, number core.PolicyNumber) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, repo.opTimeout)
	defer cancel()

	count, err := repo.coll.CountDocuments(ctx, bson.M{"number": string(number)}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("policies.countByNumber: %w", err)
	}
	return count > 0, nil
}

func (repo *PolicyRepoMongo) Update(ctx context.Context, policy core.Policy) error {
	ctx, cancel := context.WithTimeout(ctx, repo.opTimeout)
	defer cancel()

	doc := toPolicyDoc(policy)
	res, err := repo.coll.ReplaceOne(ctx, bson.M{"_id": policy.ID}, doc)
	if err != nil {
		return fmt.Errorf("policies.replace: %w", err)
	}
	if res.MatchedCount == 0 {
		return core.ErrPolicyNotFound
	}
	return nil
}

func (repo *PolicyRepoMongo) List(ctx context.Context) ([]core.Policy, error) {
	return repo.find(ctx, bson.M{})
}

func (repo *PolicyRepoMongo) ListByVehicle(ctx context.Context, vehicleID string) ([]core.Policy, error) {
	return repo.find(ctx, bson.M{"vehicle_id": vehicleID})
}

// FindExpiring returns active-in-store policies whose end date falls inside
// (from, to). Used by the expiry scan worker.
func (repo *PolicyRepoMongo) FindExpiring(ctx context.Context, from, to time.Time) ([]core.Policy, error) {
	return repo.find(ctx, bson.M{
		"status":   string(core.StoredStatusActive),
		"end_date": bson.M{"$gt": from, "$lt": to},
	})
}

func (repo *PolicyRepoMongo) find(ctx context.Context, filter bson.M) ([]core.Policy, error) {
	ctx, cancel := context.WithTimeout(ctx, repo.opTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("policies.find: %w", err)
	}
	defer cursor.Close(ctx)

	var policies []core.Policy
	for cursor.Next(ctx) {
		var doc PolicyDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("policies.decode: %w", err)
		}
		policies = append(policies, fromPolicyDoc(doc))
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("policies.cursor: %w", err)
	}

	return policies, nil
}
