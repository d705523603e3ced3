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

type VehicleRepoMongo struct {
	coll      *mongodrv.Collection
	opTimeout time.Duration
}

func NewVehicleRepo(db *mongodrv.Database, opTimeout time.Duration) *VehicleRepoMongo {
	return &VehicleRepoMongo{
		coll:      db.Collection(ColVehicles),
		opTimeout: opTimeout,
	}
}

func (repo *VehicleRepoMongo) Create(ctx context.Context, v core.Vehicle) error {
	ctx, cancel := context.WithTimeout(ctx, repo.opTimeout)
	defer cancel()

	_, err := repo.coll.InsertOne(ctx, toVehicleDoc(v))
	if err != nil {
		var we mongodrv.WriteException
		if errors.As(err, &we) {
			for _, e := range we.WriteErrors {
				if e.Code == 11000 {
					return core.ErrVehicleExists
				}
			}
		}
		return fmt.Errorf("vehicles.insert: %w", err)
	}
	return nil
}

func (repo *VehicleRepoMongo) Get(ctx context.Context, id string) (core.Vehicle, error) {
	ctx, cancel := context.WithTimeout(ctx, repo.opTimeout)
	defer cancel()

	var doc VehicleDoc
	err := repo.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongodrv.ErrNoDocuments) {
			return core.Vehicle{}, core.ErrVehicleNotFound
		}
		return core.Vehicle{}, fmt.Errorf("vehicles.findOne: %w", err)
	}
	return fromVehicleDoc(doc), nil
}

func (repo *VehicleRepoMongo) Update(ctx context.Context, v core.Vehicle) error {
	ctx, cancel := context.WithTimeout(ctx, repo.opTimeout)
	defer cancel()

	res, err := repo.coll.ReplaceOne(ctx, bson.M{"_id": v.ID}, toVehicleDoc(v))
	if err != nil {
		var we mongodrv.WriteException
		if errors.As(err, &we) {
			for _, e := range we.WriteErrors {
				if e.Code == 11000 {
					return core.ErrVehicleExists
				}
			}
		}
		return fmt.Errorf("vehicles.replace: %w", err)
	}
	if res.MatchedCount == 0 {
		return core.ErrVehicleNotFound
	}
	return nil
}

func (repo *VehicleRepoMongo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, repo.opTimeout)
	defer cancel()

	res, err := repo.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("vehicles.delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return core.ErrVehicleNotFound
	}
	return nil
}

func (repo *VehicleRepoMongo) List(ctx context.Context) ([]core.Vehicle, error) {
	return repo.find(ctx, bson.M{})
}

func (repo *VehicleRepoMongo) ListByClient(ctx context.Context, clientID string) ([]core.Vehicle, error) {
	return repo.find(ctx, bson.M{"client_id": clientID})
}

func (repo *VehicleRepoMongo) find(ctx context.Context, filter bson.M) ([]core.Vehicle, error) {
	ctx, cancel := context.WithTimeout(ctx, repo.opTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "brand", Value: 1}, {Key: "model", Value: 1}})
	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("vehicles.find: %w", err)
	}
	defer cursor.Close(ctx)

	var vehicles []core.Vehicle
	for cursor.Next(ctx) {
		var doc VehicleDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("vehicles.decode: %w", err)
		}
		vehicles = append(vehicles, fromVehicleDoc(doc))
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("vehicles.cursor: %w", err)
	}

	return vehicles, nil
}
