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

type ClientRepoMongo struct {
	coll      *mongodrv.Collection
	opTimeout time.Duration
}

func NewClientRepo(db *mongodrv.Database, opTimeout time.Duration) *ClientRepoMongo {
	return &ClientRepoMongo{
		coll:      db.Collection(ColClients),
		opTimeout: opTimeout,
	}
}

func (repo *ClientRepoMongo) Create(ctx context.Context, c core.Client) error {
	ctx, cancel := context.WithTimeout(ctx, repo.opTimeout)
	defer cancel()

	_, err := repo.coll.InsertOne(ctx, toClientDoc(c))
	if err != nil {
		var we mongodrv.WriteException
		if errors.As(err, &we) {
			for _, e := range we.WriteErrors {
				if e.Code == 11000 {
					return core.ErrClientExists
				}
			}
		}
		return fmt.Errorf("clients.insert: %w", err)
	}
	return nil
}

func (repo *ClientRepoMongo) Get(ctx context.Context, id string) (core.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, repo.opTimeout)
	defer cancel()

	var doc ClientDoc
	err := repo.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongodrv.ErrNoDocuments) {
			return core.Client{}, core.ErrClientNotFound
		}
		return core.Client{}, fmt.Errorf("clients.findOne: %w", err)
	}
	return fromClientDoc(doc), nil
}

func (repo *ClientRepoMongo) Update(ctx context.Context, c core.Client) error {
	ctx, cancel := context.WithTimeout(ctx, repo.opTimeout)
	defer cancel()

	res, err := repo.coll.ReplaceOne(ctx, bson.M{"_id": c.ID}, toClientDoc(c))
	if err != nil {
		var we mongodrv.WriteException
		if errors.As(err, &we) {
			for _, e := range we.WriteErrors {
				if e.Code == 11000 {
					return core.ErrClientExists
				}
			}
		}
		return fmt.Errorf("clients.replace: %w", err)
	}
	if res.MatchedCount == 0 {
		return core.ErrClientNotFound
	}
	return nil
}

func (repo *ClientRepoMongo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, repo.opTimeout)
	defer cancel()

	res, err := repo.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("clients.delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return core.ErrClientNotFound
	}
	return nil
}

func (repo *ClientRepoMongo) List(ctx context.Context) ([]core.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, repo.opTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "full_name", Value: 1}})
	cursor, err := repo.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("clients.find: %w", err)
	}
	defer cursor.Close(ctx)

	var clients []core.Client
	for cursor.Next(ctx) {
		var doc ClientDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("clients.decode: %w", err)
		}
		clients = append(clients, fromClientDoc(doc))
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("clients.cursor: %w", err)
	}

	return clients, nil
}
