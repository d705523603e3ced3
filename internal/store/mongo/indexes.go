package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := ensureClientsIndexes(ctx, db); err != nil {
		return fmt.Errorf("ensure clients indexes: %w", err)
	}
	if err := ensureVehiclesIndexes(ctx, db); err != nil {
		return fmt.Errorf("ensure vehicles indexes: %w", err)
	}
	if err := ensurePoliciesIndexes(ctx, db); err != nil {
		return fmt.Errorf("ensure policies indexes: %w", err)
	}
	return nil
}

func ensureClientsIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(ColClients)
	models := []mongo.IndexModel{
		newIndex("passport", 1, "clients_passport_unique", true),
	}
	_, err := coll.Indexes().CreateMany(ctx, models)
	return err
}

func ensureVehiclesIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(ColVehicles)
	models := []mongo.IndexModel{
		newIndex("vin", 1, "vehicles_vin_unique", true),
		newIndex("reg_number", 1, "vehicles_reg_number_unique", true),
		newIndex("client_id", 1, "vehicles_client_id", false),
	}
	_, err := coll.Indexes().CreateMany(ctx, models)
	return err
}

func ensurePoliciesIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(ColPolicies)
	models := []mongo.IndexModel{
		// The unique number index is the arbiter of the check-then-insert
		// race in policy number generation.
		newIndex("number", 1, "policies_number_unique", true),
		newIndex("vehicle_id", 1, "policies_vehicle_id", false),
		newIndex("end_date", 1, "policies_end_date", false),
	}
	_, err := coll.Indexes().CreateMany(ctx, models)
	return err
}

func newIndex(field string, asc int32, name string, unique bool) mongo.IndexModel {
	opts := options.Index().SetName(name)
	if unique {
		opts = opts.SetUnique(true)
	}
	return mongo.IndexModel{
		Keys:    bson.D{{Key: field, Value: asc}},
		Options: opts,
	}
}
