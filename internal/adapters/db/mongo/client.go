package mongo

import (
	"context"

	customErrors "github.com/Miraines/MoonyAndStarry/finance-service/internal/domain/auth/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	usersCollection        = "users"
	transactionsCollection = "transactions"
)

// Connect opens a client, verifies it and prepares the indexes.
func Connect(ctx context.Context, uri, database string) (*mongo.Client, *mongo.Database, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, customErrors.WrapInternal(err, "mongo connect")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, customErrors.WrapInternal(err, "mongo ping")
	}

	db := client.Database(database)
	if err := EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}
	return client, db, nil
}

func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return customErrors.WrapInternal(err, "users email index")
	}

	_, err = db.Collection(transactionsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user", Value: 1}, {Key: "kind", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		return customErrors.WrapInternal(err, "transactions owner index")
	}
	return nil
}
