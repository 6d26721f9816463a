package mongo

import (
	"context"
	"errors"

	customErrors "github.com/Miraines/MoonyAndStarry/finance-service/internal/domain/auth/errors"
	"github.com/Miraines/MoonyAndStarry/finance-service/internal/domain/ledger/model"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type MongoTransactionRepo struct {
	transactions *mongo.Collection
}

func NewMongoTransactionRepo(db *mongo.Database) *MongoTransactionRepo {
	return &MongoTransactionRepo{transactions: db.Collection(transactionsCollection)}
}

func (m *MongoTransactionRepo) CreateTransaction(ctx context.Context, t model.Transaction) error {
	if _, err := m.transactions.InsertOne(ctx, newTransactionDocument(t)); err != nil {
		return customErrors.WrapInternal(err, "CreateTransaction")
	}
	return nil
}

func (m *MongoTransactionRepo) ListTransactions(ctx context.Context, userID uuid.UUID, kind model.Kind) ([]model.Transaction, error) {
	filter := bson.D{{Key: "user", Value: userID.String()}, {Key: "kind", Value: string(kind)}}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cur, err := m.transactions.Find(ctx, filter, opts)
	if err != nil {
		return nil, customErrors.WrapInternal(err, "ListTransactions")
	}
	var docs []transactionDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, customErrors.WrapInternal(err, "ListTransactions")
	}

	out := make([]model.Transaction, 0, len(docs))
	for _, d := range docs {
		t, err := d.model()
		if err != nil {
			return nil, customErrors.WrapInternal(err, "ListTransactions")
		}
		out = append(out, t)
	}
	return out, nil
}

func (m *MongoTransactionRepo) GetTransaction(ctx context.Context, userID uuid.UUID, kind model.Kind, id uuid.UUID) (model.Transaction, error) {
	filter := bson.D{
		{Key: "_id", Value: id.String()},
		{Key: "user", Value: userID.String()},
		{Key: "kind", Value: string(kind)},
	}

	var doc transactionDocument
	err := m.transactions.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Transaction{}, customErrors.ErrNotFound
	}
	if err != nil {
		return model.Transaction{}, customErrors.WrapInternal(err, "GetTransaction")
	}

	t, err := doc.model()
	if err != nil {
		return model.Transaction{}, customErrors.WrapInternal(err, "GetTransaction")
	}
	return t, nil
}
