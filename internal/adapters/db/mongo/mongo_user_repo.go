package mongo

import (
	"context"
	"errors"

	customErrors "github.com/Miraines/MoonyAndStarry/finance-service/internal/domain/auth/errors"
	"github.com/Miraines/MoonyAndStarry/finance-service/internal/domain/auth/model"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type MongoUserRepo struct {
	users *mongo.Collection
}

func NewMongoUserRepo(db *mongo.Database) *MongoUserRepo {
	return &MongoUserRepo{users: db.Collection(usersCollection)}
}

func (m *MongoUserRepo) CreateUser(ctx context.Context, user model.User) (uuid.UUID, error) {
	if _, err := m.users.InsertOne(ctx, newUserDocument(user)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return uuid.Nil, customErrors.ErrAlreadyExists
		}
		return uuid.Nil, customErrors.WrapInternal(err, "CreateUser")
	}
	return user.ID, nil
}

func (m *MongoUserRepo) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	return m.findOne(ctx, "GetUserByEmail", bson.D{{Key: "email", Value: email}})
}

func (m *MongoUserRepo) GetUserByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	return m.findOne(ctx, "GetUserByID", bson.D{{Key: "_id", Value: id.String()}})
}

func (m *MongoUserRepo) findOne(ctx context.Context, op string, filter bson.D) (model.User, error) {
	var doc userDocument
	err := m.users.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.User{}, customErrors.ErrNotFound
	}
	if err != nil {
		return model.User{}, customErrors.WrapInternal(err, op)
	}

	u, err := doc.model()
	if err != nil {
		return model.User{}, customErrors.WrapInternal(err, op)
	}
	return u, nil
}
