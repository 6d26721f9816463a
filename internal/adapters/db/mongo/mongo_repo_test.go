package mongo

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/Miraines/MoonyAndStarry/finance-service/internal/domain/auth/errors"
	authModel "github.com/Miraines/MoonyAndStarry/finance-service/internal/domain/auth/model"
	ledgerModel "github.com/Miraines/MoonyAndStarry/finance-service/internal/domain/ledger/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

func setupDB(t *testing.T) *mongo.Database {
	t.Helper()
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, db, err := Connect(ctx, uri, "finance_test_"+uuid.NewString()[:8])
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})
	return db
}

func TestDocumentsRoundTrip(t *testing.T) {
	u := authModel.User{ID: uuid.New(), Name: "Ana", Email: "ana@x.io", PasswordHash: "h", CreatedAt: time.Now().UTC()}
	got, err := newUserDocument(u).model()
	require.NoError(t, err)
	require.Equal(t, u, got)

	_, err = userDocument{ID: "not-a-uuid"}.model()
	require.Error(t, err)

	tx := ledgerModel.Transaction{ID: uuid.New(), UserID: uuid.New(), Kind: ledgerModel.KindOutcome, Value: 5, CreatedAt: time.Now().UTC()}
	gotTx, err := newTransactionDocument(tx).model()
	require.NoError(t, err)
	require.Equal(t, tx, gotTx)
}

func TestMongoUserRepo(t *testing.T) {
	db := setupDB(t)
	repo := NewMongoUserRepo(db)
	ctx := context.Background()

	u := authModel.User{ID: uuid.New(), Name: "Ana", Email: "ana@x.io", PasswordHash: "h", CreatedAt: time.Now().UTC().Truncate(time.Millisecond)}
	id, err := repo.CreateUser(ctx, u)
	require.NoError(t, err)
	require.Equal(t, u.ID, id)

	_, err = repo.CreateUser(ctx, authModel.User{ID: uuid.New(), Email: "ana@x.io"})
	require.ErrorIs(t, err, errors.ErrAlreadyExists)

	got, err := repo.GetUserByEmail(ctx, "ana@x.io")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)

	_, err = repo.GetUserByID(ctx, uuid.New())
	require.True(t, errors.IsNotFound(err))
}

func TestMongoTransactionRepo(t *testing.T) {
	db := setupDB(t)
	repo := NewMongoTransactionRepo(db)
	ctx := context.Background()
	ana := uuid.New()
	base := time.Now().UTC().Truncate(time.Millisecond)

	older := ledgerModel.Transaction{ID: uuid.New(), UserID: ana, Kind: ledgerModel.KindIncome, Value: 49000, CreatedAt: base}
	newer := ledgerModel.Transaction{ID: uuid.New(), UserID: ana, Kind: ledgerModel.KindIncome, Value: 60000, CreatedAt: base.Add(time.Second)}
	require.NoError(t, repo.CreateTransaction(ctx, older))
	require.NoError(t, repo.CreateTransaction(ctx, newer))

	list, err := repo.ListTransactions(ctx, ana, ledgerModel.KindIncome)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, newer.ID, list[0].ID)

	_, err = repo.GetTransaction(ctx, uuid.New(), ledgerModel.KindIncome, older.ID)
	require.True(t, errors.IsNotFound(err))
}
