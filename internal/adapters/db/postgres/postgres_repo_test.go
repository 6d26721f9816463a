package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/Miraines/MoonyAndStarry/finance-service/internal/domain/auth/errors"
	authModel "github.com/Miraines/MoonyAndStarry/finance-service/internal/domain/auth/model"
	ledgerModel "github.com/Miraines/MoonyAndStarry/finance-service/internal/domain/ledger/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection keeps the in-memory database alive and shared
	sqlDB.SetMaxOpenConns(1)
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newUser(email string) authModel.User {
	return authModel.User{ID: uuid.New(), Name: "Ana", Email: email, PasswordHash: "h", CreatedAt: time.Now().UTC()}
}

func TestPostgresUserRepo_CRUD(t *testing.T) {
	repo := NewPostgresUserRepo(setupDB(t))
	ctx := context.Background()
	user := newUser("ana@x.io")

	id, err := repo.CreateUser(ctx, user)
	if err != nil || id != user.ID {
		t.Fatalf("create %v", err)
	}
	got, err := repo.GetUserByEmail(ctx, user.Email)
	if err != nil || got.ID != user.ID {
		t.Fatalf("get by email %v", err)
	}
	got2, err := repo.GetUserByID(ctx, user.ID)
	if err != nil || got2.Email != user.Email || got2.Name != "Ana" {
		t.Fatalf("get by id %v", err)
	}
	if _, err := repo.GetUserByID(ctx, uuid.New()); !errors.IsNotFound(err) {
		t.Fatalf("expected not found")
	}
	if _, err := repo.GetUserByEmail(ctx, "bob@x.io"); !errors.IsNotFound(err) {
		t.Fatalf("expected not found")
	}
}

func TestPostgresUserRepo_DuplicateEmail(t *testing.T) {
	db := setupDB(t)
	repo := NewPostgresUserRepo(db)
	ctx := context.Background()

	_, err := repo.CreateUser(ctx, newUser("ana@x.io"))
	require.NoError(t, err)

	_, err = repo.CreateUser(ctx, newUser("ana@x.io"))
	require.ErrorIs(t, err, errors.ErrAlreadyExists)

	var count int64
	require.NoError(t, db.Model(&userRecord{}).Where("email = ?", "ana@x.io").Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestPostgresTransactionRepo(t *testing.T) {
	db := setupDB(t)
	repo := NewPostgresTransactionRepo(db)
	ctx := context.Background()
	ana, bob := uuid.New(), uuid.New()
	base := time.Now().UTC().Truncate(time.Second)

	older := ledgerModel.Transaction{ID: uuid.New(), UserID: ana, Kind: ledgerModel.KindIncome, Value: 49000, Description: "salary", CreatedAt: base}
	newer := ledgerModel.Transaction{ID: uuid.New(), UserID: ana, Kind: ledgerModel.KindIncome, Value: 60000, CreatedAt: base.Add(time.Minute)}
	spend := ledgerModel.Transaction{ID: uuid.New(), UserID: ana, Kind: ledgerModel.KindOutcome, Value: 10, CreatedAt: base}
	other := ledgerModel.Transaction{ID: uuid.New(), UserID: bob, Kind: ledgerModel.KindIncome, Value: 70000, CreatedAt: base}
	for _, tx := range []ledgerModel.Transaction{older, newer, spend, other} {
		require.NoError(t, repo.CreateTransaction(ctx, tx))
	}

	list, err := repo.ListTransactions(ctx, ana, ledgerModel.KindIncome)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, newer.ID, list[0].ID, "newest first")
	require.Equal(t, older.ID, list[1].ID)
	require.Equal(t, "salary", list[1].Description)

	got, err := repo.GetTransaction(ctx, ana, ledgerModel.KindOutcome, spend.ID)
	require.NoError(t, err)
	require.Equal(t, int64(10), got.Value)
	require.Equal(t, ledgerModel.KindOutcome, got.Kind)

	_, err = repo.GetTransaction(ctx, bob, ledgerModel.KindOutcome, spend.ID)
	require.True(t, errors.IsNotFound(err))

	_, err = repo.GetTransaction(ctx, ana, ledgerModel.KindIncome, spend.ID)
	require.True(t, errors.IsNotFound(err))

	empty, err := repo.ListTransactions(ctx, bob, ledgerModel.KindOutcome)
	require.NoError(t, err)
	require.Empty(t, empty)
}
