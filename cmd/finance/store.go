package main

import (
	"context"
	"fmt"

	mongoRepo "github.com/Miraines/MoonyAndStarry/finance-service/internal/adapters/db/mongo"
	postgresRepo "github.com/Miraines/MoonyAndStarry/finance-service/internal/adapters/db/postgres"
	authRepo "github.com/Miraines/MoonyAndStarry/finance-service/internal/domain/auth/repo"
	ledgerRepo "github.com/Miraines/MoonyAndStarry/finance-service/internal/domain/ledger/repo"
	"github.com/Miraines/MoonyAndStarry/finance-service/internal/infra/config"
	"github.com/Miraines/MoonyAndStarry/finance-service/internal/infra/health"
	"github.com/Miraines/MoonyAndStarry/finance-service/internal/infra/migrate"
	"go.uber.org/zap"
)

type store struct {
	users        authRepo.UserRepo
	transactions ledgerRepo.TransactionRepo
	probe        health.Probe
	close        func()
}

func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*store, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		db, err := postgresRepo.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		if err := migrate.Up(sqlDB); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		if v, dirty, err := migrate.Version(sqlDB); err == nil {
			logger.Info("schema ready", zap.Uint("version", v), zap.Bool("dirty", dirty))
		}

		return &store{
			users:        postgresRepo.NewPostgresUserRepo(db),
			transactions: postgresRepo.NewPostgresTransactionRepo(db),
			probe: health.Probe{Name: "postgres", Check: func(ctx context.Context) error {
				return postgresRepo.Ping(ctx, db)
			}},
			close: func() { _ = sqlDB.Close() },
		}, nil

	case config.StoreDriverMongo:
		client, db, err := mongoRepo.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		logger.Info("mongo connected", zap.String("database", cfg.MongoDatabase))

		return &store{
			users:        mongoRepo.NewMongoUserRepo(db),
			transactions: mongoRepo.NewMongoTransactionRepo(db),
			probe: health.Probe{Name: "mongo", Check: func(ctx context.Context) error {
				return client.Ping(ctx, nil)
			}},
			close: func() { _ = client.Disconnect(context.Background()) },
		}, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
