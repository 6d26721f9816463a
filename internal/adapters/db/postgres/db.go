package postgres

import (
	"context"
	"errors"
	"time"

	customErrors "github.com/Miraines/MoonyAndStarry/finance-service/internal/domain/auth/errors"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

const uniqueViolation = "23505"

// Open connects to PostgreSQL with driver errors translated into gorm sentinels.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		return nil, customErrors.WrapInternal(err, "open postgres")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, customErrors.WrapInternal(err, "postgres pool")
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}

// Ping is used by the health endpoints.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
