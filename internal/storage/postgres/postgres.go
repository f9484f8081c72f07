// Package postgres implements the storage repositories on top of gorm and
// PostgreSQL. The schema is owned by the goose migrations in ./migrations.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eats-backend/internal/storage"
	"eats-backend/internal/storage/postgres/migrations"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pressly/goose/v3"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const uniqueViolation = "23505"

// Open connects to PostgreSQL and configures the connection pool.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Warn),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	return db, nil
}

// Migrate applies the embedded goose migrations.
func Migrate(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql.DB: %w", err)
	}
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, sqlDB, "."); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// Store is the gorm-backed storage.Manager.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Users() storage.UserRepository                 { return userRepo{db: s.db} }
func (s *Store) Verifications() storage.VerificationRepository { return verificationRepo{db: s.db} }
func (s *Store) Categories() storage.CategoryRepository        { return categoryRepo{db: s.db} }
func (s *Store) Restaurants() storage.RestaurantRepository     { return restaurantRepo{db: s.db} }
func (s *Store) Dishes() storage.DishRepository                { return dishRepo{db: s.db} }
func (s *Store) Orders() storage.OrderRepository               { return orderRepo{db: s.db} }
func (s *Store) Payments() storage.PaymentRepository           { return paymentRepo{db: s.db} }

func (s *Store) Transaction(ctx context.Context, fn func(tx storage.Manager) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

// mapError translates driver errors into storage sentinels.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return storage.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", storage.ErrConflict, pgErr.ConstraintName)
	}
	return err
}
