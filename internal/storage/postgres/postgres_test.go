package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"eats-backend/internal/models"
	"eats-backend/internal/storage"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return New(db), mock
}

func TestMapError(t *testing.T) {
	assert.NoError(t, mapError(nil))
	assert.ErrorIs(t, mapError(gorm.ErrRecordNotFound), storage.ErrNotFound)
	assert.ErrorIs(t, mapError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}), storage.ErrConflict)

	other := errors.New("connection reset")
	assert.Equal(t, other, mapError(other))
	assert.NotErrorIs(t, mapError(&pgconn.PgError{Code: "23503"}), storage.ErrConflict)
}

func TestUsers_FindByEmail_NotFound(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}))

	u, err := s.Users().FindByEmail(context.Background(), "nobody@email.com")
	require.ErrorIs(t, err, storage.ErrNotFound)
	assert.Nil(t, u)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUsers_FindByEmail_Found(t *testing.T) {
	s, mock := newMockStore(t)
	rows := sqlmock.NewRows([]string{"id", "email", "password", "role", "verified"}).
		AddRow(7, "bs@email.com", "hash", "Client", true)
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).WillReturnRows(rows)

	u, err := s.Users().FindByEmail(context.Background(), "bs@email.com")
	require.NoError(t, err)
	assert.Equal(t, 7, u.ID)
	assert.Equal(t, models.RoleClient, u.Role)
	assert.True(t, u.Verified)
}

func TestUsers_Create_UniqueViolationIsConflict(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	err := s.Users().Create(context.Background(), &models.User{Email: "bs@email.com", Role: models.RoleClient})
	require.ErrorIs(t, err, storage.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRestaurants_ClearExpiredPromotions(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectExec(`UPDATE "restaurants" SET`).
		WillReturnResult(sqlmock.NewResult(0, 2))

	n, err := s.Restaurants().ClearExpiredPromotions(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRestaurants_Count(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery(`SELECT count\(\*\) FROM "restaurants" WHERE category_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(26))

	cat := 3
	n, err := s.Restaurants().Count(context.Background(), storage.RestaurantQuery{CategoryID: &cat})
	require.NoError(t, err)
	assert.Equal(t, 26, n)
}

func TestOrders_AssignDriver(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectExec(`UPDATE "orders" SET .*driver_id IS NULL`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Orders().AssignDriver(context.Background(), 4, 9))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrders_AssignDriver_AlreadyTaken(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectExec(`UPDATE "orders" SET .*driver_id IS NULL`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "orders" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	err := s.Orders().AssignDriver(context.Background(), 4, 9)
	require.ErrorIs(t, err, storage.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrders_AssignDriver_Missing(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectExec(`UPDATE "orders" SET .*driver_id IS NULL`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "orders" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	err := s.Orders().AssignDriver(context.Background(), 4, 9)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestOrders_UpdateStatus_WritesOnlyStatus(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectExec(`UPDATE "orders" SET "status"=\$1,"updated_at"=\$2 WHERE`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Orders().UpdateStatus(context.Background(), 4, models.OrderCooking))
	assert.NoError(t, mock.ExpectationsWereMet())
}
