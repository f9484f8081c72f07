// Package storage declares the repositories the domain services depend on.
// Implementations live in the postgres and memory sub-packages.
package storage

import (
	"context"
	"errors"
	"time"

	"eats-backend/internal/models"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a write violates a unique constraint.
	ErrConflict = errors.New("unique constraint violated")
)

// Relations that can be preloaded with a restaurant.
const (
	RelationMenu   = "Menu"
	RelationOrders = "Orders"
)

type UserRepository interface {
	FindByID(ctx context.Context, id int) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, u *models.User) error
	Save(ctx context.Context, u *models.User) error
}

type VerificationRepository interface {
	// FindByCode returns the verification with its User loaded.
	FindByCode(ctx context.Context, code string) (*models.Verification, error)
	Create(ctx context.Context, v *models.Verification) error
	Delete(ctx context.Context, id int) error
	DeleteByUser(ctx context.Context, userID int) error
}

type CategoryRepository interface {
	FindAll(ctx context.Context) ([]models.Category, error)
	FindBySlug(ctx context.Context, slug string) (*models.Category, error)
	Create(ctx context.Context, c *models.Category) error
}

// RestaurantQuery filters and pages restaurant listings. Zero values mean
// "no filter"; Limit 0 returns every match.
type RestaurantQuery struct {
	OwnerID       *int
	CategoryID    *int
	NameContains  string
	Offset        int
	Limit         int
	PromotedFirst bool
}

type RestaurantRepository interface {
	FindByID(ctx context.Context, id int, relations ...string) (*models.Restaurant, error)
	// Find returns one page of matches and the total match count.
	Find(ctx context.Context, q RestaurantQuery) ([]models.Restaurant, int, error)
	Count(ctx context.Context, q RestaurantQuery) (int, error)
	Create(ctx context.Context, r *models.Restaurant) error
	Save(ctx context.Context, r *models.Restaurant) error
	Delete(ctx context.Context, id int) error
	// ClearExpiredPromotions demotes restaurants whose promotion ended
	// before now and reports how many were changed.
	ClearExpiredPromotions(ctx context.Context, now time.Time) (int, error)
}

type DishRepository interface {
	// FindByID returns the dish with its Restaurant loaded.
	FindByID(ctx context.Context, id int) (*models.Dish, error)
	Create(ctx context.Context, d *models.Dish) error
	Save(ctx context.Context, d *models.Dish) error
	Delete(ctx context.Context, id int) error
}

// OrderQuery selects orders by participant. Exactly one of the id fields is
// expected to be set.
type OrderQuery struct {
	CustomerID *int
	DriverID   *int
	OwnerID    *int
	Status     *models.OrderStatus
}

type OrderRepository interface {
	// FindByID returns the order with Restaurant and Items (with Dish) loaded.
	FindByID(ctx context.Context, id int) (*models.Order, error)
	Find(ctx context.Context, q OrderQuery) ([]models.Order, error)
	// Create inserts the order and its items.
	Create(ctx context.Context, o *models.Order) error
	// UpdateStatus writes only the status column.
	UpdateStatus(ctx context.Context, id int, status models.OrderStatus) error
	// AssignDriver sets the driver of an order that has none. It returns
	// ErrConflict when a driver is already assigned.
	AssignDriver(ctx context.Context, id, driverID int) error
}

type PaymentRepository interface {
	FindByUser(ctx context.Context, userID int) ([]models.Payment, error)
	Create(ctx context.Context, p *models.Payment) error
}

// Manager hands out repositories bound to one connection or transaction.
type Manager interface {
	Users() UserRepository
	Verifications() VerificationRepository
	Categories() CategoryRepository
	Restaurants() RestaurantRepository
	Dishes() DishRepository
	Orders() OrderRepository
	Payments() PaymentRepository

	// Transaction runs fn with a Manager bound to a single transaction. The
	// transaction commits when fn returns nil and rolls back otherwise.
	Transaction(ctx context.Context, fn func(tx Manager) error) error
}
