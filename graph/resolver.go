package graph

// This file will not be regenerated automatically.
//
// It serves as dependency injection for your app, add any dependencies you require here.

//go:generate go run github.com/99designs/gqlgen generate

import (
	"context"
	"errors"

	"eats-backend/internal/app/core"
	"eats-backend/internal/app/orders"
	"eats-backend/internal/app/payments"
	"eats-backend/internal/app/restaurants"
	"eats-backend/internal/app/users"
	"eats-backend/internal/auth"
	"eats-backend/internal/models"
)

// AccountService is satisfied by *users.Service. Resolvers depend on the
// interface so tests can inject a lightweight mock.
type AccountService interface {
	CreateAccount(ctx context.Context, in users.CreateAccountInput) core.Output
	Login(ctx context.Context, in users.LoginInput) users.LoginOutput
	FindByID(ctx context.Context, id int) users.UserProfileOutput
	EditProfile(ctx context.Context, userID int, in users.EditProfileInput) core.Output
	VerifyEmail(ctx context.Context, code string) core.Output
}

// CatalogService is satisfied by *restaurants.Service.
type CatalogService interface {
	CreateRestaurant(ctx context.Context, ownerID int, in restaurants.CreateRestaurantInput) restaurants.CreateRestaurantOutput
	EditRestaurant(ctx context.Context, ownerID int, in restaurants.EditRestaurantInput) core.Output
	DeleteRestaurant(ctx context.Context, ownerID, restaurantID int) core.Output
	CreateDish(ctx context.Context, ownerID int, in restaurants.CreateDishInput) core.Output
	EditDish(ctx context.Context, ownerID int, in restaurants.EditDishInput) core.Output
	DeleteDish(ctx context.Context, ownerID, dishID int) core.Output

	MyRestaurants(ctx context.Context, ownerID int) restaurants.RestaurantsOutput
	MyRestaurant(ctx context.Context, ownerID, id int) restaurants.RestaurantOutput
	AllCategories(ctx context.Context) restaurants.CategoriesOutput
	CountRestaurants(ctx context.Context, categoryID int) (int, error)
	FindCategoryBySlug(ctx context.Context, slug string, page int) restaurants.CategoryOutput
	AllRestaurants(ctx context.Context, page int) restaurants.PagedRestaurantsOutput
	FindRestaurantByID(ctx context.Context, id int) restaurants.RestaurantOutput
	SearchRestaurantByName(ctx context.Context, query string, page int) restaurants.PagedRestaurantsOutput
}

// OrderService is satisfied by *orders.Service.
type OrderService interface {
	CreateOrder(ctx context.Context, customerID int, in orders.CreateOrderInput) orders.CreateOrderOutput
	GetOrders(ctx context.Context, user *models.User, status *models.OrderStatus) orders.OrdersOutput
	GetOrder(ctx context.Context, user *models.User, id int) orders.OrderOutput
	EditOrder(ctx context.Context, user *models.User, in orders.EditOrderInput) core.Output
	TakeOrder(ctx context.Context, courier *models.User, id int) core.Output
}

// PaymentService is satisfied by *payments.Service.
type PaymentService interface {
	CreatePayment(ctx context.Context, ownerID int, in payments.CreatePaymentInput) core.Output
	GetPayments(ctx context.Context, userID int) payments.PaymentsOutput
}

// Resolver is the root dependency-injection struct wired in cmd/api/main.go.
type Resolver struct {
	Users    AccountService
	Catalog  CatalogService
	Orders   OrderService
	Payments PaymentService
}

// ErrForbidden is returned before any service call when the caller is
// anonymous or lacks the role an operation requires.
var ErrForbidden = errors.New("Forbidden resource")

// requireUser returns the authenticated caller. With no roles any
// authenticated user is accepted.
func requireUser(ctx context.Context, roles ...models.Role) (*models.User, error) {
	user, ok := auth.UserFromContext(ctx)
	if !ok {
		return nil, ErrForbidden
	}
	if len(roles) == 0 {
		return user, nil
	}
	for _, role := range roles {
		if user.Role == role {
			return user, nil
		}
	}
	return nil, ErrForbidden
}

// stringPtrOrNil converts an empty string to nil and a non-empty string to a
// pointer. Used when mapping service layer strings to nullable GraphQL fields.
func stringPtrOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// intPtrIf returns &v when the operation succeeded, nil otherwise.
func intPtrIf(ok bool, v int) *int {
	if !ok {
		return nil
	}
	return &v
}

func pageOrFirst(page *int) int {
	if page == nil {
		return 1
	}
	return *page
}
