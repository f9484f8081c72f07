// Package orders places orders and moves them through the kitchen and
// delivery states.
package orders

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"eats-backend/internal/app/core"
	"eats-backend/internal/models"
	"eats-backend/internal/storage"
)

const (
	errRestaurantNotFound = "Restaurant not found"
	errDishNotFound       = "Dish not found."
	errCreateOrder        = "Could not create order."
	errGetOrders          = "Could not get orders."
	errOrderNotFound      = "Order not found."
	errCantSee            = "You can't see that."
	errLoadOrder          = "Could not load order."
	errCantEdit           = "You can't do that."
	errEditOrder          = "Could not edit order."
	errHasDriver          = "This order already has a driver"
	errTakeOrder          = "Could not update order."
)

type Service struct {
	store storage.Manager
	log   *slog.Logger
}

func NewService(store storage.Manager, log *slog.Logger) *Service {
	return &Service{store: store, log: log}
}

type CreateOrderItemInput struct {
	DishID  int
	Options []models.OrderItemOption
}

type CreateOrderInput struct {
	RestaurantID int
	Items        []CreateOrderItemInput
}

type CreateOrderOutput struct {
	core.Output
	OrderID int
}

type EditOrderInput struct {
	ID     int
	Status models.OrderStatus
}

type OrdersOutput struct {
	core.Output
	Orders []models.Order
}

type OrderOutput struct {
	core.Output
	Order *models.Order
}

// CreateOrder prices every item from the stored dish, never from the
// client, and stores the order with its items atomically.
func (s *Service) CreateOrder(ctx context.Context, customerID int, in CreateOrderInput) (out CreateOrderOutput) {
	defer core.Track("createOrder", &out.Output)
	defer core.Recover(ctx, s.log, "createOrder", &out.Output, errCreateOrder)

	rest, err := s.store.Restaurants().FindByID(ctx, in.RestaurantID)
	if errors.Is(err, storage.ErrNotFound) {
		return CreateOrderOutput{Output: core.NotFound(errRestaurantNotFound)}
	}
	if err != nil {
		return CreateOrderOutput{Output: core.Unexpected(ctx, s.log, "createOrder", err, errCreateOrder)}
	}

	order := &models.Order{
		CustomerID:   &customerID,
		RestaurantID: &rest.ID,
		Status:       models.OrderPending,
	}
	for _, item := range in.Items {
		dish, err := s.store.Dishes().FindByID(ctx, item.DishID)
		if errors.Is(err, storage.ErrNotFound) || (err == nil && dish.RestaurantID != rest.ID) {
			return CreateOrderOutput{Output: core.NotFound(errDishNotFound)}
		}
		if err != nil {
			return CreateOrderOutput{Output: core.Unexpected(ctx, s.log, "createOrder", err, errCreateOrder)}
		}

		price := dish.Price
		options := make([]models.OrderItemOption, 0, len(item.Options))
		for _, opt := range item.Options {
			picked := models.OrderItemOption{Name: opt.Name, Choice: opt.Choice}
			if extra := dish.ExtraFor(opt.Name, opt.Choice); extra != 0 {
				picked.ExtraCharge = &extra
				price += extra
			}
			options = append(options, picked)
		}
		order.Total += float64(price)
		order.Items = append(order.Items, models.OrderItem{DishID: dish.ID, Options: options})
	}

	err = s.store.Transaction(ctx, func(tx storage.Manager) error {
		if err := tx.Orders().Create(ctx, order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		return nil
	})
	if err != nil {
		return CreateOrderOutput{Output: core.Unexpected(ctx, s.log, "createOrder", err, errCreateOrder)}
	}
	s.log.InfoContext(ctx, "order created", "order_id", order.ID, "restaurant_id", rest.ID, "total", order.Total)
	return CreateOrderOutput{Output: core.Success(), OrderID: order.ID}
}

// GetOrders lists the orders the user takes part in: placed by a client,
// assigned to a courier or received by an owner's restaurants.
func (s *Service) GetOrders(ctx context.Context, user *models.User, status *models.OrderStatus) (out OrdersOutput) {
	defer core.Track("getOrders", &out.Output)
	defer core.Recover(ctx, s.log, "getOrders", &out.Output, errGetOrders)

	q := storage.OrderQuery{Status: status}
	switch user.Role {
	case models.RoleClient:
		q.CustomerID = &user.ID
	case models.RoleCourier:
		q.DriverID = &user.ID
	case models.RoleOwner:
		q.OwnerID = &user.ID
	default:
		return OrdersOutput{Output: core.Unexpected(ctx, s.log, "getOrders", fmt.Errorf("unknown role %q", user.Role), errGetOrders)}
	}

	list, err := s.store.Orders().Find(ctx, q)
	if err != nil {
		return OrdersOutput{Output: core.Unexpected(ctx, s.log, "getOrders", err, errGetOrders)}
	}
	return OrdersOutput{Output: core.Success(), Orders: list}
}

func canSeeOrder(user *models.User, o *models.Order) bool {
	switch user.Role {
	case models.RoleClient:
		return o.CustomerID != nil && *o.CustomerID == user.ID
	case models.RoleCourier:
		return o.DriverID != nil && *o.DriverID == user.ID
	case models.RoleOwner:
		return o.Restaurant != nil && o.Restaurant.OwnerID == user.ID
	}
	return false
}

func canSetStatus(role models.Role, status models.OrderStatus) bool {
	switch role {
	case models.RoleOwner:
		return status == models.OrderCooking || status == models.OrderCooked
	case models.RoleCourier:
		return status == models.OrderPickedUp || status == models.OrderDelivered
	}
	return false
}

func (s *Service) loadVisible(ctx context.Context, op string, user *models.User, id int, unexpected string) (*models.Order, *core.Output) {
	o, err := s.store.Orders().FindByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		out := core.NotFound(errOrderNotFound)
		return nil, &out
	}
	if err != nil {
		out := core.Unexpected(ctx, s.log, op, err, unexpected)
		return nil, &out
	}
	if !canSeeOrder(user, o) {
		out := core.Unauthorized(errCantSee)
		return nil, &out
	}
	return o, nil
}

func (s *Service) GetOrder(ctx context.Context, user *models.User, id int) (out OrderOutput) {
	defer core.Track("getOrder", &out.Output)
	defer core.Recover(ctx, s.log, "getOrder", &out.Output, errLoadOrder)

	o, fail := s.loadVisible(ctx, "getOrder", user, id, errLoadOrder)
	if fail != nil {
		return OrderOutput{Output: *fail}
	}
	return OrderOutput{Output: core.Success(), Order: o}
}

func (s *Service) EditOrder(ctx context.Context, user *models.User, in EditOrderInput) (out core.Output) {
	defer core.Track("editOrder", &out)
	defer core.Recover(ctx, s.log, "editOrder", &out, errEditOrder)

	o, fail := s.loadVisible(ctx, "editOrder", user, in.ID, errEditOrder)
	if fail != nil {
		return *fail
	}
	if !canSetStatus(user.Role, in.Status) {
		return core.Unauthorized(errCantEdit)
	}

	if err := s.store.Orders().UpdateStatus(ctx, o.ID, in.Status); err != nil {
		return core.Unexpected(ctx, s.log, "editOrder", err, errEditOrder)
	}
	return core.Success()
}

// TakeOrder assigns the courier to an order that has no driver yet.
func (s *Service) TakeOrder(ctx context.Context, courier *models.User, id int) (out core.Output) {
	defer core.Track("takeOrder", &out)
	defer core.Recover(ctx, s.log, "takeOrder", &out, errTakeOrder)

	o, err := s.store.Orders().FindByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return core.NotFound(errOrderNotFound)
	}
	if err != nil {
		return core.Unexpected(ctx, s.log, "takeOrder", err, errTakeOrder)
	}
	if o.DriverID != nil {
		return core.Conflict(errHasDriver)
	}

	err = s.store.Orders().AssignDriver(ctx, o.ID, courier.ID)
	if errors.Is(err, storage.ErrConflict) {
		return core.Conflict(errHasDriver)
	}
	if errors.Is(err, storage.ErrNotFound) {
		return core.NotFound(errOrderNotFound)
	}
	if err != nil {
		return core.Unexpected(ctx, s.log, "takeOrder", err, errTakeOrder)
	}
	return core.Success()
}
