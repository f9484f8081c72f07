package graph

import (
	"eats-backend/graph/model"
	"eats-backend/internal/app/orders"
	"eats-backend/internal/app/restaurants"
	"eats-backend/internal/models"
)

// ---------------------------------------------------------------------------
// Domain -> GraphQL
// ---------------------------------------------------------------------------

func toUser(u *models.User) *model.User {
	if u == nil {
		return nil
	}
	return &model.User{
		ID:        u.ID,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
		Email:     u.Email,
		Role:      model.UserRole(u.Role),
		Verified:  u.Verified,
	}
}

func toCategory(c *models.Category) *model.Category {
	if c == nil {
		return nil
	}
	return &model.Category{ID: c.ID, Name: c.Name, Slug: c.Slug, CoverImg: c.CoverImg}
}

func toCategories(list []models.Category) []model.Category {
	out := make([]model.Category, 0, len(list))
	for i := range list {
		out = append(out, *toCategory(&list[i]))
	}
	return out
}

func toDishOptions(opts []models.DishOption) []model.DishOption {
	out := make([]model.DishOption, 0, len(opts))
	for _, o := range opts {
		opt := model.DishOption{Name: o.Name, Extra: o.Extra}
		for _, c := range o.Choices {
			opt.Choices = append(opt.Choices, model.DishChoice{Name: c.Name, Extra: c.Extra})
		}
		out = append(out, opt)
	}
	return out
}

func toDish(d *models.Dish) *model.Dish {
	if d == nil {
		return nil
	}
	return &model.Dish{
		ID:          d.ID,
		Name:        d.Name,
		Price:       d.Price,
		Photo:       d.Photo,
		Description: d.Description,
		Options:     toDishOptions(d.Options),
	}
}

func toRestaurant(r *models.Restaurant) *model.Restaurant {
	if r == nil {
		return nil
	}
	out := &model.Restaurant{
		ID:            r.ID,
		Name:          r.Name,
		CoverImg:      r.CoverImg,
		Address:       r.Address,
		Category:      toCategory(r.Category),
		IsPromoted:    r.IsPromoted,
		PromotedUntil: r.PromotedUntil,
		Menu:          make([]model.Dish, 0, len(r.Menu)),
		Orders:        make([]model.Order, 0, len(r.Orders)),
	}
	for i := range r.Menu {
		out.Menu = append(out.Menu, *toDish(&r.Menu[i]))
	}
	for i := range r.Orders {
		out.Orders = append(out.Orders, *toOrder(&r.Orders[i]))
	}
	return out
}

func toRestaurants(list []models.Restaurant) []model.Restaurant {
	out := make([]model.Restaurant, 0, len(list))
	for i := range list {
		out = append(out, *toRestaurant(&list[i]))
	}
	return out
}

func toOrder(o *models.Order) *model.Order {
	if o == nil {
		return nil
	}
	out := &model.Order{
		ID:         o.ID,
		CreatedAt:  o.CreatedAt,
		CustomerID: o.CustomerID,
		DriverID:   o.DriverID,
		Restaurant: toRestaurant(o.Restaurant),
		Items:      make([]model.OrderItem, 0, len(o.Items)),
		Total:      o.Total,
		Status:     model.OrderStatus(o.Status),
	}
	for _, it := range o.Items {
		item := model.OrderItem{ID: it.ID, Dish: toDish(it.Dish), Options: make([]model.OrderItemOption, 0, len(it.Options))}
		for _, opt := range it.Options {
			item.Options = append(item.Options, model.OrderItemOption{Name: opt.Name, Choice: opt.Choice, ExtraCharge: opt.ExtraCharge})
		}
		out.Items = append(out.Items, item)
	}
	return out
}

func toOrders(list []models.Order) []model.Order {
	out := make([]model.Order, 0, len(list))
	for i := range list {
		out = append(out, *toOrder(&list[i]))
	}
	return out
}

func toPayments(list []models.Payment) []model.Payment {
	out := make([]model.Payment, 0, len(list))
	for _, p := range list {
		out = append(out, model.Payment{
			ID:            p.ID,
			CreatedAt:     p.CreatedAt,
			TransactionID: p.TransactionID,
			RestaurantID:  p.RestaurantID,
			Restaurant:    toRestaurant(p.Restaurant),
		})
	}
	return out
}

// ---------------------------------------------------------------------------
// GraphQL -> domain
// ---------------------------------------------------------------------------

// fromDishOptions keeps nil as nil so edits can tell "unchanged" from
// "cleared".
func fromDishOptions(in []model.DishOptionInput) []models.DishOption {
	if in == nil {
		return nil
	}
	out := make([]models.DishOption, 0, len(in))
	for _, o := range in {
		opt := models.DishOption{Name: o.Name, Extra: o.Extra}
		for _, c := range o.Choices {
			opt.Choices = append(opt.Choices, models.DishChoice{Name: c.Name, Extra: c.Extra})
		}
		out = append(out, opt)
	}
	return out
}

func fromCreateDish(in model.CreateDishInput) restaurants.CreateDishInput {
	return restaurants.CreateDishInput{
		RestaurantID: in.RestaurantID,
		Name:         in.Name,
		Price:        in.Price,
		Photo:        in.Photo,
		Description:  in.Description,
		Options:      fromDishOptions(in.Options),
	}
}

func fromEditDish(in model.EditDishInput) restaurants.EditDishInput {
	return restaurants.EditDishInput{
		DishID:      in.DishID,
		Name:        in.Name,
		Price:       in.Price,
		Photo:       in.Photo,
		Description: in.Description,
		Options:     fromDishOptions(in.Options),
	}
}

func fromCreateOrder(in model.CreateOrderInput) orders.CreateOrderInput {
	out := orders.CreateOrderInput{RestaurantID: in.RestaurantID}
	for _, it := range in.Items {
		item := orders.CreateOrderItemInput{DishID: it.DishID}
		for _, o := range it.Options {
			item.Options = append(item.Options, models.OrderItemOption{Name: o.Name, Choice: o.Choice})
		}
		out.Items = append(out.Items, item)
	}
	return out
}
