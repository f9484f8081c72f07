package graph

// This file will be automatically regenerated based on the schema, any resolver implementations
// will be copied through when generating and any unknown code will be moved to the end.

import (
	"context"

	"eats-backend/graph/model"
	"eats-backend/internal/app/orders"
	"eats-backend/internal/app/payments"
	"eats-backend/internal/app/restaurants"
	"eats-backend/internal/app/users"
	"eats-backend/internal/models"
)

// RestaurantCount is the resolver for the restaurantCount field.
func (r *categoryResolver) RestaurantCount(ctx context.Context, obj *model.Category) (int, error) {
	return r.Catalog.CountRestaurants(ctx, obj.ID)
}

// CreateAccount is the resolver for the createAccount field.
func (r *mutationResolver) CreateAccount(ctx context.Context, input model.CreateAccountInput) (*model.CreateAccountOutput, error) {
	out := r.Users.CreateAccount(ctx, users.CreateAccountInput{
		Email:    input.Email,
		Password: input.Password,
		Role:     models.Role(input.Role),
	})
	return &model.CreateAccountOutput{Ok: out.OK, Error: stringPtrOrNil(out.Error)}, nil
}

// Login is the resolver for the login field.
func (r *mutationResolver) Login(ctx context.Context, input model.LoginInput) (*model.LoginOutput, error) {
	out := r.Users.Login(ctx, users.LoginInput{Email: input.Email, Password: input.Password})
	return &model.LoginOutput{
		Ok:    out.OK,
		Error: stringPtrOrNil(out.Error),
		Token: stringPtrOrNil(out.Token),
	}, nil
}

// EditProfile is the resolver for the editProfile field.
func (r *mutationResolver) EditProfile(ctx context.Context, input model.EditProfileInput) (*model.EditProfileOutput, error) {
	user, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	out := r.Users.EditProfile(ctx, user.ID, users.EditProfileInput{Email: input.Email, Password: input.Password})
	return &model.EditProfileOutput{Ok: out.OK, Error: stringPtrOrNil(out.Error)}, nil
}

// VerifyEmail is the resolver for the verifyEmail field.
func (r *mutationResolver) VerifyEmail(ctx context.Context, input model.VerifyEmailInput) (*model.VerifyEmailOutput, error) {
	out := r.Users.VerifyEmail(ctx, input.Code)
	return &model.VerifyEmailOutput{Ok: out.OK, Error: stringPtrOrNil(out.Error)}, nil
}

// CreateRestaurant is the resolver for the createRestaurant field.
func (r *mutationResolver) CreateRestaurant(ctx context.Context, input model.CreateRestaurantInput) (*model.CreateRestaurantOutput, error) {
	owner, err := requireUser(ctx, models.RoleOwner)
	if err != nil {
		return nil, err
	}
	out := r.Catalog.CreateRestaurant(ctx, owner.ID, restaurants.CreateRestaurantInput{
		Name:         input.Name,
		CoverImg:     input.CoverImg,
		Address:      input.Address,
		CategoryName: input.CategoryName,
	})
	return &model.CreateRestaurantOutput{
		Ok:           out.OK,
		Error:        stringPtrOrNil(out.Error),
		RestaurantID: intPtrIf(out.OK, out.RestaurantID),
	}, nil
}

// EditRestaurant is the resolver for the editRestaurant field.
func (r *mutationResolver) EditRestaurant(ctx context.Context, input model.EditRestaurantInput) (*model.EditRestaurantOutput, error) {
	owner, err := requireUser(ctx, models.RoleOwner)
	if err != nil {
		return nil, err
	}
	out := r.Catalog.EditRestaurant(ctx, owner.ID, restaurants.EditRestaurantInput{
		RestaurantID: input.RestaurantID,
		Name:         input.Name,
		CoverImg:     input.CoverImg,
		Address:      input.Address,
		CategoryName: input.CategoryName,
	})
	return &model.EditRestaurantOutput{Ok: out.OK, Error: stringPtrOrNil(out.Error)}, nil
}

// DeleteRestaurant is the resolver for the deleteRestaurant field.
func (r *mutationResolver) DeleteRestaurant(ctx context.Context, input model.DeleteRestaurantInput) (*model.DeleteRestaurantOutput, error) {
	owner, err := requireUser(ctx, models.RoleOwner)
	if err != nil {
		return nil, err
	}
	out := r.Catalog.DeleteRestaurant(ctx, owner.ID, input.RestaurantID)
	return &model.DeleteRestaurantOutput{Ok: out.OK, Error: stringPtrOrNil(out.Error)}, nil
}

// CreateDish is the resolver for the createDish field.
func (r *mutationResolver) CreateDish(ctx context.Context, input model.CreateDishInput) (*model.CreateDishOutput, error) {
	owner, err := requireUser(ctx, models.RoleOwner)
	if err != nil {
		return nil, err
	}
	out := r.Catalog.CreateDish(ctx, owner.ID, fromCreateDish(input))
	return &model.CreateDishOutput{Ok: out.OK, Error: stringPtrOrNil(out.Error)}, nil
}

// EditDish is the resolver for the editDish field.
func (r *mutationResolver) EditDish(ctx context.Context, input model.EditDishInput) (*model.EditDishOutput, error) {
	owner, err := requireUser(ctx, models.RoleOwner)
	if err != nil {
		return nil, err
	}
	out := r.Catalog.EditDish(ctx, owner.ID, fromEditDish(input))
	return &model.EditDishOutput{Ok: out.OK, Error: stringPtrOrNil(out.Error)}, nil
}

// DeleteDish is the resolver for the deleteDish field.
func (r *mutationResolver) DeleteDish(ctx context.Context, input model.DeleteDishInput) (*model.DeleteDishOutput, error) {
	owner, err := requireUser(ctx, models.RoleOwner)
	if err != nil {
		return nil, err
	}
	out := r.Catalog.DeleteDish(ctx, owner.ID, input.DishID)
	return &model.DeleteDishOutput{Ok: out.OK, Error: stringPtrOrNil(out.Error)}, nil
}

// CreateOrder is the resolver for the createOrder field.
func (r *mutationResolver) CreateOrder(ctx context.Context, input model.CreateOrderInput) (*model.CreateOrderOutput, error) {
	client, err := requireUser(ctx, models.RoleClient)
	if err != nil {
		return nil, err
	}
	out := r.Orders.CreateOrder(ctx, client.ID, fromCreateOrder(input))
	return &model.CreateOrderOutput{
		Ok:      out.OK,
		Error:   stringPtrOrNil(out.Error),
		OrderID: intPtrIf(out.OK, out.OrderID),
	}, nil
}

// EditOrder is the resolver for the editOrder field.
func (r *mutationResolver) EditOrder(ctx context.Context, input model.EditOrderInput) (*model.EditOrderOutput, error) {
	user, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	out := r.Orders.EditOrder(ctx, user, orders.EditOrderInput{ID: input.ID, Status: models.OrderStatus(input.Status)})
	return &model.EditOrderOutput{Ok: out.OK, Error: stringPtrOrNil(out.Error)}, nil
}

// TakeOrder is the resolver for the takeOrder field.
func (r *mutationResolver) TakeOrder(ctx context.Context, input model.TakeOrderInput) (*model.TakeOrderOutput, error) {
	courier, err := requireUser(ctx, models.RoleCourier)
	if err != nil {
		return nil, err
	}
	out := r.Orders.TakeOrder(ctx, courier, input.ID)
	return &model.TakeOrderOutput{Ok: out.OK, Error: stringPtrOrNil(out.Error)}, nil
}

// CreatePayment is the resolver for the createPayment field.
func (r *mutationResolver) CreatePayment(ctx context.Context, input model.CreatePaymentInput) (*model.CreatePaymentOutput, error) {
	owner, err := requireUser(ctx, models.RoleOwner)
	if err != nil {
		return nil, err
	}
	out := r.Payments.CreatePayment(ctx, owner.ID, payments.CreatePaymentInput{
		TransactionID: input.TransactionID,
		RestaurantID:  input.RestaurantID,
	})
	return &model.CreatePaymentOutput{Ok: out.OK, Error: stringPtrOrNil(out.Error)}, nil
}

// Me is the resolver for the me field.
func (r *queryResolver) Me(ctx context.Context) (*model.User, error) {
	user, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	return toUser(user), nil
}

// UserProfile is the resolver for the userProfile field.
func (r *queryResolver) UserProfile(ctx context.Context, userID int) (*model.UserProfileOutput, error) {
	if _, err := requireUser(ctx); err != nil {
		return nil, err
	}
	out := r.Users.FindByID(ctx, userID)
	return &model.UserProfileOutput{Ok: out.OK, Error: stringPtrOrNil(out.Error), User: toUser(out.User)}, nil
}

// MyRestaurants is the resolver for the myRestaurants field.
func (r *queryResolver) MyRestaurants(ctx context.Context) (*model.MyRestaurantsOutput, error) {
	owner, err := requireUser(ctx, models.RoleOwner)
	if err != nil {
		return nil, err
	}
	out := r.Catalog.MyRestaurants(ctx, owner.ID)
	res := &model.MyRestaurantsOutput{Ok: out.OK, Error: stringPtrOrNil(out.Error)}
	if out.OK {
		res.Restaurants = toRestaurants(out.Restaurants)
	}
	return res, nil
}

// MyRestaurant is the resolver for the myRestaurant field.
func (r *queryResolver) MyRestaurant(ctx context.Context, input model.MyRestaurantInput) (*model.MyRestaurantOutput, error) {
	owner, err := requireUser(ctx, models.RoleOwner)
	if err != nil {
		return nil, err
	}
	out := r.Catalog.MyRestaurant(ctx, owner.ID, input.ID)
	return &model.MyRestaurantOutput{
		Ok:         out.OK,
		Error:      stringPtrOrNil(out.Error),
		Restaurant: toRestaurant(out.Restaurant),
	}, nil
}

// AllCategories is the resolver for the allCategories field.
func (r *queryResolver) AllCategories(ctx context.Context) (*model.AllCategoriesOutput, error) {
	out := r.Catalog.AllCategories(ctx)
	res := &model.AllCategoriesOutput{Ok: out.OK, Error: stringPtrOrNil(out.Error)}
	if out.OK {
		res.Categories = toCategories(out.Categories)
	}
	return res, nil
}

// Category is the resolver for the category field.
func (r *queryResolver) Category(ctx context.Context, input model.CategoryInput) (*model.CategoryOutput, error) {
	out := r.Catalog.FindCategoryBySlug(ctx, input.Slug, pageOrFirst(input.Page))
	res := &model.CategoryOutput{Ok: out.OK, Error: stringPtrOrNil(out.Error)}
	if out.OK {
		res.TotalPages = &out.TotalPages
		res.TotalResults = &out.TotalResults
		res.Category = toCategory(out.Category)
		res.Restaurants = toRestaurants(out.Restaurants)
	}
	return res, nil
}

// Restaurants is the resolver for the restaurants field.
func (r *queryResolver) Restaurants(ctx context.Context, input model.RestaurantsInput) (*model.RestaurantsOutput, error) {
	out := r.Catalog.AllRestaurants(ctx, pageOrFirst(input.Page))
	res := &model.RestaurantsOutput{Ok: out.OK, Error: stringPtrOrNil(out.Error)}
	if out.OK {
		res.TotalPages = &out.TotalPages
		res.TotalResults = &out.TotalResults
		res.Results = toRestaurants(out.Restaurants)
	}
	return res, nil
}

// Restaurant is the resolver for the restaurant field.
func (r *queryResolver) Restaurant(ctx context.Context, input model.RestaurantInput) (*model.RestaurantOutput, error) {
	out := r.Catalog.FindRestaurantByID(ctx, input.RestaurantID)
	return &model.RestaurantOutput{
		Ok:         out.OK,
		Error:      stringPtrOrNil(out.Error),
		Restaurant: toRestaurant(out.Restaurant),
	}, nil
}

// SearchRestaurant is the resolver for the searchRestaurant field.
func (r *queryResolver) SearchRestaurant(ctx context.Context, input model.SearchRestaurantInput) (*model.SearchRestaurantOutput, error) {
	out := r.Catalog.SearchRestaurantByName(ctx, input.Query, pageOrFirst(input.Page))
	res := &model.SearchRestaurantOutput{Ok: out.OK, Error: stringPtrOrNil(out.Error)}
	if out.OK {
		res.TotalPages = &out.TotalPages
		res.TotalResults = &out.TotalResults
		res.Restaurants = toRestaurants(out.Restaurants)
	}
	return res, nil
}

// GetOrders is the resolver for the getOrders field.
func (r *queryResolver) GetOrders(ctx context.Context, input model.GetOrdersInput) (*model.GetOrdersOutput, error) {
	user, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	var status *models.OrderStatus
	if input.Status != nil {
		s := models.OrderStatus(*input.Status)
		status = &s
	}
	out := r.Orders.GetOrders(ctx, user, status)
	res := &model.GetOrdersOutput{Ok: out.OK, Error: stringPtrOrNil(out.Error)}
	if out.OK {
		res.Orders = toOrders(out.Orders)
	}
	return res, nil
}

// GetOrder is the resolver for the getOrder field.
func (r *queryResolver) GetOrder(ctx context.Context, input model.GetOrderInput) (*model.GetOrderOutput, error) {
	user, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	out := r.Orders.GetOrder(ctx, user, input.ID)
	return &model.GetOrderOutput{Ok: out.OK, Error: stringPtrOrNil(out.Error), Order: toOrder(out.Order)}, nil
}

// GetPayments is the resolver for the getPayments field.
func (r *queryResolver) GetPayments(ctx context.Context) (*model.GetPaymentsOutput, error) {
	owner, err := requireUser(ctx, models.RoleOwner)
	if err != nil {
		return nil, err
	}
	out := r.Payments.GetPayments(ctx, owner.ID)
	res := &model.GetPaymentsOutput{Ok: out.OK, Error: stringPtrOrNil(out.Error)}
	if out.OK {
		res.Payments = toPayments(out.Payments)
	}
	return res, nil
}

// Category returns CategoryResolver implementation.
func (r *Resolver) Category() CategoryResolver { return &categoryResolver{r} }

// Mutation returns MutationResolver implementation.
func (r *Resolver) Mutation() MutationResolver { return &mutationResolver{r} }

// Query returns QueryResolver implementation.
func (r *Resolver) Query() QueryResolver { return &queryResolver{r} }

type categoryResolver struct{ *Resolver }
type mutationResolver struct{ *Resolver }
type queryResolver struct{ *Resolver }
