// Package restaurants manages restaurants, their dishes and the category
// catalog. Every mutation loads its target, checks that the caller owns it
// and only then writes.
package restaurants

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
	errEditNotOwner       = "You can't edit restaurant that you don't own."
	errDeleteNotOwner     = "You can't delete restaurant that you don't own."
	errCreateRestaurant   = "Could not create restaurant."
	errEditRestaurant     = "Could not edit restaurant."
	errDeleteRestaurant   = "Could not delete restaurant."

	errDishNotFound       = "Dish not found"
	errCreateDishNotOwner = "You can create dishes only in your own restaurant."
	errEditDishNotOwner   = "You can edit dish only in your own restaurant."
	errDeleteDishNotOwner = "You can delete dish only in your own restaurant."
	errCreateDish         = "Could not create dish."
	errEditDish           = "Could not edit dish."
	errDeleteDish         = "Could not delete dish."

	errLoadRestaurants = "Could not load restaurants"
	errFindRestaurant  = "Could not find restaurant."
	errLoadCategories  = "Could not load categories."
	errCategoryMissing = "Category not found"
	errLoadCategory    = "Could not load category."
	errLoadRestaurant  = "Could not load restaurant."
	errSearch          = "Could not find results"
)

type Service struct {
	store storage.Manager
	log   *slog.Logger
}

func NewService(store storage.Manager, log *slog.Logger) *Service {
	return &Service{store: store, log: log}
}

type CreateRestaurantInput struct {
	Name         string
	CoverImg     string
	Address      string
	CategoryName string
}

type CreateRestaurantOutput struct {
	core.Output
	RestaurantID int
}

// EditRestaurantInput fields left nil are not changed.
type EditRestaurantInput struct {
	RestaurantID int
	Name         *string
	CoverImg     *string
	Address      *string
	CategoryName *string
}

type CreateDishInput struct {
	RestaurantID int
	Name         string
	Price        int
	Photo        *string
	Description  string
	Options      []models.DishOption
}

// EditDishInput fields left nil are not changed.
type EditDishInput struct {
	DishID      int
	Name        *string
	Price       *int
	Photo       *string
	Description *string
	Options     []models.DishOption
}

type RestaurantOutput struct {
	core.Output
	Restaurant *models.Restaurant
}

type RestaurantsOutput struct {
	core.Output
	Restaurants []models.Restaurant
}

type PagedRestaurantsOutput struct {
	core.Output
	core.PaginationOutput
	Restaurants []models.Restaurant
}

type CategoriesOutput struct {
	core.Output
	Categories []models.Category
}

type CategoryOutput struct {
	core.Output
	core.PaginationOutput
	Category    *models.Category
	Restaurants []models.Restaurant
}

// ---------------------------------------------------------------------------
// Restaurant mutations
// ---------------------------------------------------------------------------

func (s *Service) CreateRestaurant(ctx context.Context, ownerID int, in CreateRestaurantInput) (out CreateRestaurantOutput) {
	defer core.Track("createRestaurant", &out.Output)
	defer core.Recover(ctx, s.log, "createRestaurant", &out.Output, errCreateRestaurant)

	rest := &models.Restaurant{
		Name:     in.Name,
		CoverImg: in.CoverImg,
		Address:  in.Address,
		OwnerID:  ownerID,
	}
	err := s.store.Transaction(ctx, func(tx storage.Manager) error {
		if in.CategoryName != "" {
			c, err := getOrCreateCategory(ctx, tx.Categories(), in.CategoryName)
			if err != nil {
				return err
			}
			rest.CategoryID = &c.ID
		}
		if err := tx.Restaurants().Create(ctx, rest); err != nil {
			return fmt.Errorf("create restaurant: %w", err)
		}
		return nil
	})
	if err != nil {
		return CreateRestaurantOutput{Output: core.Unexpected(ctx, s.log, "createRestaurant", err, errCreateRestaurant)}
	}
	return CreateRestaurantOutput{Output: core.Success(), RestaurantID: rest.ID}
}

// ownedRestaurant loads a restaurant and checks that ownerID owns it. A
// non-nil Output means the caller must stop and return it.
func (s *Service) ownedRestaurant(ctx context.Context, op string, ownerID, id int, notOwner, unexpected string) (*models.Restaurant, *core.Output) {
	rest, err := s.store.Restaurants().FindByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		out := core.NotFound(errRestaurantNotFound)
		return nil, &out
	}
	if err != nil {
		out := core.Unexpected(ctx, s.log, op, err, unexpected)
		return nil, &out
	}
	if rest.OwnerID != ownerID {
		out := core.Unauthorized(notOwner)
		return nil, &out
	}
	return rest, nil
}

func (s *Service) EditRestaurant(ctx context.Context, ownerID int, in EditRestaurantInput) (out core.Output) {
	defer core.Track("editRestaurant", &out)
	defer core.Recover(ctx, s.log, "editRestaurant", &out, errEditRestaurant)

	rest, fail := s.ownedRestaurant(ctx, "editRestaurant", ownerID, in.RestaurantID, errEditNotOwner, errEditRestaurant)
	if fail != nil {
		return *fail
	}

	if in.Name != nil {
		rest.Name = *in.Name
	}
	if in.CoverImg != nil {
		rest.CoverImg = *in.CoverImg
	}
	if in.Address != nil {
		rest.Address = *in.Address
	}
	err := s.store.Transaction(ctx, func(tx storage.Manager) error {
		if in.CategoryName != nil && *in.CategoryName != "" {
			c, err := getOrCreateCategory(ctx, tx.Categories(), *in.CategoryName)
			if err != nil {
				return err
			}
			rest.CategoryID = &c.ID
			rest.Category = c
		}
		if err := tx.Restaurants().Save(ctx, rest); err != nil {
			return fmt.Errorf("save restaurant: %w", err)
		}
		return nil
	})
	if err != nil {
		return core.Unexpected(ctx, s.log, "editRestaurant", err, errEditRestaurant)
	}
	return core.Success()
}

func (s *Service) DeleteRestaurant(ctx context.Context, ownerID, restaurantID int) (out core.Output) {
	defer core.Track("deleteRestaurant", &out)
	defer core.Recover(ctx, s.log, "deleteRestaurant", &out, errDeleteRestaurant)

	rest, fail := s.ownedRestaurant(ctx, "deleteRestaurant", ownerID, restaurantID, errDeleteNotOwner, errDeleteRestaurant)
	if fail != nil {
		return *fail
	}
	if err := s.store.Restaurants().Delete(ctx, rest.ID); err != nil {
		return core.Unexpected(ctx, s.log, "deleteRestaurant", err, errDeleteRestaurant)
	}
	return core.Success()
}

// ---------------------------------------------------------------------------
// Dish mutations
// ---------------------------------------------------------------------------

func (s *Service) CreateDish(ctx context.Context, ownerID int, in CreateDishInput) (out core.Output) {
	defer core.Track("createDish", &out)
	defer core.Recover(ctx, s.log, "createDish", &out, errCreateDish)

	rest, fail := s.ownedRestaurant(ctx, "createDish", ownerID, in.RestaurantID, errCreateDishNotOwner, errCreateDish)
	if fail != nil {
		return *fail
	}

	dish := &models.Dish{
		Name:         in.Name,
		Price:        in.Price,
		Photo:        in.Photo,
		Description:  in.Description,
		RestaurantID: rest.ID,
		Options:      in.Options,
	}
	if err := s.store.Dishes().Create(ctx, dish); err != nil {
		return core.Unexpected(ctx, s.log, "createDish", err, errCreateDish)
	}
	return core.Success()
}

func (s *Service) ownedDish(ctx context.Context, op string, ownerID, id int, notOwner, unexpected string) (*models.Dish, *core.Output) {
	dish, err := s.store.Dishes().FindByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		out := core.NotFound(errDishNotFound)
		return nil, &out
	}
	if err != nil {
		out := core.Unexpected(ctx, s.log, op, err, unexpected)
		return nil, &out
	}
	if dish.Restaurant == nil || dish.Restaurant.OwnerID != ownerID {
		out := core.Unauthorized(notOwner)
		return nil, &out
	}
	return dish, nil
}

func (s *Service) EditDish(ctx context.Context, ownerID int, in EditDishInput) (out core.Output) {
	defer core.Track("editDish", &out)
	defer core.Recover(ctx, s.log, "editDish", &out, errEditDish)

	dish, fail := s.ownedDish(ctx, "editDish", ownerID, in.DishID, errEditDishNotOwner, errEditDish)
	if fail != nil {
		return *fail
	}

	if in.Name != nil {
		dish.Name = *in.Name
	}
	if in.Price != nil {
		dish.Price = *in.Price
	}
	if in.Photo != nil {
		dish.Photo = in.Photo
	}
	if in.Description != nil {
		dish.Description = *in.Description
	}
	if in.Options != nil {
		dish.Options = in.Options
	}
	if err := s.store.Dishes().Save(ctx, dish); err != nil {
		return core.Unexpected(ctx, s.log, "editDish", err, errEditDish)
	}
	return core.Success()
}

func (s *Service) DeleteDish(ctx context.Context, ownerID, dishID int) (out core.Output) {
	defer core.Track("deleteDish", &out)
	defer core.Recover(ctx, s.log, "deleteDish", &out, errDeleteDish)

	dish, fail := s.ownedDish(ctx, "deleteDish", ownerID, dishID, errDeleteDishNotOwner, errDeleteDish)
	if fail != nil {
		return *fail
	}
	if err := s.store.Dishes().Delete(ctx, dish.ID); err != nil {
		return core.Unexpected(ctx, s.log, "deleteDish", err, errDeleteDish)
	}
	return core.Success()
}
