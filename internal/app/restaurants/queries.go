package restaurants

import (
	"context"
	"errors"

	"eats-backend/internal/app/core"
	"eats-backend/internal/storage"
)

func (s *Service) MyRestaurants(ctx context.Context, ownerID int) (out RestaurantsOutput) {
	defer core.Track("myRestaurants", &out.Output)
	defer core.Recover(ctx, s.log, "myRestaurants", &out.Output, errLoadRestaurants)

	list, _, err := s.store.Restaurants().Find(ctx, storage.RestaurantQuery{OwnerID: &ownerID})
	if err != nil {
		return RestaurantsOutput{Output: core.Unexpected(ctx, s.log, "myRestaurants", err, errLoadRestaurants)}
	}
	return RestaurantsOutput{Output: core.Success(), Restaurants: list}
}

// MyRestaurant loads one of the owner's restaurants with its menu and
// orders. Restaurants of other owners are reported as missing.
func (s *Service) MyRestaurant(ctx context.Context, ownerID, id int) (out RestaurantOutput) {
	defer core.Track("myRestaurant", &out.Output)
	defer core.Recover(ctx, s.log, "myRestaurant", &out.Output, errFindRestaurant)

	rest, err := s.store.Restaurants().FindByID(ctx, id, storage.RelationMenu, storage.RelationOrders)
	if errors.Is(err, storage.ErrNotFound) || (err == nil && rest.OwnerID != ownerID) {
		return RestaurantOutput{Output: core.NotFound(errRestaurantNotFound)}
	}
	if err != nil {
		return RestaurantOutput{Output: core.Unexpected(ctx, s.log, "myRestaurant", err, errFindRestaurant)}
	}
	return RestaurantOutput{Output: core.Success(), Restaurant: rest}
}

func (s *Service) AllCategories(ctx context.Context) (out CategoriesOutput) {
	defer core.Track("allCategories", &out.Output)
	defer core.Recover(ctx, s.log, "allCategories", &out.Output, errLoadCategories)

	list, err := s.store.Categories().FindAll(ctx)
	if err != nil {
		return CategoriesOutput{Output: core.Unexpected(ctx, s.log, "allCategories", err, errLoadCategories)}
	}
	return CategoriesOutput{Output: core.Success(), Categories: list}
}

// CountRestaurants backs the restaurantCount field of a category.
func (s *Service) CountRestaurants(ctx context.Context, categoryID int) (int, error) {
	return s.store.Restaurants().Count(ctx, storage.RestaurantQuery{CategoryID: &categoryID})
}

func (s *Service) FindCategoryBySlug(ctx context.Context, slug string, page int) (out CategoryOutput) {
	defer core.Track("category", &out.Output)
	defer core.Recover(ctx, s.log, "category", &out.Output, errLoadCategory)

	category, err := s.store.Categories().FindBySlug(ctx, slug)
	if errors.Is(err, storage.ErrNotFound) {
		return CategoryOutput{Output: core.NotFound(errCategoryMissing)}
	}
	if err != nil {
		return CategoryOutput{Output: core.Unexpected(ctx, s.log, "category", err, errLoadCategory)}
	}

	list, total, err := s.store.Restaurants().Find(ctx, storage.RestaurantQuery{
		CategoryID:    &category.ID,
		Offset:        core.Offset(page, core.CategoryPageSize),
		Limit:         core.CategoryPageSize,
		PromotedFirst: true,
	})
	if err != nil {
		return CategoryOutput{Output: core.Unexpected(ctx, s.log, "category", err, errLoadCategory)}
	}
	return CategoryOutput{
		Output:           core.Success(),
		PaginationOutput: core.NewPagination(total, core.CategoryPageSize),
		Category:         category,
		Restaurants:      list,
	}
}

func (s *Service) AllRestaurants(ctx context.Context, page int) (out PagedRestaurantsOutput) {
	defer core.Track("restaurants", &out.Output)
	defer core.Recover(ctx, s.log, "restaurants", &out.Output, errLoadRestaurants)

	return s.page(ctx, "restaurants", storage.RestaurantQuery{}, page, core.RestaurantsPageSize, errLoadRestaurants)
}

// SearchRestaurantByName matches names case-insensitively by substring.
func (s *Service) SearchRestaurantByName(ctx context.Context, query string, page int) (out PagedRestaurantsOutput) {
	defer core.Track("searchRestaurant", &out.Output)
	defer core.Recover(ctx, s.log, "searchRestaurant", &out.Output, errSearch)

	return s.page(ctx, "searchRestaurant", storage.RestaurantQuery{NameContains: query}, page, core.SearchPageSize, errSearch)
}

func (s *Service) page(ctx context.Context, op string, q storage.RestaurantQuery, page, size int, unexpected string) PagedRestaurantsOutput {
	q.Offset = core.Offset(page, size)
	q.Limit = size
	q.PromotedFirst = true

	list, total, err := s.store.Restaurants().Find(ctx, q)
	if err != nil {
		return PagedRestaurantsOutput{Output: core.Unexpected(ctx, s.log, op, err, unexpected)}
	}
	return PagedRestaurantsOutput{
		Output:           core.Success(),
		PaginationOutput: core.NewPagination(total, size),
		Restaurants:      list,
	}
}

func (s *Service) FindRestaurantByID(ctx context.Context, id int) (out RestaurantOutput) {
	defer core.Track("restaurant", &out.Output)
	defer core.Recover(ctx, s.log, "restaurant", &out.Output, errLoadRestaurant)

	rest, err := s.store.Restaurants().FindByID(ctx, id, storage.RelationMenu)
	if errors.Is(err, storage.ErrNotFound) {
		return RestaurantOutput{Output: core.NotFound(errRestaurantNotFound)}
	}
	if err != nil {
		return RestaurantOutput{Output: core.Unexpected(ctx, s.log, "restaurant", err, errLoadRestaurant)}
	}
	return RestaurantOutput{Output: core.Success(), Restaurant: rest}
}
