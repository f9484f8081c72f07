package restaurants

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"eats-backend/internal/models"
	"eats-backend/internal/storage"
	"eats-backend/internal/storage/memory"
)

const (
	ownerID    = 1
	strangerID = 2
)

func newSvc(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	store := memory.New()
	return NewService(store, slog.New(slog.NewTextHandler(io.Discard, nil))), store
}

func seedRestaurant(t *testing.T, svc *Service, name, category string) int {
	t.Helper()
	out := svc.CreateRestaurant(context.Background(), ownerID, CreateRestaurantInput{
		Name: name, CoverImg: "https://img/" + name, Address: "Main st", CategoryName: category,
	})
	if !out.OK || out.RestaurantID == 0 {
		t.Fatalf("CreateRestaurant(%s): %+v", name, out)
	}
	return out.RestaurantID
}

func seedDish(t *testing.T, svc *Service, store *memory.Store, restaurantID int) int {
	t.Helper()
	out := svc.CreateDish(context.Background(), ownerID, CreateDishInput{
		RestaurantID: restaurantID, Name: "Pizza", Price: 12, Description: "cheese",
	})
	if !out.OK {
		t.Fatalf("CreateDish: %+v", out)
	}
	rest, err := store.Restaurants().FindByID(context.Background(), restaurantID, storage.RelationMenu)
	if err != nil || len(rest.Menu) == 0 {
		t.Fatalf("dish not stored: %v", err)
	}
	return rest.Menu[len(rest.Menu)-1].ID
}

func ptr[T any](v T) *T { return &v }

func TestCategorySlug(t *testing.T) {
	name, slug := CategorySlug("  Korean BBQ ")
	if name != "korean bbq" || slug != "korean-bbq" {
		t.Fatalf("got %q %q", name, slug)
	}
}

func TestCreateRestaurant_ReusesCategoryBySlug(t *testing.T) {
	svc, store := newSvc(t)
	a := seedRestaurant(t, svc, "A", "Korean BBQ")
	b := seedRestaurant(t, svc, "B", "korean bbq ")

	ra, _ := store.Restaurants().FindByID(context.Background(), a)
	rb, _ := store.Restaurants().FindByID(context.Background(), b)
	if ra.CategoryID == nil || rb.CategoryID == nil || *ra.CategoryID != *rb.CategoryID {
		t.Fatalf("categories differ: %v %v", ra.CategoryID, rb.CategoryID)
	}
	cats, _ := store.Categories().FindAll(context.Background())
	if len(cats) != 1 || cats[0].Slug != "korean-bbq" {
		t.Fatalf("categories = %+v", cats)
	}
}

func TestCreateRestaurant_StoreFailure(t *testing.T) {
	svc, store := newSvc(t)
	store.FailOn("Restaurants.Create", errors.New("boom"))

	out := svc.CreateRestaurant(context.Background(), ownerID, CreateRestaurantInput{Name: "A", CategoryName: "Fresh"})
	if out.OK || out.Error != errCreateRestaurant {
		t.Fatalf("got %+v", out)
	}
	cats, _ := store.Categories().FindAll(context.Background())
	if len(cats) != 0 {
		t.Errorf("category creation must roll back, got %+v", cats)
	}
}

// Ownership checks run before any write and leave the store untouched.
func TestOwnership(t *testing.T) {
	svc, store := newSvc(t)
	ctx := context.Background()
	restID := seedRestaurant(t, svc, "A", "Pizza")
	dishID := seedDish(t, svc, store, restID)

	cases := []struct {
		name string
		call func() (bool, string)
		want string
	}{
		{"edit restaurant", func() (bool, string) {
			o := svc.EditRestaurant(ctx, strangerID, EditRestaurantInput{RestaurantID: restID, Name: ptr("X")})
			return o.OK, o.Error
		}, errEditNotOwner},
		{"delete restaurant", func() (bool, string) {
			o := svc.DeleteRestaurant(ctx, strangerID, restID)
			return o.OK, o.Error
		}, errDeleteNotOwner},
		{"create dish", func() (bool, string) {
			o := svc.CreateDish(ctx, strangerID, CreateDishInput{RestaurantID: restID, Name: "X"})
			return o.OK, o.Error
		}, errCreateDishNotOwner},
		{"edit dish", func() (bool, string) {
			o := svc.EditDish(ctx, strangerID, EditDishInput{DishID: dishID, Price: ptr(1)})
			return o.OK, o.Error
		}, errEditDishNotOwner},
		{"delete dish", func() (bool, string) {
			o := svc.DeleteDish(ctx, strangerID, dishID)
			return o.OK, o.Error
		}, errDeleteDishNotOwner},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			writes := store.Writes()
			ok, msg := tc.call()
			if ok || msg != tc.want {
				t.Fatalf("got ok=%v error=%q, want %q", ok, msg, tc.want)
			}
			if store.Writes() != writes {
				t.Errorf("write performed on ownership mismatch")
			}
		})
	}
}

func TestNotFound(t *testing.T) {
	svc, _ := newSvc(t)
	ctx := context.Background()

	checks := map[string]struct {
		got  string
		want string
	}{
		"edit restaurant":   {svc.EditRestaurant(ctx, ownerID, EditRestaurantInput{RestaurantID: 9}).Error, errRestaurantNotFound},
		"delete restaurant": {svc.DeleteRestaurant(ctx, ownerID, 9).Error, errRestaurantNotFound},
		"create dish":       {svc.CreateDish(ctx, ownerID, CreateDishInput{RestaurantID: 9}).Error, errRestaurantNotFound},
		"edit dish":         {svc.EditDish(ctx, ownerID, EditDishInput{DishID: 9}).Error, errDishNotFound},
		"delete dish":       {svc.DeleteDish(ctx, ownerID, 9).Error, errDishNotFound},
		"restaurant":        {svc.FindRestaurantByID(ctx, 9).Error, errRestaurantNotFound},
		"my restaurant":     {svc.MyRestaurant(ctx, ownerID, 9).Error, errRestaurantNotFound},
		"category":          {svc.FindCategoryBySlug(ctx, "nope", 1).Error, errCategoryMissing},
	}
	for name, c := range checks {
		if c.got != c.want {
			t.Errorf("%s: got %q, want %q", name, c.got, c.want)
		}
	}
}

func TestEditRestaurant(t *testing.T) {
	svc, store := newSvc(t)
	ctx := context.Background()
	id := seedRestaurant(t, svc, "A", "Pizza")

	out := svc.EditRestaurant(ctx, ownerID, EditRestaurantInput{
		RestaurantID: id, Name: ptr("A2"), CategoryName: ptr("Burgers"),
	})
	if !out.OK {
		t.Fatalf("got %+v", out)
	}
	rest, _ := store.Restaurants().FindByID(ctx, id)
	if rest.Name != "A2" || rest.Address != "Main st" {
		t.Fatalf("restaurant = %+v", rest)
	}
	if rest.Category == nil || rest.Category.Slug != "burgers" {
		t.Fatalf("category = %+v", rest.Category)
	}
}

func TestDeleteRestaurant(t *testing.T) {
	svc, store := newSvc(t)
	ctx := context.Background()
	id := seedRestaurant(t, svc, "A", "")

	if out := svc.DeleteRestaurant(ctx, ownerID, id); !out.OK {
		t.Fatalf("got %+v", out)
	}
	if _, err := store.Restaurants().FindByID(ctx, id); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("restaurant still present: %v", err)
	}
}

func TestEditAndDeleteDish(t *testing.T) {
	svc, store := newSvc(t)
	ctx := context.Background()
	restID := seedRestaurant(t, svc, "A", "")
	dishID := seedDish(t, svc, store, restID)

	extra := 3
	out := svc.EditDish(ctx, ownerID, EditDishInput{
		DishID:  dishID,
		Price:   ptr(15),
		Options: []models.DishOption{{Name: "Spice", Extra: &extra}},
	})
	if !out.OK {
		t.Fatalf("EditDish: %+v", out)
	}
	dish, _ := store.Dishes().FindByID(ctx, dishID)
	if dish.Price != 15 || dish.Name != "Pizza" || len(dish.Options) != 1 {
		t.Fatalf("dish = %+v", dish)
	}

	if out := svc.DeleteDish(ctx, ownerID, dishID); !out.OK {
		t.Fatalf("DeleteDish: %+v", out)
	}
	if _, err := store.Dishes().FindByID(ctx, dishID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("dish still present: %v", err)
	}
}

func TestStoreFailuresUseFixedMessages(t *testing.T) {
	svc, store := newSvc(t)
	ctx := context.Background()
	restID := seedRestaurant(t, svc, "A", "Pizza")
	dishID := seedDish(t, svc, store, restID)
	boom := errors.New("connection reset")

	cases := []struct {
		op   string
		call func() string
		want string
	}{
		{"Restaurants.Save", func() string {
			return svc.EditRestaurant(ctx, ownerID, EditRestaurantInput{RestaurantID: restID}).Error
		}, errEditRestaurant},
		{"Restaurants.Delete", func() string { return svc.DeleteRestaurant(ctx, ownerID, restID).Error }, errDeleteRestaurant},
		{"Dishes.Create", func() string {
			return svc.CreateDish(ctx, ownerID, CreateDishInput{RestaurantID: restID}).Error
		}, errCreateDish},
		{"Dishes.Save", func() string { return svc.EditDish(ctx, ownerID, EditDishInput{DishID: dishID}).Error }, errEditDish},
		{"Dishes.Delete", func() string { return svc.DeleteDish(ctx, ownerID, dishID).Error }, errDeleteDish},
		{"Restaurants.Find", func() string { return svc.MyRestaurants(ctx, ownerID).Error }, errLoadRestaurants},
		{"Restaurants.FindByID", func() string { return svc.MyRestaurant(ctx, ownerID, restID).Error }, errFindRestaurant},
		{"Categories.FindAll", func() string { return svc.AllCategories(ctx).Error }, errLoadCategories},
		{"Categories.FindBySlug", func() string { return svc.FindCategoryBySlug(ctx, "pizza", 1).Error }, errLoadCategory},
	}
	for _, tc := range cases {
		t.Run(tc.op, func(t *testing.T) {
			store.FailOn(tc.op, boom)
			defer store.FailOn(tc.op, nil)
			if got := tc.call(); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}

	store.FailOn("Restaurants.Find", boom)
	if got := svc.AllRestaurants(ctx, 1).Error; got != errLoadRestaurants {
		t.Errorf("AllRestaurants: %q", got)
	}
	if got := svc.SearchRestaurantByName(ctx, "a", 1).Error; got != errSearch {
		t.Errorf("Search: %q", got)
	}
	store.FailOn("Restaurants.Find", nil)
	store.FailOn("Restaurants.FindByID", boom)
	if got := svc.FindRestaurantByID(ctx, restID).Error; got != errLoadRestaurant {
		t.Errorf("FindRestaurantByID: %q", got)
	}
}

func TestMyRestaurant_ScopedToOwner(t *testing.T) {
	svc, store := newSvc(t)
	ctx := context.Background()
	id := seedRestaurant(t, svc, "A", "")
	seedDish(t, svc, store, id)

	out := svc.MyRestaurant(ctx, ownerID, id)
	if !out.OK || len(out.Restaurant.Menu) != 1 {
		t.Fatalf("got %+v", out)
	}
	if other := svc.MyRestaurant(ctx, strangerID, id); other.OK || other.Error != errRestaurantNotFound {
		t.Fatalf("stranger: %+v", other)
	}
	if list := svc.MyRestaurants(ctx, strangerID); !list.OK || len(list.Restaurants) != 0 {
		t.Fatalf("stranger list: %+v", list)
	}
}

func TestAllRestaurants_PagingAndPromotion(t *testing.T) {
	svc, store := newSvc(t)
	ctx := context.Background()
	var ids []int
	for i := 0; i < 7; i++ {
		ids = append(ids, seedRestaurant(t, svc, fmt.Sprintf("R%d", i), "Pizza"))
	}
	promoted, _ := store.Restaurants().FindByID(ctx, ids[5])
	promoted.IsPromoted = true
	if err := store.Restaurants().Save(ctx, promoted); err != nil {
		t.Fatal(err)
	}

	first := svc.AllRestaurants(ctx, 0)
	if !first.OK || first.TotalPages != 3 || first.TotalResults != 7 || len(first.Restaurants) != 3 {
		t.Fatalf("page 1: %+v", first)
	}
	if first.Restaurants[0].ID != ids[5] {
		t.Errorf("promoted restaurant not first: %+v", first.Restaurants[0])
	}
	last := svc.AllRestaurants(ctx, 3)
	if len(last.Restaurants) != 1 {
		t.Fatalf("page 3: %+v", last)
	}

	cat := svc.FindCategoryBySlug(ctx, "pizza", 1)
	if !cat.OK || cat.TotalResults != 7 || cat.TotalPages != 1 || len(cat.Restaurants) != 7 {
		t.Fatalf("category: %+v", cat)
	}
	count, err := svc.CountRestaurants(ctx, cat.Category.ID)
	if err != nil || count != 7 {
		t.Fatalf("count = %d, %v", count, err)
	}
}

func TestSearchRestaurantByName(t *testing.T) {
	svc, _ := newSvc(t)
	ctx := context.Background()
	seedRestaurant(t, svc, "Burger Barn", "")
	seedRestaurant(t, svc, "Sushi Bar", "")
	seedRestaurant(t, svc, "Pasta", "")

	out := svc.SearchRestaurantByName(ctx, "bar", 1)
	if !out.OK || out.TotalResults != 2 || len(out.Restaurants) != 2 {
		t.Fatalf("got %+v", out)
	}
	none := svc.SearchRestaurantByName(ctx, "taco", 1)
	if !none.OK || none.TotalResults != 0 || none.TotalPages != 0 {
		t.Fatalf("got %+v", none)
	}
}
