package orders

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"eats-backend/internal/models"
	"eats-backend/internal/storage/memory"
)

type fixture struct {
	svc      *Service
	store    *memory.Store
	owner    *models.User
	client   *models.User
	courier  *models.User
	stranger *models.User
	restID   int
	dishID   int
}

func ptr[T any](v T) *T { return &v }

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.New()
	f := &fixture{
		svc:   NewService(store, slog.New(slog.NewTextHandler(io.Discard, nil))),
		store: store,
	}

	mkUser := func(email string, role models.Role) *models.User {
		u := &models.User{Email: email, Role: role}
		if err := store.Users().Create(ctx, u); err != nil {
			t.Fatalf("create user: %v", err)
		}
		return u
	}
	f.owner = mkUser("owner@e.com", models.RoleOwner)
	f.client = mkUser("client@e.com", models.RoleClient)
	f.courier = mkUser("courier@e.com", models.RoleCourier)
	f.stranger = mkUser("stranger@e.com", models.RoleClient)

	rest := &models.Restaurant{Name: "Pizzeria", OwnerID: f.owner.ID}
	if err := store.Restaurants().Create(ctx, rest); err != nil {
		t.Fatal(err)
	}
	f.restID = rest.ID

	dish := &models.Dish{
		Name:         "Pizza",
		Price:        10,
		RestaurantID: rest.ID,
		Options: []models.DishOption{
			{Name: "Extra cheese", Extra: ptr(2)},
			{Name: "Size", Choices: []models.DishChoice{{Name: "S"}, {Name: "L", Extra: ptr(5)}}},
		},
	}
	if err := store.Dishes().Create(ctx, dish); err != nil {
		t.Fatal(err)
	}
	f.dishID = dish.ID
	return f
}

func (f *fixture) order(t *testing.T) int {
	t.Helper()
	out := f.svc.CreateOrder(context.Background(), f.client.ID, CreateOrderInput{
		RestaurantID: f.restID,
		Items:        []CreateOrderItemInput{{DishID: f.dishID}},
	})
	if !out.OK {
		t.Fatalf("CreateOrder: %+v", out)
	}
	return out.OrderID
}

func TestCreateOrder_Total(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	out := f.svc.CreateOrder(ctx, f.client.ID, CreateOrderInput{
		RestaurantID: f.restID,
		Items: []CreateOrderItemInput{
			{DishID: f.dishID, Options: []models.OrderItemOption{{Name: "Extra cheese"}, {Name: "Size", Choice: ptr("L")}}},
			{DishID: f.dishID, Options: []models.OrderItemOption{{Name: "Size", Choice: ptr("S")}, {Name: "Unknown"}}},
		},
	})
	if !out.OK {
		t.Fatalf("got %+v", out)
	}

	o, err := f.store.Orders().FindByID(ctx, out.OrderID)
	if err != nil {
		t.Fatal(err)
	}
	// (10 + 2 + 5) + 10
	if o.Total != 27 {
		t.Errorf("total = %v, want 27", o.Total)
	}
	if len(o.Items) != 2 || o.Status != models.OrderPending {
		t.Errorf("order = %+v", o)
	}
}

func TestCreateOrder_ExtraChargeComesFromDish(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	out := f.svc.CreateOrder(ctx, f.client.ID, CreateOrderInput{
		RestaurantID: f.restID,
		Items: []CreateOrderItemInput{{DishID: f.dishID, Options: []models.OrderItemOption{
			{Name: "Extra cheese", ExtraCharge: ptr(100)},
			{Name: "Size", Choice: ptr("S"), ExtraCharge: ptr(100)},
		}}},
	})
	if !out.OK {
		t.Fatalf("got %+v", out)
	}

	o, err := f.store.Orders().FindByID(ctx, out.OrderID)
	if err != nil {
		t.Fatal(err)
	}
	if o.Total != 12 {
		t.Errorf("total = %v, want 12", o.Total)
	}
	opts := o.Items[0].Options
	if len(opts) != 2 {
		t.Fatalf("options = %+v", opts)
	}
	if opts[0].ExtraCharge == nil || *opts[0].ExtraCharge != 2 {
		t.Errorf("cheese extra charge = %v, want 2", opts[0].ExtraCharge)
	}
	if opts[1].ExtraCharge != nil || opts[1].Choice == nil || *opts[1].Choice != "S" {
		t.Errorf("size option = %+v, want choice S without charge", opts[1])
	}
}

func TestCreateOrder_Failures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if out := f.svc.CreateOrder(ctx, f.client.ID, CreateOrderInput{RestaurantID: 999}); out.Error != errRestaurantNotFound {
		t.Errorf("missing restaurant: %+v", out)
	}
	missingDish := CreateOrderInput{RestaurantID: f.restID, Items: []CreateOrderItemInput{{DishID: 999}}}
	if out := f.svc.CreateOrder(ctx, f.client.ID, missingDish); out.Error != errDishNotFound {
		t.Errorf("missing dish: %+v", out)
	}

	f.store.FailOn("Orders.Create", errors.New("boom"))
	if out := f.svc.CreateOrder(ctx, f.client.ID, CreateOrderInput{
		RestaurantID: f.restID, Items: []CreateOrderItemInput{{DishID: f.dishID}},
	}); out.Error != errCreateOrder {
		t.Errorf("store failure: %+v", out)
	}
}

func TestCreateOrder_DishFromOtherRestaurant(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	other := &models.Restaurant{Name: "Other", OwnerID: f.owner.ID}
	if err := f.store.Restaurants().Create(ctx, other); err != nil {
		t.Fatal(err)
	}

	out := f.svc.CreateOrder(ctx, f.client.ID, CreateOrderInput{
		RestaurantID: other.ID, Items: []CreateOrderItemInput{{DishID: f.dishID}},
	})
	if out.OK || out.Error != errDishNotFound {
		t.Fatalf("got %+v", out)
	}
}

func TestGetOrders_ByRole(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.order(t)

	if out := f.svc.GetOrders(ctx, f.client, nil); !out.OK || len(out.Orders) != 1 {
		t.Fatalf("client: %+v", out)
	}
	if out := f.svc.GetOrders(ctx, f.owner, nil); !out.OK || len(out.Orders) != 1 {
		t.Fatalf("owner: %+v", out)
	}
	if out := f.svc.GetOrders(ctx, f.courier, nil); !out.OK || len(out.Orders) != 0 {
		t.Fatalf("courier before take: %+v", out)
	}
	if out := f.svc.GetOrders(ctx, f.stranger, nil); !out.OK || len(out.Orders) != 0 {
		t.Fatalf("stranger: %+v", out)
	}

	if out := f.svc.TakeOrder(ctx, f.courier, id); !out.OK {
		t.Fatalf("take: %+v", out)
	}
	if out := f.svc.GetOrders(ctx, f.courier, nil); len(out.Orders) != 1 {
		t.Fatalf("courier after take: %+v", out)
	}
	cooking := models.OrderCooking
	if out := f.svc.GetOrders(ctx, f.client, &cooking); len(out.Orders) != 0 {
		t.Fatalf("status filter: %+v", out)
	}

	f.store.FailOn("Orders.Find", errors.New("boom"))
	if out := f.svc.GetOrders(ctx, f.client, nil); out.Error != errGetOrders {
		t.Fatalf("store failure: %+v", out)
	}
}

func TestGetOrder_Visibility(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.order(t)

	for _, u := range []*models.User{f.client, f.owner} {
		if out := f.svc.GetOrder(ctx, u, id); !out.OK || out.Order.ID != id {
			t.Errorf("%s: %+v", u.Email, out)
		}
	}
	for _, u := range []*models.User{f.stranger, f.courier} {
		if out := f.svc.GetOrder(ctx, u, id); out.OK || out.Error != errCantSee {
			t.Errorf("%s: %+v", u.Email, out)
		}
	}
	if out := f.svc.GetOrder(ctx, f.client, 999); out.Error != errOrderNotFound {
		t.Errorf("missing: %+v", out)
	}
}

func TestEditOrder_RoleTransitions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.order(t)
	if out := f.svc.TakeOrder(ctx, f.courier, id); !out.OK {
		t.Fatalf("take: %+v", out)
	}

	cases := []struct {
		name   string
		user   *models.User
		status models.OrderStatus
		want   string
	}{
		{"client cannot edit", f.client, models.OrderCooking, errCantEdit},
		{"owner cannot pick up", f.owner, models.OrderPickedUp, errCantEdit},
		{"courier cannot cook", f.courier, models.OrderCooked, errCantEdit},
		{"stranger cannot see", f.stranger, models.OrderCooking, errCantSee},
		{"owner cooks", f.owner, models.OrderCooking, ""},
		{"owner cooked", f.owner, models.OrderCooked, ""},
		{"courier picks up", f.courier, models.OrderPickedUp, ""},
		{"courier delivers", f.courier, models.OrderDelivered, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			before, _ := f.store.Orders().FindByID(ctx, id)
			out := f.svc.EditOrder(ctx, tc.user, EditOrderInput{ID: id, Status: tc.status})
			if out.Error != tc.want {
				t.Fatalf("got %+v, want %q", out, tc.want)
			}
			after, _ := f.store.Orders().FindByID(ctx, id)
			if tc.want == "" && after.Status != tc.status {
				t.Fatalf("status = %s, want %s", after.Status, tc.status)
			}
			if tc.want != "" && after.Status != before.Status {
				t.Fatalf("rejected edit changed status to %s", after.Status)
			}
		})
	}
}

func TestTakeOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.order(t)

	if out := f.svc.TakeOrder(ctx, f.courier, 999); out.Error != errOrderNotFound {
		t.Errorf("missing: %+v", out)
	}
	if out := f.svc.TakeOrder(ctx, f.courier, id); !out.OK {
		t.Fatalf("take: %+v", out)
	}
	if out := f.svc.TakeOrder(ctx, f.courier, id); out.Error != errHasDriver {
		t.Errorf("second take: %+v", out)
	}

	other := f.order(t)
	f.store.FailOn("Orders.AssignDriver", errors.New("boom"))
	if out := f.svc.TakeOrder(ctx, f.courier, other); out.Error != errTakeOrder {
		t.Errorf("store failure: %+v", out)
	}
}

func TestTakeOrder_ConcurrentCouriersOneWins(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.order(t)

	const couriers = 8
	results := make([]string, couriers)
	var wg sync.WaitGroup
	for i := 0; i < couriers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			courier := &models.User{CoreModel: models.CoreModel{ID: 1000 + i}, Role: models.RoleCourier}
			results[i] = f.svc.TakeOrder(ctx, courier, id).Error
		}(i)
	}
	wg.Wait()

	won := 0
	for _, res := range results {
		switch res {
		case "":
			won++
		case errHasDriver:
		default:
			t.Errorf("unexpected result %q", res)
		}
	}
	if won != 1 {
		t.Fatalf("%d couriers took the order, want 1", won)
	}
}

func TestEditOrder_KeepsDriver(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.order(t)

	if out := f.svc.TakeOrder(ctx, f.courier, id); !out.OK {
		t.Fatalf("take: %+v", out)
	}
	if out := f.svc.EditOrder(ctx, f.owner, EditOrderInput{ID: id, Status: models.OrderCooking}); !out.OK {
		t.Fatalf("edit: %+v", out)
	}
	o, err := f.store.Orders().FindByID(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if o.DriverID == nil || *o.DriverID != f.courier.ID || o.Status != models.OrderCooking {
		t.Errorf("order = %+v", o)
	}
}
