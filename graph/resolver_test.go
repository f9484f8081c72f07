package graph_test

import (
	"context"
	"errors"
	"testing"

	"eats-backend/graph"
	"eats-backend/graph/model"
	"eats-backend/internal/app/core"
	"eats-backend/internal/app/orders"
	"eats-backend/internal/app/payments"
	"eats-backend/internal/app/restaurants"
	"eats-backend/internal/app/users"
	"eats-backend/internal/auth"
	"eats-backend/internal/models"
)

// ---------------------------------------------------------------------------
// Mock services
// ---------------------------------------------------------------------------

// Each method field can be overridden per test. An unset field records the
// call and returns a zero envelope.

type mockAccounts struct {
	calls           int
	createAccountFn func(ctx context.Context, in users.CreateAccountInput) core.Output
	loginFn         func(ctx context.Context, in users.LoginInput) users.LoginOutput
	findByIDFn      func(ctx context.Context, id int) users.UserProfileOutput
	editProfileFn   func(ctx context.Context, userID int, in users.EditProfileInput) core.Output
	verifyEmailFn   func(ctx context.Context, code string) core.Output
}

func (m *mockAccounts) CreateAccount(ctx context.Context, in users.CreateAccountInput) core.Output {
	m.calls++
	if m.createAccountFn != nil {
		return m.createAccountFn(ctx, in)
	}
	return core.Output{}
}

func (m *mockAccounts) Login(ctx context.Context, in users.LoginInput) users.LoginOutput {
	m.calls++
	if m.loginFn != nil {
		return m.loginFn(ctx, in)
	}
	return users.LoginOutput{}
}

func (m *mockAccounts) FindByID(ctx context.Context, id int) users.UserProfileOutput {
	m.calls++
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return users.UserProfileOutput{}
}

func (m *mockAccounts) EditProfile(ctx context.Context, userID int, in users.EditProfileInput) core.Output {
	m.calls++
	if m.editProfileFn != nil {
		return m.editProfileFn(ctx, userID, in)
	}
	return core.Output{}
}

func (m *mockAccounts) VerifyEmail(ctx context.Context, code string) core.Output {
	m.calls++
	if m.verifyEmailFn != nil {
		return m.verifyEmailFn(ctx, code)
	}
	return core.Output{}
}

type mockCatalog struct {
	calls              int
	createRestaurantFn func(ctx context.Context, ownerID int, in restaurants.CreateRestaurantInput) restaurants.CreateRestaurantOutput
	createDishFn       func(ctx context.Context, ownerID int, in restaurants.CreateDishInput) core.Output
	myRestaurantFn     func(ctx context.Context, ownerID, id int) restaurants.RestaurantOutput
	countFn            func(ctx context.Context, categoryID int) (int, error)
	categoryFn         func(ctx context.Context, slug string, page int) restaurants.CategoryOutput
	allRestaurantsFn   func(ctx context.Context, page int) restaurants.PagedRestaurantsOutput
	searchFn           func(ctx context.Context, query string, page int) restaurants.PagedRestaurantsOutput
}

func (m *mockCatalog) CreateRestaurant(ctx context.Context, ownerID int, in restaurants.CreateRestaurantInput) restaurants.CreateRestaurantOutput {
	m.calls++
	if m.createRestaurantFn != nil {
		return m.createRestaurantFn(ctx, ownerID, in)
	}
	return restaurants.CreateRestaurantOutput{}
}

func (m *mockCatalog) EditRestaurant(context.Context, int, restaurants.EditRestaurantInput) core.Output {
	m.calls++
	return core.Output{}
}

func (m *mockCatalog) DeleteRestaurant(context.Context, int, int) core.Output {
	m.calls++
	return core.Output{}
}

func (m *mockCatalog) CreateDish(ctx context.Context, ownerID int, in restaurants.CreateDishInput) core.Output {
	m.calls++
	if m.createDishFn != nil {
		return m.createDishFn(ctx, ownerID, in)
	}
	return core.Output{}
}

func (m *mockCatalog) EditDish(context.Context, int, restaurants.EditDishInput) core.Output {
	m.calls++
	return core.Output{}
}

func (m *mockCatalog) DeleteDish(context.Context, int, int) core.Output {
	m.calls++
	return core.Output{}
}

func (m *mockCatalog) MyRestaurants(context.Context, int) restaurants.RestaurantsOutput {
	m.calls++
	return restaurants.RestaurantsOutput{}
}

func (m *mockCatalog) MyRestaurant(ctx context.Context, ownerID, id int) restaurants.RestaurantOutput {
	m.calls++
	if m.myRestaurantFn != nil {
		return m.myRestaurantFn(ctx, ownerID, id)
	}
	return restaurants.RestaurantOutput{}
}

func (m *mockCatalog) AllCategories(context.Context) restaurants.CategoriesOutput {
	m.calls++
	return restaurants.CategoriesOutput{}
}

func (m *mockCatalog) CountRestaurants(ctx context.Context, categoryID int) (int, error) {
	m.calls++
	if m.countFn != nil {
		return m.countFn(ctx, categoryID)
	}
	return 0, nil
}

func (m *mockCatalog) FindCategoryBySlug(ctx context.Context, slug string, page int) restaurants.CategoryOutput {
	m.calls++
	if m.categoryFn != nil {
		return m.categoryFn(ctx, slug, page)
	}
	return restaurants.CategoryOutput{}
}

func (m *mockCatalog) AllRestaurants(ctx context.Context, page int) restaurants.PagedRestaurantsOutput {
	m.calls++
	if m.allRestaurantsFn != nil {
		return m.allRestaurantsFn(ctx, page)
	}
	return restaurants.PagedRestaurantsOutput{}
}

func (m *mockCatalog) FindRestaurantByID(context.Context, int) restaurants.RestaurantOutput {
	m.calls++
	return restaurants.RestaurantOutput{}
}

func (m *mockCatalog) SearchRestaurantByName(ctx context.Context, query string, page int) restaurants.PagedRestaurantsOutput {
	m.calls++
	if m.searchFn != nil {
		return m.searchFn(ctx, query, page)
	}
	return restaurants.PagedRestaurantsOutput{}
}

type mockOrders struct {
	calls         int
	createOrderFn func(ctx context.Context, customerID int, in orders.CreateOrderInput) orders.CreateOrderOutput
	getOrdersFn   func(ctx context.Context, user *models.User, status *models.OrderStatus) orders.OrdersOutput
	takeOrderFn   func(ctx context.Context, courier *models.User, id int) core.Output
}

func (m *mockOrders) CreateOrder(ctx context.Context, customerID int, in orders.CreateOrderInput) orders.CreateOrderOutput {
	m.calls++
	if m.createOrderFn != nil {
		return m.createOrderFn(ctx, customerID, in)
	}
	return orders.CreateOrderOutput{}
}

func (m *mockOrders) GetOrders(ctx context.Context, user *models.User, status *models.OrderStatus) orders.OrdersOutput {
	m.calls++
	if m.getOrdersFn != nil {
		return m.getOrdersFn(ctx, user, status)
	}
	return orders.OrdersOutput{}
}

func (m *mockOrders) GetOrder(context.Context, *models.User, int) orders.OrderOutput {
	m.calls++
	return orders.OrderOutput{}
}

func (m *mockOrders) EditOrder(context.Context, *models.User, orders.EditOrderInput) core.Output {
	m.calls++
	return core.Output{}
}

func (m *mockOrders) TakeOrder(ctx context.Context, courier *models.User, id int) core.Output {
	m.calls++
	if m.takeOrderFn != nil {
		return m.takeOrderFn(ctx, courier, id)
	}
	return core.Output{}
}

type mockPayments struct {
	calls           int
	createPaymentFn func(ctx context.Context, ownerID int, in payments.CreatePaymentInput) core.Output
}

func (m *mockPayments) CreatePayment(ctx context.Context, ownerID int, in payments.CreatePaymentInput) core.Output {
	m.calls++
	if m.createPaymentFn != nil {
		return m.createPaymentFn(ctx, ownerID, in)
	}
	return core.Output{}
}

func (m *mockPayments) GetPayments(context.Context, int) payments.PaymentsOutput {
	m.calls++
	return payments.PaymentsOutput{}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

type mocks struct {
	accounts *mockAccounts
	catalog  *mockCatalog
	orders   *mockOrders
	payments *mockPayments
}

func (m mocks) calls() int {
	return m.accounts.calls + m.catalog.calls + m.orders.calls + m.payments.calls
}

func newResolver() (*graph.Resolver, mocks) {
	m := mocks{
		accounts: &mockAccounts{},
		catalog:  &mockCatalog{},
		orders:   &mockOrders{},
		payments: &mockPayments{},
	}
	return &graph.Resolver{
		Users:    m.accounts,
		Catalog:  m.catalog,
		Orders:   m.orders,
		Payments: m.payments,
	}, m
}

// authCtx returns a context carrying an authenticated user with role.
func authCtx(role models.Role) context.Context {
	return auth.WithUser(context.Background(), &models.User{CoreModel: models.CoreModel{ID: 42}, Email: "user@example.com", Role: role})
}

func noAuthCtx() context.Context {
	return context.Background()
}

func intPtr(v int) *int { return &v }

// ---------------------------------------------------------------------------
// Role gating
// ---------------------------------------------------------------------------

func TestGuardedResolvers_RejectWithoutServiceCall(t *testing.T) {
	tests := []struct {
		name string
		ctx  context.Context
		call func(r *graph.Resolver, ctx context.Context) error
	}{
		{"me anonymous", noAuthCtx(), func(r *graph.Resolver, ctx context.Context) error {
			_, err := r.Query().Me(ctx)
			return err
		}},
		{"userProfile anonymous", noAuthCtx(), func(r *graph.Resolver, ctx context.Context) error {
			_, err := r.Query().UserProfile(ctx, 1)
			return err
		}},
		{"editProfile anonymous", noAuthCtx(), func(r *graph.Resolver, ctx context.Context) error {
			_, err := r.Mutation().EditProfile(ctx, model.EditProfileInput{})
			return err
		}},
		{"createRestaurant as client", authCtx(models.RoleClient), func(r *graph.Resolver, ctx context.Context) error {
			_, err := r.Mutation().CreateRestaurant(ctx, model.CreateRestaurantInput{Name: "x"})
			return err
		}},
		{"deleteDish as courier", authCtx(models.RoleCourier), func(r *graph.Resolver, ctx context.Context) error {
			_, err := r.Mutation().DeleteDish(ctx, model.DeleteDishInput{DishID: 1})
			return err
		}},
		{"myRestaurants anonymous", noAuthCtx(), func(r *graph.Resolver, ctx context.Context) error {
			_, err := r.Query().MyRestaurants(ctx)
			return err
		}},
		{"createOrder as owner", authCtx(models.RoleOwner), func(r *graph.Resolver, ctx context.Context) error {
			_, err := r.Mutation().CreateOrder(ctx, model.CreateOrderInput{RestaurantID: 1})
			return err
		}},
		{"takeOrder as client", authCtx(models.RoleClient), func(r *graph.Resolver, ctx context.Context) error {
			_, err := r.Mutation().TakeOrder(ctx, model.TakeOrderInput{ID: 1})
			return err
		}},
		{"getOrders anonymous", noAuthCtx(), func(r *graph.Resolver, ctx context.Context) error {
			_, err := r.Query().GetOrders(ctx, model.GetOrdersInput{})
			return err
		}},
		{"editOrder anonymous", noAuthCtx(), func(r *graph.Resolver, ctx context.Context) error {
			_, err := r.Mutation().EditOrder(ctx, model.EditOrderInput{ID: 1, Status: model.OrderStatusCooking})
			return err
		}},
		{"createPayment as client", authCtx(models.RoleClient), func(r *graph.Resolver, ctx context.Context) error {
			_, err := r.Mutation().CreatePayment(ctx, model.CreatePaymentInput{TransactionID: "t", RestaurantID: 1})
			return err
		}},
		{"getPayments as courier", authCtx(models.RoleCourier), func(r *graph.Resolver, ctx context.Context) error {
			_, err := r.Query().GetPayments(ctx)
			return err
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, m := newResolver()
			err := tc.call(r, tc.ctx)
			if !errors.Is(err, graph.ErrForbidden) {
				t.Fatalf("expected ErrForbidden, got %v", err)
			}
			if m.calls() != 0 {
				t.Errorf("expected no service calls, got %d", m.calls())
			}
		})
	}
}

func TestPublicResolvers_AllowAnonymous(t *testing.T) {
	r, m := newResolver()
	ctx := noAuthCtx()

	if _, err := r.Mutation().CreateAccount(ctx, model.CreateAccountInput{Email: "a@b.c", Password: "pw", Role: model.UserRoleClient}); err != nil {
		t.Fatalf("createAccount: %v", err)
	}
	if _, err := r.Mutation().Login(ctx, model.LoginInput{Email: "a@b.c", Password: "pw"}); err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := r.Mutation().VerifyEmail(ctx, model.VerifyEmailInput{Code: "c"}); err != nil {
		t.Fatalf("verifyEmail: %v", err)
	}
	if _, err := r.Query().AllCategories(ctx); err != nil {
		t.Fatalf("allCategories: %v", err)
	}
	if _, err := r.Query().Restaurants(ctx, model.RestaurantsInput{}); err != nil {
		t.Fatalf("restaurants: %v", err)
	}
	if _, err := r.Query().Restaurant(ctx, model.RestaurantInput{RestaurantID: 1}); err != nil {
		t.Fatalf("restaurant: %v", err)
	}
	if _, err := r.Query().SearchRestaurant(ctx, model.SearchRestaurantInput{Query: "x"}); err != nil {
		t.Fatalf("searchRestaurant: %v", err)
	}
	if _, err := r.Query().Category(ctx, model.CategoryInput{Slug: "x"}); err != nil {
		t.Fatalf("category: %v", err)
	}
	if m.calls() != 8 {
		t.Errorf("expected 8 service calls, got %d", m.calls())
	}
}

// ---------------------------------------------------------------------------
// Envelope mapping
// ---------------------------------------------------------------------------

func TestCreateAccountResolver_MapsFailure(t *testing.T) {
	r, m := newResolver()
	m.accounts.createAccountFn = func(_ context.Context, in users.CreateAccountInput) core.Output {
		if in.Role != models.RoleOwner {
			t.Errorf("role: got %q", in.Role)
		}
		return core.Conflict("There is a user with that email already")
	}

	out, err := r.Mutation().CreateAccount(noAuthCtx(), model.CreateAccountInput{
		Email: "bs@email.com", Password: "pw", Role: model.UserRoleOwner,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Ok {
		t.Error("expected ok=false")
	}
	if out.Error == nil || *out.Error != "There is a user with that email already" {
		t.Errorf("unexpected error field: %v", out.Error)
	}
}

func TestLoginResolver_TokenOnlyOnSuccess(t *testing.T) {
	r, m := newResolver()
	m.accounts.loginFn = func(context.Context, users.LoginInput) users.LoginOutput {
		return users.LoginOutput{Output: core.Success(), Token: "signed"}
	}

	out, err := r.Mutation().Login(noAuthCtx(), model.LoginInput{Email: "a", Password: "b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Ok || out.Error != nil {
		t.Fatalf("expected success, got %+v", out)
	}
	if out.Token == nil || *out.Token != "signed" {
		t.Errorf("token: got %v", out.Token)
	}

	m.accounts.loginFn = func(context.Context, users.LoginInput) users.LoginOutput {
		return users.LoginOutput{Output: core.CredentialMismatch("Wrong password")}
	}
	out, _ = r.Mutation().Login(noAuthCtx(), model.LoginInput{Email: "a", Password: "c"})
	if out.Token != nil {
		t.Errorf("expected nil token on failure, got %q", *out.Token)
	}
}

func TestMeResolver_ReturnsCaller(t *testing.T) {
	r, m := newResolver()
	out, err := r.Query().Me(authCtx(models.RoleCourier))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.ID != 42 || out.Role != model.UserRoleCourier {
		t.Errorf("unexpected user: %+v", out)
	}
	if m.calls() != 0 {
		t.Errorf("me must not call services, got %d calls", m.calls())
	}
}

func TestEditProfileResolver_PassesCallerID(t *testing.T) {
	r, m := newResolver()
	var gotID int
	m.accounts.editProfileFn = func(_ context.Context, userID int, in users.EditProfileInput) core.Output {
		gotID = userID
		if in.Email == nil || *in.Email != "new@example.com" || in.Password != nil {
			t.Errorf("unexpected input: %+v", in)
		}
		return core.Success()
	}
	email := "new@example.com"
	out, err := r.Mutation().EditProfile(authCtx(models.RoleClient), model.EditProfileInput{Email: &email})
	if err != nil || !out.Ok {
		t.Fatalf("unexpected result: %+v, %v", out, err)
	}
	if gotID != 42 {
		t.Errorf("user id: got %d", gotID)
	}
}

func TestCreateRestaurantResolver(t *testing.T) {
	r, m := newResolver()
	m.catalog.createRestaurantFn = func(_ context.Context, ownerID int, in restaurants.CreateRestaurantInput) restaurants.CreateRestaurantOutput {
		if ownerID != 42 || in.CategoryName != "Korean BBQ" {
			t.Errorf("unexpected call: owner=%d input=%+v", ownerID, in)
		}
		return restaurants.CreateRestaurantOutput{Output: core.Success(), RestaurantID: 7}
	}

	out, err := r.Mutation().CreateRestaurant(authCtx(models.RoleOwner), model.CreateRestaurantInput{
		Name: "BBQ House", CoverImg: "https://img", Address: "Seoul", CategoryName: "Korean BBQ",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.RestaurantID == nil || *out.RestaurantID != 7 {
		t.Errorf("restaurant id: got %v", out.RestaurantID)
	}

	m.catalog.createRestaurantFn = func(context.Context, int, restaurants.CreateRestaurantInput) restaurants.CreateRestaurantOutput {
		return restaurants.CreateRestaurantOutput{Output: core.Fail(core.KindUnexpected, "Could not create restaurant")}
	}
	out, _ = r.Mutation().CreateRestaurant(authCtx(models.RoleOwner), model.CreateRestaurantInput{Name: "x"})
	if out.Ok || out.RestaurantID != nil {
		t.Errorf("expected failure without id, got %+v", out)
	}
}

func TestCreateDishResolver_MapsOptions(t *testing.T) {
	r, m := newResolver()
	m.catalog.createDishFn = func(_ context.Context, _ int, in restaurants.CreateDishInput) core.Output {
		if len(in.Options) != 2 {
			t.Fatalf("options: got %d", len(in.Options))
		}
		if in.Options[0].Name != "Spice Level" || len(in.Options[0].Choices) != 2 {
			t.Errorf("first option: %+v", in.Options[0])
		}
		if in.Options[1].Extra == nil || *in.Options[1].Extra != 5 {
			t.Errorf("second option extra: %v", in.Options[1].Extra)
		}
		return core.Success()
	}

	out, err := r.Mutation().CreateDish(authCtx(models.RoleOwner), model.CreateDishInput{
		RestaurantID: 1,
		Name:         "Bulgogi",
		Price:        12,
		Description:  "Marinated beef",
		Options: []model.DishOptionInput{
			{Name: "Spice Level", Choices: []model.DishChoiceInput{{Name: "Mild"}, {Name: "Hot", Extra: intPtr(1)}}},
			{Name: "Extra Rice", Extra: intPtr(5)},
		},
	})
	if err != nil || !out.Ok {
		t.Fatalf("unexpected result: %+v, %v", out, err)
	}
}

func TestMyRestaurantResolver_NotFound(t *testing.T) {
	r, m := newResolver()
	m.catalog.myRestaurantFn = func(context.Context, int, int) restaurants.RestaurantOutput {
		return restaurants.RestaurantOutput{Output: core.NotFound("Restaurant not found")}
	}
	out, err := r.Query().MyRestaurant(authCtx(models.RoleOwner), model.MyRestaurantInput{ID: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Ok || out.Restaurant != nil {
		t.Errorf("expected failure without restaurant, got %+v", out)
	}
}

func TestRestaurantsResolver_DefaultsPageAndMapsPagination(t *testing.T) {
	r, m := newResolver()
	var gotPage int
	m.catalog.allRestaurantsFn = func(_ context.Context, page int) restaurants.PagedRestaurantsOutput {
		gotPage = page
		return restaurants.PagedRestaurantsOutput{
			Output:           core.Success(),
			PaginationOutput: core.NewPagination(4, core.RestaurantsPageSize),
			Restaurants: []models.Restaurant{
				{CoreModel: models.CoreModel{ID: 1}, Name: "A", IsPromoted: true},
				{CoreModel: models.CoreModel{ID: 2}, Name: "B"},
				{CoreModel: models.CoreModel{ID: 3}, Name: "C"},
			},
		}
	}

	out, err := r.Query().Restaurants(noAuthCtx(), model.RestaurantsInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPage != 1 {
		t.Errorf("page: got %d, want 1", gotPage)
	}
	if *out.TotalPages != 2 || *out.TotalResults != 4 {
		t.Errorf("pagination: pages=%d results=%d", *out.TotalPages, *out.TotalResults)
	}
	if len(out.Results) != 3 || !out.Results[0].IsPromoted {
		t.Errorf("unexpected results: %+v", out.Results)
	}

	_, _ = r.Query().Restaurants(noAuthCtx(), model.RestaurantsInput{Page: intPtr(2)})
	if gotPage != 2 {
		t.Errorf("page: got %d, want 2", gotPage)
	}
}

func TestSearchRestaurantResolver_FailureHidesPagination(t *testing.T) {
	r, m := newResolver()
	m.catalog.searchFn = func(context.Context, string, int) restaurants.PagedRestaurantsOutput {
		return restaurants.PagedRestaurantsOutput{Output: core.Fail(core.KindUnexpected, "Could not search for restaurants")}
	}
	out, err := r.Query().SearchRestaurant(noAuthCtx(), model.SearchRestaurantInput{Query: "bbq"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Ok || out.TotalPages != nil || out.Restaurants != nil {
		t.Errorf("expected bare failure, got %+v", out)
	}
}

func TestCategoryResolver_RestaurantCount(t *testing.T) {
	r, m := newResolver()
	m.catalog.countFn = func(_ context.Context, categoryID int) (int, error) {
		if categoryID != 5 {
			t.Errorf("category id: got %d", categoryID)
		}
		return 3, nil
	}
	n, err := r.Category().RestaurantCount(noAuthCtx(), &model.Category{ID: 5})
	if err != nil || n != 3 {
		t.Fatalf("got %d, %v", n, err)
	}
}

func TestCreateOrderResolver(t *testing.T) {
	r, m := newResolver()
	m.orders.createOrderFn = func(_ context.Context, customerID int, in orders.CreateOrderInput) orders.CreateOrderOutput {
		if customerID != 42 || in.RestaurantID != 1 || len(in.Items) != 1 {
			t.Errorf("unexpected call: %d %+v", customerID, in)
		}
		if opts := in.Items[0].Options; len(opts) != 1 || opts[0].Name != "Spice Level" || opts[0].Choice == nil || *opts[0].Choice != "Hot" {
			t.Errorf("unexpected options: %+v", opts)
		}
		return orders.CreateOrderOutput{Output: core.Success(), OrderID: 11}
	}
	hot := "Hot"
	out, err := r.Mutation().CreateOrder(authCtx(models.RoleClient), model.CreateOrderInput{
		RestaurantID: 1,
		Items: []model.CreateOrderItemInput{{
			DishID:  2,
			Options: []model.OrderItemOptionInput{{Name: "Spice Level", Choice: &hot}},
		}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.OrderID == nil || *out.OrderID != 11 {
		t.Errorf("order id: got %v", out.OrderID)
	}
}

func TestGetOrdersResolver_PassesStatusFilter(t *testing.T) {
	r, m := newResolver()
	var got *models.OrderStatus
	m.orders.getOrdersFn = func(_ context.Context, _ *models.User, status *models.OrderStatus) orders.OrdersOutput {
		got = status
		return orders.OrdersOutput{Output: core.Success(), Orders: []models.Order{{CoreModel: models.CoreModel{ID: 1}, Status: models.OrderCooked, Total: 27}}}
	}
	status := model.OrderStatusCooked
	out, err := r.Query().GetOrders(authCtx(models.RoleCourier), model.GetOrdersInput{Status: &status})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || *got != models.OrderCooked {
		t.Errorf("status filter: got %v", got)
	}
	if len(out.Orders) != 1 || out.Orders[0].Status != model.OrderStatusCooked {
		t.Errorf("unexpected orders: %+v", out.Orders)
	}
}

func TestTakeOrderResolver_Conflict(t *testing.T) {
	r, m := newResolver()
	m.orders.takeOrderFn = func(_ context.Context, courier *models.User, _ int) core.Output {
		if courier.ID != 42 {
			t.Errorf("courier id: got %d", courier.ID)
		}
		return core.Conflict("This order already has a driver")
	}
	out, err := r.Mutation().TakeOrder(authCtx(models.RoleCourier), model.TakeOrderInput{ID: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Ok || out.Error == nil {
		t.Errorf("expected conflict, got %+v", out)
	}
}

func TestCreatePaymentResolver(t *testing.T) {
	r, m := newResolver()
	m.payments.createPaymentFn = func(_ context.Context, ownerID int, in payments.CreatePaymentInput) core.Output {
		if ownerID != 42 || in.TransactionID != "tx-1" || in.RestaurantID != 3 {
			t.Errorf("unexpected call: %d %+v", ownerID, in)
		}
		return core.Success()
	}
	out, err := r.Mutation().CreatePayment(authCtx(models.RoleOwner), model.CreatePaymentInput{TransactionID: "tx-1", RestaurantID: 3})
	if err != nil || !out.Ok || out.Error != nil {
		t.Fatalf("unexpected result: %+v, %v", out, err)
	}
}
