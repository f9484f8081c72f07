// Package memory is an in-process storage.Manager for tests. Unique
// constraints mirror the PostgreSQL schema.
package memory

import (
	"context"
	"maps"
	"sort"
	"strings"
	"sync"
	"time"

	"eats-backend/internal/models"
	"eats-backend/internal/storage"
)

type tables struct {
	users         map[int]models.User
	verifications map[int]models.Verification
	categories    map[int]models.Category
	restaurants   map[int]models.Restaurant
	dishes        map[int]models.Dish
	orders        map[int]models.Order
	orderItems    map[int]models.OrderItem
	payments      map[int]models.Payment
	nextID        int
}

func (t *tables) clone() tables {
	return tables{
		users:         maps.Clone(t.users),
		verifications: maps.Clone(t.verifications),
		categories:    maps.Clone(t.categories),
		restaurants:   maps.Clone(t.restaurants),
		dishes:        maps.Clone(t.dishes),
		orders:        maps.Clone(t.orders),
		orderItems:    maps.Clone(t.orderItems),
		payments:      maps.Clone(t.payments),
		nextID:        t.nextID,
	}
}

// Store is safe for concurrent use. Transactions run one at a time: each
// snapshots every table and restores the snapshot when the callback fails.
// Writes made outside a transaction while one is running are lost if it
// rolls back.
type Store struct {
	txMu   sync.Mutex
	mu     sync.Mutex
	t      tables
	faults map[string]error
	writes int
}

func New() *Store {
	return &Store{
		t: tables{
			users:         map[int]models.User{},
			verifications: map[int]models.Verification{},
			categories:    map[int]models.Category{},
			restaurants:   map[int]models.Restaurant{},
			dishes:        map[int]models.Dish{},
			orders:        map[int]models.Order{},
			orderItems:    map[int]models.OrderItem{},
			payments:      map[int]models.Payment{},
		},
		faults: map[string]error{},
	}
}

// FailOn makes every call of op ("Users.FindByEmail", "Dishes.Save", ...)
// return err until cleared with a nil err.
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.faults, op)
		return
	}
	s.faults[op] = err
}

// Writes reports how many successful write calls the store has served.
func (s *Store) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

func (s *Store) fault(op string) error {
	return s.faults[op]
}

func (s *Store) id() int {
	s.t.nextID++
	return s.t.nextID
}

func stamp(m *models.CoreModel, id int) {
	now := time.Now().UTC()
	if m.ID == 0 {
		m.ID = id
		m.CreatedAt = now
	}
	m.UpdatedAt = now
}

func (s *Store) Users() storage.UserRepository                 { return userRepo{s} }
func (s *Store) Verifications() storage.VerificationRepository { return verificationRepo{s} }
func (s *Store) Categories() storage.CategoryRepository        { return categoryRepo{s} }
func (s *Store) Restaurants() storage.RestaurantRepository     { return restaurantRepo{s} }
func (s *Store) Dishes() storage.DishRepository                { return dishRepo{s} }
func (s *Store) Orders() storage.OrderRepository               { return orderRepo{s} }
func (s *Store) Payments() storage.PaymentRepository           { return paymentRepo{s} }

func (s *Store) Transaction(ctx context.Context, fn func(tx storage.Manager) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot, writes := s.t.clone(), s.writes
	s.mu.Unlock()

	if err := fn(s); err != nil {
		s.mu.Lock()
		s.t, s.writes = snapshot, writes
		s.mu.Unlock()
		return err
	}
	return nil
}

// --- users ---

type userRepo struct{ s *Store }

func (r userRepo) FindByID(_ context.Context, id int) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("Users.FindByID"); err != nil {
		return nil, err
	}
	u, ok := r.s.t.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &u, nil
}

func (r userRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("Users.FindByEmail"); err != nil {
		return nil, err
	}
	for _, u := range r.s.t.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (r userRepo) Create(ctx context.Context, u *models.User) error {
	return r.write("Users.Create", u)
}

func (r userRepo) Save(ctx context.Context, u *models.User) error {
	return r.write("Users.Save", u)
}

func (r userRepo) write(op string, u *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault(op); err != nil {
		return err
	}
	for id, other := range r.s.t.users {
		if id != u.ID && other.Email == u.Email {
			return storage.ErrConflict
		}
	}
	if err := u.HashPassword(); err != nil {
		return err
	}
	stamp(&u.CoreModel, r.s.id())
	r.s.t.users[u.ID] = *u
	r.s.writes++
	return nil
}

// --- verifications ---

type verificationRepo struct{ s *Store }

func (r verificationRepo) FindByCode(_ context.Context, code string) (*models.Verification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("Verifications.FindByCode"); err != nil {
		return nil, err
	}
	for _, v := range r.s.t.verifications {
		if v.Code == code {
			if u, ok := r.s.t.users[v.UserID]; ok {
				v.User = &u
			}
			return &v, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (r verificationRepo) Create(_ context.Context, v *models.Verification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("Verifications.Create"); err != nil {
		return err
	}
	for _, other := range r.s.t.verifications {
		if other.Code == v.Code || other.UserID == v.UserID {
			return storage.ErrConflict
		}
	}
	stamp(&v.CoreModel, r.s.id())
	stored := *v
	stored.User = nil
	r.s.t.verifications[v.ID] = stored
	r.s.writes++
	return nil
}

func (r verificationRepo) Delete(_ context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("Verifications.Delete"); err != nil {
		return err
	}
	delete(r.s.t.verifications, id)
	r.s.writes++
	return nil
}

func (r verificationRepo) DeleteByUser(_ context.Context, userID int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("Verifications.DeleteByUser"); err != nil {
		return err
	}
	for id, v := range r.s.t.verifications {
		if v.UserID == userID {
			delete(r.s.t.verifications, id)
		}
	}
	r.s.writes++
	return nil
}

// CountVerifications is a test helper.
func (s *Store) CountVerifications() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.t.verifications)
}

// --- categories ---

type categoryRepo struct{ s *Store }

func (r categoryRepo) FindAll(_ context.Context) ([]models.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("Categories.FindAll"); err != nil {
		return nil, err
	}
	out := make([]models.Category, 0, len(r.s.t.categories))
	for _, c := range r.s.t.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r categoryRepo) FindBySlug(_ context.Context, slug string) (*models.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("Categories.FindBySlug"); err != nil {
		return nil, err
	}
	for _, c := range r.s.t.categories {
		if c.Slug == slug {
			return &c, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (r categoryRepo) Create(_ context.Context, c *models.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("Categories.Create"); err != nil {
		return err
	}
	for _, other := range r.s.t.categories {
		if other.Slug == c.Slug || other.Name == c.Name {
			return storage.ErrConflict
		}
	}
	stamp(&c.CoreModel, r.s.id())
	r.s.t.categories[c.ID] = *c
	r.s.writes++
	return nil
}

// --- restaurants ---

type restaurantRepo struct{ s *Store }

func (r restaurantRepo) withCategory(rest models.Restaurant) models.Restaurant {
	if rest.CategoryID != nil {
		if c, ok := r.s.t.categories[*rest.CategoryID]; ok {
			rest.Category = &c
		}
	}
	return rest
}

func (r restaurantRepo) FindByID(_ context.Context, id int, relations ...string) (*models.Restaurant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("Restaurants.FindByID"); err != nil {
		return nil, err
	}
	rest, ok := r.s.t.restaurants[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	rest = r.withCategory(rest)
	for _, rel := range relations {
		switch rel {
		case storage.RelationMenu:
			rest.Menu = r.s.dishesOf(id)
		case storage.RelationOrders:
			rest.Orders = r.s.ordersOf(id)
		}
	}
	return &rest, nil
}

func (r restaurantRepo) match(q storage.RestaurantQuery) []models.Restaurant {
	var out []models.Restaurant
	needle := strings.ToLower(q.NameContains)
	for _, rest := range r.s.t.restaurants {
		if q.OwnerID != nil && rest.OwnerID != *q.OwnerID {
			continue
		}
		if q.CategoryID != nil && (rest.CategoryID == nil || *rest.CategoryID != *q.CategoryID) {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(rest.Name), needle) {
			continue
		}
		out = append(out, r.withCategory(rest))
	}
	sort.Slice(out, func(i, j int) bool {
		if q.PromotedFirst && out[i].IsPromoted != out[j].IsPromoted {
			return out[i].IsPromoted
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r restaurantRepo) Find(_ context.Context, q storage.RestaurantQuery) ([]models.Restaurant, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("Restaurants.Find"); err != nil {
		return nil, 0, err
	}
	all := r.match(q)
	total := len(all)
	if q.Limit > 0 {
		start := min(q.Offset, total)
		end := min(start+q.Limit, total)
		all = all[start:end]
	}
	return all, total, nil
}

func (r restaurantRepo) Count(_ context.Context, q storage.RestaurantQuery) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("Restaurants.Count"); err != nil {
		return 0, err
	}
	return len(r.match(q)), nil
}

func (r restaurantRepo) Create(ctx context.Context, rest *models.Restaurant) error {
	return r.write("Restaurants.Create", rest)
}

func (r restaurantRepo) Save(ctx context.Context, rest *models.Restaurant) error {
	return r.write("Restaurants.Save", rest)
}

func (r restaurantRepo) write(op string, rest *models.Restaurant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault(op); err != nil {
		return err
	}
	stamp(&rest.CoreModel, r.s.id())
	stored := *rest
	stored.Category, stored.Owner, stored.Menu, stored.Orders = nil, nil, nil, nil
	r.s.t.restaurants[rest.ID] = stored
	r.s.writes++
	return nil
}

func (r restaurantRepo) Delete(_ context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("Restaurants.Delete"); err != nil {
		return err
	}
	delete(r.s.t.restaurants, id)
	for dishID, d := range r.s.t.dishes {
		if d.RestaurantID == id {
			delete(r.s.t.dishes, dishID)
		}
	}
	r.s.writes++
	return nil
}

func (r restaurantRepo) ClearExpiredPromotions(_ context.Context, now time.Time) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("Restaurants.ClearExpiredPromotions"); err != nil {
		return 0, err
	}
	n := 0
	for id, rest := range r.s.t.restaurants {
		if rest.IsPromoted && rest.PromotedUntil != nil && rest.PromotedUntil.Before(now) {
			rest.IsPromoted = false
			rest.PromotedUntil = nil
			r.s.t.restaurants[id] = rest
			n++
		}
	}
	if n > 0 {
		r.s.writes++
	}
	return n, nil
}

func (s *Store) dishesOf(restaurantID int) []models.Dish {
	var out []models.Dish
	for _, d := range s.t.dishes {
		if d.RestaurantID == restaurantID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// --- dishes ---

type dishRepo struct{ s *Store }

func (r dishRepo) FindByID(_ context.Context, id int) (*models.Dish, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("Dishes.FindByID"); err != nil {
		return nil, err
	}
	d, ok := r.s.t.dishes[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	if rest, ok := r.s.t.restaurants[d.RestaurantID]; ok {
		d.Restaurant = &rest
	}
	return &d, nil
}

func (r dishRepo) Create(_ context.Context, d *models.Dish) error {
	return r.write("Dishes.Create", d)
}

func (r dishRepo) Save(_ context.Context, d *models.Dish) error {
	return r.write("Dishes.Save", d)
}

func (r dishRepo) write(op string, d *models.Dish) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault(op); err != nil {
		return err
	}
	stamp(&d.CoreModel, r.s.id())
	stored := *d
	stored.Restaurant = nil
	r.s.t.dishes[d.ID] = stored
	r.s.writes++
	return nil
}

func (r dishRepo) Delete(_ context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("Dishes.Delete"); err != nil {
		return err
	}
	delete(r.s.t.dishes, id)
	r.s.writes++
	return nil
}

// --- orders ---

func (s *Store) ordersOf(restaurantID int) []models.Order {
	var out []models.Order
	for _, o := range s.t.orders {
		if o.RestaurantID != nil && *o.RestaurantID == restaurantID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (s *Store) loadOrder(o models.Order) models.Order {
	if o.RestaurantID != nil {
		if rest, ok := s.t.restaurants[*o.RestaurantID]; ok {
			o.Restaurant = &rest
		}
	}
	o.Items = nil
	for _, it := range s.t.orderItems {
		if it.OrderID != o.ID {
			continue
		}
		if d, ok := s.t.dishes[it.DishID]; ok {
			it.Dish = &d
		}
		o.Items = append(o.Items, it)
	}
	sort.Slice(o.Items, func(i, j int) bool { return o.Items[i].ID < o.Items[j].ID })
	return o
}

type orderRepo struct{ s *Store }

func (r orderRepo) FindByID(_ context.Context, id int) (*models.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("Orders.FindByID"); err != nil {
		return nil, err
	}
	o, ok := r.s.t.orders[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	o = r.s.loadOrder(o)
	return &o, nil
}

func (r orderRepo) Find(_ context.Context, q storage.OrderQuery) ([]models.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("Orders.Find"); err != nil {
		return nil, err
	}
	var out []models.Order
	for _, o := range r.s.t.orders {
		switch {
		case q.CustomerID != nil:
			if o.CustomerID == nil || *o.CustomerID != *q.CustomerID {
				continue
			}
		case q.DriverID != nil:
			if o.DriverID == nil || *o.DriverID != *q.DriverID {
				continue
			}
		case q.OwnerID != nil:
			if o.RestaurantID == nil {
				continue
			}
			rest, ok := r.s.t.restaurants[*o.RestaurantID]
			if !ok || rest.OwnerID != *q.OwnerID {
				continue
			}
		}
		if q.Status != nil && o.Status != *q.Status {
			continue
		}
		out = append(out, r.s.loadOrder(o))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r orderRepo) Create(_ context.Context, o *models.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("Orders.Create"); err != nil {
		return err
	}
	stamp(&o.CoreModel, r.s.id())
	for i := range o.Items {
		it := &o.Items[i]
		it.OrderID = o.ID
		stamp(&it.CoreModel, r.s.id())
		stored := *it
		stored.Dish = nil
		r.s.t.orderItems[it.ID] = stored
	}
	stored := *o
	stored.Items, stored.Restaurant, stored.Customer, stored.Driver = nil, nil, nil, nil
	r.s.t.orders[o.ID] = stored
	r.s.writes++
	return nil
}

func (r orderRepo) UpdateStatus(_ context.Context, id int, status models.OrderStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("Orders.UpdateStatus"); err != nil {
		return err
	}
	o, ok := r.s.t.orders[id]
	if !ok {
		return storage.ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	r.s.t.orders[id] = o
	r.s.writes++
	return nil
}

func (r orderRepo) AssignDriver(_ context.Context, id, driverID int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("Orders.AssignDriver"); err != nil {
		return err
	}
	o, ok := r.s.t.orders[id]
	if !ok {
		return storage.ErrNotFound
	}
	if o.DriverID != nil {
		return storage.ErrConflict
	}
	o.DriverID = &driverID
	o.UpdatedAt = time.Now()
	r.s.t.orders[id] = o
	r.s.writes++
	return nil
}

// --- payments ---

type paymentRepo struct{ s *Store }

func (r paymentRepo) FindByUser(_ context.Context, userID int) ([]models.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("Payments.FindByUser"); err != nil {
		return nil, err
	}
	var out []models.Payment
	for _, p := range r.s.t.payments {
		if p.UserID != userID {
			continue
		}
		if rest, ok := r.s.t.restaurants[p.RestaurantID]; ok {
			p.Restaurant = &rest
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r paymentRepo) Create(_ context.Context, p *models.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("Payments.Create"); err != nil {
		return err
	}
	stamp(&p.CoreModel, r.s.id())
	stored := *p
	stored.User, stored.Restaurant = nil, nil
	r.s.t.payments[p.ID] = stored
	r.s.writes++
	return nil
}
