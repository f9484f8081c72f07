package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"eats-backend/internal/models"
	"eats-backend/internal/storage"
)

func TestUsers_UniqueEmail(t *testing.T) {
	s := New()
	ctx := context.Background()

	u := &models.User{Email: "bs@email.com", Role: models.RoleClient}
	u.SetPassword("pw")
	if err := s.Users().Create(ctx, u); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.ID == 0 || u.Password == "" || u.Password == "pw" {
		t.Fatalf("unexpected stored user: %+v", u)
	}

	dup := &models.User{Email: "bs@email.com"}
	if err := s.Users().Create(ctx, dup); !errors.Is(err, storage.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestTransaction_RollsBackOnError(t *testing.T) {
	s := New()
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.Transaction(ctx, func(tx storage.Manager) error {
		if err := tx.Users().Create(ctx, &models.User{Email: "a@b.c"}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if _, err := s.Users().FindByEmail(ctx, "a@b.c"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("user should be rolled back, got %v", err)
	}
	if s.Writes() != 0 {
		t.Fatalf("writes = %d, want 0", s.Writes())
	}
}

func TestRestaurants_FindPromotedFirstAndPaged(t *testing.T) {
	s := New()
	ctx := context.Background()
	for _, r := range []models.Restaurant{
		{Name: "Alpha", OwnerID: 1},
		{Name: "Beta", OwnerID: 1, IsPromoted: true},
		{Name: "Gamma", OwnerID: 2},
	} {
		r := r
		if err := s.Restaurants().Create(ctx, &r); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	page, total, err := s.Restaurants().Find(ctx, storage.RestaurantQuery{Limit: 2, PromotedFirst: true})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if total != 3 || len(page) != 2 || page[0].Name != "Beta" {
		t.Fatalf("unexpected page: total=%d page=%+v", total, page)
	}

	found, _, err := s.Restaurants().Find(ctx, storage.RestaurantQuery{NameContains: "AMM"})
	if err != nil || len(found) != 1 || found[0].Name != "Gamma" {
		t.Fatalf("search: %v %+v", err, found)
	}
}

func TestFailOn(t *testing.T) {
	s := New()
	boom := errors.New("boom")
	s.FailOn("Users.FindByID", boom)
	if _, err := s.Users().FindByID(context.Background(), 1); !errors.Is(err, boom) {
		t.Fatalf("expected injected error, got %v", err)
	}
	s.FailOn("Users.FindByID", nil)
	if _, err := s.Users().FindByID(context.Background(), 1); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestOrders_AssignDriverOnlyOnce(t *testing.T) {
	s := New()
	ctx := context.Background()

	o := &models.Order{Status: models.OrderPending}
	if err := s.Orders().Create(ctx, o); err != nil {
		t.Fatal(err)
	}
	if err := s.Orders().AssignDriver(ctx, o.ID, 5); err != nil {
		t.Fatalf("first assign: %v", err)
	}
	if err := s.Orders().AssignDriver(ctx, o.ID, 6); !errors.Is(err, storage.ErrConflict) {
		t.Fatalf("second assign: expected ErrConflict, got %v", err)
	}
	if err := s.Orders().AssignDriver(ctx, 999, 6); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("missing order: expected ErrNotFound, got %v", err)
	}
	if err := s.Orders().UpdateStatus(ctx, o.ID, models.OrderCooked); err != nil {
		t.Fatal(err)
	}

	got, err := s.Orders().FindByID(ctx, o.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.DriverID == nil || *got.DriverID != 5 || got.Status != models.OrderCooked {
		t.Errorf("order = %+v", got)
	}
}

func TestTransaction_RollbackKeepsConcurrentCommit(t *testing.T) {
	s := New()
	ctx := context.Background()

	started := make(chan struct{})
	release := make(chan struct{})
	failed := make(chan error, 1)
	go func() {
		failed <- s.Transaction(ctx, func(tx storage.Manager) error {
			if err := tx.Users().Create(ctx, &models.User{Email: "rolled@back.com"}); err != nil {
				return err
			}
			close(started)
			<-release
			return errors.New("boom")
		})
	}()
	<-started

	committed := make(chan error, 1)
	go func() {
		committed <- s.Transaction(ctx, func(tx storage.Manager) error {
			return tx.Users().Create(ctx, &models.User{Email: "kept@commit.com"})
		})
	}()
	time.Sleep(20 * time.Millisecond)
	close(release)

	if err := <-failed; err == nil {
		t.Fatal("expected the first transaction to fail")
	}
	if err := <-committed; err != nil {
		t.Fatalf("second transaction: %v", err)
	}
	if _, err := s.Users().FindByEmail(ctx, "kept@commit.com"); err != nil {
		t.Errorf("committed user lost: %v", err)
	}
	if _, err := s.Users().FindByEmail(ctx, "rolled@back.com"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("rolled back user still present: %v", err)
	}
}
