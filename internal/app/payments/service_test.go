package payments

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"eats-backend/internal/models"
	"eats-backend/internal/storage/memory"
)

func newSvc(t *testing.T) (*Service, *memory.Store, int) {
	t.Helper()
	store := memory.New()
	rest := &models.Restaurant{Name: "Pizzeria", OwnerID: 1}
	if err := store.Restaurants().Create(context.Background(), rest); err != nil {
		t.Fatal(err)
	}
	return NewService(store, slog.New(slog.NewTextHandler(io.Discard, nil))), store, rest.ID
}

func TestCreatePayment_PromotesRestaurant(t *testing.T) {
	svc, store, restID := newSvc(t)
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	out := svc.CreatePayment(ctx, 1, CreatePaymentInput{TransactionID: "tx-1", RestaurantID: restID})
	if !out.OK {
		t.Fatalf("got %+v", out)
	}

	rest, _ := store.Restaurants().FindByID(ctx, restID)
	if !rest.IsPromoted || rest.PromotedUntil == nil || !rest.PromotedUntil.Equal(now.Add(7*24*time.Hour)) {
		t.Fatalf("restaurant = %+v", rest)
	}

	list := svc.GetPayments(ctx, 1)
	if !list.OK || len(list.Payments) != 1 || list.Payments[0].TransactionID != "tx-1" {
		t.Fatalf("payments = %+v", list)
	}
}

func TestCreatePayment_Rejections(t *testing.T) {
	svc, store, restID := newSvc(t)
	ctx := context.Background()

	if out := svc.CreatePayment(ctx, 1, CreatePaymentInput{RestaurantID: 999}); out.Error != errRestaurantNotFound {
		t.Errorf("missing: %+v", out)
	}
	writes := store.Writes()
	if out := svc.CreatePayment(ctx, 2, CreatePaymentInput{RestaurantID: restID}); out.Error != errNotAllowed {
		t.Errorf("not owner: %+v", out)
	}
	if store.Writes() != writes {
		t.Error("rejected payment must not write")
	}

	store.FailOn("Restaurants.Save", errors.New("boom"))
	if out := svc.CreatePayment(ctx, 1, CreatePaymentInput{RestaurantID: restID}); out.Error != errCreatePayment {
		t.Errorf("store failure: %+v", out)
	}
	if list := svc.GetPayments(ctx, 1); len(list.Payments) != 0 {
		t.Errorf("payment must roll back, got %+v", list.Payments)
	}

	store.FailOn("Payments.FindByUser", errors.New("boom"))
	if out := svc.GetPayments(ctx, 1); out.Error != errLoadPayments {
		t.Errorf("load failure: %+v", out)
	}
}

func TestClearExpiredPromotions(t *testing.T) {
	svc, store, restID := newSvc(t)
	ctx := context.Background()
	start := time.Now()
	svc.now = func() time.Time { return start }

	if out := svc.CreatePayment(ctx, 1, CreatePaymentInput{TransactionID: "tx", RestaurantID: restID}); !out.OK {
		t.Fatalf("got %+v", out)
	}
	if n, err := svc.ClearExpiredPromotions(ctx); err != nil || n != 0 {
		t.Fatalf("early sweep: n=%d err=%v", n, err)
	}

	svc.now = func() time.Time { return start.Add(PromotionPeriod + time.Minute) }
	if n, err := svc.ClearExpiredPromotions(ctx); err != nil || n != 1 {
		t.Fatalf("late sweep: n=%d err=%v", n, err)
	}
	rest, _ := store.Restaurants().FindByID(ctx, restID)
	if rest.IsPromoted || rest.PromotedUntil != nil {
		t.Fatalf("restaurant still promoted: %+v", rest)
	}
}

func TestRunSweeper_StopsOnCancel(t *testing.T) {
	svc, _, _ := newSvc(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		svc.RunSweeper(ctx, time.Millisecond)
		close(done)
	}()
	time.Sleep(5 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}
