// Package payments records promotion payments and expires the promotions
// they buy.
package payments

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"eats-backend/internal/app/core"
	"eats-backend/internal/metrics"
	"eats-backend/internal/models"
	"eats-backend/internal/storage"
)

const (
	errRestaurantNotFound = "Restaurant not found."
	errNotAllowed         = "You are not allowed to do this."
	errCreatePayment      = "Could not create payment."
	errLoadPayments       = "Could not load payments."
)

// PromotionPeriod is how long one payment keeps a restaurant promoted.
const PromotionPeriod = 7 * 24 * time.Hour

type Service struct {
	store storage.Manager
	log   *slog.Logger
	now   func() time.Time
}

func NewService(store storage.Manager, log *slog.Logger) *Service {
	return &Service{store: store, log: log, now: time.Now}
}

type CreatePaymentInput struct {
	TransactionID string
	RestaurantID  int
}

type PaymentsOutput struct {
	core.Output
	Payments []models.Payment
}

func (s *Service) CreatePayment(ctx context.Context, ownerID int, in CreatePaymentInput) (out core.Output) {
	defer core.Track("createPayment", &out)
	defer core.Recover(ctx, s.log, "createPayment", &out, errCreatePayment)

	rest, err := s.store.Restaurants().FindByID(ctx, in.RestaurantID)
	if errors.Is(err, storage.ErrNotFound) {
		return core.NotFound(errRestaurantNotFound)
	}
	if err != nil {
		return core.Unexpected(ctx, s.log, "createPayment", err, errCreatePayment)
	}
	if rest.OwnerID != ownerID {
		return core.Unauthorized(errNotAllowed)
	}

	until := s.now().Add(PromotionPeriod)
	err = s.store.Transaction(ctx, func(tx storage.Manager) error {
		p := &models.Payment{TransactionID: in.TransactionID, UserID: ownerID, RestaurantID: rest.ID}
		if err := tx.Payments().Create(ctx, p); err != nil {
			return fmt.Errorf("create payment: %w", err)
		}
		rest.IsPromoted = true
		rest.PromotedUntil = &until
		if err := tx.Restaurants().Save(ctx, rest); err != nil {
			return fmt.Errorf("promote restaurant: %w", err)
		}
		return nil
	})
	if err != nil {
		return core.Unexpected(ctx, s.log, "createPayment", err, errCreatePayment)
	}
	s.log.InfoContext(ctx, "restaurant promoted", "restaurant_id", rest.ID, "until", until)
	return core.Success()
}

func (s *Service) GetPayments(ctx context.Context, userID int) (out PaymentsOutput) {
	defer core.Track("getPayments", &out.Output)
	defer core.Recover(ctx, s.log, "getPayments", &out.Output, errLoadPayments)

	list, err := s.store.Payments().FindByUser(ctx, userID)
	if err != nil {
		return PaymentsOutput{Output: core.Unexpected(ctx, s.log, "getPayments", err, errLoadPayments)}
	}
	return PaymentsOutput{Output: core.Success(), Payments: list}
}

// ClearExpiredPromotions demotes every restaurant whose promotion has ended.
func (s *Service) ClearExpiredPromotions(ctx context.Context) (int, error) {
	n, err := s.store.Restaurants().ClearExpiredPromotions(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("clear expired promotions: %w", err)
	}
	if n > 0 {
		metrics.PromotionsCleared.Add(float64(n))
		s.log.InfoContext(ctx, "promotions expired", "count", n)
	}
	return n, nil
}

// RunSweeper clears expired promotions every interval until ctx is done.
func (s *Service) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.ClearExpiredPromotions(ctx); err != nil {
				s.log.ErrorContext(ctx, "promotion sweep failed", "error", err)
			}
		}
	}
}
