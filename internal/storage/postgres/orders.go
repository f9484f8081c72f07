package postgres

import (
	"context"

	"eats-backend/internal/models"
	"eats-backend/internal/storage"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type orderRepo struct {
	db *gorm.DB
}

func (r orderRepo) FindByID(ctx context.Context, id int) (*models.Order, error) {
	var o models.Order
	err := r.db.WithContext(ctx).
		Preload("Restaurant").
		Preload("Items.Dish").
		First(&o, id).Error
	if err != nil {
		return nil, mapError(err)
	}
	return &o, nil
}

func (r orderRepo) Find(ctx context.Context, q storage.OrderQuery) ([]models.Order, error) {
	db := r.db.WithContext(ctx).Model(&models.Order{}).Preload("Restaurant").Preload("Items.Dish")
	switch {
	case q.CustomerID != nil:
		db = db.Where("orders.customer_id = ?", *q.CustomerID)
	case q.DriverID != nil:
		db = db.Where("orders.driver_id = ?", *q.DriverID)
	case q.OwnerID != nil:
		db = db.Joins("JOIN restaurants ON restaurants.id = orders.restaurant_id").
			Where("restaurants.owner_id = ?", *q.OwnerID)
	}
	if q.Status != nil {
		db = db.Where("orders.status = ?", *q.Status)
	}

	var out []models.Order
	if err := db.Order("orders.id DESC").Find(&out).Error; err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

func (r orderRepo) Create(ctx context.Context, o *models.Order) error {
	db := r.db.WithContext(ctx)
	if err := db.Omit(clause.Associations).Create(o).Error; err != nil {
		return mapError(err)
	}
	for i := range o.Items {
		o.Items[i].OrderID = o.ID
	}
	if len(o.Items) == 0 {
		return nil
	}
	return mapError(db.Omit(clause.Associations).Create(&o.Items).Error)
}

func (r orderRepo) UpdateStatus(ctx context.Context, id int, status models.OrderStatus) error {
	res := r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r orderRepo) AssignDriver(ctx context.Context, id, driverID int) error {
	db := r.db.WithContext(ctx)
	res := db.Model(&models.Order{}).
		Where("id = ? AND driver_id IS NULL", id).
		Update("driver_id", driverID)
	if res.Error != nil {
		return mapError(res.Error)
	}
	if res.RowsAffected == 1 {
		return nil
	}

	var n int64
	if err := db.Model(&models.Order{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return mapError(err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return storage.ErrConflict
}

type paymentRepo struct {
	db *gorm.DB
}

func (r paymentRepo) FindByUser(ctx context.Context, userID int) ([]models.Payment, error) {
	var out []models.Payment
	err := r.db.WithContext(ctx).
		Preload("Restaurant").
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&out).Error
	if err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

func (r paymentRepo) Create(ctx context.Context, p *models.Payment) error {
	return mapError(r.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error)
}
