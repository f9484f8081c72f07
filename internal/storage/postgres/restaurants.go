package postgres

import (
	"context"
	"strings"
	"time"

	"eats-backend/internal/models"
	"eats-backend/internal/storage"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type categoryRepo struct {
	db *gorm.DB
}

func (r categoryRepo) FindAll(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	if err := r.db.WithContext(ctx).Order("name").Find(&out).Error; err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

func (r categoryRepo) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var c models.Category
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&c).Error; err != nil {
		return nil, mapError(err)
	}
	return &c, nil
}

func (r categoryRepo) Create(ctx context.Context, c *models.Category) error {
	return mapError(r.db.WithContext(ctx).Create(c).Error)
}

type restaurantRepo struct {
	db *gorm.DB
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r restaurantRepo) filter(ctx context.Context, q storage.RestaurantQuery) *gorm.DB {
	db := r.db.WithContext(ctx).Model(&models.Restaurant{})
	if q.OwnerID != nil {
		db = db.Where("owner_id = ?", *q.OwnerID)
	}
	if q.CategoryID != nil {
		db = db.Where("category_id = ?", *q.CategoryID)
	}
	if q.NameContains != "" {
		db = db.Where("name ILIKE ?", "%"+likeEscaper.Replace(q.NameContains)+"%")
	}
	return db
}

func (r restaurantRepo) FindByID(ctx context.Context, id int, relations ...string) (*models.Restaurant, error) {
	db := r.db.WithContext(ctx).Preload("Category")
	for _, rel := range relations {
		db = db.Preload(rel)
	}
	var rest models.Restaurant
	if err := db.First(&rest, id).Error; err != nil {
		return nil, mapError(err)
	}
	return &rest, nil
}

func (r restaurantRepo) Find(ctx context.Context, q storage.RestaurantQuery) ([]models.Restaurant, int, error) {
	total, err := r.Count(ctx, q)
	if err != nil {
		return nil, 0, err
	}

	db := r.filter(ctx, q).Preload("Category")
	if q.PromotedFirst {
		db = db.Order("is_promoted DESC")
	}
	db = db.Order("id")
	if q.Limit > 0 {
		db = db.Offset(q.Offset).Limit(q.Limit)
	}

	var out []models.Restaurant
	if err := db.Find(&out).Error; err != nil {
		return nil, 0, mapError(err)
	}
	return out, total, nil
}

func (r restaurantRepo) Count(ctx context.Context, q storage.RestaurantQuery) (int, error) {
	var total int64
	if err := r.filter(ctx, q).Count(&total).Error; err != nil {
		return 0, mapError(err)
	}
	return int(total), nil
}

func (r restaurantRepo) Create(ctx context.Context, rest *models.Restaurant) error {
	return mapError(r.db.WithContext(ctx).Omit(clause.Associations).Create(rest).Error)
}

func (r restaurantRepo) Save(ctx context.Context, rest *models.Restaurant) error {
	return mapError(r.db.WithContext(ctx).Omit(clause.Associations).Save(rest).Error)
}

func (r restaurantRepo) Delete(ctx context.Context, id int) error {
	return mapError(r.db.WithContext(ctx).Delete(&models.Restaurant{}, id).Error)
}

func (r restaurantRepo) ClearExpiredPromotions(ctx context.Context, now time.Time) (int, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Restaurant{}).
		Where("is_promoted = ? AND promoted_until < ?", true, now).
		Updates(map[string]any{"is_promoted": false, "promoted_until": nil})
	if res.Error != nil {
		return 0, mapError(res.Error)
	}
	return int(res.RowsAffected), nil
}

type dishRepo struct {
	db *gorm.DB
}

func (r dishRepo) FindByID(ctx context.Context, id int) (*models.Dish, error) {
	var d models.Dish
	if err := r.db.WithContext(ctx).Preload("Restaurant").First(&d, id).Error; err != nil {
		return nil, mapError(err)
	}
	return &d, nil
}

func (r dishRepo) Create(ctx context.Context, d *models.Dish) error {
	return mapError(r.db.WithContext(ctx).Omit(clause.Associations).Create(d).Error)
}

func (r dishRepo) Save(ctx context.Context, d *models.Dish) error {
	return mapError(r.db.WithContext(ctx).Omit(clause.Associations).Save(d).Error)
}

func (r dishRepo) Delete(ctx context.Context, id int) error {
	return mapError(r.db.WithContext(ctx).Delete(&models.Dish{}, id).Error)
}
