package postgres

import (
	"context"

	"eats-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type userRepo struct {
	db *gorm.DB
}

func (r userRepo) FindByID(ctx context.Context, id int) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, mapError(err)
	}
	return &u, nil
}

func (r userRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, mapError(err)
	}
	return &u, nil
}

func (r userRepo) Create(ctx context.Context, u *models.User) error {
	return mapError(r.db.WithContext(ctx).Omit(clause.Associations).Create(u).Error)
}

func (r userRepo) Save(ctx context.Context, u *models.User) error {
	return mapError(r.db.WithContext(ctx).Omit(clause.Associations).Save(u).Error)
}

type verificationRepo struct {
	db *gorm.DB
}

func (r verificationRepo) FindByCode(ctx context.Context, code string) (*models.Verification, error) {
	var v models.Verification
	err := r.db.WithContext(ctx).Preload("User").Where("code = ?", code).First(&v).Error
	if err != nil {
		return nil, mapError(err)
	}
	return &v, nil
}

func (r verificationRepo) Create(ctx context.Context, v *models.Verification) error {
	return mapError(r.db.WithContext(ctx).Omit(clause.Associations).Create(v).Error)
}

func (r verificationRepo) Delete(ctx context.Context, id int) error {
	return mapError(r.db.WithContext(ctx).Delete(&models.Verification{}, id).Error)
}

func (r verificationRepo) DeleteByUser(ctx context.Context, userID int) error {
	return mapError(r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Verification{}).Error)
}
