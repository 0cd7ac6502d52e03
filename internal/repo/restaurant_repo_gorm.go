package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"restaurant-admin/internal/domain"
)

type RestaurantRepo struct{ db *gorm.DB }

func NewRestaurantRepo(db *gorm.DB) *RestaurantRepo { return &RestaurantRepo{db: db} }

func (r *RestaurantRepo) List(ctx context.Context) ([]domain.Restaurant, error) {
	var rs []domain.Restaurant
	if err := r.db.WithContext(ctx).Preload("Category").Order("id asc").Find(&rs).Error; err != nil {
		return nil, err
	}
	return rs, nil
}

func (r *RestaurantRepo) FindByID(ctx context.Context, id uint, withCategory bool) (*domain.Restaurant, error) {
	q := r.db.WithContext(ctx)
	if withCategory {
		q = q.Preload("Category")
	}
	var rs domain.Restaurant
	err := q.First(&rs, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rs, nil
}

// 关联只认 category_id，不级联写 Category
func (r *RestaurantRepo) Create(ctx context.Context, rs *domain.Restaurant) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(rs).Error
}

func (r *RestaurantRepo) Update(ctx context.Context, rs *domain.Restaurant) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(rs).Error
}

func (r *RestaurantRepo) Delete(ctx context.Context, rs *domain.Restaurant) error {
	return r.db.WithContext(ctx).Delete(&domain.Restaurant{}, rs.ID).Error
}
