package repository

import (
	"context"

	"storefront-api/models"

	"gorm.io/gorm"
)

type MenuRepository struct {
	db *gorm.DB
}

func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{db: db}
}

// List returns the menu ordered by name, optionally narrowed to one food type
func (r *MenuRepository) List(ctx context.Context, foodType models.FoodType) ([]models.MenuItem, error) {
	var items []models.MenuItem
	query := r.db.WithContext(ctx)
	if foodType != "" {
		query = query.Where("food_type = ?", foodType)
	}
	if err := query.Order("name asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *MenuRepository) Get(ctx context.Context, id string) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &item, nil
}

func (r *MenuRepository) Create(ctx context.Context, item *models.MenuItem) error {
	if err := models.Validate(item); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(item).Error
}

// Update applies patch to the stored item and saves every column
func (r *MenuRepository) Update(ctx context.Context, id string, patch models.MenuItemPatch) (*models.MenuItem, error) {
	var item models.MenuItem
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, "id = ?", id).Error; err != nil {
			return notFound(err)
		}
		patch.Apply(&item)
		if err := models.Validate(&item); err != nil {
			return err
		}
		return tx.Save(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *MenuRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.MenuItem{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
