package repository

import (
	"context"
	"time"

	"storefront-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const restaurantInfoID = 1

type RestaurantRepository struct {
	db *gorm.DB
}

func NewRestaurantRepository(db *gorm.DB) *RestaurantRepository {
	return &RestaurantRepository{db: db}
}

// Get returns the storefront profile, or ErrNotFound before it is first saved
func (r *RestaurantRepository) Get(ctx context.Context) (*models.RestaurantInfo, error) {
	var info models.RestaurantInfo
	if err := r.db.WithContext(ctx).First(&info, restaurantInfoID).Error; err != nil {
		return nil, notFound(err)
	}
	return &info, nil
}

// Save upserts the storefront profile
func (r *RestaurantRepository) Save(ctx context.Context, info *models.RestaurantInfo) error {
	info.ID = restaurantInfoID
	info.UpdatedAt = time.Now().UTC()
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(info).Error
}
