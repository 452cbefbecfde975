package repository

import (
	"context"
	"errors"

	"storefront-api/models"
	"storefront-api/statemachine"

	"gorm.io/gorm"
)

// ErrInvalidTransition wraps state machine rejections
var ErrInvalidTransition = errors.New("invalid status transition")

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create appends a new order record
func (r *OrderRepository) Create(ctx context.Context, rec *models.OrderRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *OrderRepository) Get(ctx context.Context, id string) (*models.OrderRecord, error) {
	var rec models.OrderRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &rec, nil
}

// ListByUser returns a customer's orders, newest first
func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]models.OrderRecord, error) {
	var orders []models.OrderRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&orders).Error
	return orders, err
}

// ListAll returns every order, newest first, optionally filtered by status
func (r *OrderRepository) ListAll(ctx context.Context, status models.OrderStatus) ([]models.OrderRecord, error) {
	var orders []models.OrderRecord
	query := r.db.WithContext(ctx)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Order("created_at desc").Find(&orders).Error
	return orders, err
}

// UpdateStatus moves an order through reconciliation and records the change
func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, to models.OrderStatus, actor, changedBy, note string) (*models.OrderRecord, models.OrderStatus, error) {
	var rec models.OrderRecord
	var prev models.OrderStatus
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&rec, "id = ?", id).Error; err != nil {
			return notFound(err)
		}
		if err := statemachine.CanTransition(rec.Status, to, actor); err != nil {
			return errors.Join(ErrInvalidTransition, err)
		}
		prev = rec.Status
		if err := tx.Model(&rec).Update("status", to).Error; err != nil {
			return err
		}
		rec.Status = to
		return tx.Create(&models.OrderStatusHistory{
			OrderID:    rec.ID,
			FromStatus: prev,
			ToStatus:   to,
			ChangedBy:  changedBy,
			Note:       note,
		}).Error
	})
	if err != nil {
		return nil, "", err
	}
	return &rec, prev, nil
}

// History returns the status changes of an order, oldest first
func (r *OrderRepository) History(ctx context.Context, id string) ([]models.OrderStatusHistory, error) {
	var history []models.OrderStatusHistory
	err := r.db.WithContext(ctx).Where("order_id = ?", id).Order("id asc").Find(&history).Error
	return history, err
}
