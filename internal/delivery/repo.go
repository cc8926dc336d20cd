package delivery

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mahedios/estore-backend/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a delivery option repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, option *models.DeliveryOption) (*models.DeliveryOption, error) {
	if err := r.db.WithContext(ctx).Create(option).Error; err != nil {
		return nil, err
	}
	return option, nil
}

func (r *repository) Update(ctx context.Context, option *models.DeliveryOption) error {
	return r.db.WithContext(ctx).Save(option).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.DeliveryOption{}, "id = ?", id).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.DeliveryOption, error) {
	var option models.DeliveryOption
	if err := r.db.WithContext(ctx).First(&option, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &option, nil
}

func (r *repository) ListAll(ctx context.Context) ([]models.DeliveryOption, error) {
	var options []models.DeliveryOption
	err := r.db.WithContext(ctx).
		Order("position ASC, price ASC").
		Find(&options).Error
	if err != nil {
		return nil, err
	}
	return options, nil
}

func (r *repository) ListActive(ctx context.Context) ([]models.DeliveryOption, error) {
	var options []models.DeliveryOption
	err := r.db.WithContext(ctx).
		Where("is_active = TRUE").
		Order("position ASC, price ASC").
		Find(&options).Error
	if err != nil {
		return nil, err
	}
	return options, nil
}

func (r *repository) CountOrders(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("delivery_option_id = ?", id).
		Count(&count).Error
	return count, err
}
