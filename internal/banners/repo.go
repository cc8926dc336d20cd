package banners

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mahedios/estore-backend/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a hero banner repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, banner *models.HeroBanner) (*models.HeroBanner, error) {
	if err := r.db.WithContext(ctx).Create(banner).Error; err != nil {
		return nil, err
	}
	return banner, nil
}

func (r *repository) Update(ctx context.Context, banner *models.HeroBanner) error {
	return r.db.WithContext(ctx).Save(banner).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.HeroBanner{}, "id = ?", id).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.HeroBanner, error) {
	var banner models.HeroBanner
	err := r.db.WithContext(ctx).
		Preload("Product").
		First(&banner, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &banner, nil
}

func (r *repository) ListAll(ctx context.Context) ([]models.HeroBanner, error) {
	var banners []models.HeroBanner
	err := r.db.WithContext(ctx).
		Preload("Product").
		Order("position ASC, created_at ASC").
		Find(&banners).Error
	if err != nil {
		return nil, err
	}
	return banners, nil
}

func (r *repository) ListActive(ctx context.Context) ([]models.HeroBanner, error) {
	var banners []models.HeroBanner
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("is_active = TRUE").
		Order("position ASC, created_at ASC").
		Find(&banners).Error
	if err != nil {
		return nil, err
	}
	return banners, nil
}

func (r *repository) UpdatePosition(ctx context.Context, id uuid.UUID, position int) error {
	return r.db.WithContext(ctx).
		Model(&models.HeroBanner{}).
		Where("id = ?", id).
		Update("position", position).Error
}
