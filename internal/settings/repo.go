package settings

import (
	"context"

	"gorm.io/gorm"

	"github.com/mahedios/estore-backend/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a site settings repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Find(ctx context.Context) (*models.SiteSettings, error) {
	var settings models.SiteSettings
	err := r.db.WithContext(ctx).First(&settings, "id = ?", models.SiteSettingsID).Error
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *repository) Create(ctx context.Context, settings *models.SiteSettings) error {
	return r.db.WithContext(ctx).Create(settings).Error
}

func (r *repository) Update(ctx context.Context, settings *models.SiteSettings) error {
	return r.db.WithContext(ctx).Save(settings).Error
}
