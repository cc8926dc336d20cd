package settings

import (
	"context"

	"gorm.io/gorm"

	"github.com/mahedios/estore-backend/pkg/db/models"
)

// Repository defines persistence operations for the single settings row.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Find(ctx context.Context) (*models.SiteSettings, error)
	Create(ctx context.Context, settings *models.SiteSettings) error
	Update(ctx context.Context, settings *models.SiteSettings) error
}
