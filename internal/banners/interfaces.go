package banners

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mahedios/estore-backend/pkg/db/models"
)

// Repository defines persistence operations for hero banners.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, banner *models.HeroBanner) (*models.HeroBanner, error)
	Update(ctx context.Context, banner *models.HeroBanner) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.HeroBanner, error)
	ListAll(ctx context.Context) ([]models.HeroBanner, error)
	ListActive(ctx context.Context) ([]models.HeroBanner, error)
	UpdatePosition(ctx context.Context, id uuid.UUID, position int) error
}
