package delivery

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mahedios/estore-backend/pkg/db/models"
)

// Repository defines persistence operations for delivery options.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, option *models.DeliveryOption) (*models.DeliveryOption, error)
	Update(ctx context.Context, option *models.DeliveryOption) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.DeliveryOption, error)
	ListAll(ctx context.Context) ([]models.DeliveryOption, error)
	ListActive(ctx context.Context) ([]models.DeliveryOption, error)
	CountOrders(ctx context.Context, id uuid.UUID) (int64, error)
}
