package cart

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mahedios/estore-backend/pkg/db/models"
)

// Repository defines persistence operations for session carts.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, item *models.CartItem) (*models.CartItem, error)
	Update(ctx context.Context, item *models.CartItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteBySession(ctx context.Context, sessionKey string) error
	FindItem(ctx context.Context, sessionKey string, productID uuid.UUID) (*models.CartItem, error)
	ListItems(ctx context.Context, sessionKey string) ([]models.CartItem, error)
}
