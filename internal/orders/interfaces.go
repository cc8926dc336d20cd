package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mahedios/estore-backend/pkg/db/models"
	"github.com/mahedios/estore-backend/pkg/enums"
)

// Repository defines persistence operations for orders and their history.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	CreateStatusHistory(ctx context.Context, record *models.OrderStatusHistory) error
	UpdateStatus(ctx context.Context, orderRef uuid.UUID, status enums.OrderStatus) error
	FindByRef(ctx context.Context, orderRef uuid.UUID) (*models.Order, error)
	FindByPublicKey(ctx context.Context, key string) (*models.Order, error)
	OrderIDExists(ctx context.Context, orderID string) (bool, error)
	List(ctx context.Context, filters Filters, limit, offset int) ([]models.Order, int64, error)
}
