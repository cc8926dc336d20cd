package adminauth

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mahedios/estore-backend/pkg/db/models"
)

// Repository defines persistence operations for admin accounts.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, user *models.AdminUser) (*models.AdminUser, error)
	Update(ctx context.Context, user *models.AdminUser) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.AdminUser, error)
	FindByUsername(ctx context.Context, username string) (*models.AdminUser, error)
}
