package delivery

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mahedios/estore-backend/pkg/db/models"
	pkgerrors "github.com/mahedios/estore-backend/pkg/errors"
	"github.com/mahedios/estore-backend/pkg/logger"
)

// CreateInput carries the fields for a new delivery option.
type CreateInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	IsActive    *bool
	Position    int
}

// UpdateInput carries partial updates. Nil fields keep the stored value.
type UpdateInput struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	IsActive    *bool
	Position    *int
}

// Service exposes delivery option management and the storefront listing.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.DeliveryOption, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.DeliveryOption, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*models.DeliveryOption, error)
	ListAll(ctx context.Context) ([]models.DeliveryOption, error)
	ListActive(ctx context.Context) ([]models.DeliveryOption, error)
}

type service struct {
	repo Repository
	logg *logger.Logger
}

// NewService builds a delivery option service.
func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("delivery repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.DeliveryOption, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}

	option := &models.DeliveryOption{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Price:       input.Price,
		IsActive:    true,
		Position:    input.Position,
	}
	if input.IsActive != nil {
		option.IsActive = *input.IsActive
	}

	created, err := s.repo.Create(ctx, option)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create delivery option")
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.DeliveryOption, error) {
	option, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
		}
		option.Name = name
	}
	if input.Description != nil {
		option.Description = strings.TrimSpace(*input.Description)
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
		}
		option.Price = *input.Price
	}
	if input.IsActive != nil {
		option.IsActive = *input.IsActive
	}
	if input.Position != nil {
		option.Position = *input.Position
	}

	if err := s.repo.Update(ctx, option); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update delivery option")
	}
	return option, nil
}

// Delete removes the option. Existing orders keep their fee snapshot and
// their reference is cleared by the foreign key, so deletion is never
// blocked; a count of affected orders is logged for the audit trail.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	option, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	count, err := s.repo.CountOrders(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count orders for delivery option")
	}
	if count > 0 {
		s.logg.Info(s.logg.WithFields(ctx, map[string]any{
			"delivery_option": option.Name,
			"orders":          count,
		}), "deleting delivery option referenced by existing orders")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete delivery option")
	}
	return nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.DeliveryOption, error) {
	option, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "delivery option not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup delivery option")
	}
	return option, nil
}

func (s *service) ListAll(ctx context.Context) ([]models.DeliveryOption, error) {
	options, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list delivery options")
	}
	return options, nil
}

func (s *service) ListActive(ctx context.Context) ([]models.DeliveryOption, error) {
	options, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list delivery options")
	}
	return options, nil
}
