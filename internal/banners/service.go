package banners

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mahedios/estore-backend/pkg/db/models"
	pkgerrors "github.com/mahedios/estore-backend/pkg/errors"
)

type productFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// CreateInput carries the fields for a new banner.
type CreateInput struct {
	Title      string
	Subtitle   string
	ImagePath  string
	ProductID  *uuid.UUID
	ButtonText string
	ButtonURL  string
	IsActive   *bool
	Position   int
}

// UpdateInput carries partial updates. Nil fields keep the stored value;
// ClearProduct detaches the linked product.
type UpdateInput struct {
	Title        *string
	Subtitle     *string
	ImagePath    *string
	ProductID    *uuid.UUID
	ClearProduct bool
	ButtonText   *string
	ButtonURL    *string
	IsActive     *bool
	Position     *int
}

// Service exposes hero banner management and the storefront carousel.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.HeroBanner, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.HeroBanner, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*models.HeroBanner, error)
	ListAll(ctx context.Context) ([]models.HeroBanner, error)
	ListActive(ctx context.Context) ([]models.HeroBanner, error)
	Reorder(ctx context.Context, orderedIDs []uuid.UUID) error
}

type service struct {
	repo     Repository
	products productFinder
	tx       txRunner
}

// NewService builds a banner service.
func NewService(repo Repository, products productFinder, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("banner repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("products repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	return &service{repo: repo, products: products, tx: tx}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.HeroBanner, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	image := strings.TrimSpace(input.ImagePath)
	if image == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "image is required")
	}
	if err := s.checkProduct(ctx, input.ProductID); err != nil {
		return nil, err
	}

	banner := &models.HeroBanner{
		Title:      title,
		Subtitle:   strings.TrimSpace(input.Subtitle),
		ImagePath:  image,
		ProductID:  input.ProductID,
		ButtonText: "Shop Now",
		ButtonURL:  strings.TrimSpace(input.ButtonURL),
		IsActive:   true,
		Position:   input.Position,
	}
	if text := strings.TrimSpace(input.ButtonText); text != "" {
		banner.ButtonText = text
	}
	if input.IsActive != nil {
		banner.IsActive = *input.IsActive
	}

	created, err := s.repo.Create(ctx, banner)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create banner")
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.HeroBanner, error) {
	banner, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
		}
		banner.Title = title
	}
	if input.Subtitle != nil {
		banner.Subtitle = strings.TrimSpace(*input.Subtitle)
	}
	if input.ImagePath != nil {
		image := strings.TrimSpace(*input.ImagePath)
		if image == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "image is required")
		}
		banner.ImagePath = image
	}
	switch {
	case input.ClearProduct:
		banner.ProductID = nil
		banner.Product = nil
	case input.ProductID != nil:
		if err := s.checkProduct(ctx, input.ProductID); err != nil {
			return nil, err
		}
		banner.ProductID = input.ProductID
		banner.Product = nil
	}
	if input.ButtonText != nil {
		banner.ButtonText = strings.TrimSpace(*input.ButtonText)
	}
	if input.ButtonURL != nil {
		banner.ButtonURL = strings.TrimSpace(*input.ButtonURL)
	}
	if input.IsActive != nil {
		banner.IsActive = *input.IsActive
	}
	if input.Position != nil {
		banner.Position = *input.Position
	}

	if err := s.repo.Update(ctx, banner); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update banner")
	}
	return banner, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete banner")
	}
	return nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.HeroBanner, error) {
	banner, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "banner not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup banner")
	}
	return banner, nil
}

func (s *service) ListAll(ctx context.Context) ([]models.HeroBanner, error) {
	banners, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list banners")
	}
	return banners, nil
}

func (s *service) ListActive(ctx context.Context) ([]models.HeroBanner, error) {
	banners, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list banners")
	}
	return banners, nil
}

// Reorder rewrites positions to match the given id sequence. The whole
// sequence is applied in one transaction so a partial reorder never lands.
func (s *service) Reorder(ctx context.Context, orderedIDs []uuid.UUID) error {
	if len(orderedIDs) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "banner order is required")
	}
	seen := make(map[uuid.UUID]struct{}, len(orderedIDs))
	for _, id := range orderedIDs {
		if id == uuid.Nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "banner id is required")
		}
		if _, dup := seen[id]; dup {
			return pkgerrors.New(pkgerrors.CodeValidation, "duplicate banner id in order")
		}
		seen[id] = struct{}{}
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		for position, id := range orderedIDs {
			if err := repo.UpdatePosition(ctx, id, position); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reorder banners")
	}
	return nil
}

func (s *service) checkProduct(ctx context.Context, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	if *id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if _, err := s.products.FindByID(ctx, *id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup product")
	}
	return nil
}
