package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mahedios/estore-backend/pkg/db/models"
	pkgerrors "github.com/mahedios/estore-backend/pkg/errors"
	"github.com/mahedios/estore-backend/pkg/pagination"
	"github.com/mahedios/estore-backend/pkg/slug"
)

// DefaultShelfSize caps the storefront best-seller and featured shelves.
const DefaultShelfSize = 8

type categoryFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
}

// Service exposes product catalog semantics.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Product, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetBySlug(ctx context.Context, slugValue string) (*models.Product, error)
	List(ctx context.Context, filters Filters, params pagination.Params) (*List, error)
	BestSellers(ctx context.Context, limit int) ([]models.Product, error)
	Featured(ctx context.Context, limit int) ([]models.Product, error)
	Related(ctx context.Context, productID uuid.UUID, limit int) ([]models.Product, error)
}

type service struct {
	repo       Repository
	categories categoryFinder
}

// NewService builds a product service backed by the provided repositories.
func NewService(repo Repository, categories categoryFinder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("products repository required")
	}
	if categories == nil {
		return nil, fmt.Errorf("categories repository required")
	}
	return &service{repo: repo, categories: categories}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if input.OriginalPrice != nil && input.OriginalPrice.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "original price cannot be negative")
	}
	if input.StockQuantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock quantity cannot be negative")
	}
	if err := s.ensureCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	slugValue, err := slug.MakeUnique(ctx, name, func(ctx context.Context, candidate string) (bool, error) {
		return s.repo.SlugExists(ctx, candidate, nil)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "derive product slug")
	}

	product := &models.Product{
		Name:          name,
		Slug:          slugValue,
		Description:   strings.TrimSpace(input.Description),
		Price:         input.Price,
		OriginalPrice: input.OriginalPrice,
		CategoryID:    input.CategoryID,
		ImagePath:     input.ImagePath,
		YouTubeURL:    input.YouTubeURL,
		StockQuantity: input.StockQuantity,
		IsBestSeller:  input.IsBestSeller,
		IsFeatured:    input.IsFeatured,
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "product slug already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Product, error) {
	product, err := s.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		if name != product.Name {
			slugValue, err := slug.MakeUnique(ctx, name, func(ctx context.Context, candidate string) (bool, error) {
				return s.repo.SlugExists(ctx, candidate, &product.ID)
			})
			if err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "derive product slug")
			}
			product.Name = name
			product.Slug = slugValue
		}
	}
	if input.Description != nil {
		product.Description = strings.TrimSpace(*input.Description)
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
		}
		product.Price = *input.Price
	}
	if input.ClearOriginal {
		product.OriginalPrice = nil
	} else if input.OriginalPrice != nil {
		if input.OriginalPrice.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "original price cannot be negative")
		}
		product.OriginalPrice = input.OriginalPrice
	}
	if input.CategoryID != nil && *input.CategoryID != product.CategoryID {
		if err := s.ensureCategory(ctx, *input.CategoryID); err != nil {
			return nil, err
		}
		product.CategoryID = *input.CategoryID
		product.Category = nil
	}
	if input.ImagePath != nil {
		product.ImagePath = *input.ImagePath
	}
	if input.ClearYouTube {
		product.YouTubeURL = nil
	} else if input.YouTubeURL != nil {
		product.YouTubeURL = input.YouTubeURL
	}
	if input.StockQuantity != nil {
		if *input.StockQuantity < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock quantity cannot be negative")
		}
		product.StockQuantity = *input.StockQuantity
	}
	if input.IsBestSeller != nil {
		product.IsBestSeller = *input.IsBestSeller
	}
	if input.IsFeatured != nil {
		product.IsFeatured = *input.IsFeatured
	}

	if err := s.repo.Update(ctx, product); err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "product slug already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	return product, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findProduct(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return s.findProduct(ctx, id)
}

func (s *service) GetBySlug(ctx context.Context, slugValue string) (*models.Product, error) {
	product, err := s.repo.FindBySlug(ctx, slugValue)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup product")
	}
	return product, nil
}

func (s *service) List(ctx context.Context, filters Filters, params pagination.Params) (*List, error) {
	rows, total, err := s.repo.List(ctx, filters, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return &List{
		Products: rows,
		Page:     pagination.NewPage(params, total),
	}, nil
}

func (s *service) BestSellers(ctx context.Context, limit int) ([]models.Product, error) {
	rows, err := s.repo.ListBestSellers(ctx, shelfLimit(limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list best sellers")
	}
	return rows, nil
}

func (s *service) Featured(ctx context.Context, limit int) ([]models.Product, error) {
	rows, err := s.repo.ListFeatured(ctx, shelfLimit(limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list featured products")
	}
	return rows, nil
}

func (s *service) Related(ctx context.Context, productID uuid.UUID, limit int) ([]models.Product, error) {
	product, err := s.findProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.ListRelated(ctx, product.CategoryID, product.ID, shelfLimit(limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list related products")
	}
	return rows, nil
}

func shelfLimit(limit int) int {
	if limit <= 0 || limit > pagination.MaxLimit {
		return DefaultShelfSize
	}
	return limit
}

func (s *service) ensureCategory(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "category id is required")
	}
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup category")
	}
	return nil
}

func (s *service) findProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup product")
	}
	return product, nil
}
