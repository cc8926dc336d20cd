package products

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mahedios/estore-backend/pkg/db/models"
	pkgerrors "github.com/mahedios/estore-backend/pkg/errors"
	"github.com/mahedios/estore-backend/pkg/pagination"
)

type stubRepo struct {
	createFn          func(ctx context.Context, product *models.Product) (*models.Product, error)
	updateFn          func(ctx context.Context, product *models.Product) error
	deleteFn          func(ctx context.Context, id uuid.UUID) error
	findByIDFn        func(ctx context.Context, id uuid.UUID) (*models.Product, error)
	findBySlugFn      func(ctx context.Context, slug string) (*models.Product, error)
	listFn            func(ctx context.Context, filters Filters, params pagination.Params) ([]models.Product, int64, error)
	listBestSellersFn func(ctx context.Context, limit int) ([]models.Product, error)
	listFeaturedFn    func(ctx context.Context, limit int) ([]models.Product, error)
	listRelatedFn     func(ctx context.Context, categoryID, excludeID uuid.UUID, limit int) ([]models.Product, error)
	slugExistsFn      func(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error)
	decrementStockFn  func(ctx context.Context, id uuid.UUID, qty int) (bool, error)
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRepo) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if s.createFn != nil {
		return s.createFn(ctx, product)
	}
	product.ID = uuid.New()
	return product, nil
}

func (s *stubRepo) Update(ctx context.Context, product *models.Product) error {
	if s.updateFn != nil {
		return s.updateFn(ctx, product)
	}
	return nil
}

func (s *stubRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return nil
}

func (s *stubRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if s.findByIDFn != nil {
		return s.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRepo) FindBySlug(ctx context.Context, slug string) (*models.Product, error) {
	if s.findBySlugFn != nil {
		return s.findBySlugFn(ctx, slug)
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRepo) List(ctx context.Context, filters Filters, params pagination.Params) ([]models.Product, int64, error) {
	if s.listFn != nil {
		return s.listFn(ctx, filters, params)
	}
	return nil, 0, nil
}

func (s *stubRepo) ListBestSellers(ctx context.Context, limit int) ([]models.Product, error) {
	if s.listBestSellersFn != nil {
		return s.listBestSellersFn(ctx, limit)
	}
	return nil, nil
}

func (s *stubRepo) ListFeatured(ctx context.Context, limit int) ([]models.Product, error) {
	if s.listFeaturedFn != nil {
		return s.listFeaturedFn(ctx, limit)
	}
	return nil, nil
}

func (s *stubRepo) ListRelated(ctx context.Context, categoryID, excludeID uuid.UUID, limit int) ([]models.Product, error) {
	if s.listRelatedFn != nil {
		return s.listRelatedFn(ctx, categoryID, excludeID, limit)
	}
	return nil, nil
}

func (s *stubRepo) SlugExists(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	if s.slugExistsFn != nil {
		return s.slugExistsFn(ctx, slug, excludeID)
	}
	return false, nil
}

func (s *stubRepo) DecrementStock(ctx context.Context, id uuid.UUID, qty int) (bool, error) {
	if s.decrementStockFn != nil {
		return s.decrementStockFn(ctx, id, qty)
	}
	return true, nil
}

type stubCategoryFinder struct {
	findFn func(ctx context.Context, id uuid.UUID) (*models.Category, error)
}

func (s *stubCategoryFinder) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	if s.findFn != nil {
		return s.findFn(ctx, id)
	}
	return &models.Category{ID: id, Name: "Stub"}, nil
}

func expectCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", code)
	}
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	if typed.Code() != code {
		t.Fatalf("expected code %s, got %s (%v)", code, typed.Code(), err)
	}
}

func TestCreateDerivesSlugAndValidates(t *testing.T) {
	repo := &stubRepo{}
	svc, err := NewService(repo, &stubCategoryFinder{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	created, err := svc.Create(context.Background(), CreateInput{
		Name:       "Wireless Mouse",
		Price:      decimal.NewFromFloat(19.99),
		CategoryID: uuid.New(),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Slug != "wireless-mouse" {
		t.Fatalf("expected slug wireless-mouse, got %s", created.Slug)
	}

	_, err = svc.Create(context.Background(), CreateInput{Price: decimal.Zero, CategoryID: uuid.New()})
	expectCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.Create(context.Background(), CreateInput{
		Name:       "Negative",
		Price:      decimal.NewFromInt(-1),
		CategoryID: uuid.New(),
	})
	expectCode(t, err, pkgerrors.CodeValidation)
}

func TestCreateSlugCollisionGetsSuffix(t *testing.T) {
	repo := &stubRepo{
		slugExistsFn: func(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
			return slug == "wireless-mouse", nil
		},
	}
	svc, _ := NewService(repo, &stubCategoryFinder{})

	created, err := svc.Create(context.Background(), CreateInput{
		Name:       "Wireless Mouse",
		Price:      decimal.NewFromInt(10),
		CategoryID: uuid.New(),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Slug != "wireless-mouse-1" {
		t.Fatalf("expected slug wireless-mouse-1, got %s", created.Slug)
	}
}

func TestCreateMissingCategory(t *testing.T) {
	repo := &stubRepo{}
	svc, _ := NewService(repo, &stubCategoryFinder{
		findFn: func(ctx context.Context, id uuid.UUID) (*models.Category, error) {
			return nil, gorm.ErrRecordNotFound
		},
	})

	_, err := svc.Create(context.Background(), CreateInput{
		Name:       "Orphan",
		Price:      decimal.NewFromInt(5),
		CategoryID: uuid.New(),
	})
	expectCode(t, err, pkgerrors.CodeNotFound)
}

func TestUpdateRenameRegeneratesSlug(t *testing.T) {
	existing := &models.Product{
		ID:         uuid.New(),
		Name:       "Old Name",
		Slug:       "old-name",
		Price:      decimal.NewFromInt(10),
		CategoryID: uuid.New(),
	}
	var excludeSeen *uuid.UUID
	repo := &stubRepo{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*models.Product, error) {
			clone := *existing
			return &clone, nil
		},
		slugExistsFn: func(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
			excludeSeen = excludeID
			return false, nil
		},
	}
	svc, _ := NewService(repo, &stubCategoryFinder{})

	name := "New Name"
	updated, err := svc.Update(context.Background(), existing.ID, UpdateInput{Name: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Slug != "new-name" {
		t.Fatalf("expected slug new-name, got %s", updated.Slug)
	}
	if excludeSeen == nil || *excludeSeen != existing.ID {
		t.Fatalf("slug uniqueness check did not exclude the product itself")
	}
}

func TestDiscountHelpers(t *testing.T) {
	original := decimal.NewFromInt(100)
	product := models.Product{
		Price:         decimal.NewFromInt(80),
		OriginalPrice: &original,
	}
	if !product.HasDiscount() {
		t.Fatal("expected discount")
	}
	if pct := product.DiscountPercentage(); pct != 20 {
		t.Fatalf("expected 20%%, got %d", pct)
	}
	if savings := product.SavingsAmount(); !savings.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("expected savings 20, got %s", savings)
	}

	flat := models.Product{Price: decimal.NewFromInt(80)}
	if flat.HasDiscount() {
		t.Fatal("expected no discount without original price")
	}
}

func TestYouTubeEmbedURL(t *testing.T) {
	watch := "https://www.youtube.com/watch?v=abc123&t=10"
	product := models.Product{YouTubeURL: &watch}
	if got := product.YouTubeEmbedURL(); got != "https://www.youtube.com/embed/abc123" {
		t.Fatalf("unexpected embed url %s", got)
	}

	short := "https://youtu.be/xyz789"
	product.YouTubeURL = &short
	if got := product.YouTubeEmbedURL(); got != "https://www.youtube.com/embed/xyz789" {
		t.Fatalf("unexpected embed url %s", got)
	}

	junk := "https://example.com/video"
	product.YouTubeURL = &junk
	if got := product.YouTubeEmbedURL(); got != "" {
		t.Fatalf("expected empty embed url, got %s", got)
	}
}

func TestListWrapsPagination(t *testing.T) {
	repo := &stubRepo{
		listFn: func(ctx context.Context, filters Filters, params pagination.Params) ([]models.Product, int64, error) {
			if !filters.InStockOnly {
				t.Fatal("expected in-stock filter to pass through")
			}
			return []models.Product{{Name: "One"}}, 26, nil
		},
	}
	svc, _ := NewService(repo, &stubCategoryFinder{})

	list, err := svc.List(context.Background(), Filters{InStockOnly: true}, pagination.Params{Page: 1, Limit: 25})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if list.Page.TotalPages != 2 {
		t.Fatalf("expected 2 pages, got %d", list.Page.TotalPages)
	}
	if len(list.Products) != 1 {
		t.Fatalf("expected 1 product, got %d", len(list.Products))
	}
}

func TestRelatedUsesProductCategory(t *testing.T) {
	categoryID := uuid.New()
	productID := uuid.New()
	repo := &stubRepo{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*models.Product, error) {
			return &models.Product{ID: productID, CategoryID: categoryID}, nil
		},
		listRelatedFn: func(ctx context.Context, catID, excludeID uuid.UUID, limit int) ([]models.Product, error) {
			if catID != categoryID {
				t.Fatalf("expected category %s, got %s", categoryID, catID)
			}
			if excludeID != productID {
				t.Fatalf("expected exclusion of %s, got %s", productID, excludeID)
			}
			return []models.Product{{Name: "Sibling"}}, nil
		},
	}
	svc, _ := NewService(repo, &stubCategoryFinder{})

	related, err := svc.Related(context.Background(), productID, 4)
	if err != nil {
		t.Fatalf("related: %v", err)
	}
	if len(related) != 1 {
		t.Fatalf("expected 1 related product, got %d", len(related))
	}
}
