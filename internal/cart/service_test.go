package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mahedios/estore-backend/pkg/db/models"
	pkgerrors "github.com/mahedios/estore-backend/pkg/errors"
)

type fakeRepo struct {
	items map[uuid.UUID]*models.CartItem
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: make(map[uuid.UUID]*models.CartItem)}
}

func (f *fakeRepo) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, item *models.CartItem) (*models.CartItem, error) {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	clone := *item
	f.items[item.ID] = &clone
	return item, nil
}

func (f *fakeRepo) Update(ctx context.Context, item *models.CartItem) error {
	clone := *item
	f.items[item.ID] = &clone
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.items, id)
	return nil
}

func (f *fakeRepo) DeleteBySession(ctx context.Context, sessionKey string) error {
	for id, item := range f.items {
		if item.SessionKey == sessionKey {
			delete(f.items, id)
		}
	}
	return nil
}

func (f *fakeRepo) FindItem(ctx context.Context, sessionKey string, productID uuid.UUID) (*models.CartItem, error) {
	for _, item := range f.items {
		if item.SessionKey == sessionKey && item.ProductID == productID {
			clone := *item
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) ListItems(ctx context.Context, sessionKey string) ([]models.CartItem, error) {
	var result []models.CartItem
	for _, item := range f.items {
		if item.SessionKey == sessionKey {
			result = append(result, *item)
		}
	}
	return result, nil
}

type stubProducts struct {
	byID map[uuid.UUID]*models.Product
}

func (s *stubProducts) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, ok := s.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *product
	return &clone, nil
}

func newCartFixture(t *testing.T, stock int, price int64) (Service, *fakeRepo, *models.Product) {
	t.Helper()
	product := &models.Product{
		ID:            uuid.New(),
		Name:          "Widget",
		Price:         decimal.NewFromInt(price),
		StockQuantity: stock,
	}
	repo := newFakeRepo()
	svc, err := NewService(repo, &stubProducts{byID: map[uuid.UUID]*models.Product{product.ID: product}})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, repo, product
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

func TestAddItemAccumulatesQuantity(t *testing.T) {
	svc, repo, product := newCartFixture(t, 10, 5)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "sess", product.ID, 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	item, err := svc.AddItem(ctx, "sess", product.ID, 3)
	if err != nil {
		t.Fatalf("add again: %v", err)
	}
	if item.Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", item.Quantity)
	}
	if len(repo.items) != 1 {
		t.Fatalf("expected single row, got %d", len(repo.items))
	}
}

func TestAddItemStockLimit(t *testing.T) {
	svc, _, product := newCartFixture(t, 3, 5)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "sess", product.ID, 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	_, err := svc.AddItem(ctx, "sess", product.ID, 2)
	expectCode(t, err, pkgerrors.CodeStateConflict)
}

func TestAddItemValidations(t *testing.T) {
	svc, _, product := newCartFixture(t, 3, 5)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "", product.ID, 1)
	expectCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.AddItem(ctx, "sess", product.ID, 0)
	expectCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.AddItem(ctx, "sess", uuid.New(), 1)
	expectCode(t, err, pkgerrors.CodeNotFound)
}

func TestUpdateQuantityZeroDeletes(t *testing.T) {
	svc, repo, product := newCartFixture(t, 10, 5)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "sess", product.ID, 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	summary, err := svc.UpdateQuantity(ctx, "sess", product.ID, 0)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(summary.Items) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(summary.Items))
	}
	if len(repo.items) != 0 {
		t.Fatal("row not deleted")
	}
}

func TestUpdateQuantityStockLimit(t *testing.T) {
	svc, _, product := newCartFixture(t, 4, 5)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "sess", product.ID, 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	_, err := svc.UpdateQuantity(ctx, "sess", product.ID, 5)
	expectCode(t, err, pkgerrors.CodeStateConflict)
}

func TestGetTotals(t *testing.T) {
	svc, repo, product := newCartFixture(t, 10, 7)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "sess", product.ID, 3); err != nil {
		t.Fatalf("add: %v", err)
	}
	// the fake stores rows without the product join; attach it the way
	// ListItems would
	for _, item := range repo.items {
		item.Product = product
	}

	summary, err := svc.Get(ctx, "sess")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if summary.TotalItems != 3 {
		t.Fatalf("expected 3 items, got %d", summary.TotalItems)
	}
	if !summary.Subtotal.Equal(decimal.NewFromInt(21)) {
		t.Fatalf("expected subtotal 21, got %s", summary.Subtotal)
	}
}

func TestRemove(t *testing.T) {
	svc, _, product := newCartFixture(t, 10, 5)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "sess", product.ID, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	summary, err := svc.Remove(ctx, "sess", product.ID)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(summary.Items) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(summary.Items))
	}

	_, err = svc.Remove(ctx, "sess", product.ID)
	expectCode(t, err, pkgerrors.CodeNotFound)
}

func TestBuyNowReplacesCart(t *testing.T) {
	svc, repo, product := newCartFixture(t, 10, 5)
	ctx := context.Background()

	other := &models.CartItem{SessionKey: "sess", ProductID: uuid.New(), Quantity: 4}
	if _, err := repo.Create(ctx, other); err != nil {
		t.Fatalf("seed: %v", err)
	}

	item, err := svc.BuyNow(ctx, "sess", product.ID)
	if err != nil {
		t.Fatalf("buy now: %v", err)
	}
	if item.Quantity != 1 {
		t.Fatalf("expected quantity 1, got %d", item.Quantity)
	}
	if len(repo.items) != 1 {
		t.Fatalf("expected single row after buy now, got %d", len(repo.items))
	}
}

func TestBuyNowOutOfStock(t *testing.T) {
	svc, _, product := newCartFixture(t, 0, 5)

	_, err := svc.BuyNow(context.Background(), "sess", product.ID)
	expectCode(t, err, pkgerrors.CodeStateConflict)
}
