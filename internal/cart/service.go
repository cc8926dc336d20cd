package cart

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
)

type productFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// Summary is the session cart with derived totals.
type Summary struct {
	Items      []models.CartItem `json:"items"`
	TotalItems int               `json:"total_items"`
	Subtotal   decimal.Decimal   `json:"subtotal"`
}

// Service exposes the session cart semantics.
type Service interface {
	AddItem(ctx context.Context, sessionKey string, productID uuid.UUID, quantity int) (*models.CartItem, error)
	UpdateQuantity(ctx context.Context, sessionKey string, productID uuid.UUID, quantity int) (*Summary, error)
	Remove(ctx context.Context, sessionKey string, productID uuid.UUID) (*Summary, error)
	Get(ctx context.Context, sessionKey string) (*Summary, error)
	Clear(ctx context.Context, sessionKey string) error
	BuyNow(ctx context.Context, sessionKey string, productID uuid.UUID) (*models.CartItem, error)
}

type service struct {
	repo     Repository
	products productFinder
}

// NewService builds a cart service backed by the provided repositories.
func NewService(repo Repository, products productFinder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("products repository required")
	}
	return &service{repo: repo, products: products}, nil
}

// AddItem accumulates quantity onto the existing (session, product) row or
// creates one. The resulting quantity is checked against current stock.
func (s *service) AddItem(ctx context.Context, sessionKey string, productID uuid.UUID, quantity int) (*models.CartItem, error) {
	if err := validateSession(sessionKey); err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	product, err := s.findProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindItem(ctx, sessionKey, productID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup cart item")
	}

	target := quantity
	if existing != nil {
		target += existing.Quantity
	}
	if target > product.StockQuantity {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("only %d of %q available", product.StockQuantity, product.Name))
	}

	if existing != nil {
		existing.Quantity = target
		if err := s.repo.Update(ctx, existing); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update cart item")
		}
		return existing, nil
	}

	item := &models.CartItem{
		SessionKey: sessionKey,
		ProductID:  productID,
		Quantity:   quantity,
	}
	created, err := s.repo.Create(ctx, item)
	if err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "cart item already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create cart item")
	}
	return created, nil
}

// UpdateQuantity sets the row's quantity; zero removes the row.
func (s *service) UpdateQuantity(ctx context.Context, sessionKey string, productID uuid.UUID, quantity int) (*Summary, error) {
	if err := validateSession(sessionKey); err != nil {
		return nil, err
	}
	if quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
	}

	item, err := s.repo.FindItem(ctx, sessionKey, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup cart item")
	}

	if quantity == 0 {
		if err := s.repo.Delete(ctx, item.ID); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove cart item")
		}
		return s.Get(ctx, sessionKey)
	}

	product, err := s.findProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if quantity > product.StockQuantity {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("only %d of %q available", product.StockQuantity, product.Name))
	}

	item.Quantity = quantity
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update cart item")
	}
	return s.Get(ctx, sessionKey)
}

func (s *service) Remove(ctx context.Context, sessionKey string, productID uuid.UUID) (*Summary, error) {
	if err := validateSession(sessionKey); err != nil {
		return nil, err
	}
	item, err := s.repo.FindItem(ctx, sessionKey, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup cart item")
	}
	if err := s.repo.Delete(ctx, item.ID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove cart item")
	}
	return s.Get(ctx, sessionKey)
}

func (s *service) Get(ctx context.Context, sessionKey string) (*Summary, error) {
	if err := validateSession(sessionKey); err != nil {
		return nil, err
	}
	items, err := s.repo.ListItems(ctx, sessionKey)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list cart items")
	}
	return summarize(items), nil
}

func (s *service) Clear(ctx context.Context, sessionKey string) error {
	if err := validateSession(sessionKey); err != nil {
		return err
	}
	if err := s.repo.DeleteBySession(ctx, sessionKey); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return nil
}

// BuyNow drops everything else in the session and leaves a single row with
// quantity one for the chosen product.
func (s *service) BuyNow(ctx context.Context, sessionKey string, productID uuid.UUID) (*models.CartItem, error) {
	if err := validateSession(sessionKey); err != nil {
		return nil, err
	}
	product, err := s.findProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.StockQuantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("%q is out of stock", product.Name))
	}

	if err := s.repo.DeleteBySession(ctx, sessionKey); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}

	item := &models.CartItem{
		SessionKey: sessionKey,
		ProductID:  productID,
		Quantity:   1,
	}
	created, err := s.repo.Create(ctx, item)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create cart item")
	}
	return created, nil
}

func (s *service) findProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup product")
	}
	return product, nil
}

func summarize(items []models.CartItem) *Summary {
	summary := &Summary{
		Items:    items,
		Subtotal: decimal.Zero,
	}
	for _, item := range items {
		summary.TotalItems += item.Quantity
		summary.Subtotal = summary.Subtotal.Add(item.TotalPrice())
	}
	return summary
}

func validateSession(sessionKey string) error {
	if strings.TrimSpace(sessionKey) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session key is required")
	}
	return nil
}
