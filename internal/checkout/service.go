package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mahedios/estore-backend/internal/cart"
	"github.com/mahedios/estore-backend/internal/orders"
	"github.com/mahedios/estore-backend/internal/products"
	"github.com/mahedios/estore-backend/pkg/db/models"
	"github.com/mahedios/estore-backend/pkg/enums"
	pkgerrors "github.com/mahedios/estore-backend/pkg/errors"
	"github.com/mahedios/estore-backend/pkg/logger"
)

// InitialHistoryNote is recorded on the pending history row written at
// order creation.
const InitialHistoryNote = "Order placed successfully via website"

// InitialHistoryActor is the actor recorded for storefront checkouts.
const InitialHistoryActor = "Customer"

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type deliveryFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.DeliveryOption, error)
}

// Input carries the customer details collected at checkout.
type Input struct {
	CustomerName     string
	CustomerEmail    string
	CustomerPhone    string
	ShippingAddress  string
	DeliveryOptionID uuid.UUID
	Notes            string
}

// Service executes the checkout transaction.
type Service interface {
	Execute(ctx context.Context, sessionKey string, input Input) (*models.Order, error)
}

type service struct {
	cartRepo     cart.Repository
	ordersRepo   orders.Repository
	productsRepo products.Repository
	delivery     deliveryFinder
	tx           txRunner
	logg         *logger.Logger
	now          func() time.Time
}

// NewService builds a checkout service with the required dependencies.
func NewService(
	cartRepo cart.Repository,
	ordersRepo orders.Repository,
	productsRepo products.Repository,
	delivery deliveryFinder,
	tx txRunner,
	logg *logger.Logger,
) (Service, error) {
	if cartRepo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if ordersRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if productsRepo == nil {
		return nil, fmt.Errorf("products repository required")
	}
	if delivery == nil {
		return nil, fmt.Errorf("delivery repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		cartRepo:     cartRepo,
		ordersRepo:   ordersRepo,
		productsRepo: productsRepo,
		delivery:     delivery,
		tx:           tx,
		logg:         logg,
		now:          time.Now,
	}, nil
}

// Execute turns the session cart into an order. Order creation, the initial
// history row, stock decrements, and the cart wipe commit or roll back as
// one transaction.
func (s *service) Execute(ctx context.Context, sessionKey string, input Input) (*models.Order, error) {
	if strings.TrimSpace(sessionKey) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session key is required")
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	items, err := s.cartRepo.ListItems(ctx, sessionKey)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}
	for _, item := range items {
		if item.Product == nil {
			return nil, pkgerrors.New(pkgerrors.CodeDependency, "cart item missing product")
		}
	}

	option, err := s.delivery.FindByID(ctx, input.DeliveryOptionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "delivery option not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup delivery option")
	}
	if !option.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "delivery option is not available")
	}

	subtotal := decimal.Zero
	orderItems := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		price := item.Product.Price
		subtotal = subtotal.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		orderItems = append(orderItems, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     price,
		})
	}
	fee := option.Price
	total := subtotal.Add(fee)

	var created *models.Order
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		ordersRepo := s.ordersRepo.WithTx(tx)
		productsRepo := s.productsRepo.WithTx(tx)
		cartRepo := s.cartRepo.WithTx(tx)

		orderID, err := s.nextOrderID(ctx, ordersRepo)
		if err != nil {
			return err
		}

		order := &models.Order{
			OrderID:          orderID,
			TrackingNumber:   orderID,
			CustomerName:     strings.TrimSpace(input.CustomerName),
			CustomerEmail:    strings.TrimSpace(input.CustomerEmail),
			CustomerPhone:    strings.TrimSpace(input.CustomerPhone),
			ShippingAddress:  strings.TrimSpace(input.ShippingAddress),
			DeliveryOptionID: &option.ID,
			DeliveryFee:      fee,
			Subtotal:         subtotal,
			TotalAmount:      total,
			Status:           enums.OrderStatusPending,
			Notes:            strings.TrimSpace(input.Notes),
			Items:            orderItems,
		}
		if created, err = ordersRepo.Create(ctx, order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		history := &models.OrderStatusHistory{
			OrderRef:  created.ID,
			Status:    enums.OrderStatusPending,
			Notes:     InitialHistoryNote,
			CreatedBy: InitialHistoryActor,
		}
		if err := ordersRepo.CreateStatusHistory(ctx, history); err != nil {
			return fmt.Errorf("create order history: %w", err)
		}

		for _, item := range items {
			ok, err := productsRepo.DecrementStock(ctx, item.ProductID, item.Quantity)
			if err != nil {
				return fmt.Errorf("decrement stock: %w", err)
			}
			if !ok {
				return pkgerrors.New(pkgerrors.CodeStateConflict,
					fmt.Sprintf("insufficient stock for %q", item.Product.Name))
			}
		}

		if err := cartRepo.DeleteBySession(ctx, sessionKey); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}
		return nil
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute checkout")
	}

	s.logg.Info(s.logg.WithOrderID(ctx, created.OrderID), "order placed")
	return created, nil
}

// nextOrderID derives the timestamp order id, disambiguating clock
// collisions with a numeric suffix.
func (s *service) nextOrderID(ctx context.Context, repo orders.Repository) (string, error) {
	base := "ORD" + s.now().UTC().Format("20060102150405")
	candidate := base
	for attempt := 1; ; attempt++ {
		exists, err := repo.OrderIDExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check order id: %w", err)
		}
		if !exists {
			return candidate, nil
		}
		if attempt > 1000 {
			return "", fmt.Errorf("unable to derive a unique order id from %s", base)
		}
		candidate = fmt.Sprintf("%s-%d", base, attempt)
	}
}

func validateInput(input Input) error {
	if strings.TrimSpace(input.CustomerName) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer name is required")
	}
	if strings.TrimSpace(input.CustomerPhone) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer phone is required")
	}
	if strings.TrimSpace(input.ShippingAddress) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "shipping address is required")
	}
	if input.DeliveryOptionID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "delivery option is required")
	}
	return nil
}
