package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mahedios/estore-backend/pkg/db/models"
	pkgerrors "github.com/mahedios/estore-backend/pkg/errors"
	"github.com/mahedios/estore-backend/pkg/logger"
	"github.com/mahedios/estore-backend/pkg/pagination"
)

// DefaultActor is recorded when no actor is supplied for a transition.
const DefaultActor = "System"

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes order lifecycle semantics.
type Service interface {
	Get(ctx context.Context, orderRef uuid.UUID) (*models.Order, error)
	Track(ctx context.Context, publicKey string) (*models.Order, error)
	Timeline(ctx context.Context, publicKey string) (*Timeline, error)
	SetStatus(ctx context.Context, orderRef uuid.UUID, input SetStatusInput) (*models.Order, error)
	List(ctx context.Context, filters Filters, params pagination.Params) (*List, error)
}

type service struct {
	repo Repository
	tx   txRunner
	logg *logger.Logger
}

// NewService builds an order service with the required dependencies.
func NewService(repo Repository, tx txRunner, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, tx: tx, logg: logg}, nil
}

func (s *service) Get(ctx context.Context, orderRef uuid.UUID) (*models.Order, error) {
	if orderRef == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	order, err := s.repo.FindByRef(ctx, orderRef)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup order")
	}
	return order, nil
}

// Track resolves an order by its public order id or tracking number.
func (s *service) Track(ctx context.Context, publicKey string) (*models.Order, error) {
	key := strings.TrimSpace(publicKey)
	if key == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id or tracking number is required")
	}
	order, err := s.repo.FindByPublicKey(ctx, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup order")
	}
	return order, nil
}

func (s *service) Timeline(ctx context.Context, publicKey string) (*Timeline, error) {
	order, err := s.Track(ctx, publicKey)
	if err != nil {
		return nil, err
	}
	return BuildTimeline(order, order.StatusHistory), nil
}

// SetStatus records a transition. Setting the current status again is a
// success no-op and writes no history. Any valid status is accepted from
// any other, including out of terminal states; the transition is logged so
// admin overrides leave a trace.
func (s *service) SetStatus(ctx context.Context, orderRef uuid.UUID, input SetStatusInput) (*models.Order, error) {
	if !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid order status %q", input.Status))
	}

	order, err := s.Get(ctx, orderRef)
	if err != nil {
		return nil, err
	}
	if order.Status == input.Status {
		return order, nil
	}

	previous := order.Status
	note := strings.TrimSpace(input.Note)
	if note == "" {
		note = fmt.Sprintf("Status changed from %s to %s", previous.Display(), input.Status.Display())
	}
	actor := strings.TrimSpace(input.Actor)
	if actor == "" {
		actor = DefaultActor
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.UpdateStatus(ctx, order.ID, input.Status); err != nil {
			return fmt.Errorf("update order status: %w", err)
		}
		return repo.CreateStatusHistory(ctx, &models.OrderStatusHistory{
			OrderRef:  order.ID,
			Status:    input.Status,
			Notes:     note,
			CreatedBy: actor,
		})
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record status transition")
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"order_id": order.OrderID,
		"from":     string(previous),
		"to":       string(input.Status),
		"actor":    actor,
	}), "order status changed")
	if previous.IsTerminal() {
		s.logg.Warn(s.logg.WithFields(ctx, map[string]any{
			"order_id": order.OrderID,
			"from":     string(previous),
			"to":       string(input.Status),
		}), "status changed out of a terminal state")
	}

	return s.Get(ctx, orderRef)
}

func (s *service) List(ctx context.Context, filters Filters, params pagination.Params) (*List, error) {
	if filters.Status != nil && !filters.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid order status %q", *filters.Status))
	}
	normalized := params.Normalize()
	rows, total, err := s.repo.List(ctx, filters, normalized.Limit, params.Offset())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return &List{
		Orders: rows,
		Page:   pagination.NewPage(params, total),
	}, nil
}
