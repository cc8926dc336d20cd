package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mahedios/estore-backend/pkg/db/models"
	"github.com/mahedios/estore-backend/pkg/enums"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	statements := []string{
		`
CREATE TABLE orders (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL UNIQUE,
  tracking_number TEXT NOT NULL UNIQUE,
  customer_name TEXT NOT NULL,
  customer_email TEXT NOT NULL DEFAULT '',
  customer_phone TEXT NOT NULL,
  shipping_address TEXT NOT NULL,
  delivery_option_id TEXT,
  delivery_fee NUMERIC NOT NULL,
  subtotal NUMERIC NOT NULL,
  total_amount NUMERIC NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  payment_method TEXT NOT NULL DEFAULT 'cod',
  notes TEXT NOT NULL DEFAULT '',
  estimated_delivery DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`
CREATE TABLE order_items (
  id TEXT PRIMARY KEY,
  order_ref TEXT NOT NULL,
  product_id TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  price NUMERIC NOT NULL,
  created_at DATETIME
);`,
		`
CREATE TABLE order_status_histories (
  id TEXT PRIMARY KEY,
  order_ref TEXT NOT NULL,
  status TEXT NOT NULL,
  notes TEXT NOT NULL DEFAULT '',
  created_by TEXT NOT NULL DEFAULT 'System',
  created_at DATETIME
);`,
		`
CREATE TABLE delivery_options (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  price NUMERIC NOT NULL,
  is_active INTEGER NOT NULL DEFAULT 1,
  position INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME
);`,
		`
CREATE TABLE products (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  slug TEXT NOT NULL,
  price NUMERIC NOT NULL,
  stock_quantity INTEGER NOT NULL DEFAULT 0
);`,
	}
	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func seedOrder(t *testing.T, repo Repository, orderID string) *models.Order {
	t.Helper()

	order := &models.Order{
		ID:              uuid.New(),
		OrderID:         orderID,
		TrackingNumber:  orderID,
		CustomerName:    "Alice Rahman",
		CustomerPhone:   "01711111111",
		ShippingAddress: "House 12, Road 3, Dhaka",
		DeliveryFee:     decimal.NewFromInt(60),
		Subtotal:        decimal.NewFromInt(500),
		TotalAmount:     decimal.NewFromInt(560),
		Status:          enums.OrderStatusPending,
		PaymentMethod:   "cod",
		Items: []models.OrderItem{
			{
				ID:        uuid.New(),
				ProductID: uuid.New(),
				Quantity:  2,
				Price:     decimal.NewFromInt(250),
			},
		},
	}
	created, err := repo.Create(context.Background(), order)
	require.NoError(t, err)
	return created
}

func TestRepositoryCreateAndFindByPublicKey(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	created := seedOrder(t, repo, "ORD20250101120000")

	require.NoError(t, repo.CreateStatusHistory(ctx, &models.OrderStatusHistory{
		ID:        uuid.New(),
		OrderRef:  created.ID,
		Status:    enums.OrderStatusPending,
		Notes:     "Order placed successfully via website",
		CreatedBy: "Customer",
	}))

	byOrderID, err := repo.FindByPublicKey(ctx, "ORD20250101120000")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byOrderID.ID)
	assert.Len(t, byOrderID.Items, 1)
	assert.Len(t, byOrderID.StatusHistory, 1)

	byTracking, err := repo.FindByPublicKey(ctx, created.TrackingNumber)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byTracking.ID)

	_, err = repo.FindByPublicKey(ctx, "ORD19990101000000")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryOrderIDExists(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedOrder(t, repo, "ORD20250102120000")

	exists, err := repo.OrderIDExists(ctx, "ORD20250102120000")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.OrderIDExists(ctx, "ORD20250102120001")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRepositoryUpdateStatus(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	created := seedOrder(t, repo, "ORD20250103120000")

	require.NoError(t, repo.UpdateStatus(ctx, created.ID, enums.OrderStatusShipped))

	reloaded, err := repo.FindByRef(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusShipped, reloaded.Status)
}

func TestRepositoryListFiltersByStatus(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	first := seedOrder(t, repo, "ORD20250104120000")
	seedOrder(t, repo, "ORD20250104120001")
	require.NoError(t, repo.UpdateStatus(ctx, first.ID, enums.OrderStatusDelivered))

	delivered := enums.OrderStatusDelivered
	rows, total, err := repo.List(ctx, Filters{Status: &delivered}, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, rows, 1)
	assert.Equal(t, "ORD20250104120000", rows[0].OrderID)

	rows, total, err = repo.List(ctx, Filters{}, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, rows, 2)
}

func TestRepositoryListDateRange(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedOrder(t, repo, "ORD20250105120000")

	future := time.Now().Add(24 * time.Hour)
	_, total, err := repo.List(ctx, Filters{DateFrom: &future}, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)
}
