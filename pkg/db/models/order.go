package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mahedios/estore-backend/pkg/enums"
)

// Order is a checkout result. Monetary fields are snapshots taken at
// creation: TotalAmount = Subtotal + DeliveryFee and is never recomputed,
// even if product or delivery prices change later.
type Order struct {
	ID                uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID           string               `gorm:"column:order_id;not null;uniqueIndex:orders_order_id_key"`
	TrackingNumber    string               `gorm:"column:tracking_number;not null;uniqueIndex:orders_tracking_number_key"`
	CustomerName      string               `gorm:"column:customer_name;not null"`
	CustomerEmail     string               `gorm:"column:customer_email;not null;default:''"`
	CustomerPhone     string               `gorm:"column:customer_phone;not null"`
	ShippingAddress   string               `gorm:"column:shipping_address;not null"`
	DeliveryOptionID  *uuid.UUID           `gorm:"column:delivery_option_id;type:uuid"`
	DeliveryOption    *DeliveryOption      `gorm:"foreignKey:DeliveryOptionID"`
	DeliveryFee       decimal.Decimal      `gorm:"column:delivery_fee;type:numeric(10,2);not null"`
	Subtotal          decimal.Decimal      `gorm:"column:subtotal;type:numeric(10,2);not null"`
	TotalAmount       decimal.Decimal      `gorm:"column:total_amount;type:numeric(10,2);not null"`
	Status            enums.OrderStatus    `gorm:"column:status;type:text;not null;default:'pending'"`
	PaymentMethod     string               `gorm:"column:payment_method;not null;default:'cod'"`
	Notes             string               `gorm:"column:notes;not null;default:''"`
	EstimatedDelivery *time.Time           `gorm:"column:estimated_delivery"`
	Items             []OrderItem          `gorm:"foreignKey:OrderRef;constraint:OnDelete:CASCADE"`
	StatusHistory     []OrderStatusHistory `gorm:"foreignKey:OrderRef;constraint:OnDelete:CASCADE"`
	CreatedAt         time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}

// OrderItem captures one cart line at checkout time. Price is the per-unit
// snapshot; the referenced product may change or disappear afterwards.
type OrderItem struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderRef  uuid.UUID       `gorm:"column:order_ref;type:uuid;not null"`
	ProductID uuid.UUID       `gorm:"column:product_id;type:uuid;not null"`
	Product   *Product        `gorm:"foreignKey:ProductID"`
	Quantity  int             `gorm:"column:quantity;not null"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
}

// TotalPrice is the line total at snapshot prices.
func (i OrderItem) TotalPrice() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// OrderStatusHistory is an append-only log entry, one row per status
// transition including the initial pending row written at checkout.
type OrderStatusHistory struct {
	ID        uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderRef  uuid.UUID         `gorm:"column:order_ref;type:uuid;not null"`
	Status    enums.OrderStatus `gorm:"column:status;type:text;not null"`
	Notes     string            `gorm:"column:notes;not null;default:''"`
	CreatedBy string            `gorm:"column:created_by;not null;default:'System'"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime"`
}
