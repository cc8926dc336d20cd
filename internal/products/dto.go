package products

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mahedios/estore-backend/pkg/db/models"
	"github.com/mahedios/estore-backend/pkg/pagination"
)

// Filters describe the inputs supported by the product list.
type Filters struct {
	CategoryID  *uuid.UUID
	InStockOnly bool
	BestSeller  *bool
	Featured    *bool
	Query       string
}

// CreateInput holds the fields accepted when creating a product.
type CreateInput struct {
	Name          string
	Description   string
	Price         decimal.Decimal
	OriginalPrice *decimal.Decimal
	CategoryID    uuid.UUID
	ImagePath     string
	YouTubeURL    *string
	StockQuantity int
	IsBestSeller  bool
	IsFeatured    bool
}

// UpdateInput holds the optional fields accepted when updating a product.
// Nil fields are left untouched; the Clear flags reset the matching
// optional column.
type UpdateInput struct {
	Name          *string
	Description   *string
	Price         *decimal.Decimal
	OriginalPrice *decimal.Decimal
	ClearOriginal bool
	CategoryID    *uuid.UUID
	ImagePath     *string
	YouTubeURL    *string
	ClearYouTube  bool
	StockQuantity *int
	IsBestSeller  *bool
	IsFeatured    *bool
}

// List wraps a product page plus its pagination metadata.
type List struct {
	Products []models.Product `json:"products"`
	Page     pagination.Page  `json:"page"`
}
