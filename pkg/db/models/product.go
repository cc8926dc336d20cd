package models

import (
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog listing attached to exactly one category.
type Product struct {
	ID            uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name          string           `gorm:"column:name;not null"`
	Slug          string           `gorm:"column:slug;not null;uniqueIndex:products_slug_key"`
	Description   string           `gorm:"column:description;not null;default:''"`
	Price         decimal.Decimal  `gorm:"column:price;type:numeric(10,2);not null"`
	OriginalPrice *decimal.Decimal `gorm:"column:original_price;type:numeric(10,2)"`
	CategoryID    uuid.UUID        `gorm:"column:category_id;type:uuid;not null"`
	Category      *Category        `gorm:"foreignKey:CategoryID"`
	ImagePath     string           `gorm:"column:image_path;not null;default:''"`
	YouTubeURL    *string          `gorm:"column:youtube_url"`
	StockQuantity int              `gorm:"column:stock_quantity;not null;default:0"`
	IsBestSeller  bool             `gorm:"column:is_best_seller;not null;default:false"`
	IsFeatured    bool             `gorm:"column:is_featured;not null;default:false"`
	CreatedAt     time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

// IsInStock reports whether any units remain.
func (p Product) IsInStock() bool {
	return p.StockQuantity > 0
}

// HasDiscount reports whether an original price exists and exceeds the
// current price.
func (p Product) HasDiscount() bool {
	return p.OriginalPrice != nil && p.OriginalPrice.GreaterThan(p.Price)
}

// DiscountPercentage returns the rounded-down discount percent, 0 without a
// discount.
func (p Product) DiscountPercentage() int {
	if !p.HasDiscount() {
		return 0
	}
	diff := p.OriginalPrice.Sub(p.Price)
	pct := diff.Div(*p.OriginalPrice).Mul(decimal.NewFromInt(100))
	return int(pct.IntPart())
}

// SavingsAmount returns the absolute discount, zero without one.
func (p Product) SavingsAmount() decimal.Decimal {
	if !p.HasDiscount() {
		return decimal.Zero
	}
	return p.OriginalPrice.Sub(p.Price)
}

var youtubeIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`youtube\.com/watch\?v=([^&]+)`),
	regexp.MustCompile(`youtube\.com/embed/([^?]+)`),
	regexp.MustCompile(`youtu\.be/([^?]+)`),
	regexp.MustCompile(`youtube\.com/v/([^?]+)`),
}

// YouTubeEmbedURL converts the stored watch URL into an embeddable one.
// Returns empty when no URL is set or the format is unrecognized.
func (p Product) YouTubeEmbedURL() string {
	if p.YouTubeURL == nil || *p.YouTubeURL == "" {
		return ""
	}
	for _, pattern := range youtubeIDPatterns {
		if match := pattern.FindStringSubmatch(*p.YouTubeURL); match != nil {
			return "https://www.youtube.com/embed/" + match[1]
		}
	}
	return ""
}
