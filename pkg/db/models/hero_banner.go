package models

import (
	"time"

	"github.com/google/uuid"
)

// HeroBanner is a homepage carousel slide, optionally linked to a product.
type HeroBanner struct {
	ID         uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title      string     `gorm:"column:title;not null"`
	Subtitle   string     `gorm:"column:subtitle;not null;default:''"`
	ImagePath  string     `gorm:"column:image_path;not null"`
	ProductID  *uuid.UUID `gorm:"column:product_id;type:uuid"`
	Product    *Product   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	ButtonText string     `gorm:"column:button_text;not null;default:'Shop Now'"`
	ButtonURL  string     `gorm:"column:button_url;not null;default:''"`
	IsActive   bool       `gorm:"column:is_active;not null;default:true"`
	Position   int        `gorm:"column:position;not null;default:0"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime"`
}
