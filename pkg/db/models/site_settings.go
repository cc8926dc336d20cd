package models

import "time"

// SiteSettingsID is the fixed primary key of the single settings row. The
// row is created explicitly at startup, never lazily inside a request.
const SiteSettingsID int64 = 1

// SiteSettings holds site branding and contact configuration.
type SiteSettings struct {
	ID              int64     `gorm:"column:id;primaryKey"`
	SiteName        string    `gorm:"column:site_name;not null;default:'E-Store'"`
	Tagline         string    `gorm:"column:tagline;not null;default:''"`
	LogoPath        *string   `gorm:"column:logo_path"`
	FaviconPath     *string   `gorm:"column:favicon_path"`
	HeaderBgColor   string    `gorm:"column:header_bg_color;not null;default:'#0d6efd'"`
	HeaderTextColor string    `gorm:"column:header_text_color;not null;default:'#ffffff'"`
	PhoneNumber     string    `gorm:"column:phone_number;not null;default:''"`
	Email           string    `gorm:"column:email;not null;default:''"`
	Address         string    `gorm:"column:address;not null;default:''"`
	FacebookURL     string    `gorm:"column:facebook_url;not null;default:''"`
	YouTubeURL      string    `gorm:"column:youtube_url;not null;default:''"`
	MetaDescription string    `gorm:"column:meta_description;not null;default:''"`
	MetaKeywords    string    `gorm:"column:meta_keywords;not null;default:''"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
