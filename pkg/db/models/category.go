package models

import (
	"time"

	"github.com/google/uuid"
)

// Category is a node in the self-referencing catalog hierarchy. The parent
// link is the only stored relation; children are a derived inverse and the
// tree is kept acyclic by validation at every reparent.
type Category struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string     `gorm:"column:name;not null;uniqueIndex:categories_name_key"`
	Slug        string     `gorm:"column:slug;not null;uniqueIndex:categories_slug_key"`
	Description string     `gorm:"column:description;not null;default:''"`
	ImagePath   *string    `gorm:"column:image_path"`
	ParentID    *uuid.UUID `gorm:"column:parent_id;type:uuid"`
	Parent      *Category  `gorm:"foreignKey:ParentID"`
	Children    []Category `gorm:"foreignKey:ParentID"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
}

// IsRoot reports whether the category has no parent.
func (c Category) IsRoot() bool {
	return c.ParentID == nil
}
