package categories

import (
	"time"

	"github.com/google/uuid"
)

// CreateInput holds the fields accepted when creating a category.
type CreateInput struct {
	Name        string
	Description string
	ImagePath   *string
	ParentID    *uuid.UUID
}

// UpdateInput holds the optional fields accepted when updating a category.
// Nil fields are left untouched.
type UpdateInput struct {
	Name        *string
	Description *string
	ImagePath   *string
}

// TreeNode is one category in the nested tree view.
type TreeNode struct {
	ID       uuid.UUID  `json:"id"`
	Name     string     `json:"name"`
	Slug     string     `json:"slug"`
	ParentID *uuid.UUID `json:"parent_id,omitempty"`
	Level    int        `json:"level"`
	Children []TreeNode `json:"children"`
}

// Detail is the admin view of a single category with derived tree data.
type Detail struct {
	ID                  uuid.UUID  `json:"id"`
	Name                string     `json:"name"`
	Slug                string     `json:"slug"`
	Description         string     `json:"description"`
	ImagePath           *string    `json:"image_path,omitempty"`
	ParentID            *uuid.UUID `json:"parent_id,omitempty"`
	FullPath            []string   `json:"full_path"`
	Level               int        `json:"level"`
	DirectChildren      int64      `json:"direct_children"`
	SubtreeProductCount int64      `json:"subtree_product_count"`
	CreatedAt           time.Time  `json:"created_at"`
}
