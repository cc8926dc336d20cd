package categories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mahedios/estore-backend/pkg/db/models"
	pkgerrors "github.com/mahedios/estore-backend/pkg/errors"
	"github.com/mahedios/estore-backend/pkg/slug"
)

// Service exposes category tree management semantics.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Category, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Category, error)
	SetParent(ctx context.Context, id uuid.UUID, parentID *uuid.UUID) (*models.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*models.Category, error)
	GetBySlug(ctx context.Context, slugValue string) (*models.Category, error)
	ListAll(ctx context.Context) ([]models.Category, error)
	ListRoots(ctx context.Context) ([]models.Category, error)
	FullPath(ctx context.Context, id uuid.UUID) ([]string, error)
	Level(ctx context.Context, id uuid.UUID) (int, error)
	Descendants(ctx context.Context, id uuid.UUID) ([]models.Category, error)
	BuildTree(ctx context.Context) ([]TreeNode, error)
	PossibleParents(ctx context.Context, id uuid.UUID) ([]models.Category, error)
	Detail(ctx context.Context, id uuid.UUID) (*Detail, error)
}

type service struct {
	repo Repository
}

// NewService builds a category service backed by the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("categories repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	taken, err := s.repo.NameExists(ctx, name, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check category name")
	}
	if taken {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "category name already exists")
	}

	if input.ParentID != nil {
		if _, err := s.findCategory(ctx, *input.ParentID); err != nil {
			return nil, err
		}
	}

	slugValue, err := slug.MakeUnique(ctx, name, func(ctx context.Context, candidate string) (bool, error) {
		return s.repo.SlugExists(ctx, candidate, nil)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "derive category slug")
	}

	category := &models.Category{
		Name:        name,
		Slug:        slugValue,
		Description: strings.TrimSpace(input.Description),
		ImagePath:   input.ImagePath,
		ParentID:    input.ParentID,
	}

	created, err := s.repo.Create(ctx, category)
	if err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "category name or slug already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create category")
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Category, error) {
	category, err := s.findCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		if name != category.Name {
			taken, err := s.repo.NameExists(ctx, name, &category.ID)
			if err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check category name")
			}
			if taken {
				return nil, pkgerrors.New(pkgerrors.CodeConflict, "category name already exists")
			}

			// a rename regenerates the slug, ignoring this row so the
			// current slug can be reused unchanged
			slugValue, err := slug.MakeUnique(ctx, name, func(ctx context.Context, candidate string) (bool, error) {
				return s.repo.SlugExists(ctx, candidate, &category.ID)
			})
			if err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "derive category slug")
			}
			category.Name = name
			category.Slug = slugValue
		}
	}
	if input.Description != nil {
		category.Description = strings.TrimSpace(*input.Description)
	}
	if input.ImagePath != nil {
		category.ImagePath = input.ImagePath
	}

	if err := s.repo.Update(ctx, category); err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "category name or slug already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update category")
	}
	return category, nil
}

func (s *service) SetParent(ctx context.Context, id uuid.UUID, parentID *uuid.UUID) (*models.Category, error) {
	category, err := s.findCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	if parentID != nil {
		if *parentID == id {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "category cannot be its own parent")
		}
		parent, err := s.findCategory(ctx, *parentID)
		if err != nil {
			return nil, err
		}
		if err := s.ensureNotDescendant(ctx, id, parent); err != nil {
			return nil, err
		}
	}

	category.ParentID = parentID
	if err := s.repo.Update(ctx, category); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reparent category")
	}
	return category, nil
}

// ensureNotDescendant walks up from the candidate parent and rejects the
// move when the category itself appears among its ancestors. The walk is
// capped at the total category count so a corrupted cycle in storage
// rejects the move instead of looping forever.
func (s *service) ensureNotDescendant(ctx context.Context, id uuid.UUID, parent *models.Category) error {
	cap64, err := s.repo.Count(ctx)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count categories")
	}

	current := parent
	for steps := int64(0); ; steps++ {
		if current.ID == id {
			return pkgerrors.New(pkgerrors.CodeConflict, "category cannot be moved under its own descendant")
		}
		if current.ParentID == nil {
			return nil
		}
		if steps >= cap64 {
			return pkgerrors.New(pkgerrors.CodeConflict, "category hierarchy is cyclic")
		}
		next, err := s.repo.FindByID(ctx, *current.ParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "walk category ancestors")
		}
		current = next
	}
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	category, err := s.findCategory(ctx, id)
	if err != nil {
		return err
	}

	productCount, err := s.repo.CountProducts(ctx, []uuid.UUID{category.ID})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count category products")
	}
	if productCount > 0 {
		return pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot delete category %q: it has %d products", category.Name, productCount))
	}

	childCount, err := s.repo.CountChildren(ctx, category.ID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count subcategories")
	}
	if childCount > 0 {
		return pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot delete category %q: it has %d subcategories", category.Name, childCount))
	}

	if err := s.repo.Delete(ctx, category.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete category")
	}
	return nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	return s.findCategory(ctx, id)
}

func (s *service) GetBySlug(ctx context.Context, slugValue string) (*models.Category, error) {
	category, err := s.repo.FindBySlug(ctx, slugValue)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup category")
	}
	return category, nil
}

func (s *service) ListAll(ctx context.Context) ([]models.Category, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	return rows, nil
}

func (s *service) ListRoots(ctx context.Context) ([]models.Category, error) {
	rows, err := s.repo.ListRoots(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list root categories")
	}
	return rows, nil
}

// FullPath returns the names from the root down to the category itself.
func (s *service) FullPath(ctx context.Context, id uuid.UUID) ([]string, error) {
	chain, err := s.ancestryChain(ctx, id)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(chain))
	for i, category := range chain {
		names[len(chain)-1-i] = category.Name
	}
	return names, nil
}

// Level returns the category depth, 0 for roots.
func (s *service) Level(ctx context.Context, id uuid.UUID) (int, error) {
	chain, err := s.ancestryChain(ctx, id)
	if err != nil {
		return 0, err
	}
	return len(chain) - 1, nil
}

// ancestryChain returns the category followed by its ancestors up to the
// root, capped at the total category count.
func (s *service) ancestryChain(ctx context.Context, id uuid.UUID) ([]models.Category, error) {
	category, err := s.findCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	cap64, err := s.repo.Count(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count categories")
	}

	chain := []models.Category{*category}
	current := category
	for steps := int64(0); current.ParentID != nil; steps++ {
		if steps >= cap64 {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "category hierarchy is cyclic")
		}
		next, err := s.repo.FindByID(ctx, *current.ParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				break
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "walk category ancestors")
		}
		chain = append(chain, *next)
		current = next
	}
	return chain, nil
}

// Descendants returns every category below the given one, breadth first.
func (s *service) Descendants(ctx context.Context, id uuid.UUID) ([]models.Category, error) {
	if _, err := s.findCategory(ctx, id); err != nil {
		return nil, err
	}
	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	return descendantsOf(id, all), nil
}

func descendantsOf(id uuid.UUID, all []models.Category) []models.Category {
	childrenByParent := make(map[uuid.UUID][]models.Category)
	for _, category := range all {
		if category.ParentID != nil {
			childrenByParent[*category.ParentID] = append(childrenByParent[*category.ParentID], category)
		}
	}

	var result []models.Category
	queue := []uuid.UUID{id}
	seen := map[uuid.UUID]bool{id: true}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		for _, child := range childrenByParent[next] {
			if seen[child.ID] {
				continue
			}
			seen[child.ID] = true
			result = append(result, child)
			queue = append(queue, child.ID)
		}
	}
	return result
}

// BuildTree assembles the full nested tree from a single table scan.
func (s *service) BuildTree(ctx context.Context) ([]TreeNode, error) {
	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}

	childrenByParent := make(map[uuid.UUID][]models.Category)
	var roots []models.Category
	for _, category := range all {
		if category.ParentID == nil {
			roots = append(roots, category)
			continue
		}
		childrenByParent[*category.ParentID] = append(childrenByParent[*category.ParentID], category)
	}

	var build func(category models.Category, level int, seen map[uuid.UUID]bool) TreeNode
	build = func(category models.Category, level int, seen map[uuid.UUID]bool) TreeNode {
		node := TreeNode{
			ID:       category.ID,
			Name:     category.Name,
			Slug:     category.Slug,
			ParentID: category.ParentID,
			Level:    level,
			Children: []TreeNode{},
		}
		for _, child := range childrenByParent[category.ID] {
			if seen[child.ID] {
				continue
			}
			seen[child.ID] = true
			node.Children = append(node.Children, build(child, level+1, seen))
		}
		return node
	}

	tree := make([]TreeNode, 0, len(roots))
	for _, root := range roots {
		seen := map[uuid.UUID]bool{root.ID: true}
		tree = append(tree, build(root, 0, seen))
	}
	return tree, nil
}

// PossibleParents lists every category except the one itself and its
// descendants, the valid reparent targets.
func (s *service) PossibleParents(ctx context.Context, id uuid.UUID) ([]models.Category, error) {
	if _, err := s.findCategory(ctx, id); err != nil {
		return nil, err
	}
	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}

	excluded := map[uuid.UUID]bool{id: true}
	for _, category := range descendantsOf(id, all) {
		excluded[category.ID] = true
	}

	var result []models.Category
	for _, category := range all {
		if !excluded[category.ID] {
			result = append(result, category)
		}
	}
	return result, nil
}

func (s *service) Detail(ctx context.Context, id uuid.UUID) (*Detail, error) {
	category, err := s.findCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	path, err := s.FullPath(ctx, id)
	if err != nil {
		return nil, err
	}

	descendants, err := s.Descendants(ctx, id)
	if err != nil {
		return nil, err
	}
	subtreeIDs := make([]uuid.UUID, 0, len(descendants)+1)
	subtreeIDs = append(subtreeIDs, category.ID)
	for _, descendant := range descendants {
		subtreeIDs = append(subtreeIDs, descendant.ID)
	}

	productCount, err := s.repo.CountProducts(ctx, subtreeIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count subtree products")
	}
	childCount, err := s.repo.CountChildren(ctx, category.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count subcategories")
	}

	return &Detail{
		ID:                  category.ID,
		Name:                category.Name,
		Slug:                category.Slug,
		Description:         category.Description,
		ImagePath:           category.ImagePath,
		ParentID:            category.ParentID,
		FullPath:            path,
		Level:               len(path) - 1,
		DirectChildren:      childCount,
		SubtreeProductCount: productCount,
		CreatedAt:           category.CreatedAt,
	}, nil
}

func (s *service) findCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category id is required")
	}
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup category")
	}
	return category, nil
}
