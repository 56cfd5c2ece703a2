package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"menu-admin/internal/domain"
	"menu-admin/internal/repository"
)

var (
	ErrCategoryNameRequired = errors.New("category name is required")
)

// CategoryService defines the business operations on categories. Submit
// operations return the persisted entity or an error; the caller decides
// how to surface either outcome.
type CategoryService interface {
	List(ctx context.Context, search string) ([]*domain.Category, error)
	Create(ctx context.Context, name string) (*domain.Category, error)
	Update(ctx context.Context, id int64, name string) (*domain.Category, error)
	Delete(ctx context.Context, id int64) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService creates a new instance of CategoryService
func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

// List fetches the full collection and applies the optional search term.
// Filtering always runs over the freshly fetched collection, never over
// a previous filtered result.
func (s *categoryService) List(ctx context.Context, search string) ([]*domain.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	return FilterCategories(categories, search), nil
}

// Create inserts a new category after checking required fields
func (s *categoryService) Create(ctx context.Context, name string) (*domain.Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrCategoryNameRequired
	}

	category, err := s.categoryRepo.Insert(ctx, name)
	if err != nil {
		return nil, err
	}

	return category, nil
}

// Update renames an existing category
func (s *categoryService) Update(ctx context.Context, id int64, name string) (*domain.Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrCategoryNameRequired
	}

	category, err := s.categoryRepo.Update(ctx, id, name)
	if err != nil {
		return nil, err
	}

	return category, nil
}

// Delete removes a category by id. Deleting an absent id reports
// repository.ErrCategoryNotFound and changes nothing.
func (s *categoryService) Delete(ctx context.Context, id int64) error {
	return s.categoryRepo.Delete(ctx, id)
}

// FilterCategories is a pure function of (collection, term): the empty
// term yields the collection unchanged; otherwise every category whose
// name contains the term as a case-insensitive substring is kept, in
// the collection's order.
func FilterCategories(categories []*domain.Category, term string) []*domain.Category {
	if term == "" {
		return categories
	}

	lowered := strings.ToLower(term)
	filtered := []*domain.Category{}
	for _, category := range categories {
		if strings.Contains(strings.ToLower(category.Name), lowered) {
			filtered = append(filtered, category)
		}
	}

	return filtered
}
