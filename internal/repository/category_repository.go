package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"menu-admin/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrCategoryNotFound      = errors.New("category not found")
	ErrCategoryAlreadyExists = errors.New("category with this name already exists")
)

// CategoryRepository defines the interface for category data access.
// Every operation is a single round-trip; ids are assigned by the
// database and returned on insert.
type CategoryRepository interface {
	List(ctx context.Context) ([]*domain.Category, error)
	FindByID(ctx context.Context, id int64) (*domain.Category, error)
	Insert(ctx context.Context, name string) (*domain.Category, error)
	Update(ctx context.Context, id int64, name string) (*domain.Category, error)
	Delete(ctx context.Context, id int64) error
}

type categoryRepository struct {
	db *sql.DB
}

// NewCategoryRepository creates a new instance of CategoryRepository
func NewCategoryRepository(db *sql.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

// List retrieves all categories
func (r *categoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	query := `
		SELECT id, category_name
		FROM category
		ORDER BY category_name ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []*domain.Category{}
	for rows.Next() {
		category := &domain.Category{}
		if err := rows.Scan(&category.ID, &category.Name); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

// FindByID retrieves a category by ID using parameterized queries
func (r *categoryRepository) FindByID(ctx context.Context, id int64) (*domain.Category, error) {
	query := `
		SELECT id, category_name
		FROM category
		WHERE id = $1
	`

	category := &domain.Category{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&category.ID, &category.Name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find category by ID: %w", err)
	}

	return category, nil
}

// Insert creates a new category and returns it with its assigned id
func (r *categoryRepository) Insert(ctx context.Context, name string) (*domain.Category, error) {
	query := `
		INSERT INTO category (category_name)
		VALUES ($1)
		RETURNING id, category_name
	`

	category := &domain.Category{}
	err := r.db.QueryRowContext(ctx, query, name).Scan(&category.ID, &category.Name)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrCategoryAlreadyExists
		}
		return nil, fmt.Errorf("failed to insert category: %w", err)
	}

	return category, nil
}

// Update renames an existing category
func (r *categoryRepository) Update(ctx context.Context, id int64, name string) (*domain.Category, error) {
	query := `
		UPDATE category
		SET category_name = $2
		WHERE id = $1
		RETURNING id, category_name
	`

	category := &domain.Category{}
	err := r.db.QueryRowContext(ctx, query, id, name).Scan(&category.ID, &category.Name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrCategoryNotFound
		}
		if isUniqueViolation(err) {
			return nil, ErrCategoryAlreadyExists
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return category, nil
}

// Delete removes a category. Deleting an id that is already absent
// reports ErrCategoryNotFound rather than succeeding silently.
func (r *categoryRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM category WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrCategoryNotFound
	}

	return nil
}

// isUniqueViolation reports whether err is a postgres unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
