package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"menu-admin/internal/domain"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// UnknownCategoryName is substituted for the category_name projection
// when a product's category_id no longer resolves to a category.
const UnknownCategoryName = "unknown category"

// ProductRepository defines the interface for product data access.
// List resolves category_name at read time via a join; the value is a
// projection and is never written back.
type ProductRepository interface {
	List(ctx context.Context) ([]*domain.Product, error)
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	Insert(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, id int64, product *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

// List retrieves all products with their category names resolved
func (r *productRepository) List(ctx context.Context) ([]*domain.Product, error) {
	query := `
		SELECT p.id, p.uuid, p.name, p.info, p.price, p.image_url, p.category_id,
		       c.category_name, p.created_at, p.updated_at
		FROM product p
		LEFT JOIN category c ON c.id = p.category_id
		ORDER BY p.id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		product := &domain.Product{}
		var categoryName sql.NullString
		err := rows.Scan(
			&product.ID,
			&product.UUID,
			&product.Name,
			&product.Info,
			&product.Price,
			&product.ImageURL,
			&product.CategoryID,
			&categoryName,
			&product.CreatedAt,
			&product.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		if categoryName.Valid {
			product.CategoryName = categoryName.String
		} else {
			product.CategoryName = UnknownCategoryName
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// FindByID retrieves a product by ID using parameterized queries
func (r *productRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `
		SELECT id, uuid, name, info, price, image_url, category_id, created_at, updated_at
		FROM product
		WHERE id = $1
	`

	product := &domain.Product{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&product.ID,
		&product.UUID,
		&product.Name,
		&product.Info,
		&product.Price,
		&product.ImageURL,
		&product.CategoryID,
		&product.CreatedAt,
		&product.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	return product, nil
}

// Insert creates a new product and returns it with its assigned id
func (r *productRepository) Insert(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	query := `
		INSERT INTO product (uuid, name, info, price, image_url, category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	inserted := *product
	err := r.db.QueryRowContext(
		ctx,
		query,
		product.UUID,
		product.Name,
		product.Info,
		product.Price,
		product.ImageURL,
		product.CategoryID,
		product.CreatedAt,
		product.UpdatedAt,
	).Scan(&inserted.ID)

	if err != nil {
		return nil, fmt.Errorf("failed to insert product: %w", err)
	}

	return &inserted, nil
}

// Update updates an existing product. The id and uuid columns are never
// touched; everything else is replaced from the given values.
func (r *productRepository) Update(ctx context.Context, id int64, product *domain.Product) (*domain.Product, error) {
	query := `
		UPDATE product
		SET name = $2, info = $3, price = $4, image_url = $5,
		    category_id = $6, updated_at = $7
		WHERE id = $1
		RETURNING id, uuid, name, info, price, image_url, category_id, created_at, updated_at
	`

	updated := &domain.Product{}
	err := r.db.QueryRowContext(
		ctx,
		query,
		id,
		product.Name,
		product.Info,
		product.Price,
		product.ImageURL,
		product.CategoryID,
		product.UpdatedAt,
	).Scan(
		&updated.ID,
		&updated.UUID,
		&updated.Name,
		&updated.Info,
		&updated.Price,
		&updated.ImageURL,
		&updated.CategoryID,
		&updated.CreatedAt,
		&updated.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return updated, nil
}

// Delete removes a product. A second delete of the same id reports
// ErrProductNotFound.
func (r *productRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM product WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}
