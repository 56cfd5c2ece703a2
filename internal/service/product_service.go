package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"menu-admin/internal/domain"
	"menu-admin/internal/repository"
	"menu-admin/internal/storage"

	"github.com/google/uuid"
)

var (
	ErrProductNameRequired = errors.New("product name is required")
	ErrProductInfoRequired = errors.New("product info is required")
	ErrCategoryRequired    = errors.New("product category is required")
	ErrInvalidPrice        = errors.New("product price must not be negative")
)

// ImageFile is a newly selected image accompanying a product submit.
type ImageFile struct {
	Filename string
	Body     io.Reader
}

// ProductInput carries the editable product fields for create and
// update. ImageURL holds the previously persisted URL; Image, when
// non-nil, is a new file to upload in its place.
type ProductInput struct {
	Name       string
	Info       string
	Price      float64
	CategoryID int64
	ImageURL   string
	Image      *ImageFile
}

// ProductService defines the business operations on products
type ProductService interface {
	List(ctx context.Context, search string) ([]*domain.Product, error)
	Create(ctx context.Context, input ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id int64, input ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
}

type productService struct {
	productRepo repository.ProductRepository
	uploader    *storage.Uploader
	now         func() time.Time
}

// NewProductService creates a new instance of ProductService
func NewProductService(productRepo repository.ProductRepository, uploader *storage.Uploader) ProductService {
	return &productService{
		productRepo: productRepo,
		uploader:    uploader,
		now:         time.Now,
	}
}

// List fetches all products, with category names resolved by the
// repository join, and applies the optional search term over names.
func (s *productService) List(ctx context.Context, search string) ([]*domain.Product, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return FilterProducts(products, search), nil
}

// Create validates the input, uploads the new image when one was
// selected, and inserts the product. An upload failure aborts the whole
// submit: nothing is inserted and the caller's field values stand.
func (s *productService) Create(ctx context.Context, input ProductInput) (*domain.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	imageURL, err := s.resolveImageURL(ctx, input)
	if err != nil {
		return nil, err
	}

	now := s.now()
	product := &domain.Product{
		UUID:       uuid.New(),
		Name:       input.Name,
		Info:       input.Info,
		Price:      input.Price,
		ImageURL:   imageURL,
		CategoryID: input.CategoryID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	return s.productRepo.Insert(ctx, product)
}

// Update validates the input, uploads any newly selected image, and
// replaces the stored fields. The id and uuid never change.
func (s *productService) Update(ctx context.Context, id int64, input ProductInput) (*domain.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	imageURL, err := s.resolveImageURL(ctx, input)
	if err != nil {
		return nil, err
	}

	product := &domain.Product{
		Name:       input.Name,
		Info:       input.Info,
		Price:      input.Price,
		ImageURL:   imageURL,
		CategoryID: input.CategoryID,
		UpdatedAt:  s.now(),
	}

	return s.productRepo.Update(ctx, id, product)
}

// Delete removes a product by id
func (s *productService) Delete(ctx context.Context, id int64) error {
	return s.productRepo.Delete(ctx, id)
}

// resolveImageURL returns the URL to persist: the freshly uploaded
// object's URL when a new image was selected, the prior URL otherwise.
func (s *productService) resolveImageURL(ctx context.Context, input ProductInput) (string, error) {
	if input.Image == nil {
		return input.ImageURL, nil
	}

	url, err := s.uploader.Upload(ctx, input.Image.Filename, input.Image.Body)
	if err != nil {
		return "", err
	}

	return url, nil
}

func validateProductInput(input ProductInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return ErrProductNameRequired
	}
	if strings.TrimSpace(input.Info) == "" {
		return ErrProductInfoRequired
	}
	if input.CategoryID == 0 {
		return ErrCategoryRequired
	}
	if input.Price < 0 {
		return ErrInvalidPrice
	}
	return nil
}

// FilterProducts is the product counterpart of FilterCategories: a pure,
// non-incremental, case-insensitive substring filter over product names.
func FilterProducts(products []*domain.Product, term string) []*domain.Product {
	if term == "" {
		return products
	}

	lowered := strings.ToLower(term)
	filtered := []*domain.Product{}
	for _, product := range products {
		if strings.Contains(strings.ToLower(product.Name), lowered) {
			filtered = append(filtered, product)
		}
	}

	return filtered
}
