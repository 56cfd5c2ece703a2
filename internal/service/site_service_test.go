package service

import (
	"context"
	"errors"
	"testing"

	"menu-admin/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSiteService_AssemblesFullView(t *testing.T) {
	categoryRepo := newMockCategoryRepository()
	productRepo := newMockProductRepository()
	settingsRepo := newMockSettingsRepository()
	settingsRepo.record = &domain.Settings{ID: 1, Title: "Trattoria da Mario"}

	categories := NewCategoryService(categoryRepo)
	products := NewProductService(productRepo, newTestUploader(&fakeBlobStore{}))
	settings := NewSettingsService(settingsRepo, newTestUploader(&fakeBlobStore{}), zap.NewNop())
	svc := NewSiteService(categories, products, settings)
	ctx := context.Background()

	category, err := categories.Create(ctx, "Pizza")
	require.NoError(t, err)
	productRepo.categories[category.ID] = category.Name

	input := validInput()
	input.CategoryID = category.ID
	_, err = products.Create(ctx, input)
	require.NoError(t, err)

	view := svc.View(ctx)

	require.NotNil(t, view.Settings)
	assert.Equal(t, "Trattoria da Mario", view.Settings.Title)
	assert.Len(t, view.Categories, 1)
	assert.Len(t, view.Products, 1)
	assert.Equal(t, "Pizza", view.Products[0].CategoryName)
	assert.Empty(t, view.CategoryError)
	assert.Empty(t, view.ProductError)
	assert.Empty(t, view.SettingsError)
}

func TestSiteService_SectionsFailIndependently(t *testing.T) {
	categoryRepo := newMockCategoryRepository()
	categoryRepo.failWith = errors.New("connection reset")
	productRepo := newMockProductRepository()
	settingsRepo := newMockSettingsRepository()

	categories := NewCategoryService(categoryRepo)
	products := NewProductService(productRepo, newTestUploader(&fakeBlobStore{}))
	settings := NewSettingsService(settingsRepo, newTestUploader(&fakeBlobStore{}), zap.NewNop())
	svc := NewSiteService(categories, products, settings)
	ctx := context.Background()

	_, err := products.Create(ctx, validInput())
	require.NoError(t, err)

	view := svc.View(ctx)

	// The category fetch failed; products still rendered.
	assert.NotEmpty(t, view.CategoryError)
	assert.Len(t, view.Products, 1)
	assert.Empty(t, view.ProductError)

	// No settings record yet reports its own error without affecting
	// the menu sections.
	assert.NotEmpty(t, view.SettingsError)
	assert.Nil(t, view.Settings)
}
