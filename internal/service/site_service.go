package service

import (
	"context"
	"sync"

	"menu-admin/internal/domain"
)

// SiteView is the payload for the public page: the settings banner plus
// the full menu. The category and product fetches run concurrently and
// fail independently; each section carries its own error so one failing
// does not blank the other.
type SiteView struct {
	Settings      *domain.Settings   `json:"settings,omitempty"`
	SettingsError string             `json:"settings_error,omitempty"`
	Categories    []*domain.Category `json:"categories"`
	CategoryError string             `json:"category_error,omitempty"`
	Products      []*domain.Product  `json:"products"`
	ProductError  string             `json:"product_error,omitempty"`
}

// SiteService assembles the public page view
type SiteService interface {
	View(ctx context.Context) *SiteView
}

type siteService struct {
	categories CategoryService
	products   ProductService
	settings   SettingsService
}

// NewSiteService creates a new instance of SiteService
func NewSiteService(categories CategoryService, products ProductService, settings SettingsService) SiteService {
	return &siteService{
		categories: categories,
		products:   products,
		settings:   settings,
	}
}

// View fetches settings, categories and products. Categories and
// products are issued together and both are awaited before returning;
// neither fetch cancels the other.
func (s *siteService) View(ctx context.Context) *SiteView {
	view := &SiteView{
		Categories: []*domain.Category{},
		Products:   []*domain.Product{},
	}

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		categories, err := s.categories.List(ctx, "")
		if err != nil {
			view.CategoryError = err.Error()
			return
		}
		view.Categories = categories
	}()

	go func() {
		defer wg.Done()
		products, err := s.products.List(ctx, "")
		if err != nil {
			view.ProductError = err.Error()
			return
		}
		view.Products = products
	}()

	settings, err := s.settings.Get(ctx)
	if err != nil {
		view.SettingsError = err.Error()
	} else {
		view.Settings = settings
	}

	wg.Wait()
	return view
}
