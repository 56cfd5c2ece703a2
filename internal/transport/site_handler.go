package transport

import (
	"net/http"

	"menu-admin/internal/middleware"
	"menu-admin/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SiteHandler serves the unauthenticated public page data
type SiteHandler struct {
	siteService service.SiteService
	logger      *zap.Logger
}

// NewSiteHandler creates a new SiteHandler
func NewSiteHandler(siteService service.SiteService, logger *zap.Logger) *SiteHandler {
	return &SiteHandler{
		siteService: siteService,
		logger:      logger,
	}
}

// RegisterRoutes registers the public site route
func (h *SiteHandler) RegisterRoutes(r chi.Router) {
	r.Get("/api/site", h.View)
}

// View returns the settings banner and the menu. Sections fail
// independently: a failed fetch sets its own error field and the others
// still render.
func (h *SiteHandler) View(w http.ResponseWriter, r *http.Request) {
	view := h.siteService.View(r.Context())

	if view.SettingsError != "" || view.CategoryError != "" || view.ProductError != "" {
		h.logger.Warn("Partial site view",
			zap.String("settings_error", view.SettingsError),
			zap.String("category_error", view.CategoryError),
			zap.String("product_error", view.ProductError),
		)
	}

	middleware.RespondWithJSON(w, http.StatusOK, view)
}
