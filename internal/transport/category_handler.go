package transport

import (
	"errors"
	"net/http"
	"strconv"

	"menu-admin/internal/middleware"
	"menu-admin/internal/repository"
	"menu-admin/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CategoryRequest represents the create/update category payload
type CategoryRequest struct {
	Name string `json:"category_name" validate:"required"`
}

// CategoryHandler handles HTTP requests for category operations
type CategoryHandler struct {
	categoryService service.CategoryService
	logger          *zap.Logger
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService service.CategoryService, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		logger:          logger,
	}
}

// RegisterRoutes registers all category routes behind the auth middleware
func (h *CategoryHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/categories", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// List returns all categories, optionally filtered by the search term
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")

	categories, err := h.categoryService.List(r.Context(), search)
	if err != nil {
		h.logger.Error("Failed to list categories", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list categories")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, categories)
}

// Create inserts a new category
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Category validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	category, err := h.categoryService.Create(r.Context(), req.Name)
	if err != nil {
		h.respondCategoryError(w, err, "failed to create category")
		return
	}

	h.logger.Info("Category created", zap.Int64("id", category.ID), zap.String("name", category.Name))
	middleware.RespondWithJSON(w, http.StatusCreated, category)
}

// Update renames an existing category
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	var req CategoryRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Category validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	category, err := h.categoryService.Update(r.Context(), id, req.Name)
	if err != nil {
		h.respondCategoryError(w, err, "failed to update category")
		return
	}

	h.logger.Info("Category updated", zap.Int64("id", category.ID), zap.String("name", category.Name))
	middleware.RespondWithJSON(w, http.StatusOK, category)
}

// Delete removes a category after the dashboard's confirmation step
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	if err := h.categoryService.Delete(r.Context(), id); err != nil {
		h.respondCategoryError(w, err, "failed to delete category")
		return
	}

	h.logger.Info("Category deleted", zap.Int64("id", id))
	middleware.RespondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *CategoryHandler) respondCategoryError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrCategoryNameRequired):
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrCategoryNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, repository.ErrCategoryAlreadyExists):
		middleware.RespondWithError(w, http.StatusConflict, err.Error())
	default:
		h.logger.Error(fallback, zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, fallback)
	}
}

// parseID extracts the numeric {id} route parameter
func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
