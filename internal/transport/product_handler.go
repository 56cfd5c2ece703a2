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

// maxUploadSize caps the multipart form memory for product submits.
const maxUploadSize = 10 << 20 // 10 MiB

// ProductHandler handles HTTP requests for product operations. Create
// and update accept multipart forms so a new image can ride along with
// the field values.
type ProductHandler struct {
	productService service.ProductService
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService service.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		logger:         logger,
	}
}

// RegisterRoutes registers all product routes behind the auth middleware
func (h *ProductHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/products", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// List returns all products with category names resolved, optionally
// filtered by the search term
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")

	products, err := h.productService.List(r.Context(), search)
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// Create inserts a new product, uploading its image first when one was
// attached. An upload failure aborts the submit and nothing is created.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	input, cleanup, err := h.parseProductForm(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer cleanup()

	product, err := h.productService.Create(r.Context(), input)
	if err != nil {
		h.respondProductError(w, err, "failed to create product")
		return
	}

	h.logger.Info("Product created",
		zap.Int64("id", product.ID),
		zap.String("name", product.Name),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, product)
}

// Update replaces an existing product's fields
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	input, cleanup, err := h.parseProductForm(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer cleanup()

	product, err := h.productService.Update(r.Context(), id, input)
	if err != nil {
		h.respondProductError(w, err, "failed to update product")
		return
	}

	h.logger.Info("Product updated",
		zap.Int64("id", product.ID),
		zap.String("name", product.Name),
	)
	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Delete removes a product after the dashboard's confirmation step
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	if err := h.productService.Delete(r.Context(), id); err != nil {
		h.respondProductError(w, err, "failed to delete product")
		return
	}

	h.logger.Info("Product deleted", zap.Int64("id", id))
	middleware.RespondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// parseProductForm decodes the multipart product submit: the editable
// fields plus an optional "image" file part. The returned cleanup
// closes the file part when one was opened.
func (h *ProductHandler) parseProductForm(r *http.Request) (service.ProductInput, func(), error) {
	noop := func() {}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return service.ProductInput{}, noop, errors.New("invalid multipart form")
	}

	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil {
		return service.ProductInput{}, noop, errors.New("invalid price")
	}

	categoryID, err := strconv.ParseInt(r.FormValue("category_id"), 10, 64)
	if err != nil {
		return service.ProductInput{}, noop, errors.New("invalid category_id")
	}

	input := service.ProductInput{
		Name:       r.FormValue("name"),
		Info:       r.FormValue("info"),
		Price:      price,
		CategoryID: categoryID,
		ImageURL:   r.FormValue("image_url"),
	}

	file, header, err := r.FormFile("image")
	if err == nil {
		input.Image = &service.ImageFile{
			Filename: header.Filename,
			Body:     file,
		}
		return input, func() { file.Close() }, nil
	}
	if err != http.ErrMissingFile {
		return service.ProductInput{}, noop, errors.New("invalid image file")
	}

	return input, noop, nil
}

func (h *ProductHandler) respondProductError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrProductNameRequired),
		errors.Is(err, service.ErrProductInfoRequired),
		errors.Is(err, service.ErrCategoryRequired),
		errors.Is(err, service.ErrInvalidPrice):
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrProductNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, err.Error())
	default:
		h.logger.Error(fallback, zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, fallback)
	}
}
