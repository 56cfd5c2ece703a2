package transport

import (
	"errors"
	"net/http"

	"menu-admin/internal/middleware"
	"menu-admin/internal/repository"
	"menu-admin/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SettingsHandler handles HTTP requests for the site settings record.
// Save accepts a multipart form so the header and logo images can ride
// along with the field values.
type SettingsHandler struct {
	settingsService service.SettingsService
	logger          *zap.Logger
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService service.SettingsService, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
		logger:          logger,
	}
}

// RegisterRoutes registers the settings routes. Reads and saves need a
// valid token; deleting the record is admin-only.
func (h *SettingsHandler) RegisterRoutes(r chi.Router, authMiddleware, adminMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/settings", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.Get)
		r.Put("/", h.Save)

		r.Group(func(r chi.Router) {
			r.Use(adminMiddleware)
			r.Delete("/{id}", h.Delete)
		})
	})
}

// Get returns the settings record, 404 when none has been created yet
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsService.Get(r.Context())
	if err != nil {
		if errors.Is(err, repository.ErrSettingsNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		h.logger.Error("Failed to get settings", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get settings")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, settings)
}

// Save persists the settings record: an insert when none exists, an
// update otherwise. The response carries the persisted record so the
// dashboard form rebinds to it and the next save is an update.
func (h *SettingsHandler) Save(w http.ResponseWriter, r *http.Request) {
	input, cleanup, err := h.parseSettingsForm(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer cleanup()

	settings, err := h.settingsService.Save(r.Context(), input)
	if err != nil {
		if errors.Is(err, service.ErrSettingsFieldsRequired) {
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("Failed to save settings", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to save settings")
		return
	}

	h.logger.Info("Settings saved", zap.Int64("id", settings.ID), zap.String("title", settings.Title))
	middleware.RespondWithJSON(w, http.StatusOK, settings)
}

// Delete removes the settings record
func (h *SettingsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid settings id")
		return
	}

	if err := h.settingsService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrSettingsNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		h.logger.Error("Failed to delete settings", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete settings")
		return
	}

	h.logger.Info("Settings deleted", zap.Int64("id", id))
	middleware.RespondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// parseSettingsForm decodes the multipart settings submit: the text
// fields plus optional "header" and "logo" file parts.
func (h *SettingsHandler) parseSettingsForm(r *http.Request) (service.SettingsInput, func(), error) {
	noop := func() {}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return service.SettingsInput{}, noop, errors.New("invalid multipart form")
	}

	input := service.SettingsInput{
		Title:       r.FormValue("title"),
		Subtitle:    r.FormValue("subtitle"),
		Address:     r.FormValue("address"),
		PhoneNumber: r.FormValue("phone_number"),
		HeaderURL:   r.FormValue("header_url"),
		CompanyLogo: r.FormValue("company_logo"),
	}

	closers := []func(){}
	cleanup := func() {
		for _, close := range closers {
			close()
		}
	}

	for _, part := range []struct {
		field string
		dst   **service.ImageFile
	}{
		{"header", &input.Header},
		{"logo", &input.Logo},
	} {
		file, header, err := r.FormFile(part.field)
		if err == http.ErrMissingFile {
			continue
		}
		if err != nil {
			cleanup()
			return service.SettingsInput{}, noop, errors.New("invalid " + part.field + " file")
		}
		closers = append(closers, func() { file.Close() })
		*part.dst = &service.ImageFile{Filename: header.Filename, Body: file}
	}

	return input, cleanup, nil
}
