package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	"menu-admin/internal/domain"
	"menu-admin/internal/middleware"
	"menu-admin/internal/repository"
	"menu-admin/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RegisterRequest represents the staff registration payload
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required"`
}

// LoginRequest represents the login payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest represents the token refresh payload
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// LoginResponse represents the login response
type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	Staff        StaffProfile `json:"staff"`
}

// StaffProfile represents staff account data exposed to the dashboard
type StaffProfile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func profileOf(staff *domain.Staff) StaffProfile {
	return StaffProfile{
		ID:    staff.ID.String(),
		Email: staff.Email,
		Name:  staff.Name,
		Role:  staff.Role,
	}
}

// StaffHandler handles HTTP requests for staff authentication
type StaffHandler struct {
	staffService service.StaffService
	logger       *zap.Logger
}

// NewStaffHandler creates a new StaffHandler
func NewStaffHandler(staffService service.StaffService, logger *zap.Logger) *StaffHandler {
	return &StaffHandler{
		staffService: staffService,
		logger:       logger,
	}
}

// RegisterRoutes registers all staff routes
func (h *StaffHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/staff", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Post("/refresh", h.Refresh)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Post("/logout", h.Logout)
			r.Get("/profile", h.Profile)
		})
	})
}

// Register handles staff account creation
func (h *StaffHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Registration validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	staff, err := h.staffService.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, repository.ErrStaffAlreadyExists) {
			middleware.RespondWithError(w, http.StatusConflict, err.Error())
			return
		}
		h.logger.Error("Registration failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to register staff account")
		return
	}

	h.logger.Info("Staff account registered", zap.String("staff_id", staff.ID.String()))
	middleware.RespondWithJSON(w, http.StatusCreated, profileOf(staff))
}

// Login handles staff authentication
func (h *StaffHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Login validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	accessToken, refreshToken, staff, err := h.staffService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			middleware.RespondWithError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		h.logger.Error("Login failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to login")
		return
	}

	h.logger.Info("Staff logged in", zap.String("staff_id", staff.ID.String()))
	middleware.RespondWithJSON(w, http.StatusOK, LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Staff:        profileOf(staff),
	})
}

// Logout revokes the refresh token
func (h *StaffHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.staffService.Logout(r.Context(), req.RefreshToken); err != nil {
		h.logger.Error("Logout failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to logout")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "logged out successfully"})
}

// Refresh issues a new access token
func (h *StaffHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	accessToken, err := h.staffService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidToken) || errors.Is(err, service.ErrTokenExpired) {
			middleware.RespondWithError(w, http.StatusUnauthorized, err.Error())
			return
		}
		h.logger.Error("Token refresh failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to refresh token")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"access_token": accessToken})
}

// Profile returns the authenticated staff account
func (h *StaffHandler) Profile(w http.ResponseWriter, r *http.Request) {
	idStr, ok := middleware.GetStaffID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid staff id")
		return
	}

	staff, err := h.staffService.GetStaffByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrStaffNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		h.logger.Error("Failed to get staff profile", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get staff profile")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, profileOf(staff))
}
