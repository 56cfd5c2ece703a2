package server

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"menu-admin/internal/config"
	custommiddleware "menu-admin/internal/middleware"
	"menu-admin/internal/repository"
	"menu-admin/internal/service"
	"menu-admin/internal/storage"
	"menu-admin/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     *sql.DB
	redis  *redis.Client
}

func NewServer(cfg *config.Config, logger *zap.Logger, db *sql.DB) (*Server, error) {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(cfg.Server.AllowedOrigins, cfg.Server.Env == "development"))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Image blob store
	blobStore, err := storage.NewDiskStore(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize blob store: %w", err)
	}
	uploader := storage.NewUploader(blobStore, logger)

	// Serve stored objects back under /uploads
	fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.Storage.UploadsDir)))
	router.Get("/uploads/*", fileServer.ServeHTTP)

	// Initialize repositories
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	staffRepo := repository.NewStaffRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)

	// Initialize services
	categoryService := service.NewCategoryService(categoryRepo)
	productService := service.NewProductService(productRepo, uploader)
	settingsService := service.NewSettingsService(settingsRepo, uploader, logger)
	staffService := service.NewStaffService(staffRepo, refreshTokenRepo, cfg.JWT.Secret)
	siteService := service.NewSiteService(categoryService, productService, settingsService)

	// Initialize handlers
	categoryHandler := transport.NewCategoryHandler(categoryService, logger)
	productHandler := transport.NewProductHandler(productService, logger)
	settingsHandler := transport.NewSettingsHandler(settingsService, logger)
	staffHandler := transport.NewStaffHandler(staffService, logger)
	siteHandler := transport.NewSiteHandler(siteService, logger)

	// Auth middleware
	authMiddleware := custommiddleware.AuthMiddleware(cfg.JWT.Secret, logger)
	adminMiddleware := custommiddleware.RequireAdmin(logger)

	// Rate limit login and registration attempts
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	rateLimited := custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
		RequestsPerWindow: 20,
		Window:            time.Minute,
		KeyPrefix:         "ratelimit:staff",
	}, logger)
	uploadLimited := custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
		RequestsPerWindow: 60,
		Window:            time.Minute,
		KeyPrefix:         "ratelimit:upload",
	}, logger)

	// Register routes
	router.Group(func(r chi.Router) {
		r.Use(rateLimited)
		staffHandler.RegisterRoutes(r, authMiddleware)
	})
	router.Group(func(r chi.Router) {
		r.Use(uploadLimited)
		productHandler.RegisterRoutes(r, authMiddleware)
		settingsHandler.RegisterRoutes(r, authMiddleware, adminMiddleware)
	})
	categoryHandler.RegisterRoutes(router, authMiddleware)
	siteHandler.RegisterRoutes(router)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		db:     db,
		redis:  redisClient,
	}

	return server, nil
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis client", zap.Error(err))
		}
	}

	// Close database connection
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
