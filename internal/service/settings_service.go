package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"menu-admin/internal/domain"
	"menu-admin/internal/repository"
	"menu-admin/internal/storage"

	"go.uber.org/zap"
)

var (
	ErrSettingsFieldsRequired = errors.New("title, subtitle, address and phone number are required")
)

// SettingsInput carries the editable settings fields. HeaderURL and
// CompanyLogo hold the previously persisted URLs; Header and Logo, when
// non-nil, are newly selected images to upload in their place.
type SettingsInput struct {
	Title       string
	Subtitle    string
	Address     string
	PhoneNumber string
	HeaderURL   string
	CompanyLogo string
	Header      *ImageFile
	Logo        *ImageFile
}

// SettingsService manages the single site settings record
type SettingsService interface {
	Get(ctx context.Context) (*domain.Settings, error)
	Save(ctx context.Context, input SettingsInput) (*domain.Settings, error)
	Delete(ctx context.Context, id int64) error
}

type settingsService struct {
	settingsRepo repository.SettingsRepository
	uploader     *storage.Uploader
	logger       *zap.Logger
	now          func() time.Time
}

// NewSettingsService creates a new instance of SettingsService
func NewSettingsService(settingsRepo repository.SettingsRepository, uploader *storage.Uploader, logger *zap.Logger) SettingsService {
	return &settingsService{
		settingsRepo: settingsRepo,
		uploader:     uploader,
		logger:       logger,
		now:          time.Now,
	}
}

// Get retrieves the settings record
func (s *settingsService) Get(ctx context.Context) (*domain.Settings, error) {
	return s.settingsRepo.Get(ctx)
}

// Save persists the settings record: an update when one exists, an
// insert when none does. A newly selected header or logo image is
// uploaded first; if that upload fails the previous URL stands and the
// save still goes through. When two first-saves race, the database
// singleton guard rejects the second insert and we retry as an update
// against the winner's row.
func (s *settingsService) Save(ctx context.Context, input SettingsInput) (*domain.Settings, error) {
	if err := validateSettingsInput(input); err != nil {
		return nil, err
	}

	headerURL := s.uploadOrKeep(ctx, input.Header, input.HeaderURL)
	companyLogo := s.uploadOrKeep(ctx, input.Logo, input.CompanyLogo)

	now := s.now()
	settings := &domain.Settings{
		Title:       input.Title,
		Subtitle:    input.Subtitle,
		Address:     input.Address,
		PhoneNumber: input.PhoneNumber,
		HeaderURL:   headerURL,
		CompanyLogo: companyLogo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	current, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrSettingsNotFound) {
			return nil, fmt.Errorf("failed to load current settings: %w", err)
		}

		inserted, err := s.settingsRepo.Insert(ctx, settings)
		if err == nil {
			return inserted, nil
		}
		if !errors.Is(err, repository.ErrSettingsAlreadyExists) {
			return nil, err
		}

		// Lost the first-create race; the row exists now.
		current, err = s.settingsRepo.Get(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to reload settings after create race: %w", err)
		}
	}

	return s.settingsRepo.Update(ctx, current.ID, settings)
}

// Delete removes the settings record
func (s *settingsService) Delete(ctx context.Context, id int64) error {
	return s.settingsRepo.Delete(ctx, id)
}

// uploadOrKeep uploads the new image when one was selected, falling back
// to the previous URL when none was selected or the upload fails.
func (s *settingsService) uploadOrKeep(ctx context.Context, image *ImageFile, previousURL string) string {
	if image == nil {
		return previousURL
	}

	url, err := s.uploader.Upload(ctx, image.Filename, image.Body)
	if err != nil {
		s.logger.Warn("Settings image upload failed, keeping previous URL",
			zap.String("filename", image.Filename),
			zap.Error(err),
		)
		return previousURL
	}

	return url
}

func validateSettingsInput(input SettingsInput) error {
	for _, field := range []string{input.Title, input.Subtitle, input.Address, input.PhoneNumber} {
		if strings.TrimSpace(field) == "" {
			return ErrSettingsFieldsRequired
		}
	}
	return nil
}
