package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"menu-admin/internal/domain"
)

var (
	ErrSettingsNotFound = errors.New("settings not found")

	// ErrSettingsAlreadyExists is returned when an insert races a prior
	// insert: the settings table carries a unique index over a constant
	// expression, so the database admits at most one row and the loser
	// of a concurrent first-save sees this error.
	ErrSettingsAlreadyExists = errors.New("settings record already exists")
)

const settingsColumns = `id, title, subtitle, address, phone_number, header_url, company_logo, created_at, updated_at`

// SettingsRepository defines the interface for the site settings record.
// The table holds at most one row; Get has fetch-one semantics.
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.Settings, error)
	Insert(ctx context.Context, settings *domain.Settings) (*domain.Settings, error)
	Update(ctx context.Context, id int64, settings *domain.Settings) (*domain.Settings, error)
	Delete(ctx context.Context, id int64) error
}

type settingsRepository struct {
	db *sql.DB
}

// NewSettingsRepository creates a new instance of SettingsRepository
func NewSettingsRepository(db *sql.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

// Get retrieves the single settings row
func (r *settingsRepository) Get(ctx context.Context) (*domain.Settings, error) {
	query := fmt.Sprintf(`SELECT %s FROM settings LIMIT 1`, settingsColumns)

	settings := &domain.Settings{}
	err := r.db.QueryRowContext(ctx, query).Scan(
		&settings.ID,
		&settings.Title,
		&settings.Subtitle,
		&settings.Address,
		&settings.PhoneNumber,
		&settings.HeaderURL,
		&settings.CompanyLogo,
		&settings.CreatedAt,
		&settings.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrSettingsNotFound
		}
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	return settings, nil
}

// Insert creates the settings row. Fails with ErrSettingsAlreadyExists
// when a row is already present.
func (r *settingsRepository) Insert(ctx context.Context, settings *domain.Settings) (*domain.Settings, error) {
	query := fmt.Sprintf(`
		INSERT INTO settings (title, subtitle, address, phone_number, header_url, company_logo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s
	`, settingsColumns)

	inserted := &domain.Settings{}
	err := r.db.QueryRowContext(
		ctx,
		query,
		settings.Title,
		settings.Subtitle,
		settings.Address,
		settings.PhoneNumber,
		settings.HeaderURL,
		settings.CompanyLogo,
		settings.CreatedAt,
		settings.UpdatedAt,
	).Scan(
		&inserted.ID,
		&inserted.Title,
		&inserted.Subtitle,
		&inserted.Address,
		&inserted.PhoneNumber,
		&inserted.HeaderURL,
		&inserted.CompanyLogo,
		&inserted.CreatedAt,
		&inserted.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSettingsAlreadyExists
		}
		return nil, fmt.Errorf("failed to insert settings: %w", err)
	}

	return inserted, nil
}

// Update replaces the settings fields on the existing row
func (r *settingsRepository) Update(ctx context.Context, id int64, settings *domain.Settings) (*domain.Settings, error) {
	query := fmt.Sprintf(`
		UPDATE settings
		SET title = $2, subtitle = $3, address = $4, phone_number = $5,
		    header_url = $6, company_logo = $7, updated_at = $8
		WHERE id = $1
		RETURNING %s
	`, settingsColumns)

	updated := &domain.Settings{}
	err := r.db.QueryRowContext(
		ctx,
		query,
		id,
		settings.Title,
		settings.Subtitle,
		settings.Address,
		settings.PhoneNumber,
		settings.HeaderURL,
		settings.CompanyLogo,
		settings.UpdatedAt,
	).Scan(
		&updated.ID,
		&updated.Title,
		&updated.Subtitle,
		&updated.Address,
		&updated.PhoneNumber,
		&updated.HeaderURL,
		&updated.CompanyLogo,
		&updated.CreatedAt,
		&updated.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrSettingsNotFound
		}
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}

	return updated, nil
}

// Delete removes the settings row
func (r *settingsRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM settings WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete settings: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrSettingsNotFound
	}

	return nil
}
