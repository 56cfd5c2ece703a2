package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"menu-admin/internal/domain"
	"menu-admin/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	bcryptCost = 10

	AccessTokenExpiration  = 15 * time.Minute
	RefreshTokenExpiration = 7 * 24 * time.Hour
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token has expired")
)

// Claims represents the JWT claims carried by access tokens
type Claims struct {
	StaffID uuid.UUID `json:"staff_id"`
	Role    string    `json:"role"`
	jwt.RegisteredClaims
}

// StaffService defines authentication and account operations for
// dashboard staff
type StaffService interface {
	Register(ctx context.Context, email, password, name string) (*domain.Staff, error)
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, staff *domain.Staff, err error)
	Logout(ctx context.Context, refreshToken string) error
	Refresh(ctx context.Context, refreshToken string) (newAccessToken string, err error)
	GetStaffByID(ctx context.Context, id uuid.UUID) (*domain.Staff, error)
}

type staffService struct {
	staffRepo        repository.StaffRepository
	refreshTokenRepo repository.RefreshTokenRepository
	jwtSecret        string
}

// NewStaffService creates a new instance of StaffService
func NewStaffService(
	staffRepo repository.StaffRepository,
	refreshTokenRepo repository.RefreshTokenRepository,
	jwtSecret string,
) StaffService {
	return &staffService{
		staffRepo:        staffRepo,
		refreshTokenRepo: refreshTokenRepo,
		jwtSecret:        jwtSecret,
	}
}

// Register creates a new staff account with a bcrypt password hash
func (s *staffService) Register(ctx context.Context, email, password, name string) (*domain.Staff, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	staff := &domain.Staff{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         "staff",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.staffRepo.Create(ctx, staff); err != nil {
		return nil, err
	}

	return staff, nil
}

// Login authenticates a staff account and issues an access token plus a
// stored refresh token
func (s *staffService) Login(ctx context.Context, email, password string) (string, string, *domain.Staff, error) {
	staff, err := s.staffRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrStaffNotFound) {
			return "", "", nil, ErrInvalidCredentials
		}
		return "", "", nil, fmt.Errorf("failed to find staff account: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(staff.PasswordHash), []byte(password)) != nil {
		return "", "", nil, ErrInvalidCredentials
	}

	accessToken, err := s.signAccessToken(staff)
	if err != nil {
		return "", "", nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshToken := uuid.New().String()
	err = s.refreshTokenRepo.Create(ctx, &domain.RefreshToken{
		ID:        uuid.New(),
		StaffID:   staff.ID,
		Token:     refreshToken,
		ExpiresAt: time.Now().Add(RefreshTokenExpiration),
		CreatedAt: time.Now(),
	})
	if err != nil {
		return "", "", nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return accessToken, refreshToken, staff, nil
}

// Logout revokes the refresh token. Revoking a token that is already
// gone counts as logged out.
func (s *staffService) Logout(ctx context.Context, refreshToken string) error {
	err := s.refreshTokenRepo.Revoke(ctx, refreshToken)
	if err != nil && !errors.Is(err, repository.ErrRefreshTokenNotFound) {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

// Refresh issues a new access token against a valid refresh token
func (s *staffService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	stored, err := s.refreshTokenRepo.FindByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) || errors.Is(err, repository.ErrRefreshTokenRevoked) {
			return "", ErrInvalidToken
		}
		return "", fmt.Errorf("failed to find refresh token: %w", err)
	}

	if time.Now().After(stored.ExpiresAt) {
		return "", ErrTokenExpired
	}

	staff, err := s.staffRepo.FindByID(ctx, stored.StaffID)
	if err != nil {
		return "", fmt.Errorf("failed to find staff account: %w", err)
	}

	return s.signAccessToken(staff)
}

// GetStaffByID retrieves a staff account by id
func (s *staffService) GetStaffByID(ctx context.Context, id uuid.UUID) (*domain.Staff, error) {
	return s.staffRepo.FindByID(ctx, id)
}

func (s *staffService) signAccessToken(staff *domain.Staff) (string, error) {
	claims := &Claims{
		StaffID: staff.ID,
		Role:    staff.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(AccessTokenExpiration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
