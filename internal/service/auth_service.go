package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/carenotes/internal/auth"
	"github.com/spec-kit/carenotes/internal/config"
	"github.com/spec-kit/carenotes/internal/domain"
	"github.com/spec-kit/carenotes/internal/repository"
	apperrors "github.com/spec-kit/carenotes/pkg/util"
)

// AuthService manages staff accounts and credentials.
type AuthService struct {
	staff  repository.StaffRepository
	resets repository.PasswordResetRepository
	tokens *auth.TokenManager
	cfg    config.AuthConfig
	logger *zap.Logger
}

// AuthDependencies bundles requirements for the auth service.
type AuthDependencies struct {
	StaffRepo repository.StaffRepository
	ResetRepo repository.PasswordResetRepository
	Tokens    *auth.TokenManager
	Config    config.AuthConfig
	Logger    *zap.Logger
}

// LoginResult carries the issued token and its owner.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Staff     *domain.StaffMember
}

// NewAuthService constructs the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	return &AuthService{
		staff:  deps.StaffRepo,
		resets: deps.ResetRepo,
		tokens: deps.Tokens,
		cfg:    deps.Config,
		logger: deps.Logger,
	}
}

// RegisterStaff creates a staff account with a hashed password.
func (s *AuthService) RegisterStaff(ctx context.Context, name, email, password string, role domain.StaffRole) (*domain.StaffMember, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" {
		return nil, apperrors.NewValidationError("name and email required", nil)
	}
	if len(password) < 8 {
		return nil, apperrors.NewValidationError("password must be at least 8 characters", nil)
	}
	if role == "" {
		role = domain.StaffRoleCareWorker
	}

	if existing, err := s.staff.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, apperrors.NewConflict("email already registered", nil)
	} else if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(password, s.cfg.BcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	staff := &domain.StaffMember{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Active:       true,
	}
	if err := s.staff.Create(ctx, staff); err != nil {
		return nil, apperrors.MapError(err)
	}
	return staff, nil
}

// LoginStaff verifies credentials and issues a JWT.
func (s *AuthService) LoginStaff(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	staff, err := s.staff.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, apperrors.MapError(err)
	}
	if !staff.Active {
		return nil, apperrors.NewUnauthorized("account deactivated")
	}
	if err := auth.ComparePassword(staff.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}

	token, expiresAt, err := s.tokens.GenerateToken(staff.ID, staff.Role)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &LoginResult{Token: token, ExpiresAt: expiresAt, Staff: staff}, nil
}

// ChangePassword replaces the caller's password after verifying the old one.
func (s *AuthService) ChangePassword(ctx context.Context, staffID, oldPassword, newPassword string) error {
	if len(newPassword) < 8 {
		return apperrors.NewValidationError("password must be at least 8 characters", nil)
	}
	staff, err := s.getStaff(ctx, staffID)
	if err != nil {
		return err
	}
	if err := auth.ComparePassword(staff.PasswordHash, oldPassword); err != nil {
		return apperrors.NewUnauthorized("invalid credentials")
	}
	hash, err := auth.HashPassword(newPassword, s.cfg.BcryptCost)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	staff.PasswordHash = hash
	if err := s.staff.Update(ctx, staff); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// RequestPasswordReset issues a reset token for the account, if it exists.
// The result is identical either way so the endpoint does not leak which
// emails are registered.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	staff, err := s.staff.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return apperrors.MapError(err)
	}

	ttl := time.Duration(s.cfg.PasswordResetTTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	token := &repository.PasswordResetToken{
		StaffID:   staff.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(ttl),
	}
	if err := s.resets.Create(ctx, token); err != nil {
		return apperrors.MapError(err)
	}

	// Delivery is handled by the notification layer; log for dev setups.
	s.logger.Info("password reset token issued", zap.String("staff_id", staff.ID))
	return nil
}

// ConfirmPasswordReset consumes a reset token and sets a new password.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < 8 {
		return apperrors.NewValidationError("password must be at least 8 characters", nil)
	}
	stored, err := s.resets.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewUnauthorized("invalid or expired reset token")
		}
		return apperrors.MapError(err)
	}
	if stored.UsedAt != nil || time.Now().After(stored.ExpiresAt) {
		return apperrors.NewUnauthorized("invalid or expired reset token")
	}

	staff, err := s.getStaff(ctx, stored.StaffID)
	if err != nil {
		return err
	}
	hash, err := auth.HashPassword(newPassword, s.cfg.BcryptCost)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	staff.PasswordHash = hash
	if err := s.staff.Update(ctx, staff); err != nil {
		return apperrors.MapError(err)
	}
	if err := s.resets.MarkUsed(ctx, stored.ID); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// SetStaffActive toggles whether an account can log in.
func (s *AuthService) SetStaffActive(ctx context.Context, staffID string, active bool) (*domain.StaffMember, error) {
	staff, err := s.getStaff(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if staff.Active == active {
		return nil, apperrors.NewConflict("account already in requested state", nil)
	}
	staff.Active = active
	if err := s.staff.Update(ctx, staff); err != nil {
		return nil, apperrors.MapError(err)
	}
	return staff, nil
}

// GetStaff fetches one account.
func (s *AuthService) GetStaff(ctx context.Context, staffID string) (*domain.StaffMember, error) {
	return s.getStaff(ctx, staffID)
}

// ListStaff returns accounts matching the filter.
func (s *AuthService) ListStaff(ctx context.Context, filter repository.StaffFilter) ([]domain.StaffMember, error) {
	staff, err := s.staff.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return staff, nil
}

func (s *AuthService) getStaff(ctx context.Context, staffID string) (*domain.StaffMember, error) {
	staff, err := s.staff.GetByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("staff member", map[string]any{"staff_id": staffID})
		}
		return nil, apperrors.MapError(err)
	}
	return staff, nil
}
