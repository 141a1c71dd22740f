package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/carenotes/internal/auth"
	"github.com/spec-kit/carenotes/internal/config"
	"github.com/spec-kit/carenotes/internal/domain"
)

func newAuthFixture(t *testing.T) (*AuthService, *fakeStaffRepo, *fakeResetRepo) {
	t.Helper()
	staff := newFakeStaffRepo()
	resets := newFakeResetRepo()
	svc := NewAuthService(AuthDependencies{
		StaffRepo: staff,
		ResetRepo: resets,
		Tokens:    auth.NewTokenManager("test-secret", 60),
		Config:    config.AuthConfig{BcryptCost: 4},
		Logger:    zap.NewNop(),
	})
	return svc, staff, resets
}

func TestRegisterStaffNormalizesAndHashes(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	staff, err := svc.RegisterStaff(ctx, " Jo Hill ", " Jo.Hill@Example.COM ", "sufficiently-long", "")
	require.NoError(t, err)

	assert.Equal(t, "Jo Hill", staff.Name)
	assert.Equal(t, "jo.hill@example.com", staff.Email)
	assert.Equal(t, domain.StaffRoleCareWorker, staff.Role)
	assert.True(t, staff.Active)
	assert.NotEqual(t, "sufficiently-long", staff.PasswordHash)

	_, err = svc.RegisterStaff(ctx, "Jo Again", "jo.hill@example.com", "sufficiently-long", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")

	_, err = svc.RegisterStaff(ctx, "Short", "short@example.com", "tiny", "")
	require.Error(t, err)
}

func TestLoginStaff(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	staff, err := svc.RegisterStaff(ctx, "Jo Hill", "jo@example.com", "sufficiently-long", domain.StaffRoleManager)
	require.NoError(t, err)

	result, err := svc.LoginStaff(ctx, "JO@example.com", "sufficiently-long")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, staff.ID, result.Staff.ID)

	claims, err := auth.NewTokenManager("test-secret", 60).ParseToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, staff.ID, claims.StaffID)
	assert.Equal(t, domain.StaffRoleManager, claims.Role)

	_, err = svc.LoginStaff(ctx, "jo@example.com", "wrong-password")
	require.Error(t, err)
	_, err = svc.LoginStaff(ctx, "nobody@example.com", "sufficiently-long")
	require.Error(t, err)
}

func TestLoginStaffDeactivatedAccount(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	staff, err := svc.RegisterStaff(ctx, "Jo Hill", "jo@example.com", "sufficiently-long", "")
	require.NoError(t, err)

	_, err = svc.SetStaffActive(ctx, staff.ID, false)
	require.NoError(t, err)

	_, err = svc.LoginStaff(ctx, "jo@example.com", "sufficiently-long")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deactivated")

	// Same-state toggle conflicts.
	_, err = svc.SetStaffActive(ctx, staff.ID, false)
	require.Error(t, err)
}

func TestChangePassword(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	staff, err := svc.RegisterStaff(ctx, "Jo Hill", "jo@example.com", "original-pass", "")
	require.NoError(t, err)

	require.Error(t, svc.ChangePassword(ctx, staff.ID, "wrong-old", "replacement-pass"))
	require.Error(t, svc.ChangePassword(ctx, staff.ID, "original-pass", "tiny"))
	require.NoError(t, svc.ChangePassword(ctx, staff.ID, "original-pass", "replacement-pass"))

	_, err = svc.LoginStaff(ctx, "jo@example.com", "original-pass")
	require.Error(t, err)
	_, err = svc.LoginStaff(ctx, "jo@example.com", "replacement-pass")
	require.NoError(t, err)
}

func TestPasswordResetFlow(t *testing.T) {
	svc, _, resets := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.RegisterStaff(ctx, "Jo Hill", "jo@example.com", "original-pass", "")
	require.NoError(t, err)

	// Unknown emails succeed silently.
	require.NoError(t, svc.RequestPasswordReset(ctx, "nobody@example.com"))
	assert.Empty(t, resets.tokens)

	require.NoError(t, svc.RequestPasswordReset(ctx, "jo@example.com"))
	require.Len(t, resets.tokens, 1)

	var token string
	for _, stored := range resets.tokens {
		token = stored.Token
	}

	require.Error(t, svc.ConfirmPasswordReset(ctx, "bogus-token", "replacement-pass"))
	require.NoError(t, svc.ConfirmPasswordReset(ctx, token, "replacement-pass"))

	// Tokens are single use.
	require.Error(t, svc.ConfirmPasswordReset(ctx, token, "another-pass"))

	_, err = svc.LoginStaff(ctx, "jo@example.com", "replacement-pass")
	require.NoError(t, err)
}
