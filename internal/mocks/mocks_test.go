package mocks_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ADT-VOLUNTEERS-CASE/SERVER/domain"
	"github.com/ADT-VOLUNTEERS-CASE/SERVER/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockRefreshTokenRepository_InMemory(t *testing.T) {
	repo := mocks.NewMockRefreshTokenRepository()
	ctx := context.Background()
	now := time.Now()

	first := &domain.RefreshToken{Token: "a", UserID: 1, CreatedAt: now, ExpiryAt: now.Add(time.Hour)}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, &domain.RefreshToken{Token: "b", UserID: 2, CreatedAt: now, ExpiryAt: now.Add(time.Hour)}))

	found, err := repo.FindByToken(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, first.ID, found.ID)

	require.NoError(t, repo.DeleteAllByUser(ctx, 1))
	_, err = repo.FindByToken(ctx, "a")
	assert.ErrorIs(t, err, domain.ErrRefreshTokenNotFound)
	assert.Len(t, repo.ForUser(2), 1)
}

func TestMockRefreshTokenRepository_WithTxRollback(t *testing.T) {
	repo := mocks.NewMockRefreshTokenRepository()
	ctx := context.Background()
	repo.Put(domain.RefreshToken{Token: "keep", UserID: 1, ExpiryAt: time.Now().Add(time.Hour)})

	err := repo.WithTx(ctx, func(tx domain.RefreshTokenRepository) error {
		if err := tx.DeleteAllByUser(ctx, 1); err != nil {
			return err
		}
		return errors.New("boom")
	})
	require.Error(t, err)
	assert.Len(t, repo.ForUser(1), 1)
}

func TestMockCasbinEnforcer_Defaults(t *testing.T) {
	e := mocks.NewMockCasbinEnforcer()

	ok, err := e.Enforce("ROLE_USER", "/api/v1/user/me", "GET")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = e.Enforce("ROLE_USER", "/api/v1/adminping", "GET")
	assert.False(t, ok)

	added, _ := e.AddPolicy("ROLE_USER", "/api/v1/adminping", "^GET$")
	assert.True(t, added)
	added, _ = e.AddPolicy("ROLE_USER", "/api/v1/adminping", "^GET$")
	assert.False(t, added, "duplicate policies are not added")

	ok, _ = e.Enforce("ROLE_USER", "/api/v1/adminping", "GET")
	assert.True(t, ok)

	removed, _ := e.RemovePolicy("ROLE_USER", "/api/v1/adminping", "^GET$")
	assert.True(t, removed)
}

func TestMockTokenService_RoundTrip(t *testing.T) {
	svc := mocks.NewMockTokenService()

	token, err := svc.Issue("user@example.com", nil)
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", claims.Subject)
	assert.True(t, svc.IsValidFor(token, "user@example.com"))
	assert.False(t, svc.IsValidFor(token, "other@example.com"))

	_, err = svc.Verify("garbage")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestMockAuditLogger_Records(t *testing.T) {
	audit := mocks.NewMockAuditLogger()
	ctx := context.Background()

	require.NoError(t, audit.LogUserLogin(ctx, 1, "user@example.com", true, ""))
	require.NoError(t, audit.LogUserLogin(ctx, 0, "user@example.com", false, "invalid password"))
	require.NoError(t, audit.LogAccessAttempt(ctx, 1, "/api/v1/adminping", "GET", false, "insufficient role"))

	assert.Equal(t, []domain.AuditEventType{
		domain.UserLoginEvent,
		domain.UserLoginFailureEvent,
		domain.AccessDeniedEvent,
	}, audit.Types())
	assert.False(t, audit.Events[1].Success)
}
