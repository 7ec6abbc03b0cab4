package services

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

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newRefreshServiceForTest(t *testing.T, ttl time.Duration) (*RefreshTokenServiceImpl, *mocks.MockRefreshTokenRepository, *time.Time) {
	t.Helper()

	now := fixedNow
	repo := mocks.NewMockRefreshTokenRepository()
	svc := NewRefreshTokenService(repo, ttl).WithClock(func() time.Time { return now })
	return svc, repo, &now
}

func TestRefreshTokenService_Create(t *testing.T) {
	svc, repo, _ := newRefreshServiceForTest(t, time.Hour)
	ctx := createTestContext(t)

	first, err := svc.Create(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, first.Token, 36)
	assert.Equal(t, fixedNow.Add(time.Hour), first.ExpiryAt)

	second, err := svc.Create(ctx, 1)
	require.NoError(t, err)
	assert.NotEqual(t, first.Token, second.Token)

	stored := repo.ForUser(1)
	require.Len(t, stored, 1, "a user holds a single refresh token")
	assert.Equal(t, second.Token, stored[0].Token)

	_, err = svc.FindByToken(ctx, first.Token)
	assert.ErrorIs(t, err, domain.ErrRefreshTokenNotFound)
}

func TestRefreshTokenService_CreateLeavesOtherUsersAlone(t *testing.T) {
	svc, repo, _ := newRefreshServiceForTest(t, time.Hour)
	ctx := createTestContext(t)

	_, err := svc.Create(ctx, 1)
	require.NoError(t, err)
	_, err = svc.Create(ctx, 2)
	require.NoError(t, err)

	assert.Len(t, repo.ForUser(1), 1)
	assert.Len(t, repo.ForUser(2), 1)
}

func TestRefreshTokenService_CreateReplacesExpiredToken(t *testing.T) {
	svc, repo, _ := newRefreshServiceForTest(t, time.Hour)
	repo.Put(domain.RefreshToken{Token: "stale", UserID: 1, ExpiryAt: fixedNow.Add(-time.Minute)})

	token, err := svc.Create(createTestContext(t), 1)
	require.NoError(t, err)

	stored := repo.ForUser(1)
	require.Len(t, stored, 1)
	assert.Equal(t, token.Token, stored[0].Token)
}

func TestRefreshTokenService_CreateRollsBack(t *testing.T) {
	svc, repo, _ := newRefreshServiceForTest(t, time.Hour)
	repo.Put(domain.RefreshToken{Token: "current", UserID: 1, ExpiryAt: fixedNow.Add(time.Hour)})
	repo.CreateFunc = func(ctx context.Context, token *domain.RefreshToken) error {
		return errors.New("insert failed")
	}

	_, err := svc.Create(createTestContext(t), 1)
	require.Error(t, err)

	stored := repo.ForUser(1)
	require.Len(t, stored, 1, "the previous token survives a failed replacement")
	assert.Equal(t, "current", stored[0].Token)
}

func TestRefreshTokenService_VerifyExpiration(t *testing.T) {
	tests := []struct {
		name          string
		expiry        time.Duration
		expectedError error
		expectStored  bool
	}{
		{"valid token", time.Minute, nil, true},
		{"expiry equal to now is still valid", 0, nil, true},
		{"expired token is deleted", -time.Minute, domain.ErrRefreshTokenExpired, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newRefreshServiceForTest(t, time.Hour)
			repo.Put(domain.RefreshToken{ID: 4, Token: "value", UserID: 1, ExpiryAt: fixedNow.Add(tt.expiry)})
			stored, err := repo.FindByToken(context.Background(), "value")
			require.NoError(t, err)

			got, err := svc.VerifyExpiration(createTestContext(t), stored)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, stored, got)
			}
			assert.Equal(t, tt.expectStored, len(repo.ForUser(1)) == 1)
		})
	}
}

func TestRefreshTokenService_Rotate(t *testing.T) {
	svc, repo, now := newRefreshServiceForTest(t, time.Hour)
	ctx := createTestContext(t)

	original, err := svc.Create(ctx, 1)
	require.NoError(t, err)

	*now = now.Add(30 * time.Minute)
	rotated, err := svc.Rotate(ctx, original)
	require.NoError(t, err)

	assert.NotEqual(t, original.Token, rotated.Token)
	assert.Equal(t, original.UserID, rotated.UserID)
	assert.Equal(t, now.Add(time.Hour), rotated.ExpiryAt, "rotation starts a fresh lifetime")

	stored := repo.ForUser(1)
	require.Len(t, stored, 1)
	assert.Equal(t, rotated.Token, stored[0].Token)

	_, err = svc.FindByToken(ctx, original.Token)
	assert.ErrorIs(t, err, domain.ErrRefreshTokenNotFound)
}

func TestRefreshTokenService_RotateTwice(t *testing.T) {
	svc, repo, _ := newRefreshServiceForTest(t, time.Hour)
	ctx := createTestContext(t)

	original, err := svc.Create(ctx, 1)
	require.NoError(t, err)
	rotated, err := svc.Rotate(ctx, original)
	require.NoError(t, err)

	_, err = svc.Rotate(ctx, original)
	assert.ErrorIs(t, err, domain.ErrRefreshTokenNotFound)

	stored := repo.ForUser(1)
	require.Len(t, stored, 1, "the failed rotation rolled back")
	assert.Equal(t, rotated.Token, stored[0].Token)
}

func TestRefreshTokenService_RotateExpired(t *testing.T) {
	svc, repo, now := newRefreshServiceForTest(t, time.Hour)
	ctx := createTestContext(t)

	original, err := svc.Create(ctx, 1)
	require.NoError(t, err)

	*now = now.Add(2 * time.Hour)
	_, err = svc.Rotate(ctx, original)
	assert.ErrorIs(t, err, domain.ErrRefreshTokenExpired)
	assert.Empty(t, repo.ForUser(1), "the expired token is gone and no successor was minted")

	_, err = svc.FindByToken(ctx, original.Token)
	assert.ErrorIs(t, err, domain.ErrRefreshTokenNotFound)
}

func TestRefreshTokenService_DeleteAllByUser(t *testing.T) {
	svc, repo, _ := newRefreshServiceForTest(t, time.Hour)
	ctx := createTestContext(t)

	_, err := svc.Create(ctx, 1)
	require.NoError(t, err)
	require.NoError(t, svc.DeleteAllByUser(ctx, 1))
	assert.Empty(t, repo.ForUser(1))

	// Revoking a user without tokens is not an error
	require.NoError(t, svc.DeleteAllByUser(ctx, 42))

	repo.DeleteAllByUserFunc = func(ctx context.Context, userID uint) error { return errors.New("db down") }
	assert.Error(t, svc.DeleteAllByUser(ctx, 1))
}
