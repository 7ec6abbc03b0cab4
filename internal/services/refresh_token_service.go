package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ADT-VOLUNTEERS-CASE/SERVER/domain"
	"github.com/google/uuid"
)

// RefreshTokenServiceImpl implements domain.RefreshTokenService. A user holds
// at most one refresh token: every Create and Rotate replaces the previous one
// inside a single transaction.
type RefreshTokenServiceImpl struct {
	repo     domain.RefreshTokenRepository
	ttl      time.Duration
	now      func() time.Time
	newValue func() string
}

// NewRefreshTokenService creates a new refresh token service
func NewRefreshTokenService(repo domain.RefreshTokenRepository, ttl time.Duration) *RefreshTokenServiceImpl {
	return &RefreshTokenServiceImpl{
		repo:     repo,
		ttl:      ttl,
		now:      time.Now,
		newValue: uuid.NewString,
	}
}

// WithClock replaces the time source
func (s *RefreshTokenServiceImpl) WithClock(now func() time.Time) *RefreshTokenServiceImpl {
	s.now = now
	return s
}

func (s *RefreshTokenServiceImpl) mint(userID uint) *domain.RefreshToken {
	now := s.now()
	return &domain.RefreshToken{
		Token:     s.newValue(),
		UserID:    userID,
		CreatedAt: now,
		ExpiryAt:  now.Add(s.ttl),
	}
}

// Create implements domain.RefreshTokenService
func (s *RefreshTokenServiceImpl) Create(ctx context.Context, userID uint) (*domain.RefreshToken, error) {
	token := s.mint(userID)
	err := s.repo.WithTx(ctx, func(tx domain.RefreshTokenRepository) error {
		if err := tx.DeleteAllByUser(ctx, userID); err != nil {
			return fmt.Errorf("failed to revoke previous tokens: %w", err)
		}
		return tx.Create(ctx, token)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create refresh token: %w", err)
	}
	return token, nil
}

// FindByToken implements domain.RefreshTokenService. Expiry is not checked here.
func (s *RefreshTokenServiceImpl) FindByToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	return s.repo.FindByToken(ctx, token)
}

// VerifyExpiration implements domain.RefreshTokenService. An expired token is
// deleted before ErrRefreshTokenExpired is returned.
func (s *RefreshTokenServiceImpl) VerifyExpiration(ctx context.Context, token *domain.RefreshToken) (*domain.RefreshToken, error) {
	if !token.IsExpired(s.now()) {
		return token, nil
	}
	if err := s.repo.Delete(ctx, token.ID); err != nil {
		if errors.Is(err, domain.ErrRefreshTokenNotFound) {
			return nil, domain.ErrRefreshTokenNotFound
		}
		return nil, fmt.Errorf("failed to delete expired refresh token: %w", err)
	}
	return nil, domain.ErrRefreshTokenExpired
}

// Rotate implements domain.RefreshTokenService. The old row must still exist
// when the transaction deletes it; otherwise another rotation consumed it first
// and ErrRefreshTokenNotFound is returned.
func (s *RefreshTokenServiceImpl) Rotate(ctx context.Context, old *domain.RefreshToken) (*domain.RefreshToken, error) {
	if _, err := s.VerifyExpiration(ctx, old); err != nil {
		return nil, err
	}

	token := s.mint(old.UserID)
	err := s.repo.WithTx(ctx, func(tx domain.RefreshTokenRepository) error {
		if err := tx.Delete(ctx, old.ID); err != nil {
			return err
		}
		if err := tx.DeleteAllByUser(ctx, old.UserID); err != nil {
			return fmt.Errorf("failed to revoke previous tokens: %w", err)
		}
		return tx.Create(ctx, token)
	})
	if err != nil {
		if errors.Is(err, domain.ErrRefreshTokenNotFound) {
			return nil, domain.ErrRefreshTokenNotFound
		}
		return nil, fmt.Errorf("failed to rotate refresh token: %w", err)
	}
	return token, nil
}

// DeleteAllByUser implements domain.RefreshTokenService
func (s *RefreshTokenServiceImpl) DeleteAllByUser(ctx context.Context, userID uint) error {
	if err := s.repo.DeleteAllByUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke refresh tokens: %w", err)
	}
	return nil
}
