package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/ADT-VOLUNTEERS-CASE/SERVER/domain"
	"gorm.io/gorm"
)

// DBRefreshToken represents the database model for RefreshToken
type DBRefreshToken struct {
	ID        uint      `gorm:"primaryKey"`
	Token     string    `gorm:"uniqueIndex;size:36;not null"`
	UserID    uint      `gorm:"index;not null"`
	CreatedAt time.Time `gorm:"not null"`
	ExpiryAt  time.Time `gorm:"index;not null"`
}

// TableName returns the table name for GORM
func (DBRefreshToken) TableName() string {
	return "refresh_tokens"
}

// RefreshTokenRepositoryImpl implements domain.RefreshTokenRepository using GORM
type RefreshTokenRepositoryImpl struct {
	db *gorm.DB
}

// NewRefreshTokenRepository creates a new refresh token repository
func NewRefreshTokenRepository(db *gorm.DB) *RefreshTokenRepositoryImpl {
	return &RefreshTokenRepositoryImpl{db: db}
}

// Create implements domain.RefreshTokenRepository
func (r *RefreshTokenRepositoryImpl) Create(ctx context.Context, token *domain.RefreshToken) error {
	dbToken := &DBRefreshToken{
		Token:     token.Token,
		UserID:    token.UserID,
		CreatedAt: token.CreatedAt,
		ExpiryAt:  token.ExpiryAt,
	}
	if err := r.db.WithContext(ctx).Create(dbToken).Error; err != nil {
		return err
	}
	token.ID = dbToken.ID
	return nil
}

// FindByToken implements domain.RefreshTokenRepository
func (r *RefreshTokenRepositoryImpl) FindByToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	var dbToken DBRefreshToken
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&dbToken).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRefreshTokenNotFound
		}
		return nil, err
	}
	return &domain.RefreshToken{
		ID:        dbToken.ID,
		Token:     dbToken.Token,
		UserID:    dbToken.UserID,
		CreatedAt: dbToken.CreatedAt,
		ExpiryAt:  dbToken.ExpiryAt,
	}, nil
}

// Delete implements domain.RefreshTokenRepository. A token that is already
// gone yields ErrRefreshTokenNotFound so a consumed token cannot be rotated twice.
func (r *RefreshTokenRepositoryImpl) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&DBRefreshToken{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrRefreshTokenNotFound
	}
	return nil
}

// DeleteAllByUser implements domain.RefreshTokenRepository
func (r *RefreshTokenRepositoryImpl) DeleteAllByUser(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&DBRefreshToken{}).Error
}

// WithTx implements domain.RefreshTokenRepository
func (r *RefreshTokenRepositoryImpl) WithTx(ctx context.Context, fn func(repo domain.RefreshTokenRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&RefreshTokenRepositoryImpl{db: tx})
	})
}
