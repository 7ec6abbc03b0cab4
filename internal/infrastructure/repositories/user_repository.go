package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ADT-VOLUNTEERS-CASE/SERVER/domain"
	"gorm.io/gorm"
)

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser represents the database model for User (with GORM tags)
type DBUser struct {
	ID            uint   `gorm:"primaryKey"`
	Firstname     string `gorm:"size:100;not null"`
	Lastname      string `gorm:"size:100;not null"`
	Patronymic    string `gorm:"size:100"`
	PhoneNumber   string `gorm:"uniqueIndex;size:32;not null"`
	Email         string `gorm:"uniqueIndex;size:255;not null"`
	IsAdmin       bool   `gorm:"not null;default:false"`
	IsCoordinator bool   `gorm:"not null;default:false"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Credential    *DBCredential    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	RefreshTokens []DBRefreshToken `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (DBUser) TableName() string {
	return "users"
}

// DBCredential stores the password hash of a user
type DBCredential struct {
	ID           uint   `gorm:"primaryKey"`
	UserID       uint   `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"column:password;size:255;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for GORM
func (DBCredential) TableName() string {
	return "user_credentials"
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepositoryImpl {
	return &UserRepositoryImpl{db: db}
}

// Create implements domain.UserRepository
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User, credential *domain.Credential) error {
	dbUser := r.domainToDB(user)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Credential", "RefreshTokens").Create(dbUser).Error; err != nil {
			return err
		}
		dbCred := &DBCredential{UserID: dbUser.ID, PasswordHash: credential.PasswordHash}
		return tx.Create(dbCred).Error
	})
	if err != nil {
		if isDuplicateKey(err) {
			return domain.ErrUserAlreadyExists
		}
		return err
	}

	user.ID = dbUser.ID
	user.CreatedAt = dbUser.CreatedAt
	user.UpdatedAt = dbUser.UpdatedAt
	credential.UserID = dbUser.ID
	return nil
}

// ExistsByEmail implements domain.UserRepository
func (r *UserRepositoryImpl) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "email = ?", email)
}

// ExistsByPhone implements domain.UserRepository
func (r *UserRepositoryImpl) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	return r.exists(ctx, "phone_number = ?", phone)
}

func (r *UserRepositoryImpl) exists(ctx context.Context, query string, arg string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&DBUser{}).Where(query, arg).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindByEmail implements domain.UserRepository
func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// FindByEmailWithCredential implements domain.UserRepository
func (r *UserRepositoryImpl) FindByEmailWithCredential(ctx context.Context, email string) (*domain.User, *domain.Credential, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Preload("Credential").Where("email = ?", email).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, domain.ErrUserNotFound
		}
		return nil, nil, err
	}
	if dbUser.Credential == nil {
		return nil, nil, domain.ErrUserNotFound
	}

	credential := &domain.Credential{
		UserID:       dbUser.ID,
		PasswordHash: dbUser.Credential.PasswordHash,
	}
	return r.dbToDomain(&dbUser), credential, nil
}

// FindByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// Update implements domain.UserRepository. Only the profile columns are
// written; the role flags and credential stay as they are.
func (r *UserRepositoryImpl) Update(ctx context.Context, user *domain.User) error {
	if user.ID == 0 {
		return domain.ErrUserNotFound
	}
	dbUser := r.domainToDB(user)
	dbUser.UpdatedAt = time.Now()
	res := r.db.WithContext(ctx).Model(dbUser).
		Select("Firstname", "Lastname", "Patronymic", "PhoneNumber", "Email", "UpdatedAt").
		Updates(dbUser)
	if res.Error != nil {
		if isDuplicateKey(res.Error) {
			return domain.ErrUserAlreadyExists
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	user.UpdatedAt = dbUser.UpdatedAt
	return nil
}

// Delete implements domain.UserRepository. Dependent rows are removed
// explicitly so the result does not rely on the driver enforcing cascades.
func (r *UserRepositoryImpl) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&DBRefreshToken{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&DBCredential{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&DBUser{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrUserNotFound
		}
		return nil
	})
}

// domainToDB converts domain user to database user
func (r *UserRepositoryImpl) domainToDB(user *domain.User) *DBUser {
	return &DBUser{
		ID:            user.ID,
		Firstname:     user.Firstname,
		Lastname:      user.Lastname,
		Patronymic:    user.Patronymic,
		PhoneNumber:   user.PhoneNumber,
		Email:         user.Email,
		IsAdmin:       user.IsAdmin,
		IsCoordinator: user.IsCoordinator,
	}
}

// dbToDomain converts database user to domain user
func (r *UserRepositoryImpl) dbToDomain(dbUser *DBUser) *domain.User {
	return &domain.User{
		ID:            dbUser.ID,
		Firstname:     dbUser.Firstname,
		Lastname:      dbUser.Lastname,
		Patronymic:    dbUser.Patronymic,
		PhoneNumber:   dbUser.PhoneNumber,
		Email:         dbUser.Email,
		IsAdmin:       dbUser.IsAdmin,
		IsCoordinator: dbUser.IsCoordinator,
		CreatedAt:     dbUser.CreatedAt,
		UpdatedAt:     dbUser.UpdatedAt,
	}
}

// isDuplicateKey recognizes unique violations. gorm.ErrDuplicatedKey is only
// produced when the dialector translates errors, so fall back to the message.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
