package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ADT-VOLUNTEERS-CASE/SERVER/domain"
)

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	userRepo    domain.UserRepository
	refreshSvc  domain.RefreshTokenService
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	locker      domain.Locker
	audit       domain.AuditLogger
	log         *slog.Logger
}

// NewAuthService creates a new auth service. A nil locker disables
// cross-process serialization of refreshes.
func NewAuthService(
	userRepo domain.UserRepository,
	refreshSvc domain.RefreshTokenService,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	locker domain.Locker,
	audit domain.AuditLogger,
	log *slog.Logger,
) *AuthServiceImpl {
	if log == nil {
		log = slog.Default()
	}
	return &AuthServiceImpl{
		userRepo:    userRepo,
		refreshSvc:  refreshSvc,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		locker:      locker,
		audit:       audit,
		log:         log,
	}
}

// Register implements domain.AuthService
func (s *AuthServiceImpl) Register(ctx context.Context, input domain.RegisterInput) (*domain.AuthResult, error) {
	return s.register(ctx, input, false, false)
}

// RegisterCoordinator implements domain.AuthService
func (s *AuthServiceImpl) RegisterCoordinator(ctx context.Context, input domain.RegisterInput) (*domain.AuthResult, error) {
	return s.register(ctx, input, false, true)
}

// RegisterAdmin implements domain.AuthService
func (s *AuthServiceImpl) RegisterAdmin(ctx context.Context, input domain.RegisterInput) (*domain.AuthResult, error) {
	return s.register(ctx, input, true, false)
}

func (s *AuthServiceImpl) register(ctx context.Context, input domain.RegisterInput, isAdmin, isCoordinator bool) (*domain.AuthResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	// Email is checked before phone; the first violation wins
	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, domain.ErrUserAlreadyExists
	}
	exists, err = s.userRepo.ExistsByPhone(ctx, input.PhoneNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to check phone: %w", err)
	}
	if exists {
		return nil, domain.ErrUserAlreadyExists
	}

	hashedPassword, err := s.passwordSvc.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Firstname:     input.Firstname,
		Lastname:      input.Lastname,
		Patronymic:    input.Patronymic,
		PhoneNumber:   input.PhoneNumber,
		Email:         input.Email,
		IsAdmin:       isAdmin,
		IsCoordinator: isCoordinator,
	}
	credential := &domain.Credential{PasswordHash: hashedPassword}

	// The unique indexes catch registrations racing past the checks above
	if err := s.userRepo.Create(ctx, user, credential); err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			return nil, domain.ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	result, err := s.issuePair(ctx, user)
	if err != nil {
		return nil, err
	}

	s.record(s.audit.LogUserRegistration(ctx, user.ID, user.Email, user.Roles()))
	s.log.InfoContext(ctx, "user registered", "user_id", user.ID, "admin", isAdmin, "coordinator", isCoordinator)
	return result, nil
}

// Authenticate implements domain.AuthService
func (s *AuthServiceImpl) Authenticate(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	if err := domain.ValidateCredentials(email, password); err != nil {
		return nil, err
	}

	user, credential, err := s.userRepo.FindByEmailWithCredential(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.record(s.audit.LogUserLogin(ctx, 0, email, false, err.Error()))
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	// A failed password check leaves the user's refresh tokens untouched
	if !s.passwordSvc.Verify(credential.PasswordHash, password) {
		s.record(s.audit.LogUserLogin(ctx, user.ID, email, false, domain.ErrInvalidPassword.Error()))
		return nil, domain.ErrInvalidPassword
	}

	// Login always replaces the current refresh token, expired or not
	result, err := s.issuePair(ctx, user)
	if err != nil {
		return nil, err
	}

	s.record(s.audit.LogUserLogin(ctx, user.ID, email, true, ""))
	return result, nil
}

// Refresh implements domain.AuthService
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	if err := domain.ValidateRefreshToken(refreshToken); err != nil {
		return nil, err
	}

	if s.locker != nil {
		release, err := s.locker.Obtain(ctx, refreshToken)
		if err != nil {
			if errors.Is(err, domain.ErrLockNotAcquired) {
				s.record(s.audit.LogTokenRefresh(ctx, 0, false, domain.ErrConcurrentRefresh.Error()))
				return nil, domain.ErrConcurrentRefresh
			}
			return nil, fmt.Errorf("failed to lock refresh token: %w", err)
		}
		defer func() {
			if err := release(context.WithoutCancel(ctx)); err != nil {
				s.log.WarnContext(ctx, "failed to release refresh lock", "error", err)
			}
		}()
	}

	stored, err := s.refreshSvc.FindByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, domain.ErrRefreshTokenNotFound) {
			s.record(s.audit.LogTokenRefresh(ctx, 0, false, err.Error()))
			return nil, domain.ErrRefreshTokenNotFound
		}
		return nil, fmt.Errorf("failed to load refresh token: %w", err)
	}

	user, err := s.userRepo.FindByID(ctx, stored.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrRefreshTokenNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	accessToken, err := s.issueAccessToken(user)
	if err != nil {
		return nil, err
	}

	rotated, err := s.refreshSvc.Rotate(ctx, stored)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRefreshTokenExpired):
			s.record(s.audit.LogTokenRefresh(ctx, user.ID, false, err.Error()))
			return nil, domain.ErrRefreshTokenExpired
		case errors.Is(err, domain.ErrRefreshTokenNotFound):
			s.record(s.audit.LogTokenRefresh(ctx, user.ID, false, err.Error()))
			return nil, domain.ErrRefreshTokenNotFound
		}
		return nil, err
	}

	s.record(s.audit.LogTokenRefresh(ctx, user.ID, true, ""))
	return &domain.AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: rotated.Token,
		ExpiresIn:    int64(s.tokenSvc.AccessTTL().Seconds()),
	}, nil
}

// Logout implements domain.AuthService
func (s *AuthServiceImpl) Logout(ctx context.Context, userID uint) error {
	if err := s.refreshSvc.DeleteAllByUser(ctx, userID); err != nil {
		return err
	}
	s.record(s.audit.LogUserLogout(ctx, userID))
	return nil
}

// GetUserProfile implements domain.AuthService
func (s *AuthServiceImpl) GetUserProfile(ctx context.Context, userID uint) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

// UpdateCoordinator implements domain.AuthService
func (s *AuthServiceImpl) UpdateCoordinator(ctx context.Context, userID uint, input domain.UpdateCoordinatorInput) (*domain.User, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.updateCoordinator(ctx, user, input)
}

// UpdateCoordinatorByEmail implements domain.AuthService
func (s *AuthServiceImpl) UpdateCoordinatorByEmail(ctx context.Context, email string, input domain.UpdateCoordinatorInput) (*domain.User, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return s.updateCoordinator(ctx, user, input)
}

// updateCoordinator applies a partial profile. A new email or phone must not
// belong to another account; keeping the current value is not a conflict.
func (s *AuthServiceImpl) updateCoordinator(ctx context.Context, user *domain.User, input domain.UpdateCoordinatorInput) (*domain.User, error) {
	if !user.IsCoordinator {
		return nil, domain.ErrUserNotCoordinator
	}

	if input.Email != nil && *input.Email != user.Email {
		exists, err := s.userRepo.ExistsByEmail(ctx, *input.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if exists {
			return nil, domain.ErrUserAlreadyExists
		}
	}
	if input.PhoneNumber != nil && *input.PhoneNumber != user.PhoneNumber {
		exists, err := s.userRepo.ExistsByPhone(ctx, *input.PhoneNumber)
		if err != nil {
			return nil, fmt.Errorf("failed to check phone: %w", err)
		}
		if exists {
			return nil, domain.ErrUserAlreadyExists
		}
	}

	changed := input.Apply(user)
	if len(changed) == 0 {
		return user, nil
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) || errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.record(s.audit.LogUserUpdated(ctx, user.ID, changed))
	s.log.InfoContext(ctx, "coordinator updated", "user_id", user.ID, "fields", changed)
	return user, nil
}

// DeleteCoordinator implements domain.AuthService. Only accounts flagged as
// coordinator can be removed this way.
func (s *AuthServiceImpl) DeleteCoordinator(ctx context.Context, userID uint) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	return s.deleteCoordinator(ctx, user)
}

// DeleteCoordinatorByEmail implements domain.AuthService
func (s *AuthServiceImpl) DeleteCoordinatorByEmail(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	return s.deleteCoordinator(ctx, user)
}

func (s *AuthServiceImpl) deleteCoordinator(ctx context.Context, user *domain.User) error {
	if !user.IsCoordinator {
		return domain.ErrUserNotCoordinator
	}
	if err := s.userRepo.Delete(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	s.record(s.audit.LogUserDeleted(ctx, user.ID))
	return nil
}

func (s *AuthServiceImpl) issueAccessToken(user *domain.User) (string, error) {
	roles := user.Roles()
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}

	token, err := s.tokenSvc.Issue(user.Email, map[string]interface{}{
		"uid":   user.ID,
		"roles": names,
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}
	return token, nil
}

func (s *AuthServiceImpl) issuePair(ctx context.Context, user *domain.User) (*domain.AuthResult, error) {
	accessToken, err := s.issueAccessToken(user)
	if err != nil {
		return nil, err
	}

	refresh, err := s.refreshSvc.Create(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &domain.AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refresh.Token,
		ExpiresIn:    int64(s.tokenSvc.AccessTTL().Seconds()),
	}, nil
}

func (s *AuthServiceImpl) record(err error) {
	if err != nil {
		s.log.Warn("failed to write audit event", "error", err)
	}
}
