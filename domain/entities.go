package domain

import "time"

// Role is an authority granted to a user
type Role string

const (
	RoleUser        Role = "ROLE_USER"
	RoleCoordinator Role = "ROLE_COORDINATOR"
	RoleAdmin       Role = "ROLE_ADMIN"
)

// User represents a volunteer back-office account
type User struct {
	ID            uint
	Firstname     string
	Lastname      string
	Patronymic    string
	PhoneNumber   string
	Email         string
	IsAdmin       bool
	IsCoordinator bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Roles returns the authorities of the user. Every user holds ROLE_USER;
// the admin and coordinator flags are independent and may be combined.
func (u *User) Roles() []Role {
	roles := []Role{RoleUser}
	if u.IsAdmin {
		roles = append(roles, RoleAdmin)
	}
	if u.IsCoordinator {
		roles = append(roles, RoleCoordinator)
	}
	return roles
}

// HasRole reports whether the user holds the given authority
func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles() {
		if r == role {
			return true
		}
	}
	return false
}

// Credential holds the password hash of a user. It lives and dies with its user.
type Credential struct {
	UserID       uint
	PasswordHash string
}

// RefreshToken is the persisted, single-active-per-user session credential
type RefreshToken struct {
	ID        uint
	Token     string
	UserID    uint
	CreatedAt time.Time
	ExpiryAt  time.Time
}

// IsExpired reports whether the token expiry lies before now
func (t *RefreshToken) IsExpired(now time.Time) bool {
	return t.ExpiryAt.Before(now)
}

// RegisterInput carries the profile supplied at registration
type RegisterInput struct {
	Firstname   string
	Lastname    string
	Patronymic  string
	PhoneNumber string
	Email       string
	Password    string
}

// UpdateCoordinatorInput carries a partial coordinator profile. Nil fields
// are left unchanged.
type UpdateCoordinatorInput struct {
	Firstname   *string
	Lastname    *string
	Patronymic  *string
	PhoneNumber *string
	Email       *string
}

// Apply copies the set fields onto user and returns the names of the
// fields whose value changed.
func (in *UpdateCoordinatorInput) Apply(user *User) []string {
	var changed []string
	set := func(name string, dst *string, src *string) {
		if src != nil && *dst != *src {
			*dst = *src
			changed = append(changed, name)
		}
	}
	set("firstname", &user.Firstname, in.Firstname)
	set("lastname", &user.Lastname, in.Lastname)
	set("patronymic", &user.Patronymic, in.Patronymic)
	set("phoneNumber", &user.PhoneNumber, in.PhoneNumber)
	set("email", &user.Email, in.Email)
	return changed
}

// AuthResult represents authentication outcome
type AuthResult struct {
	User         *User
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// TokenClaims represents the verified content of an access token
type TokenClaims struct {
	Subject   string
	UserID    uint
	Roles     []string
	IssuedAt  int64
	ExpiresAt int64
	Extra     map[string]interface{}
}
