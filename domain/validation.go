package domain

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	maxNameLength         = 100
	maxEmailLength        = 255
	MaxRefreshTokenLength = 36
	// MaxPasswordBytes is the longest input bcrypt accepts
	MaxPasswordBytes = 72
)

var (
	phonePattern = regexp.MustCompile(`^\+[1-9]\d{1,14}$`)
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)
)

// Validate checks field presence, formats and length bounds of a registration profile
func (in *RegisterInput) Validate() error {
	if isBlank(in.Firstname) {
		return NewValidationError("firstname", "firstname is blank")
	}
	if utf8.RuneCountInString(in.Firstname) > maxNameLength {
		return NewValidationError("firstname", "first name max length is 100")
	}
	if isBlank(in.Lastname) {
		return NewValidationError("lastname", "lastname is blank")
	}
	if utf8.RuneCountInString(in.Lastname) > maxNameLength {
		return NewValidationError("lastname", "last name max length is 100")
	}
	if utf8.RuneCountInString(in.Patronymic) > maxNameLength {
		return NewValidationError("patronymic", "patronymic max length is 100")
	}
	if isBlank(in.PhoneNumber) {
		return NewValidationError("phoneNumber", "phone number is blank")
	}
	if !phonePattern.MatchString(in.PhoneNumber) {
		return NewValidationError("phoneNumber", "phone must be in E.164 format")
	}
	if err := ValidateEmail(in.Email); err != nil {
		return err
	}
	if isBlank(in.Password) {
		return NewValidationError("password", "password is blank")
	}
	if len(in.Password) > MaxPasswordBytes {
		return NewValidationError("password", "password max length is 72 bytes")
	}
	return nil
}

// Validate checks the fields present in a coordinator update. Names and
// patronymic must hold 1 to 100 characters when given.
func (in *UpdateCoordinatorInput) Validate() error {
	names := []struct {
		field string
		value *string
	}{
		{"firstname", in.Firstname},
		{"lastname", in.Lastname},
		{"patronymic", in.Patronymic},
	}
	for _, n := range names {
		if n.value == nil {
			continue
		}
		if isBlank(*n.value) {
			return NewValidationError(n.field, n.field+" is blank")
		}
		if utf8.RuneCountInString(*n.value) > maxNameLength {
			return NewValidationError(n.field, n.field+" max length is 100")
		}
	}
	if in.PhoneNumber != nil && !phonePattern.MatchString(*in.PhoneNumber) {
		return NewValidationError("phoneNumber", "phone must be in E.164 format")
	}
	if in.Email != nil {
		if err := ValidateEmail(*in.Email); err != nil {
			return err
		}
	}
	return nil
}

// ValidateEmail checks presence, length and shape of an email address
func ValidateEmail(email string) error {
	if isBlank(email) {
		return NewValidationError("email", "email is blank")
	}
	if len(email) > maxEmailLength {
		return NewValidationError("email", "email max length is 255")
	}
	if !emailPattern.MatchString(email) {
		return NewValidationError("email", "incorrect email format")
	}
	return nil
}

// ValidateCredentials checks an authentication request
func ValidateCredentials(email, password string) error {
	if err := ValidateEmail(email); err != nil {
		return err
	}
	if isBlank(password) {
		return NewValidationError("password", "password is blank")
	}
	return nil
}

// ValidateRefreshToken checks a presented refresh token value
func ValidateRefreshToken(token string) error {
	if isBlank(token) {
		return NewValidationError("refreshToken", "refresh token is blank")
	}
	if len(token) > MaxRefreshTokenLength {
		return NewValidationError("refreshToken", "refresh token length is 36")
	}
	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
