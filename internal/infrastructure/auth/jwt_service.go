package auth

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/ADT-VOLUNTEERS-CASE/SERVER/domain"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ClaimRoles  = "roles"
	ClaimUserID = "uid"

	minSecretBytes = 32
)

var registeredClaims = map[string]struct{}{
	"sub": {}, "iss": {}, "iat": {}, "exp": {}, "nbf": {}, "jti": {}, "aud": {},
}

// JWTServiceImpl implements domain.TokenService
type JWTServiceImpl struct {
	secretKey      []byte
	issuer         string
	accessTokenTTL time.Duration
	now            func() time.Time
}

// NewJWTService creates a new JWT service from a base64 encoded HMAC key
func NewJWTService(secretKey string, issuer string, accessTTL time.Duration) (*JWTServiceImpl, error) {
	key, err := base64.StdEncoding.DecodeString(secretKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode jwt secret: %w", err)
	}
	if len(key) < minSecretBytes {
		return nil, fmt.Errorf("jwt secret must be at least %d bytes", minSecretBytes)
	}
	if accessTTL <= 0 {
		return nil, errors.New("access token ttl must be positive")
	}

	return &JWTServiceImpl{
		secretKey:      key,
		issuer:         issuer,
		accessTokenTTL: accessTTL,
		now:            time.Now,
	}, nil
}

// WithClock replaces the time source used for issuing and verifying tokens
func (j *JWTServiceImpl) WithClock(now func() time.Time) *JWTServiceImpl {
	j.now = now
	return j
}

// AccessTTL implements domain.TokenService
func (j *JWTServiceImpl) AccessTTL() time.Duration {
	return j.accessTokenTTL
}

// generateJTI creates a unique JWT ID
func (j *JWTServiceImpl) generateJTI() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// Issue implements domain.TokenService
func (j *JWTServiceImpl) Issue(subject string, extra map[string]interface{}) (string, error) {
	if subject == "" {
		return "", errors.New("token subject is required")
	}

	jti, err := j.generateJTI()
	if err != nil {
		return "", fmt.Errorf("failed to generate token id: %w", err)
	}

	claims := jwt.MapClaims{}
	for k, v := range extra {
		if _, reserved := registeredClaims[k]; reserved {
			continue
		}
		claims[k] = v
	}

	now := j.now()
	claims["sub"] = subject
	claims["iat"] = now.Unix()
	claims["exp"] = now.Add(j.accessTokenTTL).Unix()
	claims["jti"] = jti
	if j.issuer != "" {
		claims["iss"] = j.issuer
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secretKey)
}

// Verify implements domain.TokenService
func (j *JWTServiceImpl) Verify(tokenString string) (*domain.TokenClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(j.now),
		jwt.WithExpirationRequired(),
	}
	if j.issuer != "" {
		opts = append(opts, jwt.WithIssuer(j.issuer))
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrTokenMalformed
		}
		return j.secretKey, nil
	}, opts...)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, domain.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, domain.ErrTokenMalformed
		default:
			return nil, domain.ErrTokenInvalid
		}
	}

	if !token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	subject, ok := claims["sub"].(string)
	if !ok || subject == "" {
		return nil, domain.ErrTokenMalformed
	}

	iat, ok := claims["iat"].(float64)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	tokenClaims := &domain.TokenClaims{
		Subject:   subject,
		IssuedAt:  int64(iat),
		ExpiresAt: int64(exp),
		Extra:     make(map[string]interface{}),
	}

	if uid, ok := claims[ClaimUserID].(float64); ok {
		tokenClaims.UserID = uint(uid)
	}
	if roles, ok := claims[ClaimRoles].([]interface{}); ok {
		for _, r := range roles {
			if s, ok := r.(string); ok {
				tokenClaims.Roles = append(tokenClaims.Roles, s)
			}
		}
	}

	for k, v := range claims {
		if _, reserved := registeredClaims[k]; reserved || k == ClaimUserID || k == ClaimRoles {
			continue
		}
		tokenClaims.Extra[k] = v
	}

	return tokenClaims, nil
}

// IsValidFor implements domain.TokenService
func (j *JWTServiceImpl) IsValidFor(tokenString, subject string) bool {
	claims, err := j.Verify(tokenString)
	if err != nil {
		return false
	}
	return claims.Subject == subject
}
