package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/caresync/patient-records/internal/core/domain"
)

// TokenService signs and verifies HS256 JWTs carrying {username, role}.
// The signing secret is loaded once at startup and never mutated.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Issue returns a signed token expiring at issue-time + TTL.
func (s *TokenService) Issue(id domain.Identity) (string, error) {
	claims := jwt.MapClaims{
		"username": id.Username,
		"role":     string(id.Role),
		"exp":      time.Now().Add(s.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify decodes a raw token and returns its identity. The three failure
// modes are distinct: ErrTokenMissing, ErrTokenExpired, ErrTokenInvalid.
func (s *TokenService) Verify(raw string) (domain.Identity, error) {
	if raw == "" {
		return domain.Identity{}, domain.ErrTokenMissing
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Identity{}, domain.ErrTokenExpired
		}
		return domain.Identity{}, domain.ErrTokenInvalid
	}
	if !tkn.Valid {
		return domain.Identity{}, domain.ErrTokenInvalid
	}

	username, _ := claims["username"].(string)
	roleStr, _ := claims["role"].(string)
	role, roleErr := domain.ParseRole(roleStr)
	if username == "" || roleErr != nil {
		return domain.Identity{}, domain.ErrTokenInvalid
	}

	return domain.Identity{Username: username, Role: role}, nil
}
