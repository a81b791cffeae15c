// Package auth resolves bearer credentials to principals. A token's role
// claim is asserted at issuance time and trusted for the token's lifetime;
// role changes take effect only once the old token expires.
package auth

import (
	"errors"
	"time"

	"foodplatform/models"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrUnauthenticated covers absent, malformed, expired and
	// badly-signed credentials.
	ErrUnauthenticated = errors.New("invalid or expired token")
	// ErrUnknownPrincipal means the token verified but the account behind
	// it no longer exists.
	ErrUnknownPrincipal = errors.New("account not found")
)

// Principal is an authenticated actor. The zero value is the anonymous
// principal used on public catalog routes.
type Principal struct {
	ID   uint
	Role models.Role
}

// Anonymous reports whether p carries no identity.
func (p Principal) Anonymous() bool {
	return p.ID == 0 && p.Role == ""
}

type Claims struct {
	UserID uint        `json:"user_id"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

// UserLookup checks that an identity reference still resolves to an account.
type UserLookup interface {
	UserByID(id uint) (*models.User, error)
}

// Authenticator issues and resolves signed tokens.
type Authenticator struct {
	secret []byte
	ttl    time.Duration
	users  UserLookup
}

func NewAuthenticator(secret []byte, ttl time.Duration, users UserLookup) *Authenticator {
	return &Authenticator{secret: secret, ttl: ttl, users: users}
}

// GenerateToken creates a signed JWT for a given user.
func (a *Authenticator) GenerateToken(user *models.User) (string, error) {
	claims := Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(a.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// Resolve verifies a raw bearer token and returns the principal it names.
// The user lookup covers accounts deleted after the token was issued.
func (a *Authenticator) Resolve(rawToken string) (Principal, error) {
	if rawToken == "" {
		return Principal{}, ErrUnauthenticated
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(rawToken, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return Principal{}, ErrUnauthenticated
	}
	if _, err := a.users.UserByID(claims.UserID); err != nil {
		return Principal{}, ErrUnknownPrincipal
	}
	return Principal{ID: claims.UserID, Role: claims.Role}, nil
}
