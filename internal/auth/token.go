package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// TokenLifetime is the fixed expiry horizon for issued tokens.
	TokenLifetime = 72 * time.Hour

	// ClockSkew is the allowance applied when validating token lifetimes.
	ClockSkew = 5 * time.Minute

	minKeyLength = 32
)

var ErrInvalidToken = errors.New("invalid token")

// Claims carries the identity and role of an authenticated account.
type Claims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and validates bearer tokens with a process-wide
// symmetric key. The key is set once at startup and never rotated at
// request time.
type TokenIssuer struct {
	key      []byte
	issuer   string
	audience string
	lifetime time.Duration
}

func NewTokenIssuer(secret, issuer, audience string) (*TokenIssuer, error) {
	if len(secret) < minKeyLength {
		return nil, fmt.Errorf("signing key must be at least %d bytes", minKeyLength)
	}

	return &TokenIssuer{
		key:      []byte(secret),
		issuer:   issuer,
		audience: audience,
		lifetime: TokenLifetime,
	}, nil
}

// Issue mints a signed token for the account. Every token gets a unique jti.
func (t *TokenIssuer) Issue(accountID uuid.UUID, name, email string, role Role) (string, error) {
	now := time.Now()

	claims := Claims{
		Name:  name,
		Email: email,
		Role:  role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID.String(),
			Issuer:    t.issuer,
			Audience:  jwt.ClaimStrings{t.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.lifetime)),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	return token.SignedString(t.key)
}

// Validate checks signature, issuer, audience and lifetime (with skew
// allowance) and returns the embedded claims.
func (t *TokenIssuer) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return t.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		jwt.WithIssuer(t.issuer),
		jwt.WithAudience(t.audience),
		jwt.WithLeeway(ClockSkew),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// Subject returns the account id carried in the token.
func (c *Claims) AccountID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}
