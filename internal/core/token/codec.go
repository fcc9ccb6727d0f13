package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dogwalk/marketplace/internal/core/domain"
)

// Codec signs and verifies session tokens. Claims carry only the subject
// user id plus issue/expiry times; everything else about the acting user is
// loaded from storage per request.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec returns a Codec signing HS256 tokens valid for ttl.
// A non-positive ttl defaults to 24 hours.
func NewCodec(secret string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Codec{secret: []byte(secret), ttl: ttl}
}

// TTL returns the lifetime applied to issued tokens.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue produces a signed token for userID and reports its expiry.
func (c *Codec) Issue(userID string) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(c.ttl)

	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Decode verifies the signature and claim shape and returns the subject
// user id. It does not consult the session store; callers that need
// revocation checks go through the auth service.
func (c *Codec) Decode(raw string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrTokenExpired
		}
		return "", domain.ErrInvalidToken
	}
	if !tkn.Valid || claims.Subject == "" || claims.ExpiresAt == nil {
		return "", domain.ErrInvalidToken
	}
	return claims.Subject, nil
}
