// Package token signs and verifies the compact signed tokens used as access
// and refresh credentials. Both token classes share one payload shape; the
// caller chooses the lifetime.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenMalformed is returned when the token cannot be decoded.
	ErrTokenMalformed = errors.New("token is malformed")
	// ErrTokenExpired is returned when the token is past its expiry.
	ErrTokenExpired = errors.New("token has expired")
	// ErrTokenSignature is returned when the signature does not verify.
	ErrTokenSignature = errors.New("token signature is invalid")
)

// Identity is the token subject: the minimal view of a user that travels
// inside tokens and API responses. Password material never appears here.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Claims nests the identity under the "user" claim. Clients already depend
// on this wire shape, so it must not change.
type Claims struct {
	User Identity `json:"user"`
	jwt.RegisteredClaims
}

// Codec signs and verifies tokens with a process-wide signer. Verify is
// side-effect free; no state is consulted beyond the signature and expiry.
type Codec struct {
	signer  Signer
	nowFunc func() time.Time
}

type CodecOption func(*Codec)

// WithNowFunc sets the clock used for issuance and expiry checks
// (primarily for testing).
func WithNowFunc(now func() time.Time) CodecOption {
	return func(c *Codec) {
		c.nowFunc = now
	}
}

func NewCodec(signer Signer, options ...CodecOption) *Codec {
	c := &Codec{
		signer:  signer,
		nowFunc: time.Now,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// Sign produces a signed token for identity expiring after lifetime.
func (c *Codec) Sign(identity Identity, lifetime time.Duration) (string, error) {
	now := c.nowFunc()
	claims := Claims{
		User: identity,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
		},
	}
	return c.signer.Sign(claims)
}

// Verify parses and validates a token, returning the embedded identity.
// Failures are collapsed into the three sentinel classes above.
func (c *Codec) Verify(raw string) (Identity, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(raw, claims, c.signer.GetVerificationKey,
		jwt.WithTimeFunc(c.nowFunc))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return Identity{}, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid),
			errors.Is(err, jwt.ErrTokenUnverifiable):
			return Identity{}, ErrTokenSignature
		default:
			return Identity{}, ErrTokenMalformed
		}
	}
	if !parsed.Valid {
		return Identity{}, ErrTokenMalformed
	}
	return claims.User, nil
}
