package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// TokenExpiredErr is returned when a structurally valid token has passed its embedded expiry.
	TokenExpiredErr = errors.New("token expired")
	// InvalidSignatureErr is returned when the token's signature does not match the codec's secret.
	InvalidSignatureErr = errors.New("invalid token signature")
	// MalformedTokenErr is returned for tokens that cannot be parsed at all.
	MalformedTokenErr = errors.New("malformed token")
)

// IsInvalidOrExpired reports whether err is any of the decode failures.
// Callers that don't care which rule a token broke branch on this.
func IsInvalidOrExpired(err error) bool {
	return errors.Is(err, TokenExpiredErr) ||
		errors.Is(err, InvalidSignatureErr) ||
		errors.Is(err, MalformedTokenErr)
}

// Codec turns a claim set into a signed, self-contained token string and
// back again. Access and refresh tokens each get their own Codec so they
// are signed with different secrets and can never be swapped for one
// another.
type Codec struct {
	secret  []byte
	ttl     time.Duration
	nowFunc func() time.Time
}

type CodecOption func(*Codec)

// WithNowFunc overrides the clock, used by tests to simulate expiry.
func WithNowFunc(now func() time.Time) CodecOption {
	return func(c *Codec) {
		c.nowFunc = now
	}
}

func NewCodec(secret string, ttl time.Duration, options ...CodecOption) *Codec {
	c := &Codec{
		secret:  []byte(secret),
		ttl:     ttl,
		nowFunc: time.Now,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// EncodeAccess signs an access token. The issued-at, expiry and jti claims
// are stamped here; any values the caller set on RegisteredClaims are
// overwritten.
func (c *Codec) EncodeAccess(claims AccessClaims) (string, error) {
	claims.RegisteredClaims = c.stamp()
	return c.sign(claims)
}

// EncodeRefresh signs a refresh token.
func (c *Codec) EncodeRefresh(claims RefreshClaims) (string, error) {
	claims.RegisteredClaims = c.stamp()
	return c.sign(claims)
}

// DecodeAccess verifies the signature and expiry of an access token and
// returns its claims. Callers get typed claims or an error, never a
// half-decoded payload.
func (c *Codec) DecodeAccess(rawToken string) (*AccessClaims, error) {
	var claims AccessClaims
	if err := c.decode(rawToken, &claims); err != nil {
		return nil, err
	}
	return &claims, nil
}

// DecodeRefresh verifies the signature and expiry of a refresh token.
func (c *Codec) DecodeRefresh(rawToken string) (*RefreshClaims, error) {
	var claims RefreshClaims
	if err := c.decode(rawToken, &claims); err != nil {
		return nil, err
	}
	return &claims, nil
}

func (c *Codec) stamp() jwt.RegisteredClaims {
	now := c.nowFunc()
	return jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		ID:        uuid.New().String(),
	}
}

func (c *Codec) sign(claims jwt.Claims) (string, error) {
	signedToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("Codec.sign: %w", err)
	}
	return signedToken, nil
}

func (c *Codec) decode(rawToken string, claims jwt.Claims) error {
	parsedToken, err := jwt.ParseWithClaims(rawToken, claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return c.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.nowFunc),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return TokenExpiredErr
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return InvalidSignatureErr
		default:
			return MalformedTokenErr
		}
	}
	if !parsedToken.Valid {
		return MalformedTokenErr
	}
	return nil
}
