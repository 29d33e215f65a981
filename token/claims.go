package token

import (
	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims is the payload embedded in a short-lived access token.
// It carries everything the authorization layer needs so that request
// handling never has to touch storage.
type AccessClaims struct {
	UserID int64  `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name,omitempty"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// RefreshClaims is the payload embedded in a long-lived refresh token.
// Name is deliberately absent: it is re-read from storage when a new
// access token is minted, so a stale copy here would only mislead.
type RefreshClaims struct {
	UserID int64  `json:"id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}
