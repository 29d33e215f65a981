package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	accessSecretVar  = "ACCESS_TOKEN_SECRET"
	refreshSecretVar = "REFRESH_TOKEN_SECRET"
	accessExpiryVar  = "ACCESS_EXPIRES_IN"
	refreshExpiryVar = "REFRESH_EXPIRES_IN"
	bcryptCostVar    = "BCRYPT_COST"

	// Development-only placeholders. Validate() refuses to start in PROD
	// without real secrets.
	devAccessSecret  = "CHANGE_ME_access_secret_!@#"
	devRefreshSecret = "CHANGE_ME_refresh_secret_!@#"
)

type AuthConfig interface {
	GetAccessTokenSecret() string
	GetRefreshTokenSecret() string
	GetAccessTokenExpiry() time.Duration
	GetRefreshTokenExpiry() time.Duration
	GetBcryptCost() int
}

type Auth struct{}

var _ AuthConfig = Auth{}

func (Auth) GetAccessTokenSecret() string {
	return GetEnv(accessSecretVar, devAccessSecret)
}

func (Auth) GetRefreshTokenSecret() string {
	return GetEnv(refreshSecretVar, devRefreshSecret)
}

func (Auth) GetAccessTokenExpiry() time.Duration {
	return parseExpiry(GetEnv(accessExpiryVar, "15m"), 15*time.Minute)
}

func (Auth) GetRefreshTokenExpiry() time.Duration {
	return parseExpiry(GetEnv(refreshExpiryVar, "7d"), 7*24*time.Hour)
}

func (Auth) GetBcryptCost() int {
	cost, err := strconv.Atoi(GetEnv(bcryptCostVar, ""))
	if err != nil || cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return bcrypt.DefaultCost
	}
	return cost
}

// Validate enforces the production posture: signing secrets must not fall
// back to the well-known placeholders.
func Validate(c Config) error {
	if c.GetEnv() != "PROD" {
		return nil
	}
	if os.Getenv(accessSecretVar) == "" {
		return fmt.Errorf("%s must be set in PROD", accessSecretVar)
	}
	if os.Getenv(refreshSecretVar) == "" {
		return fmt.Errorf("%s must be set in PROD", refreshSecretVar)
	}
	return nil
}

// parseExpiry understands Go duration strings plus a trailing "d" suffix
// for days ("7d"), which time.ParseDuration does not accept.
func parseExpiry(value string, fallback time.Duration) time.Duration {
	if strings.HasSuffix(value, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(value, "d"))
		if err != nil || days <= 0 {
			return fallback
		}
		return time.Duration(days) * 24 * time.Hour
	}

	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
