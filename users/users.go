package users

import (
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// RoleType is the coarse authorization tag gating privileged operations.
type RoleType string

const (
	RoleUser  RoleType = "user"
	RoleAdmin RoleType = "admin"
)

// passwordSymbols is the fixed set of special characters the password
// policy accepts, matching what clients are told to use.
const passwordSymbols = "@$!%*?&"

type User struct {
	ID           int64    `json:"id,omitempty"` // Assigned by storage
	Name         string   `json:"name,omitempty"`
	Email        string   `json:"email,omitempty"`
	PasswordHash string   `json:"-"` // Hashed password - never serialize
	Role         RoleType `json:"role,omitempty"`
}

// Summary is the public view of a user. The password hash never leaves
// the users package boundary through it.
type Summary struct {
	ID    int64    `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Role  RoleType `json:"role"`
}

func (u *User) Summary() Summary {
	return Summary{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ValidatePassword checks the password strength policy:
// - At least 8 characters long
// - Contains uppercase and lowercase letters
// - Contains at least one number
// - Contains at least one special character from passwordSymbols
// It returns every violated rule rather than stopping at the first, so
// clients can show the whole battery at once.
func ValidatePassword(password string) []string {
	var violations []string

	if len([]rune(password)) < 8 {
		violations = append(violations, "password must be at least 8 characters long")
	}

	var (
		hasUpper  bool
		hasLower  bool
		hasNumber bool
		hasSymbol bool
	)

	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsDigit(char):
			hasNumber = true
		case strings.ContainsRune(passwordSymbols, char):
			hasSymbol = true
		}
	}

	if !hasLower {
		violations = append(violations, "password must contain at least one lowercase letter")
	}
	if !hasUpper {
		violations = append(violations, "password must contain at least one uppercase letter")
	}
	if !hasNumber {
		violations = append(violations, "password must contain at least one number")
	}
	if !hasSymbol {
		violations = append(violations, "password must contain at least one special character ("+passwordSymbols+")")
	}

	return violations
}

// HashPassword hashes a plaintext password with bcrypt. A cost of 0
// selects the default cost factor (10).
func HashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(bytes), err
}

// CheckPasswordHash compares a plaintext password against a stored hash.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
