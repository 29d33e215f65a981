package auth

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// InvalidCredentialsErr is the category for any login failure.
	// UnknownUserErr and WrongPasswordErr both match it via errors.Is;
	// the split exists only so the client-facing message can differ.
	InvalidCredentialsErr = errors.New("invalid credentials")
	UnknownUserErr        = fmt.Errorf("unknown user: %w", InvalidCredentialsErr)
	WrongPasswordErr      = fmt.Errorf("wrong password: %w", InvalidCredentialsErr)

	EmailTakenErr         = errors.New("email already exists")
	MissingTokenErr       = errors.New("missing token")
	UnrecognizedTokenErr  = errors.New("refresh token not recognized")
	UserNotFoundErr       = errors.New("user not found")
)

// ValidationError reports every rule a signup request broke, not just the
// first one.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Violations, "; ")
}
