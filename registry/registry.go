// Package registry tracks the set of refresh tokens the server currently
// honours. Membership here is the sole revocation mechanism: a refresh
// token that decodes cleanly is still refused once it has been removed.
package registry

import "context"

// Registry is the set of currently-valid refresh token strings.
// Implementations must be safe for concurrent use; a Remove that
// completes before a Has begins must be visible to it.
type Registry interface {
	Add(ctx context.Context, refreshToken string) error
	Has(ctx context.Context, refreshToken string) (bool, error)
	Remove(ctx context.Context, refreshToken string) error
}
