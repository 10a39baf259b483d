// Package authidp abstracts the external authentication service that owns
// credentials. Profiles live in our database; identities (email + password)
// live with the provider. The registration flow creates an identity first and
// must be able to delete it again if the whitelist check fails, so every
// Identity carries a token that authorizes operations on itself.
package authidp

import (
	"context"
	"errors"
)

// Identity is an authenticated account at the identity provider.
type Identity struct {
	UID         string
	Email       string
	DisplayName string

	// Token authorizes follow-up operations on this identity (delete,
	// display-name update). It is short-lived and never persisted.
	Token string
}

// Provider errors. Handlers map these to API responses, so implementations
// must return exactly these values for the conditions they describe.
var (
	ErrEmailInUse         = errors.New("authidp: email already in use")
	ErrInvalidEmail       = errors.New("authidp: invalid email address")
	ErrWeakPassword       = errors.New("authidp: password too weak")
	ErrInvalidCredentials = errors.New("authidp: invalid email or password")
)

// Provider is the credential backend for sign-in and registration.
type Provider interface {
	// SignIn verifies email and password and returns the identity.
	// Returns ErrInvalidCredentials when either is wrong.
	SignIn(ctx context.Context, email, password string) (*Identity, error)

	// CreateIdentity registers a new identity with the provider.
	// Returns ErrEmailInUse, ErrInvalidEmail or ErrWeakPassword when the
	// provider rejects the request.
	CreateIdentity(ctx context.Context, email, password string) (*Identity, error)

	// DeleteIdentity removes the identity the token belongs to. Used to
	// roll back a registration whose whitelist check failed.
	DeleteIdentity(ctx context.Context, token string) error

	// SetDisplayName updates the display name on the identity the token
	// belongs to. Best-effort: the profile document stays the source of
	// truth for display names.
	SetDisplayName(ctx context.Context, token, displayName string) error
}
