package crypto

import (
	"context"
	"errors"
)

// ErrNoRefresh is returned when a 401 cannot be recovered because no
// token refresh flow exists; the user must log in again.
var ErrNoRefresh = errors.New("session expired, run 'praxis login' to store a new token")

// Keyring provides secure API token storage abstraction
type Keyring interface {
	GetToken() (string, error)
	SetToken(token string) error
	DeleteToken() error
	IsAvailable() bool
}

const (
	ServiceName = "praxis"
	TokenName   = "api-token"
)

// NewKeyring returns the best available keyring implementation
func NewKeyring() Keyring {
	return newPlatformKeyring()
}

// TokenSource adapts a Keyring to the transport's token interface. There
// is no refresh flow; a 401 after the stored token stands means the user
// must log in again.
type TokenSource struct {
	keyring Keyring
}

// NewTokenSource creates a TokenSource over the given keyring
func NewTokenSource(k Keyring) *TokenSource {
	return &TokenSource{keyring: k}
}

// Token returns the stored API token, or "" when none is stored yet so
// unauthenticated requests fail server-side rather than here.
func (t *TokenSource) Token() (string, error) {
	token, err := t.keyring.GetToken()
	if err != nil {
		return "", nil
	}
	return token, nil
}

// Refresh reports that no refresh flow is available.
func (t *TokenSource) Refresh(ctx context.Context) (string, error) {
	return "", ErrNoRefresh
}
