//go:build !darwin

package crypto

import (
	"errors"
	"fmt"
	"os"
)

type fallbackKeyring struct{}

func newPlatformKeyring() Keyring {
	return &fallbackKeyring{}
}

// GetToken retrieves the API token from the PRAXIS_API_TOKEN environment variable
func (k *fallbackKeyring) GetToken() (string, error) {
	token := os.Getenv("PRAXIS_API_TOKEN")
	if token == "" {
		return "", errors.New("PRAXIS_API_TOKEN environment variable not set")
	}

	return token, nil
}

// SetToken returns an error suggesting to set the environment variable
func (k *fallbackKeyring) SetToken(token string) error {
	if token == "" {
		return errors.New("token cannot be empty")
	}

	return fmt.Errorf("keyring not available on this platform: please set the PRAXIS_API_TOKEN environment variable")
}

// DeleteToken returns an error suggesting to unset the environment variable
func (k *fallbackKeyring) DeleteToken() error {
	return errors.New("keyring not available on this platform: please unset PRAXIS_API_TOKEN manually")
}

// IsAvailable checks if the PRAXIS_API_TOKEN environment variable is set
func (k *fallbackKeyring) IsAvailable() bool {
	return os.Getenv("PRAXIS_API_TOKEN") != ""
}
