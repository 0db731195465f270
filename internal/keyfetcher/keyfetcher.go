package keyfetcher

import (
	"crypto/rsa"
	"fmt"
	"os"

	"github.com/golang-jwt/jwt/v5"
)

type PublicKeyFetcher interface {
	FetchPublicKey() (*rsa.PublicKey, error)
}

// From loads PEM encoded key material.
type From func() ([]byte, error)

// FetchPublicKey parses the loaded key as an RSA public key.
func (f From) FetchPublicKey() (*rsa.PublicKey, error) {
	keyBytes, err := f()
	if err != nil {
		return nil, err
	}

	return jwt.ParseRSAPublicKeyFromPEM(keyBytes)
}

// FromFile reads the PEM file at path on every fetch, so a rotated key is picked up without a restart.
func FromFile(path string) From {
	return func() ([]byte, error) {
		keyBytes, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read key %s: %w", path, err)
		}

		return keyBytes, nil
	}
}
