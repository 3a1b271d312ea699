// Package credentials resolves provider API keys from the environment or the
// system keychain.
package credentials

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/zalando/go-keyring"
)

// keychainService is the service name used for keychain entries.
const keychainService = "autodoc"

// ErrNotFound is returned when no key is stored for a provider.
var ErrNotFound = errors.New("credential not found")

// ErrKeychainUnavailable is returned when the system keychain cannot be used.
var ErrKeychainUnavailable = errors.New("keychain unavailable")

// Source says where a key came from.
type Source string

const (
	SourceNone     Source = "none"
	SourceEnv      Source = "environment"
	SourceKeychain Source = "keychain"
)

// Lookup returns the key for provider. The environment variable envKey wins
// over the keychain.
func Lookup(provider, envKey string) (string, Source, error) {
	if envKey != "" {
		if v := os.Getenv(envKey); v != "" {
			return v, SourceEnv, nil
		}
	}
	value, err := keyring.Get(keychainService, provider)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", SourceNone, errors.Wrapf(ErrNotFound, "%s", provider)
		}
		// A missing or locked keychain is the same as no key for lookups.
		return "", SourceNone, errors.Mark(errors.Wrapf(err, "keychain lookup for %s", provider), ErrNotFound)
	}
	return value, SourceKeychain, nil
}

// Store saves key for provider in the system keychain.
func Store(provider, key string) error {
	if err := keyring.Set(keychainService, provider, key); err != nil {
		return errors.Mark(errors.Wrapf(err, "store %s key in keychain", provider), ErrKeychainUnavailable)
	}
	return nil
}

// Delete removes the stored key for provider.
func Delete(provider string) error {
	if err := keyring.Delete(keychainService, provider); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.Wrapf(ErrNotFound, "%s", provider)
		}
		return errors.Mark(errors.Wrapf(err, "delete %s key from keychain", provider), ErrKeychainUnavailable)
	}
	return nil
}

// KeychainAvailable checks the keychain with a read of a key that never exists.
func KeychainAvailable() bool {
	_, err := keyring.Get(keychainService, "__autodoc_availability_test__")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
