// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ragchat Contributors

package secrets

import (
	"errors"

	"github.com/zalando/go-keyring"

	ragerr "github.com/gogabrielordonez/mcp-ragchat/pkg/errors"
)

// KeyringStore implements Store on the OS keyring via zalando/go-keyring:
// Keychain on macOS, secret-service on Linux, Credential Manager on
// Windows.
type KeyringStore struct{}

// NewKeyringStore returns a KeyringStore.
func NewKeyringStore() *KeyringStore {
	return &KeyringStore{}
}

func (s *KeyringStore) Store(service, key, value string) error {
	if err := validate(service, key); err != nil {
		return err
	}
	if err := keyring.Set(service, key, value); err != nil {
		return ragerr.Wrapf(err, ragerr.CodeSecretStoreFailure, "storing secret %s/%s", service, key)
	}
	return nil
}

func (s *KeyringStore) Retrieve(service, key string) (string, error) {
	if err := validate(service, key); err != nil {
		return "", err
	}
	val, err := keyring.Get(service, key)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ragerr.Errorf(ragerr.CodeSecretNotFound, "secret %s/%s not found", service, key)
		}
		return "", ragerr.Wrapf(err, ragerr.CodeSecretStoreFailure, "retrieving secret %s/%s", service, key)
	}
	return val, nil
}

func (s *KeyringStore) Delete(service, key string) error {
	if err := validate(service, key); err != nil {
		return err
	}
	if err := keyring.Delete(service, key); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ragerr.Errorf(ragerr.CodeSecretNotFound, "secret %s/%s not found", service, key)
		}
		return ragerr.Wrapf(err, ragerr.CodeSecretStoreFailure, "deleting secret %s/%s", service, key)
	}
	return nil
}

func validate(service, key string) error {
	if service == "" {
		return ragerr.New(ragerr.CodeSecretInvalidInput, "secret store: service must not be empty")
	}
	if key == "" {
		return ragerr.New(ragerr.CodeSecretInvalidInput, "secret store: key must not be empty")
	}
	return nil
}
