// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ragchat Contributors

// Package secrets resolves provider credentials without forcing them into
// config files: values may be literals or keyring://service/key URIs
// backed by the OS keyring.
package secrets

// Store provides secure secret storage operations.
type Store interface {
	// Store saves a secret value under the given service and key.
	Store(service, key, value string) error

	// Retrieve fetches the secret value for the given service and key.
	// Returns a secrets.key.not_found error when the key does not exist.
	Retrieve(service, key string) (string, error)

	// Delete removes the secret for the given service and key.
	Delete(service, key string) error
}
