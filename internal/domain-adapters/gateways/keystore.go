package gateways

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"

	"github.com/signdroid/signdroid/internal/domain/entities"
)

// KeystoreFileName is the name the decoded keystore is written under
const KeystoreFileName = "signingKey.jks"

// KeystoreWriter materializes the base64-encoded keystore supplied by the CI
// environment into a file the signing tools can read.
type KeystoreWriter struct{}

// NewKeystoreWriter creates a new keystore writer
func NewKeystoreWriter() *KeystoreWriter {
	return &KeystoreWriter{}
}

// Write decodes the base64 payload into dir and returns the keystore path.
// Surrounding whitespace and missing padding are tolerated; CI secret stores
// routinely mangle both. The file is written 0600 since it holds private key
// material.
func (w *KeystoreWriter) Write(dir, keyBase64 string) (string, error) {
	payload := strings.TrimSpace(keyBase64)
	if payload == "" {
		return "", entities.NewConfigurationError("signing key is empty")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(payload)
	}
	if err != nil {
		return "", entities.NewConfigurationError("signing key is not valid base64: %v", err)
	}

	path := filepath.Join(dir, KeystoreFileName)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", entities.NewFilesystemError("failed to write keystore to %s: %v", path, err)
	}

	return path, nil
}

// Remove deletes the materialized keystore. Missing files are not an error;
// cleanup must be safe to call on every exit path.
func (w *KeystoreWriter) Remove(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return entities.NewFilesystemError("failed to remove keystore %s: %v", path, err)
	}
	return nil
}
