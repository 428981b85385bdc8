// Package gpg provides keystore provenance verification via OpenPGP
// detached signatures.
package gpg

import (
	"bytes"
	"fmt"
	"os"

	"github.com/ProtonMail/go-crypto/openpgp"
)

// Verifier checks a detached signature over the keystore file against a
// local keyring. Keys arrive as action inputs here, so there is no keyserver
// lookup; everything is read from disk.
type Verifier struct {
	keyring openpgp.EntityList
	sigPath string
}

// NewVerifier creates a verifier for the given public key and detached
// signature files. The key file may hold an armored or binary keyring.
func NewVerifier(publicKeyPath, sigPath string) (*Verifier, error) {
	//nolint:gosec // G304: keyPath is user-provided for key import
	f, err := os.Open(publicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open public key file: %w", err)
	}
	//nolint:errcheck // Defer close
	defer f.Close()

	keyring, err := openpgp.ReadArmoredKeyRing(f)
	if err != nil {
		if _, seekErr := f.Seek(0, 0); seekErr != nil {
			return nil, fmt.Errorf("failed to reset key file: %w", seekErr)
		}
		keyring, err = openpgp.ReadKeyRing(f)
		if err != nil {
			return nil, fmt.Errorf("failed to read public key: %w", err)
		}
	}

	if len(keyring) == 0 {
		return nil, fmt.Errorf("no keys found in %s", publicKeyPath)
	}

	return &Verifier{keyring: keyring, sigPath: sigPath}, nil
}

// VerifyKeystore verifies the detached signature over the keystore file.
// Armored and binary signatures are both accepted.
func (v *Verifier) VerifyKeystore(keystorePath string) error {
	sigData, err := os.ReadFile(v.sigPath)
	if err != nil {
		return fmt.Errorf("failed to read signature file: %w", err)
	}
	if len(sigData) < 10 {
		return fmt.Errorf("signature file too small to be a valid signature")
	}

	//nolint:gosec // G304: keystorePath is the run's own decoded keystore
	f, err := os.Open(keystorePath)
	if err != nil {
		return fmt.Errorf("failed to open keystore: %w", err)
	}
	//nolint:errcheck // Defer close
	defer f.Close()

	isArmored := bytes.HasPrefix(sigData, []byte("-----BEGIN PGP SIGNATURE---"))

	var verifyErr error
	if isArmored {
		_, verifyErr = openpgp.CheckArmoredDetachedSignature(v.keyring, f, bytes.NewReader(sigData), nil)
	} else {
		_, verifyErr = openpgp.CheckDetachedSignature(v.keyring, f, bytes.NewReader(sigData), nil)
	}
	if verifyErr != nil {
		return fmt.Errorf("signature verification failed: %w", verifyErr)
	}

	return nil
}
