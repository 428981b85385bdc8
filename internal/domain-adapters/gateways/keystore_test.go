package gateways

import (
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/signdroid/signdroid/internal/domain/entities"
)

func TestKeystoreWriter_Write_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	content := []byte("binary keystore bytes \x00\x01\x02")
	encoded := base64.StdEncoding.EncodeToString(content)

	writer := NewKeystoreWriter()
	path, err := writer.Write(dir, "  "+encoded+"\n")
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	if filepath.Base(path) != KeystoreFileName {
		t.Errorf("Write() path = %q, want basename %q", path, KeystoreFileName)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(content) {
		t.Errorf("Write() decoded %q, want %q", got, content)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("Write() mode = %v, want 0600", info.Mode().Perm())
	}
}

func TestKeystoreWriter_Write_UnpaddedBase64(t *testing.T) {
	dir := t.TempDir()
	encoded := base64.RawStdEncoding.EncodeToString([]byte("ks"))

	writer := NewKeystoreWriter()
	if _, err := writer.Write(dir, encoded); err != nil {
		t.Errorf("Write() should accept unpadded base64, got %v", err)
	}
}

func TestKeystoreWriter_Write_InvalidBase64(t *testing.T) {
	writer := NewKeystoreWriter()

	_, err := writer.Write(t.TempDir(), "not*base64*at*all")
	if err == nil {
		t.Fatal("Write() should reject invalid base64")
	}
	if !errors.Is(err, entities.ErrConfiguration) {
		t.Errorf("Write() error kind = %v, want ErrConfiguration", err)
	}
}

func TestKeystoreWriter_Write_Empty(t *testing.T) {
	writer := NewKeystoreWriter()

	if _, err := writer.Write(t.TempDir(), "   \n"); err == nil {
		t.Fatal("Write() should reject an empty signing key")
	}
}

func TestKeystoreWriter_Remove(t *testing.T) {
	dir := t.TempDir()
	writer := NewKeystoreWriter()

	path, err := writer.Write(dir, base64.StdEncoding.EncodeToString([]byte("ks")))
	if err != nil {
		t.Fatal(err)
	}

	if err := writer.Remove(path); err != nil {
		t.Errorf("Remove() error = %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Remove() left the keystore behind")
	}

	// Removing again must be a no-op
	if err := writer.Remove(path); err != nil {
		t.Errorf("Remove() of a missing file should succeed, got %v", err)
	}
}
