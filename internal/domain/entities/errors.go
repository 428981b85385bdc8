package entities

import (
	"errors"
	"fmt"
)

// Error kinds for the signing run. Callers classify failures with errors.Is;
// messages carry the operational detail.
var (
	// ErrConfiguration covers missing environment values, a missing
	// build-tools directory, and tools absent from PATH. It aborts the
	// whole run before any artifact is processed.
	ErrConfiguration = errors.New("configuration error")

	// ErrExternalProcess covers any invoked tool exiting non-zero or
	// exceeding its invocation timeout. It fails one artifact only.
	ErrExternalProcess = errors.New("external process error")

	// ErrFilesystem covers copy and write failures between pipeline
	// stages. It fails one artifact only.
	ErrFilesystem = errors.New("filesystem error")
)

// ErrToolNotFound marks a PATH lookup failure. It still matches
// ErrConfiguration, so run-abort classification is unchanged, but callers
// can distinguish it from a misconfigured build-tools directory.
var ErrToolNotFound = fmt.Errorf("%w: tool not found on PATH", ErrConfiguration)

// NewConfigurationError wraps a message in the configuration error kind
func NewConfigurationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}

// NewExternalProcessError wraps a message in the external process error kind
func NewExternalProcessError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrExternalProcess, fmt.Sprintf(format, args...))
}

// NewFilesystemError wraps a message in the filesystem error kind
func NewFilesystemError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrFilesystem, fmt.Sprintf(format, args...))
}
