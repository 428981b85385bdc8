// Package entities defines core domain models and data structures.
package entities

import (
	"path/filepath"
	"strings"
)

// ArtifactType identifies the release artifact format
type ArtifactType string

const (
	// ArtifactAPK is an installable Android application package
	ArtifactAPK ArtifactType = "apk"
	// ArtifactAAB is an Android App Bundle publishing artifact
	ArtifactAAB ArtifactType = "aab"
)

// ArtifactFile represents a discovered release artifact to be signed
type ArtifactFile struct {
	Path string
	Type ArtifactType
}

// ArtifactTypeOf infers the artifact type from a file path's extension.
// The second return value is false for paths that are neither APK nor AAB.
func ArtifactTypeOf(path string) (ArtifactType, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".apk":
		return ArtifactAPK, true
	case ".aab":
		return ArtifactAAB, true
	default:
		return "", false
	}
}
