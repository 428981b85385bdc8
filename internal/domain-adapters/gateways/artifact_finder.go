package gateways

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/signdroid/signdroid/internal/domain/entities"
	"github.com/signdroid/signdroid/internal/domain/services"
)

// ArtifactFinder locates release artifacts to sign
type ArtifactFinder struct {
	recursive bool
}

// NewArtifactFinder creates a new artifact finder. Recursive scanning walks
// the whole release directory tree instead of its top level only.
func NewArtifactFinder(recursive bool) *ArtifactFinder {
	return &ArtifactFinder{recursive: recursive}
}

// Find scans the release directory for .apk and .aab files, in deterministic
// sorted order. Derived outputs from previous runs (-aligned.apk,
// -signed.apk) are skipped so a re-run does not sign its own products.
func (f *ArtifactFinder) Find(releaseDir string) ([]entities.ArtifactFile, error) {
	if _, err := os.Stat(releaseDir); os.IsNotExist(err) {
		return nil, entities.NewConfigurationError("release directory does not exist: %s", releaseDir)
	}

	var paths []string
	var err error
	if f.recursive {
		paths, err = f.findRecursive(releaseDir)
	} else {
		paths, err = f.findTopLevel(releaseDir)
	}
	if err != nil {
		return nil, entities.NewFilesystemError("failed to scan %s: %v", releaseDir, err)
	}

	sort.Strings(paths)

	artifacts := make([]entities.ArtifactFile, 0, len(paths))
	for _, path := range paths {
		artifactType, ok := entities.ArtifactTypeOf(path)
		if !ok || services.IsDerivedAPKPath(path) {
			continue
		}
		artifacts = append(artifacts, entities.ArtifactFile{Path: path, Type: artifactType})
	}

	return artifacts, nil
}

func (f *ArtifactFinder) findTopLevel(releaseDir string) ([]string, error) {
	entries, err := os.ReadDir(releaseDir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		paths = append(paths, filepath.Join(releaseDir, entry.Name()))
	}
	return paths, nil
}

func (f *ArtifactFinder) findRecursive(releaseDir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(releaseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	return paths, err
}
