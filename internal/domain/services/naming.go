// Package services contains pure domain logic with no external dependencies.
package services

import "strings"

const (
	apkExt        = ".apk"
	alignedSuffix = "-aligned.apk"
	signedSuffix  = "-signed.apk"
)

// AlignedAPKPath derives the aligned copy's path from the original APK path.
// The derivation is a fixed substitution on the .apk extension and is
// idempotent per input name: foo.apk -> foo-aligned.apk. Downstream CI
// artifact collection depends on these exact names.
func AlignedAPKPath(apkPath string) string {
	return withSuffix(apkPath, alignedSuffix)
}

// SignedAPKPath derives the signed output path from the original APK path
// (not from the aligned copy's name): foo.apk -> foo-signed.apk.
func SignedAPKPath(apkPath string) string {
	return withSuffix(apkPath, signedSuffix)
}

// IsDerivedAPKPath reports whether a path is a pipeline product from a
// previous run rather than an original input.
func IsDerivedAPKPath(path string) bool {
	return strings.HasSuffix(path, alignedSuffix) || strings.HasSuffix(path, signedSuffix)
}

func withSuffix(path, suffix string) string {
	if strings.HasSuffix(path, apkExt) {
		return strings.TrimSuffix(path, apkExt) + suffix
	}
	// No .apk extension to substitute; append the suffix instead of
	// silently returning the input unchanged.
	return path + suffix
}
