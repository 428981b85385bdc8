package services

import "testing"

func TestAlignedAPKPath(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"foo.apk", "foo-aligned.apk"},
		{"release/app.apk", "release/app-aligned.apk"},
		{"/abs/path/my-app.apk", "/abs/path/my-app-aligned.apk"},
		{"noext", "noext-aligned.apk"},
	}

	for _, tt := range tests {
		if got := AlignedAPKPath(tt.input); got != tt.want {
			t.Errorf("AlignedAPKPath(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSignedAPKPath(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"foo.apk", "foo-signed.apk"},
		{"release/app.apk", "release/app-signed.apk"},
		{"app.v2.apk", "app.v2-signed.apk"},
	}

	for _, tt := range tests {
		if got := SignedAPKPath(tt.input); got != tt.want {
			t.Errorf("SignedAPKPath(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestDerivedPathsAreDeterministic(t *testing.T) {
	// Same input must yield byte-identical names on every call
	first := SignedAPKPath("dist/app.apk")
	second := SignedAPKPath("dist/app.apk")
	if first != second {
		t.Errorf("SignedAPKPath not deterministic: %q vs %q", first, second)
	}
}

func TestIsDerivedAPKPath(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"foo-aligned.apk", true},
		{"foo-signed.apk", true},
		{"foo.apk", false},
		{"foo.aab", false},
		{"aligned.apk", false},
	}

	for _, tt := range tests {
		if got := IsDerivedAPKPath(tt.input); got != tt.want {
			t.Errorf("IsDerivedAPKPath(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
