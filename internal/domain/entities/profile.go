package entities

// SigningProfile is an optional file-based configuration for local runs.
// Passwords never appear in the profile; it names the environment variables
// the cmd layer should read them from.
type SigningProfile struct {
	ReleaseDirectory    string
	Alias               string
	BuildToolsVersion   string
	KeyStorePasswordEnv string
	KeyPasswordEnv      string
	Recursive           bool
}
