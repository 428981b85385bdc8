package entities

// SigningCredentials holds the key material references for one signing run.
// The struct is supplied whole by the caller and never mutated; KeyPassword
// is optional and an empty value means the key password flag is omitted from
// tool invocations entirely.
type SigningCredentials struct {
	KeyFilePath      string
	Alias            string
	KeyStorePassword string
	KeyPassword      string
}

// Validate reports the first missing required field as a configuration error
func (c SigningCredentials) Validate() error {
	switch {
	case c.KeyFilePath == "":
		return NewConfigurationError("signing key file path is required")
	case c.Alias == "":
		return NewConfigurationError("keystore alias is required")
	case c.KeyStorePassword == "":
		return NewConfigurationError("keystore password is required")
	}
	return nil
}
