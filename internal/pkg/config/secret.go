package config

// Secret holds an opaque credential. Its textual representations are
// redacted so the value cannot leak through logs, error messages or
// re-serialized configuration. Use Value to reach the cleartext.
type Secret string

const redacted = "********"

func (s Secret) String() string { return redacted }

func (s Secret) GoString() string { return redacted }

// Format-style helpers on logrus and yaml both go through these.
func (s Secret) MarshalYAML() (interface{}, error) { return redacted, nil }

func (s Secret) MarshalJSON() ([]byte, error) { return []byte(`"` + redacted + `"`), nil }

// Value returns the cleartext secret.
func (s Secret) Value() string { return string(s) }
