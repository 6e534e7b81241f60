package okx

import "os"

// Environment variables holding the API credentials.
const (
	EnvAPIKey     = "OKX_API_KEY"
	EnvSecretKey  = "OKX_SECRET_KEY"
	EnvPassphrase = "OKX_PASSPHRASE"
)

// Credentials holds the API key, secret key and passphrase for one exchange
// account. A value is immutable once constructed and never serializes or
// prints its secrets.
type Credentials struct {
	apiKey     string
	secretKey  string
	passphrase string
}

// NewCredentials builds a credential set. All three values are required; the
// exchange rejects requests signed with a partial set, so construction fails
// early instead.
func NewCredentials(apiKey, secretKey, passphrase string) (*Credentials, error) {
	if apiKey == "" {
		return nil, &ValidationError{Kind: KindInvalidCredential, Field: "api_key", Reason: "must not be empty"}
	}
	if secretKey == "" {
		return nil, &ValidationError{Kind: KindInvalidCredential, Field: "secret_key", Reason: "must not be empty"}
	}
	if passphrase == "" {
		return nil, &ValidationError{Kind: KindInvalidCredential, Field: "passphrase", Reason: "must not be empty"}
	}
	return &Credentials{apiKey: apiKey, secretKey: secretKey, passphrase: passphrase}, nil
}

// CredentialsFromEnv reads the credential set from OKX_API_KEY,
// OKX_SECRET_KEY and OKX_PASSPHRASE.
func CredentialsFromEnv() (*Credentials, error) {
	return NewCredentials(os.Getenv(EnvAPIKey), os.Getenv(EnvSecretKey), os.Getenv(EnvPassphrase))
}

// APIKey returns the public API key identifier. The secret key and
// passphrase are intentionally not exposed.
func (c *Credentials) APIKey() string {
	return c.apiKey
}

// String identifies the credential set without leaking secrets, so values
// are safe to pass through %v formatting and log fields.
func (c *Credentials) String() string {
	return "okx.Credentials(api_key=" + mask(c.apiKey) + ")"
}

func mask(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	return s[:4] + "****"
}
