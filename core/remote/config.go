package remote

// Config holds configuration for the ingestion service client.
type Config struct {
	// BaseURL is the root URL of the ingestion service.
	BaseURL string `mapstructure:"base_url" default:"http://localhost:8000"`
	// APIVersion is the path segment placed before every endpoint.
	APIVersion string `mapstructure:"api_version" default:"v2"`
	// Email is the account used by Login. Empty disables the automatic login.
	Email string `mapstructure:"email" default:""`
	// Password is the password used by Login.
	Password string `mapstructure:"password" default:""`
	// TimeoutSeconds bounds connection setup and waiting for response headers.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"60"`
}

// HasCredentials reports whether both email and password are configured.
func (c Config) HasCredentials() bool {
	return c.Email != "" && c.Password != ""
}
