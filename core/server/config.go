package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables the check.
	ApiKey string `mapstructure:"api_key" default:""`
	// ReadTimeoutSeconds bounds reading a request.
	ReadTimeoutSeconds int `mapstructure:"read_timeout_seconds" default:"15"`
	// WriteTimeoutSeconds bounds writing a response. A manual sync can take minutes.
	WriteTimeoutSeconds int `mapstructure:"write_timeout_seconds" default:"600"`
}

// Address returns the listen address for fiber.
func (c Config) Address() string {
	if c.Port == "" {
		return ":8080"
	}
	return ":" + c.Port
}

// AuthEnabled reports whether API key authentication is configured.
func (c Config) AuthEnabled() bool {
	return c.ApiKey != ""
}
