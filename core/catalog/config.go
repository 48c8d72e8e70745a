package catalog

// Config holds configuration for the WooCommerce REST API.
type Config struct {
	// BaseURL is the storefront root, e.g. https://shop.example.com.
	BaseURL string `mapstructure:"base_url" default:"http://localhost:8000"`
	// ConsumerKey is the REST API consumer key (ck_...).
	ConsumerKey string `mapstructure:"consumer_key" default:""`
	// ConsumerSecret is the REST API consumer secret (cs_...).
	ConsumerSecret string `mapstructure:"consumer_secret" default:""`
	// APIVersion is the namespace under /wp-json.
	APIVersion string `mapstructure:"api_version" default:"wc/v3"`
	// TimeoutSeconds bounds a single HTTP request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// MaxRetries is the number of retries on network errors, 429 and 5xx.
	MaxRetries int `mapstructure:"max_retries" default:"3"`
	// RequestsPerSecond limits outgoing calls. 0 disables the limit.
	RequestsPerSecond float64 `mapstructure:"requests_per_second" default:"5"`
}
