package events

// Config holds configuration for the RabbitMQ event publisher.
type Config struct {
	// URL is the AMQP connection URL. Empty disables publishing.
	URL string `mapstructure:"url" default:""`
	// Exchange is the topic exchange events are published to.
	Exchange string `mapstructure:"exchange" default:"catalog-sync"`
}
