package crm

// Config holds configuration for the WhatsApp webhook.
type Config struct {
	// VerifyToken must match hub.verify_token during the subscription handshake.
	VerifyToken string `mapstructure:"verify_token" default:""`
	// PhoneMatchDigits is how many trailing digits identify a customer phone.
	PhoneMatchDigits int `mapstructure:"phone_match_digits" default:"9"`
}

func (c Config) matchDigits() int {
	if c.PhoneMatchDigits <= 0 {
		return 9
	}
	return c.PhoneMatchDigits
}
