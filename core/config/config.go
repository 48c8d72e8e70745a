package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"catalog-sync/core/catalog"
	"catalog-sync/core/database"
	"catalog-sync/core/events"
	"catalog-sync/core/logger"
	"catalog-sync/core/server"
	"catalog-sync/core/storage"
	"catalog-sync/feature/crm"
	"catalog-sync/feature/inventory"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds the stock database connection, also used for CRM tables.
	Database database.Config `mapstructure:"database"`
	// Catalog holds the WooCommerce REST API credentials.
	Catalog catalog.Config `mapstructure:"catalog"`
	// Sync holds the reconciliation settings.
	Sync inventory.Config `mapstructure:"sync"`
	// Storage holds the object storage used for run reports.
	Storage storage.Config `mapstructure:"storage"`
	// Events holds the RabbitMQ connection used for domain events.
	Events events.Config `mapstructure:"events"`
	// CRM holds the WhatsApp webhook settings.
	CRM crm.Config `mapstructure:"crm"`
}

// LoadConfig loads configuration from environment variables and a .env file in path.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Missing .env is fine in production.
	_ = godotenv.Overload(envPath)

	v := viper.New()
	bindValues(v, Config{}, "")

	// SYNC_PAGE_SIZE -> sync.page_size
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// ValidateSync checks the settings a sync run cannot start without.
func (c *Config) ValidateSync() error {
	var errs []error
	if strings.TrimSpace(c.Catalog.BaseURL) == "" {
		errs = append(errs, errors.New("CATALOG_BASE_URL is required"))
	}
	if c.Catalog.ConsumerKey == "" || c.Catalog.ConsumerSecret == "" {
		errs = append(errs, errors.New("CATALOG_CONSUMER_KEY and CATALOG_CONSUMER_SECRET are required"))
	}
	if c.Sync.PageSize > catalog.MaxBatchSize {
		errs = append(errs, fmt.Errorf("SYNC_PAGE_SIZE must not exceed %d", catalog.MaxBatchSize))
	}
	if c.Sync.MaxPages < 0 {
		errs = append(errs, errors.New("SYNC_MAX_PAGES must not be negative"))
	}
	return errors.Join(errs...)
}

// bindValues walks the struct and registers every mapstructure key with its
// default tag so AutomaticEnv can resolve it.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Empty defaults still register the key.
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
