// Package config loads catalog-sync settings from the environment.
//
// A .env file in the given directory is loaded first, then every key is read
// from the environment with dots replaced by underscores, so sync.page_size is
// set with SYNC_PAGE_SIZE. Defaults come from the default struct tags of each
// section.
//
// # Sections
//
//   - Server: listen port, API key and timeouts
//   - Log: level and encoding
//   - Database: stock database driver and connection
//   - Catalog: WooCommerce URL, credentials, retries and rate limit
//   - Sync: page size, page limit, dry run and the stock view
//   - Storage: MinIO/S3 bucket for run reports
//   - Events: RabbitMQ URL and exchange
//   - CRM: webhook verify token and phone matching
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.ValidateSync(); err != nil {
//	    log.Fatal(err)
//	}
package config
