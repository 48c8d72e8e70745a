package inventory

// Config holds configuration for the inventory sync.
type Config struct {
	// PageSize is the number of products requested per catalog page.
	PageSize int `mapstructure:"page_size" default:"20"`
	// VariationPageSize is the per_page used for variations (capped at 100).
	VariationPageSize int `mapstructure:"variation_page_size" default:"100"`
	// MaxPages stops a run that keeps receiving pages. 0 disables the guard.
	MaxPages int `mapstructure:"max_pages" default:"500"`
	// VariationConcurrency bounds parallel variation calls for one page.
	VariationConcurrency int `mapstructure:"variation_concurrency" default:"1"`
	// DryRun plans every mutation but sends none.
	DryRun bool `mapstructure:"dry_run" default:"false"`
	// StockView is the table or view holding the authoritative stock.
	StockView string `mapstructure:"stock_view" default:"vista_stock_web"`
	// SKUColumn is the SKU column of StockView.
	SKUColumn string `mapstructure:"sku_column" default:"sku"`
	// QuantityColumn is the total stock column of StockView.
	QuantityColumn string `mapstructure:"quantity_column" default:"stock_total_web"`
}

func (c Config) pageSize() int {
	if c.PageSize <= 0 {
		return 20
	}
	return c.PageSize
}

func (c Config) variationPageSize() int {
	if c.VariationPageSize <= 0 || c.VariationPageSize > 100 {
		return 100
	}
	return c.VariationPageSize
}

func (c Config) variationConcurrency() int {
	if c.VariationConcurrency < 1 {
		return 1
	}
	return c.VariationConcurrency
}
