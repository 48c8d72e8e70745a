package catalog

import (
	"fmt"

	"catalog-sync/core/reconcile"
)

// MaxBatchSize is the largest number of entries WooCommerce accepts per batch call.
const MaxBatchSize = 100

// MaxVariationPageSize is the largest per_page value the variations endpoint accepts.
const MaxVariationPageSize = 100

const (
	productFields   = "id,name,type,sku,stock_quantity,catalog_visibility"
	variationFields = "id,sku,stock_quantity"
)

// APIError is the error body WooCommerce returns with non-2xx responses
// and inside rejected batch entries.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Code == "" && e.Message == "" {
		return "unexpected response"
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type stockUpdate struct {
	ManageStock   bool `json:"manage_stock"`
	StockQuantity int  `json:"stock_quantity"`
}

type visibilityUpdate struct {
	CatalogVisibility reconcile.Visibility `json:"catalog_visibility"`
}

type batchEntry struct {
	ID                int64                `json:"id"`
	ManageStock       bool                 `json:"manage_stock"`
	StockQuantity     int                  `json:"stock_quantity"`
	CatalogVisibility reconcile.Visibility `json:"catalog_visibility"`
}

type batchRequest struct {
	Update []batchEntry `json:"update"`
}

type batchResult struct {
	ID    int64     `json:"id"`
	Error *APIError `json:"error,omitempty"`
}

type batchResponse struct {
	Update []batchResult `json:"update"`
}
