package reconcile

import (
	"fmt"
	"strings"
)

// DataSourceError means the stock snapshot could not be read.
// It is fatal for a sync run: no mutation is attempted without a snapshot.
type DataSourceError struct {
	Op  string
	Err error
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("stock source %s: %v", e.Op, e.Err)
}

func (e *DataSourceError) Unwrap() error { return e.Err }

// CatalogTransportError means a catalog read or write failed.
// It aborts the remaining pages but never rolls back earlier ones.
type CatalogTransportError struct {
	// Op is the catalog operation, e.g. "list_products".
	Op string
	// Resource identifies the page or entity, e.g. "page 3" or "product 12".
	Resource string
	// StatusCode is the HTTP status, 0 for network failures.
	StatusCode int
	Err        error
}

func (e *CatalogTransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("catalog %s (%s): http %d: %v", e.Op, e.Resource, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("catalog %s (%s): %v", e.Op, e.Resource, e.Err)
}

func (e *CatalogTransportError) Unwrap() error { return e.Err }

// BatchRejection is one entry of a batch update the catalog refused.
type BatchRejection struct {
	ID      int64  `json:"id"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PartialBatchError means a simple-product batch was only partly applied.
// Rejected lists entries the catalog refused. When Err is nil every other entry
// was applied. When Err is set, sending stopped on a transport failure and only
// Accepted entries are known to be applied.
type PartialBatchError struct {
	Rejected []BatchRejection
	Accepted int
	Err      error
}

func (e *PartialBatchError) Error() string {
	ids := make([]string, 0, len(e.Rejected))
	for _, r := range e.Rejected {
		ids = append(ids, fmt.Sprintf("%d", r.ID))
	}
	if e.Err != nil {
		return fmt.Sprintf("batch update stopped after %d applied entries (rejected: %s): %v",
			e.Accepted, strings.Join(ids, ","), e.Err)
	}
	return fmt.Sprintf("batch update rejected %d entries: %s", len(e.Rejected), strings.Join(ids, ","))
}

func (e *PartialBatchError) Unwrap() error { return e.Err }
