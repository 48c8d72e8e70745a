package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"catalog-sync/core/reconcile"
	"catalog-sync/core/utils"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const userAgent = "catalog-sync"

var _ reconcile.Catalog = (*Client)(nil)

// Client talks to the WooCommerce REST API.
type Client struct {
	baseURL    string
	key        string
	secret     string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *zap.Logger
	maxRetries int
	baseDelay  time.Duration
	maxDelay   time.Duration
}

// NewClient creates a WooCommerce client from configuration.
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("catalog base url is required")
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("invalid catalog base url: %w", err)
	}

	version := strings.Trim(cfg.APIVersion, "/")
	if version == "" {
		version = "wc/v3"
	}

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          20,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	retries := cfg.MaxRetries
	if retries < 0 {
		retries = 0
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		baseURL:    base + "/wp-json/" + version,
		key:        cfg.ConsumerKey,
		secret:     cfg.ConsumerSecret,
		httpClient: &http.Client{Timeout: timeoutDuration, Transport: transport},
		limiter:    rate.NewLimiter(limit, 1),
		logger:     logger,
		maxRetries: retries,
		baseDelay:  250 * time.Millisecond,
		maxDelay:   5 * time.Second,
	}, nil
}

// ListProductsPage returns one page of products ordered by id.
func (c *Client) ListProductsPage(ctx context.Context, page, pageSize int) ([]reconcile.Product, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(pageSize))
	q.Set("orderby", "id")
	q.Set("order", "asc")
	q.Set("_fields", productFields)

	var raws []json.RawMessage
	err := c.doJSON(ctx, "list_products", fmt.Sprintf("page %d", page), http.MethodGet, "/products", q, nil, &raws)
	if err != nil {
		return nil, err
	}
	return decodeEach(raws, func(id int64, name string, err error) reconcile.Product {
		c.logger.Warn("Malformed product in catalog page", zap.Int("page", page), zap.Int64("product_id", id), zap.Error(err))
		return reconcile.Product{ID: id, Name: name, DecodeError: err.Error()}
	}), nil
}

// ListVariations returns the first page of a product's variations.
func (c *Client) ListVariations(ctx context.Context, productID int64, pageSize int) ([]reconcile.Variation, error) {
	if pageSize <= 0 || pageSize > MaxVariationPageSize {
		pageSize = MaxVariationPageSize
	}
	q := url.Values{}
	q.Set("per_page", strconv.Itoa(pageSize))
	q.Set("_fields", variationFields)

	var raws []json.RawMessage
	path := fmt.Sprintf("/products/%d/variations", productID)
	err := c.doJSON(ctx, "list_variations", fmt.Sprintf("product %d", productID), http.MethodGet, path, q, nil, &raws)
	if err != nil {
		return nil, err
	}
	return decodeEach(raws, func(id int64, _ string, err error) reconcile.Variation {
		c.logger.Warn("Malformed variation", zap.Int64("product_id", productID), zap.Int64("variation_id", id), zap.Error(err))
		return reconcile.Variation{ID: id, DecodeError: err.Error()}
	}), nil
}

// UpdateVariationStock enables stock management on a variation and sets its quantity.
func (c *Client) UpdateVariationStock(ctx context.Context, productID, variationID int64, quantity int) error {
	path := fmt.Sprintf("/products/%d/variations/%d", productID, variationID)
	resource := fmt.Sprintf("product %d variation %d", productID, variationID)
	body := stockUpdate{ManageStock: true, StockQuantity: quantity}
	return c.doJSON(ctx, "update_variation", resource, http.MethodPut, path, nil, body, nil)
}

// UpdateProductVisibility sets a product's catalog visibility.
func (c *Client) UpdateProductVisibility(ctx context.Context, productID int64, visibility reconcile.Visibility) error {
	path := fmt.Sprintf("/products/%d", productID)
	body := visibilityUpdate{CatalogVisibility: visibility}
	return c.doJSON(ctx, "update_visibility", fmt.Sprintf("product %d", productID), http.MethodPut, path, nil, body, nil)
}

// BatchUpdateSimpleProducts sends updates in chunks of MaxBatchSize.
// Entries WooCommerce rejects are collected across chunks and returned as one
// *reconcile.PartialBatchError once every chunk has been sent. When a chunk
// fails after earlier chunks were applied, the PartialBatchError carries the
// applied count and the failure in Err.
func (c *Client) BatchUpdateSimpleProducts(ctx context.Context, updates []reconcile.SimpleUpdate) error {
	var rejected []reconcile.BatchRejection
	accepted := 0

	for start := 0; start < len(updates); start += MaxBatchSize {
		end := min(start+MaxBatchSize, len(updates))
		chunk := updates[start:end]

		req := batchRequest{Update: make([]batchEntry, 0, len(chunk))}
		for _, u := range chunk {
			req.Update = append(req.Update, batchEntry{
				ID:                u.ID,
				ManageStock:       true,
				StockQuantity:     u.Quantity,
				CatalogVisibility: u.Visibility,
			})
		}

		var resp batchResponse
		resource := fmt.Sprintf("entries %d-%d", start+1, end)
		if err := c.doJSON(ctx, "batch_update", resource, http.MethodPost, "/products/batch", nil, req, &resp); err != nil {
			if start == 0 {
				return err
			}
			return &reconcile.PartialBatchError{Rejected: rejected, Accepted: accepted, Err: err}
		}

		chunkRejected := 0
		for _, r := range resp.Update {
			if r.Error == nil {
				continue
			}
			chunkRejected++
			rejected = append(rejected, reconcile.BatchRejection{
				ID:      r.ID,
				Code:    r.Error.Code,
				Message: r.Error.Message,
			})
		}
		accepted += len(chunk) - chunkRejected
	}

	if len(rejected) > 0 {
		return &reconcile.PartialBatchError{Rejected: rejected, Accepted: accepted}
	}
	return nil
}

// decodeEach decodes list elements one by one so a single malformed entry does
// not take the rest of the list down. malformed builds the placeholder for an
// entry that failed, given whatever id and name could still be read from it.
func decodeEach[T any](raws []json.RawMessage, malformed func(id int64, name string, err error) T) []T {
	out := make([]T, 0, len(raws))
	for _, raw := range raws {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			id, name := identify(raw)
			v = malformed(id, name, err)
		}
		out = append(out, v)
	}
	return out
}

// identify reads id and name from an entry that failed to decode. An id sent
// as a numeric string is still recovered.
func identify(raw json.RawMessage) (int64, string) {
	var head struct {
		ID   any `json:"id"`
		Name any `json:"name"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return 0, ""
	}
	name, _ := head.Name.(string)
	return int64(utils.ToInt(head.ID)), name
}

// doJSON sends one request with retries and decodes a 2xx body into out.
func (c *Client) doJSON(
	ctx context.Context,
	op, resource, method, path string,
	query url.Values,
	body any,
	out any,
) error {
	fail := func(status int, err error) error {
		return &reconcile.CatalogTransportError{Op: op, Resource: resource, StatusCode: status, Err: err}
	}

	var bodyBytes []byte
	if body != nil {
		var err error
		bodyBytes, err = json.Marshal(body)
		if err != nil {
			return fail(0, fmt.Errorf("encode request: %w", err))
		}
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	for attempt := 0; ; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return fail(0, err)
		}

		var bodyReader io.Reader
		if bodyBytes != nil {
			bodyReader = bytes.NewReader(bodyBytes)
		}
		req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
		if err != nil {
			return fail(0, err)
		}
		req.SetBasicAuth(c.key, c.secret)
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", userAgent)
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if attempt < c.maxRetries && ctx.Err() == nil {
				c.logRetry(op, resource, attempt, 0, err)
				if waitErr := waitWithContext(ctx, c.retryDelay(attempt+1, "")); waitErr != nil {
					return fail(0, waitErr)
				}
				continue
			}
			return fail(0, err)
		}
		payload, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			return fail(resp.StatusCode, readErr)
		}

		if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
			if out == nil || len(payload) == 0 {
				return nil
			}
			if err := json.Unmarshal(payload, out); err != nil {
				return fail(resp.StatusCode, fmt.Errorf("decode response: %w", err))
			}
			return nil
		}

		if retryable(resp.StatusCode) && attempt < c.maxRetries {
			c.logRetry(op, resource, attempt, resp.StatusCode, nil)
			if waitErr := waitWithContext(ctx, c.retryDelay(attempt+1, resp.Header.Get("Retry-After"))); waitErr != nil {
				return fail(resp.StatusCode, waitErr)
			}
			continue
		}

		apiErr := &APIError{}
		_ = json.Unmarshal(payload, apiErr)
		return fail(resp.StatusCode, apiErr)
	}
}

func (c *Client) logRetry(op, resource string, attempt, status int, err error) {
	c.logger.Warn("Retrying catalog request",
		zap.String("op", op),
		zap.String("resource", resource),
		zap.Int("attempt", attempt+1),
		zap.Int("status", status),
		zap.Error(err),
	)
}

func retryable(status int) bool {
	return status == http.StatusTooManyRequests || (status >= 500 && status <= 599)
}

func (c *Client) retryDelay(attempt int, retryAfterHeader string) time.Duration {
	maxDelay := c.maxDelay
	if maxDelay <= 0 {
		maxDelay = 5 * time.Second
	}
	if retryAfter := parseRetryAfter(retryAfterHeader); retryAfter > 0 {
		return min(retryAfter, maxDelay)
	}
	delay := c.baseDelay
	if delay <= 0 {
		delay = 250 * time.Millisecond
	}
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= maxDelay {
			return maxDelay
		}
	}
	return min(delay, maxDelay)
}

func parseRetryAfter(header string) time.Duration {
	header = strings.TrimSpace(header)
	if header == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(header); err == nil && seconds >= 0 {
		return time.Duration(seconds) * time.Second
	}
	if ts, err := http.ParseTime(header); err == nil {
		if delta := time.Until(ts); delta > 0 {
			return delta
		}
	}
	return 0
}

func waitWithContext(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
