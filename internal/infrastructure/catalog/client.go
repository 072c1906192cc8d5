package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/url"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/roomly/backend/internal/domain"
)

const maxAttempts = 3

// Client talks to the AI catalog API.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *rate.Limiter

	cacheTTL time.Duration
	cacheMu  sync.Mutex
	cache    map[string]cachedListing

	debug bool
}

type cachedListing struct {
	products []domain.Product
	expires  time.Time
}

// NewClient creates a catalog API client. cacheTTL bounds how long product
// listings are reused before hitting the API again; zero disables caching.
func NewClient(baseURL string, cacheTTL time.Duration) *Client {
	// The catalog API runs AI inference per request; keep our call rate
	// modest with room for short bursts.
	limiter := rate.NewLimiter(rate.Limit(5), 10)

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:     baseURL,
		rateLimiter: limiter,
		cacheTTL:    cacheTTL,
		cache:       make(map[string]cachedListing),
	}
}

// SetDebug toggles verbose request logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// ListProducts fetches the product catalog, optionally filtered by category.
// Listings are cached for the configured TTL.
func (c *Client) ListProducts(ctx context.Context, category string) ([]domain.Product, error) {
	if products, ok := c.cachedProducts(category); ok {
		return products, nil
	}

	endpoint := fmt.Sprintf("%s/products", c.baseURL)
	if category != "" {
		params := url.Values{}
		params.Add("category", category)
		endpoint = fmt.Sprintf("%s?%s", endpoint, params.Encode())
	}

	body, err := c.getWithRetry(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var listing struct {
		Products []domain.Product `json:"products"`
	}
	if err := json.Unmarshal(body, &listing); err != nil {
		log.Printf("[CATALOG] JSON decode error: %v", err)
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	c.storeCachedProducts(category, listing.Products)
	return listing.Products, nil
}

// GetProduct retrieves a single product by ID.
func (c *Client) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	endpoint := fmt.Sprintf("%s/products/%s", c.baseURL, url.PathEscape(id))

	body, err := c.getWithRetry(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var product domain.Product
	if err := json.Unmarshal(body, &product); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &product, nil
}

// SmartSearch runs an AI-assisted product search.
func (c *Client) SmartSearch(ctx context.Context, query, category string, limit int) ([]domain.Product, error) {
	log.Printf("[CATALOG] SmartSearch called with query: %q", query)

	payload := map[string]interface{}{
		"query": query,
	}
	if category != "" {
		payload["category"] = category
	}
	if limit > 0 {
		payload["limit"] = limit
	}

	body, err := c.postJSON(ctx, fmt.Sprintf("%s/search/smart", c.baseURL), payload)
	if err != nil {
		return nil, err
	}

	var result struct {
		Products []domain.Product `json:"products"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		log.Printf("[CATALOG] JSON decode error: %v", err)
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	log.Printf("[CATALOG] Found %d products for query: %q", len(result.Products), query)
	return result.Products, nil
}

// CompareProducts asks the catalog API for a comparison of two products.
func (c *Client) CompareProducts(ctx context.Context, firstID, secondID string) (*domain.ProductComparison, error) {
	payload := map[string]interface{}{
		"product_id_1": firstID,
		"product_id_2": secondID,
	}

	body, err := c.postJSON(ctx, fmt.Sprintf("%s/products/compare", c.baseURL), payload)
	if err != nil {
		return nil, err
	}

	var comparison domain.ProductComparison
	if err := json.Unmarshal(body, &comparison); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	comparison.FirstID = firstID
	comparison.SecondID = secondID
	return &comparison, nil
}

// AnalyzeRoomImage uploads a room photo for style analysis.
func (c *Client) AnalyzeRoomImage(ctx context.Context, filename string, image io.Reader) (*domain.RoomAnalysis, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/rooms/analyze", c.baseURL), &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("User-Agent", "Roomly/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: status %d, body: %s", domain.ErrCatalogUnavailable, resp.StatusCode, string(body))
	}

	var analysis domain.RoomAnalysis
	if err := json.NewDecoder(resp.Body).Decode(&analysis); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &analysis, nil
}

// getWithRetry executes a GET with rate limiting and up to maxAttempts
// retries on transient failures. A 404 short-circuits to ErrProductNotFound.
func (c *Client) getWithRetry(ctx context.Context, reqURL string) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			log.Printf("[CATALOG] Rate limiter error: %v", err)
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", "Roomly/1.0")

		if c.debug {
			log.Printf("[CATALOG] GET %s (attempt %d)", reqURL, attempt)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			log.Printf("[CATALOG] Request error (attempt %d): %v", attempt, err)
			lastErr = fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
			time.Sleep(time.Duration(attempt*500) * time.Millisecond)
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			log.Printf("[CATALOG] API error (attempt %d) - Status: %d, Body: %s", attempt, resp.StatusCode, string(body))
			if resp.StatusCode == http.StatusNotFound {
				return nil, domain.ErrProductNotFound
			}
			lastErr = fmt.Errorf("%w: status %d", domain.ErrCatalogUnavailable, resp.StatusCode)
			time.Sleep(time.Duration(attempt*500) * time.Millisecond)
			continue
		}

		return body, nil
	}

	log.Printf("[CATALOG] All retries failed for %s", reqURL)
	return nil, lastErr
}

func (c *Client) postJSON(ctx context.Context, reqURL string, payload interface{}) ([]byte, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", reqURL, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "Roomly/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrProductNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d, body: %s", domain.ErrCatalogUnavailable, resp.StatusCode, string(body))
	}
	return body, nil
}

func (c *Client) cachedProducts(category string) ([]domain.Product, bool) {
	if c.cacheTTL <= 0 {
		return nil, false
	}
	c.cacheMu.Lock()
	defer c.cacheMu.Unlock()

	entry, ok := c.cache[category]
	if !ok || time.Now().After(entry.expires) {
		return nil, false
	}
	out := make([]domain.Product, len(entry.products))
	copy(out, entry.products)
	return out, true
}

func (c *Client) storeCachedProducts(category string, products []domain.Product) {
	if c.cacheTTL <= 0 {
		return
	}
	c.cacheMu.Lock()
	defer c.cacheMu.Unlock()

	stored := make([]domain.Product, len(products))
	copy(stored, products)
	c.cache[category] = cachedListing{
		products: stored,
		expires:  time.Now().Add(c.cacheTTL),
	}
}
