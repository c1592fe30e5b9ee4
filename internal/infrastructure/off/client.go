package off

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"github.com/nutriswap/backend/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// identifierPattern extracts product codes from the HTML fragment returned by
// the Open Food Facts search pages.
var identifierPattern = regexp.MustCompile(`/produit/(\d+)/`)

// Client handles communication with the Open Food Facts service.
// Search endpoints return HTML fragments; the lookup endpoint returns JSON.
type Client struct {
	httpClient    *http.Client
	searchBaseURL string
	apiBaseURL    string
	rateLimiter   *rate.Limiter
	logger        *zap.Logger
}

// ClientConfig holds the remote endpoints and request budget for the client
type ClientConfig struct {
	SearchBaseURL  string
	APIBaseURL     string
	Timeout        time.Duration
	RequestsPerSec float64
	Burst          int
}

// NewClient creates a new Open Food Facts client
func NewClient(cfg ClientConfig, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	rps := cfg.RequestsPerSec
	if rps == 0 {
		rps = 10
	}
	burst := cfg.Burst
	if burst == 0 {
		burst = 20
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		searchBaseURL: cfg.SearchBaseURL,
		apiBaseURL:    cfg.APIBaseURL,
		rateLimiter:   rate.NewLimiter(rate.Limit(rps), burst),
		logger:        logger,
	}
}

// doRequest executes an HTTP GET request with proper headers and error handling
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "NutriSwap/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	return resp, nil
}

// searchIdentifiers runs one search page request and extracts product codes.
// An empty extraction is a valid, empty result.
func (c *Client) searchIdentifiers(ctx context.Context, reqURL string) ([]string, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	resp, err := c.doRequest(ctx, reqURL)
	if err != nil {
		c.logger.Warn("catalog search transport failure", zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("catalog search returned non-OK status",
			zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: status %d", domain.ErrCatalogUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	matches := identifierPattern.FindAllStringSubmatch(string(body), -1)
	identifiers := make([]string, 0, len(matches))
	for _, m := range matches {
		identifiers = append(identifiers, m[1])
	}

	c.logger.Debug("catalog search completed",
		zap.String("url", reqURL),
		zap.Int("identifiers", len(identifiers)))
	return identifiers, nil
}

// SearchIdentifiers resolves a free-text query to product codes
func (c *Client) SearchIdentifiers(ctx context.Context, query string) ([]string, error) {
	reqURL := fmt.Sprintf("%s/cgi/search.pl?search_terms=%s",
		c.searchBaseURL, url.QueryEscape(query))
	return c.searchIdentifiers(ctx, reqURL)
}

// SearchByCategoryGrade returns codes of products in a category at a grade letter
func (c *Client) SearchByCategoryGrade(ctx context.Context, category string, grade byte) ([]string, error) {
	return c.searchIdentifiers(ctx, c.categoryURL(category, "nutrition_grades", string(grade)))
}

// SearchByCategoryNova returns codes of products in a category at a nova group
func (c *Client) SearchByCategoryNova(ctx context.Context, category string, nova int) ([]string, error) {
	return c.searchIdentifiers(ctx, c.categoryURL(category, "nova_groups", fmt.Sprintf("%d", nova)))
}

// categoryURL builds the two-tag search URL filtering a category by a quality tag
func (c *Client) categoryURL(category, tagType, tagValue string) string {
	params := url.Values{}
	params.Add("action", "process")
	params.Add("tagtype_0", "categories")
	params.Add("tag_contains_0", "contains")
	params.Add("tag_0", category)
	params.Add("tagtype_1", tagType)
	params.Add("tag_contains_1", "contains")
	params.Add("tag_1", tagValue)
	params.Add("sort_by", "unique_scans_n")
	params.Add("page_size", "20")

	return fmt.Sprintf("%s/cgi/search.pl?%s", c.searchBaseURL, params.Encode())
}

// lookupResponse wraps the per-product JSON endpoint payload
type lookupResponse struct {
	Product *domain.RemoteProduct `json:"product"`
}

// FetchProduct retrieves the raw payload for one product code.
// Not-found and transport faults are both soft failures for callers; they are
// distinguished here in logs only. No retries: escalation is the search
// engine's job.
func (c *Client) FetchProduct(ctx context.Context, code string) (*domain.RemoteProduct, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	reqURL := fmt.Sprintf("%s/api/v0/product/%s.json", c.apiBaseURL, url.PathEscape(code))

	resp, err := c.doRequest(ctx, reqURL)
	if err != nil {
		c.logger.Warn("catalog lookup transport failure",
			zap.String("code", code), zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrProductNotFound
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("catalog lookup returned non-OK status",
			zap.String("code", code), zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: status %d", domain.ErrCatalogUnavailable, resp.StatusCode)
	}

	var lookup lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&lookup); err != nil {
		c.logger.Warn("catalog lookup body malformed",
			zap.String("code", code), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	if lookup.Product == nil {
		return nil, domain.ErrProductNotFound
	}

	return lookup.Product, nil
}
