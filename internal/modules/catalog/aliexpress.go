package catalog

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Client talks to the AliExpress affiliate API. Every request carries the
// signed base parameter set; the supplier rejects requests whose signature
// does not match byte-for-byte.
type Client struct {
	appKey     string
	appSecret  string
	trackingID string
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
	now        func() time.Time
}

func NewClient(appKey, appSecret, trackingID, baseURL string, logger *zap.Logger) *Client {
	return &Client{
		appKey:     appKey,
		appSecret:  appSecret,
		trackingID: trackingID,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
		now:        time.Now,
	}
}

// Sign computes the request signature: keys sorted in byte order, key+value
// pairs concatenated with no separator, wrapped in the shared secret on
// both sides, MD5-hashed and hex-encoded uppercase.
func (c *Client) Sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(c.appSecret)
	for _, k := range keys {
		b.WriteString(k)
		b.WriteString(params[k])
	}
	b.WriteString(c.appSecret)

	sum := md5.Sum([]byte(b.String()))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

func (c *Client) baseParams() map[string]string {
	return map[string]string{
		"app_key":     c.appKey,
		"timestamp":   c.now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		"sign_method": "md5",
		"format":      "json",
		"v":           "2.0",
		"tracking_id": c.trackingID,
	}
}

// request assembles and signs the parameter set, issues the call and
// decodes the JSON body into out. A single attempt; failures are wrapped
// descriptively and surface to the caller without retries.
func (c *Client) request(ctx context.Context, method string, params map[string]string, out interface{}) error {
	all := c.baseParams()
	all["method"] = method
	for k, v := range params {
		all[k] = v
	}
	all["sign"] = c.Sign(all)

	query := url.Values{}
	for k, v := range all {
		query.Set(k, v)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build supplier request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("supplier request failed", zap.String("method", method), zap.Error(err))
		return fmt.Errorf("فشل طلب علي إكسبريس: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read supplier response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Error("supplier returned non-200",
			zap.String("method", method), zap.Int("status", resp.StatusCode))
		return fmt.Errorf("فشل طلب علي إكسبريس: status %d", resp.StatusCode)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode supplier response: %w", err)
	}
	return nil
}

// SearchParams are the caller-facing product search parameters. Currency,
// language and ship-to country are fixed for the Saudi storefront.
type SearchParams struct {
	Keywords   string
	CategoryID string
	Page       int
	PageSize   int
	Sort       string
	MinPrice   string
	MaxPrice   string
}

func (c *Client) SearchProducts(ctx context.Context, p SearchParams) (*SupplierProductsResponse, error) {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = 20
	}
	if p.Sort == "" {
		p.Sort = "SALE_PRICE_ASC"
	}

	params := map[string]string{
		"page_no":         strconv.Itoa(p.Page),
		"page_size":       strconv.Itoa(p.PageSize),
		"sort_by":         p.Sort,
		"ship_to_country": "SA",
		"target_currency": "SAR",
		"target_language": "ar",
	}
	if p.Keywords != "" {
		params["keywords"] = p.Keywords
	}
	if p.CategoryID != "" {
		params["category_ids"] = p.CategoryID
	}
	if p.MinPrice != "" {
		params["min_sale_price"] = p.MinPrice
	}
	if p.MaxPrice != "" {
		params["max_sale_price"] = p.MaxPrice
	}

	var out SupplierProductsResponse
	if err := c.request(ctx, "aliexpress.affiliate.product.query", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ProductDetails(ctx context.Context, productID string) (*SupplierProductsResponse, error) {
	var out SupplierProductsResponse
	err := c.request(ctx, "aliexpress.affiliate.product.details.get",
		map[string]string{"product_ids": productID}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Categories(ctx context.Context) (*SupplierCategoriesResponse, error) {
	var out SupplierCategoriesResponse
	if err := c.request(ctx, "aliexpress.affiliate.category.get", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
