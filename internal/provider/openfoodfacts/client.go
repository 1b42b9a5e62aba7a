// Package openfoodfacts looks products up in the Open Food Facts database.
// Every upstream failure is logged and absorbed: callers only see "not found" or an empty list.
package openfoodfacts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/and161185/nutrilog/internal/model"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL      = "https://world.openfoodfacts.org"
	DefaultTimeout      = 5 * time.Second
	DefaultMaxRedirects = 3

	userAgent    = "nutrilog/1.0 (personal-use)"
	maxBodyBytes = 2 << 20
	fields       = "code,product_name,brands,nutriments,serving_quantity"
)

var errTooManyRedirects = errors.New("too many redirects")

// Client talks to the Open Food Facts HTTP API.
type Client struct {
	baseURL string
	hc      *http.Client
	log     *zap.Logger
}

// Options tune a Client. Zero values mean the defaults above.
type Options struct {
	BaseURL      string
	Timeout      time.Duration
	MaxRedirects int
	Transport    http.RoundTripper
}

// New constructs a Client with a bounded timeout and redirect cap.
func New(opts Options, log *zap.Logger) *Client {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	maxRedirects := opts.MaxRedirects
	if maxRedirects <= 0 {
		maxRedirects = DefaultMaxRedirects
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: base,
		hc: &http.Client{
			Timeout:   timeout,
			Transport: opts.Transport,
			CheckRedirect: func(_ *http.Request, via []*http.Request) error {
				if len(via) > maxRedirects {
					return errTooManyRedirects
				}
				return nil
			},
		},
		log: log.Named("openfoodfacts"),
	}
}

// LookupByBarcode fetches one product. ok is false when the product is unknown or
// the upstream failed in any way.
func (c *Client) LookupByBarcode(ctx context.Context, code string) (*model.Food, bool) {
	u := fmt.Sprintf("%s/api/v2/product/%s.json?fields=%s", c.baseURL, url.PathEscape(code), fields)
	var resp productResponse
	if err := c.getJSON(ctx, u, &resp); err != nil {
		c.logFailure("barcode lookup failed", err, zap.String("barcode", code))
		return nil, false
	}
	if resp.Status != 1 || resp.Product == nil {
		return nil, false
	}
	f := normalize(*resp.Product)
	f.Barcode = code
	return &f, true
}

// Search runs a text search and returns at most limit normalized products.
func (c *Client) Search(ctx context.Context, query string, limit int) []model.Food {
	if limit <= 0 {
		return []model.Food{}
	}
	q := url.Values{}
	q.Set("search_terms", strings.TrimSpace(query))
	q.Set("search_simple", "1")
	q.Set("action", "process")
	q.Set("json", "1")
	q.Set("page_size", fmt.Sprint(limit))
	q.Set("fields", fields)
	u := c.baseURL + "/cgi/search.pl?" + q.Encode()

	var resp searchResponse
	if err := c.getJSON(ctx, u, &resp); err != nil {
		c.logFailure("search failed", err, zap.String("query", query))
		return []model.Food{}
	}
	out := make([]model.Food, 0, len(resp.Products))
	for _, p := range resp.Products {
		if len(out) == limit {
			break
		}
		if name, ok := p.ProductName.(string); !ok || strings.TrimSpace(name) == "" {
			continue
		}
		f := normalize(p)
		f.Barcode = barcodeOf(p.Code)
		out = append(out, f)
	}
	return out
}

func (c *Client) getJSON(ctx context.Context, u string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		// unknown product
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(dst); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

func (c *Client) logFailure(msg string, err error, fs ...zap.Field) {
	fs = append(fs, zap.Error(err))
	if isTimeout(err) {
		c.log.Warn(msg+": timeout", fs...)
		return
	}
	c.log.Error(msg, fs...)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func barcodeOf(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}
