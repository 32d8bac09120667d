package sales

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/smartcafe/demand-forecast/internal/domain/forecast"
)

const defaultMaxBodyBytes = 32 << 20

var errBodyTooLarge = errors.New("sales history response exceeds size limit")

// Options configures the backend client.
type Options struct {
	BaseURL string
	// Timeout bounds the whole request. Zero means no client-side timeout.
	Timeout            time.Duration
	MaxBodyBytes       int64
	InsecureSkipVerify bool
	CAFile             string
}

// Client fetches the sales history from the backend analytics API.
type Client struct {
	baseURL    string
	maxBody    int64
	httpClient *http.Client
}

// NewClient builds an API client with the configured trust settings.
func NewClient(opts Options) (*Client, error) {
	baseURL := strings.TrimSpace(opts.BaseURL)
	if baseURL == "" {
		return nil, errors.New("sales base url cannot be empty")
	}
	tlsCfg, err := buildTLSConfig(opts)
	if err != nil {
		return nil, err
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = tlsCfg

	maxBody := opts.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBodyBytes
	}
	return &Client{
		baseURL: baseURL,
		maxBody: maxBody,
		httpClient: &http.Client{
			Timeout:   opts.Timeout,
			Transport: transport,
		},
	}, nil
}

func buildTLSConfig(opts Options) (*tls.Config, error) {
	cfg := &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: opts.InsecureSkipVerify,
	}
	if opts.CAFile == "" {
		return cfg, nil
	}
	pem, err := os.ReadFile(opts.CAFile)
	if err != nil {
		return nil, fmt.Errorf("read sales ca file: %w", err)
	}
	pool, err := x509.SystemCertPool()
	if err != nil || pool == nil {
		pool = x509.NewCertPool()
	}
	if !pool.AppendCertsFromPEM(pem) {
		return nil, fmt.Errorf("no certificates found in %s", opts.CAFile)
	}
	cfg.RootCAs = pool
	return cfg, nil
}

// FetchSalesHistory retrieves every sales record known to the backend.
func (c *Client) FetchSalesHistory(ctx context.Context) ([]forecast.SalesRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build sales request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sales request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("sales request error: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("read sales response: %w", err)
	}
	if int64(len(body)) > c.maxBody {
		return nil, errBodyTooLarge
	}

	var raw []record
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode sales response: %w", err)
	}
	return normalizeRecords(raw)
}

type record struct {
	MenuItemID int    `json:"menuItemId"`
	Date       string `json:"date"`
	Quantity   int    `json:"quantity"`
}

func normalizeRecords(raw []record) ([]forecast.SalesRecord, error) {
	out := make([]forecast.SalesRecord, 0, len(raw))
	for i, rec := range raw {
		date, err := parseDate(rec.Date)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		out = append(out, forecast.SalesRecord{
			MenuItemID: rec.MenuItemID,
			Date:       date,
			Quantity:   rec.Quantity,
		})
	}
	return out, nil
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// parseDate keeps the calendar day as written by the backend, whatever its offset.
func parseDate(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, trimmed); err == nil {
			y, m, d := ts.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}
