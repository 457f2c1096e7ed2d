package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/five82/lair/internal/catalog"
)

const (
	defaultUserAgent = "lair/0.1"
	requestTimeout   = 10 * time.Second
	maxBodyBytes     = 8 << 20
)

// Client fetches a catalog document over HTTP.
type Client struct {
	url       *url.URL
	http      *http.Client
	userAgent string
}

// NewClient builds a Client for the catalog at rawURL.
func NewClient(rawURL string) (*Client, error) {
	u, err := parseURL(rawURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		url: u,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// URL returns the catalog address.
func (c *Client) URL() string { return c.url.String() }

func (c *Client) Load(ctx context.Context) ([]catalog.Item, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	body, err := c.do(ctx, http.MethodGet)
	if err != nil {
		return nil, err
	}
	return decodeJSON(body)
}

func (c *Client) do(ctx context.Context, method string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.url.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("catalog %s returned status %d", c.url.Path, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}

// decodeJSON accepts a bare array or an object with a "dragons" array.
func decodeJSON(data []byte) ([]catalog.Item, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("decode catalog: invalid json")
	}
	doc := gjson.ParseBytes(data)
	list := doc
	if !doc.IsArray() {
		list = doc.Get("dragons")
		if !list.IsArray() {
			return nil, fmt.Errorf("decode catalog: expected an array or a \"dragons\" array")
		}
	}

	var items []catalog.Item
	if err := json.Unmarshal([]byte(list.Raw), &items); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := catalog.Validate(items); err != nil {
		return nil, err
	}
	return items, nil
}

func parseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("catalog url is empty")
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse catalog url %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("catalog url %q: unsupported scheme %q", raw, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("catalog url %q: missing host", raw)
	}
	u.Fragment = ""
	return u, nil
}
