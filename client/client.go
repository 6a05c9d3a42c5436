// Package client is a Go consumer of the pricelist API. It also models the
// price-list table's per-cell editing flow (see Table) and the terms viewer
// (see TermsView) the way the web frontend drives them.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a client for the API served at baseURL, e.g.
// "http://localhost:8000".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Product mirrors the API's product record.
type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	InPrice     *float64  `json:"in_price"`
	Price       float64   `json:"price"`
	Category    *string   `json:"category"`
	Description *string   `json:"description"`
	InStock     int       `json:"in_stock"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductUpdate is a partial field map sent to the update endpoint. Keys the
// server does not recognize are silently dropped on its side.
type ProductUpdate map[string]any

// Terms is one language's terms content keyed by section.
type Terms struct {
	Language string            `json:"language"`
	Terms    map[string]string `json:"terms"`
}

// APIError is a non-2xx response decoded from the API's error body.
type APIError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status=%d message=%q", e.StatusCode, e.Message)
}

func (c *Client) FetchProducts(ctx context.Context, category string) ([]Product, error) {
	path := "/api/products"
	if category != "" {
		path += "?category=" + url.QueryEscape(category)
	}

	var products []Product
	if err := c.do(ctx, http.MethodGet, path, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) FetchProduct(ctx context.Context, id int64) (Product, error) {
	var product Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/products/%d", id), nil, &product); err != nil {
		return Product{}, err
	}
	return product, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id int64, update ProductUpdate) (Product, error) {
	var product Product
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/products/%d", id), update, &product); err != nil {
		return Product{}, err
	}
	return product, nil
}

func (c *Client) FetchCategories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.do(ctx, http.MethodGet, "/api/products/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) FetchTerms(ctx context.Context, lang string) (Terms, error) {
	path := "/api/terms"
	if lang != "" {
		path += "?lang=" + url.QueryEscape(lang)
	}

	var terms Terms
	if err := c.do(ctx, http.MethodGet, path, nil, &terms); err != nil {
		return Terms{}, err
	}
	return terms, nil
}

func (c *Client) FetchTermsSections(ctx context.Context) ([]string, error) {
	var sections []string
	if err := c.do(ctx, http.MethodGet, "/api/terms/sections", nil, &sections); err != nil {
		return nil, err
	}
	return sections, nil
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		if err := json.NewDecoder(resp.Body).Decode(&eb); err != nil {
			eb.Error = resp.Status
		}
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    eb.Error,
			Code:       eb.Code,
		}
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode response data: %w", err)
		}
	}

	return nil
}
