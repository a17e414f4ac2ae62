package tablestore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	defaultTimeout        = 10 * time.Second
	defaultPageSize       = 100
	errorBodyLimit  int64 = 4096
)

var (
	errBaseURLRequired = errors.New("table store base url is required")
	errTokenRequired   = errors.New("table store token is required")
	errBaseURLInvalid  = errors.New("table store base url must be absolute")

	// ErrForeignNextURL is returned when a page links to another origin.
	ErrForeignNextURL = errors.New("table store next url points to a different origin")
)

// APIError is returned for any non-2xx response.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("table store returned status %d: %s", e.StatusCode, e.Body)
}

// IsNotFound reports whether err is a 404 from the table store.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Client talks to a hosted tabular record store whose rows are addressed by
// table id and use user field names.
type Client struct {
	httpClient *http.Client
	baseURL    string
	origin     *url.URL
	token      string
	timeout    time.Duration
	pageSize   int
}

type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout bounds every request made by the client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

func WithPageSize(size int) Option {
	return func(c *Client) {
		if size > 0 {
			c.pageSize = size
		}
	}
}

func NewClient(baseURL, token string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errBaseURLRequired
	}

	origin, err := url.Parse(baseURL)
	if err != nil || origin.Scheme == "" || origin.Host == "" {
		return nil, errBaseURLInvalid
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errTokenRequired
	}

	client := &Client{
		httpClient: &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
		baseURL:    baseURL,
		origin:     origin,
		token:      token,
		timeout:    defaultTimeout,
		pageSize:   defaultPageSize,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	return client, nil
}

func (c *Client) rowsURL(tableID int64, rowID int64, query url.Values) string {

	path := fmt.Sprintf("%s/api/database/rows/table/%d/", c.baseURL, tableID)
	if rowID > 0 {
		path += strconv.FormatInt(rowID, 10) + "/"
	}

	if query == nil {
		query = url.Values{}
	}
	query.Set("user_field_names", "true")

	return path + "?" + query.Encode()
}

// do sends body as JSON when non-nil and decodes a 2xx response into out when
// out is non-nil.
func (c *Client) do(ctx context.Context, method, rawURL string, body, out any) error {

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Authorization", "Token "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s failed: %w", method, req.URL.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

type page[T any] struct {
	Count   int     `json:"count"`
	Next    *string `json:"next"`
	Results []T     `json:"results"`
}

// ListRows returns every row of a table matching filter, following the
// paginated next links until exhausted.
func ListRows[T any](ctx context.Context, c *Client, tableID int64, filter *Filter) ([]T, error) {

	query := url.Values{}
	query.Set("size", strconv.Itoa(c.pageSize))
	if filter != nil {
		encoded, err := filter.Encode()
		if err != nil {
			return nil, err
		}
		query.Set("filters", encoded)
	}

	next := c.rowsURL(tableID, 0, query)
	var rows []T

	for next != "" {
		var p page[T]
		if err := c.do(ctx, http.MethodGet, next, nil, &p); err != nil {
			return nil, fmt.Errorf("failed to list rows of table %d: %w", tableID, err)
		}

		rows = append(rows, p.Results...)

		next = ""
		if p.Next != nil {
			if err := c.checkOrigin(*p.Next); err != nil {
				return nil, fmt.Errorf("failed to list rows of table %d: %w", tableID, err)
			}
			next = *p.Next
		}
	}

	return rows, nil
}

// checkOrigin keeps the auth token on the configured host.
func (c *Client) checkOrigin(rawURL string) error {

	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid next url: %w", err)
	}

	if !strings.EqualFold(u.Scheme, c.origin.Scheme) || !strings.EqualFold(u.Host, c.origin.Host) {
		return fmt.Errorf("%w: %s", ErrForeignNextURL, u.Host)
	}

	return nil
}

func GetRow[T any](ctx context.Context, c *Client, tableID, rowID int64) (*T, error) {

	var row T
	if err := c.do(ctx, http.MethodGet, c.rowsURL(tableID, rowID, nil), nil, &row); err != nil {
		return nil, fmt.Errorf("failed to get row %d of table %d: %w", rowID, tableID, err)
	}

	return &row, nil
}

// CreateRow posts body and decodes the created row, which carries its id.
func CreateRow[T any](ctx context.Context, c *Client, tableID int64, body any) (*T, error) {

	var row T
	if err := c.do(ctx, http.MethodPost, c.rowsURL(tableID, 0, nil), body, &row); err != nil {
		return nil, fmt.Errorf("failed to create row in table %d: %w", tableID, err)
	}

	return &row, nil
}

// UpdateRow patches only the fields present in body.
func UpdateRow[T any](ctx context.Context, c *Client, tableID, rowID int64, body any) (*T, error) {

	var row T
	if err := c.do(ctx, http.MethodPatch, c.rowsURL(tableID, rowID, nil), body, &row); err != nil {
		return nil, fmt.Errorf("failed to update row %d of table %d: %w", rowID, tableID, err)
	}

	return &row, nil
}

func (c *Client) DeleteRow(ctx context.Context, tableID, rowID int64) error {

	if err := c.do(ctx, http.MethodDelete, c.rowsURL(tableID, rowID, nil), nil, nil); err != nil {
		return fmt.Errorf("failed to delete row %d of table %d: %w", rowID, tableID, err)
	}

	return nil
}

// Ping lists a single row of tableID to check reachability and credentials.
func (c *Client) Ping(ctx context.Context, tableID int64) error {

	query := url.Values{}
	query.Set("size", "1")

	return c.do(ctx, http.MethodGet, c.rowsURL(tableID, 0, query), nil, nil)
}
