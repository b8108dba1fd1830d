package frontend

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/samirrijal/restofinder/internal/core/domain"
)

// DefaultBaseURL is where the API listens in local development.
const DefaultBaseURL = "http://localhost:3000"

// StatusError is a non-2xx answer from the API.
type StatusError struct {
	Status  int
	Message string
	Details string
}

func (e *StatusError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("api: %d %s: %s", e.Status, e.Message, e.Details)
	}
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// APIClient calls the restaurant endpoints over HTTP.
type APIClient struct {
	baseURL string
	timeout time.Duration
	http    *fasthttp.Client
}

// ClientOption configures an APIClient.
type ClientOption func(*APIClient)

// WithTimeout bounds each call. Zero keeps the 30s default.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *APIClient) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithDial replaces the TCP dialer, e.g. with an in-memory listener.
func WithDial(dial func(addr string) (net.Conn, error)) ClientOption {
	return func(c *APIClient) { c.http.Dial = dial }
}

// NewAPIClient creates a client for the API at baseURL.
func NewAPIClient(baseURL string, opts ...ClientOption) *APIClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: 30 * time.Second,
		http: &fasthttp.Client{
			Name:                "restofinder-client",
			MaxIdleConnDuration: time.Minute,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// FetchRestaurants requests one page of results for params.
func (c *APIClient) FetchRestaurants(ctx context.Context, params url.Values) (*domain.PagedResult, error) {
	var page domain.PagedResult
	if err := c.get(ctx, "/restaurants", params, &page); err != nil {
		return nil, err
	}
	if page.Items == nil {
		page.Items = []domain.RestaurantSummary{}
	}
	return &page, nil
}

// FetchRestaurantDetails requests the detail record for id.
func (c *APIClient) FetchRestaurantDetails(ctx context.Context, id string) (*domain.RestaurantDetail, error) {
	var body struct {
		Result *domain.RestaurantDetail `json:"result"`
	}
	if err := c.get(ctx, "/restaurants/"+url.PathEscape(id), nil, &body); err != nil {
		return nil, err
	}
	if body.Result == nil {
		return nil, fmt.Errorf("api: empty result for %q", id)
	}
	return body.Result, nil
}

func (c *APIClient) get(ctx context.Context, path string, q url.Values, out interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	uri := c.baseURL + path
	if len(q) > 0 {
		uri += "?" + q.Encode()
	}
	req.SetRequestURI(uri)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}

	if status := resp.StatusCode(); status != fasthttp.StatusOK {
		var apiErr struct {
			Error   string `json:"error"`
			Details string `json:"details"`
		}
		_ = json.Unmarshal(resp.Body(), &apiErr)
		if apiErr.Error == "" {
			apiErr.Error = fasthttp.StatusMessage(status)
		}
		return &StatusError{Status: status, Message: apiErr.Error, Details: apiErr.Details}
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("GET %s: decode: %w", path, err)
	}
	return nil
}
