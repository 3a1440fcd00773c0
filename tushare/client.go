// Package tushare is a client for the Tushare Pro market data API.
//
// Every endpoint is served by a single URL: the request names the API, carries the
// token, the parameters and the wanted fields, and the answer is a table of rows.
// Client implements bankreport.Provider on top of the endpoints the report needs.
package tushare

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the Tushare Pro endpoint.
	DefaultBaseURL = "http://api.tushare.pro"

	// DefaultTimeout is the default HTTP timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultRateLimit is the default number of calls per minute, the quota of
	// an entry level account.
	DefaultRateLimit = 200
)

// Client is a Tushare Pro API client.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the timeout of each HTTP call.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithLogger sets a logger.
func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the number of calls allowed per minute. Calls beyond the
// quota wait for their turn.
func WithRateLimit(perMinute int) ClientOption {
	return func(c *Client) {
		c.limiter = newLimiter(perMinute)
	}
}

func newLimiter(perMinute int) *rate.Limiter {
	if perMinute <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1)
}

// NewClient creates a new Tushare Pro client. An empty token is accepted: the
// API then answers with its own permission errors.
func NewClient(token string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger:  zap.NewNop(),
		limiter: newLimiter(DefaultRateLimit),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HasToken reports whether the client authenticates its calls.
func (c *Client) HasToken() bool { return c.token != "" }

// request is the body of every API call.
type request struct {
	APIName string            `json:"api_name"`
	Token   string            `json:"token"`
	Params  map[string]string `json:"params"`
	Fields  string            `json:"fields"`
}

// call invokes api and returns the decoded table.
func (c *Client) call(ctx context.Context, api string, params map[string]string, fields []string) (*table, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%s: waiting for rate limiter: %w", api, err)
	}

	body, err := json.Marshal(request{APIName: api, Token: c.token, Params: params, Fields: strings.Join(fields, ",")})
	if err != nil {
		return nil, fmt.Errorf("%s: encoding request: %w", api, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%s: creating request: %w", api, err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", api, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &HTTPError{API: api, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}

	var jobj any
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber() // keep prices exact until they become decimals
	if err := dec.Decode(&jobj); err != nil {
		return nil, fmt.Errorf("%s: decoding response: %w", api, err)
	}
	t, err := decodeTable(api, jobj)
	c.logger.Debug("tushare call",
		zap.String("api", api),
		zap.Any("params", params),
		zap.Duration("duration", time.Since(start)),
		zap.Int("rows", t.len()),
		zap.Error(err),
	)
	return t, err
}
