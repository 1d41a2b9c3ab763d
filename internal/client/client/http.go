package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	cleanhttp "github.com/hashicorp/go-cleanhttp"
	retryablehttp "github.com/hashicorp/go-retryablehttp"

	"github.com/dmitrijs2005/tokenauth/internal/common"
)

// HTTPClient implements Client over the JSON API. Only GET requests are
// retried; POST requests are sent once since a repeated login issues an
// extra token.
type HTTPClient struct {
	baseURL string
	http    *retryablehttp.Client
	once    *retryablehttp.Client
}

func NewHTTPClient(baseURL string, maxRetries int, timeout time.Duration) *HTTPClient {
	hc := cleanhttp.DefaultPooledClient()
	hc.Timeout = timeout

	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    newRetryClient(hc, maxRetries),
		once:    newRetryClient(hc, 0),
	}
}

func newRetryClient(hc *http.Client, maxRetries int) *retryablehttp.Client {
	return &retryablehttp.Client{
		HTTPClient:   hc,
		RetryWaitMin: 200 * time.Millisecond,
		RetryWaitMax: 1500 * time.Millisecond,
		RetryMax:     maxRetries,
		Backoff:      retryablehttp.LinearJitterBackoff,
		CheckRetry:   retryablehttp.DefaultRetryPolicy,
		ErrorHandler: retryablehttp.PassthroughErrorHandler,
	}
}

func (c *HTTPClient) clientFor(method string) *retryablehttp.Client {
	if method == http.MethodGet {
		return c.http
	}
	return c.once
}

type envelope struct {
	Status    bool                `json:"status"`
	Message   string              `json:"message"`
	Errors    map[string][]string `json:"errors"`
	Token     string              `json:"token"`
	TokenType string              `json:"token_type"`
	User      *User               `json:"user"`
}

func (c *HTTPClient) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	var env envelope
	if err := c.do(ctx, http.MethodPost, "/register", "", req, &env); err != nil {
		return nil, err
	}
	if env.User == nil {
		return nil, errors.New("malformed register response")
	}
	return env.User, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, error) {
	var env envelope
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/login", "", body, &env); err != nil {
		return "", err
	}
	if env.Token == "" || !strings.EqualFold(env.TokenType, common.TokenTypeBearer) {
		return "", errors.New("malformed login response")
	}
	return env.Token, nil
}

func (c *HTTPClient) Logout(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/logout", token, nil, nil)
}

func (c *HTTPClient) Me(ctx context.Context, token string) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodGet, "/user", token, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", "", nil, nil)
}

func (c *HTTPClient) do(ctx context.Context, method, path, token string, in, out any) error {
	var body any
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = b
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+token)
	}

	resp, err := c.clientFor(method).Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var env envelope
		if json.Unmarshal(data, &env) == nil {
			apiErr.Message = env.Message
			apiErr.Errors = env.Errors
		}
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}
	return nil
}
