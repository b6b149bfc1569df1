package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/trustlayerlabs/academy/internal/common"
)

// TokenSource returns the current bearer token, or "" when there is none.
type TokenSource func() string

// authMode says whether a call carries the bearer token.
type authMode int

const (
	authNone authMode = iota
	authOptional
	authRequired
)

const maxErrorBody = 64 << 10

type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

// NewHTTPClient builds a client for the API rooted at baseURL. tokens may be
// nil until a session manager exists; SetTokenSource wires it later.
func NewHTTPClient(baseURL string, timeout time.Duration, tokens TokenSource) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("api url %q must be http or https", baseURL)
	}

	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: &requestIDTransport{base: http.DefaultTransport},
		},
		tokens: tokens,
	}, nil
}

// SetTokenSource replaces the bearer token source.
func (c *HTTPClient) SetTokenSource(tokens TokenSource) {
	c.tokens = tokens
}

func (c *HTTPClient) token() string {
	if c.tokens == nil {
		return ""
	}
	return c.tokens()
}

// do issues one JSON request. in may be nil for bodiless calls; out may be
// nil when the response body is irrelevant.
func (c *HTTPClient) do(ctx context.Context, method, path string, mode authMode, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if mode != authNone {
		token := c.token()
		if token == "" && mode == authRequired {
			return common.ErrNotAuthenticated
		}
		if token != "" {
			req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %s %s: %v", common.ErrUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return newAPIError(resp.StatusCode, data)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: %s %s: empty body", common.ErrMalformedResponse, method, path)
		}
		return fmt.Errorf("%w: %s %s: %v", common.ErrMalformedResponse, method, path, err)
	}
	return nil
}
