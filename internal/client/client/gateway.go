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
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"

	"github.com/Sauce1o9/Elementopia-Mobile/internal/common"
	"github.com/Sauce1o9/Elementopia-Mobile/internal/cryptox"
	"github.com/Sauce1o9/Elementopia-Mobile/internal/logging"
)

const (
	DefaultTimeout           = 15 * time.Second
	DefaultDecorationTimeout = 2 * time.Second

	maxResponseBody = 1 << 20
)

// TokenSource yields the current bearer token, or "" when there is none.
type TokenSource interface {
	Load(ctx context.Context) (string, error)
}

// ExpiredFunc is called with the token a server rejected with 401.
type ExpiredFunc func(ctx context.Context, rejectedToken string)

// Request describes one API call. Path is relative to the gateway base URL.
type Request struct {
	Method string
	Path   string
	Body   any

	// Timeout overrides the gateway timeout for this call when positive.
	Timeout time.Duration

	// Public marks endpoints such as login where a 401 rejects credentials
	// rather than signalling an expired session.
	Public bool
}

type Gateway struct {
	baseURL           string
	httpClient        *http.Client
	tokens            TokenSource
	timeout           time.Duration
	decorationTimeout time.Duration
	retryMax          uint64
	retryBase         time.Duration
	logger            logging.Logger

	mu        sync.RWMutex
	onExpired ExpiredFunc
}

type Option func(*Gateway)

func WithTimeout(d time.Duration) Option {
	return func(g *Gateway) { g.timeout = d }
}

func WithHTTPClient(c *http.Client) Option {
	return func(g *Gateway) { g.httpClient = c }
}

func WithLogger(l logging.Logger) Option {
	return func(g *Gateway) { g.logger = l }
}

// WithRetry enables up to max retries of connectivity failures with
// exponential backoff starting at base. max == 0 disables retries.
func WithRetry(max uint64, base time.Duration) Option {
	return func(g *Gateway) {
		g.retryMax = max
		g.retryBase = base
	}
}

func WithDecorationTimeout(d time.Duration) Option {
	return func(g *Gateway) { g.decorationTimeout = d }
}

func NewGateway(baseURL string, tokens TokenSource, opts ...Option) *Gateway {
	g := &Gateway{
		baseURL:           strings.TrimRight(baseURL, "/"),
		httpClient:        &http.Client{},
		tokens:            tokens,
		timeout:           DefaultTimeout,
		decorationTimeout: DefaultDecorationTimeout,
		retryBase:         300 * time.Millisecond,
		logger:            logging.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Gateway) BaseURL() string { return g.baseURL }

// OnSessionExpired registers fn to run after a 401 on a non-public call
// that carried a token. A nil fn removes the hook.
func (g *Gateway) OnSessionExpired(fn ExpiredFunc) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onExpired = fn
}

// Do performs req and decodes a successful JSON response into out (which
// may be nil). Failures are classified as described in the package doc.
func (g *Gateway) Do(ctx context.Context, req Request, out any) error {
	var payload []byte
	if req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", req.Path, err)
		}
		payload = b
	}

	if g.retryMax == 0 || !idempotent(req.Method) {
		return g.roundTrip(ctx, req, payload, out)
	}

	backoff := retry.WithMaxRetries(g.retryMax, retry.NewExponential(g.retryBase))
	attempt := 0
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		err := g.roundTrip(ctx, req, payload, out)
		if errors.Is(err, ErrUnavailable) {
			g.logger.Warn(ctx, "connectivity failure, will retry", "method", req.Method, "path", req.Path, "attempt", attempt, "error", err)
			return retry.RetryableError(err)
		}
		return err
	})
}

func idempotent(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPut, http.MethodDelete, http.MethodOptions:
		return true
	}
	return false
}

func (g *Gateway) roundTrip(ctx context.Context, req Request, payload []byte, out any) error {
	timeout := g.timeout
	if req.Timeout > 0 {
		timeout = req.Timeout
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	url := g.baseURL + req.Path
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(callCtx, req.Method, url, body)
	if err != nil {
		return fmt.Errorf("build %s request: %w", req.Path, err)
	}

	requestID := uuid.NewString()
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(common.RequestIDHeaderName, requestID)

	token := g.decorate(ctx, httpReq)

	log := g.logger.With("method", req.Method, "path", req.Path, "request_id", requestID)

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return fmt.Errorf("%s %s: %w", req.Method, req.Path, ctx.Err())
		}
		log.Warn(ctx, "no response from server", "error", err)
		return &ConnectivityError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return fmt.Errorf("%s %s: %w", req.Method, req.Path, ctx.Err())
		}
		log.Warn(ctx, "response body interrupted", "status", resp.StatusCode, "error", err)
		return &ConnectivityError{URL: url, Err: err}
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if out == nil || len(bytes.TrimSpace(raw)) == 0 {
			return nil
		}
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode %s response: %w", req.Path, err)
		}
		return nil

	case resp.StatusCode == http.StatusUnauthorized:
		log.Warn(ctx, "unauthorized", "token", cryptox.Fingerprint(token))
		if token != "" && !req.Public {
			g.fireExpired(ctx, token)
		}
		return &SessionExpiredError{Endpoint: req.Path, Message: serverMessage(raw)}

	case resp.StatusCode == http.StatusForbidden:
		log.Error(ctx, "forbidden",
			"status", resp.StatusCode,
			"authenticated", token != "",
			"response_body", truncate(string(raw), 512),
		)
		return &ForbiddenError{Endpoint: req.Path, RequestID: requestID, Message: serverMessage(raw)}

	default:
		msg := serverMessage(raw)
		if msg == "" {
			msg = fmt.Sprintf("server error %d", resp.StatusCode)
		}
		log.Warn(ctx, "request failed", "status", resp.StatusCode, "message", msg)
		return &ServerError{Endpoint: req.Path, Status: resp.StatusCode, Body: string(raw), Message: msg}
	}
}

// decorate attaches the bearer token if one is available within the
// decoration timeout and returns the attached token.
func (g *Gateway) decorate(ctx context.Context, httpReq *http.Request) string {
	if g.tokens == nil {
		return ""
	}

	ctx, cancel := context.WithTimeout(ctx, g.decorationTimeout)
	defer cancel()

	type result struct {
		token string
		err   error
	}
	ch := make(chan result, 1)
	go func() {
		t, err := g.tokens.Load(ctx)
		ch <- result{t, err}
	}()

	var r result
	select {
	case r = <-ch:
	case <-ctx.Done():
		r.err = ctx.Err()
	}

	if r.err != nil {
		g.logger.Warn(ctx, "token retrieval failed, sending request without credentials", "error", r.err)
		return ""
	}
	if r.token != "" {
		httpReq.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+r.token)
	}
	return r.token
}

func (g *Gateway) fireExpired(ctx context.Context, token string) {
	g.mu.RLock()
	fn := g.onExpired
	g.mu.RUnlock()
	if fn != nil {
		fn(ctx, token)
	}
}

// serverMessage extracts "message" or "error" from a JSON body, or returns
// a short plain-text body as is.
func serverMessage(raw []byte) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}

	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		return body.Error
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	if raw[0] == '<' {
		return ""
	}
	return truncate(string(raw), 200)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
