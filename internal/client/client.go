package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/prolearn/prolearn-go/internal/dto"
	"github.com/prolearn/prolearn-go/internal/observability"
)

// Cache is an optional read-through cache for idempotent GET responses. The
// client invalidates affected keys after every mutation; a nil Cache disables
// caching entirely.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
	Invalidate(ctx context.Context, keys ...string)
}

// Hooks receives loading notifications around every API call. Both callbacks
// fire exactly once per call, end also on failure.
type Hooks struct {
	OnLoadingStart func()
	OnLoadingEnd   func()
}

// Client is a typed HTTP client for the ProLearn REST backend.
type Client struct {
	base   string
	http   *http.Client
	token  string
	logger zerolog.Logger
	tracer trace.Tracer
	hooks  Hooks
	cache  Cache
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithHooks installs loading listeners.
func WithHooks(h Hooks) Option {
	return func(c *Client) { c.hooks = h }
}

// WithCache installs a read-through cache for lesson/task/test reads.
func WithCache(cache Cache) Option {
	return func(c *Client) { c.cache = cache }
}

// WithToken sets the initial bearer token.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New constructs a Client for the given base URL.
func New(baseURL string, timeout time.Duration, logger zerolog.Logger, opts ...Option) *Client {
	c := &Client{
		base:   strings.TrimRight(baseURL, "/"),
		http:   &http.Client{Timeout: timeout},
		logger: logger.With().Str("component", "api_client").Logger(),
		tracer: otel.Tracer("prolearn/client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken replaces the bearer token used for subsequent calls. An empty
// token makes the client anonymous; public reads still work.
func (c *Client) SetToken(token string) { c.token = token }

// Token returns the current bearer token.
func (c *Client) Token() string { return c.token }

// url joins the base URL with a path. Absolute URLs pass through untouched.
func (c *Client) url(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.base + path
}

// do issues one API request and decodes a JSON response into T. An empty 2xx
// body yields the zero value. Non-2xx responses become *APIError.
//
// route is the path template used for metric labels, so ids do not explode
// label cardinality.
func do[T any](ctx context.Context, c *Client, method, route, path string, body any) (T, error) {
	var zero T

	if c.hooks.OnLoadingStart != nil {
		c.hooks.OnLoadingStart()
	}
	observability.APIInFlight().Inc()
	started := time.Now()

	ctx, span := c.tracer.Start(ctx, method+" "+route, trace.WithAttributes(
		attribute.String("http.method", method),
		attribute.String("http.route", route),
	))

	status := 0
	defer func() {
		span.End()
		observability.APIInFlight().Dec()
		observability.APILatency().WithLabelValues(method, route).Observe(time.Since(started).Seconds())
		observability.APIRequests().WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		if c.hooks.OnLoadingEnd != nil {
			c.hooks.OnLoadingEnd()
		}
	}()

	var reader io.Reader
	if body != nil {
		if err := dto.Validate(body); err != nil {
			span.SetStatus(codes.Error, "invalid request")
			return zero, fmt.Errorf("invalid request: %w", err)
		}
		encoded, err := json.Marshal(body)
		if err != nil {
			span.SetStatus(codes.Error, "encode request")
			return zero, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), reader)
	if err != nil {
		span.SetStatus(codes.Error, "build request")
		return zero, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		observability.APIErrors().WithLabelValues(method, route, "0").Inc()
		return zero, fmt.Errorf("%s %s: %w", method, route, err)
	}
	defer res.Body.Close()

	status = res.StatusCode
	span.SetAttributes(attribute.Int("http.status_code", status))

	text, err := io.ReadAll(res.Body)
	if err != nil {
		// Keep whatever was read; the error path below can still use it.
		c.logger.Warn().Err(err).Str("route", route).Msg("failed to drain response body")
	}

	if status < 200 || status > 299 {
		span.SetStatus(codes.Error, res.Status)
		observability.APIErrors().WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		return zero, parseAPIError(status, res.Status, text)
	}

	if len(bytes.TrimSpace(text)) == 0 {
		return zero, nil
	}
	var out T
	if err := json.Unmarshal(text, &out); err != nil {
		// Mirror the lenient success path of the original client: a 2xx body
		// that is not valid JSON resolves to the zero value.
		c.logger.Warn().Str("route", route).Msg("response body is not valid JSON")
		return zero, nil
	}
	return out, nil
}

// get is a cache-aware variant of do for idempotent reads.
func get[T any](ctx context.Context, c *Client, route, path string) (T, error) {
	if c.cache != nil {
		if raw, ok := c.cache.Get(ctx, path); ok {
			var out T
			if err := json.Unmarshal(raw, &out); err == nil {
				return out, nil
			}
		}
	}
	out, err := do[T](ctx, c, http.MethodGet, route, path, nil)
	if err == nil && c.cache != nil {
		if raw, marshalErr := json.Marshal(out); marshalErr == nil {
			c.cache.Set(ctx, path, raw)
		}
	}
	return out, err
}

func (c *Client) invalidate(ctx context.Context, keys ...string) {
	if c.cache != nil {
		c.cache.Invalidate(ctx, keys...)
	}
}
