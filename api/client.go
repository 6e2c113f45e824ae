// Package api es el adaptador HTTP hacia el backend REST de FerreExpress.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Cache guarda cuerpos de respuestas GET exitosas.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

// Client resuelve la URL base, adjunta el token bearer y traduce los errores.
type Client struct {
	baseURL  string
	http     *http.Client
	token    func() string
	cache    Cache
	cacheTTL time.Duration
	log      zerolog.Logger
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithToken registra la fuente del token de sesión. Un token vacío no se envía.
func WithToken(token func() string) Option {
	return func(c *Client) { c.token = token }
}

func WithCache(cache Cache, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = cache
		c.cacheTTL = ttl
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		token:   func() string { return "" },
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithSessionToken devuelve una copia del cliente que usa el token dado.
// Comparte transporte, cache y logger.
func (c *Client) WithSessionToken(token string) *Client {
	cp := *c
	cp.token = func() string { return token }
	return &cp
}

// BaseURL devuelve la URL base configurada.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) url(path string, query url.Values) string {
	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	target := c.url(path, query)
	// solo se cachean respuestas anónimas
	cacheable := c.cache != nil && c.token() == ""
	if cacheable {
		if body, ok := c.cache.Get(ctx, target); ok {
			c.log.Debug().Str("url", target).Msg("cache hit")
			return body, nil
		}
	}

	body, err := c.do(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	if cacheable {
		c.cache.Set(ctx, target, body, c.cacheTTL)
	}
	return body, nil
}

func (c *Client) send(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(raw)
	}
	return c.do(ctx, method, c.url(path, nil), body)
}

func (c *Client) do(ctx context.Context, method, target string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("method", method).Str("url", target).Msg("request failed")
		return nil, fmt.Errorf("%w: %s %s: %v", ErrTransport, method, target, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrTransport, err)
	}

	c.log.Debug().
		Str("method", method).
		Str("url", target).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("api call")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{Status: resp.StatusCode, Message: serverMessage(raw)}
	}
	return raw, nil
}
