// Package api is the typed client for the course-booking platform's REST
// API. Each exported method maps to exactly one endpoint, makes exactly one
// attempt, and returns either a decoded, validated value or an *Error.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/coursehub/internal/app/system/inputval"
	"github.com/dalemusser/coursehub/internal/app/system/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// Config configures the shared client.
type Config struct {
	BaseURL   string
	UserAgent string
	// Transport is the base round tripper; nil means http.DefaultTransport.
	Transport http.RoundTripper
}

// Client talks to the platform API. The zero value is not usable; build one
// with New and derive per-request clients with WithTokenSource.
type Client struct {
	base      *url.URL
	userAgent string
	transport http.RoundTripper
	http      *http.Client
	log       *zap.Logger
	metrics   *metrics.Set
}

// New builds the shared, unauthenticated client.
func New(cfg Config, logger *zap.Logger, m *metrics.Set) (*Client, error) {
	raw := strings.TrimSpace(cfg.BaseURL)
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("api: invalid base URL %q", cfg.BaseURL)
	}
	u.Path = strings.TrimRight(u.Path, "/")

	rt := cfg.Transport
	if rt == nil {
		rt = http.DefaultTransport
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = "coursehub-console"
	}
	return &Client{
		base:      u,
		userAgent: ua,
		transport: rt,
		http:      &http.Client{Transport: rt},
		log:       logger,
		metrics:   m,
	}, nil
}

// WithTokenSource returns a client that attaches "Authorization: Bearer
// <token>" from ts to every request. The receiver is not modified.
func (c *Client) WithTokenSource(ts oauth2.TokenSource) *Client {
	cp := *c
	cp.http = &http.Client{Transport: &oauth2.Transport{Source: ts, Base: c.transport}}
	return &cp
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string { return c.base.String() }

// envelope is the standard success wrapper. Endpoints that answer with a
// bare object are decoded directly.
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func (c *Client) endpointURL(path string, q url.Values) string {
	u := *c.base
	u.Path = c.base.Path + path
	if len(q) > 0 {
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// send performs one HTTP exchange and converts transport failures and
// non-2xx statuses into *Error. On success the caller owns resp.Body.
func (c *Client) send(ctx context.Context, endpoint string, req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req.WithContext(ctx))
	elapsed := time.Since(start)

	code := 0
	if resp != nil {
		code = resp.StatusCode
	}
	if c.metrics != nil {
		c.metrics.APIRequests.WithLabelValues(endpoint, strconv.Itoa(code)).Inc()
		c.metrics.APILatency.WithLabelValues(endpoint).Observe(elapsed.Seconds())
	}

	if err != nil {
		c.log.Warn("api request failed",
			zap.String("endpoint", endpoint),
			zap.Duration("elapsed", elapsed),
			zap.Error(err))
		return nil, &Error{Endpoint: endpoint, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		ae := &Error{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Message:    serverMessage(body),
			Body:       body,
		}
		c.log.Info("api error response",
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.StatusCode),
			zap.String("message", ae.Message))
		return nil, ae
	}

	c.log.Debug("api request",
		zap.String("endpoint", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", elapsed))
	return resp, nil
}

// do sends a JSON request and decodes the JSON response into out (which
// may be nil when the caller ignores the body).
func (c *Client) do(ctx context.Context, endpoint, method, path string, q url.Values, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return &Error{Endpoint: endpoint, Err: fmt.Errorf("encode request: %w", err)}
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpointURL(path, q), body)
	if err != nil {
		return &Error{Endpoint: endpoint, Err: err}
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.send(ctx, endpoint, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Endpoint: endpoint, StatusCode: resp.StatusCode, Err: err}
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := decodeInto(raw, out); err != nil {
		c.log.Warn("api response rejected",
			zap.String("endpoint", endpoint),
			zap.Error(err))
		return &Error{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Body:       raw,
			Err:        fmt.Errorf("%w: %v", ErrInvalidResponse, err),
		}
	}
	return nil
}

// decodeInto unwraps the envelope when present, decodes into out and
// validates the result against its struct tags.
func decodeInto(raw []byte, out any) error {
	payload := raw
	var env envelope
	if json.Unmarshal(raw, &env) == nil && env.Success != nil && len(env.Data) > 0 {
		payload = env.Data
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return err
	}
	return validateShape(out)
}

// validateShape validates a struct or every struct element of a slice.
func validateShape(out any) error {
	v := reflect.ValueOf(out)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	val := inputval.Validator()
	switch v.Kind() {
	case reflect.Struct:
		return val.Struct(v.Addr().Interface())
	case reflect.Slice:
		for i := 0; i < v.Len(); i++ {
			el := v.Index(i)
			if el.Kind() != reflect.Struct {
				return nil
			}
			if err := val.Struct(el.Addr().Interface()); err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
		}
	}
	return nil
}

// Blob is a binary response (CSV, ZIP, PDF). The caller must Close it.
type Blob struct {
	ContentType string
	Filename    string // from Content-Disposition, may be empty
	Size        int64  // -1 when unknown
	Body        io.ReadCloser
}

// Close releases the response body.
func (b *Blob) Close() error {
	if b == nil || b.Body == nil {
		return nil
	}
	return b.Body.Close()
}

func (c *Client) blob(ctx context.Context, endpoint, path string, q url.Values) (*Blob, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpointURL(path, q), nil)
	if err != nil {
		return nil, &Error{Endpoint: endpoint, Err: err}
	}
	req.Header.Set("Accept", "*/*")
	resp, err := c.send(ctx, endpoint, req)
	if err != nil {
		return nil, err
	}
	b := &Blob{
		ContentType: resp.Header.Get("Content-Type"),
		Size:        resp.ContentLength,
		Body:        resp.Body,
	}
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		b.Filename = dispositionFilename(cd)
	}
	return b, nil
}

// upload posts a single file as multipart/form-data field "file". The body
// is streamed through a pipe, so r is never held in memory as a whole.
func (c *Client) upload(ctx context.Context, endpoint, path, filename string, r io.Reader, out any) error {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	done := make(chan struct{})
	go func() {
		defer close(done)
		fw, err := mw.CreateFormFile("file", filename)
		if err == nil {
			if _, err = io.Copy(fw, r); err != nil {
				err = fmt.Errorf("read upload: %w", err)
			}
		}
		if err == nil {
			err = mw.Close()
		}
		pw.CloseWithError(err)
	}()
	// r belongs to the caller again once upload returns.
	defer func() {
		pr.Close()
		<-done
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpointURL(path, nil), pr)
	if err != nil {
		return &Error{Endpoint: endpoint, Err: err}
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.send(ctx, endpoint, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if out == nil {
		return nil
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Endpoint: endpoint, StatusCode: resp.StatusCode, Err: err}
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := decodeInto(raw, out); err != nil {
		return &Error{Endpoint: endpoint, StatusCode: resp.StatusCode, Body: raw,
			Err: fmt.Errorf("%w: %v", ErrInvalidResponse, err)}
	}
	return nil
}

func dispositionFilename(cd string) string {
	for _, part := range strings.Split(cd, ";") {
		part = strings.TrimSpace(part)
		if name, ok := strings.CutPrefix(part, "filename="); ok {
			return strings.Trim(name, `"`)
		}
	}
	return ""
}

// pathID escapes an id for use as a path segment.
func pathID(id string) string { return url.PathEscape(id) }
