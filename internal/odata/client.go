package odata

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	CSRFTokenHeader = "x-csrf-token"
	csrfTokenFetch  = "fetch"

	OperationToken = "token"
	OperationQuery = "query"
	OperationPost  = "post"
)

// ErrTokenMissing is returned when the backend answers the token request without an x-csrf-token header.
var ErrTokenMissing = errors.New("x-csrf-token header missing from backend response")

// Session carries the anti-forgery token and the cookies issued during the token handshake.
type Session struct {
	Token   string
	Cookies []*http.Cookie
}

// Recorder observes every backend call made by the Client.
type Recorder interface {
	ObserveBackendCall(operation string, statusCode int, elapsed time.Duration)
}

// Client talks to the OData backend. Every call builds its own resty client and cookie jar, so nothing
// is shared between calls except what the caller passes along in a Session.
type Client struct {
	transport               http.RoundTripper
	timeout                 time.Duration
	normalizeMutationStatus bool
	recorder                Recorder
	logger                  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTransport sets the round tripper used for backend calls.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.transport = rt
	}
}

// WithTimeout bounds every backend call. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithRecorder registers an observer for backend calls.
func WithRecorder(r Recorder) Option {
	return func(c *Client) {
		c.recorder = r
	}
}

// WithMutationStatusNormalization controls whether a successful Post reports 200 regardless of the
// backend's actual 2xx status.
func WithMutationStatusNormalization(normalize bool) Option {
	return func(c *Client) {
		c.normalizeMutationStatus = normalize
	}
}

// NewClient creates a Client. Mutation status normalization is on unless disabled with an Option.
func NewClient(logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		transport:               http.DefaultTransport,
		normalizeMutationStatus: true,
		logger:                  logger,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// FetchToken sends a HEAD to the resource URL with the caller's authorization and asks the backend for an
// anti-forgery token. The returned Session holds the token and all cookies set during the exchange.
func (c *Client) FetchToken(ctx context.Context, rawURL, authorization string) (*Session, error) {
	target, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token url: %w", err)
	}

	client, jar, err := c.newRestyClient()
	if err != nil {
		return nil, err
	}

	c.logger.DebugContext(ctx, "fetching x-csrf-token", "url", rawURL)

	start := time.Now()
	resp, err := client.R().
		SetContext(ctx).
		SetHeader("Authorization", authorization).
		SetHeader(CSRFTokenHeader, csrfTokenFetch).
		Head(rawURL)
	if err != nil {
		c.observe(OperationToken, 0, start)
		return nil, fmt.Errorf("token request failed: %w", err)
	}
	c.observe(OperationToken, resp.StatusCode(), start)

	token := resp.Header().Get(CSRFTokenHeader)
	if token == "" {
		return nil, ErrTokenMissing
	}

	cookies := jar.Cookies(target)
	c.logger.DebugContext(ctx, "x-csrf-token retrieved", "url", rawURL, "cookies", len(cookies))

	return &Session{Token: token, Cookies: cookies}, nil
}

// Query issues an authenticated GET against the backend.
func (c *Client) Query(ctx context.Context, rawURL string, session *Session) *Response {
	return c.execute(ctx, OperationQuery, resty.MethodGet, rawURL, "", session)
}

// Post sends payload to the backend as JSON. Unless disabled, any 2xx answer is reported as 200.
func (c *Client) Post(ctx context.Context, rawURL, payload string, session *Session) *Response {
	return c.execute(ctx, OperationPost, resty.MethodPost, rawURL, payload, session)
}

func (c *Client) execute(
	ctx context.Context,
	operation, method, rawURL, payload string,
	session *Session,
) *Response {
	message := queryFailedMessage
	if method != resty.MethodGet {
		message = postFailedMessage
	}

	if session == nil {
		session = new(Session)
	}

	target, err := url.Parse(rawURL)
	if err != nil {
		return Failure(http.StatusInternalServerError, message, err.Error())
	}

	client, jar, err := c.newRestyClient()
	if err != nil {
		return Failure(http.StatusInternalServerError, message, err.Error())
	}
	jar.SetCookies(target, session.Cookies)

	req := client.R().
		SetContext(ctx).
		SetHeader("Accept", ContentTypeJSON).
		SetHeader(CSRFTokenHeader, session.Token)
	if method != resty.MethodGet {
		req.SetHeader("Content-Type", ContentTypeJSON).SetBody(payload)
	}

	start := time.Now()
	resp, err := req.Execute(method, rawURL)
	if err != nil {
		c.observe(operation, 0, start)
		c.logger.ErrorContext(ctx, "backend request failed", "operation", operation, "url", rawURL, "error", err)
		return Failure(http.StatusInternalServerError, message, err.Error())
	}
	c.observe(operation, resp.StatusCode(), start)

	c.logger.InfoContext(ctx, "backend request executed", "operation", operation, "url", rawURL, "status", resp.StatusCode())

	if !isSuccessStatus(resp.StatusCode()) {
		return Failure(resp.StatusCode(), message, describe(resp.RawResponse))
	}

	statusCode := resp.StatusCode()
	if operation == OperationPost && c.normalizeMutationStatus {
		statusCode = http.StatusOK
	}

	return success(statusCode, string(resp.Body()))
}

// newRestyClient returns a client with a fresh cookie jar.
func (c *Client) newRestyClient() (*resty.Client, *cookiejar.Jar, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	client := resty.New().
		SetTransport(c.transport).
		SetTimeout(c.timeout).
		SetCookieJar(jar).
		SetLogger(&restyLogger{logger: c.logger})

	return client, jar, nil
}

func (c *Client) observe(operation string, statusCode int, start time.Time) {
	if c.recorder == nil {
		return
	}

	c.recorder.ObserveBackendCall(operation, statusCode, time.Since(start))
}

// describe renders the status line of a failed response. The body is not included.
func describe(resp *http.Response) string {
	return fmt.Sprintf(
		"StatusCode: %d, ReasonPhrase: '%s', Version: %d.%d",
		resp.StatusCode,
		http.StatusText(resp.StatusCode),
		resp.ProtoMajor,
		resp.ProtoMinor,
	)
}
