package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/CameronXie/sap-api-layer/internal/odata"
)

var (
	// ErrMissingAuthorization is returned before any backend call when the caller sent no credentials.
	ErrMissingAuthorization = errors.New("authorization header missing")

	// ErrMissingIdentifier is returned when no identifier was supplied and no default is configured.
	ErrMissingIdentifier = errors.New("identifier missing")
)

// Backend is the OData client used by the gateway.
type Backend interface {
	FetchToken(ctx context.Context, rawURL, authorization string) (*odata.Session, error)
	Query(ctx context.Context, rawURL string, session *odata.Session) *odata.Response
	Post(ctx context.Context, rawURL, payload string, session *odata.Session) *odata.Response
}

// Config holds the backend location and the identifiers used when the caller supplies none.
type Config struct {
	BaseURL              string
	DefaultPurchaseOrder string
	DefaultSalesOrder    string
}

// AuthenticationError reports a failed token handshake.
type AuthenticationError struct {
	Err error
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("token handshake failed: %v", e.Err)
}

func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// BackendError reports a query or mutation the backend did not accept.
type BackendError struct {
	Response *odata.Response
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend call failed with status %d: %s", e.Response.StatusCode, e.Response.Error)
}

// ReshapeError reports a backend payload that could not be mapped.
type ReshapeError struct {
	Err error
}

func (e *ReshapeError) Error() string {
	return fmt.Sprintf("failed to process backend response: %v", e.Err)
}

func (e *ReshapeError) Unwrap() error {
	return e.Err
}

// flow runs the steps shared by every operation. The first failing step ends the operation.
type flow struct {
	backend Backend
	logger  *slog.Logger
}

func (f *flow) session(ctx context.Context, rawURL, authorization string) (*odata.Session, error) {
	if authorization == "" {
		return nil, ErrMissingAuthorization
	}

	session, err := f.backend.FetchToken(ctx, rawURL, authorization)
	if err != nil {
		f.logger.ErrorContext(ctx, "failed to retrieve x-csrf-token", "url", rawURL, "error", err)
		return nil, &AuthenticationError{Err: err}
	}

	return session, nil
}

func (f *flow) query(ctx context.Context, rawURL string, session *odata.Session) (string, error) {
	resp := f.backend.Query(ctx, rawURL, session)
	if !resp.Succeeded() {
		f.logger.WarnContext(ctx, "backend query failed", "url", rawURL, "status", resp.StatusCode, "data", resp.Data)
		return "", &BackendError{Response: resp}
	}

	return resp.Data, nil
}

func (f *flow) post(ctx context.Context, rawURL, payload string, session *odata.Session) (string, error) {
	resp := f.backend.Post(ctx, rawURL, payload, session)
	if !resp.Succeeded() {
		f.logger.WarnContext(ctx, "backend post failed", "url", rawURL, "status", resp.StatusCode, "data", resp.Data)
		return "", &BackendError{Response: resp}
	}

	return resp.Data, nil
}

// resourceURL joins the base URL with an OData service and resource path.
func resourceURL(baseURL string, segments ...string) string {
	return strings.TrimSuffix(baseURL, "/") + "/" + strings.Join(segments, "/")
}

// entityKey addresses a single entity by its key, e.g. A_SalesOrder('2').
func entityKey(entitySet, key string) string {
	return fmt.Sprintf("%s('%s')", entitySet, url.PathEscape(strings.ReplaceAll(key, "'", "''")))
}

func identifier(requested, fallback string) (string, error) {
	if requested != "" {
		return requested, nil
	}

	if fallback == "" {
		return "", ErrMissingIdentifier
	}

	return fallback, nil
}
