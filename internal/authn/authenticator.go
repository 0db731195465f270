package authn

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/CameronXie/sap-api-layer/internal/keyfetcher"
)

const (
	SchemeBasic  = "Basic"
	SchemeBearer = "Bearer"

	// Anonymous names callers whose authorization scheme carries no identity.
	Anonymous = "anonymous"
)

var (
	ErrMissingCredentials   = errors.New("authorization header missing")
	ErrMalformedCredentials = errors.New("authorization header malformed")
)

// Principal is the caller identity derived from the Authorization header. Basic credentials are not
// verified here; the backend does that when the header is forwarded.
type Principal struct {
	Name   string `json:"name"`
	Scheme string `json:"scheme"`
}

type Authenticator interface {
	Authenticate(authorization string) (*Principal, error)
}

type headerAuthenticator struct {
	parser            *jwt.Parser
	keyFetcher        keyfetcher.PublicKeyFetcher
	anonymousFallback bool
}

type Option func(*headerAuthenticator)

// WithBearerVerification makes Bearer tokens require a valid RS256 signature by the fetched key.
func WithBearerVerification(fetcher keyfetcher.PublicKeyFetcher) Option {
	return func(a *headerAuthenticator) {
		a.keyFetcher = fetcher
	}
}

// WithAnonymousFallback resolves credentials that carry no readable identity, such as opaque bearer
// tokens, to the anonymous principal instead of failing. The header is still forwarded unchanged.
func WithAnonymousFallback() Option {
	return func(a *headerAuthenticator) {
		a.anonymousFallback = true
	}
}

// Authenticate reads the Basic username or the Bearer token subject.
func (a *headerAuthenticator) Authenticate(authorization string) (*Principal, error) {
	p, err := a.authenticate(authorization)
	if err != nil && a.anonymousFallback && errors.Is(err, ErrMalformedCredentials) {
		scheme, _, _ := strings.Cut(strings.TrimSpace(authorization), " ")
		return &Principal{Name: Anonymous, Scheme: scheme}, nil
	}

	return p, err
}

func (a *headerAuthenticator) authenticate(authorization string) (*Principal, error) {
	if strings.TrimSpace(authorization) == "" {
		return nil, ErrMissingCredentials
	}

	scheme, credentials, _ := strings.Cut(strings.TrimSpace(authorization), " ")
	credentials = strings.TrimSpace(credentials)

	switch {
	case strings.EqualFold(scheme, SchemeBasic):
		name, err := basicUsername(credentials)
		if err != nil {
			return nil, err
		}
		return &Principal{Name: name, Scheme: SchemeBasic}, nil
	case strings.EqualFold(scheme, SchemeBearer):
		sub, err := a.subject(credentials)
		if err != nil {
			return nil, err
		}
		return &Principal{Name: sub, Scheme: SchemeBearer}, nil
	default:
		return &Principal{Name: Anonymous, Scheme: scheme}, nil
	}
}

func basicUsername(credentials string) (string, error) {
	// Padding is optional.
	decoded, err := base64.RawStdEncoding.DecodeString(strings.TrimRight(credentials, "="))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedCredentials, err)
	}

	username, _, ok := strings.Cut(string(decoded), ":")
	if !ok || username == "" {
		return "", fmt.Errorf("%w: basic credentials without username", ErrMalformedCredentials)
	}

	return username, nil
}

func (a *headerAuthenticator) subject(token string) (string, error) {
	if token == "" {
		return "", fmt.Errorf("%w: empty bearer token", ErrMalformedCredentials)
	}

	claims := jwt.MapClaims{}
	if a.keyFetcher == nil {
		if _, _, err := a.parser.ParseUnverified(token, claims); err != nil {
			return "", fmt.Errorf("%w: %w", ErrMalformedCredentials, err)
		}
	} else {
		publicKey, err := a.keyFetcher.FetchPublicKey()
		if err != nil {
			return "", fmt.Errorf("failed to fetch public key: %w", err)
		}

		if _, err := a.parser.ParseWithClaims(token, claims, func(_ *jwt.Token) (any, error) {
			return publicKey, nil
		}); err != nil {
			return "", fmt.Errorf("%w: %w", ErrMalformedCredentials, err)
		}
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", fmt.Errorf("%w: token has no subject", ErrMalformedCredentials)
	}

	return sub, nil
}

func NewHeaderAuthenticator(opts ...Option) Authenticator {
	a := &headerAuthenticator{
		parser: jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()})),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

type principalKey struct{}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom returns the principal stored in ctx, if any.
func PrincipalFrom(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok
}
