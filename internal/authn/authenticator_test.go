package authn

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CameronXie/sap-api-layer/internal/keyfetcher"
)

type staticKey struct {
	key *rsa.PublicKey
	err error
}

func (s staticKey) FetchPublicKey() (*rsa.PublicKey, error) {
	return s.key, s.err
}

var _ keyfetcher.PublicKeyFetcher = staticKey{}

func TestHeaderAuthenticator_Authenticate(t *testing.T) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "alice@example.com"}).
		SignedString([]byte("secret"))
	require.NoError(t, err)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"name": "alice"}).
		SignedString([]byte("secret"))
	require.NoError(t, err)

	cases := map[string]struct {
		header      string
		expected    *Principal
		expectedErr error
	}{
		"basic": {
			header:   "Basic " + base64.StdEncoding.EncodeToString([]byte("ALICE:secret")),
			expected: &Principal{Name: "ALICE", Scheme: SchemeBasic},
		},
		"basic lower case scheme": {
			header:   "basic " + base64.StdEncoding.EncodeToString([]byte("bob:p:w")),
			expected: &Principal{Name: "bob", Scheme: SchemeBasic},
		},
		"basic without padding": {
			header:   "Basic " + base64.RawStdEncoding.EncodeToString([]byte("carol:pw")),
			expected: &Principal{Name: "carol", Scheme: SchemeBasic},
		},
		"basic with extra padding": {
			header:   "Basic dXNlcjpwYXNz=",
			expected: &Principal{Name: "user", Scheme: SchemeBasic},
		},
		"bearer": {
			header:   "Bearer " + signed,
			expected: &Principal{Name: "alice@example.com", Scheme: SchemeBearer},
		},
		"other scheme": {
			header:   "SAML2.0 assertion",
			expected: &Principal{Name: Anonymous, Scheme: "SAML2.0"},
		},
		"missing": {
			header:      "  ",
			expectedErr: ErrMissingCredentials,
		},
		"basic not base64": {
			header:      "Basic %%%",
			expectedErr: ErrMalformedCredentials,
		},
		"basic without separator": {
			header:      "Basic " + base64.StdEncoding.EncodeToString([]byte("alice")),
			expectedErr: ErrMalformedCredentials,
		},
		"bearer not a jwt": {
			header:      "Bearer opaque",
			expectedErr: ErrMalformedCredentials,
		},
		"bearer without subject": {
			header:      "Bearer " + noSubject,
			expectedErr: ErrMalformedCredentials,
		},
		"bearer without token": {
			header:      "Bearer",
			expectedErr: ErrMalformedCredentials,
		},
	}

	a := NewHeaderAuthenticator()
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			p, err := a.Authenticate(tc.header)

			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				assert.Nil(t, p)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expected, p)
		})
	}
}

func TestHeaderAuthenticator_AnonymousFallback(t *testing.T) {
	cases := map[string]struct {
		header      string
		opts        []Option
		expected    *Principal
		expectedErr error
	}{
		"opaque bearer token": {
			header:   "Bearer opaque-oauth-access-token",
			expected: &Principal{Name: Anonymous, Scheme: SchemeBearer},
		},
		"bearer without token": {
			header:   "Bearer",
			expected: &Principal{Name: Anonymous, Scheme: SchemeBearer},
		},
		"basic not base64": {
			header:   "Basic %%%",
			expected: &Principal{Name: Anonymous, Scheme: SchemeBasic},
		},
		"readable identity is kept": {
			header:   "Basic " + base64.StdEncoding.EncodeToString([]byte("alice:secret")),
			expected: &Principal{Name: "alice", Scheme: SchemeBasic},
		},
		"missing header still fails": {
			header:      "",
			expectedErr: ErrMissingCredentials,
		},
		"key unavailable still fails": {
			header: "Bearer opaque",
			opts:   []Option{WithBearerVerification(staticKey{err: errors.New("no key")})},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			a := NewHeaderAuthenticator(append([]Option{WithAnonymousFallback()}, tc.opts...)...)

			p, err := a.Authenticate(tc.header)

			switch {
			case tc.expectedErr != nil:
				assert.ErrorIs(t, err, tc.expectedErr)
				assert.Nil(t, p)
			case tc.expected == nil:
				assert.ErrorContains(t, err, "failed to fetch public key")
			default:
				require.NoError(t, err)
				assert.Equal(t, tc.expected, p)
			}
		})
	}
}

func TestPrincipalContext(t *testing.T) {
	_, ok := PrincipalFrom(context.Background())
	assert.False(t, ok)

	ctx := WithPrincipal(context.Background(), &Principal{Name: "alice", Scheme: SchemeBasic})
	p, ok := PrincipalFrom(ctx)
	require.True(t, ok)
	assert.Equal(t, "alice", p.Name)
}

func TestHeaderAuthenticator_BearerVerification(t *testing.T) {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{"sub": "alice"}).SignedString(privateKey)
	require.NoError(t, err)
	forged, err := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{"sub": "alice"}).SignedString(otherKey)
	require.NoError(t, err)
	hmac, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "alice"}).SignedString([]byte("secret"))
	require.NoError(t, err)

	cases := map[string]struct {
		token       string
		fetcher     staticKey
		expectedErr error
		errContains string
	}{
		"valid signature": {
			token:   signed,
			fetcher: staticKey{key: &privateKey.PublicKey},
		},
		"wrong key": {
			token:       forged,
			fetcher:     staticKey{key: &privateKey.PublicKey},
			expectedErr: ErrMalformedCredentials,
		},
		"unexpected algorithm": {
			token:       hmac,
			fetcher:     staticKey{key: &privateKey.PublicKey},
			expectedErr: ErrMalformedCredentials,
		},
		"key unavailable": {
			token:       signed,
			fetcher:     staticKey{err: errors.New("no key")},
			errContains: "failed to fetch public key",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			p, err := NewHeaderAuthenticator(WithBearerVerification(tc.fetcher)).Authenticate("Bearer " + tc.token)

			switch {
			case tc.expectedErr != nil:
				assert.ErrorIs(t, err, tc.expectedErr)
			case tc.errContains != "":
				assert.ErrorContains(t, err, tc.errContains)
			default:
				require.NoError(t, err)
				assert.Equal(t, &Principal{Name: "alice", Scheme: SchemeBearer}, p)
			}
		})
	}
}
