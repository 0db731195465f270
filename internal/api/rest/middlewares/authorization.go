package middlewares

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/CameronXie/sap-api-layer/internal/api/rest/response"
	"github.com/CameronXie/sap-api-layer/internal/authn"
	"github.com/CameronXie/sap-api-layer/internal/enforcer"
)

const (
	AuthHeaderMissingMessage = "No Authorization header set"
	InvalidAuthHeaderMessage = "Authorization header could not be parsed"
	AccessDeniedMessage      = "Access denied"
	authorizationHeaderName  = "Authorization"
)

// AuthorizationMiddleware rejects requests without credentials, resolves the caller principal and
// enforces the access policy on the route path and method.
type AuthorizationMiddleware struct {
	authenticator authn.Authenticator
	enforcer      enforcer.Enforcer
	logger        *slog.Logger
}

func (m *AuthorizationMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, err := m.authenticator.Authenticate(r.Header.Get(authorizationHeaderName))
		if errors.Is(err, authn.ErrMissingCredentials) {
			response.FailedResponse(w, http.StatusUnauthorized, http.StatusUnauthorized, AuthHeaderMissingMessage)
			return
		}

		if err != nil {
			m.logger.WarnContext(r.Context(), "authorization_header_invalid", "error", err)
			response.FailedResponse(w, http.StatusUnauthorized, http.StatusUnauthorized, InvalidAuthHeaderMessage)
			return
		}

		ok, err := m.enforcer.Enforce(
			r.Context(),
			&enforcer.AccessRequest{
				Subject:  principal.Name,
				Resource: r.URL.Path,
				Action:   r.Method,
			},
		)

		if err != nil || !ok {
			m.logger.ErrorContext(
				r.Context(),
				"access_denied",
				"subject", principal.Name,
				"resource", r.URL.Path,
				"action", r.Method,
				"error", err,
			)
			response.FailedResponse(w, http.StatusForbidden, http.StatusForbidden, AccessDeniedMessage)
			return
		}

		next.ServeHTTP(w, r.WithContext(authn.WithPrincipal(r.Context(), principal)))
	})
}

func NewAuthorizationMiddleware(
	authenticator authn.Authenticator,
	e enforcer.Enforcer,
	logger *slog.Logger,
) Middleware {
	return &AuthorizationMiddleware{
		authenticator: authenticator,
		enforcer:      e,
		logger:        logger,
	}
}
