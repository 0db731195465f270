package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/CameronXie/sap-api-layer/internal/api/rest/response"
	"github.com/CameronXie/sap-api-layer/internal/gateway"
	"github.com/CameronXie/sap-api-layer/internal/odata"
)

const (
	authHeaderMissingMessage   = "No Authorization header set"
	tokenFailedMessage         = "Token could not be retrieved"
	xcsrfTokenFailedMessage    = "XCSRF Token could not be retrieved"
	identifierMissingMessage   = "Query parameter num is required"
	invalidRequestBodyMessage  = "Invalid request body"
	unprocessableMessage       = "The response could not be processed"
	internalServerErrorMessage = "Internal server error"
)

// writeError maps a gateway error to the failure envelope. tokenMessage is reported when the token
// handshake fails.
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error, tokenMessage string) {
	var (
		authErr    *gateway.AuthenticationError
		backendErr *gateway.BackendError
		reshapeErr *gateway.ReshapeError
	)

	switch {
	case errors.Is(err, gateway.ErrMissingAuthorization):
		response.FailedResponse(w, http.StatusUnauthorized, http.StatusUnauthorized, authHeaderMissingMessage)
	case errors.Is(err, gateway.ErrMissingIdentifier):
		response.FailedResponse(w, http.StatusBadRequest, http.StatusBadRequest, identifierMissingMessage)
	case errors.As(err, &authErr):
		response.FailedResponse(w, http.StatusUnauthorized, http.StatusUnauthorized, tokenMessage)
	case errors.As(err, &backendErr):
		response.JSONResponse(w, http.StatusNotFound, odata.Failure(backendErr.Response.StatusCode, backendErr.Response.Error, ""))
	case errors.As(err, &reshapeErr):
		logger.ErrorContext(r.Context(), "backend_response_unprocessable", "error", err)
		response.FailedResponse(w, http.StatusInternalServerError, http.StatusInternalServerError, unprocessableMessage)
	default:
		logger.ErrorContext(r.Context(), "request_failed", "error", err)
		response.FailedResponse(w, http.StatusInternalServerError, http.StatusInternalServerError, internalServerErrorMessage)
	}
}
