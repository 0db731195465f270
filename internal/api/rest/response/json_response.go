package response

import (
	"encoding/json"
	"net/http"

	"github.com/CameronXie/sap-api-layer/internal/odata"
)

// JSONResponse writes the given data as a JSON response with the specified status code.
func JSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", odata.ContentTypeJSON)
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// FailedResponse writes the failure envelope. envelopeStatus is reported in the body's StatusCode
// and may differ from the HTTP status.
func FailedResponse(w http.ResponseWriter, statusCode, envelopeStatus int, message string) {
	JSONResponse(w, statusCode, odata.Failure(envelopeStatus, message, ""))
}
