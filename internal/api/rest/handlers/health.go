package handlers

import (
	"net/http"

	"github.com/CameronXie/sap-api-layer/internal/api/rest/response"
)

type HealthHandler struct {
	version string
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	response.JSONResponse(w, http.StatusOK, map[string]string{"status": "healthy", "version": h.version})
}

func NewHealthHandler(version string) http.Handler {
	return &HealthHandler{version: version}
}
