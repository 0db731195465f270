package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/CameronXie/sap-api-layer/internal/api/rest/response"
	"github.com/CameronXie/sap-api-layer/internal/domain"
)

const (
	identifierParam = "num"

	// DefaultMaxRequestBody is the body limit applied when none is configured.
	DefaultMaxRequestBody int64 = 1 << 20
)

type PurchaseOrderService interface {
	Get(ctx context.Context, authorization, number string) (*domain.PurchaseOrder, error)
	List(ctx context.Context, authorization string) ([]domain.PurchaseOrderListItem, error)
	Create(ctx context.Context, authorization, payload string) (*domain.PurchaseOrderCreated, error)
}

// GetPurchaseOrderHandler serves a purchase order with its items. The number is read from ?num=.
type GetPurchaseOrderHandler struct {
	service PurchaseOrderService
	logger  *slog.Logger
}

func (h *GetPurchaseOrderHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	po, err := h.service.Get(r.Context(), r.Header.Get("Authorization"), r.URL.Query().Get(identifierParam))
	if err != nil {
		writeError(w, r, h.logger, err, tokenFailedMessage)
		return
	}

	h.logger.InfoContext(r.Context(), "purchase_order_fetched", "purchase_order", po.PurchaseOrder, "items", len(po.Items))
	response.JSONResponse(w, http.StatusOK, po)
}

func NewGetPurchaseOrderHandler(service PurchaseOrderService, logger *slog.Logger) http.Handler {
	return &GetPurchaseOrderHandler{service: service, logger: logger}
}

type GetPurchaseOrderListHandler struct {
	service PurchaseOrderService
	logger  *slog.Logger
}

func (h *GetPurchaseOrderListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context(), r.Header.Get("Authorization"))
	if err != nil {
		writeError(w, r, h.logger, err, tokenFailedMessage)
		return
	}

	h.logger.InfoContext(r.Context(), "purchase_orders_listed", "count", len(list))
	response.JSONResponse(w, http.StatusOK, list)
}

func NewGetPurchaseOrderListHandler(service PurchaseOrderService, logger *slog.Logger) http.Handler {
	return &GetPurchaseOrderListHandler{service: service, logger: logger}
}

// CreatePurchaseOrderHandler forwards the request body to the backend unchanged.
type CreatePurchaseOrderHandler struct {
	service     PurchaseOrderService
	logger      *slog.Logger
	maxBodySize int64
}

func (h *CreatePurchaseOrderHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodySize))
	if err != nil || strings.TrimSpace(string(body)) == "" || !json.Valid(body) {
		h.logger.WarnContext(r.Context(), "invalid_request_body", "error", err)
		response.FailedResponse(w, http.StatusBadRequest, http.StatusBadRequest, invalidRequestBodyMessage)
		return
	}

	created, err := h.service.Create(r.Context(), r.Header.Get("Authorization"), string(body))
	if err != nil {
		writeError(w, r, h.logger, err, xcsrfTokenFailedMessage)
		return
	}

	h.logger.InfoContext(r.Context(), "purchase_order_created", "purchase_order", created.PurchaseOrder.PurchaseOrder)
	response.JSONResponse(w, http.StatusOK, created)
}

// NewCreatePurchaseOrderHandler rejects bodies larger than maxBodySize bytes. A non-positive limit
// falls back to DefaultMaxRequestBody.
func NewCreatePurchaseOrderHandler(service PurchaseOrderService, logger *slog.Logger, maxBodySize int64) http.Handler {
	if maxBodySize <= 0 {
		maxBodySize = DefaultMaxRequestBody
	}

	return &CreatePurchaseOrderHandler{service: service, logger: logger, maxBodySize: maxBodySize}
}
