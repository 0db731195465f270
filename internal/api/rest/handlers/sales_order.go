package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/CameronXie/sap-api-layer/internal/api/rest/response"
	"github.com/CameronXie/sap-api-layer/internal/domain"
)

type SalesOrderService interface {
	Get(ctx context.Context, authorization, number string) (*domain.SalesOrder, error)
	List(ctx context.Context, authorization string) ([]domain.SalesOrderListItem, error)
}

// GetSalesOrderHandler serves a sales order with its items. The number is read from ?num=.
type GetSalesOrderHandler struct {
	service SalesOrderService
	logger  *slog.Logger
}

func (h *GetSalesOrderHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	so, err := h.service.Get(r.Context(), r.Header.Get("Authorization"), r.URL.Query().Get(identifierParam))
	if err != nil {
		writeError(w, r, h.logger, err, tokenFailedMessage)
		return
	}

	h.logger.InfoContext(r.Context(), "sales_order_fetched", "sales_order", so.SalesOrder, "items", len(so.Items))
	response.JSONResponse(w, http.StatusOK, so)
}

func NewGetSalesOrderHandler(service SalesOrderService, logger *slog.Logger) http.Handler {
	return &GetSalesOrderHandler{service: service, logger: logger}
}

type GetSalesOrderListHandler struct {
	service SalesOrderService
	logger  *slog.Logger
}

func (h *GetSalesOrderListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context(), r.Header.Get("Authorization"))
	if err != nil {
		writeError(w, r, h.logger, err, tokenFailedMessage)
		return
	}

	h.logger.InfoContext(r.Context(), "sales_orders_listed", "count", len(list))
	response.JSONResponse(w, http.StatusOK, list)
}

func NewGetSalesOrderListHandler(service SalesOrderService, logger *slog.Logger) http.Handler {
	return &GetSalesOrderListHandler{service: service, logger: logger}
}
