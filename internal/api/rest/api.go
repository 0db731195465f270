package rest

import (
	"net/http"

	"github.com/CameronXie/sap-api-layer/internal/api/rest/middlewares"
)

type RouterConfig struct {
	GetPurchaseOrderHandler     http.Handler
	GetPurchaseOrderListHandler http.Handler
	CreatePurchaseOrderHandler  http.Handler
	GetSalesOrderHandler        http.Handler
	GetSalesOrderListHandler    http.Handler
	HealthHandler               http.Handler

	// MetricsHandler is mounted at MetricsPath when set.
	MetricsHandler http.Handler
	MetricsPath    string

	AuthorisationMiddleware middlewares.Middleware

	// Middlewares wrap the whole mux, outermost first.
	Middlewares []middlewares.Middleware
}

// NewMuxWithHandlers initializes a new HTTP mux with routes defined by the given RouterConfig.
func NewMuxWithHandlers(cfg *RouterConfig) http.Handler {
	router := http.NewServeMux()

	router.Handle("GET /health", cfg.HealthHandler)
	if cfg.MetricsHandler != nil {
		router.Handle("GET "+cfg.MetricsPath, cfg.MetricsHandler)
	}

	protect := func(h http.Handler) http.Handler {
		if cfg.AuthorisationMiddleware == nil {
			return h
		}
		return cfg.AuthorisationMiddleware.Handle(h)
	}

	router.Handle("GET /api/GetPurchaseOrder", protect(cfg.GetPurchaseOrderHandler))
	router.Handle("GET /api/GetPurchaseOrderList", protect(cfg.GetPurchaseOrderListHandler))
	router.Handle("POST /api/CreatePurchaseOrder", protect(cfg.CreatePurchaseOrderHandler))
	router.Handle("GET /api/GetSalesOrder", protect(cfg.GetSalesOrderHandler))
	router.Handle("GET /api/GetSalesOrderList", protect(cfg.GetSalesOrderListHandler))

	return middlewares.Chain(router, cfg.Middlewares...)
}
