package gateway

import (
	"context"
	"log/slog"

	"github.com/CameronXie/sap-api-layer/internal/domain"
	"github.com/CameronXie/sap-api-layer/internal/reshaper"
)

const (
	salesOrderService      = "API_SALES_ORDER_SRV"
	salesOrderEntitySet    = "A_SalesOrder"
	salesOrderItemProperty = "to_Item"
)

// SalesOrders exposes sales order operations of the backend.
type SalesOrders struct {
	flow          *flow
	baseURL       string
	defaultNumber string
}

// NewSalesOrders creates the sales order gateway.
func NewSalesOrders(backend Backend, cfg Config, logger *slog.Logger) *SalesOrders {
	return &SalesOrders{
		flow:          &flow{backend: backend, logger: logger},
		baseURL:       cfg.BaseURL,
		defaultNumber: cfg.DefaultSalesOrder,
	}
}

// Get retrieves a sales order header, then its items, and merges both.
func (s *SalesOrders) Get(ctx context.Context, authorization, number string) (*domain.SalesOrder, error) {
	if authorization == "" {
		return nil, ErrMissingAuthorization
	}

	number, err := identifier(number, s.defaultNumber)
	if err != nil {
		return nil, err
	}

	headerURL := resourceURL(s.baseURL, salesOrderService, entityKey(salesOrderEntitySet, number))
	session, err := s.flow.session(ctx, headerURL, authorization)
	if err != nil {
		return nil, err
	}

	data, err := s.flow.query(ctx, headerURL, session)
	if err != nil {
		return nil, err
	}

	so, err := reshaper.SalesOrder(data)
	if err != nil {
		return nil, &ReshapeError{Err: err}
	}

	data, err = s.flow.query(ctx, headerURL+"/"+salesOrderItemProperty, session)
	if err != nil {
		return nil, err
	}

	so.Items, err = reshaper.SalesOrderItems(data)
	if err != nil {
		return nil, &ReshapeError{Err: err}
	}

	return so, nil
}

// List retrieves sales order summaries.
func (s *SalesOrders) List(ctx context.Context, authorization string) ([]domain.SalesOrderListItem, error) {
	collectionURL := resourceURL(s.baseURL, salesOrderService, salesOrderEntitySet)
	session, err := s.flow.session(ctx, collectionURL, authorization)
	if err != nil {
		return nil, err
	}

	data, err := s.flow.query(ctx, collectionURL, session)
	if err != nil {
		return nil, err
	}

	list, err := reshaper.SalesOrderList(data)
	if err != nil {
		return nil, &ReshapeError{Err: err}
	}

	return list, nil
}
