package gateway

import (
	"context"
	"log/slog"

	"github.com/CameronXie/sap-api-layer/internal/domain"
	"github.com/CameronXie/sap-api-layer/internal/reshaper"
)

const (
	purchaseOrderService   = "API_PURCHASEORDER_PROCESS_SRV"
	purchaseOrderEntitySet = "A_PurchaseOrder"
)

// PurchaseOrders exposes purchase order operations of the backend.
type PurchaseOrders struct {
	flow          *flow
	baseURL       string
	defaultNumber string
}

// NewPurchaseOrders creates the purchase order gateway.
func NewPurchaseOrders(backend Backend, cfg Config, logger *slog.Logger) *PurchaseOrders {
	return &PurchaseOrders{
		flow:          &flow{backend: backend, logger: logger},
		baseURL:       cfg.BaseURL,
		defaultNumber: cfg.DefaultPurchaseOrder,
	}
}

// Get retrieves a purchase order header, then its items, and merges both.
func (p *PurchaseOrders) Get(ctx context.Context, authorization, number string) (*domain.PurchaseOrder, error) {
	if authorization == "" {
		return nil, ErrMissingAuthorization
	}

	number, err := identifier(number, p.defaultNumber)
	if err != nil {
		return nil, err
	}

	headerURL := resourceURL(p.baseURL, purchaseOrderService, entityKey(purchaseOrderEntitySet, number))
	session, err := p.flow.session(ctx, headerURL, authorization)
	if err != nil {
		return nil, err
	}

	data, err := p.flow.query(ctx, headerURL, session)
	if err != nil {
		return nil, err
	}

	po, err := reshaper.PurchaseOrder(data)
	if err != nil {
		return nil, &ReshapeError{Err: err}
	}

	data, err = p.flow.query(ctx, headerURL+"/"+reshaper.PurchaseOrderItemsProperty, session)
	if err != nil {
		return nil, err
	}

	po.Items, err = reshaper.PurchaseOrderItems(data)
	if err != nil {
		return nil, &ReshapeError{Err: err}
	}

	return po, nil
}

// List retrieves purchase order summaries.
func (p *PurchaseOrders) List(ctx context.Context, authorization string) ([]domain.PurchaseOrderListItem, error) {
	collectionURL := resourceURL(p.baseURL, purchaseOrderService, purchaseOrderEntitySet)
	session, err := p.flow.session(ctx, collectionURL, authorization)
	if err != nil {
		return nil, err
	}

	data, err := p.flow.query(ctx, collectionURL, session)
	if err != nil {
		return nil, err
	}

	list, err := reshaper.PurchaseOrderList(data)
	if err != nil {
		return nil, &ReshapeError{Err: err}
	}

	return list, nil
}

// Create forwards a backend-shaped creation payload and maps the created purchase order.
func (p *PurchaseOrders) Create(ctx context.Context, authorization, payload string) (*domain.PurchaseOrderCreated, error) {
	collectionURL := resourceURL(p.baseURL, purchaseOrderService, purchaseOrderEntitySet)
	session, err := p.flow.session(ctx, collectionURL, authorization)
	if err != nil {
		return nil, err
	}

	data, err := p.flow.post(ctx, collectionURL, payload, session)
	if err != nil {
		return nil, err
	}

	created, err := reshaper.CreatedPurchaseOrder(data)
	if err != nil {
		return nil, &ReshapeError{Err: err}
	}

	p.flow.logger.InfoContext(ctx, "purchase order created", "purchase_order", created.PurchaseOrder.PurchaseOrder)

	return created, nil
}
