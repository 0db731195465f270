package reshaper

import (
	"fmt"

	"github.com/CameronXie/sap-api-layer/internal/domain"
	"github.com/CameronXie/sap-api-layer/internal/odata"
)

// PurchaseOrderItemsProperty is the navigation property holding purchase order items.
const PurchaseOrderItemsProperty = "to_PurchaseOrderItem"

type purchaseOrderRecord struct {
	PurchaseOrder          string `json:"PurchaseOrder"`
	PurchaseOrderType      string `json:"PurchaseOrderType"`
	PurchasingOrganization string `json:"PurchasingOrganization"`
	PurchasingGroup        string `json:"PurchasingGroup"`
	AddressName            string `json:"AddressName"`
	Supplier               string `json:"Supplier"`
	DocumentCurrency       string `json:"DocumentCurrency"`
	CreatedByUser          string `json:"CreatedByUser"`
	CreationDate           string `json:"CreationDate"`
}

type purchaseOrderItemRecord struct {
	PurchaseOrderItem     string `json:"PurchaseOrderItem"`
	ManufacturerMaterial  string `json:"ManufacturerMaterial"`
	PurchaseOrderItemText string `json:"PurchaseOrderItemText"`
	Plant                 string `json:"Plant"`
	OrderQuantity         string `json:"OrderQuantity"`
	OrderPriceUnit        string `json:"OrderPriceUnit"`
	NetPriceAmount        string `json:"NetPriceAmount"`
}

type purchaseOrderListRecord struct {
	PurchaseOrderType string `json:"PurchaseOrderType"`
	AddressName       string `json:"AddressName"`
	CreationDate      string `json:"CreationDate"`
	PurchaseOrder     string `json:"PurchaseOrder"`
}

// PurchaseOrder maps a single purchase order envelope to its header. Items are attached separately.
func PurchaseOrder(data string) (*domain.PurchaseOrder, error) {
	record, err := odata.DecodeEntity[purchaseOrderRecord](data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode purchase order: %w", err)
	}

	creationDate, err := odata.ConvertDate(record.CreationDate)
	if err != nil {
		return nil, fmt.Errorf("purchase order %s CreationDate: %w", record.PurchaseOrder, err)
	}

	return &domain.PurchaseOrder{
		PurchaseOrder:          record.PurchaseOrder,
		PurchaseOrderType:      record.PurchaseOrderType,
		PurchasingOrganization: record.PurchasingOrganization,
		PurchasingGroup:        record.PurchasingGroup,
		AddressName:            record.AddressName,
		Supplier:               record.Supplier,
		DocumentCurrency:       record.DocumentCurrency,
		CreatedByUser:          record.CreatedByUser,
		CreationDate:           creationDate,
		Items:                  make([]domain.PurchaseOrderItem, 0),
	}, nil
}

// PurchaseOrderItems maps a purchase order item collection envelope.
func PurchaseOrderItems(data string) ([]domain.PurchaseOrderItem, error) {
	records, err := odata.DecodeCollection[purchaseOrderItemRecord](data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode purchase order items: %w", err)
	}

	return purchaseOrderItems(records)
}

// CreatedPurchaseOrder maps the creation response, whose items are nested in the created entity.
func CreatedPurchaseOrder(data string) (*domain.PurchaseOrderCreated, error) {
	po, err := PurchaseOrder(data)
	if err != nil {
		return nil, err
	}

	records, err := odata.DecodeNestedCollection[purchaseOrderItemRecord](data, PurchaseOrderItemsProperty)
	if err != nil {
		return nil, fmt.Errorf("failed to decode purchase order items: %w", err)
	}

	po.Items, err = purchaseOrderItems(records)
	if err != nil {
		return nil, err
	}

	return &domain.PurchaseOrderCreated{
		Message:       fmt.Sprintf("Purchase Order %s successfully created", po.PurchaseOrder),
		PurchaseOrder: po,
	}, nil
}

// PurchaseOrderList maps a purchase order collection envelope to summaries.
func PurchaseOrderList(data string) ([]domain.PurchaseOrderListItem, error) {
	records, err := odata.DecodeCollection[purchaseOrderListRecord](data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode purchase order list: %w", err)
	}

	list := make([]domain.PurchaseOrderListItem, 0, len(records))
	for _, r := range records {
		creationDate, err := odata.ConvertDate(r.CreationDate)
		if err != nil {
			return nil, fmt.Errorf("purchase order %s CreationDate: %w", r.PurchaseOrder, err)
		}

		list = append(list, domain.PurchaseOrderListItem{
			PurchaseOrderType: r.PurchaseOrderType,
			AddressName:       r.AddressName,
			CreationDate:      creationDate,
			PurchaseOrder:     r.PurchaseOrder,
		})
	}

	return list, nil
}

func purchaseOrderItems(records []purchaseOrderItemRecord) ([]domain.PurchaseOrderItem, error) {
	items := make([]domain.PurchaseOrderItem, 0, len(records))
	for _, r := range records {
		item := domain.PurchaseOrderItem{
			PurchaseOrderItem:     r.PurchaseOrderItem,
			ManufacturerMaterial:  r.ManufacturerMaterial,
			PurchaseOrderItemText: r.PurchaseOrderItemText,
			Plant:                 r.Plant,
			OrderQuantity:         r.OrderQuantity,
			OrderPriceUnit:        r.OrderPriceUnit,
			NetPriceAmount:        r.NetPriceAmount,
		}

		total, err := item.ComputeTotalPrice()
		if err != nil {
			return nil, fmt.Errorf("purchase order item %s: %w", r.PurchaseOrderItem, err)
		}
		item.TotalPrice = total

		items = append(items, item)
	}

	return items, nil
}
