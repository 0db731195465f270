package reshaper

import (
	"fmt"

	"github.com/CameronXie/sap-api-layer/internal/domain"
	"github.com/CameronXie/sap-api-layer/internal/odata"
)

type salesOrderRecord struct {
	SalesOrder                 string `json:"SalesOrder"`
	SalesOrderType             string `json:"SalesOrderType"`
	CreatedByUser              string `json:"CreatedByUser"`
	SoldToParty                string `json:"SoldToParty"`
	RequestedDeliveryDate      string `json:"RequestedDeliveryDate"`
	TotalNetAmount             string `json:"TotalNetAmount"`
	TransactionCurrency        string `json:"TransactionCurrency"`
	CreationDate               string `json:"CreationDate"`
	PurchaseOrderByCustomer    string `json:"PurchaseOrderByCustomer"`
	PurchaseOrderByShipToParty string `json:"PurchaseOrderByShipToParty"`
	SalesOrganization          string `json:"SalesOrganization"`
	DistributionChannel        string `json:"DistributionChannel"`
	OrganizationDivision       string `json:"OrganizationDivision"`
}

type salesOrderItemRecord struct {
	SalesOrderItem       string `json:"SalesOrderItem"`
	Material             string `json:"Material"`
	SalesOrderItemText   string `json:"SalesOrderItemText"`
	OrderQuantitySAPUnit string `json:"OrderQuantitySAPUnit"`
	ProductionPlant      string `json:"ProductionPlant"`
	NetAmount            string `json:"NetAmount"`
	RequestedQuantity    string `json:"RequestedQuantity"`
}

type salesOrderListRecord struct {
	SalesOrderType string `json:"SalesOrderType"`
	SoldToParty    string `json:"SoldToParty"`
	CreationDate   string `json:"CreationDate"`
	TotalNetAmount string `json:"TotalNetAmount"`
	SalesOrder     string `json:"SalesOrder"`
}

// SalesOrder maps a single sales order envelope to its header. Items are attached separately.
func SalesOrder(data string) (*domain.SalesOrder, error) {
	record, err := odata.DecodeEntity[salesOrderRecord](data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode sales order: %w", err)
	}

	creationDate, err := odata.ConvertDate(record.CreationDate)
	if err != nil {
		return nil, fmt.Errorf("sales order %s CreationDate: %w", record.SalesOrder, err)
	}

	deliveryDate, err := odata.ConvertDate(record.RequestedDeliveryDate)
	if err != nil {
		return nil, fmt.Errorf("sales order %s RequestedDeliveryDate: %w", record.SalesOrder, err)
	}

	return &domain.SalesOrder{
		SalesOrder:                 record.SalesOrder,
		SalesOrderType:             record.SalesOrderType,
		CreatedByUser:              record.CreatedByUser,
		SoldToParty:                record.SoldToParty,
		RequestedDeliveryDate:      deliveryDate,
		TotalNetAmount:             record.TotalNetAmount,
		TransactionCurrency:        record.TransactionCurrency,
		CreationDate:               creationDate,
		PurchaseOrderByCustomer:    record.PurchaseOrderByCustomer,
		PurchaseOrderByShipToParty: record.PurchaseOrderByShipToParty,
		SalesOrganization:          record.SalesOrganization,
		DistributionChannel:        record.DistributionChannel,
		OrganizationDivision:       record.OrganizationDivision,
		Items:                      make([]domain.SalesOrderItem, 0),
	}, nil
}

// SalesOrderItems maps a sales order item collection envelope.
func SalesOrderItems(data string) ([]domain.SalesOrderItem, error) {
	records, err := odata.DecodeCollection[salesOrderItemRecord](data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode sales order items: %w", err)
	}

	items := make([]domain.SalesOrderItem, 0, len(records))
	for _, r := range records {
		item := domain.SalesOrderItem{
			SalesOrderItem:       r.SalesOrderItem,
			Material:             r.Material,
			SalesOrderItemText:   r.SalesOrderItemText,
			OrderQuantitySAPUnit: r.OrderQuantitySAPUnit,
			ProductionPlant:      r.ProductionPlant,
			NetAmount:            r.NetAmount,
			RequestedQuantity:    r.RequestedQuantity,
		}

		unitPrice, err := item.ComputeUnitPrice()
		if err != nil {
			return nil, fmt.Errorf("sales order item %s: %w", r.SalesOrderItem, err)
		}
		item.UnitPrice = unitPrice

		items = append(items, item)
	}

	return items, nil
}

// SalesOrderList maps a sales order collection envelope to summaries.
func SalesOrderList(data string) ([]domain.SalesOrderListItem, error) {
	records, err := odata.DecodeCollection[salesOrderListRecord](data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode sales order list: %w", err)
	}

	list := make([]domain.SalesOrderListItem, 0, len(records))
	for _, r := range records {
		creationDate, err := odata.ConvertDate(r.CreationDate)
		if err != nil {
			return nil, fmt.Errorf("sales order %s CreationDate: %w", r.SalesOrder, err)
		}

		list = append(list, domain.SalesOrderListItem{
			SalesOrderType: r.SalesOrderType,
			SoldToParty:    r.SoldToParty,
			CreationDate:   creationDate,
			TotalNetAmount: r.TotalNetAmount,
			SalesOrder:     r.SalesOrder,
		})
	}

	return list, nil
}
