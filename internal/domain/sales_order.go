package domain

// SalesOrder is a sales order header together with its items.
type SalesOrder struct {
	SalesOrder                 string           `json:"SalesOrder"`
	SalesOrderType             string           `json:"SalesOrderType"`
	CreatedByUser              string           `json:"CreatedByUser"`
	SoldToParty                string           `json:"SoldToParty"`
	RequestedDeliveryDate      string           `json:"RequestedDeliveryDate"`
	TotalNetAmount             string           `json:"TotalNetAmount"`
	TransactionCurrency        string           `json:"TransactionCurrency"`
	CreationDate               string           `json:"CreationDate"`
	PurchaseOrderByCustomer    string           `json:"PurchaseOrderByCustomer"`
	PurchaseOrderByShipToParty string           `json:"PurchaseOrderByShipToParty"`
	SalesOrganization          string           `json:"SalesOrganization"`
	DistributionChannel        string           `json:"DistributionChannel"`
	OrganizationDivision       string           `json:"OrganizationDivision"`
	Items                      []SalesOrderItem `json:"Items"`
}

// SalesOrderItem is a sales order line. UnitPrice is derived from NetAmount and RequestedQuantity.
type SalesOrderItem struct {
	SalesOrderItem       string `json:"SalesOrderItem"`
	Material             string `json:"Material"`
	SalesOrderItemText   string `json:"SalesOrderItemText"`
	OrderQuantitySAPUnit string `json:"OrderQuantitySAPUnit"`
	ProductionPlant      string `json:"ProductionPlant"`
	NetAmount            string `json:"NetAmount"`
	RequestedQuantity    string `json:"RequestedQuantity"`
	UnitPrice            string `json:"UnitPrice"`
}

// ComputeUnitPrice returns NetAmount / RequestedQuantity with two decimals.
func (i *SalesOrderItem) ComputeUnitPrice() (string, error) {
	return divide("NetAmount", i.NetAmount, "RequestedQuantity", i.RequestedQuantity)
}

// SalesOrderListItem is the summary projection returned by list retrieval.
type SalesOrderListItem struct {
	SalesOrderType string `json:"SalesOrderType"`
	SoldToParty    string `json:"SoldToParty"`
	CreationDate   string `json:"CreationDate"`
	TotalNetAmount string `json:"TotalNetAmount"`
	SalesOrder     string `json:"SalesOrder"`
}
