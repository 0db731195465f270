package domain

// PurchaseOrder is a purchase order header together with its items.
type PurchaseOrder struct {
	PurchaseOrder          string              `json:"PurchaseOrder"`
	PurchaseOrderType      string              `json:"PurchaseOrderType"`
	PurchasingOrganization string              `json:"PurchasingOrganization"`
	PurchasingGroup        string              `json:"PurchasingGroup"`
	AddressName            string              `json:"AddressName"`
	Supplier               string              `json:"Supplier"`
	DocumentCurrency       string              `json:"DocumentCurrency"`
	CreatedByUser          string              `json:"CreatedByUser"`
	CreationDate           string              `json:"CreationDate"`
	Items                  []PurchaseOrderItem `json:"Items"`
}

// PurchaseOrderItem is a purchase order line. TotalPrice is derived from NetPriceAmount and OrderQuantity.
type PurchaseOrderItem struct {
	PurchaseOrderItem     string `json:"PurchaseOrderItem"`
	ManufacturerMaterial  string `json:"ManufacturerMaterial"`
	PurchaseOrderItemText string `json:"PurchaseOrderItemText"`
	Plant                 string `json:"Plant"`
	OrderQuantity         string `json:"OrderQuantity"`
	OrderPriceUnit        string `json:"OrderPriceUnit"`
	NetPriceAmount        string `json:"NetPriceAmount"`
	TotalPrice            string `json:"TotalPrice"`
}

// ComputeTotalPrice returns NetPriceAmount * OrderQuantity with two decimals.
func (i *PurchaseOrderItem) ComputeTotalPrice() (string, error) {
	return multiply("NetPriceAmount", i.NetPriceAmount, "OrderQuantity", i.OrderQuantity)
}

// PurchaseOrderListItem is the summary projection returned by list retrieval.
type PurchaseOrderListItem struct {
	PurchaseOrderType string `json:"PurchaseOrderType"`
	AddressName       string `json:"AddressName"`
	CreationDate      string `json:"CreationDate"`
	PurchaseOrder     string `json:"PurchaseOrder"`
}

// PurchaseOrderCreated is returned after a successful creation. The wire keys, misspelling included,
// are what existing CreatePurchaseOrder clients read.
type PurchaseOrderCreated struct {
	Message       string         `json:"reponseText"`
	PurchaseOrder *PurchaseOrder `json:"purchaseOrderObj"`
}
