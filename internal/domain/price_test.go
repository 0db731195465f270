package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPurchaseOrderItem_ComputeTotalPrice(t *testing.T) {
	cases := map[string]struct {
		netPrice string
		quantity string
		expected string
		hasError bool
	}{
		"integer values":      {netPrice: "10", quantity: "3", expected: "30.00"},
		"backend decimals":    {netPrice: "12.50", quantity: "4.000", expected: "50.00"},
		"rounds half up":      {netPrice: "0.125", quantity: "1", expected: "0.13"},
		"fractional quantity": {netPrice: "3.33", quantity: "0.5", expected: "1.67"},
		"zero quantity":       {netPrice: "3.33", quantity: "0", expected: "0.00"},
		"missing price":       {netPrice: "", quantity: "1", hasError: true},
		"unparseable qty":     {netPrice: "1", quantity: "one", hasError: true},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			item := &PurchaseOrderItem{NetPriceAmount: tc.netPrice, OrderQuantity: tc.quantity}
			got, err := item.ComputeTotalPrice()
			if tc.hasError {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestSalesOrderItem_ComputeUnitPrice(t *testing.T) {
	cases := map[string]struct {
		netAmount string
		quantity  string
		expected  string
		err       error
		hasError  bool
	}{
		"even division":     {netAmount: "100.00", quantity: "4", expected: "25.00"},
		"repeating decimal": {netAmount: "10", quantity: "3", expected: "3.33"},
		"rounds half up":    {netAmount: "2", quantity: "3", expected: "0.67"},
		"zero quantity":     {netAmount: "10", quantity: "0", hasError: true, err: ErrZeroQuantity},
		"missing quantity":  {netAmount: "10", quantity: "", hasError: true},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			item := &SalesOrderItem{NetAmount: tc.netAmount, RequestedQuantity: tc.quantity}
			got, err := item.ComputeUnitPrice()
			if tc.hasError {
				assert.Error(t, err)
				if tc.err != nil {
					assert.ErrorIs(t, err, tc.err)
				}
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}
