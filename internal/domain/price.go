package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// priceDecimals is the number of fixed decimals used for derived prices.
const priceDecimals = 2

// ErrZeroQuantity is returned when a unit price is derived from a zero quantity.
var ErrZeroQuantity = errors.New("quantity is zero")

func parseAmount(field, value string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s %q: %w", field, value, err)
	}

	return amount, nil
}

// multiply returns a*b formatted with fixed decimals.
func multiply(aField, a, bField, b string) (string, error) {
	x, err := parseAmount(aField, a)
	if err != nil {
		return "", err
	}

	y, err := parseAmount(bField, b)
	if err != nil {
		return "", err
	}

	return x.Mul(y).StringFixed(priceDecimals), nil
}

// divide returns a/b formatted with fixed decimals.
func divide(aField, a, bField, b string) (string, error) {
	x, err := parseAmount(aField, a)
	if err != nil {
		return "", err
	}

	y, err := parseAmount(bField, b)
	if err != nil {
		return "", err
	}

	if y.IsZero() {
		return "", fmt.Errorf("invalid %s: %w", bField, ErrZeroQuantity)
	}

	return x.Div(y).StringFixed(priceDecimals), nil
}
