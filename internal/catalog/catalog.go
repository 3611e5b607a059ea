// Package catalog holds the product and quantity sets offered on the
// reservation form, and the pricing rule applied to them.
package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

var ErrInvalidQuantity = errors.New("invalid quantity")

// MaxMultiplier caps the leading multiplier so that MaxMultiplier * MaxPrice
// fits the orders.total_price column.
const MaxMultiplier = 1000

var Products = []string{
	"Watermelon",
	"Blueberry",
	"Watermelon Zero",
	"Blueberry Zero",
}

var Quantities = []string{
	"1x 24x0,33L",
	"2x 24x0,33L",
	"3x 24x0,33L",
	"4x 24x0,33L",
}

// ParseMultiplier reads the leading integer of a quantity descriptor such as
// "3x 24x0,33L".
func ParseMultiplier(quantity string) (int, error) {
	s := strings.TrimSpace(quantity)
	end := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsDigit(r) })
	if end == -1 {
		end = len(s)
	}
	if end == 0 {
		return 0, fmt.Errorf("%w: %q has no leading multiplier", ErrInvalidQuantity, quantity)
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil || n <= 0 || n > MaxMultiplier {
		return 0, fmt.Errorf("%w: %q", ErrInvalidQuantity, quantity)
	}
	return n, nil
}

// Total prices a quantity descriptor at unitPrice, rounded to cents.
func Total(unitPrice decimal.Decimal, quantity string) (decimal.Decimal, error) {
	n, err := ParseMultiplier(quantity)
	if err != nil {
		return decimal.Zero, err
	}
	return unitPrice.Mul(decimal.NewFromInt(int64(n))).Round(2), nil
}

func IsProduct(name string) bool {
	for _, p := range Products {
		if p == name {
			return true
		}
	}
	return false
}
