package catalog

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseMultiplier(t *testing.T) {
	cases := map[string]int{
		"1x 24x0,33L":   1,
		"3x 24x0,33L":   3,
		"  4x 24x0,33L": 4,
		"12x":           12,
		"1000x":         1000,
		"2":             2,
	}
	for in, want := range cases {
		got, err := ParseMultiplier(in)
		if err != nil {
			t.Errorf("ParseMultiplier(%q) returned error: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseMultiplier(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestParseMultiplier_Invalid(t *testing.T) {
	for _, in := range []string{"", "x24", "0x 24x0,33L", "many", "1001x 24x0,33L", "5000000x 24x0,33L", "99999999999999999999x"} {
		if _, err := ParseMultiplier(in); !errors.Is(err, ErrInvalidQuantity) {
			t.Errorf("ParseMultiplier(%q): expected ErrInvalidQuantity, got %v", in, err)
		}
	}
}

func TestTotal(t *testing.T) {
	price := decimal.RequireFromString("24.99")

	total, err := Total(price, "3x 24x0.33L")
	if err != nil {
		t.Fatalf("Total returned error: %v", err)
	}
	if total.StringFixed(2) != "74.97" {
		t.Errorf("expected 74.97, got %s", total.StringFixed(2))
	}

	total, err = Total(decimal.RequireFromString("0.333"), "3x 24x0,33L")
	if err != nil {
		t.Fatalf("Total returned error: %v", err)
	}
	if total.StringFixed(2) != "1.00" {
		t.Errorf("expected rounding to 1.00, got %s", total.StringFixed(2))
	}
}

func TestIsProduct(t *testing.T) {
	if !IsProduct("Blueberry Zero") {
		t.Error("expected Blueberry Zero to be a product")
	}
	if IsProduct("blueberry zero") {
		t.Error("product match must be exact")
	}
}
