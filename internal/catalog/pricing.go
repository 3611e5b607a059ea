package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/horndawg/launchpad/internal/store"
)

const PriceSettingKey = "product_price"

var ErrInvalidPrice = errors.New("price must be a positive number")

// MaxPrice is the highest unit price accepted.
var MaxPrice = decimal.RequireFromString("99999.99")

type PriceService struct {
	settings     store.SettingStore
	defaultPrice decimal.Decimal
}

func NewPriceService(settings store.SettingStore, defaultPrice decimal.Decimal) *PriceService {
	return &PriceService{settings: settings, defaultPrice: defaultPrice}
}

// UnitPrice returns the stored price, or the configured default when the
// setting row does not exist.
func (s *PriceService) UnitPrice(ctx context.Context) (decimal.Decimal, error) {
	setting, err := s.settings.GetSetting(ctx, PriceSettingKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return s.defaultPrice, nil
		}
		return decimal.Zero, fmt.Errorf("get price setting: %w", err)
	}

	price, err := decimal.NewFromString(setting.Value)
	if err != nil || !price.IsPositive() {
		slog.Warn("stored product price is invalid, using default", "value", setting.Value)
		return s.defaultPrice, nil
	}
	return price, nil
}

// SetUnitPrice parses raw and stores it. Non-numeric and non-positive values
// are rejected with ErrInvalidPrice.
func (s *PriceService) SetUnitPrice(ctx context.Context, raw string) (decimal.Decimal, error) {
	price, err := ParsePrice(raw)
	if err != nil {
		return decimal.Zero, err
	}
	if err := s.settings.PutSetting(ctx, PriceSettingKey, price.StringFixed(2)); err != nil {
		return decimal.Zero, fmt.Errorf("put price setting: %w", err)
	}
	return price, nil
}

// SeedDefault stores the configured price unless a value is already present.
func (s *PriceService) SeedDefault(ctx context.Context) error {
	if err := s.settings.InsertSettingIfMissing(ctx, PriceSettingKey, s.defaultPrice.StringFixed(2)); err != nil {
		return fmt.Errorf("seed price setting: %w", err)
	}
	return nil
}

// ParsePrice parses a unit price and rounds it to cents. The rounded value
// must be positive and at most MaxPrice.
func ParsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidPrice, raw)
	}
	price = price.Round(2)
	if !price.IsPositive() || price.GreaterThan(MaxPrice) {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidPrice, raw)
	}
	return price, nil
}
