// Package backoffice implements the admin views over orders, contact
// messages, pricing and the email queue, and the bulk order import.
package backoffice

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/shopspring/decimal"

	"github.com/horndawg/launchpad/internal/catalog"
	"github.com/horndawg/launchpad/internal/models"
	"github.com/horndawg/launchpad/internal/reservation"
	"github.com/horndawg/launchpad/internal/store"
)

const PageSize = 50

var ErrInvalidPrice = catalog.ErrInvalidPrice

type PriceSettings interface {
	UnitPrice(ctx context.Context) (decimal.Decimal, error)
	SetUnitPrice(ctx context.Context, raw string) (decimal.Decimal, error)
}

type EmailStats interface {
	Stats(ctx context.Context) (*models.EmailStats, error)
}

type OrderPlacer interface {
	PlaceOrder(ctx context.Context, in reservation.ReservationInput, source string) (*models.Order, error)
}

type Service struct {
	orders   store.OrderStore
	contacts store.ContactMessageStore
	prices   PriceSettings
	emails   EmailStats
	placer   OrderPlacer

	// pick returns a uniform index in [0, n).
	pick func(n int) int
}

func NewService(orders store.OrderStore, contacts store.ContactMessageStore, prices PriceSettings, emails EmailStats, placer OrderPlacer) *Service {
	return &Service{
		orders:   orders,
		contacts: contacts,
		prices:   prices,
		emails:   emails,
		placer:   placer,
		pick:     rand.IntN,
	}
}

func (s *Service) Dashboard(ctx context.Context) (*models.DashboardStats, error) {
	totals, err := s.orders.GetOrderTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("order totals: %w", err)
	}
	contacts, err := s.contacts.CountContactMessages(ctx)
	if err != nil {
		return nil, fmt.Errorf("count contact messages: %w", err)
	}
	emails, err := s.emails.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("email stats: %w", err)
	}
	products, err := s.orders.GetProductStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("product stats: %w", err)
	}

	return &models.DashboardStats{
		Orders:   *totals,
		Contacts: contacts,
		Emails:   *emails,
		Products: products,
	}, nil
}

type OrderFilter struct {
	Search  string
	Product string
	Page    int
}

type OrderPage struct {
	Orders     []models.Order
	Products   []string
	Filter     OrderFilter
	Total      int
	TotalPages int
}

func (s *Service) ListOrders(ctx context.Context, filter OrderFilter) (*OrderPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	query := models.OrderQuery{
		Search:  filter.Search,
		Product: filter.Product,
		Limit:   PageSize,
		Offset:  (filter.Page - 1) * PageSize,
	}

	orders, err := s.orders.ListOrders(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	total, err := s.orders.CountOrders(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}
	products, err := s.orders.ListDistinctProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	return &OrderPage{
		Orders:     orders,
		Products:   products,
		Filter:     filter,
		Total:      total,
		TotalPages: totalPages(total),
	}, nil
}

type Breakdown struct {
	Products  []models.ProductBreakdown
	UnitPrice decimal.Decimal
}

func (s *Service) ProductBreakdown(ctx context.Context) (*Breakdown, error) {
	rows, err := s.orders.GetProductBreakdown(ctx)
	if err != nil {
		return nil, fmt.Errorf("product breakdown: %w", err)
	}
	price, err := s.prices.UnitPrice(ctx)
	if err != nil {
		return nil, err
	}
	return &Breakdown{Products: rows, UnitPrice: price}, nil
}

func (s *Service) UnitPrice(ctx context.Context) (decimal.Decimal, error) {
	return s.prices.UnitPrice(ctx)
}

// UpdatePrice stores a new unit price. Existing orders keep their totals.
func (s *Service) UpdatePrice(ctx context.Context, raw string) (decimal.Decimal, error) {
	return s.prices.SetUnitPrice(ctx, raw)
}

type ContactPage struct {
	Messages   []models.ContactMessage
	Page       int
	Total      int
	TotalPages int
}

func (s *Service) ListContactMessages(ctx context.Context, page int) (*ContactPage, error) {
	if page < 1 {
		page = 1
	}
	messages, err := s.contacts.ListContactMessages(ctx, PageSize, (page-1)*PageSize)
	if err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	total, err := s.contacts.CountContactMessages(ctx)
	if err != nil {
		return nil, fmt.Errorf("count contact messages: %w", err)
	}
	return &ContactPage{
		Messages:   messages,
		Page:       page,
		Total:      total,
		TotalPages: totalPages(total),
	}, nil
}

func totalPages(total int) int {
	return (total + PageSize - 1) / PageSize
}
