package backoffice

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/horndawg/launchpad/internal/catalog"
	"github.com/horndawg/launchpad/internal/models"
)

type mockOrderStore struct {
	orders    []models.Order
	lastQuery models.OrderQuery
	err       error
}

func (m *mockOrderStore) CreateOrder(_ context.Context, p models.OrderCreateParams) (*models.Order, error) {
	if m.err != nil {
		return nil, m.err
	}
	o := models.Order{
		ID:         int64(len(m.orders) + 1),
		PublicID:   uuid.New(),
		Name:       p.Name,
		Email:      p.Email,
		Zipcode:    p.Zipcode,
		Product:    p.Product,
		Quantity:   p.Quantity,
		TotalPrice: p.TotalPrice,
		CreatedAt:  time.Now(),
	}
	m.orders = append(m.orders, o)
	return &o, nil
}

func (m *mockOrderStore) matching(q models.OrderQuery) []models.Order {
	var out []models.Order
	search := strings.ToLower(q.Search)
	for _, o := range m.orders {
		if q.Product != "" && o.Product != q.Product {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(o.Name), search) &&
			!strings.Contains(strings.ToLower(o.Email), search) &&
			!strings.Contains(strings.ToLower(o.Zipcode), search) {
			continue
		}
		out = append(out, o)
	}
	return out
}

func (m *mockOrderStore) ListOrders(_ context.Context, q models.OrderQuery) ([]models.Order, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.lastQuery = q
	all := m.matching(q)
	if q.Offset >= len(all) {
		return nil, nil
	}
	end := q.Offset + q.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[q.Offset:end], nil
}

func (m *mockOrderStore) CountOrders(_ context.Context, q models.OrderQuery) (int, error) {
	return len(m.matching(q)), m.err
}

func (m *mockOrderStore) ListDistinctProducts(context.Context) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, o := range m.orders {
		if !seen[o.Product] {
			seen[o.Product] = true
			out = append(out, o.Product)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (m *mockOrderStore) GetOrderTotals(context.Context) (*models.OrderTotals, error) {
	if m.err != nil {
		return nil, m.err
	}
	t := &models.OrderTotals{Revenue: decimal.Zero}
	for _, o := range m.orders {
		t.Count++
		t.Revenue = t.Revenue.Add(o.TotalPrice)
	}
	return t, nil
}

func (m *mockOrderStore) GetProductStats(context.Context) ([]models.ProductStat, error) {
	stats := map[string]*models.ProductStat{}
	for _, o := range m.orders {
		s, ok := stats[o.Product]
		if !ok {
			s = &models.ProductStat{Product: o.Product, Revenue: decimal.Zero}
			stats[o.Product] = s
		}
		s.OrderCount++
		s.Revenue = s.Revenue.Add(o.TotalPrice)
	}
	out := make([]models.ProductStat, 0, len(stats))
	for _, s := range stats {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderCount > out[j].OrderCount })
	return out, nil
}

func (m *mockOrderStore) GetProductBreakdown(context.Context) ([]models.ProductBreakdown, error) {
	rows := map[string]*models.ProductBreakdown{}
	for _, o := range m.orders {
		r, ok := rows[o.Product]
		if !ok {
			r = &models.ProductBreakdown{Product: o.Product, TotalRevenue: decimal.Zero}
			rows[o.Product] = r
		}
		n, _ := catalog.ParseMultiplier(o.Quantity)
		r.TotalOrders++
		r.TotalUnits += n
		r.TotalRevenue = r.TotalRevenue.Add(o.TotalPrice)
	}
	out := make([]models.ProductBreakdown, 0, len(rows))
	for _, r := range rows {
		r.AvgOrderValue = r.TotalRevenue.Div(decimal.NewFromInt(int64(r.TotalOrders))).Round(2)
		out = append(out, *r)
	}
	return out, nil
}

type mockContactStore struct {
	messages []models.ContactMessage
}

func (m *mockContactStore) CreateContactMessage(_ context.Context, p models.ContactMessageCreateParams) (*models.ContactMessage, error) {
	msg := models.ContactMessage{ID: int64(len(m.messages) + 1), Name: p.Name, Email: p.Email, Subject: p.Subject, Message: p.Message}
	m.messages = append(m.messages, msg)
	return &msg, nil
}

func (m *mockContactStore) ListContactMessages(_ context.Context, limit, offset int) ([]models.ContactMessage, error) {
	if offset >= len(m.messages) {
		return nil, nil
	}
	end := offset + limit
	if end > len(m.messages) {
		end = len(m.messages)
	}
	return m.messages[offset:end], nil
}

func (m *mockContactStore) CountContactMessages(context.Context) (int, error) {
	return len(m.messages), nil
}

type mockSettingStore struct {
	values map[string]string
}

func (m *mockSettingStore) GetSetting(_ context.Context, key string) (*models.Setting, error) {
	v, ok := m.values[key]
	if !ok {
		return nil, errNoRows
	}
	return &models.Setting{Key: key, Value: v}, nil
}

func (m *mockSettingStore) PutSetting(_ context.Context, key, value string) error {
	m.values[key] = value
	return nil
}

func (m *mockSettingStore) InsertSettingIfMissing(_ context.Context, key, value string) error {
	if _, ok := m.values[key]; !ok {
		m.values[key] = value
	}
	return nil
}

type mockEmails struct {
	queued []int64
	stats  models.EmailStats
}

func (m *mockEmails) Enqueue(_ context.Context, orderID int64, _, _, _ string) (*models.EmailJob, error) {
	m.queued = append(m.queued, orderID)
	return &models.EmailJob{OrderID: orderID, Status: models.EmailPending}, nil
}

func (m *mockEmails) Stats(context.Context) (*models.EmailStats, error) {
	s := m.stats
	return &s, nil
}
