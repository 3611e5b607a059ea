package postgres

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"github.com/horndawg/launchpad/internal/models"
)

type OrderStore struct {
	db *sql.DB
}

func NewOrderStore(db *sql.DB) *OrderStore {
	return &OrderStore{db: db}
}

func (s *OrderStore) CreateOrder(ctx context.Context, params models.OrderCreateParams) (*models.Order, error) {
	order := &models.Order{
		PublicID:   uuid.New(),
		Name:       params.Name,
		Email:      params.Email,
		Zipcode:    params.Zipcode,
		Product:    params.Product,
		Quantity:   params.Quantity,
		TotalPrice: params.TotalPrice,
	}

	err := s.db.QueryRowContext(ctx,
		`INSERT INTO orders (public_id, name, email, zipcode, product, quantity, total_price)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		order.PublicID, order.Name, order.Email, order.Zipcode, order.Product, order.Quantity, order.TotalPrice,
	).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return nil, err
	}

	return order, nil
}

func (s *OrderStore) ListOrders(ctx context.Context, query models.OrderQuery) ([]models.Order, error) {
	limit := query.Limit
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	offset := query.Offset
	if offset < 0 {
		offset = 0
	}

	var sb strings.Builder
	sb.WriteString(
		`SELECT id, public_id, name, email, zipcode, product, quantity, total_price, created_at
		 FROM orders WHERE 1=1`,
	)
	where, args := orderFilter(query)
	sb.WriteString(where)

	args = append(args, limit, offset)
	sb.WriteString(" ORDER BY created_at DESC, id DESC LIMIT $" + itoa(len(args)-1) + " OFFSET $" + itoa(len(args)))

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]models.Order, 0, limit)
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.PublicID, &o.Name, &o.Email, &o.Zipcode, &o.Product, &o.Quantity, &o.TotalPrice, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (s *OrderStore) CountOrders(ctx context.Context, query models.OrderQuery) (int, error) {
	where, args := orderFilter(query)

	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders WHERE 1=1`+where, args...).Scan(&count)
	return count, err
}

func (s *OrderStore) ListDistinctProducts(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT product FROM orders ORDER BY product`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s *OrderStore) GetOrderTotals(ctx context.Context) (*models.OrderTotals, error) {
	totals := &models.OrderTotals{}
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(total_price), 0) FROM orders`,
	).Scan(&totals.Count, &totals.Revenue)
	if err != nil {
		return nil, err
	}
	return totals, nil
}

func (s *OrderStore) GetProductStats(ctx context.Context) ([]models.ProductStat, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT product, COUNT(*) AS order_count, COALESCE(SUM(total_price), 0) AS revenue
		 FROM orders
		 GROUP BY product
		 ORDER BY order_count DESC, product ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []models.ProductStat
	for rows.Next() {
		var ps models.ProductStat
		if err := rows.Scan(&ps.Product, &ps.OrderCount, &ps.Revenue); err != nil {
			return nil, err
		}
		stats = append(stats, ps)
	}
	return stats, rows.Err()
}

// GetProductBreakdown aggregates per product. Units are the sum of the
// leading multipliers of the quantity descriptors ("3x 24x0,33L" -> 3).
func (s *OrderStore) GetProductBreakdown(ctx context.Context) ([]models.ProductBreakdown, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT product,
		        COUNT(*) AS total_orders,
		        COALESCE(SUM(substring(quantity FROM '^\s*(\d+)')::BIGINT), 0) AS total_units,
		        COALESCE(SUM(total_price), 0) AS total_revenue,
		        COALESCE(ROUND(AVG(total_price), 2), 0) AS avg_order_value
		 FROM orders
		 GROUP BY product
		 ORDER BY total_orders DESC, product ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var breakdown []models.ProductBreakdown
	for rows.Next() {
		var b models.ProductBreakdown
		if err := rows.Scan(&b.Product, &b.TotalOrders, &b.TotalUnits, &b.TotalRevenue, &b.AvgOrderValue); err != nil {
			return nil, err
		}
		breakdown = append(breakdown, b)
	}
	return breakdown, rows.Err()
}

func orderFilter(query models.OrderQuery) (string, []interface{}) {
	var (
		sb   strings.Builder
		args []interface{}
	)
	if q := strings.TrimSpace(query.Search); q != "" {
		args = append(args, likePattern(q))
		n := itoa(len(args))
		sb.WriteString(" AND (name ILIKE $" + n + " OR email ILIKE $" + n + " OR zipcode ILIKE $" + n + ")")
	}
	if product := strings.TrimSpace(query.Product); product != "" {
		args = append(args, product)
		sb.WriteString(" AND product = $" + itoa(len(args)))
	}
	return sb.String(), args
}
