package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"smoothies/internal/model"
)

type OrderService struct {
	db     *sql.DB
	policy model.NamePolicy
	logger *zap.Logger
}

func NewOrderService(db *sql.DB, policy model.NamePolicy, logger *zap.Logger) *OrderService {
	return &OrderService{db: db, policy: policy, logger: logger}
}

func (s *OrderService) Policy() model.NamePolicy {
	return s.policy
}

// CheckPreconditions reports why an order for sel and name would be refused
// without touching the store.
func (s *OrderService) CheckPreconditions(sel model.Selection, name string) error {
	if sel.Empty() {
		return ErrEmptySelection
	}
	if s.policy != model.NamePolicyLenient && strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	return nil
}

// Submit writes exactly one order row per call. Repeated calls with the same
// input write repeated rows.
func (s *OrderService) Submit(ctx context.Context, sel model.Selection, name string) (*model.Order, error) {
	name = strings.TrimSpace(name)
	if err := s.CheckPreconditions(sel, name); err != nil {
		return nil, err
	}

	o := model.Order{
		Ingredients: sel.Ingredients(),
		NameOnOrder: name,
	}

	err := s.db.QueryRowContext(ctx,
		`INSERT INTO orders (ingredients, name_on_order) VALUES ($1, $2) RETURNING order_uid`,
		o.Ingredients, o.NameOnOrder,
	).Scan(&o.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: insert order: %v", ErrSubmissionFailed, err)
	}
	o.OrderedAt = time.Now().UTC()

	s.logger.Info("order submitted",
		zap.Int64("order_uid", o.ID),
		zap.String("ingredients", o.Ingredients))

	return &o, nil
}

func (s *OrderService) List(ctx context.Context, pendingOnly bool, limit int) ([]model.Order, error) {
	query := `
		SELECT order_uid, ingredients, name_on_order, order_filled, order_ts
		FROM orders
		ORDER BY order_uid DESC
		LIMIT $1
	`
	if pendingOnly {
		query = `
			SELECT order_uid, ingredients, name_on_order, order_filled, order_ts
			FROM orders
			WHERE order_filled = FALSE
			ORDER BY order_uid ASC
			LIMIT $1
		`
	}

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var o model.Order
		var name sql.NullString
		if err := rows.Scan(&o.ID, &o.Ingredients, &name, &o.OrderFilled, timestamp{&o.OrderedAt}); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		o.NameOnOrder = name.String
		orders = append(orders, o)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return orders, nil
}

func (s *OrderService) MarkFilled(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `UPDATE orders SET order_filled = TRUE WHERE order_uid = $1`, id)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// timestamp scans order_ts from drivers that return either time.Time or text.
type timestamp struct {
	t *time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05",
}

func (ts timestamp) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*ts.t = time.Time{}
		return nil
	case time.Time:
		*ts.t = v.UTC()
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("unsupported timestamp type %T", src)
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			*ts.t = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("unparseable timestamp %q", raw)
}
