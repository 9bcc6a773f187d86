package repos

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"novadash/internal/domain"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

const orderCols = `id, customer_id, items_json, status, priority, total, is_deleted, created_at, updated_at`

var orderSort = columnsWith(map[string]string{
	"status":     "status",
	"priority":   "CASE priority WHEN 'low' THEN 0 WHEN 'medium' THEN 1 ELSE 2 END",
	"total":      "CAST(total AS REAL)",
	"customerId": "customer_id",
})

// orderRow is the stored shape; lines live in items_json.
type orderRow struct {
	ID         string          `db:"id"`
	CustomerID string          `db:"customer_id"`
	ItemsJSON  string          `db:"items_json"`
	Status     string          `db:"status"`
	Priority   string          `db:"priority"`
	Total      decimal.Decimal `db:"total"`
	IsDeleted  bool            `db:"is_deleted"`
	CreatedAt  time.Time       `db:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at"`
}

func (row orderRow) toDomain() (domain.Order, error) {
	var lines []domain.OrderLine
	if err := json.Unmarshal([]byte(row.ItemsJSON), &lines); err != nil {
		return domain.Order{}, fmt.Errorf("decode lines of order %s: %w", row.ID, err)
	}
	return domain.Order{
		ID:         row.ID,
		CustomerID: row.CustomerID,
		Items:      lines,
		Status:     domain.OrderStatus(row.Status),
		Priority:   domain.OrderPriority(row.Priority),
		Total:      row.Total,
		IsDeleted:  row.IsDeleted,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}, nil
}

// Create inserts the whole order document in a single statement.
func (r *OrderRepo) Create(ctx context.Context, o *domain.Order) error {
	lines, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("encode order lines: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
	  INSERT INTO orders(`+orderCols+`)
	  VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, o.ID, o.CustomerID, string(lines), string(o.Status), string(o.Priority), o.Total.String(), o.IsDeleted,
		o.CreatedAt.UTC(), o.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (r *OrderRepo) Get(ctx context.Context, id string) (domain.Order, error) {
	var row orderRow
	err := r.db.GetContext(ctx, &row, `SELECT `+orderCols+` FROM orders WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Order{}, fmt.Errorf("failed to get order %s: %w", id, err)
	}
	return row.toDomain()
}

// Update writes the mutable header fields only; lines, total and customer never change.
func (r *OrderRepo) Update(ctx context.Context, o *domain.Order) error {
	res, err := r.db.ExecContext(ctx, `
	  UPDATE orders SET status = ?, priority = ?, is_deleted = ?, updated_at = ? WHERE id = ?
	`, string(o.Status), string(o.Priority), o.IsDeleted, o.UpdatedAt.UTC(), o.ID)
	if err != nil {
		return fmt.Errorf("failed to update order %s: %w", o.ID, err)
	}
	return affectedOne(res)
}

func (r *OrderRepo) SoftDelete(ctx context.Context, id string, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET is_deleted = 1, updated_at = ? WHERE id = ?`, at.UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to delete order %s: %w", id, err)
	}
	return affectedOne(res)
}

func (r *OrderRepo) List(ctx context.Context, f domain.OrderFilter) ([]domain.Order, int, error) {
	var w where
	w.common(f.ListParams)
	if f.Status != "" {
		w.add(`status = ?`, string(f.Status))
	}
	if f.Priority != "" {
		w.add(`priority = ?`, string(f.Priority))
	}
	if f.CustomerID != "" {
		w.add(`customer_id = ?`, f.CustomerID)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM orders WHERE `+w.sql(), w.args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	q := `SELECT ` + orderCols + ` FROM orders WHERE ` + w.sql() +
		` ORDER BY ` + orderBy(orderSort, f.ListParams) + ` LIMIT ? OFFSET ?`
	args := append(w.args, f.Limit, f.Offset())

	var rows []orderRow
	if err := r.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	out := make([]domain.Order, 0, len(rows))
	for _, row := range rows {
		o, err := row.toDomain()
		if err != nil {
			return nil, 0, err
		}
		out = append(out, o)
	}
	return out, total, nil
}

func (r *OrderRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM orders`)
	return err
}
