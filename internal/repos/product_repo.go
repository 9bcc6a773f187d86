package repos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"novadash/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `id, sku, name, description, category, price, stock, is_deleted, created_at, updated_at`

var productSort = columnsWith(map[string]string{
	"sku":      "sku",
	"name":     "LOWER(name)",
	"category": "LOWER(category)",
	"price":    "CAST(price AS REAL)",
	"stock":    "stock",
})

func (r *ProductRepo) Create(ctx context.Context, p *domain.Product) error {
	_, err := r.db.ExecContext(ctx, `
	  INSERT INTO products(`+productCols+`)
	  VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.SKU, p.Name, p.Description, p.Category, p.Price.String(), p.Stock, p.IsDeleted,
		p.CreatedAt.UTC(), p.UpdatedAt.UTC())
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: product sku %s", domain.ErrDuplicate, p.SKU)
	}
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *ProductRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.GetContext(ctx, &p, `SELECT `+productCols+` FROM products WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("failed to get product %s: %w", id, err)
	}
	return p, nil
}

// SKUTaken reports whether another product (not exceptID) already uses sku.
func (r *ProductRepo) SKUTaken(ctx context.Context, sku, exceptID string) (bool, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM products WHERE sku = ? AND id != ?`, sku, exceptID)
	if err != nil {
		return false, fmt.Errorf("failed to check product sku: %w", err)
	}
	return n > 0, nil
}

func (r *ProductRepo) Update(ctx context.Context, p *domain.Product) error {
	res, err := r.db.ExecContext(ctx, `
	  UPDATE products
	  SET sku = ?, name = ?, description = ?, category = ?, price = ?, stock = ?, is_deleted = ?, updated_at = ?
	  WHERE id = ?
	`, p.SKU, p.Name, p.Description, p.Category, p.Price.String(), p.Stock, p.IsDeleted, p.UpdatedAt.UTC(), p.ID)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: product sku %s", domain.ErrDuplicate, p.SKU)
	}
	if err != nil {
		return fmt.Errorf("failed to update product %s: %w", p.ID, err)
	}
	return affectedOne(res)
}

func (r *ProductRepo) SoftDelete(ctx context.Context, id string, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET is_deleted = 1, updated_at = ? WHERE id = ?`, at.UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to delete product %s: %w", id, err)
	}
	return affectedOne(res)
}

func (r *ProductRepo) List(ctx context.Context, f domain.ProductFilter) ([]domain.Product, int, error) {
	var w where
	w.common(f.ListParams)
	if f.SKU != "" {
		w.add(`sku = ?`, strings.ToUpper(strings.TrimSpace(f.SKU)))
	}
	w.contains("name", f.Name)
	w.contains("category", f.Category)
	if f.MinPrice != nil {
		w.add(`CAST(price AS REAL) >= ?`, f.MinPrice.InexactFloat64())
	}
	if f.MaxPrice != nil {
		w.add(`CAST(price AS REAL) <= ?`, f.MaxPrice.InexactFloat64())
	}
	if f.InStock != nil {
		if *f.InStock {
			w.add(`stock > 0`)
		} else {
			w.add(`stock = 0`)
		}
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM products WHERE `+w.sql(), w.args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	q := `SELECT ` + productCols + ` FROM products WHERE ` + w.sql() +
		` ORDER BY ` + orderBy(productSort, f.ListParams) + ` LIMIT ? OFFSET ?`
	args := append(w.args, f.Limit, f.Offset())

	var out []domain.Product
	if err := r.db.SelectContext(ctx, &out, q, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	return out, total, nil
}

// FindActiveByIDs fetches the non-deleted products among ids in one query.
func (r *ProductRepo) FindActiveByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	return r.findByIDs(ctx, ids, `AND is_deleted = 0`)
}

// FindByIDs fetches products regardless of the soft-delete flag.
func (r *ProductRepo) FindByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	return r.findByIDs(ctx, ids, ``)
}

func (r *ProductRepo) findByIDs(ctx context.Context, ids []string, extra string) ([]domain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	q, args, err := sqlx.In(`SELECT `+productCols+` FROM products WHERE id IN (?) `+extra, ids)
	if err != nil {
		return nil, err
	}
	var out []domain.Product
	if err := r.db.SelectContext(ctx, &out, r.db.Rebind(q), args...); err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}
	return out, nil
}

func (r *ProductRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM products`)
	return err
}
