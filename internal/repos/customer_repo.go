package repos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"novadash/internal/domain"
)

type CustomerRepo struct{ db *sqlx.DB }

func NewCustomerRepo(db *sqlx.DB) *CustomerRepo { return &CustomerRepo{db: db} }

const customerCols = `id, name, email, phone, address, is_deleted, created_at, updated_at`

var customerSort = columnsWith(map[string]string{
	"name":  "LOWER(name)",
	"email": "email",
	"phone": "phone",
})

func (r *CustomerRepo) Create(ctx context.Context, c *domain.Customer) error {
	_, err := r.db.ExecContext(ctx, `
	  INSERT INTO customers(`+customerCols+`)
	  VALUES(?, ?, ?, ?, ?, ?, ?, ?)
	`, c.ID, c.Name, c.Email, c.Phone, c.Address, c.IsDeleted, c.CreatedAt.UTC(), c.UpdatedAt.UTC())
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: customer email %s", domain.ErrDuplicate, c.Email)
	}
	if err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

func (r *CustomerRepo) Get(ctx context.Context, id string) (domain.Customer, error) {
	var c domain.Customer
	err := r.db.GetContext(ctx, &c, `SELECT `+customerCols+` FROM customers WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Customer{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Customer{}, fmt.Errorf("failed to get customer %s: %w", id, err)
	}
	return c, nil
}

// EmailTaken reports whether another customer (not exceptID) already uses email.
func (r *CustomerRepo) EmailTaken(ctx context.Context, email, exceptID string) (bool, error) {
	var n int
	err := r.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM customers WHERE LOWER(email) = LOWER(?) AND id != ?`, email, exceptID)
	if err != nil {
		return false, fmt.Errorf("failed to check customer email: %w", err)
	}
	return n > 0, nil
}

func (r *CustomerRepo) Update(ctx context.Context, c *domain.Customer) error {
	res, err := r.db.ExecContext(ctx, `
	  UPDATE customers
	  SET name = ?, email = ?, phone = ?, address = ?, is_deleted = ?, updated_at = ?
	  WHERE id = ?
	`, c.Name, c.Email, c.Phone, c.Address, c.IsDeleted, c.UpdatedAt.UTC(), c.ID)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: customer email %s", domain.ErrDuplicate, c.Email)
	}
	if err != nil {
		return fmt.Errorf("failed to update customer %s: %w", c.ID, err)
	}
	return affectedOne(res)
}

func (r *CustomerRepo) SoftDelete(ctx context.Context, id string, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE customers SET is_deleted = 1, updated_at = ? WHERE id = ?`, at.UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to delete customer %s: %w", id, err)
	}
	return affectedOne(res)
}

func (r *CustomerRepo) List(ctx context.Context, f domain.CustomerFilter) ([]domain.Customer, int, error) {
	var w where
	w.common(f.ListParams)
	w.contains("name", f.Name)
	w.contains("email", f.Email)
	w.contains("phone", f.Phone)

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM customers WHERE `+w.sql(), w.args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count customers: %w", err)
	}

	q := `SELECT ` + customerCols + ` FROM customers WHERE ` + w.sql() +
		` ORDER BY ` + orderBy(customerSort, f.ListParams) + ` LIMIT ? OFFSET ?`
	args := append(w.args, f.Limit, f.Offset())

	var out []domain.Customer
	if err := r.db.SelectContext(ctx, &out, q, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list customers: %w", err)
	}
	return out, total, nil
}

// FindByIDs returns the customers with the given ids, deleted or not.
func (r *CustomerRepo) FindByIDs(ctx context.Context, ids []string) ([]domain.Customer, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	q, args, err := sqlx.In(`SELECT `+customerCols+` FROM customers WHERE id IN (?)`, ids)
	if err != nil {
		return nil, err
	}
	var out []domain.Customer
	if err := r.db.SelectContext(ctx, &out, r.db.Rebind(q), args...); err != nil {
		return nil, fmt.Errorf("failed to find customers: %w", err)
	}
	return out, nil
}

func (r *CustomerRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM customers`)
	return err
}

func affectedOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
