package repos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"stockroom/internal/domain"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

func (r *OrderRepo) DB() *sqlx.DB { return r.db }

// Get loads an order header. Soft-deleted orders are still readable; the
// service layer decides what an inactive order may do.
func (r *OrderRepo) Get(q sqlx.Queryer, id string) (domain.Order, error) {
	var o domain.Order
	err := sqlx.Get(q, &o, `
		SELECT id, user_id, address_id, status, total, active,
		       COALESCE(created_at,'') AS created_at, COALESCE(updated_at,'') AS updated_at
		FROM orders WHERE id = ?
	`, id)
	if err == sql.ErrNoRows {
		return domain.Order{}, domain.ErrNotFound
	}
	return o, err
}

func (r *OrderRepo) Items(q sqlx.Queryer, orderID string) ([]domain.OrderItem, error) {
	var items []domain.OrderItem
	err := sqlx.Select(q, &items, `
		SELECT order_id, product_id, qty, unit_price
		FROM order_items WHERE order_id = ?
		ORDER BY product_id
	`, orderID)
	return items, err
}

func (r *OrderRepo) Insert(e sqlx.Ext, o domain.Order) error {
	_, err := e.Exec(`
		INSERT INTO orders(id, user_id, address_id, status, total, active, created_at)
		VALUES (?, ?, ?, ?, ?, 1, CURRENT_TIMESTAMP)
	`, o.ID, o.UserID, o.AddressID, o.Status, o.Total)
	return err
}

func (r *OrderRepo) InsertItem(e sqlx.Ext, it domain.OrderItem) error {
	_, err := e.Exec(`
		INSERT INTO order_items(order_id, product_id, qty, unit_price)
		VALUES (?, ?, ?, ?)
	`, it.OrderID, it.ProductID, it.Qty, it.UnitPrice)
	return err
}

// UpdateStatus writes the new status only if the row still holds the one
// the caller validated against. Zero rows means another writer got there
// first and the caller's guard decisions no longer hold.
func (r *OrderRepo) UpdateStatus(e sqlx.Ext, id string, from, to domain.OrderStatus) error {
	res, err := e.Exec(`
		UPDATE orders SET status = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND status = ?
	`, to, id, from)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrInvalidOperation
	}
	return nil
}

func (r *OrderRepo) MarkInactive(e sqlx.Ext, id string) error {
	res, err := e.Exec(`
		UPDATE orders SET active = 0, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND active = 1
	`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrInvalidOperation
	}
	return nil
}

// ---------- Admin list summary ----------

type OrderSummary struct {
	ID        string  `db:"id"`
	UserID    string  `db:"user_id"`
	Status    string  `db:"status"`
	Total     float64 `db:"total"`
	CreatedAt string  `db:"created_at"`
}

func (r *OrderRepo) ListLatest(limit int) ([]OrderSummary, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []OrderSummary
	err := r.db.Select(&out, `
		SELECT id, user_id, status, total, COALESCE(created_at,'') AS created_at
		FROM orders WHERE active = 1
		ORDER BY datetime(created_at) DESC
		LIMIT ?
	`, limit)
	return out, err
}

func (r *OrderRepo) ListByUser(userID string) ([]OrderSummary, error) {
	var out []OrderSummary
	err := r.db.Select(&out, `
		SELECT id, user_id, status, total, COALESCE(created_at,'') AS created_at
		FROM orders WHERE user_id = ? AND active = 1
		ORDER BY datetime(created_at) DESC
	`, userID)
	return out, err
}
