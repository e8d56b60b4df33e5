package repos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"stockroom/internal/domain"
)

type InventoryRepo struct{ db *sqlx.DB }

func NewInventoryRepo(db *sqlx.DB) *InventoryRepo { return &InventoryRepo{db: db} }

// DB exposes the handle so callers can open a transaction spanning the
// ledger and the order/payment tables.
func (r *InventoryRepo) DB() *sqlx.DB { return r.db }

// Get reads a ledger row. Returns domain.ErrNotFound if none exists.
func (r *InventoryRepo) Get(q sqlx.Queryer, productID string) (domain.InventoryRow, error) {
	var row domain.InventoryRow
	err := sqlx.Get(q, &row, `
		SELECT product_id, available, reserved, active, COALESCE(updated_at,'') AS updated_at
		FROM inventory WHERE product_id = ?
	`, productID)
	if err == sql.ErrNoRows {
		return domain.InventoryRow{}, domain.ErrNotFound
	}
	return row, err
}

// Reserve moves qty units from available to reserved. The check and the
// write are one conditional UPDATE, so two concurrent reservations against
// the same row can never both succeed past the limit.
func (r *InventoryRepo) Reserve(e sqlx.Ext, productID string, qty int) error {
	res, err := e.Exec(`
		UPDATE inventory
		SET available = available - ?, reserved = reserved + ?, updated_at = CURRENT_TIMESTAMP
		WHERE product_id = ? AND active = 1 AND available >= ?
	`, qty, qty, productID, qty)
	if err != nil {
		return err
	}
	return r.classify(e, res, productID, domain.ErrInsufficientStock)
}

// Release moves qty units back from reserved to available.
func (r *InventoryRepo) Release(e sqlx.Ext, productID string, qty int) error {
	res, err := e.Exec(`
		UPDATE inventory
		SET reserved = reserved - ?, available = available + ?, updated_at = CURRENT_TIMESTAMP
		WHERE product_id = ? AND active = 1 AND reserved >= ?
	`, qty, qty, productID, qty)
	if err != nil {
		return err
	}
	return r.classify(e, res, productID, domain.ErrInsufficientStock)
}

// Finalize removes qty reserved units from the ledger entirely: the sale is
// committed and the stock leaves the system. available is untouched.
func (r *InventoryRepo) Finalize(e sqlx.Ext, productID string, qty int) error {
	res, err := e.Exec(`
		UPDATE inventory
		SET reserved = reserved - ?, updated_at = CURRENT_TIMESTAMP
		WHERE product_id = ? AND active = 1 AND reserved >= ?
	`, qty, productID, qty)
	if err != nil {
		return err
	}
	return r.classify(e, res, productID, domain.ErrInsufficientStock)
}

// classify turns a zero-row UPDATE into the right taxonomy error: missing
// row, inactive row, or the short-stock error the caller passed in.
func (r *InventoryRepo) classify(q sqlx.Queryer, res sql.Result, productID string, short error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	row, err := r.Get(q, productID)
	if err != nil {
		return err
	}
	if !row.Active {
		return domain.ErrInvalidOperation
	}
	return short
}

// Upsert creates or overwrites the available count for a product, keeping
// reserved untouched. Used by the admin inventory page.
func (r *InventoryRepo) Upsert(productID string, available int, active bool) error {
	_, err := r.db.Exec(`
		INSERT INTO inventory(product_id, available, reserved, active, updated_at)
		VALUES (?, ?, 0, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(product_id) DO UPDATE SET
		  available = excluded.available, active = excluded.active, updated_at = CURRENT_TIMESTAMP
	`, productID, available, active)
	return err
}

// Row used by the admin inventory page.
type InventoryListRow struct {
	ProductID string `db:"product_id"`
	Title     string `db:"title"`
	Available int    `db:"available"`
	Reserved  int    `db:"reserved"`
	Active    bool   `db:"active"`
}

func (r *InventoryRepo) ListAll() ([]InventoryListRow, error) {
	var rows []InventoryListRow
	err := r.db.Select(&rows, `
		SELECT i.product_id, p.title, i.available, i.reserved, i.active
		FROM inventory i
		JOIN products p ON p.id = i.product_id
		ORDER BY p.title
	`)
	return rows, err
}
