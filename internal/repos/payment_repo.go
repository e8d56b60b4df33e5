package repos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"stockroom/internal/domain"
)

type PaymentRepo struct{ db *sqlx.DB }

func NewPaymentRepo(db *sqlx.DB) *PaymentRepo { return &PaymentRepo{db: db} }

func (r *PaymentRepo) DB() *sqlx.DB { return r.db }

func (r *PaymentRepo) Get(q sqlx.Queryer, id string) (domain.Payment, error) {
	var p domain.Payment
	err := sqlx.Get(q, &p, `
		SELECT id, order_id, amount, method, status,
		       COALESCE(transaction_id,'') AS transaction_id, COALESCE(notes,'') AS notes,
		       COALESCE(created_at,'') AS created_at, COALESCE(updated_at,'') AS updated_at
		FROM payments WHERE id = ?
	`, id)
	if err == sql.ErrNoRows {
		return domain.Payment{}, domain.ErrNotFound
	}
	return p, err
}

func (r *PaymentRepo) Insert(e sqlx.Ext, p domain.Payment) error {
	_, err := e.Exec(`
		INSERT INTO payments(id, order_id, amount, method, status, transaction_id, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, p.ID, p.OrderID, p.Amount, p.Method, p.Status, p.TransactionID, p.Notes)
	return err
}

// UpdateStatus is conditional on the status the caller read; zero affected
// rows means a concurrent writer already resolved the payment.
func (r *PaymentRepo) UpdateStatus(e sqlx.Ext, id string, from, to domain.PaymentStatus) error {
	res, err := e.Exec(`
		UPDATE payments SET status = ?, updated_at = CURRENT_TIMESTAMP
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

func (r *PaymentRepo) ListByOrder(orderID string) ([]domain.Payment, error) {
	var out []domain.Payment
	err := r.db.Select(&out, `
		SELECT id, order_id, amount, method, status,
		       COALESCE(transaction_id,'') AS transaction_id, COALESCE(notes,'') AS notes,
		       COALESCE(created_at,'') AS created_at, COALESCE(updated_at,'') AS updated_at
		FROM payments WHERE order_id = ?
		ORDER BY datetime(created_at) DESC
	`, orderID)
	return out, err
}
