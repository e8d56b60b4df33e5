package repos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"stockroom/internal/domain"
)

// ProductRepo is the catalog lookup: the core reads productId -> {active, price}
// at order-creation time only and never re-validates afterwards.
type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) ByID(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `
		SELECT id, title, COALESCE(description,'') AS description, price, active,
		       COALESCE(created_at,'') AS created_at, COALESCE(updated_at,'') AS updated_at
		FROM products WHERE id = ?
	`, id)
	if err == sql.ErrNoRows {
		return domain.Product{}, domain.ErrNotFound
	}
	return p, err
}
