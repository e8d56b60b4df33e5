package repos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"stockroom/internal/domain"
)

type AddressRepo struct{ db *sqlx.DB }

func NewAddressRepo(db *sqlx.DB) *AddressRepo { return &AddressRepo{db: db} }

func (r *AddressRepo) ByID(id string) (domain.Address, error) {
	var a domain.Address
	err := r.db.Get(&a, `SELECT id, user_id, line1, city, zip FROM addresses WHERE id = ?`, id)
	if err == sql.ErrNoRows {
		return domain.Address{}, domain.ErrNotFound
	}
	return a, err
}

func (r *AddressRepo) Insert(a domain.Address) error {
	_, err := r.db.Exec(`
		INSERT INTO addresses(id, user_id, line1, city, zip) VALUES (?, ?, ?, ?, ?)
	`, a.ID, a.UserID, a.Line1, a.City, a.Zip)
	return err
}
