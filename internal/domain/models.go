package domain

type Product struct {
	ID          string  `db:"id" json:"id"`
	Title       string  `db:"title" json:"title"`
	Description string  `db:"description" json:"description,omitempty"`
	Price       float64 `db:"price" json:"price"`
	Active      bool    `db:"active" json:"active"`
	CreatedAt   string  `db:"created_at" json:"created_at,omitempty"`
	UpdatedAt   string  `db:"updated_at" json:"updated_at,omitempty"`
}

type Address struct {
	ID     string `db:"id" json:"id"`
	UserID string `db:"user_id" json:"user_id"`
	Line1  string `db:"line1" json:"line1"`
	City   string `db:"city" json:"city"`
	Zip    string `db:"zip" json:"zip"`
}

// InventoryRow is the per-product ledger: units on hand vs. units held for
// open orders. available and reserved never go negative; available+reserved
// only shrinks when reserved stock is finalized as sold.
type InventoryRow struct {
	ProductID string `db:"product_id" json:"product_id"`
	Available int    `db:"available" json:"available"`
	Reserved  int    `db:"reserved" json:"reserved"`
	Active    bool   `db:"active" json:"active"`
	UpdatedAt string `db:"updated_at" json:"updated_at,omitempty"`
}

type Order struct {
	ID        string      `db:"id" json:"id"`
	UserID    string      `db:"user_id" json:"user_id"`
	AddressID string      `db:"address_id" json:"address_id"`
	Status    OrderStatus `db:"status" json:"status"`
	Total     float64     `db:"total" json:"total"` // immutable once computed at creation
	Active    bool        `db:"active" json:"active"`
	CreatedAt string      `db:"created_at" json:"created_at,omitempty"`
	UpdatedAt string      `db:"updated_at" json:"updated_at,omitempty"`
}

// OrderItem snapshots the unit price at order time; it is never re-read
// from the catalog afterwards.
type OrderItem struct {
	OrderID   string  `db:"order_id" json:"order_id"`
	ProductID string  `db:"product_id" json:"product_id"`
	Qty       int     `db:"qty" json:"qty"`
	UnitPrice float64 `db:"unit_price" json:"unit_price"`
}

type Payment struct {
	ID            string        `db:"id" json:"id"`
	OrderID       string        `db:"order_id" json:"order_id"`
	Amount        float64       `db:"amount" json:"amount"`
	Method        string        `db:"method" json:"method"`
	Status        PaymentStatus `db:"status" json:"status"`
	TransactionID string        `db:"transaction_id" json:"transaction_id,omitempty"`
	Notes         string        `db:"notes" json:"notes,omitempty"`
	CreatedAt     string        `db:"created_at" json:"created_at,omitempty"`
	UpdatedAt     string        `db:"updated_at" json:"updated_at,omitempty"`
}
