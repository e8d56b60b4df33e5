package services

import (
	"sort"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"stockroom/internal/domain"
	applog "stockroom/internal/log"
	"stockroom/internal/repos"
)

// NewItem is one requested order line: product and quantity.
type NewItem struct {
	ProductID string
	Qty       int
}

type OrderService struct {
	Orders    *repos.OrderRepo
	Inv       *repos.InventoryRepo
	Products  *repos.ProductRepo
	Addresses *repos.AddressRepo
	Notify    Notifier
}

func NewOrderService(orders *repos.OrderRepo, inv *repos.InventoryRepo,
	products *repos.ProductRepo, addresses *repos.AddressRepo, notify Notifier) *OrderService {
	if notify == nil {
		notify = LogNotifier{}
	}
	return &OrderService{Orders: orders, Inv: inv, Products: products, Addresses: addresses, Notify: notify}
}

// Create places an order for the acting user: snapshot catalog prices,
// reserve stock for every line, write the order. The reservation loop and
// the order insert share one transaction, so a failed line rolls back every
// earlier reservation: all or nothing.
func (s *OrderService) Create(actor domain.Actor, addressID string, items []NewItem) (domain.Order, error) {
	if actor.UserID == "" {
		return domain.Order{}, domain.ErrAccessDenied
	}
	if len(items) == 0 {
		return domain.Order{}, domain.ErrInvalidOperation
	}

	addr, err := s.Addresses.ByID(addressID)
	if err != nil {
		return domain.Order{}, err
	}
	if addr.UserID != actor.UserID {
		return domain.Order{}, domain.ErrAccessDenied
	}

	// Merge duplicate lines, then snapshot price and active flag per product.
	merged := map[string]int{}
	for _, it := range items {
		if it.Qty <= 0 {
			return domain.Order{}, domain.ErrInvalidOperation
		}
		merged[it.ProductID] += it.Qty
	}

	order := domain.Order{
		ID:        uuid.NewString(),
		UserID:    actor.UserID,
		AddressID: addressID,
		Status:    domain.OrderNew,
		Active:    true,
	}
	var lines []domain.OrderItem
	for pid, qty := range merged {
		p, err := s.Products.ByID(pid)
		if err != nil {
			return domain.Order{}, err
		}
		if !p.Active {
			return domain.Order{}, domain.ErrInvalidOperation
		}
		lines = append(lines, domain.OrderItem{OrderID: order.ID, ProductID: pid, Qty: qty, UnitPrice: p.Price})
		order.Total += p.Price * float64(qty)
	}
	// Fixed global lock order: every caller reserves in ascending product id,
	// so two orders touching the same products cannot deadlock each other.
	sort.Slice(lines, func(i, j int) bool { return lines[i].ProductID < lines[j].ProductID })

	tx, err := s.Orders.DB().Beginx()
	if err != nil {
		return domain.Order{}, err
	}
	defer func() { _ = tx.Rollback() }()

	for _, ln := range lines {
		if err := s.Inv.Reserve(tx, ln.ProductID, ln.Qty); err != nil {
			return domain.Order{}, err
		}
	}
	if err := s.Orders.Insert(tx, order); err != nil {
		return domain.Order{}, err
	}
	for _, ln := range lines {
		if err := s.Orders.InsertItem(tx, ln); err != nil {
			return domain.Order{}, err
		}
	}
	if err := tx.Commit(); err != nil {
		return domain.Order{}, err
	}

	if err := s.Notify.OrderPlaced(order.ID, order.UserID); err != nil {
		applog.Error(nil, "notify.order.placed.fail", err, map[string]any{"order_id": order.ID})
	}
	return order, nil
}

// Get returns an order with its items; only the owner or a privileged
// actor may read it.
func (s *OrderService) Get(actor domain.Actor, id string) (domain.Order, []domain.OrderItem, error) {
	o, err := s.Orders.Get(s.Orders.DB(), id)
	if err != nil {
		return domain.Order{}, nil, err
	}
	if !actor.Privileged && o.UserID != actor.UserID {
		return domain.Order{}, nil, domain.ErrAccessDenied
	}
	items, err := s.Orders.Items(s.Orders.DB(), id)
	if err != nil {
		return domain.Order{}, nil, err
	}
	return o, items, nil
}

// UpdateStatus moves an order along its lifecycle. Back-office only.
// The ledger effect for the transition is applied in the same transaction
// as the status write; a transition between two finalized statuses never
// touches the stock twice.
func (s *OrderService) UpdateStatus(actor domain.Actor, id string, to domain.OrderStatus) error {
	if !actor.Privileged {
		return domain.ErrAccessDenied
	}
	tx, err := s.Orders.DB().Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	// Status is read inside the transaction; guard decisions stay valid
	// for the write that follows.
	o, err := s.Orders.Get(tx, id)
	if err != nil {
		return err
	}
	if !o.Active {
		return domain.ErrInvalidOperation
	}
	if !o.Status.CanTransition(to) {
		if o.Status == domain.OrderCancelled {
			return domain.ErrAlreadyCancelled
		}
		return domain.ErrInvalidOperation
	}
	if err := s.transition(tx, o, to); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	if to == domain.OrderShipped {
		if err := s.Notify.OrderShipped(o.ID, o.UserID); err != nil {
			applog.Error(nil, "notify.order.shipped.fail", err, map[string]any{"order_id": o.ID})
		}
	}
	return nil
}

// Cancel releases an order's reservations and parks it in CANCELLED.
// The owner may cancel while the order is still NEW or CONFIRMED; a
// privileged actor may cancel from any status. The guard and the status
// write share one transaction, and the write is conditional on the status
// the guard saw, so concurrent cancels release the stock at most once.
func (s *OrderService) Cancel(actor domain.Actor, id string) error {
	tx, err := s.Orders.DB().Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	o, err := s.Orders.Get(tx, id)
	if err != nil {
		return err
	}
	if o.Status == domain.OrderCancelled {
		return domain.ErrAlreadyCancelled
	}
	if !actor.Privileged {
		if o.UserID != actor.UserID {
			return domain.ErrAccessDenied
		}
		if o.Status != domain.OrderNew && o.Status != domain.OrderConfirmed {
			return domain.ErrAccessDenied
		}
	}
	if err := s.transition(tx, o, domain.OrderCancelled); err != nil {
		return err
	}
	return tx.Commit()
}

// SoftDelete marks the order inactive. If it was never cancelled its
// reservations are released first, so no stock stays orphaned behind a
// hidden order.
func (s *OrderService) SoftDelete(actor domain.Actor, id string) error {
	tx, err := s.Orders.DB().Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	o, err := s.Orders.Get(tx, id)
	if err != nil {
		return err
	}
	if !actor.Privileged && o.UserID != actor.UserID {
		return domain.ErrAccessDenied
	}
	if !o.Active {
		return domain.ErrInvalidOperation
	}
	if o.Status != domain.OrderCancelled {
		if err := s.applyEffect(tx, o.ID, EffectFor(o.Status, domain.OrderCancelled)); err != nil {
			return err
		}
	}
	if err := s.Orders.MarkInactive(tx, o.ID); err != nil {
		return err
	}
	return tx.Commit()
}

// transition applies the coordinator effect for old -> to and persists the
// new status, all inside the caller's transaction. The status write is
// conditional on o.Status, so a stale view of the order cannot commit a
// second ledger effect.
func (s *OrderService) transition(tx *sqlx.Tx, o domain.Order, to domain.OrderStatus) error {
	if err := s.applyEffect(tx, o.ID, EffectFor(o.Status, to)); err != nil {
		return err
	}
	return s.Orders.UpdateStatus(tx, o.ID, o.Status, to)
}

func (s *OrderService) applyEffect(tx *sqlx.Tx, orderID string, eff StockEffect) error {
	if eff == EffectNone {
		return nil
	}
	// Items come back ordered by product id, matching the lock order used
	// at reservation time.
	items, err := s.Orders.Items(tx, orderID)
	if err != nil {
		return err
	}
	for _, it := range items {
		switch eff {
		case EffectRelease:
			err = s.Inv.Release(tx, it.ProductID, it.Qty)
		case EffectFinalize:
			err = s.Inv.Finalize(tx, it.ProductID, it.Qty)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// promote confirms a NEW order after its payment completed. No-op for any
// other current status: a later payment event never moves the order back.
func (s *OrderService) promote(tx *sqlx.Tx, orderID string) error {
	o, err := s.Orders.Get(tx, orderID)
	if err != nil {
		return err
	}
	if o.Status != domain.OrderNew {
		return nil
	}
	return s.transition(tx, o, domain.OrderConfirmed)
}
