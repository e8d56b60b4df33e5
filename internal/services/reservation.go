package services

import "stockroom/internal/domain"

// StockEffect is what a status transition does to the order's reservations.
type StockEffect int

const (
	EffectNone StockEffect = iota
	EffectRelease
	EffectFinalize
)

// EffectFor is the single source of truth mapping order-status transitions
// to ledger side effects. UpdateStatus, Cancel and SoftDelete all consult
// it, so the order lifecycle drives the stock lifecycle in exactly one place.
//
// Cancelling an order whose stock was already finalized releases nothing:
// those units left the ledger when the order was confirmed, and there is no
// reservation left to return.
func EffectFor(old, to domain.OrderStatus) StockEffect {
	switch {
	case to == domain.OrderCancelled && !old.Finalized():
		return EffectRelease
	case to == domain.OrderCancelled:
		return EffectNone
	case to.Finalized() && !old.Finalized():
		return EffectFinalize
	default:
		// finalized -> finalized, and every other move, leaves stock alone
		return EffectNone
	}
}
