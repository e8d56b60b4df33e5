package services

import (
	"stockroom/internal/domain"
	"stockroom/internal/repos"
)

// InventoryService is the stock ledger. Each mutation is a single atomic
// read-check-write against the product's row; concurrent callers against
// the same product are serialized by the store and can never drive a
// counter negative.
type InventoryService struct {
	Inv *repos.InventoryRepo
}

func NewInventoryService(inv *repos.InventoryRepo) *InventoryService {
	return &InventoryService{Inv: inv}
}

// Reserve holds qty units of a product for an open order.
func (s *InventoryService) Reserve(productID string, qty int) error {
	if qty <= 0 {
		return domain.ErrInvalidOperation
	}
	return s.Inv.Reserve(s.Inv.DB(), productID, qty)
}

// Release returns qty previously reserved units to the shelf.
func (s *InventoryService) Release(productID string, qty int) error {
	if qty <= 0 {
		return domain.ErrInvalidOperation
	}
	return s.Inv.Release(s.Inv.DB(), productID, qty)
}

// Finalize commits qty reserved units as sold; they leave the ledger.
func (s *InventoryService) Finalize(productID string, qty int) error {
	if qty <= 0 {
		return domain.ErrInvalidOperation
	}
	return s.Inv.Finalize(s.Inv.DB(), productID, qty)
}

// IsAvailable is an advisory, lock-free read: false on a missing or
// inactive row or short stock, never an error. A true answer here is not a
// guarantee; the authoritative check is the one inside Reserve.
func (s *InventoryService) IsAvailable(productID string, qty int) bool {
	if qty <= 0 {
		return false
	}
	row, err := s.Inv.Get(s.Inv.DB(), productID)
	return err == nil && row.Active && row.Available >= qty
}
