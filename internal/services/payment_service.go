package services

import (
	"github.com/google/uuid"

	"stockroom/internal/domain"
	"stockroom/internal/repos"
)

type PaymentService struct {
	Payments *repos.PaymentRepo
	Orders   *OrderService
}

func NewPaymentService(payments *repos.PaymentRepo, orders *OrderService) *PaymentService {
	return &PaymentService{Payments: payments, Orders: orders}
}

// Create opens a PENDING payment against an order. The order must still be
// NEW or CONFIRMED, and the amount must equal the order total exactly:
// rounding to the currency's minor unit is the caller's job, not ours.
// Only the order's owner or a privileged actor may pay for it. The order
// is read in the same transaction as the insert, so a payment cannot be
// opened against an order cancelled moments earlier.
func (s *PaymentService) Create(actor domain.Actor, orderID string, amount float64, method, notes string) (domain.Payment, error) {
	if method == "" {
		return domain.Payment{}, domain.ErrInvalidOperation
	}
	tx, err := s.Payments.DB().Beginx()
	if err != nil {
		return domain.Payment{}, err
	}
	defer func() { _ = tx.Rollback() }()

	o, err := s.Orders.Orders.Get(tx, orderID)
	if err != nil {
		return domain.Payment{}, err
	}
	if !actor.Privileged && o.UserID != actor.UserID {
		return domain.Payment{}, domain.ErrAccessDenied
	}
	if !o.Active {
		return domain.Payment{}, domain.ErrInvalidOperation
	}
	if o.Status != domain.OrderNew && o.Status != domain.OrderConfirmed {
		return domain.Payment{}, domain.ErrInvalidOperation
	}
	if amount != o.Total {
		return domain.Payment{}, domain.ErrInvalidOperation
	}

	p := domain.Payment{
		ID:            uuid.NewString(),
		OrderID:       orderID,
		Amount:        amount,
		Method:        method,
		Status:        domain.PaymentPending,
		TransactionID: uuid.NewString(),
		Notes:         notes,
	}
	if err := s.Payments.Insert(tx, p); err != nil {
		return domain.Payment{}, err
	}
	if err := tx.Commit(); err != nil {
		return domain.Payment{}, err
	}
	return p, nil
}

// UpdateStatus resolves a PENDING payment. Completing it confirms a still-NEW
// order, finalizing its reserved stock, in the same transaction as the
// payment write. Marking it FAILED or CANCELLED leaves the order untouched
// so the customer can retry with a new payment; a completed payment is never
// rolled back by later events.
func (s *PaymentService) UpdateStatus(actor domain.Actor, id string, to domain.PaymentStatus) error {
	if !actor.Privileged {
		return domain.ErrAccessDenied
	}
	tx, err := s.Payments.DB().Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	// Read and write the status inside one transaction; the conditional
	// update refuses to overwrite a payment resolved by another writer.
	p, err := s.Payments.Get(tx, id)
	if err != nil {
		return err
	}
	if !p.Status.CanTransition(to) {
		return domain.ErrInvalidOperation
	}
	if err := s.Payments.UpdateStatus(tx, id, p.Status, to); err != nil {
		return err
	}
	if to == domain.PaymentCompleted {
		if err := s.Orders.promote(tx, p.OrderID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Get returns a payment; ownership is resolved through the payment's order.
func (s *PaymentService) Get(actor domain.Actor, id string) (domain.Payment, error) {
	p, err := s.Payments.Get(s.Payments.DB(), id)
	if err != nil {
		return domain.Payment{}, err
	}
	if !actor.Privileged {
		o, err := s.Orders.Orders.Get(s.Payments.DB(), p.OrderID)
		if err != nil {
			return domain.Payment{}, err
		}
		if o.UserID != actor.UserID {
			return domain.Payment{}, domain.ErrAccessDenied
		}
	}
	return p, nil
}
