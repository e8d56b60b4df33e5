package services_test

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockroom/internal/domain"
	"stockroom/internal/repos"
	"stockroom/internal/services"
)

func newPaymentService(db *sqlx.DB, orders *services.OrderService) *services.PaymentService {
	return services.NewPaymentService(repos.NewPaymentRepo(db), orders)
}

func orderStatus(t *testing.T, db *sqlx.DB, orderID string) domain.OrderStatus {
	t.Helper()
	var s domain.OrderStatus
	require.NoError(t, db.Get(&s, `SELECT status FROM orders WHERE id=?`, orderID))
	return s
}

func TestPaymentCreate_AmountMustMatchExactly(t *testing.T) {
	db := memdb(t)
	orderSvc := newOrderService(db)
	paySvc := newPaymentService(db, orderSvc)

	o := mustCreate(t, orderSvc, services.NewItem{ProductID: "kb-1", Qty: 2}) // total 100.00

	_, err := paySvc.Create(alice, o.ID, 99.99, "card", "")
	assert.ErrorIs(t, err, domain.ErrInvalidOperation)

	p, err := paySvc.Create(alice, o.ID, 100.00, "card", "first attempt")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPending, p.Status)
	assert.Equal(t, o.ID, p.OrderID)
	assert.NotEmpty(t, p.TransactionID)
}

func TestPaymentCreate_Eligibility(t *testing.T) {
	db := memdb(t)
	orderSvc := newOrderService(db)
	paySvc := newPaymentService(db, orderSvc)

	o := mustCreate(t, orderSvc, services.NewItem{ProductID: "kb-1", Qty: 1})

	// only the owner (or the back office) may pay for an order
	_, err := paySvc.Create(bob, o.ID, 50.00, "card", "")
	assert.ErrorIs(t, err, domain.ErrAccessDenied)

	_, err = paySvc.Create(alice, "ghost", 50.00, "card", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// an order past CONFIRMED can no longer take a payment
	require.NoError(t, orderSvc.UpdateStatus(admin, o.ID, domain.OrderProcessing))
	_, err = paySvc.Create(alice, o.ID, 50.00, "card", "")
	assert.ErrorIs(t, err, domain.ErrInvalidOperation)

	// neither can a cancelled one
	o2 := mustCreate(t, orderSvc, services.NewItem{ProductID: "kb-1", Qty: 1})
	require.NoError(t, orderSvc.Cancel(alice, o2.ID))
	_, err = paySvc.Create(alice, o2.ID, 50.00, "card", "")
	assert.ErrorIs(t, err, domain.ErrInvalidOperation)
}

func TestPaymentCompleted_ConfirmsOrderAndFinalizesStock(t *testing.T) {
	db := memdb(t)
	orderSvc := newOrderService(db)
	paySvc := newPaymentService(db, orderSvc)

	o := mustCreate(t, orderSvc, services.NewItem{ProductID: "kb-1", Qty: 2})
	p, err := paySvc.Create(alice, o.ID, 100.00, "card", "")
	require.NoError(t, err)

	// only the back office resolves payments
	assert.ErrorIs(t, paySvc.UpdateStatus(alice, p.ID, domain.PaymentCompleted), domain.ErrAccessDenied)

	require.NoError(t, paySvc.UpdateStatus(admin, p.ID, domain.PaymentCompleted))

	assert.Equal(t, domain.OrderConfirmed, orderStatus(t, db, o.ID))
	a, r := ledgerRow(t, db, "kb-1")
	assert.Equal(t, 98, a)
	assert.Equal(t, 0, r)

	// a resolved payment is terminal
	assert.ErrorIs(t, paySvc.UpdateStatus(admin, p.ID, domain.PaymentFailed), domain.ErrInvalidOperation)
}

func TestPaymentCompleted_AlreadyConfirmedOrder(t *testing.T) {
	db := memdb(t)
	orderSvc := newOrderService(db)
	paySvc := newPaymentService(db, orderSvc)

	o := mustCreate(t, orderSvc, services.NewItem{ProductID: "kb-1", Qty: 2})
	require.NoError(t, orderSvc.UpdateStatus(admin, o.ID, domain.OrderConfirmed))

	p, err := paySvc.Create(alice, o.ID, 100.00, "card", "")
	require.NoError(t, err)
	require.NoError(t, paySvc.UpdateStatus(admin, p.ID, domain.PaymentCompleted))

	// no second promotion, no second finalization
	assert.Equal(t, domain.OrderConfirmed, orderStatus(t, db, o.ID))
	a, r := ledgerRow(t, db, "kb-1")
	assert.Equal(t, 98, a)
	assert.Equal(t, 0, r)
}

func TestPaymentFailed_LeavesOrderOpenForRetry(t *testing.T) {
	db := memdb(t)
	orderSvc := newOrderService(db)
	paySvc := newPaymentService(db, orderSvc)

	o := mustCreate(t, orderSvc, services.NewItem{ProductID: "kb-1", Qty: 2})
	p1, err := paySvc.Create(alice, o.ID, 100.00, "card", "")
	require.NoError(t, err)

	require.NoError(t, paySvc.UpdateStatus(admin, p1.ID, domain.PaymentFailed))

	// order untouched: still NEW, stock still reserved
	assert.Equal(t, domain.OrderNew, orderStatus(t, db, o.ID))
	a, r := ledgerRow(t, db, "kb-1")
	assert.Equal(t, 98, a)
	assert.Equal(t, 2, r)

	// retry with a fresh payment succeeds
	p2, err := paySvc.Create(alice, o.ID, 100.00, "card", "retry")
	require.NoError(t, err)
	require.NoError(t, paySvc.UpdateStatus(admin, p2.ID, domain.PaymentCompleted))
	assert.Equal(t, domain.OrderConfirmed, orderStatus(t, db, o.ID))
}

func TestPaymentUpdateStatus_StaleWriteRefused(t *testing.T) {
	db := memdb(t)
	orderSvc := newOrderService(db)
	paySvc := newPaymentService(db, orderSvc)
	repo := repos.NewPaymentRepo(db)

	o := mustCreate(t, orderSvc, services.NewItem{ProductID: "kb-1", Qty: 2})
	p, err := paySvc.Create(alice, o.ID, 100.00, "card", "")
	require.NoError(t, err)

	// A writer that read the payment while it was still PENDING.
	stale, err := repo.Get(db, p.ID)
	require.NoError(t, err)
	require.Equal(t, domain.PaymentPending, stale.Status)

	require.NoError(t, paySvc.UpdateStatus(admin, p.ID, domain.PaymentCompleted))

	// The stale conditional write cannot overwrite the resolved payment.
	tx, err := db.Beginx()
	require.NoError(t, err)
	defer func() { _ = tx.Rollback() }()
	err = repo.UpdateStatus(tx, p.ID, stale.Status, domain.PaymentFailed)
	assert.ErrorIs(t, err, domain.ErrInvalidOperation)
	require.NoError(t, tx.Rollback())

	got, err := paySvc.Get(admin, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentCompleted, got.Status)
}

func TestPaymentGet_OwnershipViaOrder(t *testing.T) {
	db := memdb(t)
	orderSvc := newOrderService(db)
	paySvc := newPaymentService(db, orderSvc)

	o := mustCreate(t, orderSvc, services.NewItem{ProductID: "kb-1", Qty: 2})
	p, err := paySvc.Create(alice, o.ID, 100.00, "card", "")
	require.NoError(t, err)

	_, err = paySvc.Get(bob, p.ID)
	assert.ErrorIs(t, err, domain.ErrAccessDenied)

	got, err := paySvc.Get(alice, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
}
