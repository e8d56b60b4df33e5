package domain

// OrderStatus is a closed set, validated at every external boundary.
type OrderStatus string

const (
	OrderNew        OrderStatus = "NEW"
	OrderConfirmed  OrderStatus = "CONFIRMED"
	OrderProcessing OrderStatus = "PROCESSING"
	OrderShipped    OrderStatus = "SHIPPED"
	OrderDelivered  OrderStatus = "DELIVERED"
	OrderCompleted  OrderStatus = "COMPLETED"
	OrderCancelled  OrderStatus = "CANCELLED"
)

// rank orders the happy path NEW..COMPLETED. CANCELLED sits outside it.
var orderRank = map[OrderStatus]int{
	OrderNew:        0,
	OrderConfirmed:  1,
	OrderProcessing: 2,
	OrderShipped:    3,
	OrderDelivered:  4,
	OrderCompleted:  5,
}

func (s OrderStatus) Valid() bool {
	_, ok := orderRank[s]
	return ok || s == OrderCancelled
}

// Finalized reports whether inventory is considered sold for this status:
// any status from CONFIRMED onward except CANCELLED.
func (s OrderStatus) Finalized() bool {
	r, ok := orderRank[s]
	return ok && r >= orderRank[OrderConfirmed]
}

// CanTransition reports whether old -> new is a legal order transition:
// forward along the happy path (skipping steps is allowed), or into
// CANCELLED from anywhere. CANCELLED itself is terminal; COMPLETED only
// ends the happy path and stays cancellable. Self-transitions are illegal.
func (s OrderStatus) CanTransition(to OrderStatus) bool {
	if !s.Valid() || !to.Valid() || s == to || s == OrderCancelled {
		return false
	}
	if to == OrderCancelled {
		return true
	}
	return orderRank[to] > orderRank[s]
}

// PaymentStatus is a closed set; every non-PENDING status is terminal.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
	PaymentCancelled PaymentStatus = "CANCELLED"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentFailed, PaymentCancelled:
		return true
	}
	return false
}

func (s PaymentStatus) CanTransition(to PaymentStatus) bool {
	return s == PaymentPending && to.Valid() && to != PaymentPending
}
