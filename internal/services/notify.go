package services

import applog "stockroom/internal/log"

// Notifier is the fire-and-forget dispatch hook invoked after an order is
// placed or shipped. Failures are the dispatcher's problem: callers swallow
// and log them, never propagate.
type Notifier interface {
	OrderPlaced(orderID, userID string) error
	OrderShipped(orderID, userID string) error
}

// LogNotifier writes notification events to the log. It stands in for the
// real mail/push dispatcher, which lives outside this service.
type LogNotifier struct{}

func (LogNotifier) OrderPlaced(orderID, userID string) error {
	applog.Info(nil, "notify.order.placed", map[string]any{"order_id": orderID, "user_id": userID})
	return nil
}

func (LogNotifier) OrderShipped(orderID, userID string) error {
	applog.Info(nil, "notify.order.shipped", map[string]any{"order_id": orderID, "user_id": userID})
	return nil
}
