package scheduling

import (
	"context"

	"go.uber.org/zap"
)

// DispatchDue moves today's pending deliveries of active orders to in
// transit. Once dispatched a delivery is no longer moved by a pause.
func (e *Engine) DispatchDue(ctx context.Context) (int64, error) {
	today := e.today(e.now())
	n, err := e.store.DispatchDeliveries(ctx, today)
	if err != nil {
		return 0, storageErr("dispatch deliveries", err)
	}
	e.metrics.Dispatched(n)
	return n, nil
}

// MarkDelivered records a completed drop-off. Future deliveries that were
// never dispatched are refused. Delivered is final.
func (e *Engine) MarkDelivered(ctx context.Context, deliveryID int64) error {
	ok, err := e.store.MarkDelivered(ctx, deliveryID, e.today(e.now()))
	if err != nil {
		return storageErr("mark delivered", err)
	}
	if !ok {
		return ErrDeliveryNotFound
	}
	e.log.Info("delivery marked delivered", zap.Int64("delivery_id", deliveryID))
	return nil
}
