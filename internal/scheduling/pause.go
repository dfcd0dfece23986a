package scheduling

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Chibschibs-tech/fitnest/internal/models"
)

// PauseSubscription pauses an order for days and pushes every pending
// upcoming delivery back by the same amount. Delivered and in-transit
// deliveries keep their dates. Nothing is written unless every check passes.
func (e *Engine) PauseSubscription(ctx context.Context, orderID int64, days int) (err error) {
	defer func() { e.metrics.Pause(Kind(err)) }()

	if days < MinPauseDays || days > MaxPauseDays {
		return fmt.Errorf("%w: %d days, must be between %d and %d", ErrInvalidPauseDuration, days, MinPauseDays, MaxPauseDays)
	}

	now := e.now()
	shifted := 0
	err = e.inTx(ctx, "pause subscription", func(ctx context.Context, tx Tx) error {
		order, err := tx.GetOrder(ctx, orderID)
		if err != nil {
			return storageErr("get order", err)
		}
		switch {
		case order == nil:
			return ErrOrderNotFound
		case order.PauseCount >= models.MaxPauses:
			return ErrPauseLimitExceeded
		case order.Status == models.OrderPaused:
			return ErrAlreadyPaused
		case order.Status.Closed():
			return fmt.Errorf("%w: order is %s", ErrSubscriptionClosed, order.Status)
		}

		deliveries, err := tx.ListDeliveries(ctx, orderID)
		if err != nil {
			return storageErr("list deliveries", err)
		}
		s := e.evaluate(deliveries, now)
		if !s.CanPause {
			return &PauseNotEligibleError{NextDelivery: s.NextDeliveryDate, EligibleAt: *s.PauseEligibleDate}
		}

		// The guarded update is what enforces one pause per subscription when
		// two requests race past the checks above.
		ok, err := tx.PauseOrder(ctx, orderID, now)
		if err != nil {
			return storageErr("pause order", err)
		}
		if !ok {
			return ErrPauseLimitExceeded
		}

		pending := shiftable(deliveries, e.today(now))
		if len(pending) == 0 {
			return nil
		}
		ids, dates := shiftDates(pending, days)
		if err := tx.UpdateDeliveryDates(ctx, ids, dates); err != nil {
			return storageErr("shift deliveries", err)
		}
		shifted = len(ids)
		return nil
	})
	if err != nil {
		e.logFailure("pause rejected", orderID, err)
		return err
	}

	e.log.Info("subscription paused",
		zap.Int64("order_id", orderID),
		zap.Int("days", days),
		zap.Int("deliveries_shifted", shifted),
	)
	return nil
}
