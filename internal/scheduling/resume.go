package scheduling

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Chibschibs-tech/fitnest/internal/models"
)

// ResumeSubscription reactivates a paused order. With a resume date the
// remaining pending deliveries are moved together so the first one lands on
// that date; without one they keep the dates the pause gave them.
func (e *Engine) ResumeSubscription(ctx context.Context, orderID int64, resumeDate *time.Time) (err error) {
	defer func() { e.metrics.Resume(Kind(err)) }()

	now := e.now()
	shift := 0
	err = e.inTx(ctx, "resume subscription", func(ctx context.Context, tx Tx) error {
		order, err := tx.GetOrder(ctx, orderID)
		if err != nil {
			return storageErr("get order", err)
		}
		if order == nil {
			return ErrOrderNotFound
		}
		if order.Status != models.OrderPaused {
			return fmt.Errorf("%w: order is %s", ErrNotPaused, order.Status)
		}

		var day time.Time
		if resumeDate != nil {
			day = models.Day(*resumeDate)
			earliest := now.Add(ResumeNoticeWindow)
			if e.instant(day).Before(earliest) {
				return fmt.Errorf("%w: must be on or after %s", ErrResumeTooSoon, earliest.In(e.loc).Format(time.RFC3339))
			}
		}

		ok, err := tx.ResumeOrder(ctx, orderID)
		if err != nil {
			return storageErr("resume order", err)
		}
		if !ok {
			return ErrNotPaused
		}
		if resumeDate == nil {
			return nil
		}

		deliveries, err := tx.ListDeliveries(ctx, orderID)
		if err != nil {
			return storageErr("list deliveries", err)
		}
		pending := shiftable(deliveries, e.today(now))
		if len(pending) == 0 {
			return nil
		}
		first := pending[0].ScheduledDate
		for _, d := range pending[1:] {
			if d.ScheduledDate.Before(first) {
				first = d.ScheduledDate
			}
		}
		shift = daysBetween(first, day)
		if shift == 0 {
			return nil
		}
		ids, dates := shiftDates(pending, shift)
		if err := tx.UpdateDeliveryDates(ctx, ids, dates); err != nil {
			return storageErr("shift deliveries", err)
		}
		return nil
	})
	if err != nil {
		e.logFailure("resume rejected", orderID, err)
		return err
	}

	e.log.Info("subscription resumed",
		zap.Int64("order_id", orderID),
		zap.Bool("rescheduled", resumeDate != nil),
		zap.Int("shift_days", shift),
	)
	return nil
}
