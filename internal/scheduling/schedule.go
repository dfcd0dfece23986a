package scheduling

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/Chibschibs-tech/fitnest/internal/models"
)

// ScheduleRequest describes a schedule to generate for an order.
type ScheduleRequest struct {
	OrderID    int64
	StartDate  time.Time
	TotalWeeks int
	Days       models.WeekdaySet
}

// Schedule is an order's deliveries together with its pause eligibility.
type Schedule struct {
	OrderID           int64
	Deliveries        []models.Delivery
	NextDeliveryDate  *time.Time
	CanPause          bool
	PauseEligibleDate *time.Time
	// Synthetic marks a placeholder schedule that is not backed by stored
	// deliveries. It must never be treated as authoritative.
	Synthetic bool
}

// syntheticDays and syntheticWeeks shape the placeholder schedule.
var syntheticDays = models.NewWeekdaySet(models.Monday, models.Wednesday, models.Friday)

const syntheticWeeks = 4

// BuildSchedule enumerates the deliveries of an order: one per requested
// weekday for each of totalWeeks weeks counted from start. The result is in
// ascending date order, all pending, numbered by week starting at 1.
func BuildSchedule(orderID int64, start time.Time, totalWeeks int, days models.WeekdaySet) ([]models.Delivery, error) {
	if totalWeeks <= 0 || totalWeeks > MaxTotalWeeks {
		return nil, fmt.Errorf("%w: totalWeeks must be between 1 and %d, got %d", ErrInvalidScheduleInput, MaxTotalWeeks, totalWeeks)
	}
	if days.Len() == 0 {
		return nil, fmt.Errorf("%w: at least one delivery day is required", ErrInvalidScheduleInput)
	}

	start = models.Day(start)
	weekdays := days.Days()
	deliveries := make([]models.Delivery, 0, totalWeeks*len(weekdays))
	for week := 0; week < totalWeeks; week++ {
		for _, d := range weekdays {
			offset := (int(d) - int(start.Weekday()) + 7) % 7
			deliveries = append(deliveries, models.Delivery{
				OrderID:       orderID,
				ScheduledDate: start.AddDate(0, 0, week*7+offset),
				Status:        models.DeliveryPending,
				WeekNumber:    week + 1,
			})
		}
	}

	sort.SliceStable(deliveries, func(i, j int) bool {
		return deliveries[i].ScheduledDate.Before(deliveries[j].ScheduledDate)
	})
	return deliveries, nil
}

// GenerateSchedule builds the schedule for req and replaces whatever
// deliveries the order had. Regenerating with the same request is idempotent.
func (e *Engine) GenerateSchedule(ctx context.Context, req ScheduleRequest) ([]models.Delivery, error) {
	now := e.now()
	start := models.Day(req.StartDate)
	if start.Before(e.today(now)) {
		return nil, fmt.Errorf("%w: start date %s is in the past", ErrInvalidScheduleInput, start.Format(models.DateLayout))
	}
	deliveries, err := BuildSchedule(req.OrderID, start, req.TotalWeeks, req.Days)
	if err != nil {
		return nil, err
	}
	for i := range deliveries {
		deliveries[i].CreatedAt = now
		deliveries[i].UpdatedAt = now
	}

	err = e.inTx(ctx, "generate schedule", func(ctx context.Context, tx Tx) error {
		order, err := tx.GetOrder(ctx, req.OrderID)
		if err != nil {
			return storageErr("get order", err)
		}
		if order == nil {
			return ErrOrderNotFound
		}
		if order.Status.Closed() {
			return fmt.Errorf("%w: order is %s", ErrSubscriptionClosed, order.Status)
		}
		// Fresh rows would ignore the running pause.
		if order.Status == models.OrderPaused {
			return fmt.Errorf("%w: resume before regenerating", ErrAlreadyPaused)
		}

		existing, err := tx.ListDeliveries(ctx, req.OrderID)
		if err != nil {
			return storageErr("list deliveries", err)
		}
		for _, d := range existing {
			if d.Status == models.DeliveryDelivered {
				return ErrScheduleLocked
			}
		}

		if err := tx.ReplaceDeliveries(ctx, req.OrderID, deliveries); err != nil {
			return storageErr("replace deliveries", err)
		}
		return nil
	})
	if err != nil {
		e.logFailure("schedule generation failed", req.OrderID, err)
		return nil, err
	}

	e.metrics.ScheduleGenerated()
	e.log.Info("delivery schedule generated",
		zap.Int64("order_id", req.OrderID),
		zap.String("start_date", start.Format(models.DateLayout)),
		zap.Int("weeks", req.TotalWeeks),
		zap.Strings("days", req.Days.Strings()),
		zap.Int("deliveries", len(deliveries)),
	)
	return deliveries, nil
}

// GetDeliverySchedule loads the order's deliveries and works out whether
// the subscription can be paused right now.
func (e *Engine) GetDeliverySchedule(ctx context.Context, orderID int64) (*Schedule, error) {
	order, err := e.Order(ctx, orderID)
	if err != nil {
		return nil, err
	}
	deliveries, err := e.store.ListDeliveries(ctx, orderID)
	if err != nil {
		return nil, storageErr("list deliveries", err)
	}

	if len(deliveries) == 0 && e.synthetic {
		return e.syntheticSchedule(order)
	}

	now := e.now()
	s := e.evaluate(deliveries, now)
	s.OrderID = orderID
	if s.Deliveries == nil {
		s.Deliveries = []models.Delivery{}
	}
	return s, nil
}

// evaluate finds the next pending delivery and applies the notice window.
func (e *Engine) evaluate(deliveries []models.Delivery, now time.Time) *Schedule {
	today := e.today(now)
	s := &Schedule{Deliveries: deliveries}

	for _, d := range deliveries {
		if d.Status != models.DeliveryPending || d.ScheduledDate.Before(today) {
			continue
		}
		if s.NextDeliveryDate == nil || d.ScheduledDate.Before(*s.NextDeliveryDate) {
			date := d.ScheduledDate
			s.NextDeliveryDate = &date
		}
	}

	if s.NextDeliveryDate != nil && e.instant(*s.NextDeliveryDate).Sub(now) >= PauseNoticeWindow {
		s.CanPause = true
		return s
	}
	eligible := now.Add(PauseNoticeWindow)
	s.PauseEligibleDate = &eligible
	return s
}

// syntheticSchedule is a placeholder for orders without delivery rows.
// It is anchored on the order so the same order always gets the same dates.
func (e *Engine) syntheticSchedule(order *models.Order) (*Schedule, error) {
	var anchor time.Time
	if order.DeliveryStartDate != nil {
		anchor = models.Day(*order.DeliveryStartDate)
	} else {
		created := models.Day(order.CreatedAt.In(e.loc))
		anchor = created.AddDate(0, 0, (int(time.Monday)-int(created.Weekday())+7)%7)
	}
	deliveries, err := BuildSchedule(order.ID, anchor, syntheticWeeks, syntheticDays)
	if err != nil {
		return nil, err
	}
	e.log.Warn("serving synthetic delivery schedule", zap.Int64("order_id", order.ID))
	return &Schedule{
		OrderID:    order.ID,
		Deliveries: deliveries,
		Synthetic:  true,
	}, nil
}

func (e *Engine) logFailure(msg string, orderID int64, err error) {
	if isStorage(err) {
		e.log.Error(msg, zap.Int64("order_id", orderID), zap.Error(err))
		return
	}
	e.log.Info(msg, zap.Int64("order_id", orderID), zap.String("reason", Kind(err)))
}
