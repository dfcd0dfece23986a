// Package scheduling computes meal delivery schedules and applies the
// subscription pause and resume rules on top of a Store.
package scheduling

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/Chibschibs-tech/fitnest/internal/metrics"
	"github.com/Chibschibs-tech/fitnest/internal/models"
)

const (
	// PauseNoticeWindow is how far ahead the next delivery must be for a pause.
	PauseNoticeWindow = 72 * time.Hour
	// ResumeNoticeWindow is the minimum lead time for an explicit resume date.
	ResumeNoticeWindow = 48 * time.Hour

	MinPauseDays      = 1
	MaxPauseDays      = 21
	DefaultTotalWeeks = 4
	// MaxTotalWeeks caps a single generated schedule at one year.
	MaxTotalWeeks = 52
)

// Engine is the delivery scheduling engine.
type Engine struct {
	store     Store
	now       func() time.Time
	loc       *time.Location
	log       *zap.Logger
	metrics   *metrics.Recorder
	synthetic bool
}

type Option func(*Engine)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithLocation sets the zone calendar dates are interpreted in.
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) {
		if loc != nil {
			e.loc = loc
		}
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

func WithMetrics(r *metrics.Recorder) Option {
	return func(e *Engine) { e.metrics = r }
}

// WithSyntheticFallback makes GetDeliverySchedule return a flagged demo
// schedule for orders that have no delivery rows.
func WithSyntheticFallback(enabled bool) Option {
	return func(e *Engine) { e.synthetic = enabled }
}

func New(store Store, opts ...Option) *Engine {
	e := &Engine{
		store: store,
		now:   time.Now,
		loc:   time.UTC,
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Order returns the order or ErrOrderNotFound.
func (e *Engine) Order(ctx context.Context, id int64) (*models.Order, error) {
	order, err := e.store.GetOrder(ctx, id)
	if err != nil {
		return nil, storageErr("get order", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// Today is the current calendar date in the engine's zone.
func (e *Engine) Today() time.Time {
	return e.today(e.now())
}

// today is the calendar date of now in the engine's zone.
func (e *Engine) today(now time.Time) time.Time {
	return models.Day(now.In(e.loc))
}

// instant is the start of calendar day d in the engine's zone.
func (e *Engine) instant(d time.Time) time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, e.loc)
}

// inTx runs fn in a transaction. Errors that are not one of the engine's
// kinds come from the store itself and are reported as storage failures.
func (e *Engine) inTx(ctx context.Context, op string, fn func(ctx context.Context, tx Tx) error) error {
	err := e.store.InTx(ctx, fn)
	if err != nil && Kind(err) == "internal" {
		return storageErr(op, err)
	}
	return err
}

// shiftable returns the pending deliveries on or after today.
func shiftable(deliveries []models.Delivery, today time.Time) []models.Delivery {
	var out []models.Delivery
	for _, d := range deliveries {
		if d.Status == models.DeliveryPending && !d.ScheduledDate.Before(today) {
			out = append(out, d)
		}
	}
	return out
}

// shiftDates moves every delivery by days. The result is ordered so that
// applying the updates one by one never lands two rows on the same date:
// latest first when moving forward, earliest first when moving back.
func shiftDates(deliveries []models.Delivery, days int) ([]int64, []time.Time) {
	sorted := append([]models.Delivery(nil), deliveries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if days > 0 {
			return sorted[i].ScheduledDate.After(sorted[j].ScheduledDate)
		}
		return sorted[i].ScheduledDate.Before(sorted[j].ScheduledDate)
	})
	ids := make([]int64, len(sorted))
	dates := make([]time.Time, len(sorted))
	for i, d := range sorted {
		ids[i] = d.ID
		dates[i] = d.ScheduledDate.AddDate(0, 0, days)
	}
	return ids, dates
}

func daysBetween(from, to time.Time) int {
	return int(models.Day(to).Sub(models.Day(from)).Hours() / 24)
}

func isStorage(err error) bool {
	return errors.Is(err, ErrStorage)
}
