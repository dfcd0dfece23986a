package scheduling

import (
	"context"
	"time"

	"github.com/Chibschibs-tech/fitnest/internal/models"
)

// Reader loads orders and their deliveries.
type Reader interface {
	// GetOrder returns nil and no error when the order does not exist.
	// Inside InTx the order row stays locked until the transaction ends.
	GetOrder(ctx context.Context, id int64) (*models.Order, error)
	// ListDeliveries returns the order's deliveries by scheduled date.
	ListDeliveries(ctx context.Context, orderID int64) ([]models.Delivery, error)
}

// Writer mutates orders and deliveries. The guarded order updates report
// false when the guard did not match and nothing was written.
type Writer interface {
	// PauseOrder sets status=paused, paused_at and increments pause_count
	// only while the order is not paused and has no pause used.
	PauseOrder(ctx context.Context, id int64, pausedAt time.Time) (bool, error)
	// ResumeOrder sets status=active and clears paused_at only while paused.
	ResumeOrder(ctx context.Context, id int64) (bool, error)
	// ReplaceDeliveries drops the order's deliveries and stores the given
	// ones, writing the new ids back into the slice.
	ReplaceDeliveries(ctx context.Context, orderID int64, deliveries []models.Delivery) error
	// UpdateDeliveryDates moves ids[i] to dates[i], in slice order.
	// Delivered rows are never touched; a missing or delivered id is an
	// error so the transaction does not commit a partial shift. A date
	// already used by the order is ErrDeliveryConflict.
	UpdateDeliveryDates(ctx context.Context, ids []int64, dates []time.Time) error
	// DispatchDeliveries marks pending deliveries of active orders scheduled
	// on day as in transit and returns how many changed.
	DispatchDeliveries(ctx context.Context, day time.Time) (int64, error)
	// MarkDelivered records a drop-off for a delivery that is in transit or
	// scheduled on or before today. It reports false when the delivery is
	// missing, not due yet or already delivered.
	MarkDelivered(ctx context.Context, id int64, today time.Time) (bool, error)
}

// Tx is the view of the store inside a transaction.
type Tx interface {
	Reader
	Writer
}

// Store is the persistence the engine depends on. InTx commits when fn
// returns nil and rolls back otherwise, returning fn's error unchanged.
type Store interface {
	Tx
	InTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}
