package scheduling

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/Chibschibs-tech/fitnest/internal/models"
)

var errBoom = errors.New("boom")

// memStore is an in-memory Store. InTx snapshots state and restores it when
// fn fails, which is enough to observe rollback behaviour.
type memStore struct {
	orders     map[int64]models.Order
	deliveries map[int64]models.Delivery
	nextID     int64

	onGetOrder      func(o *models.Order)
	failList        error
	failUpdateDates error
	failReplace     error
	commits         int
}

func newMemStore() *memStore {
	return &memStore{
		orders:     map[int64]models.Order{},
		deliveries: map[int64]models.Delivery{},
	}
}

func (m *memStore) addOrder(o models.Order) {
	m.orders[o.ID] = o
}

func (m *memStore) addDelivery(orderID int64, date string, status models.DeliveryStatus, week int) int64 {
	m.nextID++
	m.deliveries[m.nextID] = models.Delivery{
		ID:            m.nextID,
		OrderID:       orderID,
		ScheduledDate: mustDay(date),
		Status:        status,
		WeekNumber:    week,
	}
	return m.nextID
}

func (m *memStore) order(id int64) models.Order {
	return m.orders[id]
}

func (m *memStore) dates(orderID int64) []string {
	var out []string
	ds, _ := m.ListDeliveries(context.Background(), orderID)
	for _, d := range ds {
		out = append(out, d.ScheduledDate.Format(models.DateLayout))
	}
	return out
}

func (m *memStore) snapshot() (map[int64]models.Order, map[int64]models.Delivery) {
	orders := make(map[int64]models.Order, len(m.orders))
	for k, v := range m.orders {
		orders[k] = v
	}
	deliveries := make(map[int64]models.Delivery, len(m.deliveries))
	for k, v := range m.deliveries {
		deliveries[k] = v
	}
	return orders, deliveries
}

func (m *memStore) InTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	orders, deliveries := m.snapshot()
	nextID := m.nextID
	if err := fn(ctx, m); err != nil {
		m.orders, m.deliveries, m.nextID = orders, deliveries, nextID
		return err
	}
	m.commits++
	return nil
}

func (m *memStore) GetOrder(_ context.Context, id int64) (*models.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, nil
	}
	if m.onGetOrder != nil {
		m.onGetOrder(&o)
	}
	return &o, nil
}

func (m *memStore) ListDeliveries(_ context.Context, orderID int64) ([]models.Delivery, error) {
	if m.failList != nil {
		return nil, m.failList
	}
	var out []models.Delivery
	for _, d := range m.deliveries {
		if d.OrderID == orderID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ScheduledDate.Equal(out[j].ScheduledDate) {
			return out[i].ID < out[j].ID
		}
		return out[i].ScheduledDate.Before(out[j].ScheduledDate)
	})
	return out, nil
}

func (m *memStore) PauseOrder(_ context.Context, id int64, pausedAt time.Time) (bool, error) {
	o, ok := m.orders[id]
	if !ok || o.Status == models.OrderPaused || o.PauseCount != 0 {
		return false, nil
	}
	o.Status = models.OrderPaused
	o.PausedAt = &pausedAt
	o.PauseCount++
	m.orders[id] = o
	return true, nil
}

func (m *memStore) ResumeOrder(_ context.Context, id int64) (bool, error) {
	o, ok := m.orders[id]
	if !ok || o.Status != models.OrderPaused {
		return false, nil
	}
	o.Status = models.OrderActive
	o.PausedAt = nil
	m.orders[id] = o
	return true, nil
}

func (m *memStore) ReplaceDeliveries(_ context.Context, orderID int64, deliveries []models.Delivery) error {
	if m.failReplace != nil {
		return m.failReplace
	}
	for id, d := range m.deliveries {
		if d.OrderID == orderID {
			delete(m.deliveries, id)
		}
	}
	for i := range deliveries {
		m.nextID++
		deliveries[i].ID = m.nextID
		m.deliveries[m.nextID] = deliveries[i]
	}
	return nil
}

func (m *memStore) UpdateDeliveryDates(_ context.Context, ids []int64, dates []time.Time) error {
	if m.failUpdateDates != nil {
		return m.failUpdateDates
	}
	for i, id := range ids {
		d, ok := m.deliveries[id]
		if !ok || d.Status == models.DeliveryDelivered {
			return fmt.Errorf("delivery %d was not updated", id)
		}
		for _, other := range m.deliveries {
			if other.ID != id && other.OrderID == d.OrderID && other.ScheduledDate.Equal(dates[i]) {
				return ErrDeliveryConflict
			}
		}
		d.ScheduledDate = dates[i]
		m.deliveries[id] = d
	}
	return nil
}

func (m *memStore) DispatchDeliveries(_ context.Context, day time.Time) (int64, error) {
	var n int64
	for id, d := range m.deliveries {
		if d.Status != models.DeliveryPending || !d.ScheduledDate.Equal(day) {
			continue
		}
		if m.orders[d.OrderID].Status != models.OrderActive {
			continue
		}
		d.Status = models.DeliveryInTransit
		m.deliveries[id] = d
		n++
	}
	return n, nil
}

func (m *memStore) MarkDelivered(_ context.Context, id int64, today time.Time) (bool, error) {
	d, ok := m.deliveries[id]
	if !ok || d.Status == models.DeliveryDelivered {
		return false, nil
	}
	if d.Status != models.DeliveryInTransit && d.ScheduledDate.After(today) {
		return false, nil
	}
	d.Status = models.DeliveryDelivered
	m.deliveries[id] = d
	return true, nil
}

func mustDay(s string) time.Time {
	d, err := models.ParseDay(s)
	if err != nil {
		panic(err)
	}
	return d
}

func fixedClock(s string) func() time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return t }
}

func newTestEngine(t *testing.T, store Store, now string, opts ...Option) *Engine {
	t.Helper()
	return New(store, append([]Option{WithClock(fixedClock(now))}, opts...)...)
}
