package scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chibschibs-tech/fitnest/internal/models"
)

func TestDispatchDueMarksTodaysDeliveries(t *testing.T) {
	store := newMemStore()
	store.addOrder(models.Order{ID: 1, Status: models.OrderActive})
	store.addOrder(models.Order{ID: 2, Status: models.OrderPaused})
	today := store.addDelivery(1, "2024-01-08", models.DeliveryPending, 1)
	tomorrow := store.addDelivery(1, "2024-01-09", models.DeliveryPending, 1)
	paused := store.addDelivery(2, "2024-01-08", models.DeliveryPending, 1)
	engine := newTestEngine(t, store, "2024-01-08T05:00:00Z")

	n, err := engine.DispatchDue(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1), n)
	assert.Equal(t, models.DeliveryInTransit, store.deliveries[today].Status)
	assert.Equal(t, models.DeliveryPending, store.deliveries[tomorrow].Status)
	assert.Equal(t, models.DeliveryPending, store.deliveries[paused].Status)
}

func TestMarkDeliveredIsFinal(t *testing.T) {
	store := newMemStore()
	store.addOrder(models.Order{ID: 1, Status: models.OrderActive})
	id := store.addDelivery(1, "2024-01-08", models.DeliveryInTransit, 1)
	engine := newTestEngine(t, store, "2024-01-08T18:00:00Z")

	require.NoError(t, engine.MarkDelivered(context.Background(), id))
	assert.Equal(t, models.DeliveryDelivered, store.deliveries[id].Status)

	assert.ErrorIs(t, engine.MarkDelivered(context.Background(), id), ErrDeliveryNotFound)
	assert.ErrorIs(t, engine.MarkDelivered(context.Background(), 999), ErrDeliveryNotFound)
}

func TestMarkDeliveredRefusesFutureDeliveries(t *testing.T) {
	store := newMemStore()
	store.addOrder(models.Order{ID: 1, Status: models.OrderActive})
	missed := store.addDelivery(1, "2024-01-05", models.DeliveryPending, 1)
	upcoming := store.addDelivery(1, "2024-01-10", models.DeliveryPending, 2)
	engine := newTestEngine(t, store, "2024-01-08T18:00:00Z")

	assert.ErrorIs(t, engine.MarkDelivered(context.Background(), upcoming), ErrDeliveryNotFound)
	assert.Equal(t, models.DeliveryPending, store.deliveries[upcoming].Status)

	require.NoError(t, engine.MarkDelivered(context.Background(), missed))
	assert.Equal(t, models.DeliveryDelivered, store.deliveries[missed].Status)
}

func TestKind(t *testing.T) {
	assert.Equal(t, "ok", Kind(nil))
	assert.Equal(t, "storage", Kind(storageErr("op", errBoom)))
	assert.Equal(t, "pause_not_eligible", Kind(&PauseNotEligibleError{}))
	assert.Equal(t, "internal", Kind(errBoom))

	conflict := storageErr("move delivery", ErrDeliveryConflict)
	assert.Equal(t, "delivery_conflict", Kind(conflict))
	assert.NotErrorIs(t, conflict, ErrStorage)
}

func TestTodayUsesConfiguredZone(t *testing.T) {
	zone := time.FixedZone("UTC+4", 4*60*60)
	e := newTestEngine(t, newMemStore(), "2024-01-07T21:30:00Z", WithLocation(zone))
	assert.Equal(t, mustDay("2024-01-08"), e.Today())
}
