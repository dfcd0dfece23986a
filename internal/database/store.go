package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/Chibschibs-tech/fitnest/internal/models"
	"github.com/Chibschibs-tech/fitnest/internal/scheduling"
)

var (
	// ErrDuplicateDelivery is returned when a write would give an order two
	// deliveries on the same date.
	ErrDuplicateDelivery = scheduling.ErrDeliveryConflict
	// ErrStaleDelivery is returned when a delivery being moved was removed or
	// delivered after it was read.
	ErrStaleDelivery = errors.New("delivery changed since it was read")
)

// mysqlDuplicateEntry is ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// queries implements scheduling.Tx on top of a querier. With lock set the
// order row is read FOR UPDATE.
type queries struct {
	q    querier
	lock bool
}

// Store is the MySQL implementation of scheduling.Store.
type Store struct {
	queries
	db *sql.DB
}

var _ scheduling.Store = (*Store)(nil)

func NewStore(db *sql.DB) *Store {
	return &Store{queries: queries{q: db}, db: db}
}

// InTx runs fn inside a database transaction.
func (s *Store) InTx(ctx context.Context, fn func(ctx context.Context, tx scheduling.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	// Rollback is a no-op once Commit succeeded.
	defer tx.Rollback()

	if err := fn(ctx, queries{q: tx, lock: true}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

const selectOrder = `
	SELECT id, user_id, status, pause_count, paused_at, delivery_start_date,
	       duration_weeks, created_at, updated_at
	FROM orders WHERE id = ?`

func (q queries) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	query := selectOrder
	if q.lock {
		query += " FOR UPDATE"
	}
	var o models.Order
	var pausedAt, startDate sql.NullTime
	err := q.q.QueryRowContext(ctx, query, id).Scan(
		&o.ID, &o.UserID, &o.Status, &o.PauseCount, &pausedAt, &startDate,
		&o.DurationWeeks, &o.CreatedAt, &o.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select order %d: %w", id, err)
	}
	if pausedAt.Valid {
		o.PausedAt = &pausedAt.Time
	}
	if startDate.Valid {
		d := models.Day(startDate.Time)
		o.DeliveryStartDate = &d
	}
	return &o, nil
}

const selectDeliveries = `
	SELECT id, order_id, scheduled_date, status, week_number, created_at, updated_at
	FROM deliveries WHERE order_id = ?
	ORDER BY scheduled_date, id`

func (q queries) ListDeliveries(ctx context.Context, orderID int64) ([]models.Delivery, error) {
	rows, err := q.q.QueryContext(ctx, selectDeliveries, orderID)
	if err != nil {
		return nil, fmt.Errorf("select deliveries of order %d: %w", orderID, err)
	}
	defer rows.Close()

	var deliveries []models.Delivery
	for rows.Next() {
		var d models.Delivery
		if err := rows.Scan(&d.ID, &d.OrderID, &d.ScheduledDate, &d.Status, &d.WeekNumber, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan delivery: %w", err)
		}
		d.ScheduledDate = models.Day(d.ScheduledDate)
		deliveries = append(deliveries, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate deliveries: %w", err)
	}
	return deliveries, nil
}

// The guard is part of the statement so two concurrent pauses cannot both succeed.
const pauseOrder = `
	UPDATE orders
	SET status = 'paused', paused_at = ?, pause_count = pause_count + 1
	WHERE id = ? AND pause_count < ? AND status NOT IN ('paused', 'cancelled', 'completed')`

func (q queries) PauseOrder(ctx context.Context, id int64, pausedAt time.Time) (bool, error) {
	res, err := q.q.ExecContext(ctx, pauseOrder, pausedAt.UTC(), id, models.MaxPauses)
	if err != nil {
		return false, fmt.Errorf("pause order %d: %w", id, err)
	}
	return affected(res)
}

const resumeOrder = `
	UPDATE orders SET status = 'active', paused_at = NULL
	WHERE id = ? AND status = 'paused'`

func (q queries) ResumeOrder(ctx context.Context, id int64) (bool, error) {
	res, err := q.q.ExecContext(ctx, resumeOrder, id)
	if err != nil {
		return false, fmt.Errorf("resume order %d: %w", id, err)
	}
	return affected(res)
}

const (
	deleteDeliveries = `DELETE FROM deliveries WHERE order_id = ?`
	insertDelivery   = `
		INSERT INTO deliveries (order_id, scheduled_date, status, week_number, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`
)

func (q queries) ReplaceDeliveries(ctx context.Context, orderID int64, deliveries []models.Delivery) error {
	if _, err := q.q.ExecContext(ctx, deleteDeliveries, orderID); err != nil {
		return fmt.Errorf("delete deliveries of order %d: %w", orderID, err)
	}
	if len(deliveries) == 0 {
		return nil
	}

	stmt, err := q.q.PrepareContext(ctx, insertDelivery)
	if err != nil {
		return fmt.Errorf("prepare delivery insert: %w", err)
	}
	defer stmt.Close()

	for i := range deliveries {
		d := &deliveries[i]
		res, err := stmt.ExecContext(ctx, orderID, d.ScheduledDate.Format(models.DateLayout),
			d.Status, d.WeekNumber, d.CreatedAt.UTC(), d.UpdatedAt.UTC())
		if err != nil {
			return fmt.Errorf("insert delivery %s: %w", d.ScheduledDate.Format(models.DateLayout), duplicate(err))
		}
		if d.ID, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("delivery id: %w", err)
		}
	}
	return nil
}

const updateDeliveryDate = `
	UPDATE deliveries SET scheduled_date = ?
	WHERE id = ? AND status <> 'delivered'`

func (q queries) UpdateDeliveryDates(ctx context.Context, ids []int64, dates []time.Time) error {
	if len(ids) != len(dates) {
		return fmt.Errorf("update delivery dates: %d ids but %d dates", len(ids), len(dates))
	}
	if len(ids) == 0 {
		return nil
	}

	stmt, err := q.q.PrepareContext(ctx, updateDeliveryDate)
	if err != nil {
		return fmt.Errorf("prepare delivery date update: %w", err)
	}
	defer stmt.Close()

	for i, id := range ids {
		res, err := stmt.ExecContext(ctx, dates[i].Format(models.DateLayout), id)
		if err != nil {
			return fmt.Errorf("move delivery %d: %w", id, duplicate(err))
		}
		ok, err := affected(res)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("move delivery %d: %w", id, ErrStaleDelivery)
		}
	}
	return nil
}

const dispatchDeliveries = `
	UPDATE deliveries d
	JOIN orders o ON o.id = d.order_id
	SET d.status = 'in_transit'
	WHERE d.scheduled_date = ? AND d.status = 'pending' AND o.status = 'active'`

func (q queries) DispatchDeliveries(ctx context.Context, day time.Time) (int64, error) {
	res, err := q.q.ExecContext(ctx, dispatchDeliveries, day.Format(models.DateLayout))
	if err != nil {
		return 0, fmt.Errorf("dispatch deliveries: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

// Pending rows may only be confirmed once their date has come.
const markDelivered = `
	UPDATE deliveries SET status = 'delivered'
	WHERE id = ? AND (status = 'in_transit'
	      OR (status IN ('pending', 'scheduled') AND scheduled_date <= ?))`

func (q queries) MarkDelivered(ctx context.Context, id int64, today time.Time) (bool, error) {
	res, err := q.q.ExecContext(ctx, markDelivered, id, today.Format(models.DateLayout))
	if err != nil {
		return false, fmt.Errorf("mark delivery %d delivered: %w", id, err)
	}
	return affected(res)
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

// duplicate maps ER_DUP_ENTRY to ErrDuplicateDelivery, keeping the driver error.
func duplicate(err error) error {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
		return fmt.Errorf("%w: %w", ErrDuplicateDelivery, err)
	}
	return err
}
