package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// runTimeout bounds a single dispatch run.
const runTimeout = time.Minute

// DueDispatcher moves the deliveries due today out for delivery.
type DueDispatcher interface {
	DispatchDue(ctx context.Context) (int64, error)
}

// Dispatcher runs a DueDispatcher on a cron schedule.
type Dispatcher struct {
	cron *cron.Cron
	job  DueDispatcher
	log  *zap.Logger
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	log *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Infow(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Errorw(msg, append(keysAndValues, "error", err)...)
}

// NewDispatcher schedules job on expr, a standard five-field cron
// expression evaluated in loc.
func NewDispatcher(job DueDispatcher, expr string, loc *time.Location, log *zap.Logger) (*Dispatcher, error) {
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = zap.NewNop()
	}
	// A slow run is skipped over by the next tick instead of overlapping it.
	cl := cronLogger{log: log.Named("cron").Sugar()}
	d := &Dispatcher{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		job: job,
		log: log,
	}
	if _, err := d.cron.AddFunc(expr, func() { d.RunOnce(context.Background()) }); err != nil {
		return nil, fmt.Errorf("dispatch schedule %q: %w", expr, err)
	}
	return d, nil
}

func (d *Dispatcher) Start() {
	d.log.Info("delivery dispatcher started")
	d.cron.Start()
}

// Stop stops scheduling and waits for a running dispatch until ctx is done.
func (d *Dispatcher) Stop(ctx context.Context) error {
	done := d.cron.Stop()
	select {
	case <-done.Done():
		d.log.Info("delivery dispatcher stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunOnce dispatches today's deliveries and returns how many moved.
func (d *Dispatcher) RunOnce(ctx context.Context) int64 {
	ctx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()

	n, err := d.job.DispatchDue(ctx)
	if err != nil {
		d.log.Error("delivery dispatch failed", zap.Error(err))
		return 0
	}
	d.log.Info("deliveries dispatched", zap.Int64("count", n))
	return n
}
