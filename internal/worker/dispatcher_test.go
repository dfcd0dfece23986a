package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeJob struct {
	n     int64
	err   error
	calls int
}

func (f *fakeJob) DispatchDue(ctx context.Context) (int64, error) {
	f.calls++
	if _, ok := ctx.Deadline(); !ok {
		return 0, errors.New("run without deadline")
	}
	return f.n, f.err
}

func TestNewDispatcherRejectsInvalidExpression(t *testing.T) {
	_, err := NewDispatcher(&fakeJob{}, "every morning", nil, nil)
	assert.Error(t, err)
}

func TestRunOnce(t *testing.T) {
	testCases := []struct {
		testName string
		job      *fakeJob
		want     int64
		message  string
	}{
		{"Should report the dispatched count", &fakeJob{n: 3}, 3, "deliveries dispatched"},
		{"Should log failures", &fakeJob{err: errors.New("db down")}, 0, "delivery dispatch failed"},
	}

	for _, tc := range testCases {
		t.Run(tc.testName, func(t *testing.T) {
			core, logs := observer.New(zap.InfoLevel)
			d, err := NewDispatcher(tc.job, "0 5 * * *", time.UTC, zap.New(core))
			require.NoError(t, err)

			assert.Equal(t, tc.want, d.RunOnce(context.Background()))
			assert.Equal(t, 1, tc.job.calls)
			assert.Equal(t, 1, logs.FilterMessage(tc.message).Len())
		})
	}
}

// blockingJob holds its first run until release is closed.
type blockingJob struct {
	started chan struct{}
	release chan struct{}
	calls   atomic.Int32
}

func (b *blockingJob) DispatchDue(ctx context.Context) (int64, error) {
	if b.calls.Add(1) == 1 {
		close(b.started)
		<-b.release
	}
	return 1, nil
}

type panickingJob struct{}

func (panickingJob) DispatchDue(context.Context) (int64, error) {
	panic("dispatch exploded")
}

func scheduledJob(t *testing.T, d *Dispatcher) cron.Job {
	t.Helper()
	entries := d.cron.Entries()
	require.Len(t, entries, 1)
	return entries[0].WrappedJob
}

func TestScheduledRunsDoNotOverlap(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	job := &blockingJob{started: make(chan struct{}), release: make(chan struct{})}
	d, err := NewDispatcher(job, "0 5 * * *", time.UTC, zap.New(core))
	require.NoError(t, err)
	run := scheduledJob(t, d)

	done := make(chan struct{})
	go func() {
		run.Run()
		close(done)
	}()
	<-job.started

	run.Run()
	assert.Equal(t, int32(1), job.calls.Load())
	assert.Equal(t, 1, logs.FilterMessage("skip").Len())

	close(job.release)
	<-done
	assert.Equal(t, 1, logs.FilterMessage("deliveries dispatched").Len())
}

func TestScheduledRunRecoversPanics(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	d, err := NewDispatcher(panickingJob{}, "0 5 * * *", time.UTC, zap.New(core))
	require.NoError(t, err)

	assert.NotPanics(t, scheduledJob(t, d).Run)
	entries := logs.FilterMessage("panic").FilterLevelExact(zap.ErrorLevel).All()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].ContextMap()["error"], "dispatch exploded")
}

func TestStartStop(t *testing.T) {
	d, err := NewDispatcher(&fakeJob{}, "0 5 * * *", time.UTC, nil)
	require.NoError(t, err)

	d.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, d.Stop(ctx))
}
