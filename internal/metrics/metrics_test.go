package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorderCounts(t *testing.T) {
	r := New(prometheus.NewRegistry())

	r.Pause("ok")
	r.Pause("ok")
	r.Pause("pause_limit_exceeded")
	r.Resume("ok")
	r.ScheduleGenerated()
	r.Dispatched(3)
	r.Dispatched(0)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.pauses.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.pauses.WithLabelValues("pause_limit_exceeded")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.resumes.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.schedules))
	assert.Equal(t, 3.0, testutil.ToFloat64(r.dispatched))
}

func TestNilRecorderIsNoop(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.Pause("ok")
		r.Resume("ok")
		r.ScheduleGenerated()
		r.Dispatched(1)
	})
}
