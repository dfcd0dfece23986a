package metrics

import "github.com/prometheus/client_golang/prometheus"

// Recorder holds the delivery scheduling counters.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	pauses     *prometheus.CounterVec
	resumes    *prometheus.CounterVec
	schedules  prometheus.Counter
	dispatched prometheus.Counter
}

// New creates the counters and registers them on reg.
func New(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		pauses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fitnest",
			Name:      "subscription_pauses_total",
			Help:      "Pause requests by result.",
		}, []string{"result"}),
		resumes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fitnest",
			Name:      "subscription_resumes_total",
			Help:      "Resume requests by result.",
		}, []string{"result"}),
		schedules: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fitnest",
			Name:      "schedules_generated_total",
			Help:      "Delivery schedules written.",
		}),
		dispatched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fitnest",
			Name:      "deliveries_dispatched_total",
			Help:      "Deliveries moved to in_transit by the dispatcher.",
		}),
	}
	reg.MustRegister(r.pauses, r.resumes, r.schedules, r.dispatched)
	return r
}

func (r *Recorder) Pause(result string) {
	if r == nil {
		return
	}
	r.pauses.WithLabelValues(result).Inc()
}

func (r *Recorder) Resume(result string) {
	if r == nil {
		return
	}
	r.resumes.WithLabelValues(result).Inc()
}

func (r *Recorder) ScheduleGenerated() {
	if r == nil {
		return
	}
	r.schedules.Inc()
}

func (r *Recorder) Dispatched(n int64) {
	if r == nil || n <= 0 {
		return
	}
	r.dispatched.Add(float64(n))
}
