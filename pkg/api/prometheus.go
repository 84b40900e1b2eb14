package api

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusObserver exports flow and actor counters to a Prometheus
// registry. Actor-level metrics are labelled by the actor's class tag
// rather than its full name to keep cardinality bounded.
type PrometheusObserver struct {
	flowsStarted   prometheus.Counter
	flowsCompleted prometheus.Counter
	flowsFailed    prometheus.Counter
	actorPasses    *prometheus.CounterVec
	passDuration   *prometheus.HistogramVec
}

// NewPrometheusObserver creates an Observer registering its collectors with
// reg. If reg is nil, prometheus.DefaultRegisterer is used.
func NewPrometheusObserver(reg prometheus.Registerer) *PrometheusObserver {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	o := &PrometheusObserver{
		flowsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "aktor_flows_started_total",
			Help: "Number of flow runs started.",
		}),
		flowsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "aktor_flows_completed_total",
			Help: "Number of flow runs that finished without error.",
		}),
		flowsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "aktor_flows_failed_total",
			Help: "Number of flow runs that returned an error.",
		}),
		actorPasses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "aktor_actor_passes_total",
			Help: "Number of actor execution passes, by actor class and result.",
		}, []string{"class", "result"}),
		passDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "aktor_actor_pass_duration_seconds",
			Help:    "Duration of actor execution passes, by actor class.",
			Buckets: prometheus.DefBuckets,
		}, []string{"class"}),
	}
	reg.MustRegister(o.flowsStarted, o.flowsCompleted, o.flowsFailed, o.actorPasses, o.passDuration)
	return o
}

func (o *PrometheusObserver) OnFlowStart(ctx context.Context, flow Actor) {
	o.flowsStarted.Inc()
}

func (o *PrometheusObserver) OnFlowCompleted(ctx context.Context, flow Actor) {
	o.flowsCompleted.Inc()
}

func (o *PrometheusObserver) OnFlowFailed(ctx context.Context, flow Actor, err error) {
	o.flowsFailed.Inc()
}

func (o *PrometheusObserver) OnActorStart(ctx context.Context, actor Actor) {}

func (o *PrometheusObserver) OnActorCompleted(ctx context.Context, actor Actor, err error, d time.Duration) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	o.actorPasses.WithLabelValues(actor.Class(), result).Inc()
	o.passDuration.WithLabelValues(actor.Class()).Observe(d.Seconds())
}
