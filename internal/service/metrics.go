package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Domain counters. Registered once from main; services nil-check so tests can
// run without registration.
var (
	commentsPosted prometheus.Counter
	likesPosted    prometheus.Counter
	pipelineRuns   *prometheus.CounterVec
	automationRuns *prometheus.CounterVec
	queueFailures  prometheus.Counter
)

// InitMetrics registers the domain collectors with the given registerer.
func InitMetrics(reg prometheus.Registerer) {
	commentsPosted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "booster_comments_posted_total",
		Help: "Comments successfully posted.",
	})
	likesPosted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "booster_likes_posted_total",
		Help: "Likes successfully applied.",
	})
	pipelineRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "booster_pipeline_runs_total",
		Help: "Channel pipeline runs by outcome.",
	}, []string{"outcome"})
	automationRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "booster_automation_ticks_total",
		Help: "Automation scheduler ticks by outcome.",
	}, []string{"outcome"})
	queueFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "booster_queue_failures_total",
		Help: "Queue items that failed execution.",
	})

	reg.MustRegister(commentsPosted, likesPosted, pipelineRuns, automationRuns, queueFailures)
}

func incCounter(c prometheus.Counter) {
	if c != nil {
		c.Inc()
	}
}

func incVec(v *prometheus.CounterVec, label string) {
	if v != nil {
		v.WithLabelValues(label).Inc()
	}
}
