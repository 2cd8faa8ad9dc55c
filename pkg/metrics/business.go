package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var notificationsSent = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "notifications_sent_total",
	Help: "Reminder notifications delivered successfully, by channel.",
}, []string{"channel"})

var notificationsFailed = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "notifications_failed_total",
	Help: "Reminder notification delivery failures, by channel.",
}, []string{"channel"})

var analysisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "analysis_dur_ms",
	Help:    "Portfolio analysis latency in milliseconds.",
	Buckets: HistogramBuckets,
})

func IncNotificationSent(channel string) {
	notificationsSent.WithLabelValues(channel).Inc()
}

func IncNotificationFailed(channel string) {
	notificationsFailed.WithLabelValues(channel).Inc()
}

func ObserveAnalysisDuration(d time.Duration) {
	analysisDuration.Observe(float64(d.Milliseconds()))
}
