package metrics

import "github.com/prometheus/client_golang/prometheus"

// Значения меток result
const (
	ResultAccepted = "accepted"
	ResultRejected = "rejected"
	ResultFailed   = "failed"
	ResultSent     = "sent"
	ResultDropped  = "dropped"
	ResultSkipped  = "skipped"
)

var SubmissionsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "cardswap_submissions_total",
		Help: "trade-in submissions by outcome",
	}, []string{"result"})

var NotificationsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "cardswap_notifications_total",
		Help: "outgoing email notifications by kind and outcome",
	}, []string{"kind", "result"})

var RateLimitedTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "cardswap_rate_limited_total",
		Help: "requests rejected by the rate limiter",
	}, []string{"path"})

func init() {
	prometheus.MustRegister(SubmissionsTotal, NotificationsTotal, RateLimitedTotal)
}
