package metrics

import "github.com/prometheus/client_golang/prometheus"

type Metrics struct {
	ContentCreated *prometheus.CounterVec
	ContentDeleted *prometheus.CounterVec
	LikesToggled   *prometheus.CounterVec
	AuthFailures   *prometheus.CounterVec
	BadRequests    *prometheus.CounterVec
}

func InitMetrics() *Metrics {
	m := &Metrics{
		ContentCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "forum_content_created_total",
				Help: "Total number of trads, posts and comments created",
			},
			[]string{"kind"},
		),
		ContentDeleted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "forum_content_deleted_total",
				Help: "Total number of trads, posts and comments deleted",
			},
			[]string{"kind"},
		),
		LikesToggled: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "forum_likes_toggled_total",
				Help: "Total number of like/unlike/toggle operations",
			},
			[]string{"kind"},
		),
		AuthFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "forum_auth_failures_total",
				Help: "Total number of failed login or token validations",
			},
			[]string{"path"},
		),
		BadRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "forum_bad_requests_total",
				Help: "Total number of rejected (4xx) requests",
			},
			[]string{"path"},
		),
	}

	prometheus.MustRegister(m.ContentCreated)
	prometheus.MustRegister(m.ContentDeleted)
	prometheus.MustRegister(m.LikesToggled)
	prometheus.MustRegister(m.AuthFailures)
	prometheus.MustRegister(m.BadRequests)

	return m
}
