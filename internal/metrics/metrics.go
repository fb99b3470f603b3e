// Package metrics exposes Prometheus counters and the liveness HTTP endpoint.
// The endpoint doubles as the keep-alive surface for hosting platforms that
// probe the process over HTTP.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/habithack/habithack/internal/logger"
)

var (
	EventsLogged = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "habithack_events_logged_total",
		Help: "Total spending events appended to the log",
	}, []string{"category"})
	AppendFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "habithack_append_failures_total",
		Help: "Total event log append failures",
	})
	RemindersSent = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "habithack_reminders_sent_total",
		Help: "Total reminder messages delivered",
	})
	ReminderFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "habithack_reminder_failures_total",
		Help: "Total per-user reminder delivery failures",
	})
)

func init() {
	prometheus.MustRegister(EventsLogged, AppendFailures, RemindersSent, ReminderFailures)
}

// Handler returns the HTTP handler serving /metrics plus the liveness routes.
func Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	alive := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("🟢 HabitHack is alive"))
	}
	mux.HandleFunc("/", alive)
	mux.HandleFunc("/health", alive)
	return mux
}

// StartServer serves the handler on addr in the background. An empty addr
// disables the endpoint.
func StartServer(addr string) {
	if addr == "" {
		return
	}
	go func() {
		if err := http.ListenAndServe(addr, Handler()); err != nil {
			logger.Error("Liveness endpoint on %s failed: %v", addr, err)
		}
	}()
}
