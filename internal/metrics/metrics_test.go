package metrics

import (
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHandlerRoutes(t *testing.T) {
	h := Handler()

	for _, path := range []string{"/", "/health", "/metrics"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s = %d, want 200", path, rec.Code)
		}
	}
}

func TestStartServer_BindFailureDoesNotCrash(t *testing.T) {
	// Occupy a port, then start the endpoint on the same address. The bind
	// failure is reported through the logger; the process keeps running.
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()

	StartServer(l.Addr().String())
	StartServer("") // empty addr disables the endpoint
	time.Sleep(50 * time.Millisecond)
}

func TestCountersRegistered(t *testing.T) {
	EventsLogged.WithLabelValues("unknown").Inc()
	AppendFailures.Inc()
	RemindersSent.Inc()
	ReminderFailures.Inc()
}
