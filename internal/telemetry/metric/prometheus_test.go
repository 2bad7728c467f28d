package metric

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/catchdb/catchdb-go/pkg/catchdb"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r.registry == nil {
		t.Fatal("registry field is nil")
	}
	if r.CommandsTotal == nil || r.CommandDuration == nil {
		t.Error("command metrics are nil")
	}
	if r.BytesSent == nil || r.BytesReceived == nil || r.Connections == nil {
		t.Error("byte or connection metrics are nil")
	}
}

func TestObserveCommand(t *testing.T) {
	r := NewRegistry()

	r.ObserveCommand("zset", 2*time.Millisecond, 30, 8, nil)
	r.ObserveCommand("zset", 3*time.Millisecond, 30, 8, nil)
	r.ObserveCommand("zget", time.Millisecond, 20, 0, catchdb.ErrPeerClosed)
	r.ObserveCommand("zget", time.Millisecond, 20, 0, errors.New("boom"))

	tests := []struct {
		command, outcome string
		want             float64
	}{
		{"zset", OutcomeOK, 2},
		{"zget", "CDB-CONN-5004", 1},
		{"zget", "error", 1},
	}
	for _, tt := range tests {
		got := testutil.ToFloat64(r.CommandsTotal.WithLabelValues(tt.command, tt.outcome))
		if got != tt.want {
			t.Errorf("commands_total{%s,%s} = %v, want %v", tt.command, tt.outcome, got, tt.want)
		}
	}

	if got := testutil.ToFloat64(r.BytesSent); got != 100 {
		t.Errorf("bytes_sent_total = %v, want 100", got)
	}
	if got := testutil.ToFloat64(r.BytesReceived); got != 16 {
		t.Errorf("bytes_received_total = %v, want 16", got)
	}
	if n := testutil.CollectAndCount(r.CommandDuration); n != 2 {
		t.Errorf("command_duration_seconds series = %d, want 2", n)
	}
}

func TestHandler(t *testing.T) {
	r := NewRegistry()
	r.Connections.Set(3)
	r.ObserveCommand("zsize", time.Millisecond, 10, 10, nil)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	bodyStr := string(body)

	for _, want := range []string{
		`catchdb_client_commands_total{command="zsize",outcome="ok"} 1`,
		"catchdb_client_connections 3",
		"catchdb_client_command_duration_seconds_bucket",
		"go_goroutines",
	} {
		if !strings.Contains(bodyStr, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}
