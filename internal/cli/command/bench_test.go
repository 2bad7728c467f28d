package command

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/catchdb/catchdb-go/internal/telemetry/metric"
	"github.com/catchdb/catchdb-go/pkg/catchdb/catchdbtest"
)

func TestBench(t *testing.T) {
	srv := catchdbtest.NewServer(t, catchdbtest.NewZSetStore().Handler())

	stdout, _, err := runApp(t, "", serverArgs(srv, "-o", "json",
		"bench", "--quiet", "-n", "60", "--clients", "4", "--keys", "10", "--name", "bb")...)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var res benchResult
	if err := json.Unmarshal([]byte(stdout), &res); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, stdout)
	}
	if res.Requests != 60 || res.Failed != 0 || res.Clients != 4 {
		t.Errorf("result = %+v", res)
	}
	if res.SetSize != 10 {
		t.Errorf("SetSize = %d, want 10", res.SetSize)
	}
	if res.Min > res.P50 || res.P50 > res.P99 || res.P99 > res.Max {
		t.Errorf("percentiles out of order: %+v", res)
	}
}

func TestBench_ProgressAndTable(t *testing.T) {
	srv := catchdbtest.NewServer(t, catchdbtest.NewZSetStore().Handler())

	stdout, stderr, err := runApp(t, "", serverArgs(srv, "-o", "table", "bench", "-n", "5", "--clients", "1", "--rps", "1000")...)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(stderr, "(5/5, 0 failed)") {
		t.Errorf("stderr = %q, want the final progress line", stderr)
	}
	if !strings.HasPrefix(stdout, "METRIC") || !strings.Contains(stdout, "requests") {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestBench_Failures(t *testing.T) {
	srv := catchdbtest.NewServer(t, catchdbtest.Reply("error", "disk full"))

	stdout, stderr, err := runApp(t, "", serverArgs(srv, "--log-level", "debug", "-o", "json",
		"bench", "-q", "-n", "8", "--clients", "2")...)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	var res benchResult
	if err := json.Unmarshal([]byte(stdout), &res); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if res.Failed != 8 {
		t.Errorf("Failed = %d, want 8", res.Failed)
	}
	if res.SetSize != 0 {
		t.Errorf("SetSize = %d, want 0 when zsize fails", res.SetSize)
	}
	if !strings.Contains(stderr, "bench zsize failed") {
		t.Errorf("stderr = %q, want the zsize failure logged", stderr)
	}
}

func TestBench_InvalidFlags(t *testing.T) {
	if _, _, err := runApp(t, "", "bench", "--clients", "0"); err == nil {
		t.Error("--clients 0 should fail")
	}
}

func TestSummarize(t *testing.T) {
	var lat []time.Duration
	for i := 100; i >= 1; i-- {
		lat = append(lat, time.Duration(i)*time.Millisecond)
	}

	res := summarize(lat, 2*time.Second)
	if res.Requests != 100 {
		t.Errorf("Requests = %d", res.Requests)
	}
	if res.Min != time.Millisecond || res.Max != 100*time.Millisecond {
		t.Errorf("Min, Max = %v, %v", res.Min, res.Max)
	}
	if res.P50 != 50*time.Millisecond || res.P90 != 90*time.Millisecond || res.P99 != 99*time.Millisecond {
		t.Errorf("P50, P90, P99 = %v, %v, %v", res.P50, res.P90, res.P99)
	}
	if res.RPS != 50 {
		t.Errorf("RPS = %v, want 50", res.RPS)
	}

	if empty := summarize(nil, time.Second); empty.Requests != 0 || empty.Max != 0 {
		t.Errorf("summarize(nil) = %+v", empty)
	}
}

func TestServeMetrics(t *testing.T) {
	reg := metric.NewRegistry()
	reg.ObserveCommand("zset", time.Millisecond, 10, 5, nil)

	addr, stop, err := serveMetrics("127.0.0.1:0", reg)
	if err != nil {
		t.Fatalf("serveMetrics() error = %v", err)
	}
	defer stop()

	resp, err := http.Get("http://" + addr.String() + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if !strings.Contains(string(body), `catchdb_client_commands_total{command="zset",outcome="ok"} 1`) {
		t.Errorf("metrics output missing the zset counter:\n%s", body)
	}
}
