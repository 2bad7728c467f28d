package benchmark

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/catchdb/catchdb-go/pkg/catchdb"
	"github.com/catchdb/catchdb-go/pkg/catchdb/catchdbtest"
)

// PayloadSizes are the value sizes, in bytes, used by size sweeps.
var PayloadSizes = []int{16, 256, 4096, 65536}

// payload returns a value of n bytes without spaces or newlines.
func payload(n int) string {
	return strings.Repeat("x", n)
}

// newServer starts an echo server for b.
func newServer(b *testing.B) *catchdbtest.Server {
	b.Helper()
	return catchdbtest.NewServer(b, catchdbtest.Echo())
}

// clientConfig returns a config for srv.
func clientConfig(srv *catchdbtest.Server) catchdb.Config {
	cfg := catchdb.DefaultConfig()
	cfg.Host = srv.Host()
	cfg.Port = srv.Port()
	cfg.DialTimeout = time.Second
	cfg.ReadTimeout = 5 * time.Second
	cfg.WriteTimeout = 5 * time.Second
	return cfg
}

// dial opens a connection closed at the end of b.
func dial(b *testing.B, cfg catchdb.Config) *catchdb.Conn {
	b.Helper()
	c, err := catchdb.Dial(context.Background(), cfg)
	if err != nil {
		b.Fatalf("Dial failed: %v", err)
	}
	b.Cleanup(func() { c.Close() })
	return c
}

// reportMemory reports memory usage.
func reportMemory(b *testing.B, prefix string) {
	var m runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&m)
	b.ReportMetric(float64(m.Alloc)/(1024*1024), prefix+"_MB")
	b.ReportMetric(float64(m.NumGC), prefix+"_GC")
}

// runWithPayloadSizes runs a benchmark function with each payload size.
func runWithPayloadSizes(b *testing.B, sizes []int, benchFn func(b *testing.B, size int)) {
	for _, size := range sizes {
		b.Run(fmt.Sprintf("bytes_%d", size), func(b *testing.B) {
			benchFn(b, size)
		})
	}
}
