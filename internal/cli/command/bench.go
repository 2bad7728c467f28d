package command

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/urfave/cli/v2"
	"golang.org/x/time/rate"

	"github.com/catchdb/catchdb-go/internal/cli/output"
	"github.com/catchdb/catchdb-go/internal/telemetry/metric"
	"github.com/catchdb/catchdb-go/pkg/catchdb"
)

// BenchCommand returns the bench command.
func BenchCommand() *cli.Command {
	return &cli.Command{
		Name:  "bench",
		Usage: "Run zset round trips over pooled connections and report latency",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "requests",
				Aliases: []string{"n"},
				Usage:   "Total number of requests",
				Value:   10000,
			},
			&cli.IntFlag{
				Name:  "clients",
				Usage: "Number of pooled connections",
				Value: 8,
			},
			&cli.Float64Flag{
				Name:  "rps",
				Usage: "Request rate limit per second, 0 for unlimited",
			},
			&cli.StringFlag{
				Name:  "name",
				Usage: "Sorted set written by the benchmark",
				Value: "catchdb-bench",
			},
			&cli.IntFlag{
				Name:  "keys",
				Usage: "Number of distinct keys",
				Value: 1000,
			},
			&cli.StringFlag{
				Name:  "metrics-addr",
				Usage: "Serve Prometheus metrics on this address while running",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Do not draw the progress bar",
			},
		},
		Action: benchAction,
	}
}

// benchResult is the summary of one run.
type benchResult struct {
	Requests int           `json:"requests" yaml:"requests"`
	Failed   int           `json:"failed" yaml:"failed"`
	Clients  int           `json:"clients" yaml:"clients"`
	Elapsed  time.Duration `json:"elapsed" yaml:"elapsed"`
	RPS      float64       `json:"rps" yaml:"rps"`
	Min      time.Duration `json:"min" yaml:"min"`
	P50      time.Duration `json:"p50" yaml:"p50"`
	P90      time.Duration `json:"p90" yaml:"p90"`
	P99      time.Duration `json:"p99" yaml:"p99"`
	Max      time.Duration `json:"max" yaml:"max"`
	SetSize  int64         `json:"set_size" yaml:"set_size"`
}

func (r benchResult) Table() *output.Table {
	t := output.NewTable("METRIC", "VALUE")
	t.AddRow("requests", strconv.Itoa(r.Requests))
	t.AddRow("failed", strconv.Itoa(r.Failed))
	t.AddRow("clients", strconv.Itoa(r.Clients))
	t.AddRow("elapsed", r.Elapsed.Round(time.Millisecond).String())
	t.AddRow("rps", strconv.FormatFloat(r.RPS, 'f', 1, 64))
	t.AddRow("min", r.Min.String())
	t.AddRow("p50", r.P50.String())
	t.AddRow("p90", r.P90.String())
	t.AddRow("p99", r.P99.String())
	t.AddRow("max", r.Max.String())
	t.AddRow("set_size", strconv.FormatInt(r.SetSize, 10))
	return t
}

func benchAction(c *cli.Context) error {
	requests, clients, keys := c.Int("requests"), c.Int("clients"), c.Int("keys")
	if requests <= 0 || clients <= 0 || keys <= 0 {
		return errors.New("--requests, --clients and --keys must be positive")
	}

	e, err := setup(c)
	if err != nil {
		return err
	}
	defer e.close()

	ctx := c.Context
	reg := metric.NewRegistry()

	if addr := c.String("metrics-addr"); addr != "" {
		bound, stop, err := serveMetrics(addr, reg)
		if err != nil {
			return fmt.Errorf("metrics listener: %w", err)
		}
		defer stop()
		e.log.Info("serving metrics", "addr", bound.String())
	}

	pool, err := catchdb.NewPool(ctx, e.cfg.ClientConfig(e.log.Slog(), reg), clients)
	if err != nil {
		return fmt.Errorf("connect %s:%d: %w", e.cfg.Host, e.cfg.Port, err)
	}
	defer pool.Close()
	reg.Connections.Set(float64(clients))
	defer reg.Connections.Set(0)

	var limiter *rate.Limiter
	if rps := c.Float64("rps"); rps > 0 {
		limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}

	var bar *output.ProgressBar
	if !c.Bool("quiet") {
		bar = output.NewProgressBar(c.App.ErrWriter, "zset", int64(requests))
	}

	name := c.String("name")
	jobs := make(chan int)
	latencies := make([]time.Duration, 0, requests)
	var (
		mu     sync.Mutex
		failed int
		wg     sync.WaitGroup
	)

	start := time.Now()
	for w := 0; w < clients; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				t0 := time.Now()
				err := benchOne(ctx, pool, name, "k"+strconv.Itoa(i%keys), int64(i))
				d := time.Since(t0)

				mu.Lock()
				latencies = append(latencies, d)
				if err != nil {
					failed++
					e.log.Debug("bench request failed", "error", err)
				}
				mu.Unlock()
				if bar != nil {
					bar.Add(err == nil)
				}
			}
		}()
	}

feed:
	for i := 0; i < requests; i++ {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				break
			}
		}
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()
	elapsed := time.Since(start)
	if bar != nil {
		bar.Finish()
	}

	res := summarize(latencies, elapsed)
	res.Failed = failed
	res.Clients = clients

	if res.SetSize, err = setSize(ctx, pool, name); err != nil {
		e.log.Debug("bench zsize failed", "name", name, "error", err)
	}

	return e.formatter().Format(c.App.Writer, res)
}

func benchOne(ctx context.Context, pool *catchdb.Pool, name, key string, score int64) error {
	conn, err := pool.Get(ctx)
	if err != nil {
		return err
	}
	defer pool.Put(conn)
	return conn.ZSet(ctx, name, key, score)
}

func setSize(ctx context.Context, pool *catchdb.Pool, name string) (int64, error) {
	conn, err := pool.Get(ctx)
	if err != nil {
		return 0, err
	}
	defer pool.Put(conn)
	return conn.ZSize(ctx, name)
}

// summarize computes latency percentiles over the recorded requests.
func summarize(latencies []time.Duration, elapsed time.Duration) benchResult {
	res := benchResult{Requests: len(latencies), Elapsed: elapsed}
	if len(latencies) == 0 {
		return res
	}
	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })

	pct := func(p float64) time.Duration {
		i := int(p * float64(len(latencies)-1))
		return latencies[i]
	}
	res.Min = latencies[0]
	res.P50 = pct(0.50)
	res.P90 = pct(0.90)
	res.P99 = pct(0.99)
	res.Max = latencies[len(latencies)-1]
	if elapsed > 0 {
		res.RPS = float64(len(latencies)) / elapsed.Seconds()
	}
	return res
}

// serveMetrics serves reg on addr under /metrics until stop is called.
func serveMetrics(addr string, reg *metric.Registry) (bound net.Addr, stop func(), err error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", reg.Handler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go srv.Serve(ln)

	return ln.Addr(), func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		srv.Shutdown(ctx)
	}, nil
}
