// Package benchmark provides performance benchmarks for the CatchDB client.
//
// Run benchmarks with:
//
//	go test -bench=. -benchmem ./internal/tests/benchmark/...
//
// Round-trip benchmarks run against the in-process server from
// pkg/catchdb/catchdbtest, so they measure client and loopback cost only.
//
// Compare results:
//
//	benchstat old.txt new.txt
package benchmark
