// Command bench runs a synthetic workload against a synchronized map and
// exposes optional pprof/Prometheus endpoints.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	_ "net/http/pprof" // registers /debug/pprof/* on DefaultServeMux
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/HenkesKaiser/lrumap"
	pmet "github.com/HenkesKaiser/lrumap/metrics/prom"
	"github.com/HenkesKaiser/lrumap/syncmap"
)

func main() {
	// ---- Flags ----
	var (
		capacity = flag.Int("cap", 100_000, "map capacity (entries)")

		workers  = flag.Int("workers", 2*runtime.GOMAXPROCS(0), "number of worker goroutines")
		duration = flag.Duration("duration", 10*time.Second, "benchmark duration")
		readPct  = flag.Int("reads", 80, "read percentage [0..100]")

		keys    = flag.Int("keys", 1_000_000, "keyspace size")
		zipfS   = flag.Float64("zipf_s", 1.1, "Zipf s > 1 (skew)")
		zipfV   = flag.Float64("zipf_v", 1.0, "Zipf v")
		seed    = flag.Int64("seed", time.Now().UnixNano(), "random seed")
		preload = flag.Int("preload", 0, "preload entries (0 = cap/2)")

		pprofAddr   = flag.String("pprof", "", "serve pprof at addr (e.g. :6060); empty = disabled")
		metricsAddr = flag.String("http", ":8080", "serve Prometheus metrics at addr")
	)
	flag.Parse()

	// ---- pprof server (on DefaultServeMux) ----
	if *pprofAddr != "" {
		go func() {
			log.Printf("pprof: serving at %s", *pprofAddr)
			log.Println(http.ListenAndServe(*pprofAddr, nil))
		}()
	}

	// ---- Prometheus metrics (on DefaultServeMux) ----
	metrics := pmet.New(nil, "lrumap", "bench", nil)
	http.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Printf("metrics: serving at %s", *metricsAddr)
		log.Println(http.ListenAndServe(*metricsAddr, nil))
	}()

	// ---- Build map ----
	m := syncmap.Wrap(lrumap.New[string, string](lrumap.Options[string, string]{
		MaxCapacity: *capacity,
		Metrics:     metrics,
	}), syncmap.Options[string, string]{})

	// ---- Preload half capacity to get a realistic hit-rate ----
	pl := *preload
	if pl == 0 {
		pl = *capacity / 2
	}
	for i := 0; i < pl; i++ {
		m.Put("k:"+strconv.Itoa(i), "v"+strconv.Itoa(i))
	}

	// ---- Snapshot flags for goroutines ----
	readPctVal := *readPct
	keysMax := uint64(*keys - 1)
	seedBase := *seed
	zipfSVal := *zipfS
	zipfVVal := *zipfV
	workersN := *workers
	if workersN <= 0 {
		workersN = 1
	}

	// ---- Load generation ----
	var reads, writes, hits, misses uint64
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	start := time.Now()
	var wg sync.WaitGroup
	wg.Add(workersN)
	for w := 0; w < workersN; w++ {
		go func(id int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(seedBase + int64(id)*7919))
			zipf := rand.NewZipf(r, zipfSVal, zipfVVal, keysMax)
			for ctx.Err() == nil {
				k := "k:" + strconv.FormatUint(zipf.Uint64(), 10)
				if r.Intn(100) < readPctVal {
					if _, ok := m.Get(k); ok {
						atomic.AddUint64(&hits, 1)
					} else {
						atomic.AddUint64(&misses, 1)
					}
					atomic.AddUint64(&reads, 1)
				} else {
					m.Put(k, "v")
					atomic.AddUint64(&writes, 1)
				}
			}
		}(w)
	}
	wg.Wait()
	elapsed := time.Since(start)

	// ---- Report ----
	total := reads + writes
	opsPerSec := float64(total) / elapsed.Seconds()
	hitRate := 0.0
	if reads > 0 {
		hitRate = 100 * float64(hits) / float64(reads)
	}
	fmt.Printf("done in %v: %d ops (%.0f ops/s), reads=%d writes=%d, hit-rate=%.1f%% (hits=%d misses=%d), Len=%d\n",
		elapsed.Round(time.Millisecond), total, opsPerSec,
		reads, writes, hitRate, hits, misses, m.Len())
}
