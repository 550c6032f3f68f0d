// Command bench runs a synthetic construction workload against the
// registry and exposes optional pprof/Prometheus endpoints.
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof" // registers /debug/pprof/* on DefaultServeMux
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	pmet "github.com/IvanBrykalov/singleton/metrics/prom"
	"github.com/IvanBrykalov/singleton/single"
)

type target struct{ v int64 }

func main() {
	// ---- Flags ----
	var (
		workers  = flag.Int("workers", 2*runtime.GOMAXPROCS(0), "number of worker goroutines")
		duration = flag.Duration("duration", 10*time.Second, "benchmark duration")
		reassign = flag.Bool("reassign", false, "exercise the reassignment path instead of plain reuse")

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
	metrics := pmet.New(nil, "singleton", "bench", nil)
	http.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Printf("metrics: serving at %s", *metricsAddr)
		log.Println(http.ListenAndServe(*metricsAddr, nil))
	}()

	// ---- Register the target ----
	r := single.NewRegistry()
	err := single.RegisterIn(r, single.Options[target]{
		ThreadSafe:        true,
		AllowReassignment: *reassign,
		Metrics:           metrics,
		Initializer: func(t *target, args ...any) error {
			t.v = args[0].(int64)
			return nil
		},
	})
	if err != nil {
		log.Fatalf("register: %v", err)
	}

	// ---- Run workload ----
	var (
		ops  int64
		stop = time.Now().Add(*duration)
		wg   sync.WaitGroup
	)
	wg.Add(*workers)
	for w := 0; w < *workers; w++ {
		go func(id int64) {
			defer wg.Done()
			for i := int64(0); time.Now().Before(stop); i++ {
				if _, err := single.NewIn[target](r, id<<32|i); err != nil {
					log.Fatalf("construct: %v", err)
				}
				atomic.AddInt64(&ops, 1)
			}
		}(int64(w))
	}
	wg.Wait()

	total := atomic.LoadInt64(&ops)
	secs := duration.Seconds()
	fmt.Printf("workers=%d duration=%s ops=%d (%.0f ops/s)\n",
		*workers, *duration, total, float64(total)/secs)
}
