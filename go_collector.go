package metrics

import (
	"runtime"
	"strconv"

	"github.com/valyala/histogram"
)

// NewGoCollector returns a Collector that exposes go_* metrics for the
// current process: goroutine and thread counts, memory statistics and GC
// pause quantiles.
func NewGoCollector() Collector {
	return &goCollector{}
}

type goCollector struct{}

func (gc *goCollector) Collect() []Family {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	numThread, _ := runtime.ThreadCreateProfile(nil)

	families := []Family{
		gaugeFamily("go_goroutines", "Number of goroutines that currently exist.", float64(runtime.NumGoroutine())),
		gaugeFamily("go_threads", "Number of OS threads created.", float64(numThread)),
		gaugeFamily("go_gomaxprocs", "Value of GOMAXPROCS.", float64(runtime.GOMAXPROCS(0))),
		gaugeFamily("go_cpu_count", "Number of logical CPUs usable by the process.", float64(runtime.NumCPU())),
		counterFamily("go_cgo_calls_count", "Number of cgo calls made by the process.", float64(runtime.NumCgoCall())),
		gaugeFamily("go_memstats_alloc_bytes", "Number of bytes allocated and still in use.", float64(ms.Alloc)),
		counterFamily("go_memstats_alloc_bytes_total", "Total number of bytes allocated, even if freed.", float64(ms.TotalAlloc)),
		counterFamily("go_memstats_mallocs_total", "Total number of mallocs.", float64(ms.Mallocs)),
		counterFamily("go_memstats_frees_total", "Total number of frees.", float64(ms.Frees)),
		gaugeFamily("go_memstats_heap_alloc_bytes", "Number of heap bytes allocated and still in use.", float64(ms.HeapAlloc)),
		gaugeFamily("go_memstats_heap_idle_bytes", "Number of heap bytes waiting to be used.", float64(ms.HeapIdle)),
		gaugeFamily("go_memstats_heap_inuse_bytes", "Number of heap bytes that are in use.", float64(ms.HeapInuse)),
		gaugeFamily("go_memstats_heap_objects", "Number of allocated objects.", float64(ms.HeapObjects)),
		gaugeFamily("go_memstats_heap_sys_bytes", "Number of heap bytes obtained from system.", float64(ms.HeapSys)),
		gaugeFamily("go_memstats_stack_inuse_bytes", "Number of bytes in use by the stack allocator.", float64(ms.StackInuse)),
		gaugeFamily("go_memstats_sys_bytes", "Number of bytes obtained from system.", float64(ms.Sys)),
		gaugeFamily("go_memstats_next_gc_bytes", "Number of heap bytes when next garbage collection will take place.", float64(ms.NextGC)),
		gaugeFamily("go_memstats_gc_cpu_fraction", "The fraction of this program's available CPU time used by the GC.", ms.GCCPUFraction),
		gaugeFamily("go_memstats_last_gc_time_seconds", "Number of seconds since 1970 of last garbage collection.", float64(ms.LastGC)/1e9),
	}

	families = append(families, gcDurationFamily(&ms))
	return families
}

// gcDurationFamily renders GC pause quantiles over the runtime's circular
// pause buffer, the same shape Prometheus clients expose as
// go_gc_duration_seconds.
func gcDurationFamily(ms *runtime.MemStats) Family {
	gcPauses := histogram.NewFast()
	for _, pauseNs := range ms.PauseNs[:] {
		gcPauses.Update(float64(pauseNs) / 1e9)
	}
	phis := []float64{0, 0.25, 0.5, 0.75, 1}
	quantiles := gcPauses.Quantiles(make([]float64, 0, len(phis)), phis)

	const name = "go_gc_duration_seconds"
	samples := make([]Sample, 0, len(phis)+2)
	for i, q := range quantiles {
		samples = append(samples, Sample{
			Name:        name,
			Value:       q,
			LabelNames:  []string{"quantile"},
			LabelValues: []string{strconv.FormatFloat(phis[i], 'g', -1, 64)},
		})
	}
	samples = append(samples, Sample{Name: name + "_sum", Value: float64(ms.PauseTotalNs) / 1e9})
	samples = append(samples, Sample{Name: name + "_count", Value: float64(ms.NumGC)})

	return Family{
		Name:    name,
		Help:    "A summary of GC invocation durations.",
		Type:    "summary",
		Samples: samples,
	}
}
