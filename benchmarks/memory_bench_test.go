// Package benchmarks provides memory footprint benchmarks.
package benchmarks

import (
	"runtime"
	"testing"

	"github.com/comalice/calcx"
)

func BenchmarkMemoryFootprint(b *testing.B) {
	numEngines := 1000
	for n := 0; n < b.N; n++ {
		var before runtime.MemStats
		runtime.ReadMemStats(&before)
		engines := make([]*calcx.Engine, numEngines)
		for i := range engines {
			engines[i] = calcx.New()
		}
		runtime.GC()
		var after runtime.MemStats
		runtime.ReadMemStats(&after)
		bytesPerEngine := (after.TotalAlloc - before.TotalAlloc) / uint64(numEngines)
		b.ReportMetric(float64(bytesPerEngine), "B/engine")
		runtime.KeepAlive(engines)
	}
}
