// Package status collects session counters for the debug log
package status

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Well-known metric keys
const (
	Frames     = "frames"
	Intents    = "intents"
	Pieces     = "pieces"
	Lines      = "lines"
	Tetrises   = "tetrises"
	Holds      = "holds"
	Restarts   = "restarts"
	MaxFrameMs = "max_frame_ms"
)

// Registry is the central metrics facade
// The loop caches pointers once; updates write directly to atomics
type Registry struct {
	Ints   *MetricMap[atomic.Int64]
	Floats *MetricMap[AtomicFloat]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Ints:   NewMetricMap[atomic.Int64](),
		Floats: NewMetricMap[AtomicFloat](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Ints.Count() + r.Floats.Count()
}

// String renders all metrics as sorted key=value pairs
func (r *Registry) String() string {
	var parts []string
	r.Ints.Range(func(k string, v *atomic.Int64) {
		parts = append(parts, fmt.Sprintf("%s=%d", k, v.Load()))
	})
	r.Floats.Range(func(k string, v *AtomicFloat) {
		parts = append(parts, fmt.Sprintf("%s=%.2f", k, v.Get()))
	})
	return strings.Join(parts, " ")
}
