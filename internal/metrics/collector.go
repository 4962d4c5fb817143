// Package metrics provides a lightweight in-process metrics collector
// for notifybot. Runs are short-lived, so instead of an exposition
// endpoint the counters are summarized into the final log line of a
// run.
package metrics

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
)

// Collector is the global metrics collector.
var Collector = NewMetricsCollector()

// MetricsCollector aggregates counters.
type MetricsCollector struct {
	counters sync.Map // name -> *Counter
}

// NewMetricsCollector creates a new collector.
func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{}
}

// Counter is a monotonically increasing counter.
type Counter struct {
	name  string
	help  string
	value atomic.Int64
}

// Inc increments the counter by 1.
func (c *Counter) Inc() { c.value.Add(1) }

// Value returns the current counter value.
func (c *Counter) Value() int64 { return c.value.Load() }

// Counter returns or creates a counter with the given name.
func (c *MetricsCollector) Counter(name, help string) *Counter {
	if v, ok := c.counters.Load(name); ok {
		return v.(*Counter)
	}
	ctr := &Counter{name: name, help: help}
	actual, _ := c.counters.LoadOrStore(name, ctr)
	return actual.(*Counter)
}

// Summary renders all non-zero counters as a single "name=value" line
// for end-of-run logging.
func (c *MetricsCollector) Summary() string {
	var parts []string
	c.counters.Range(func(key, value any) bool {
		ctr := value.(*Counter)
		if v := ctr.Value(); v != 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", ctr.name, v))
		}
		return true
	})
	sort.Strings(parts)
	return strings.Join(parts, " ")
}
