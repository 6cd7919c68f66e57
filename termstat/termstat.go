// Package termstat provides a stats implementation which periodically
// prints counters to the given writer. It is meant for watching an
// import run at the terminal in lieu of a real metrics collector.
package termstat

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"
)

// Collector collects stats and prints them to the terminal.
type Collector struct {
	lock    sync.Mutex
	counts  map[string]int64
	gauges  map[string]float64
	changed bool
	out     io.Writer
}

// NewCollector initializes and returns a new Collector printing every
// couple of seconds.
func NewCollector(out io.Writer) *Collector {
	c := &Collector{
		counts: make(map[string]int64),
		gauges: make(map[string]float64),
		out:    out,
	}
	go func() {
		tick := time.NewTicker(time.Second * 2)
		for ; ; <-tick.C {
			c.write()
		}
	}()
	return c
}

// Count adds value to the named counter. The rate and tags arguments are
// accepted for interface compatibility and ignored.
func (c *Collector) Count(name string, value int64, rate float64, tags ...string) {
	c.lock.Lock()
	c.counts[name] += value
	c.changed = true
	c.lock.Unlock()
}

// Gauge sets the named gauge.
func (c *Collector) Gauge(name string, value float64, rate float64, tags ...string) {
	c.lock.Lock()
	c.gauges[name] = value
	c.changed = true
	c.lock.Unlock()
}

// Timing records value as a gauge in milliseconds.
func (c *Collector) Timing(name string, value time.Duration, rate float64, tags ...string) {
	c.Gauge(name, float64(value.Milliseconds()), rate, tags...)
}

func (c *Collector) write() {
	c.lock.Lock()
	defer c.lock.Unlock()
	if !c.changed {
		return
	}
	c.changed = false
	parts := make([]string, 0, len(c.counts)+len(c.gauges))
	for name, v := range c.counts {
		parts = append(parts, fmt.Sprintf("%s=%d", name, v))
	}
	for name, v := range c.gauges {
		parts = append(parts, fmt.Sprintf("%s=%g", name, v))
	}
	sort.Strings(parts)
	fmt.Fprintln(c.out, strings.Join(parts, " "))
}
