package searcher

import (
	"sync/atomic"
	"time"
)

type WalkMetrics struct {
	StartTime   time.Time
	Duration    time.Duration
	Depth       int
	Goroutines  int
	Leaves      uint64
	RootActions int64
}

// LeavesPerSecond is zero for walks too short to time.
func (m WalkMetrics) LeavesPerSecond() float64 {
	if m.Duration <= 0 {
		return 0
	}
	return float64(m.Leaves) / m.Duration.Seconds()
}

type Collector interface {
	Start(depth, goroutines int)
	AddLeaves(n uint64)
	AddRootAction()
	Complete() WalkMetrics
}

type collector struct {
	startTime   time.Time
	depth       int
	goroutines  int
	leaves      atomic.Uint64
	rootActions atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start(depth, goroutines int) {
	c.startTime = time.Now()
	c.depth = depth
	c.goroutines = goroutines
}

func (c *collector) AddLeaves(n uint64) {
	c.leaves.Add(n)
}

func (c *collector) AddRootAction() {
	c.rootActions.Add(1)
}

func (c *collector) Complete() WalkMetrics {
	return WalkMetrics{
		StartTime:   c.startTime,
		Duration:    time.Since(c.startTime),
		Depth:       c.depth,
		Goroutines:  c.goroutines,
		Leaves:      c.leaves.Load(),
		RootActions: c.rootActions.Load(),
	}
}

type noCollector struct{}

func NewNoCollector() Collector {
	return &noCollector{}
}

func (c *noCollector) Start(int, int)        {}
func (c *noCollector) AddLeaves(uint64)      {}
func (c *noCollector) AddRootAction()        {}
func (c *noCollector) Complete() WalkMetrics { return WalkMetrics{} }
