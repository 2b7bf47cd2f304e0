package ledger

import (
	"sync/atomic"
	"time"
)

// StepSource supplies the environment's discrete monotonic time unit. Steps
// never decrease but may skip.
type StepSource interface {
	CurrentStep() uint64
}

// IntervalClock derives the current step from a fixed genesis instant and a
// step interval, so step height is stable across process restarts as long as
// the genesis timestamp is persisted.
type IntervalClock struct {
	genesis  time.Time
	interval time.Duration
}

func NewIntervalClock(genesis time.Time, interval time.Duration) *IntervalClock {
	return &IntervalClock{genesis: genesis, interval: interval}
}

func (c *IntervalClock) CurrentStep() uint64 {
	elapsed := time.Since(c.genesis)
	if elapsed < 0 {
		return 0
	}
	return uint64(elapsed / c.interval)
}

// ManualClock is a StepSource driven explicitly, for tests.
type ManualClock struct {
	step atomic.Uint64
}

func NewManualClock(step uint64) *ManualClock {
	c := &ManualClock{}
	c.step.Store(step)
	return c
}

func (c *ManualClock) CurrentStep() uint64 {
	return c.step.Load()
}

func (c *ManualClock) SetStep(step uint64) {
	c.step.Store(step)
}

func (c *ManualClock) AdvanceSteps(n uint64) {
	c.step.Add(n)
}
