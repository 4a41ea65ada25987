package services

import "sync"

// RepState is the lifecycle of a repetition-counting session.
type RepState string

const (
	RepIdle     RepState = "idle"
	RepCounting RepState = "counting"
	RepDone     RepState = "done"
)

// RepData is a snapshot of a counting session.
type RepData struct {
	Count       int
	State       RepState
	TargetCount int
}

// RepCounter is the callback-driven counting session behind the repetition
// item. The motion-sensor feed is out of scope; Increment is the injection
// point for whatever source drives it (keypress in the TUI, sensor bridge).
// The core only consumes the single target-reached event.
type RepCounter struct {
	mu       sync.Mutex
	count    int
	target   int
	state    RepState
	onUpdate func(RepData)
}

func NewRepCounter(target int) *RepCounter {
	if target <= 0 {
		target = 1
	}
	return &RepCounter{
		target: target,
		state:  RepIdle,
	}
}

// Start begins a session. onUpdate fires on every count change, including
// the final one where State is RepDone. Callbacks run outside the session
// lock, so they may call back into the counter.
func (c *RepCounter) Start(onUpdate func(RepData)) {
	c.mu.Lock()
	c.onUpdate = onUpdate
	c.state = RepCounting
	data, cb := c.snapshot(), c.onUpdate
	c.mu.Unlock()
	if cb != nil {
		cb(data)
	}
}

// Stop ends the session without resetting the count.
func (c *RepCounter) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == RepCounting {
		c.state = RepIdle
	}
	c.onUpdate = nil
}

// Reset returns the session to zero.
func (c *RepCounter) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.count = 0
	c.state = RepIdle
}

// Increment registers one repetition. Counting stops at the target; the
// update that reaches it reports RepDone.
func (c *RepCounter) Increment() {
	c.mu.Lock()
	if c.state != RepCounting {
		c.mu.Unlock()
		return
	}
	c.count++
	if c.count >= c.target {
		c.state = RepDone
	}
	data, cb := c.snapshot(), c.onUpdate
	c.mu.Unlock()
	if cb != nil {
		cb(data)
	}
}

// Data returns a snapshot of the session.
func (c *RepCounter) Data() RepData {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

func (c *RepCounter) snapshot() RepData {
	return RepData{
		Count:       c.count,
		State:       c.state,
		TargetCount: c.target,
	}
}
