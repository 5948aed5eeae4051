package core

import "time"

// Clock measures wall time on the monotonic clock. The zero value is a
// stopped clock.
type Clock struct {
	start   time.Time
	elapsed time.Duration
}

func NewClock() *Clock {
	return &Clock{}
}

// Update refreshes the elapsed time. Should be called just before checking
// elapsed time. Has no effect on stopped clocks.
func (c *Clock) Update() {
	if !c.start.IsZero() {
		c.elapsed = time.Since(c.start)
	}
}

// Start resets the elapsed time and starts counting.
func (c *Clock) Start() {
	c.start = time.Now()
	c.elapsed = 0
}

// Stop freezes the clock. Elapsed keeps its last value.
func (c *Clock) Stop() {
	c.start = time.Time{}
}

// Elapsed returns the seconds between Start and the last Update.
func (c *Clock) Elapsed() float64 {
	return c.elapsed.Seconds()
}
