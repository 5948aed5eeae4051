package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClock(t *testing.T) {
	c := NewClock()
	c.Update()
	assert.Zero(t, c.Elapsed(), "a stopped clock does not advance")

	c.Start()
	time.Sleep(5 * time.Millisecond)
	c.Update()
	elapsed := c.Elapsed()
	assert.GreaterOrEqual(t, elapsed, 0.005)
	assert.Less(t, elapsed, 5.0)

	c.Stop()
	time.Sleep(time.Millisecond)
	c.Update()
	assert.Equal(t, elapsed, c.Elapsed())

	c.Start()
	assert.Zero(t, c.Elapsed())
}
