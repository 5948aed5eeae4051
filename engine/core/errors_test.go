package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssertPanicsWithContractViolation(t *testing.T) {
	assert.NotPanics(t, func() { Assert(true, "never") })

	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.True(t, errors.Is(err, ErrContractViolation))
		assert.Contains(t, err.Error(), "slot 3")
	}()
	Assert(false, "slot %d already bound", 3)
}

func TestMetricsAverage(t *testing.T) {
	m := NewMetrics()
	for i := 0; i < int(AVG_COUNT); i++ {
		m.Update(0.016)
	}
	assert.InDelta(t, 16.0, m.FrameTime(), 0.001)
}
