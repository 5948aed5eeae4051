package containers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArrayGrowsInSteps(t *testing.T) {
	a := NewArray[int](16)
	assert.Equal(t, 0, a.Cap())

	for i := 0; i < 16; i++ {
		assert.Equal(t, i, a.Push(i))
	}
	assert.Equal(t, 16, a.Cap())
	assert.True(t, a.Full())

	a.Push(16)
	assert.Equal(t, 32, a.Cap())
	assert.Equal(t, 17, a.Len())
	assert.Equal(t, 16, *a.At(16))

	a.Clear()
	assert.Equal(t, 0, a.Len())
	assert.Equal(t, 32, a.Cap())
}

func TestRingQueue(t *testing.T) {
	q := NewRingQueue[string](2)

	_, err := q.Dequeue()
	assert.ErrorIs(t, err, ErrQueueEmpty)

	require.NoError(t, q.Enqueue("a"))
	require.NoError(t, q.Enqueue("b"))
	assert.ErrorIs(t, q.Enqueue("c"), ErrQueueFull)

	v, err := q.Peek()
	require.NoError(t, err)
	assert.Equal(t, "a", v)

	v, err = q.Dequeue()
	require.NoError(t, err)
	assert.Equal(t, "a", v)

	require.NoError(t, q.Enqueue("c"))
	assert.Equal(t, 2, q.Len())

	v, _ = q.Dequeue()
	assert.Equal(t, "b", v)
	v, _ = q.Dequeue()
	assert.Equal(t, "c", v)
	assert.True(t, q.IsEmpty())
}
