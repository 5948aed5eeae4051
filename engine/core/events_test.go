package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withEventSystem(t *testing.T) {
	t.Helper()
	require.True(t, EventInitialize())
	t.Cleanup(func() {
		require.NoError(t, EventShutdown())
	})
}

func TestEventFireReachesListeners(t *testing.T) {
	withEventSystem(t)

	var width, height uint32
	listener := &struct{}{}
	ok := EventRegister(EVENT_CODE_RESIZED, listener, func(code SystemEventCode, sender, l interface{}, data EventContext) bool {
		width = data.Data.U32[0]
		height = data.Data.U32[1]
		return true
	})
	require.True(t, ok)

	ctx := EventContext{}
	ctx.Data.U32[0] = 640
	ctx.Data.U32[1] = 480
	assert.True(t, EventFire(EVENT_CODE_RESIZED, nil, ctx))
	assert.Equal(t, uint32(640), width)
	assert.Equal(t, uint32(480), height)
}

func TestEventRegisterDuplicateListener(t *testing.T) {
	withEventSystem(t)

	listener := &struct{}{}
	fn := func(SystemEventCode, interface{}, interface{}, EventContext) bool { return false }
	assert.True(t, EventRegister(EVENT_CODE_APPLICATION_QUIT, listener, fn))
	assert.False(t, EventRegister(EVENT_CODE_APPLICATION_QUIT, listener, fn))
}

func TestEventUnregisterRemovesMatchingListener(t *testing.T) {
	withEventSystem(t)

	first, second := &struct{ a int }{}, &struct{ b int }{}
	var calls []interface{}
	fn := func(_ SystemEventCode, _ interface{}, l interface{}, _ EventContext) bool {
		calls = append(calls, l)
		return false
	}
	require.True(t, EventRegister(EVENT_CODE_RESIZED, first, fn))
	require.True(t, EventRegister(EVENT_CODE_RESIZED, second, fn))

	assert.True(t, EventUnregister(EVENT_CODE_RESIZED, first))
	assert.False(t, EventUnregister(EVENT_CODE_RESIZED, first))

	assert.False(t, EventFire(EVENT_CODE_RESIZED, nil, EventContext{}))
	assert.Equal(t, []interface{}{second}, calls)
}

func TestEventFireBeforeInitialize(t *testing.T) {
	assert.False(t, EventFire(EVENT_CODE_RESIZED, nil, EventContext{}))
}
