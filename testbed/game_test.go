package testbed

import (
	"testing"

	"github.com/spaghettifunk/anima-gfx/engine"
	"github.com/spaghettifunk/anima-gfx/engine/core"
	"github.com/spaghettifunk/anima-gfx/engine/renderer/graphics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestbedRendersOnNullBackend(t *testing.T) {
	t.Setenv(core.EnvBackend, graphics.BackendNull)

	tg := NewTestGame("")
	var e *engine.Engine
	render := tg.FnRender
	frames := 0
	tg.FnRender = func(ctx *graphics.Context, deltaTime float64) error {
		require.NoError(t, render(ctx, deltaTime))
		frames++
		assert.Equal(t, uint64(2), ctx.GetDrawCount())
		if frames == 3 {
			e.Shutdown()
		}
		return nil
	}

	var err error
	e, err = engine.New(tg.Game)
	require.NoError(t, err)
	require.NoError(t, e.Initialize())

	s := tg.state()
	ctx := e.Context()
	assert.Equal(t, uint32(1024), ctx.GetTextureWidth(s.texture))
	assert.Equal(t, uint32(1536), ctx.GetOriginalTextureWidth(s.texture))
	assert.NotEqual(t, graphics.InvalidUniformLocation, s.viewProjLocation)
	assert.NotEqual(t, graphics.InvalidUniformLocation, s.tintLocation)
	assert.Equal(t, uint32(3), ctx.GetUniformCount(s.program))

	require.NoError(t, e.Run())
	assert.Equal(t, 3, frames)
	assert.Equal(t, uint64(3), s.frames)
}

func TestCheckerboard(t *testing.T) {
	img := checkerboard(4, 2)
	r, _, _, _ := img.At(0, 0).RGBA()
	r2, _, _, _ := img.At(2, 0).RGBA()
	assert.NotEqual(t, r, r2)
}
