package engine

import (
	"github.com/spaghettifunk/anima-gfx/engine/renderer/graphics"
)

// Game is the set of callbacks the engine drives every frame.
type Game struct {
	ApplicationConfig *ApplicationConfig
	State             interface{}
	FnInitialize      Initialize
	FnUpdate          Update
	FnRender          Render
	FnOnResize        OnResize
	FnShutdown        Shutdown
}

type Initialize func(e *Engine) error
type Update func(deltaTime float64) error
type Render func(ctx *graphics.Context, deltaTime float64) error
type OnResize func(width uint32, height uint32) error
type Shutdown func(ctx *graphics.Context) error
