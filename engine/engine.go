package engine

import (
	"fmt"
	"sync/atomic"

	"github.com/spaghettifunk/anima-gfx/engine/assets"
	"github.com/spaghettifunk/anima-gfx/engine/core"
	"github.com/spaghettifunk/anima-gfx/engine/renderer/graphics"
	"github.com/spaghettifunk/anima-gfx/engine/renderer/metadata"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
	// Engine released the graphics context
	EngineStageStopped
)

type Engine struct {
	currentStage  Stage
	gameInstance  *Game
	config        *core.Config
	registry      *graphics.Registry
	context       *graphics.Context
	shaderWatcher *assets.ShaderWatcher
	isRunning     atomic.Bool
	isSuspended   bool
	width         uint32
	height        uint32
	clock         *core.Clock
	lastTime      float64
}

func New(g *Game) (*Engine, error) {
	if g.ApplicationConfig == nil {
		g.ApplicationConfig = &ApplicationConfig{}
	}
	cfg, err := g.ApplicationConfig.resolve()
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}
	return &Engine{
		currentStage: EngineStageUninitialized,
		gameInstance: g,
		config:       cfg,
		registry:     graphics.DefaultRegistry,
		clock:        core.NewClock(),
		width:        cfg.Window.Width,
		height:       cfg.Window.Height,
	}, nil
}

// Initialize creates the graphics context, opens the window and hands the
// context to the game.
func (e *Engine) Initialize() error {
	e.currentStage = EngineStageInitializing

	if err := core.SetLogLevel(e.config.Log.Level); err != nil {
		core.LogWarn("invalid log level %q: %s", e.config.Log.Level, err)
	}

	backend, err := graphics.NewBackend(e.config.Graphics.Backend)
	if err != nil {
		return err
	}
	ctx, err := graphics.NewContext(e.registry, backend, contextParams(e.config))
	if err != nil {
		return err
	}
	e.context = ctx

	result := ctx.OpenWindow(&metadata.WindowParams{
		Width:           e.config.Window.Width,
		Height:          e.config.Window.Height,
		Title:           e.config.Window.Title,
		PrintDeviceInfo: e.config.Window.PrintDeviceInfo,
		ResizeCallback:  e.onResized,
		CloseCallback:   e.onClose,
	})
	if result != metadata.WindowResultOK {
		ctx.Delete()
		e.context = nil
		return fmt.Errorf("failed to open window: %s", result)
	}

	if err := e.initializeGame(); err != nil {
		if e.shaderWatcher != nil {
			e.shaderWatcher.Close()
			e.shaderWatcher = nil
		}
		ctx.Delete()
		e.context = nil
		e.currentStage = EngineStageUninitialized
		return err
	}
	e.currentStage = EngineStageInitialized
	return nil
}

func (e *Engine) initializeGame() error {
	if dir := e.config.Graphics.ShaderDir; dir != "" {
		sw, err := assets.NewShaderWatcher(e.context)
		if err != nil {
			return err
		}
		e.shaderWatcher = sw
		if err := sw.Initialize(dir); err != nil {
			return err
		}
	}

	if e.gameInstance.FnInitialize != nil {
		if err := e.gameInstance.FnInitialize(e); err != nil {
			return err
		}
	}
	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(e.width, e.height); err != nil {
			return err
		}
	}
	return nil
}

// Run drives the frame loop until the window closes or Shutdown is called,
// then releases the graphics context.
func (e *Engine) Run() error {
	if e.currentStage != EngineStageInitialized {
		return fmt.Errorf("engine is not initialized")
	}
	e.currentStage = EngineStageRunning
	e.isRunning.Store(true)

	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	var frameErr error
	e.context.RunApplicationLoop(func() {
		if err := e.frame(); err != nil {
			frameErr = err
			e.isRunning.Store(false)
		}
	}, e.isRunning.Load)

	e.teardown()
	return frameErr
}

// Shutdown asks the frame loop to stop. It is safe to call from another
// goroutine.
func (e *Engine) Shutdown() {
	e.isRunning.Store(false)
}

func (e *Engine) Context() *graphics.Context {
	return e.context
}

func (e *Engine) Stage() Stage {
	return e.currentStage
}

func (e *Engine) Config() *core.Config {
	return e.config
}

// ShaderWatcher is nil unless graphics.shader_dir is configured.
func (e *Engine) ShaderWatcher() *assets.ShaderWatcher {
	return e.shaderWatcher
}

func (e *Engine) frame() error {
	e.clock.Update()
	currentTime := e.clock.Elapsed()
	delta := currentTime - e.lastTime
	e.lastTime = currentTime

	if e.shaderWatcher != nil {
		if n := e.shaderWatcher.Poll(); n > 0 {
			core.LogDebug("%d shader program(s) reloaded", n)
		}
	}

	e.isSuspended = e.context.GetWindowState(metadata.WindowStateIconified) != 0
	if e.isSuspended {
		e.context.Flip()
		return nil
	}

	if e.gameInstance.FnUpdate != nil {
		if err := e.gameInstance.FnUpdate(delta); err != nil {
			core.LogError("Game update failed, shutting down: %s", err)
			return err
		}
	}
	if e.gameInstance.FnRender != nil {
		if err := e.gameInstance.FnRender(e.context, delta); err != nil {
			core.LogError("Game render failed, shutting down: %s", err)
			return err
		}
	}
	e.context.Flip()
	return nil
}

func (e *Engine) teardown() {
	e.currentStage = EngineStageShuttingDown
	if e.gameInstance.FnShutdown != nil {
		if err := e.gameInstance.FnShutdown(e.context); err != nil {
			core.LogError(err.Error())
		}
	}
	if e.shaderWatcher != nil {
		if err := e.shaderWatcher.Close(); err != nil {
			core.LogError(err.Error())
		}
		e.shaderWatcher = nil
	}
	e.context.Delete()
	if err := core.EventShutdown(); err != nil {
		core.LogError(err.Error())
	}
	e.currentStage = EngineStageStopped
}

func (e *Engine) onResized(width, height uint32) {
	if width == e.width && height == e.height {
		return
	}
	e.width = width
	e.height = height
	core.LogDebug("Window resize: %d, %d", width, height)

	// Handle minimization
	if width == 0 || height == 0 {
		core.LogInfo("Window minimized, suspending application.")
		return
	}
	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(width, height); err != nil {
			core.LogError(err.Error())
		}
	}
}

func (e *Engine) onClose() bool {
	core.LogInfo("Close requested, shutting down.")
	e.isRunning.Store(false)
	return true
}
