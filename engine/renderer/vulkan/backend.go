package vulkan

import (
	"github.com/spaghettifunk/anima-gfx/engine/platform/desktop"
	"github.com/spaghettifunk/anima-gfx/engine/renderer/graphics"
)

func init() {
	graphics.RegisterBackend(graphics.BackendVulkan, NewBackend)
}

// NewBackend opens glfw and loads the Vulkan entry points from it. The
// window itself is created later by OpenWindow.
func NewBackend() (*graphics.Backend, error) {
	window := desktop.NewWindow()
	if err := window.Init(); err != nil {
		return nil, err
	}
	driver, err := NewDriver(window.ProcAddress())
	if err != nil {
		window.Terminate()
		return nil, err
	}
	return &graphics.Backend{
		Name:   graphics.BackendVulkan,
		Driver: driver,
		Window: window,
	}, nil
}
