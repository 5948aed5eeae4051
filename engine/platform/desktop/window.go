package desktop

import (
	"runtime"
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spaghettifunk/anima-gfx/engine/core"
	"github.com/spaghettifunk/anima-gfx/engine/platform"
)

func init() {
	// GLFW event handling must run on the main OS thread
	runtime.LockOSThread()
}

// Window is a glfw window without a client API; presentation goes through
// the Vulkan surface created from it.
type Window struct {
	window      *glfw.Window
	initialized bool
}

func NewWindow() *Window {
	return &Window{}
}

// Init starts glfw. It is safe to call more than once.
func (w *Window) Init() error {
	if w.initialized {
		return nil
	}
	if err := glfw.Init(); err != nil {
		core.LogError("failed to initialize glfw: %s", err)
		return err
	}
	w.initialized = true
	return nil
}

// ProcAddress returns the loader entry point the Vulkan bindings need.
func (w *Window) ProcAddress() unsafe.Pointer {
	return glfw.GetVulkanGetInstanceProcAddress()
}

func (w *Window) Open(title string, width, height uint32) error {
	if err := w.Init(); err != nil {
		return err
	}

	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI) // Required for Vulkan.

	window, err := glfw.CreateWindow(int(width), int(height), title, nil, nil)
	if err != nil {
		core.LogError("failed to create window: %s", err)
		return err
	}
	w.window = window

	w.window.SetFramebufferSizeCallback(w.framebufferSizeCallback)
	w.window.SetCloseCallback(w.closeCallback)
	w.window.SetIconifyCallback(w.iconifyCallback)
	w.window.Show()

	return nil
}

func (w *Window) Close() {
	if w.window != nil {
		w.window.Destroy()
		w.window = nil
	}
}

// Terminate shuts glfw down. It unloads the Vulkan loader, so it must run
// after the instance is destroyed.
func (w *Window) Terminate() {
	w.Close()
	if w.initialized {
		glfw.Terminate()
		w.initialized = false
	}
}

func (w *Window) IsOpen() bool {
	return w.window != nil
}

func (w *Window) Size() (uint32, uint32) {
	if w.window == nil {
		return 0, 0
	}
	width, height := w.window.GetSize()
	return uint32(width), uint32(height)
}

func (w *Window) SetSize(width, height uint32) {
	if w.window != nil {
		w.window.SetSize(int(width), int(height))
	}
}

func (w *Window) Iconify() {
	if w.window != nil {
		w.window.Iconify()
	}
}

func (w *Window) PollEvents() {
	glfw.PollEvents()
}

// SwapBuffers does nothing: a window without a client API has no buffers to swap.
func (w *Window) SwapBuffers() {}

func (w *Window) ShouldClose() bool {
	if w.window == nil {
		return true
	}
	return w.window.ShouldClose()
}

func (w *Window) RefreshRate() uint32 {
	monitor := glfw.GetPrimaryMonitor()
	if monitor == nil {
		return 0
	}
	mode := monitor.GetVideoMode()
	if mode == nil {
		return 0
	}
	return uint32(mode.RefreshRate)
}

// RequiredInstanceExtensions only needs glfw initialized, not an open window.
func (w *Window) RequiredInstanceExtensions() []string {
	if err := w.Init(); err != nil {
		return nil
	}
	return w.window.GetRequiredInstanceExtensions()
}

func (w *Window) CreateWindowSurface(instance interface{}) (uintptr, error) {
	if w.window == nil {
		return 0, platform.ErrNoSurface
	}
	return w.window.CreateWindowSurface(instance, nil)
}

func (w *Window) NativeHandles() platform.NativeHandles {
	return platform.NativeHandles{}
}

func (w *Window) framebufferSizeCallback(_ *glfw.Window, width, height int) {
	platform.FireResized(w, uint32(width), uint32(height))
}

func (w *Window) closeCallback(window *glfw.Window) {
	// The listener decides; keep the window alive until it does.
	window.SetShouldClose(false)
	platform.FireQuit(w)
}

func (w *Window) iconifyCallback(_ *glfw.Window, iconified bool) {
	platform.FireIconified(w, iconified)
}

func (w *Window) SetShouldClose(value bool) {
	if w.window != nil {
		w.window.SetShouldClose(value)
	}
}
