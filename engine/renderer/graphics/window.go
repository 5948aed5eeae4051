package graphics

import (
	"encoding/binary"
	"math"

	"github.com/spaghettifunk/anima-gfx/engine/core"
	"github.com/spaghettifunk/anima-gfx/engine/platform"
	"github.com/spaghettifunk/anima-gfx/engine/renderer/metadata"
)

// OpenWindow opens the backend window, negotiates a physical device for its
// surface and allocates the main frame buffer.
func (c *Context) OpenWindow(params *metadata.WindowParams) metadata.WindowResult {
	core.Assert(params != nil, "OpenWindow called without window params")
	if c.windowOpened {
		return metadata.WindowResultAlreadyOpened
	}

	window := c.backend.Window
	if err := window.Open(params.Title, params.Width, params.Height); err != nil {
		core.LogError("Unable to open %s window: %s", c.backend.Name, err)
		return metadata.WindowResultWindowOpenError
	}
	if _, err := c.instance.OpenSurface(window); err != nil {
		core.LogError("Unable to open %s window: %s", c.backend.Name, err)
		c.instance.CloseSurface()
		window.Close()
		return metadata.WindowResultWindowOpenError
	}

	c.resizeCallback = params.ResizeCallback
	c.closeCallback = params.CloseCallback
	c.width = params.Width
	c.height = params.Height
	c.windowWidth = params.Width
	c.windowHeight = params.Height
	c.dpi = 0
	c.iconified = false
	c.windowOpened = true
	c.mainFrameBuffer = newMainFrameBuffer(params.Width, params.Height)
	c.currentFrameBuffer = &c.mainFrameBuffer
	c.program = 0

	core.EventRegister(core.EVENT_CODE_RESIZED, c, c.onResized)
	core.EventRegister(core.EVENT_CODE_APPLICATION_QUIT, c, c.onQuit)
	core.EventRegister(core.EVENT_CODE_ICONIFIED, c, c.onIconified)

	if params.PrintDeviceInfo {
		instance := c.instance
		core.LogInfo("Device: %s", c.backend.Name)
		core.LogInfo("Physical device: %s", instance.Driver().PhysicalDeviceName(instance.PhysicalDevice()))
		families := instance.QueueFamilies()
		core.LogInfo("Queue families: graphics=%d present=%d", families.GraphicsFamily, families.PresentFamily)
	}
	return metadata.WindowResultOK
}

// CloseWindow releases the main frame buffer and closes the window. Does
// nothing when no window is open.
func (c *Context) CloseWindow() {
	if !c.windowOpened {
		return
	}
	core.EventUnregister(core.EVENT_CODE_RESIZED, c)
	core.EventUnregister(core.EVENT_CODE_APPLICATION_QUIT, c)
	core.EventUnregister(core.EVENT_CODE_ICONIFIED, c)

	c.instance.CloseSurface()
	c.backend.Window.Close()

	c.mainFrameBuffer = frameBuffer{}
	c.currentFrameBuffer = nil
	c.windowOpened = false
	c.width = 0
	c.height = 0
	c.windowWidth = 0
	c.windowHeight = 0
}

// ownsWindow filters the global window events down to the ones raised by
// this context's window.
func (c *Context) ownsWindow(sender interface{}) bool {
	return sender == c.backend.Window
}

func (c *Context) onResized(code core.SystemEventCode, sender interface{}, listener interface{}, data core.EventContext) bool {
	if !c.ownsWindow(sender) {
		return false
	}
	width, height := data.Data.U32[0], data.Data.U32[1]
	if width == c.width && height == c.height {
		return false
	}
	c.resize(width, height)
	return false
}

func (c *Context) onQuit(code core.SystemEventCode, sender interface{}, listener interface{}, data core.EventContext) bool {
	if !c.ownsWindow(sender) {
		return false
	}
	if c.closeCallback == nil || c.closeCallback() {
		c.backend.Window.SetShouldClose(true)
	}
	return false
}

func (c *Context) onIconified(code core.SystemEventCode, sender interface{}, listener interface{}, data core.EventContext) bool {
	if !c.ownsWindow(sender) {
		return false
	}
	c.iconified = data.Data.U32[0] != 0
	return false
}

// SetWindowSize resizes the window and reallocates the main frame buffer.
func (c *Context) SetWindowSize(width, height uint32) {
	if !c.windowOpened {
		return
	}
	c.backend.Window.SetSize(width, height)
	c.resize(width, height)
}

func (c *Context) resize(width, height uint32) {
	c.width = width
	c.height = height
	c.windowWidth = width
	c.windowHeight = height
	bound := c.currentFrameBuffer == &c.mainFrameBuffer
	c.mainFrameBuffer = newMainFrameBuffer(width, height)
	if bound {
		c.currentFrameBuffer = &c.mainFrameBuffer
	}
	if c.resizeCallback != nil {
		c.resizeCallback(width, height)
	}
}

func (c *Context) IconifyWindow() {
	if c.windowOpened {
		c.backend.Window.Iconify()
	}
}

func (c *Context) GetWindowState(state metadata.WindowState) uint32 {
	switch state {
	case metadata.WindowStateOpened:
		return boolToUint32(c.windowOpened)
	case metadata.WindowStateIconified:
		return boolToUint32(c.windowOpened && c.iconified)
	case metadata.WindowStateActive:
		return boolToUint32(c.windowOpened && !c.iconified)
	default:
		return 0
	}
}

func boolToUint32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

func (c *Context) GetWindowRefreshRate() uint32 {
	return 0
}

func (c *Context) GetDisplayDpi() uint32 {
	return c.dpi
}

func (c *Context) GetWidth() uint32 {
	return c.width
}

func (c *Context) GetHeight() uint32 {
	return c.height
}

func (c *Context) GetWindowWidth() uint32 {
	return c.windowWidth
}

func (c *Context) GetWindowHeight() uint32 {
	return c.windowHeight
}

func (c *Context) GetDefaultTextureFilters() (minFilter, magFilter metadata.TextureFilter) {
	return c.params.DefaultTextureMinFilter, c.params.DefaultTextureMagFilter
}

// NativeHandles returns the OS handles of the open window. Missing handles are zero.
func (c *Context) NativeHandles() platform.NativeHandles {
	if !c.windowOpened {
		return platform.NativeHandles{}
	}
	return c.backend.Window.NativeHandles()
}

// Clear fills the attachments of the bound frame buffer selected by flags.
// Colors are packed as r<<24 | g<<16 | b<<8 | a.
func (c *Context) Clear(flags metadata.BufferType, red, green, blue, alpha uint8, depth float32, stencil uint32) {
	core.Assert(c.currentFrameBuffer != nil, "Clear called without a bound frame buffer")
	fb := c.currentFrameBuffer
	if flags&metadata.BufferTypeColorBit != 0 {
		color := uint32(red)<<24 | uint32(green)<<16 | uint32(blue)<<8 | uint32(alpha)
		fill32(fb.attachment(metadata.BufferTypeColorBit).data, color)
	}
	if flags&metadata.BufferTypeDepthBit != 0 {
		fill32(fb.attachment(metadata.BufferTypeDepthBit).data, math.Float32bits(depth))
	}
	if flags&metadata.BufferTypeStencilBit != 0 {
		fill32(fb.attachment(metadata.BufferTypeStencilBit).data, stencil)
	}
}

func fill32(data []byte, value uint32) {
	for i := 0; i+4 <= len(data); i += 4 {
		binary.LittleEndian.PutUint32(data[i:], value)
	}
}

// Flip presents the frame. The next draw call starts a new draw count.
func (c *Context) Flip() {
	window := c.backend.Window
	window.SwapBuffers()
	window.PollEvents()
	c.flipped = true
}

func (c *Context) SetSwapInterval(interval uint32) {}

// ReadPixels zero fills the first width*height*4 bytes of buffer.
func (c *Context) ReadPixels(buffer []byte) {
	size := int(c.width * c.height * 4)
	core.Assert(len(buffer) >= size, "ReadPixels buffer too small (%d < %d)", len(buffer), size)
	clear(buffer[:size])
}

// RunApplicationLoop calls step until isRunning reports false or the window
// asks to close.
func (c *Context) RunApplicationLoop(step func(), isRunning func() bool) {
	c.clock.Start()
	last := c.clock.Elapsed()
	for isRunning() {
		if c.windowOpened && c.backend.Window.ShouldClose() {
			break
		}
		step()

		c.clock.Update()
		now := c.clock.Elapsed()
		c.metrics.Update(now - last)
		last = now
	}
	c.clock.Stop()
}
