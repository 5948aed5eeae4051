package platform

import (
	"errors"

	"github.com/spaghettifunk/anima-gfx/engine/core"
)

var ErrNoSurface = errors.New("window has no presentation surface")

// NativeHandles carries the OS specific handles of an open window. Handles
// that do not exist on the running platform are zero.
type NativeHandles struct {
	X11Window      uintptr
	WaylandSurface uintptr
	Win32HWND      uintptr
	CocoaNSWindow  uintptr
	CocoaNSView    uintptr
	AndroidWindow  uintptr
}

// Window is the windowing collaborator of a graphics context.
type Window interface {
	Open(title string, width, height uint32) error
	Close()
	IsOpen() bool
	Size() (uint32, uint32)
	SetSize(width, height uint32)
	Iconify()
	// PollEvents pumps the OS queue. Resize and close requests are forwarded
	// as EVENT_CODE_RESIZED and EVENT_CODE_APPLICATION_QUIT.
	PollEvents()
	SwapBuffers()
	ShouldClose() bool
	SetShouldClose(value bool)
	RefreshRate() uint32
	RequiredInstanceExtensions() []string
	CreateWindowSurface(instance interface{}) (uintptr, error)
	NativeHandles() NativeHandles
}

// Terminator is implemented by windows that hold process wide resources.
// Terminate is called once the graphics context is gone.
type Terminator interface {
	Terminate()
}

// FireResized publishes a window size change.
func FireResized(sender interface{}, width, height uint32) {
	ctx := core.EventContext{}
	ctx.Data.U32[0] = width
	ctx.Data.U32[1] = height
	core.EventFire(core.EVENT_CODE_RESIZED, sender, ctx)
}

// FireQuit publishes a close request.
func FireQuit(sender interface{}) {
	core.EventFire(core.EVENT_CODE_APPLICATION_QUIT, sender, core.EventContext{})
}

func FireIconified(sender interface{}, iconified bool) {
	ctx := core.EventContext{}
	if iconified {
		ctx.Data.U32[0] = 1
	}
	core.EventFire(core.EVENT_CODE_ICONIFIED, sender, ctx)
}
