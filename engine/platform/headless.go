package platform

import "github.com/spaghettifunk/anima-gfx/engine/core"

// HeadlessWindow is a window without an OS counterpart. It serves the null
// backend and tests; resizes and close requests are driven by the caller.
type HeadlessWindow struct {
	title          string
	width, height  uint32
	open           bool
	closeRequested bool
	iconified      bool
	swaps          uint64
}

func NewHeadlessWindow() *HeadlessWindow {
	return &HeadlessWindow{}
}

func (w *HeadlessWindow) Open(title string, width, height uint32) error {
	w.title = title
	w.width = width
	w.height = height
	w.open = true
	w.closeRequested = false
	core.LogDebug("headless window '%s' opened (%dx%d)", title, width, height)
	return nil
}

func (w *HeadlessWindow) Close() {
	w.open = false
	w.width = 0
	w.height = 0
}

func (w *HeadlessWindow) IsOpen() bool {
	return w.open
}

func (w *HeadlessWindow) Title() string {
	return w.title
}

func (w *HeadlessWindow) Size() (uint32, uint32) {
	return w.width, w.height
}

func (w *HeadlessWindow) SetSize(width, height uint32) {
	w.width = width
	w.height = height
}

// Resize behaves like the user dragging the window border.
func (w *HeadlessWindow) Resize(width, height uint32) {
	w.SetSize(width, height)
	FireResized(w, width, height)
}

// RequestClose behaves like the user clicking the close button. Whoever
// handles EVENT_CODE_APPLICATION_QUIT decides whether the window closes.
func (w *HeadlessWindow) RequestClose() {
	FireQuit(w)
}

func (w *HeadlessWindow) SetShouldClose(value bool) {
	w.closeRequested = value
}

func (w *HeadlessWindow) Iconify() {
	w.iconified = true
	FireIconified(w, true)
}

func (w *HeadlessWindow) Iconified() bool {
	return w.iconified
}

func (w *HeadlessWindow) PollEvents() {}

func (w *HeadlessWindow) SwapBuffers() {
	w.swaps++
}

func (w *HeadlessWindow) Swaps() uint64 {
	return w.swaps
}

func (w *HeadlessWindow) ShouldClose() bool {
	return w.closeRequested
}

func (w *HeadlessWindow) RefreshRate() uint32 {
	return 0
}

func (w *HeadlessWindow) RequiredInstanceExtensions() []string {
	return nil
}

func (w *HeadlessWindow) CreateWindowSurface(instance interface{}) (uintptr, error) {
	return 0, ErrNoSurface
}

func (w *HeadlessWindow) NativeHandles() NativeHandles {
	return NativeHandles{}
}
