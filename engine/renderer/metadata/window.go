package metadata

/**
 * @brief Invoked after the window size changed, with the new size.
 */
type WindowResizeCallback func(width, height uint32)

/**
 * @brief Invoked when the user asks to close the window. Returning true lets
 * the window close.
 */
type WindowCloseCallback func() bool

type WindowParams struct {
	Width           uint32
	Height          uint32
	Title           string
	PrintDeviceInfo bool
	ResizeCallback  WindowResizeCallback
	CloseCallback   WindowCloseCallback
}

type WindowResult int

const (
	WindowResultOK WindowResult = iota
	WindowResultAlreadyOpened
	WindowResultWindowOpenError
	WindowResultUnknownError
)

func (r WindowResult) String() string {
	switch r {
	case WindowResultOK:
		return "ok"
	case WindowResultAlreadyOpened:
		return "already opened"
	case WindowResultWindowOpenError:
		return "window open error"
	default:
		return "unknown error"
	}
}

type WindowState int

const (
	WindowStateOpened WindowState = iota
	WindowStateActive
	WindowStateIconified
	WindowStateRefreshRate
)

/** @brief Parameters used to create a graphics context. */
type ContextParams struct {
	DefaultTextureMinFilter TextureFilter
	DefaultTextureMagFilter TextureFilter
	/** @brief Enable native API validation layers when the driver offers them. */
	EnableValidation bool
	ValidationLayers []string
	DeviceExtensions []string
}
