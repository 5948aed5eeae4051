package device

// Opaque identifiers handed out by a Driver. Zero never names a live object.
type (
	InstanceHandle  uint64
	SurfaceHandle   uint64
	MessengerHandle uint64
	PhysicalDevice  uint64
)

const NullPhysicalDevice PhysicalDevice = 0

// Well known extension and layer names.
const (
	ExtSurface              = "VK_KHR_surface"
	ExtSwapchain            = "VK_KHR_swapchain"
	ExtDebugUtils           = "VK_EXT_debug_utils"
	ExtDebugReport          = "VK_EXT_debug_report"
	ExtPortabilityEnum      = "VK_KHR_portability_enumeration"
	ExtPhysicalDeviceProps2 = "VK_KHR_get_physical_device_properties2"
	ExtMacOSSurface         = "VK_MVK_macos_surface"
	ExtMetalSurface         = "VK_EXT_metal_surface"
	ExtWin32Surface         = "VK_KHR_win32_surface"
	ExtXlibSurface          = "VK_KHR_xlib_surface"
	ExtXcbSurface           = "VK_KHR_xcb_surface"
	ExtWaylandSurface       = "VK_KHR_wayland_surface"
	ExtAndroidSurface       = "VK_KHR_android_surface"
	LayerKhronosValidation  = "VK_LAYER_KHRONOS_validation"
	LayerLunargValidation   = "VK_LAYER_LUNARG_standard_validation"
)

const (
	DefaultApplicationName = "Anima"
	DefaultEngineName      = "Anima GFX"
)

// MakeVersion packs a version the way the native API expects it.
func MakeVersion(major, minor, patch uint32) uint32 {
	return major<<22 | minor<<12 | patch
}

// PlatformSurfaceExtensions lists the window system surface extensions an
// instance may be asked to enable alongside ExtSurface.
var PlatformSurfaceExtensions = []string{
	ExtMacOSSurface,
	ExtMetalSurface,
	ExtWin32Surface,
	ExtXlibSurface,
	ExtXcbSurface,
	ExtWaylandSurface,
	ExtAndroidSurface,
}

type QueueFlags uint32

const (
	QueueGraphicsBit QueueFlags = 0x1
	QueueComputeBit  QueueFlags = 0x2
	QueueTransferBit QueueFlags = 0x4
)

type QueueFamilyProperties struct {
	Flags QueueFlags
	Count uint32
}

type Extent2D struct {
	Width, Height uint32
}

type SurfaceCapabilities struct {
	MinImageCount  uint32
	MaxImageCount  uint32
	CurrentExtent  Extent2D
	MinImageExtent Extent2D
	MaxImageExtent Extent2D
}

type SurfaceFormat struct {
	Format     uint32
	ColorSpace uint32
}

type PresentMode uint32

const (
	PresentModeImmediate PresentMode = iota
	PresentModeMailbox
	PresentModeFifo
	PresentModeFifoRelaxed
)

type ApplicationInfo struct {
	ApplicationName    string
	ApplicationVersion uint32
	EngineName         string
	EngineVersion      uint32
	APIVersion         uint32
}

type InstanceCreateInfo struct {
	Application ApplicationInfo
	Layers      []string
	Extensions  []string
	// Portability asks the loader to also enumerate portability (MoltenVK) drivers.
	Portability bool
}

type Severity int

const (
	SeverityVerbose Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
)

// DebugMessageFunc receives diagnostics from the validation layers.
type DebugMessageFunc func(severity Severity, layer string, message string)

// SurfaceSource is the window side of surface creation. The instance argument
// is the driver native instance object.
type SurfaceSource interface {
	CreateWindowSurface(instance interface{}) (uintptr, error)
}

// Driver is the native graphics API as seen by negotiation. Enumerations that
// come back empty mean "unsupported"; they are never errors by themselves.
type Driver interface {
	Name() string

	EnumerateInstanceExtensions() ([]string, error)
	EnumerateInstanceLayers() ([]string, error)
	CreateInstance(info InstanceCreateInfo) (InstanceHandle, error)
	DestroyInstance(instance InstanceHandle)

	CreateDebugMessenger(instance InstanceHandle, fn DebugMessageFunc) (MessengerHandle, error)
	DestroyDebugMessenger(instance InstanceHandle, messenger MessengerHandle)

	CreateSurface(instance InstanceHandle, window SurfaceSource) (SurfaceHandle, error)
	DestroySurface(instance InstanceHandle, surface SurfaceHandle)

	EnumeratePhysicalDevices(instance InstanceHandle) ([]PhysicalDevice, error)
	PhysicalDeviceName(device PhysicalDevice) string
	QueueFamilyProperties(device PhysicalDevice) []QueueFamilyProperties
	SurfaceSupport(device PhysicalDevice, queueFamily uint32, surface SurfaceHandle) (bool, error)
	EnumerateDeviceExtensions(device PhysicalDevice) ([]string, error)
	SurfaceCapabilities(device PhysicalDevice, surface SurfaceHandle) (SurfaceCapabilities, error)
	SurfaceFormats(device PhysicalDevice, surface SurfaceHandle) ([]SurfaceFormat, error)
	SurfacePresentModes(device PhysicalDevice, surface SurfaceHandle) ([]PresentMode, error)
}
