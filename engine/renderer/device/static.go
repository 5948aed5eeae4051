package device

import (
	"errors"
	"fmt"
)

var ErrStaticFailure = errors.New("static driver: forced failure")

// StaticDevice describes one physical device of a StaticDriver.
type StaticDevice struct {
	Name          string
	QueueFamilies []QueueFamilyProperties
	// PresentFamilies lists the queue family indices that can present.
	PresentFamilies []uint32
	Extensions      []string
	Capabilities    SurfaceCapabilities
	Formats         []SurfaceFormat
	PresentModes    []PresentMode
}

// StaticDriver is an in-memory Driver. It backs the null graphics backend and
// lets negotiation run without a GPU.
type StaticDriver struct {
	InstanceExtensions []string
	Layers             []string
	Devices            []StaticDevice

	FailInstance  bool
	FailSurface   bool
	FailMessenger bool

	// Recorded calls.
	LastCreateInfo   InstanceCreateInfo
	SwapChainQueries int
	LiveInstances    int
	LiveSurfaces     int
	LiveMessengers   int
	DebugMessage     DebugMessageFunc
	nextHandle       uint64
}

// NewNullDriver returns a driver exposing a single fully capable device.
func NewNullDriver() *StaticDriver {
	return &StaticDriver{
		InstanceExtensions: []string{ExtSurface, ExtDebugUtils, ExtDebugReport},
		Layers:             []string{LayerKhronosValidation},
		Devices: []StaticDevice{
			{
				Name:            "Null Device",
				QueueFamilies:   []QueueFamilyProperties{{Flags: QueueGraphicsBit | QueueComputeBit | QueueTransferBit, Count: 1}},
				PresentFamilies: []uint32{0},
				Extensions:      []string{ExtSwapchain},
				Capabilities: SurfaceCapabilities{
					MinImageCount:  2,
					MaxImageCount:  3,
					MaxImageExtent: Extent2D{Width: 4096, Height: 4096},
				},
				Formats:      []SurfaceFormat{{Format: 44, ColorSpace: 0}},
				PresentModes: []PresentMode{PresentModeFifo},
			},
		},
	}
}

func (d *StaticDriver) Name() string {
	return "Null"
}

func (d *StaticDriver) handle() uint64 {
	d.nextHandle++
	return d.nextHandle
}

func (d *StaticDriver) device(device PhysicalDevice) (*StaticDevice, bool) {
	i := int(device) - 1
	if i < 0 || i >= len(d.Devices) {
		return nil, false
	}
	return &d.Devices[i], true
}

func (d *StaticDriver) EnumerateInstanceExtensions() ([]string, error) {
	return d.InstanceExtensions, nil
}

func (d *StaticDriver) EnumerateInstanceLayers() ([]string, error) {
	return d.Layers, nil
}

func (d *StaticDriver) CreateInstance(info InstanceCreateInfo) (InstanceHandle, error) {
	d.LastCreateInfo = info
	if d.FailInstance {
		return 0, ErrStaticFailure
	}
	d.LiveInstances++
	return InstanceHandle(d.handle()), nil
}

func (d *StaticDriver) DestroyInstance(instance InstanceHandle) {
	d.LiveInstances--
}

func (d *StaticDriver) CreateDebugMessenger(instance InstanceHandle, fn DebugMessageFunc) (MessengerHandle, error) {
	if d.FailMessenger {
		return 0, ErrStaticFailure
	}
	d.DebugMessage = fn
	d.LiveMessengers++
	return MessengerHandle(d.handle()), nil
}

func (d *StaticDriver) DestroyDebugMessenger(instance InstanceHandle, messenger MessengerHandle) {
	d.DebugMessage = nil
	d.LiveMessengers--
}

func (d *StaticDriver) CreateSurface(instance InstanceHandle, window SurfaceSource) (SurfaceHandle, error) {
	if d.FailSurface {
		return 0, ErrStaticFailure
	}
	d.LiveSurfaces++
	return SurfaceHandle(d.handle()), nil
}

func (d *StaticDriver) DestroySurface(instance InstanceHandle, surface SurfaceHandle) {
	d.LiveSurfaces--
}

// Physical devices are numbered from one in declaration order.
func (d *StaticDriver) EnumeratePhysicalDevices(instance InstanceHandle) ([]PhysicalDevice, error) {
	devices := make([]PhysicalDevice, len(d.Devices))
	for i := range d.Devices {
		devices[i] = PhysicalDevice(i + 1)
	}
	return devices, nil
}

func (d *StaticDriver) PhysicalDeviceName(device PhysicalDevice) string {
	if dev, ok := d.device(device); ok {
		return dev.Name
	}
	return fmt.Sprintf("device#%d", device)
}

func (d *StaticDriver) QueueFamilyProperties(device PhysicalDevice) []QueueFamilyProperties {
	if dev, ok := d.device(device); ok {
		return dev.QueueFamilies
	}
	return nil
}

func (d *StaticDriver) SurfaceSupport(device PhysicalDevice, queueFamily uint32, surface SurfaceHandle) (bool, error) {
	dev, ok := d.device(device)
	if !ok {
		return false, ErrStaticFailure
	}
	for _, family := range dev.PresentFamilies {
		if family == queueFamily {
			return true, nil
		}
	}
	return false, nil
}

func (d *StaticDriver) EnumerateDeviceExtensions(device PhysicalDevice) ([]string, error) {
	if dev, ok := d.device(device); ok {
		return dev.Extensions, nil
	}
	return nil, ErrStaticFailure
}

func (d *StaticDriver) SurfaceCapabilities(device PhysicalDevice, surface SurfaceHandle) (SurfaceCapabilities, error) {
	d.SwapChainQueries++
	if dev, ok := d.device(device); ok {
		return dev.Capabilities, nil
	}
	return SurfaceCapabilities{}, ErrStaticFailure
}

func (d *StaticDriver) SurfaceFormats(device PhysicalDevice, surface SurfaceHandle) ([]SurfaceFormat, error) {
	if dev, ok := d.device(device); ok {
		return dev.Formats, nil
	}
	return nil, ErrStaticFailure
}

func (d *StaticDriver) SurfacePresentModes(device PhysicalDevice, surface SurfaceHandle) ([]PresentMode, error) {
	if dev, ok := d.device(device); ok {
		return dev.PresentModes, nil
	}
	return nil, ErrStaticFailure
}
