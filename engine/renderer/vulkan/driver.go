package vulkan

import (
	"fmt"
	"sync"
	"unsafe"

	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/anima-gfx/engine/core"
	"github.com/spaghettifunk/anima-gfx/engine/renderer/device"
)

// Driver implements device.Driver on top of the Vulkan loader. Native
// handles are kept in tables and handed out as small integer ids.
type Driver struct {
	nextID     uint64
	instances  map[device.InstanceHandle]vk.Instance
	surfaces   map[device.SurfaceHandle]vk.Surface
	callbacks  map[device.MessengerHandle]vk.DebugReportCallback
	devices    map[device.PhysicalDevice]vk.PhysicalDevice
	deviceByVk map[vk.PhysicalDevice]device.PhysicalDevice
}

// NewDriver loads the Vulkan entry points through procAddr, the
// vkGetInstanceProcAddr the window system exposes.
func NewDriver(procAddr unsafe.Pointer) (*Driver, error) {
	if procAddr == nil {
		err := fmt.Errorf("GetInstanceProcAddress is nil")
		core.LogError(err.Error())
		return nil, err
	}
	vk.SetGetInstanceProcAddr(procAddr)
	if err := vk.Init(); err != nil {
		core.LogError("failed to initialize vk: %s", err)
		return nil, err
	}
	return &Driver{
		instances:  make(map[device.InstanceHandle]vk.Instance),
		surfaces:   make(map[device.SurfaceHandle]vk.Surface),
		callbacks:  make(map[device.MessengerHandle]vk.DebugReportCallback),
		devices:    make(map[device.PhysicalDevice]vk.PhysicalDevice),
		deviceByVk: make(map[vk.PhysicalDevice]device.PhysicalDevice),
	}, nil
}

func (d *Driver) Name() string {
	return "Vulkan"
}

func (d *Driver) id() uint64 {
	d.nextID++
	return d.nextID
}

func resultError(what string, res vk.Result) error {
	return fmt.Errorf("%s failed with error `%s`", what, VulkanResultString(res, true))
}

func (d *Driver) EnumerateInstanceExtensions() ([]string, error) {
	var count uint32
	if res := vk.EnumerateInstanceExtensionProperties("", &count, nil); res != vk.Success {
		return nil, resultError("vkEnumerateInstanceExtensionProperties", res)
	}
	if count == 0 {
		return nil, nil
	}
	props := make([]vk.ExtensionProperties, count)
	if res := vk.EnumerateInstanceExtensionProperties("", &count, props); res != vk.Success {
		return nil, resultError("vkEnumerateInstanceExtensionProperties", res)
	}
	names := make([]string, 0, count)
	for i := range props[:count] {
		props[i].Deref()
		names = append(names, vk.ToString(props[i].ExtensionName[:]))
	}
	return names, nil
}

func (d *Driver) EnumerateInstanceLayers() ([]string, error) {
	var count uint32
	if res := vk.EnumerateInstanceLayerProperties(&count, nil); res != vk.Success {
		return nil, resultError("vkEnumerateInstanceLayerProperties", res)
	}
	if count == 0 {
		return nil, nil
	}
	props := make([]vk.LayerProperties, count)
	if res := vk.EnumerateInstanceLayerProperties(&count, props); res != vk.Success {
		return nil, resultError("vkEnumerateInstanceLayerProperties", res)
	}
	names := make([]string, 0, count)
	for i := range props[:count] {
		props[i].Deref()
		names = append(names, vk.ToString(props[i].LayerName[:]))
	}
	return names, nil
}

func (d *Driver) CreateInstance(info device.InstanceCreateInfo) (device.InstanceHandle, error) {
	appInfo := &vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		ApiVersion:         info.Application.APIVersion,
		ApplicationVersion: info.Application.ApplicationVersion,
		EngineVersion:      info.Application.EngineVersion,
		PApplicationName:   VulkanSafeString(info.Application.ApplicationName),
		PEngineName:        VulkanSafeString(info.Application.EngineName),
	}

	extensions := VulkanSafeStrings(append([]string(nil), info.Extensions...))
	layers := VulkanSafeStrings(append([]string(nil), info.Layers...))
	createInfo := vk.InstanceCreateInfo{
		SType:                   vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo:        appInfo,
		EnabledExtensionCount:   uint32(len(extensions)),
		PpEnabledExtensionNames: extensions,
		EnabledLayerCount:       uint32(len(layers)),
		PpEnabledLayerNames:     layers,
	}
	if info.Portability {
		// VK_INSTANCE_CREATE_ENUMERATE_PORTABILITY_BIT_KHR
		createInfo.Flags |= 1
	}

	var instance vk.Instance
	if res := vk.CreateInstance(&createInfo, nil, &instance); res != vk.Success {
		return 0, resultError("vkCreateInstance", res)
	}
	if err := vk.InitInstance(instance); err != nil {
		vk.DestroyInstance(instance, nil)
		return 0, err
	}
	h := device.InstanceHandle(d.id())
	d.instances[h] = instance
	return h, nil
}

func (d *Driver) DestroyInstance(instance device.InstanceHandle) {
	if vkInstance, ok := d.instances[instance]; ok {
		vk.DestroyInstance(vkInstance, nil)
		delete(d.instances, instance)
	}
}

func (d *Driver) instance(h device.InstanceHandle) (vk.Instance, error) {
	instance, ok := d.instances[h]
	if !ok {
		return nil, fmt.Errorf("unknown instance %d", h)
	}
	return instance, nil
}

var (
	debugMu   sync.Mutex
	debugSink device.DebugMessageFunc
)

func dbgCallbackFunc(flags vk.DebugReportFlags, objectType vk.DebugReportObjectType, object uint64, location uint64, messageCode int32, pLayerPrefix string, pMessage string, pUserData unsafe.Pointer) vk.Bool32 {
	debugMu.Lock()
	sink := debugSink
	debugMu.Unlock()
	if sink == nil {
		return vk.False
	}

	severity := device.SeverityVerbose
	switch {
	case flags&vk.DebugReportFlags(vk.DebugReportErrorBit) != 0:
		severity = device.SeverityError
	case flags&vk.DebugReportFlags(vk.DebugReportWarningBit|vk.DebugReportPerformanceWarningBit) != 0:
		severity = device.SeverityWarning
	case flags&vk.DebugReportFlags(vk.DebugReportInformationBit) != 0:
		severity = device.SeverityInfo
	}
	sink(severity, pLayerPrefix, fmt.Sprintf("Code %d : %s", messageCode, pMessage))
	return vk.False
}

// CreateDebugMessenger installs a debug report callback. Only one sink is
// active at a time.
func (d *Driver) CreateDebugMessenger(instance device.InstanceHandle, fn device.DebugMessageFunc) (device.MessengerHandle, error) {
	vkInstance, err := d.instance(instance)
	if err != nil {
		return 0, err
	}
	debugMu.Lock()
	debugSink = fn
	debugMu.Unlock()

	debugCreateInfo := vk.DebugReportCallbackCreateInfo{
		SType:       vk.StructureTypeDebugReportCallbackCreateInfo,
		Flags:       vk.DebugReportFlags(vk.DebugReportErrorBit | vk.DebugReportWarningBit | vk.DebugReportPerformanceWarningBit | vk.DebugReportInformationBit),
		PfnCallback: dbgCallbackFunc,
	}
	var callback vk.DebugReportCallback
	if err := vk.Error(vk.CreateDebugReportCallback(vkInstance, &debugCreateInfo, nil, &callback)); err != nil {
		return 0, err
	}
	h := device.MessengerHandle(d.id())
	d.callbacks[h] = callback
	return h, nil
}

func (d *Driver) DestroyDebugMessenger(instance device.InstanceHandle, messenger device.MessengerHandle) {
	vkInstance, err := d.instance(instance)
	if err != nil {
		return
	}
	if callback, ok := d.callbacks[messenger]; ok {
		vk.DestroyDebugReportCallback(vkInstance, callback, nil)
		delete(d.callbacks, messenger)
	}
	debugMu.Lock()
	debugSink = nil
	debugMu.Unlock()
}

func (d *Driver) CreateSurface(instance device.InstanceHandle, window device.SurfaceSource) (device.SurfaceHandle, error) {
	vkInstance, err := d.instance(instance)
	if err != nil {
		return 0, err
	}
	ptr, err := window.CreateWindowSurface(vkInstance)
	if err != nil {
		return 0, err
	}
	if ptr == 0 {
		return 0, fmt.Errorf("window returned a null surface")
	}
	h := device.SurfaceHandle(d.id())
	d.surfaces[h] = vk.SurfaceFromPointer(ptr)
	return h, nil
}

func (d *Driver) DestroySurface(instance device.InstanceHandle, surface device.SurfaceHandle) {
	vkInstance, err := d.instance(instance)
	if err != nil {
		return
	}
	if vkSurface, ok := d.surfaces[surface]; ok {
		vk.DestroySurface(vkInstance, vkSurface, nil)
		delete(d.surfaces, surface)
	}
}

func (d *Driver) EnumeratePhysicalDevices(instance device.InstanceHandle) ([]device.PhysicalDevice, error) {
	vkInstance, err := d.instance(instance)
	if err != nil {
		return nil, err
	}
	var count uint32
	if res := vk.EnumeratePhysicalDevices(vkInstance, &count, nil); res != vk.Success {
		return nil, resultError("vkEnumeratePhysicalDevices", res)
	}
	if count == 0 {
		return nil, nil
	}
	physicalDevices := make([]vk.PhysicalDevice, count)
	if res := vk.EnumeratePhysicalDevices(vkInstance, &count, physicalDevices); res != vk.Success {
		return nil, resultError("vkEnumeratePhysicalDevices", res)
	}

	out := make([]device.PhysicalDevice, 0, count)
	for _, pd := range physicalDevices[:count] {
		h, ok := d.deviceByVk[pd]
		if !ok {
			h = device.PhysicalDevice(d.id())
			d.devices[h] = pd
			d.deviceByVk[pd] = h
		}
		out = append(out, h)
	}
	return out, nil
}

func (d *Driver) PhysicalDeviceName(dev device.PhysicalDevice) string {
	pd, ok := d.devices[dev]
	if !ok {
		return ""
	}
	var properties vk.PhysicalDeviceProperties
	vk.GetPhysicalDeviceProperties(pd, &properties)
	properties.Deref()
	return vk.ToString(properties.DeviceName[:])
}

func (d *Driver) QueueFamilyProperties(dev device.PhysicalDevice) []device.QueueFamilyProperties {
	pd, ok := d.devices[dev]
	if !ok {
		return nil
	}
	var count uint32
	vk.GetPhysicalDeviceQueueFamilyProperties(pd, &count, nil)
	if count == 0 {
		return nil
	}
	families := make([]vk.QueueFamilyProperties, count)
	vk.GetPhysicalDeviceQueueFamilyProperties(pd, &count, families)

	out := make([]device.QueueFamilyProperties, 0, count)
	for i := range families[:count] {
		families[i].Deref()
		var flags device.QueueFlags
		if vk.QueueFlagBits(families[i].QueueFlags)&vk.QueueGraphicsBit != 0 {
			flags |= device.QueueGraphicsBit
		}
		if vk.QueueFlagBits(families[i].QueueFlags)&vk.QueueComputeBit != 0 {
			flags |= device.QueueComputeBit
		}
		if vk.QueueFlagBits(families[i].QueueFlags)&vk.QueueTransferBit != 0 {
			flags |= device.QueueTransferBit
		}
		out = append(out, device.QueueFamilyProperties{Flags: flags, Count: families[i].QueueCount})
	}
	return out
}

func (d *Driver) surfaceAndDevice(dev device.PhysicalDevice, surface device.SurfaceHandle) (pd vk.PhysicalDevice, vkSurface vk.Surface, err error) {
	var ok bool
	if pd, ok = d.devices[dev]; !ok {
		return pd, vkSurface, fmt.Errorf("unknown physical device %d", dev)
	}
	if vkSurface, ok = d.surfaces[surface]; !ok {
		return pd, vkSurface, fmt.Errorf("unknown surface %d", surface)
	}
	return pd, vkSurface, nil
}

func (d *Driver) SurfaceSupport(dev device.PhysicalDevice, queueFamily uint32, surface device.SurfaceHandle) (bool, error) {
	pd, vkSurface, err := d.surfaceAndDevice(dev, surface)
	if err != nil {
		return false, err
	}
	var supported vk.Bool32
	if res := vk.GetPhysicalDeviceSurfaceSupport(pd, queueFamily, vkSurface, &supported); res != vk.Success {
		return false, resultError("vkGetPhysicalDeviceSurfaceSupportKHR", res)
	}
	return supported == vk.True, nil
}

func (d *Driver) EnumerateDeviceExtensions(dev device.PhysicalDevice) ([]string, error) {
	pd, ok := d.devices[dev]
	if !ok {
		return nil, fmt.Errorf("unknown physical device %d", dev)
	}
	var count uint32
	if res := vk.EnumerateDeviceExtensionProperties(pd, "", &count, nil); res != vk.Success {
		return nil, resultError("vkEnumerateDeviceExtensionProperties", res)
	}
	if count == 0 {
		return nil, nil
	}
	props := make([]vk.ExtensionProperties, count)
	if res := vk.EnumerateDeviceExtensionProperties(pd, "", &count, props); res != vk.Success {
		return nil, resultError("vkEnumerateDeviceExtensionProperties", res)
	}
	names := make([]string, 0, count)
	for i := range props[:count] {
		props[i].Deref()
		names = append(names, vk.ToString(props[i].ExtensionName[:]))
	}
	return names, nil
}

func extent(e vk.Extent2D) device.Extent2D {
	e.Deref()
	return device.Extent2D{Width: e.Width, Height: e.Height}
}

func (d *Driver) SurfaceCapabilities(dev device.PhysicalDevice, surface device.SurfaceHandle) (device.SurfaceCapabilities, error) {
	pd, vkSurface, err := d.surfaceAndDevice(dev, surface)
	if err != nil {
		return device.SurfaceCapabilities{}, err
	}
	var caps vk.SurfaceCapabilities
	if res := vk.GetPhysicalDeviceSurfaceCapabilities(pd, vkSurface, &caps); res != vk.Success {
		return device.SurfaceCapabilities{}, resultError("vkGetPhysicalDeviceSurfaceCapabilitiesKHR", res)
	}
	caps.Deref()
	return device.SurfaceCapabilities{
		MinImageCount:  caps.MinImageCount,
		MaxImageCount:  caps.MaxImageCount,
		CurrentExtent:  extent(caps.CurrentExtent),
		MinImageExtent: extent(caps.MinImageExtent),
		MaxImageExtent: extent(caps.MaxImageExtent),
	}, nil
}

func (d *Driver) SurfaceFormats(dev device.PhysicalDevice, surface device.SurfaceHandle) ([]device.SurfaceFormat, error) {
	pd, vkSurface, err := d.surfaceAndDevice(dev, surface)
	if err != nil {
		return nil, err
	}
	var count uint32
	if res := vk.GetPhysicalDeviceSurfaceFormats(pd, vkSurface, &count, nil); res != vk.Success {
		return nil, resultError("vkGetPhysicalDeviceSurfaceFormatsKHR", res)
	}
	if count == 0 {
		return nil, nil
	}
	formats := make([]vk.SurfaceFormat, count)
	if res := vk.GetPhysicalDeviceSurfaceFormats(pd, vkSurface, &count, formats); res != vk.Success {
		return nil, resultError("vkGetPhysicalDeviceSurfaceFormatsKHR", res)
	}
	out := make([]device.SurfaceFormat, 0, count)
	for i := range formats[:count] {
		formats[i].Deref()
		out = append(out, device.SurfaceFormat{Format: uint32(formats[i].Format), ColorSpace: uint32(formats[i].ColorSpace)})
	}
	return out, nil
}

var presentModes = map[vk.PresentMode]device.PresentMode{
	vk.PresentModeImmediate:   device.PresentModeImmediate,
	vk.PresentModeMailbox:     device.PresentModeMailbox,
	vk.PresentModeFifo:        device.PresentModeFifo,
	vk.PresentModeFifoRelaxed: device.PresentModeFifoRelaxed,
}

func (d *Driver) SurfacePresentModes(dev device.PhysicalDevice, surface device.SurfaceHandle) ([]device.PresentMode, error) {
	pd, vkSurface, err := d.surfaceAndDevice(dev, surface)
	if err != nil {
		return nil, err
	}
	var count uint32
	if res := vk.GetPhysicalDeviceSurfacePresentModes(pd, vkSurface, &count, nil); res != vk.Success {
		return nil, resultError("vkGetPhysicalDeviceSurfacePresentModesKHR", res)
	}
	if count == 0 {
		return nil, nil
	}
	modes := make([]vk.PresentMode, count)
	if res := vk.GetPhysicalDeviceSurfacePresentModes(pd, vkSurface, &count, modes); res != vk.Success {
		return nil, resultError("vkGetPhysicalDeviceSurfacePresentModesKHR", res)
	}
	out := make([]device.PresentMode, 0, count)
	for _, mode := range modes[:count] {
		// Modes from extensions we do not know about are skipped.
		if m, ok := presentModes[mode]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}
