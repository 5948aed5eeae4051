package device

import (
	"strings"

	"github.com/spaghettifunk/anima-gfx/engine/core"
)

// Queue families are indices, not an enum.
const QueueFamilyInvalid int32 = -1

type QueueFamily struct {
	GraphicsFamily int32
	PresentFamily  int32
}

func (q QueueFamily) Valid() bool {
	return q.GraphicsFamily != QueueFamilyInvalid && q.PresentFamily != QueueFamilyInvalid
}

type SwapChainSupport struct {
	Capabilities SurfaceCapabilities
	Formats      []SurfaceFormat
	PresentModes []PresentMode
}

// Adequate reports whether the surface can be presented to at all.
func (s SwapChainSupport) Adequate() bool {
	return len(s.Formats) > 0 && len(s.PresentModes) > 0
}

// SelectQueueFamilies returns the first family able to run graphics work and,
// independently, the first family able to present to surface. The scan stops
// as soon as both are known.
func SelectQueueFamilies(driver Driver, device PhysicalDevice, surface SurfaceHandle) QueueFamily {
	selected := QueueFamily{GraphicsFamily: QueueFamilyInvalid, PresentFamily: QueueFamilyInvalid}

	families := driver.QueueFamilyProperties(device)
	if len(families) == 0 {
		return selected
	}

	for i, candidate := range families {
		if selected.GraphicsFamily == QueueFamilyInvalid && candidate.Count > 0 && candidate.Flags&QueueGraphicsBit != 0 {
			selected.GraphicsFamily = int32(i)
		}

		if selected.PresentFamily == QueueFamilyInvalid && candidate.Count > 0 {
			supported, err := driver.SurfaceSupport(device, uint32(i), surface)
			if err != nil {
				core.LogDebug("surface support query failed for queue family %d: %s", i, err)
			}
			if supported {
				selected.PresentFamily = int32(i)
			}
		}

		if selected.Valid() {
			break
		}
	}
	return selected
}

// CheckDeviceExtensionSupport counts down the required extensions for every
// case-insensitive match in the enumerated list and succeeds when the count
// hits zero exactly. A device that lists a required extension twice matches
// it twice, so a duplicate can stand in for a different missing extension.
func CheckDeviceExtensionSupport(driver Driver, device PhysicalDevice, requiredExtensions []string) bool {
	available, err := driver.EnumerateDeviceExtensions(device)
	if err != nil {
		core.LogDebug("device extension enumeration failed: %s", err)
		available = nil
	}

	remaining := len(requiredExtensions)
	for _, name := range available {
		for _, required := range requiredExtensions {
			if strings.EqualFold(name, required) {
				remaining--
			}
		}
	}
	return remaining == 0
}

// QuerySwapChainSupport reads the surface capabilities, formats and present
// modes of device. Failed queries leave the corresponding part empty.
func QuerySwapChainSupport(driver Driver, device PhysicalDevice, surface SurfaceHandle) SwapChainSupport {
	var support SwapChainSupport
	var err error

	if support.Capabilities, err = driver.SurfaceCapabilities(device, surface); err != nil {
		core.LogDebug("surface capabilities query failed: %s", err)
	}
	if support.Formats, err = driver.SurfaceFormats(device, surface); err != nil {
		core.LogDebug("surface formats query failed: %s", err)
		support.Formats = nil
	}
	if support.PresentModes, err = driver.SurfacePresentModes(device, surface); err != nil {
		core.LogDebug("surface present modes query failed: %s", err)
		support.PresentModes = nil
	}
	return support
}

// IsDeviceCompatible checks queue families, extensions and swap chain support.
// The swap chain is only queried once the extensions are known to be there.
func IsDeviceCompatible(driver Driver, device PhysicalDevice, surface SurfaceHandle, requiredExtensions []string) bool {
	family := SelectQueueFamilies(driver, device, surface)
	extensionsSupported := CheckDeviceExtensionSupport(driver, device, requiredExtensions)

	swapChainSupported := false
	if extensionsSupported {
		swapChainSupported = QuerySwapChainSupport(driver, device, surface).Adequate()
	}
	return family.Valid() && extensionsSupported && swapChainSupported
}

// SelectPhysicalDevice returns the first compatible device in enumeration
// order. There is no ranking and no fallback.
func SelectPhysicalDevice(driver Driver, instance InstanceHandle, surface SurfaceHandle, requiredExtensions []string) (PhysicalDevice, bool) {
	devices, err := driver.EnumeratePhysicalDevices(instance)
	if err != nil {
		core.LogDebug("physical device enumeration failed: %s", err)
		return NullPhysicalDevice, false
	}
	if len(devices) == 0 {
		core.LogError("No devices which support %s were found.", driver.Name())
		return NullPhysicalDevice, false
	}

	for _, candidate := range devices {
		if IsDeviceCompatible(driver, candidate, surface, requiredExtensions) {
			core.LogInfo("Selected device: '%s'.", driver.PhysicalDeviceName(candidate))
			return candidate, true
		}
		core.LogDebug("Device '%s' does not meet the requirements, skipping.", driver.PhysicalDeviceName(candidate))
	}

	core.LogError("No physical devices were found which meet the requirements.")
	return NullPhysicalDevice, false
}
