package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compatibleDevice(name string) StaticDevice {
	return StaticDevice{
		Name:            name,
		QueueFamilies:   []QueueFamilyProperties{{Flags: QueueGraphicsBit, Count: 1}},
		PresentFamilies: []uint32{0},
		Extensions:      []string{ExtSwapchain},
		Formats:         []SurfaceFormat{{Format: 44}},
		PresentModes:    []PresentMode{PresentModeFifo},
	}
}

type countingDriver struct {
	*StaticDriver
	surfaceSupportCalls int
}

func (c *countingDriver) SurfaceSupport(device PhysicalDevice, queueFamily uint32, surface SurfaceHandle) (bool, error) {
	c.surfaceSupportCalls++
	return c.StaticDriver.SurfaceSupport(device, queueFamily, surface)
}

func TestSelectQueueFamiliesNoFamilies(t *testing.T) {
	dev := compatibleDevice("empty")
	dev.QueueFamilies = nil
	driver := &StaticDriver{Devices: []StaticDevice{dev}}

	family := SelectQueueFamilies(driver, 1, 1)
	assert.Equal(t, QueueFamilyInvalid, family.GraphicsFamily)
	assert.Equal(t, QueueFamilyInvalid, family.PresentFamily)
	assert.False(t, family.Valid())
}

func TestSelectQueueFamiliesSeparateFamilies(t *testing.T) {
	dev := compatibleDevice("split")
	dev.QueueFamilies = []QueueFamilyProperties{
		{Flags: QueueTransferBit, Count: 1},
		{Flags: QueueGraphicsBit | QueueComputeBit, Count: 4},
		{Flags: QueueGraphicsBit, Count: 1},
	}
	dev.PresentFamilies = []uint32{0, 2}
	driver := &StaticDriver{Devices: []StaticDevice{dev}}

	family := SelectQueueFamilies(driver, 1, 1)
	assert.Equal(t, int32(1), family.GraphicsFamily)
	assert.Equal(t, int32(0), family.PresentFamily)
}

func TestSelectQueueFamiliesStopsOnceBothFound(t *testing.T) {
	dev := compatibleDevice("early")
	dev.QueueFamilies = []QueueFamilyProperties{
		{Flags: QueueGraphicsBit, Count: 1},
		{Flags: QueueGraphicsBit, Count: 1},
		{Flags: QueueGraphicsBit, Count: 1},
	}
	dev.PresentFamilies = []uint32{0, 1, 2}
	driver := &countingDriver{StaticDriver: &StaticDriver{Devices: []StaticDevice{dev}}}

	family := SelectQueueFamilies(driver, 1, 1)
	assert.Equal(t, QueueFamily{GraphicsFamily: 0, PresentFamily: 0}, family)
	assert.Equal(t, 1, driver.surfaceSupportCalls)
}

func TestSelectQueueFamiliesIgnoresEmptyFamilies(t *testing.T) {
	dev := compatibleDevice("zero queues")
	dev.QueueFamilies = []QueueFamilyProperties{{Flags: QueueGraphicsBit, Count: 0}}
	dev.PresentFamilies = []uint32{0}
	driver := &StaticDriver{Devices: []StaticDevice{dev}}

	family := SelectQueueFamilies(driver, 1, 1)
	assert.False(t, family.Valid())
}

func TestCheckDeviceExtensionSupport(t *testing.T) {
	dev := compatibleDevice("ext")
	dev.Extensions = []string{"vk_khr_SWAPCHAIN", "VK_KHR_maintenance1"}
	driver := &StaticDriver{Devices: []StaticDevice{dev}}

	assert.True(t, CheckDeviceExtensionSupport(driver, 1, []string{ExtSwapchain}))
	assert.True(t, CheckDeviceExtensionSupport(driver, 1, []string{ExtSwapchain, "VK_KHR_MAINTENANCE1"}))
	assert.False(t, CheckDeviceExtensionSupport(driver, 1, []string{ExtSwapchain, "VK_KHR_maintenance2"}))
	assert.True(t, CheckDeviceExtensionSupport(driver, 1, nil))
}

// A duplicated entry in the enumerated list counts twice. The current
// behavior is kept on purpose and pinned here.
func TestCheckDeviceExtensionSupportDuplicateEntries(t *testing.T) {
	dev := compatibleDevice("dupes")
	dev.Extensions = []string{ExtSwapchain, "vk_khr_swapchain"}
	driver := &StaticDriver{Devices: []StaticDevice{dev}}

	// Two required, one missing: the duplicate hides the missing one.
	assert.True(t, CheckDeviceExtensionSupport(driver, 1, []string{ExtSwapchain, "VK_KHR_maintenance1"}))

	// One required, present twice: the count overshoots and the device is rejected.
	assert.False(t, CheckDeviceExtensionSupport(driver, 1, []string{ExtSwapchain}))
}

func TestQuerySwapChainSupport(t *testing.T) {
	dev := compatibleDevice("swap")
	dev.Capabilities = SurfaceCapabilities{MinImageCount: 2, MaxImageCount: 3}
	dev.PresentModes = []PresentMode{PresentModeFifo, PresentModeMailbox}
	driver := &StaticDriver{Devices: []StaticDevice{dev}}

	support := QuerySwapChainSupport(driver, 1, 1)
	assert.Equal(t, uint32(2), support.Capabilities.MinImageCount)
	assert.Len(t, support.Formats, 1)
	assert.Len(t, support.PresentModes, 2)
	assert.True(t, support.Adequate())

	support = QuerySwapChainSupport(driver, 9, 1)
	assert.False(t, support.Adequate())
}

func TestIsDeviceCompatibleSkipsSwapChainWhenExtensionsMissing(t *testing.T) {
	dev := compatibleDevice("no swapchain ext")
	dev.Extensions = nil
	driver := &StaticDriver{Devices: []StaticDevice{dev}}

	assert.False(t, IsDeviceCompatible(driver, 1, 1, []string{ExtSwapchain}))
	assert.Equal(t, 0, driver.SwapChainQueries)
}

func TestSelectPhysicalDeviceSkipsEmptyFormatList(t *testing.T) {
	a := compatibleDevice("A")
	a.Formats = nil
	b := compatibleDevice("B")
	driver := &StaticDriver{Devices: []StaticDevice{a, b}}

	selected, ok := SelectPhysicalDevice(driver, 1, 1, []string{ExtSwapchain})
	require.True(t, ok)
	assert.Equal(t, "B", driver.PhysicalDeviceName(selected))
}

func TestSelectPhysicalDeviceNeverPicksGraphicslessDevice(t *testing.T) {
	a := compatibleDevice("compute only")
	a.QueueFamilies = []QueueFamilyProperties{{Flags: QueueComputeBit | QueueTransferBit, Count: 8}}

	driver := &StaticDriver{Devices: []StaticDevice{a}}
	_, ok := SelectPhysicalDevice(driver, 1, 1, []string{ExtSwapchain})
	assert.False(t, ok)

	driver.Devices = append(driver.Devices, compatibleDevice("graphics"))
	selected, ok := SelectPhysicalDevice(driver, 1, 1, []string{ExtSwapchain})
	require.True(t, ok)
	assert.Equal(t, "graphics", driver.PhysicalDeviceName(selected))
}

func TestSelectPhysicalDeviceFirstFit(t *testing.T) {
	driver := &StaticDriver{Devices: []StaticDevice{compatibleDevice("first"), compatibleDevice("second")}}

	selected, ok := SelectPhysicalDevice(driver, 1, 1, []string{ExtSwapchain})
	require.True(t, ok)
	assert.Equal(t, PhysicalDevice(1), selected)
}

func TestSelectPhysicalDeviceNoDevices(t *testing.T) {
	selected, ok := SelectPhysicalDevice(&StaticDriver{}, 1, 1, []string{ExtSwapchain})
	assert.False(t, ok)
	assert.Equal(t, NullPhysicalDevice, selected)
}
