package vulkan

import (
	"testing"

	vk "github.com/goki/vulkan"
	"github.com/stretchr/testify/assert"
)

func TestVulkanSafeString(t *testing.T) {
	assert.Equal(t, "\x00", VulkanSafeString(""))
	assert.Equal(t, "VK_KHR_surface\x00", VulkanSafeString("VK_KHR_surface"))
	assert.Equal(t, "VK_KHR_surface\x00", VulkanSafeString("VK_KHR_surface\x00"))

	list := VulkanSafeStrings([]string{"a", "b\x00"})
	assert.Equal(t, []string{"a\x00", "b\x00"}, list)
}

func TestVulkanResultString(t *testing.T) {
	assert.Equal(t, "VK_ERROR_LAYER_NOT_PRESENT", VulkanResultString(vk.ErrorLayerNotPresent, false))
	assert.Contains(t, VulkanResultString(vk.ErrorLayerNotPresent, true), "could not be loaded")
	assert.Equal(t, "VK_RESULT_UNKNOWN", VulkanResultString(vk.Result(12345), false))
}
