package device

import (
	"slices"

	"github.com/spaghettifunk/anima-gfx/engine/core"
)

// ProbeInstanceExtensions lists the instance extensions advertised by the
// driver and logs each of them. A failed enumeration reads as an empty list.
func ProbeInstanceExtensions(driver Driver) []string {
	extensions, err := driver.EnumerateInstanceExtensions()
	if err != nil {
		core.LogDebug("instance extension enumeration failed: %s", err)
		return nil
	}
	for _, name := range extensions {
		core.LogInfo("Extension available: %s", name)
	}
	return extensions
}

// ProbeValidationLayerSupport reports whether every required layer is
// offered by the driver. Each missing layer is logged.
func ProbeValidationLayerSupport(driver Driver, requiredLayers []string) bool {
	available, err := driver.EnumerateInstanceLayers()
	if err != nil {
		core.LogDebug("instance layer enumeration failed: %s", err)
		available = nil
	}

	allFound := true
	for _, required := range requiredLayers {
		core.LogDebug("Searching for layer: %s...", required)
		if !slices.Contains(available, required) {
			core.LogError("Validation layer '%s' is not supported", required)
			allFound = false
		}
	}
	return allFound
}

// RequiredInstanceExtensions picks, out of the advertised extensions, the ones
// the instance must enable: the generic surface extension, any platform
// surface extension the window system asked for or that is known, the
// portability extensions, and the debug extensions only when validation is on.
// Names that are not advertised are never requested.
func RequiredInstanceExtensions(advertised []string, platformExtensions []string, enableValidation bool) []string {
	required := make([]string, 0, len(advertised))
	for _, name := range advertised {
		switch {
		case name == ExtSurface:
			required = append(required, name)
		case slices.Contains(platformExtensions, name), slices.Contains(PlatformSurfaceExtensions, name):
			required = append(required, name)
		case name == ExtPortabilityEnum, name == ExtPhysicalDeviceProps2:
			required = append(required, name)
		case name == ExtDebugUtils, name == ExtDebugReport:
			if enableValidation {
				required = append(required, name)
			}
		}
	}
	return required
}
