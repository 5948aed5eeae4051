package device

import (
	"fmt"
	"runtime"
	"slices"

	"github.com/spaghettifunk/anima-gfx/engine/core"
)

type Config struct {
	ApplicationName  string
	EnableValidation bool
	ValidationLayers []string
	// DeviceExtensions must all be present on the selected physical device.
	DeviceExtensions []string
	// PlatformExtensions are the instance extensions the window system needs.
	PlatformExtensions []string
}

func (c *Config) applyDefaults() {
	if c.ApplicationName == "" {
		c.ApplicationName = DefaultApplicationName
	}
	if len(c.ValidationLayers) == 0 {
		c.ValidationLayers = []string{LayerKhronosValidation}
	}
	if len(c.DeviceExtensions) == 0 {
		c.DeviceExtensions = []string{ExtSwapchain}
	}
}

// Instance is a created native instance together with the surface and the
// physical device negotiated for it.
type Instance struct {
	driver     Driver
	config     Config
	handle     InstanceHandle
	messenger  MessengerHandle
	surface    SurfaceHandle
	device     PhysicalDevice
	extensions []string
	validation bool
}

// Bootstrap creates the native instance. Validation layers are only enabled
// when requested and actually available; the diagnostic callback is only
// installed when they are.
func Bootstrap(driver Driver, cfg Config) (*Instance, error) {
	cfg.applyDefaults()

	appInfo := ApplicationInfo{
		ApplicationName:    cfg.ApplicationName,
		ApplicationVersion: MakeVersion(1, 0, 0),
		EngineName:         DefaultEngineName,
		EngineVersion:      MakeVersion(1, 0, 0),
		APIVersion:         MakeVersion(1, 0, 0),
	}

	advertised := ProbeInstanceExtensions(driver)

	validation := false
	var layers []string
	if cfg.EnableValidation {
		core.LogInfo("Validation layers enabled. Enumerating...")
		if ProbeValidationLayerSupport(driver, cfg.ValidationLayers) {
			core.LogInfo("Required validation layers are supported")
			validation = true
			layers = cfg.ValidationLayers
		} else {
			core.LogWarn("%s, continuing without validation", core.ErrValidationLayersMissing)
		}
	}

	extensions := RequiredInstanceExtensions(advertised, cfg.PlatformExtensions, validation)
	core.LogInfo("Required extensions:")
	for _, name := range extensions {
		core.LogInfo(name)
	}

	createInfo := InstanceCreateInfo{
		Application: appInfo,
		Layers:      layers,
		Extensions:  extensions,
		Portability: runtime.GOOS == "darwin" && slices.Contains(extensions, ExtPortabilityEnum),
	}

	handle, err := driver.CreateInstance(createInfo)
	if err != nil {
		err = fmt.Errorf("%w: %s", core.ErrInstanceCreation, err)
		core.LogError(err.Error())
		return nil, err
	}
	core.LogInfo("%s instance created.", driver.Name())

	inst := &Instance{
		driver:     driver,
		config:     cfg,
		handle:     handle,
		extensions: extensions,
		validation: validation,
	}

	if validation {
		core.LogDebug("Creating %s debugger...", driver.Name())
		messenger, err := driver.CreateDebugMessenger(handle, logDebugMessage)
		if err != nil {
			core.LogError("Couldn't create validation callback: %s", err)
		} else {
			inst.messenger = messenger
			core.LogDebug("%s debugger created.", driver.Name())
		}
	}
	return inst, nil
}

func logDebugMessage(severity Severity, layer string, message string) {
	switch severity {
	case SeverityError:
		core.LogError("Validation Layer [%s]: %s", layer, message)
	case SeverityWarning:
		core.LogWarn("Validation Layer [%s]: %s", layer, message)
	case SeverityInfo:
		core.LogInfo("Validation Layer [%s]: %s", layer, message)
	default:
		core.LogDebug("Validation Layer [%s]: %s", layer, message)
	}
}

// OpenSurface creates the presentation surface for window and selects the
// physical device that will drive it. A previous surface is released first.
func (i *Instance) OpenSurface(window SurfaceSource) (PhysicalDevice, error) {
	i.CloseSurface()

	core.LogDebug("Creating %s surface...", i.driver.Name())
	surface, err := i.driver.CreateSurface(i.handle, window)
	if err != nil {
		err = fmt.Errorf("%w: %s", core.ErrSurfaceCreation, err)
		core.LogError(err.Error())
		return NullPhysicalDevice, err
	}
	i.surface = surface
	core.LogDebug("%s surface created.", i.driver.Name())

	device, ok := SelectPhysicalDevice(i.driver, i.handle, surface, i.config.DeviceExtensions)
	if !ok {
		return NullPhysicalDevice, core.ErrNoCompatibleDevice
	}
	i.device = device
	return device, nil
}

// CloseSurface releases the surface and forgets the selected device.
func (i *Instance) CloseSurface() {
	if i.surface != 0 {
		i.driver.DestroySurface(i.handle, i.surface)
		i.surface = 0
	}
	i.device = NullPhysicalDevice
}

// Destroy tears everything down in reverse creation order.
func (i *Instance) Destroy() {
	i.CloseSurface()
	if i.messenger != 0 {
		i.driver.DestroyDebugMessenger(i.handle, i.messenger)
		i.messenger = 0
	}
	if i.handle != 0 {
		i.driver.DestroyInstance(i.handle)
		i.handle = 0
	}
}

func (i *Instance) Driver() Driver {
	return i.driver
}

func (i *Instance) PhysicalDevice() PhysicalDevice {
	return i.device
}

func (i *Instance) Surface() SurfaceHandle {
	return i.surface
}

func (i *Instance) ValidationEnabled() bool {
	return i.validation
}

func (i *Instance) Extensions() []string {
	return i.extensions
}

// QueueFamilies reports the queue families chosen on the selected device.
func (i *Instance) QueueFamilies() QueueFamily {
	if i.device == NullPhysicalDevice {
		return QueueFamily{GraphicsFamily: QueueFamilyInvalid, PresentFamily: QueueFamilyInvalid}
	}
	return SelectQueueFamilies(i.driver, i.device, i.surface)
}
