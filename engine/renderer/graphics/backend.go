package graphics

import (
	"fmt"
	"slices"
	"sync"

	"github.com/spaghettifunk/anima-gfx/engine/core"
	"github.com/spaghettifunk/anima-gfx/engine/platform"
	"github.com/spaghettifunk/anima-gfx/engine/renderer/device"
)

const (
	BackendVulkan = "vulkan"
	BackendNull   = "null"
)

// Backend pairs a native driver with the window it presents to.
type Backend struct {
	Name   string
	Driver device.Driver
	Window platform.Window
}

// BackendFactory creates a new backend instance.
type BackendFactory func() (*Backend, error)

var (
	backendsMu sync.RWMutex
	backends   = make(map[string]BackendFactory)
)

func init() {
	RegisterBackend(BackendNull, NewNullBackend)
}

// RegisterBackend registers a backend factory with the given name.
// This is typically called from init() functions in backend packages.
// If a backend with the same name is already registered, it will be replaced.
func RegisterBackend(name string, factory BackendFactory) {
	backendsMu.Lock()
	defer backendsMu.Unlock()
	backends[name] = factory
}

// UnregisterBackend removes a backend from the registry.
func UnregisterBackend(name string) {
	backendsMu.Lock()
	defer backendsMu.Unlock()
	delete(backends, name)
}

// Backends returns the registered backend names in sorted order.
func Backends() []string {
	backendsMu.RLock()
	defer backendsMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// NewBackend creates the backend registered under name.
func NewBackend(name string) (*Backend, error) {
	backendsMu.RLock()
	factory, ok := backends[name]
	backendsMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", core.ErrUnknownBackend, name, Backends())
	}
	b, err := factory()
	if err != nil {
		return nil, fmt.Errorf("failed to create backend %q: %w", name, err)
	}
	return b, nil
}

// NewNullBackend runs everything in memory: a static driver with one capable
// device and a headless window.
func NewNullBackend() (*Backend, error) {
	return &Backend{
		Name:   BackendNull,
		Driver: device.NewNullDriver(),
		Window: platform.NewHeadlessWindow(),
	}, nil
}
