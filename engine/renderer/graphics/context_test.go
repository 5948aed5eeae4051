package graphics

import (
	"testing"

	"github.com/spaghettifunk/anima-gfx/engine/core"
	"github.com/spaghettifunk/anima-gfx/engine/platform"
	"github.com/spaghettifunk/anima-gfx/engine/renderer/device"
	"github.com/spaghettifunk/anima-gfx/engine/renderer/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testContextParams = metadata.ContextParams{
	DefaultTextureMinFilter: metadata.TextureFilterLinearMipmapNearest,
	DefaultTextureMagFilter: metadata.TextureFilterLinear,
}

func newTestContext(t *testing.T) (*Context, *platform.HeadlessWindow) {
	t.Helper()
	backend, err := NewNullBackend()
	require.NoError(t, err)

	ctx, err := NewContext(&Registry{}, backend, testContextParams)
	require.NoError(t, err)
	t.Cleanup(ctx.Delete)
	return ctx, backend.Window.(*platform.HeadlessWindow)
}

func openTestWindow(t *testing.T, ctx *Context, width, height uint32) {
	t.Helper()
	result := ctx.OpenWindow(&metadata.WindowParams{Title: "test", Width: width, Height: height})
	require.Equal(t, metadata.WindowResultOK, result)
}

func TestRegistryAllowsOneContext(t *testing.T) {
	registry := &Registry{}
	backend, err := NewNullBackend()
	require.NoError(t, err)

	ctx, err := NewContext(registry, backend, testContextParams)
	require.NoError(t, err)
	assert.True(t, registry.Created())

	_, err = NewContext(registry, backend, testContextParams)
	assert.ErrorIs(t, err, core.ErrContextAlreadyCreated)

	ctx.Delete()
	assert.False(t, registry.Created())

	ctx, err = NewContext(registry, backend, testContextParams)
	require.NoError(t, err)
	ctx.Delete()
}

func TestRegistriesAreIndependent(t *testing.T) {
	a, _ := newTestContext(t)
	b, _ := newTestContext(t)
	assert.NotSame(t, a, b)
}

func TestNewContextReleasesRegistryOnFailure(t *testing.T) {
	registry := &Registry{}
	driver := device.NewNullDriver()
	driver.FailInstance = true
	backend := &Backend{Name: "failing", Driver: driver, Window: platform.NewHeadlessWindow()}

	_, err := NewContext(registry, backend, testContextParams)
	assert.ErrorIs(t, err, core.ErrInstanceCreation)
	assert.False(t, registry.Created())
}

func TestDeleteTearsDownNativeObjects(t *testing.T) {
	driver := device.NewNullDriver()
	backend := &Backend{Name: BackendNull, Driver: driver, Window: platform.NewHeadlessWindow()}
	ctx, err := NewContext(&Registry{}, backend, testContextParams)
	require.NoError(t, err)
	openTestWindow(t, ctx, 4, 4)
	assert.Equal(t, 1, driver.LiveSurfaces)

	ctx.Delete()
	assert.Equal(t, 0, driver.LiveSurfaces)
	assert.Equal(t, 0, driver.LiveInstances)
	assert.False(t, backend.Window.IsOpen())

	// A second delete is harmless.
	assert.NotPanics(t, ctx.Delete)
}

func TestTextureFormatSupport(t *testing.T) {
	ctx, _ := newTestContext(t)

	assert.True(t, ctx.IsTextureFormatSupported(metadata.TextureFormatRGBA))
	assert.True(t, ctx.IsTextureFormatSupported(metadata.TextureFormatRGB_ETC1))
	assert.True(t, ctx.IsTextureFormatSupported(metadata.TextureFormatLuminance))
	assert.False(t, ctx.IsTextureFormatSupported(metadata.TextureFormatRGBA_DXT5))
	assert.False(t, ctx.IsTextureFormatSupported(metadata.TextureFormatRGBA_BC7))
}

func TestSharedContextUnsupported(t *testing.T) {
	ctx, _ := newTestContext(t)
	assert.False(t, ctx.AcquireSharedContext())
	assert.NotPanics(t, ctx.UnacquireContext)
}
