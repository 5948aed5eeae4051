package graphics

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/anima-gfx/engine/core"
	"github.com/spaghettifunk/anima-gfx/engine/platform"
	"github.com/spaghettifunk/anima-gfx/engine/renderer/device"
	"github.com/spaghettifunk/anima-gfx/engine/renderer/metadata"
	"github.com/spaghettifunk/anima-gfx/engine/renderer/uniform"
)

const (
	MaxTextureCount      = 32
	MaxVertexStreamCount = 8
	MaxRegisterCount     = 16

	InvalidUniformLocation int32 = -1
)

// Resource handles. The zero value of each is the invalid handle.
type (
	HVertexBuffer      core.Handle
	HIndexBuffer       core.Handle
	HVertexDeclaration core.Handle
	HTexture           core.Handle
	HVertexProgram     core.Handle
	HFragmentProgram   core.Handle
	HProgram           core.Handle
	HRenderTarget      core.Handle
)

// Context is the software graphics device: it tracks every resource created
// through it together with the state a draw call would see.
type Context struct {
	registry *Registry
	backend  *Backend
	instance *device.Instance
	params   metadata.ContextParams
	scanner  uniform.Scanner

	vertexBuffers    core.HandleTable[buffer]
	indexBuffers     core.HandleTable[buffer]
	declarations     core.HandleTable[vertexDeclaration]
	textures         core.HandleTable[texture]
	vertexPrograms   core.HandleTable[shaderProgram]
	fragmentPrograms core.HandleTable[shaderProgram]
	programs         core.HandleTable[program]
	renderTargets    core.HandleTable[renderTarget]

	mainFrameBuffer    frameBuffer
	currentFrameBuffer *frameBuffer
	textureUnits       [MaxTextureCount]HTexture
	vertexStreams      [MaxVertexStreamCount]vertexStream
	programRegisters   [MaxRegisterCount]mgl32.Vec4
	program            HProgram

	windowOpened   bool
	iconified      bool
	width          uint32
	height         uint32
	windowWidth    uint32
	windowHeight   uint32
	dpi            uint32
	resizeCallback metadata.WindowResizeCallback
	closeCallback  metadata.WindowCloseCallback

	textureFormatSupport uint64
	renderState          metadata.RenderState

	drawCount uint64
	flipped   bool

	forceVertexReloadFail   bool
	forceFragmentReloadFail bool

	clock   *core.Clock
	metrics *core.Metrics
}

// NewContext creates the graphics context for backend and the native
// instance behind it. Only one context may be live per registry; a nil
// registry means DefaultRegistry.
func NewContext(registry *Registry, backend *Backend, params metadata.ContextParams) (*Context, error) {
	if registry == nil {
		registry = DefaultRegistry
	}
	core.Assert(backend != nil, "NewContext called without a backend")

	if !registry.acquire() {
		core.LogError("%s", core.ErrContextAlreadyCreated)
		return nil, core.ErrContextAlreadyCreated
	}

	instance, err := device.Bootstrap(backend.Driver, device.Config{
		ApplicationName:    device.DefaultApplicationName,
		EnableValidation:   params.EnableValidation,
		ValidationLayers:   params.ValidationLayers,
		DeviceExtensions:   params.DeviceExtensions,
		PlatformExtensions: backend.Window.RequiredInstanceExtensions(),
	})
	if err != nil {
		registry.release()
		return nil, err
	}

	// Listeners for window events need the event system.
	core.EventInitialize()

	c := &Context{
		registry: registry,
		backend:  backend,
		instance: instance,
		params:   params,
		scanner:  uniform.GLSLScanner{},
		clock:    core.NewClock(),
		metrics:  core.NewMetrics(),
	}
	for _, format := range []metadata.TextureFormat{
		metadata.TextureFormatLuminance,
		metadata.TextureFormatLuminanceAlpha,
		metadata.TextureFormatRGB,
		metadata.TextureFormatRGBA,
		metadata.TextureFormatRGB_16BPP,
		metadata.TextureFormatRGBA_16BPP,
		metadata.TextureFormatRGB_ETC1,
	} {
		c.textureFormatSupport |= 1 << uint(format)
	}
	c.renderState.ColorMask = 0xf
	c.renderState.DepthMask = true
	return c, nil
}

// Delete closes the window, tears down the native instance and frees the
// registry slot.
func (c *Context) Delete() {
	core.Assert(c != nil, "Delete called on a nil context")
	if c.registry == nil {
		return
	}
	c.reportLeaks()
	c.CloseWindow()
	c.instance.Destroy()
	if t, ok := c.backend.Window.(platform.Terminator); ok {
		t.Terminate()
	}
	c.registry.release()
	c.registry = nil
}

func (c *Context) reportLeaks() {
	live := map[string]int{
		"vertex buffer":      c.vertexBuffers.Len(),
		"index buffer":       c.indexBuffers.Len(),
		"vertex declaration": c.declarations.Len(),
		"texture":            c.textures.Len(),
		"vertex program":     c.vertexPrograms.Len(),
		"fragment program":   c.fragmentPrograms.Len(),
		"program":            c.programs.Len(),
		"render target":      c.renderTargets.Len(),
	}
	for kind, n := range live {
		if n > 0 {
			core.LogDebug("context deleted with %d live %s handle(s)", n, kind)
		}
	}
}

// SetUniformScanner replaces the scanner used to reflect program uniforms.
func (c *Context) SetUniformScanner(scanner uniform.Scanner) {
	core.Assert(scanner != nil, "uniform scanner must not be nil")
	c.scanner = scanner
}

func (c *Context) Backend() *Backend {
	return c.backend
}

func (c *Context) Instance() *device.Instance {
	return c.instance
}

func (c *Context) Metrics() *core.Metrics {
	return c.metrics
}

// Shared contexts are not supported by the software device.
func (c *Context) AcquireSharedContext() bool {
	return false
}

func (c *Context) UnacquireContext() {}

func lookup[T any](table *core.HandleTable[T], h core.Handle, kind string) *T {
	owner, ok := table.Get(h)
	core.Assert(ok, "invalid %s handle %#x", kind, uint64(h))
	return owner
}

func release[T any](table *core.HandleTable[T], h core.Handle, kind string) {
	err := table.Release(h)
	core.Assert(err == nil, "failed to release %s: %v", kind, err)
}
