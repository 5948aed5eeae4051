package graphics

import (
	"unsafe"

	"github.com/spaghettifunk/anima-gfx/engine/core"
	"github.com/spaghettifunk/anima-gfx/engine/math"
	"github.com/spaghettifunk/anima-gfx/engine/renderer/metadata"
)

// MaxTextureSize is the largest width or height a texture may have.
const MaxTextureSize = 1024

type texture struct {
	name           string
	kind           metadata.TextureType
	data           []byte
	format         metadata.TextureFormat
	width          uint32
	height         uint32
	originalWidth  uint32
	originalHeight uint32
	mipMapCount    uint32
	minFilter      metadata.TextureFilter
	magFilter      metadata.TextureFilter
	uWrap          metadata.TextureWrap
	vWrap          metadata.TextureWrap
}

// Fixed bookkeeping cost added to every texture's resource size.
var textureHeaderSize = uint32(unsafe.Sizeof(texture{}))

// NewTexture creates a texture without storage. Data is attached with SetTexture.
func (c *Context) NewTexture(params metadata.TextureCreationParams) HTexture {
	t := &texture{
		kind:      params.Type,
		width:     params.Width,
		height:    params.Height,
		minFilter: c.params.DefaultTextureMinFilter,
		magFilter: c.params.DefaultTextureMagFilter,
	}
	if params.OriginalWidth == 0 {
		t.originalWidth = params.Width
		t.originalHeight = params.Height
	} else {
		t.originalWidth = params.OriginalWidth
		t.originalHeight = params.OriginalHeight
	}
	return HTexture(c.textures.Acquire(t))
}

// DeleteTexture releases the texture and unbinds it from every unit.
func (c *Context) DeleteTexture(h HTexture) {
	release(&c.textures, core.Handle(h), "texture")
	for unit := range c.textureUnits {
		if c.textureUnits[unit] == h {
			c.textureUnits[unit] = 0
		}
	}
}

// SetTexture replaces the texture storage with a copy of params.Data.
// Storage is allocated even for empty uploads.
func (c *Context) SetTexture(h HTexture, params metadata.TextureParams) {
	t := lookup(&c.textures, core.Handle(h), "texture")
	if params.SubUpdate {
		core.Assert(params.X+params.Width <= t.width, "texture sub update exceeds width (%d+%d > %d)", params.X, params.Width, t.width)
		core.Assert(params.Y+params.Height <= t.height, "texture sub update exceeds height (%d+%d > %d)", params.Y, params.Height, t.height)
	} else if params.Width != 0 && params.Height != 0 {
		t.width = params.Width
		t.height = params.Height
	}

	size := params.DataSize
	if size == 0 {
		size = uint32(len(params.Data))
	}
	t.format = params.Format
	t.data = make([]byte, size)
	copy(t.data, params.Data)
	t.mipMapCount = math.Max(t.mipMapCount, params.MipMap+1)
}

// SetTextureAsync uploads synchronously; the texture is never left pending.
func (c *Context) SetTextureAsync(h HTexture, params metadata.TextureParams) {
	c.SetTexture(h, params)
}

func (c *Context) GetTextureStatusFlags(h HTexture) metadata.TextureStatusFlags {
	return metadata.TextureStatusOK
}

func (c *Context) SetTextureParams(h HTexture, minFilter, magFilter metadata.TextureFilter, uWrap, vWrap metadata.TextureWrap) {
	t := lookup(&c.textures, core.Handle(h), "texture")
	t.minFilter = minFilter
	t.magFilter = magFilter
	t.uWrap = uWrap
	t.vWrap = vWrap
}

// GetTextureHandle returns the texture storage. An invalid handle yields
// HandleResultError instead of a contract violation.
func (c *Context) GetTextureHandle(h HTexture) ([]byte, metadata.HandleResult) {
	t, ok := c.textures.Get(core.Handle(h))
	if !ok {
		return nil, metadata.HandleResultError
	}
	return t.data, metadata.HandleResultOK
}

// GetTextureResourceSize sums the size of every mip level, each a quarter of
// the previous one, plus the fixed texture header.
func (c *Context) GetTextureResourceSize(h HTexture) uint32 {
	t := lookup(&c.textures, core.Handle(h), "texture")
	var total uint32
	size := (t.width * t.height * metadata.TextureFormatBPP(t.format)) >> 3
	for i := uint32(0); i < t.mipMapCount; i++ {
		total += size
		size >>= 2
	}
	return total + textureHeaderSize
}

func (c *Context) GetTextureWidth(h HTexture) uint32 {
	return lookup(&c.textures, core.Handle(h), "texture").width
}

func (c *Context) GetTextureHeight(h HTexture) uint32 {
	return lookup(&c.textures, core.Handle(h), "texture").height
}

func (c *Context) GetOriginalTextureWidth(h HTexture) uint32 {
	return lookup(&c.textures, core.Handle(h), "texture").originalWidth
}

func (c *Context) GetOriginalTextureHeight(h HTexture) uint32 {
	return lookup(&c.textures, core.Handle(h), "texture").originalHeight
}

func (c *Context) GetTextureFormat(h HTexture) metadata.TextureFormat {
	return lookup(&c.textures, core.Handle(h), "texture").format
}

func (c *Context) GetTextureMipMapCount(h HTexture) uint32 {
	return lookup(&c.textures, core.Handle(h), "texture").mipMapCount
}

func (c *Context) GetTextureFilters(h HTexture) (minFilter, magFilter metadata.TextureFilter) {
	t := lookup(&c.textures, core.Handle(h), "texture")
	return t.minFilter, t.magFilter
}

// GetTextureName returns the debug name of the texture. Only render target
// textures are named.
func (c *Context) GetTextureName(h HTexture) string {
	return lookup(&c.textures, core.Handle(h), "texture").name
}

// EnableTexture binds texture to unit. The texture must have storage.
func (c *Context) EnableTexture(unit uint32, h HTexture) {
	core.Assert(unit < MaxTextureCount, "texture unit %d out of range", unit)
	t := lookup(&c.textures, core.Handle(h), "texture")
	core.Assert(t.data != nil, "texture bound to unit %d has no data", unit)
	c.textureUnits[unit] = h
}

// DisableTexture clears unit. Disabling an empty unit does nothing.
func (c *Context) DisableTexture(unit uint32, h HTexture) {
	core.Assert(unit < MaxTextureCount, "texture unit %d out of range", unit)
	c.textureUnits[unit] = 0
}

// BoundTexture returns the texture bound to unit, or the zero handle.
func (c *Context) BoundTexture(unit uint32) HTexture {
	core.Assert(unit < MaxTextureCount, "texture unit %d out of range", unit)
	return c.textureUnits[unit]
}

func (c *Context) IsTextureFormatSupported(format metadata.TextureFormat) bool {
	return c.textureFormatSupport&(1<<uint(format)) != 0
}

func (c *Context) GetMaxTextureSize() uint32 {
	return MaxTextureSize
}
