package graphics

import (
	"github.com/google/uuid"

	"github.com/spaghettifunk/anima-gfx/engine/core"
	"github.com/spaghettifunk/anima-gfx/engine/renderer/metadata"
)

// attachment is one of the color, depth or stencil planes of a frame buffer.
// The color plane of a render target aliases its texture's storage.
type attachment struct {
	present bool
	data    []byte
	params  metadata.TextureParams
}

type frameBuffer struct {
	attachments [metadata.MaxBufferTypeCount]attachment
}

func (fb *frameBuffer) attachment(kind metadata.BufferType) *attachment {
	i := metadata.BufferTypeIndex(kind)
	core.Assert(i >= 0, "invalid buffer type %#x", uint32(kind))
	return &fb.attachments[i]
}

func newMainFrameBuffer(width, height uint32) frameBuffer {
	var fb frameBuffer
	size := 4 * width * height
	for i := range fb.attachments {
		fb.attachments[i] = attachment{
			present: true,
			data:    make([]byte, size),
			params:  metadata.TextureParams{Width: width, Height: height},
		}
	}
	return fb
}

type renderTarget struct {
	frameBuffer  frameBuffer
	colorTexture HTexture
}

// NewRenderTarget allocates 4*width*height bytes for every attachment named
// in flags. The color attachment is backed by a new texture.
func (c *Context) NewRenderTarget(flags metadata.BufferType, creation [metadata.MaxBufferTypeCount]metadata.TextureCreationParams, params [metadata.MaxBufferTypeCount]metadata.TextureParams) HRenderTarget {
	rt := &renderTarget{}
	for i := 0; i < metadata.MaxBufferTypeCount; i++ {
		kind := metadata.BufferTypeFromIndex(i)
		if flags&kind == 0 {
			continue
		}
		size := 4 * params[i].Width * params[i].Height
		a := &rt.frameBuffer.attachments[i]
		a.present = true
		a.params = params[i]
		a.params.Data = nil
		a.params.DataSize = 0

		if kind == metadata.BufferTypeColorBit {
			a.params.DataSize = size
			rt.colorTexture = c.NewTexture(creation[i])
			lookup(&c.textures, core.Handle(rt.colorTexture), "texture").name = "rendertarget-" + uuid.NewString()
			c.SetTexture(rt.colorTexture, a.params)
			a.data = lookup(&c.textures, core.Handle(rt.colorTexture), "texture").data
		} else {
			a.data = make([]byte, size)
		}
	}
	return HRenderTarget(c.renderTargets.Acquire(rt))
}

func (c *Context) DeleteRenderTarget(h HRenderTarget) {
	rt := lookup(&c.renderTargets, core.Handle(h), "render target")
	if rt.colorTexture != 0 {
		c.DeleteTexture(rt.colorTexture)
	}
	if c.currentFrameBuffer == &rt.frameBuffer {
		c.currentFrameBuffer = c.mainFrameBufferOrNil()
	}
	release(&c.renderTargets, core.Handle(h), "render target")
}

func (c *Context) mainFrameBufferOrNil() *frameBuffer {
	if c.windowOpened {
		return &c.mainFrameBuffer
	}
	return nil
}

// SetRenderTarget binds the render target. The zero handle binds the main
// frame buffer again.
func (c *Context) SetRenderTarget(h HRenderTarget, transientBufferTypes metadata.BufferType) {
	if h == 0 {
		c.currentFrameBuffer = c.mainFrameBufferOrNil()
		return
	}
	c.currentFrameBuffer = &lookup(&c.renderTargets, core.Handle(h), "render target").frameBuffer
}

// GetRenderTargetTexture returns the texture behind the color attachment.
// Other attachments have no texture and yield the zero handle.
func (c *Context) GetRenderTargetTexture(h HRenderTarget, kind metadata.BufferType) HTexture {
	rt := lookup(&c.renderTargets, core.Handle(h), "render target")
	if kind != metadata.BufferTypeColorBit {
		return 0
	}
	return rt.colorTexture
}

func (c *Context) GetRenderTargetSize(h HRenderTarget, kind metadata.BufferType) (width, height uint32) {
	rt := lookup(&c.renderTargets, core.Handle(h), "render target")
	a := rt.frameBuffer.attachment(kind)
	return a.params.Width, a.params.Height
}

// SetRenderTargetSize reallocates every attachment the target was created with.
func (c *Context) SetRenderTargetSize(h HRenderTarget, width, height uint32) {
	rt := lookup(&c.renderTargets, core.Handle(h), "render target")
	size := 4 * width * height
	for i := range rt.frameBuffer.attachments {
		a := &rt.frameBuffer.attachments[i]
		if !a.present {
			continue
		}
		a.params.Width = width
		a.params.Height = height
		if metadata.BufferTypeFromIndex(i) == metadata.BufferTypeColorBit {
			a.params.DataSize = size
			c.SetTexture(rt.colorTexture, a.params)
			a.data = lookup(&c.textures, core.Handle(rt.colorTexture), "texture").data
		} else {
			a.data = make([]byte, size)
		}
	}
}

// RenderTargetData exposes the storage of one attachment.
func (c *Context) RenderTargetData(h HRenderTarget, kind metadata.BufferType) []byte {
	rt := lookup(&c.renderTargets, core.Handle(h), "render target")
	return rt.frameBuffer.attachment(kind).data
}

// FrameBufferData exposes an attachment of the bound frame buffer.
func (c *Context) FrameBufferData(kind metadata.BufferType) []byte {
	core.Assert(c.currentFrameBuffer != nil, "no frame buffer bound")
	return c.currentFrameBuffer.attachment(kind).data
}
