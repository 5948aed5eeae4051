package graphics

import (
	"github.com/spaghettifunk/anima-gfx/engine/core"
	"github.com/spaghettifunk/anima-gfx/engine/renderer/metadata"
)

// vertexDeclaration holds at most one element per stream slot. A slot with a
// zero Size is unused.
type vertexDeclaration struct {
	elements [MaxVertexStreamCount]metadata.VertexElement
}

func elementSize(e metadata.VertexElement) uint32 {
	return e.Size * metadata.TypeSize(e.Type)
}

func (d *vertexDeclaration) stride() uint32 {
	var stride uint32
	for _, e := range d.elements {
		stride += elementSize(e)
	}
	return stride
}

// vertexStream is the binding of one slot: where the bytes come from and the
// scratch the last DrawElements gathered into.
type vertexStream struct {
	source  *buffer
	offset  uint32
	size    uint32
	stride  uint32
	scratch []byte
}

func (s *vertexStream) enabled() bool {
	return s.size > 0
}

// NewVertexDeclaration places each element in the slot named by its Stream.
// Two elements sharing a slot, or an element that occupies no bytes, is a
// contract violation.
func (c *Context) NewVertexDeclaration(elements []metadata.VertexElement) HVertexDeclaration {
	decl := &vertexDeclaration{}
	for _, e := range elements {
		core.Assert(e.Stream < MaxVertexStreamCount, "vertex element '%s' uses stream %d (max=%d)", e.Name, e.Stream, MaxVertexStreamCount-1)
		core.Assert(elementSize(e) > 0, "vertex element '%s' has no byte size (size=%d, type=%d)", e.Name, e.Size, e.Type)
		core.Assert(decl.elements[e.Stream].Size == 0, "vertex element '%s' reuses stream %d", e.Name, e.Stream)
		decl.elements[e.Stream] = e
	}
	return HVertexDeclaration(c.declarations.Acquire(decl))
}

// NewVertexDeclarationWithStride ignores stride; it is always derived from the elements.
func (c *Context) NewVertexDeclarationWithStride(elements []metadata.VertexElement, stride uint32) HVertexDeclaration {
	return c.NewVertexDeclaration(elements)
}

func (c *Context) DeleteVertexDeclaration(h HVertexDeclaration) {
	release(&c.declarations, core.Handle(h), "vertex declaration")
}

// VertexDeclarationStride returns the byte distance between consecutive vertices.
func (c *Context) VertexDeclarationStride(h HVertexDeclaration) uint32 {
	return lookup(&c.declarations, core.Handle(h), "vertex declaration").stride()
}

// EnableVertexDeclaration binds every populated slot of the declaration to
// the interleaved vertex buffer.
func (c *Context) EnableVertexDeclaration(h HVertexDeclaration, vb HVertexBuffer) {
	decl := lookup(&c.declarations, core.Handle(h), "vertex declaration")
	source := lookup(&c.vertexBuffers, core.Handle(vb), "vertex buffer")

	stride := decl.stride()
	var offset uint32
	for slot, e := range decl.elements {
		if e.Size == 0 {
			continue
		}
		s := &c.vertexStreams[slot]
		core.Assert(s.source == nil && s.scratch == nil, "vertex stream %d is already enabled", slot)
		*s = vertexStream{
			source: source,
			offset: offset,
			size:   elementSize(e),
			stride: stride,
		}
		offset += elementSize(e)
	}
}

// EnableVertexDeclarationWithProgram binds like EnableVertexDeclaration; the
// program does not affect attribute placement.
func (c *Context) EnableVertexDeclarationWithProgram(h HVertexDeclaration, vb HVertexBuffer, program HProgram) {
	c.EnableVertexDeclaration(h, vb)
}

func (c *Context) DisableVertexDeclaration(h HVertexDeclaration) {
	decl := lookup(&c.declarations, core.Handle(h), "vertex declaration")
	for slot, e := range decl.elements {
		if e.Size > 0 {
			c.vertexStreams[slot] = vertexStream{}
		}
	}
}

// StreamEnabled reports whether slot currently has a binding.
func (c *Context) StreamEnabled(slot uint32) bool {
	core.Assert(slot < MaxVertexStreamCount, "vertex stream %d out of range", slot)
	return c.vertexStreams[slot].enabled()
}
