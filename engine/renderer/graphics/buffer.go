package graphics

import (
	"github.com/spaghettifunk/anima-gfx/engine/core"
	"github.com/spaghettifunk/anima-gfx/engine/renderer/metadata"
)

// MaxElements is the vertex and index count limit reported to callers.
const MaxElements = 65536

// buffer backs both vertex and index buffers. copy is the outstanding
// mapping, nil when the buffer is not mapped.
type buffer struct {
	data  []byte
	copy  []byte
	usage metadata.BufferUsage
}

func newBuffer(size uint32, data []byte, usage metadata.BufferUsage) *buffer {
	b := &buffer{data: make([]byte, size), usage: usage}
	copy(b.data, data)
	return b
}

func (b *buffer) setData(size uint32, data []byte, usage metadata.BufferUsage, kind string) {
	core.Assert(b.copy == nil, "%s buffer data replaced while mapped", kind)
	b.data = make([]byte, size)
	b.usage = usage
	copy(b.data, data)
}

// setSubData drops writes that do not fit in the allocation.
func (b *buffer) setSubData(offset, size uint32, data []byte) {
	if data == nil || uint64(offset)+uint64(size) > uint64(len(b.data)) {
		return
	}
	copy(b.data[offset:offset+size], data[:min(int(size), len(data))])
}

func (b *buffer) mapBuffer(kind string) []byte {
	core.Assert(b.copy == nil, "%s buffer is already mapped", kind)
	b.copy = make([]byte, len(b.data))
	copy(b.copy, b.data)
	return b.copy
}

func (b *buffer) unmap(kind string) bool {
	core.Assert(b.copy != nil, "%s buffer unmapped without being mapped", kind)
	copy(b.data, b.copy)
	b.copy = nil
	return true
}

func (c *Context) NewVertexBuffer(size uint32, data []byte, usage metadata.BufferUsage) HVertexBuffer {
	return HVertexBuffer(c.vertexBuffers.Acquire(newBuffer(size, data, usage)))
}

func (c *Context) DeleteVertexBuffer(h HVertexBuffer) {
	vb := lookup(&c.vertexBuffers, core.Handle(h), "vertex buffer")
	core.Assert(vb.copy == nil, "vertex buffer deleted while mapped")
	for i := range c.vertexStreams {
		core.Assert(c.vertexStreams[i].source != vb, "vertex buffer deleted while bound to stream %d", i)
	}
	release(&c.vertexBuffers, core.Handle(h), "vertex buffer")
}

func (c *Context) SetVertexBufferData(h HVertexBuffer, size uint32, data []byte, usage metadata.BufferUsage) {
	lookup(&c.vertexBuffers, core.Handle(h), "vertex buffer").setData(size, data, usage, "vertex")
}

func (c *Context) SetVertexBufferSubData(h HVertexBuffer, offset, size uint32, data []byte) {
	lookup(&c.vertexBuffers, core.Handle(h), "vertex buffer").setSubData(offset, size, data)
}

// MapVertexBuffer returns a snapshot of the buffer. Changes made to it are
// written back by UnmapVertexBuffer.
func (c *Context) MapVertexBuffer(h HVertexBuffer, access metadata.BufferAccess) []byte {
	return lookup(&c.vertexBuffers, core.Handle(h), "vertex buffer").mapBuffer("vertex")
}

func (c *Context) UnmapVertexBuffer(h HVertexBuffer) bool {
	return lookup(&c.vertexBuffers, core.Handle(h), "vertex buffer").unmap("vertex")
}

// VertexBufferData exposes the current contents of a vertex buffer.
func (c *Context) VertexBufferData(h HVertexBuffer) []byte {
	return lookup(&c.vertexBuffers, core.Handle(h), "vertex buffer").data
}

func (c *Context) GetMaxElementsVertices() uint32 {
	return MaxElements
}

func (c *Context) NewIndexBuffer(size uint32, data []byte, usage metadata.BufferUsage) HIndexBuffer {
	return HIndexBuffer(c.indexBuffers.Acquire(newBuffer(size, data, usage)))
}

func (c *Context) DeleteIndexBuffer(h HIndexBuffer) {
	ib := lookup(&c.indexBuffers, core.Handle(h), "index buffer")
	core.Assert(ib.copy == nil, "index buffer deleted while mapped")
	release(&c.indexBuffers, core.Handle(h), "index buffer")
}

func (c *Context) SetIndexBufferData(h HIndexBuffer, size uint32, data []byte, usage metadata.BufferUsage) {
	lookup(&c.indexBuffers, core.Handle(h), "index buffer").setData(size, data, usage, "index")
}

func (c *Context) SetIndexBufferSubData(h HIndexBuffer, offset, size uint32, data []byte) {
	lookup(&c.indexBuffers, core.Handle(h), "index buffer").setSubData(offset, size, data)
}

func (c *Context) MapIndexBuffer(h HIndexBuffer, access metadata.BufferAccess) []byte {
	return lookup(&c.indexBuffers, core.Handle(h), "index buffer").mapBuffer("index")
}

func (c *Context) UnmapIndexBuffer(h HIndexBuffer) bool {
	return lookup(&c.indexBuffers, core.Handle(h), "index buffer").unmap("index")
}

func (c *Context) IndexBufferData(h HIndexBuffer) []byte {
	return lookup(&c.indexBuffers, core.Handle(h), "index buffer").data
}

func (c *Context) GetMaxElementsIndices() uint32 {
	return MaxElements
}
