package graphics

import (
	"encoding/binary"
	"math"

	"github.com/spaghettifunk/anima-gfx/engine/core"
	"github.com/spaghettifunk/anima-gfx/engine/renderer/metadata"
)

// indexAt decodes the i-th little endian index of data. Signed types are
// sign extended and floats truncated toward zero before the unsigned cast.
func indexAt(indexType metadata.Type, data []byte, i uint32) uint32 {
	size := metadata.TypeSize(indexType)
	core.Assert(size > 0, "unsupported index type %s", indexType)
	at := uint64(i) * uint64(size)
	core.Assert(at+uint64(size) <= uint64(len(data)), "index %d out of range for index buffer of %d bytes", i, len(data))

	b := data[at:]
	switch indexType {
	case metadata.TypeByte:
		return uint32(int8(b[0]))
	case metadata.TypeUnsignedByte:
		return uint32(b[0])
	case metadata.TypeShort:
		return uint32(int16(binary.LittleEndian.Uint16(b)))
	case metadata.TypeUnsignedShort:
		return uint32(binary.LittleEndian.Uint16(b))
	case metadata.TypeInt, metadata.TypeUnsignedInt:
		return binary.LittleEndian.Uint32(b)
	default:
		f := math.Float32frombits(binary.LittleEndian.Uint32(b))
		return uint32(int64(f))
	}
}

// DrawElements gathers count vertices, addressed by the indices starting at
// first, into the scratch of every enabled stream.
func (c *Context) DrawElements(prim metadata.PrimitiveType, first, count uint32, indexType metadata.Type, h HIndexBuffer) {
	ib := lookup(&c.indexBuffers, core.Handle(h), "index buffer")

	for slot := range c.vertexStreams {
		s := &c.vertexStreams[slot]
		if s.enabled() {
			s.scratch = make([]byte, s.size*count)
		}
	}

	for i := uint32(0); i < count; i++ {
		index := indexAt(indexType, ib.data, first+i)
		for slot := range c.vertexStreams {
			s := &c.vertexStreams[slot]
			if !s.enabled() {
				continue
			}
			from := uint64(s.offset) + uint64(index)*uint64(s.stride)
			core.Assert(from+uint64(s.size) <= uint64(len(s.source.data)),
				"vertex %d of stream %d reads past the end of its buffer", index, slot)
			copy(s.scratch[i*s.size:(i+1)*s.size], s.source.data[from:from+uint64(s.size)])
		}
	}
	c.countDraw()
}

// Draw records a non indexed draw call. Nothing is gathered.
func (c *Context) Draw(prim metadata.PrimitiveType, first, count uint32) {
	c.countDraw()
}

func (c *Context) countDraw() {
	if c.flipped {
		c.flipped = false
		c.drawCount = 0
	}
	c.drawCount++
}

// GetDrawCount reports the draw calls issued since the first draw after the last Flip.
func (c *Context) GetDrawCount() uint64 {
	return c.drawCount
}

// StreamData returns the bytes the last DrawElements gathered for slot.
func (c *Context) StreamData(slot uint32) []byte {
	core.Assert(slot < MaxVertexStreamCount, "vertex stream %d out of range", slot)
	return c.vertexStreams[slot].scratch
}
