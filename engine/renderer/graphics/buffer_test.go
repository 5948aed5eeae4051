package graphics

import (
	"testing"

	"github.com/spaghettifunk/anima-gfx/engine/renderer/metadata"
	"github.com/stretchr/testify/assert"
)

func TestVertexBufferMapRoundTrip(t *testing.T) {
	ctx, _ := newTestContext(t)
	vb := ctx.NewVertexBuffer(4, []byte{1, 2, 3, 4}, metadata.BufferUsageStaticDraw)

	mapped := ctx.MapVertexBuffer(vb, metadata.BufferAccessReadWrite)
	assert.Equal(t, []byte{1, 2, 3, 4}, mapped)

	// The mapping is a copy until it is unmapped.
	mapped[0] = 9
	assert.Equal(t, []byte{1, 2, 3, 4}, ctx.VertexBufferData(vb))

	assert.True(t, ctx.UnmapVertexBuffer(vb))
	assert.Equal(t, []byte{9, 2, 3, 4}, ctx.VertexBufferData(vb))

	ctx.DeleteVertexBuffer(vb)
}

func TestIndexBufferMapRoundTrip(t *testing.T) {
	ctx, _ := newTestContext(t)
	ib := ctx.NewIndexBuffer(2, []byte{5, 6}, metadata.BufferUsageStaticDraw)

	mapped := ctx.MapIndexBuffer(ib, metadata.BufferAccessWriteOnly)
	mapped[1] = 7
	assert.True(t, ctx.UnmapIndexBuffer(ib))
	assert.Equal(t, []byte{5, 7}, ctx.IndexBufferData(ib))
}

func TestBufferWithoutInitialData(t *testing.T) {
	ctx, _ := newTestContext(t)
	vb := ctx.NewVertexBuffer(3, nil, metadata.BufferUsageDynamicDraw)
	assert.Equal(t, []byte{0, 0, 0}, ctx.VertexBufferData(vb))
}

func TestBufferSetData(t *testing.T) {
	ctx, _ := newTestContext(t)
	vb := ctx.NewVertexBuffer(2, []byte{1, 2}, metadata.BufferUsageStaticDraw)

	ctx.SetVertexBufferData(vb, 4, []byte{3, 4, 5, 6}, metadata.BufferUsageDynamicDraw)
	assert.Equal(t, []byte{3, 4, 5, 6}, ctx.VertexBufferData(vb))

	ctx.SetVertexBufferData(vb, 2, nil, metadata.BufferUsageDynamicDraw)
	assert.Equal(t, []byte{0, 0}, ctx.VertexBufferData(vb))

	ib := ctx.NewIndexBuffer(1, []byte{1}, metadata.BufferUsageStaticDraw)
	ctx.SetIndexBufferData(ib, 2, []byte{8, 9}, metadata.BufferUsageStaticDraw)
	assert.Equal(t, []byte{8, 9}, ctx.IndexBufferData(ib))
}

func TestBufferSubData(t *testing.T) {
	ctx, _ := newTestContext(t)
	vb := ctx.NewVertexBuffer(4, []byte{1, 2, 3, 4}, metadata.BufferUsageStaticDraw)

	ctx.SetVertexBufferSubData(vb, 2, 2, []byte{7, 8})
	assert.Equal(t, []byte{1, 2, 7, 8}, ctx.VertexBufferData(vb))

	// Writes that do not fit are dropped.
	ctx.SetVertexBufferSubData(vb, 3, 2, []byte{9, 9})
	ctx.SetVertexBufferSubData(vb, 0xffffffff, 2, []byte{9, 9})
	assert.Equal(t, []byte{1, 2, 7, 8}, ctx.VertexBufferData(vb))

	ib := ctx.NewIndexBuffer(2, []byte{1, 2}, metadata.BufferUsageStaticDraw)
	ctx.SetIndexBufferSubData(ib, 1, 2, []byte{9, 9})
	assert.Equal(t, []byte{1, 2}, ctx.IndexBufferData(ib))
	ctx.SetIndexBufferSubData(ib, 1, 1, []byte{9})
	assert.Equal(t, []byte{1, 9}, ctx.IndexBufferData(ib))
}

func TestBufferSubDataPastEndIsRejected(t *testing.T) {
	ctx, _ := newTestContext(t)
	const size = 8
	initial := []byte{1, 2, 3, 4, 5, 6, 7, 8}

	vb := ctx.NewVertexBuffer(size, initial, metadata.BufferUsageStaticDraw)
	assert.NotPanics(t, func() { ctx.SetVertexBufferSubData(vb, size-2, 4, []byte{9, 9, 9, 9}) })
	assert.Equal(t, initial, ctx.VertexBufferData(vb))

	ib := ctx.NewIndexBuffer(size, initial, metadata.BufferUsageStaticDraw)
	assert.NotPanics(t, func() { ctx.SetIndexBufferSubData(ib, size-2, 4, []byte{9, 9, 9, 9}) })
	assert.Equal(t, initial, ctx.IndexBufferData(ib))
}

func TestBufferMapContract(t *testing.T) {
	ctx, _ := newTestContext(t)
	vb := ctx.NewVertexBuffer(2, []byte{1, 2}, metadata.BufferUsageStaticDraw)
	ib := ctx.NewIndexBuffer(2, []byte{1, 2}, metadata.BufferUsageStaticDraw)

	assert.Panics(t, func() { ctx.UnmapVertexBuffer(vb) })
	assert.Panics(t, func() { ctx.UnmapIndexBuffer(ib) })

	ctx.MapVertexBuffer(vb, metadata.BufferAccessReadOnly)
	assert.Panics(t, func() { ctx.MapVertexBuffer(vb, metadata.BufferAccessReadOnly) })
	assert.Panics(t, func() { ctx.SetVertexBufferData(vb, 1, nil, metadata.BufferUsageStaticDraw) })
	assert.Panics(t, func() { ctx.DeleteVertexBuffer(vb) })

	ctx.MapIndexBuffer(ib, metadata.BufferAccessReadOnly)
	assert.Panics(t, func() { ctx.SetIndexBufferData(ib, 1, nil, metadata.BufferUsageStaticDraw) })
	assert.Panics(t, func() { ctx.DeleteIndexBuffer(ib) })

	ctx.UnmapVertexBuffer(vb)
	ctx.UnmapIndexBuffer(ib)
	ctx.DeleteVertexBuffer(vb)
	ctx.DeleteIndexBuffer(ib)
}

func TestStaleBufferHandle(t *testing.T) {
	ctx, _ := newTestContext(t)
	vb := ctx.NewVertexBuffer(1, nil, metadata.BufferUsageStaticDraw)
	ctx.DeleteVertexBuffer(vb)

	// The slot is reused but the old handle stays dead.
	reused := ctx.NewVertexBuffer(1, nil, metadata.BufferUsageStaticDraw)
	assert.NotEqual(t, vb, reused)
	assert.Panics(t, func() { ctx.VertexBufferData(vb) })
	assert.Panics(t, func() { ctx.DeleteVertexBuffer(vb) })

	var invalid HIndexBuffer
	assert.Panics(t, func() { ctx.IndexBufferData(invalid) })
}

func TestMaxElements(t *testing.T) {
	ctx, _ := newTestContext(t)
	assert.Equal(t, uint32(65536), ctx.GetMaxElementsVertices())
	assert.Equal(t, uint32(65536), ctx.GetMaxElementsIndices())
}
