package graphics

import (
	"testing"

	"github.com/spaghettifunk/anima-gfx/engine/renderer/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTextureOriginalSize(t *testing.T) {
	ctx, _ := newTestContext(t)

	tex := ctx.NewTexture(metadata.TextureCreationParams{Width: 64, Height: 32})
	assert.Equal(t, uint32(64), ctx.GetTextureWidth(tex))
	assert.Equal(t, uint32(32), ctx.GetTextureHeight(tex))
	assert.Equal(t, uint32(64), ctx.GetOriginalTextureWidth(tex))
	assert.Equal(t, uint32(32), ctx.GetOriginalTextureHeight(tex))
	assert.Equal(t, uint32(0), ctx.GetTextureMipMapCount(tex))

	minFilter, magFilter := ctx.GetTextureFilters(tex)
	assert.Equal(t, testContextParams.DefaultTextureMinFilter, minFilter)
	assert.Equal(t, testContextParams.DefaultTextureMagFilter, magFilter)

	scaled := ctx.NewTexture(metadata.TextureCreationParams{Width: 64, Height: 32, OriginalWidth: 128, OriginalHeight: 64})
	assert.Equal(t, uint32(128), ctx.GetOriginalTextureWidth(scaled))
	assert.Equal(t, uint32(64), ctx.GetOriginalTextureHeight(scaled))
}

func TestSetTexture(t *testing.T) {
	ctx, _ := newTestContext(t)
	tex := ctx.NewTexture(metadata.TextureCreationParams{Width: 2, Height: 2})

	data, result := ctx.GetTextureHandle(tex)
	assert.Equal(t, metadata.HandleResultOK, result)
	assert.Nil(t, data)

	pixels := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	ctx.SetTexture(tex, metadata.TextureParams{Data: pixels, Format: metadata.TextureFormatRGBA, Width: 2, Height: 2})
	data, _ = ctx.GetTextureHandle(tex)
	assert.Equal(t, pixels, data)
	assert.Equal(t, metadata.TextureFormatRGBA, ctx.GetTextureFormat(tex))
	assert.Equal(t, uint32(1), ctx.GetTextureMipMapCount(tex))

	// The texture keeps its own copy.
	pixels[0] = 0xff
	data, _ = ctx.GetTextureHandle(tex)
	assert.Equal(t, byte(1), data[0])

	// Mip count only grows.
	ctx.SetTexture(tex, metadata.TextureParams{Data: pixels[:4], Format: metadata.TextureFormatRGBA, MipMap: 1, Width: 1, Height: 1})
	assert.Equal(t, uint32(2), ctx.GetTextureMipMapCount(tex))
	assert.Equal(t, uint32(1), ctx.GetTextureWidth(tex))
	ctx.SetTexture(tex, metadata.TextureParams{Format: metadata.TextureFormatRGBA, DataSize: 4})
	assert.Equal(t, uint32(2), ctx.GetTextureMipMapCount(tex))
	data, _ = ctx.GetTextureHandle(tex)
	assert.Equal(t, []byte{0, 0, 0, 0}, data)

	ctx.SetTextureAsync(tex, metadata.TextureParams{Data: []byte{7}, Format: metadata.TextureFormatLuminance})
	data, _ = ctx.GetTextureHandle(tex)
	assert.Equal(t, []byte{7}, data)
	assert.Equal(t, metadata.TextureStatusOK, ctx.GetTextureStatusFlags(tex))
}

func TestSetTextureSubUpdateBounds(t *testing.T) {
	ctx, _ := newTestContext(t)
	tex := ctx.NewTexture(metadata.TextureCreationParams{Width: 4, Height: 4})

	assert.NotPanics(t, func() {
		ctx.SetTexture(tex, metadata.TextureParams{SubUpdate: true, X: 2, Y: 2, Width: 2, Height: 2, DataSize: 16})
	})
	assert.Panics(t, func() {
		ctx.SetTexture(tex, metadata.TextureParams{SubUpdate: true, X: 3, Width: 2, Height: 1})
	})
	assert.Panics(t, func() {
		ctx.SetTexture(tex, metadata.TextureParams{SubUpdate: true, Y: 1, Width: 1, Height: 4})
	})
	// Sub updates leave the size alone.
	assert.Equal(t, uint32(4), ctx.GetTextureWidth(tex))
}

func TestTextureResourceSize(t *testing.T) {
	ctx, _ := newTestContext(t)

	tests := []struct {
		name   string
		format metadata.TextureFormat
		mips   uint32
		want   uint32
	}{
		{"rgba base level", metadata.TextureFormatRGBA, 0, 64 * 64 * 4},
		{"rgba three levels", metadata.TextureFormatRGBA, 2, 64*64*4 + 32*32*4 + 16*16*4},
		{"luminance", metadata.TextureFormatLuminance, 0, 64 * 64},
		{"dxt1 half byte per pixel", metadata.TextureFormatRGB_DXT1, 0, 64 * 64 / 2},
		{"unknown format", metadata.TextureFormatCount, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tex := ctx.NewTexture(metadata.TextureCreationParams{Width: 64, Height: 64})
			for mip := uint32(0); mip <= tt.mips; mip++ {
				ctx.SetTexture(tex, metadata.TextureParams{Format: tt.format, MipMap: mip})
			}
			assert.Equal(t, tt.want+textureHeaderSize, ctx.GetTextureResourceSize(tex))
			ctx.DeleteTexture(tex)
		})
	}

	empty := ctx.NewTexture(metadata.TextureCreationParams{Width: 8, Height: 8})
	assert.Equal(t, textureHeaderSize, ctx.GetTextureResourceSize(empty))
}

func TestEnableDisableTexture(t *testing.T) {
	ctx, _ := newTestContext(t)
	tex := ctx.NewTexture(metadata.TextureCreationParams{Width: 1, Height: 1})

	// No storage yet.
	assert.Panics(t, func() { ctx.EnableTexture(0, tex) })

	ctx.SetTexture(tex, metadata.TextureParams{Data: []byte{1, 2, 3, 4}, Format: metadata.TextureFormatRGBA})
	ctx.EnableTexture(3, tex)
	assert.Equal(t, tex, ctx.BoundTexture(3))
	assert.Panics(t, func() { ctx.EnableTexture(MaxTextureCount, tex) })

	ctx.DisableTexture(3, tex)
	assert.Equal(t, HTexture(0), ctx.BoundTexture(3))
	assert.NotPanics(t, func() { ctx.DisableTexture(3, tex) })
	assert.Equal(t, HTexture(0), ctx.BoundTexture(3))
	assert.Panics(t, func() { ctx.DisableTexture(MaxTextureCount, tex) })
}

func TestDeleteTextureUnbindsUnits(t *testing.T) {
	ctx, _ := newTestContext(t)
	tex := ctx.NewTexture(metadata.TextureCreationParams{Width: 1, Height: 1})
	ctx.SetTexture(tex, metadata.TextureParams{Data: []byte{1}, Format: metadata.TextureFormatLuminance})
	ctx.EnableTexture(0, tex)
	ctx.EnableTexture(5, tex)

	ctx.DeleteTexture(tex)
	assert.Equal(t, HTexture(0), ctx.BoundTexture(0))
	assert.Equal(t, HTexture(0), ctx.BoundTexture(5))

	data, result := ctx.GetTextureHandle(tex)
	assert.Equal(t, metadata.HandleResultError, result)
	assert.Nil(t, data)
	assert.Panics(t, func() { ctx.GetTextureWidth(tex) })
}

func TestSetTextureParams(t *testing.T) {
	ctx, _ := newTestContext(t)
	tex := ctx.NewTexture(metadata.TextureCreationParams{Width: 1, Height: 1})

	ctx.SetTextureParams(tex, metadata.TextureFilterNearest, metadata.TextureFilterNearest, metadata.TextureWrapRepeat, metadata.TextureWrapClampToEdge)
	minFilter, magFilter := ctx.GetTextureFilters(tex)
	assert.Equal(t, metadata.TextureFilterNearest, minFilter)
	assert.Equal(t, metadata.TextureFilterNearest, magFilter)
}

func TestMaxTextureSize(t *testing.T) {
	ctx, _ := newTestContext(t)
	require.Equal(t, uint32(1024), ctx.GetMaxTextureSize())
}
