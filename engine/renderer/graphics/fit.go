package graphics

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/spaghettifunk/anima-gfx/engine/core"
	"github.com/spaghettifunk/anima-gfx/engine/math"
	"github.com/spaghettifunk/anima-gfx/engine/renderer/metadata"
)

// FitTextureParams scales uncompressed image data down so that neither side
// exceeds maxSize, keeping the aspect ratio. The creation params receive the
// new size and remember the source size as the original one. Reports whether
// the data was resampled. Only luminance, RGB and RGBA data can be resampled.
func FitTextureParams(creation *metadata.TextureCreationParams, params *metadata.TextureParams, maxSize uint32) bool {
	width, height := params.Width, params.Height
	if width <= maxSize && height <= maxSize {
		return false
	}

	src, ok := decodePixels(params.Format, params.Data, width, height)
	if !ok {
		core.LogWarn("texture of format %d (%dx%d) exceeds %d and cannot be resampled", params.Format, width, height, maxSize)
		return false
	}

	fitWidth, fitHeight := math.FitDimensions(width, height, maxSize)
	bounds := image.Rect(0, 0, int(fitWidth), int(fitHeight))
	var dst draw.Image
	if params.Format == metadata.TextureFormatLuminance {
		dst = image.NewGray(bounds)
	} else {
		dst = image.NewNRGBA(bounds)
	}
	draw.BiLinear.Scale(dst, bounds, src, src.Bounds(), draw.Src, nil)

	params.Data = encodePixels(params.Format, dst)
	params.DataSize = uint32(len(params.Data))
	params.Width = fitWidth
	params.Height = fitHeight
	params.MipMap = 0

	creation.OriginalWidth = width
	creation.OriginalHeight = height
	creation.Width = fitWidth
	creation.Height = fitHeight
	core.LogDebug("texture resampled from %dx%d to %dx%d", width, height, fitWidth, fitHeight)
	return true
}

func decodePixels(format metadata.TextureFormat, data []byte, width, height uint32) (image.Image, bool) {
	rect := image.Rect(0, 0, int(width), int(height))
	pixels := int(width * height)
	switch format {
	case metadata.TextureFormatLuminance:
		if len(data) < pixels {
			return nil, false
		}
		return &image.Gray{Pix: data[:pixels], Stride: int(width), Rect: rect}, true
	case metadata.TextureFormatRGBA:
		if len(data) < pixels*4 {
			return nil, false
		}
		return &image.NRGBA{Pix: data[:pixels*4], Stride: int(width) * 4, Rect: rect}, true
	case metadata.TextureFormatRGB:
		if len(data) < pixels*3 {
			return nil, false
		}
		img := image.NewNRGBA(rect)
		for i := 0; i < pixels; i++ {
			copy(img.Pix[i*4:i*4+3], data[i*3:i*3+3])
			img.Pix[i*4+3] = 0xff
		}
		return img, true
	default:
		return nil, false
	}
}

func encodePixels(format metadata.TextureFormat, img draw.Image) []byte {
	switch dst := img.(type) {
	case *image.Gray:
		return dst.Pix
	case *image.NRGBA:
		if format == metadata.TextureFormatRGBA {
			return dst.Pix
		}
		pixels := len(dst.Pix) / 4
		out := make([]byte, pixels*3)
		for i := 0; i < pixels; i++ {
			copy(out[i*3:i*3+3], dst.Pix[i*4:i*4+3])
		}
		return out
	default:
		return nil
	}
}
