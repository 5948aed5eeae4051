package loaders

import (
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/spaghettifunk/anima-gfx/engine/renderer/metadata"
)

type TextureLoader struct{}

// Load decodes an image file into RGBA texture upload parameters.
func (tl *TextureLoader) Load(path string) (metadata.TextureCreationParams, metadata.TextureParams, error) {
	file, err := os.Open(path)
	if err != nil {
		return metadata.TextureCreationParams{}, metadata.TextureParams{}, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return metadata.TextureCreationParams{}, metadata.TextureParams{}, err
	}
	creation, params := TextureFromImage(img)
	return creation, params, nil
}

// TextureFromImage converts any image to tightly packed non premultiplied RGBA.
func TextureFromImage(img image.Image) (metadata.TextureCreationParams, metadata.TextureParams) {
	bounds := img.Bounds()
	rgba, ok := img.(*image.NRGBA)
	if !ok || rgba.Stride != 4*bounds.Dx() || bounds.Min != (image.Point{}) {
		rgba = image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	}

	width, height := uint32(bounds.Dx()), uint32(bounds.Dy())
	creation := metadata.TextureCreationParams{
		Type:        metadata.TextureType2D,
		Width:       width,
		Height:      height,
		MipMapCount: 1,
	}
	params := metadata.TextureParams{
		Data:      rgba.Pix,
		Format:    metadata.TextureFormatRGBA,
		MinFilter: metadata.TextureFilterLinear,
		MagFilter: metadata.TextureFilterLinear,
		UWrap:     metadata.TextureWrapClampToEdge,
		VWrap:     metadata.TextureWrapClampToEdge,
		Width:     width,
		Height:    height,
	}
	return creation, params
}
