package metadata

import "strings"

/** @brief Pixel formats known to the graphics layer. */
type TextureFormat int

const (
	TextureFormatLuminance TextureFormat = iota
	TextureFormatLuminanceAlpha
	TextureFormatRGB
	TextureFormatRGBA
	TextureFormatRGB_DXT1
	TextureFormatRGBA_DXT1
	TextureFormatRGBA_DXT3
	TextureFormatRGBA_DXT5
	TextureFormatDepth
	TextureFormatStencil
	TextureFormatRGB_PVRTC_2BPPV1
	TextureFormatRGB_PVRTC_4BPPV1
	TextureFormatRGBA_PVRTC_2BPPV1
	TextureFormatRGBA_PVRTC_4BPPV1
	TextureFormatRGB_ETC1
	TextureFormatRGB_16BPP
	TextureFormatRGBA_16BPP
	TextureFormatRGBA_ETC2
	TextureFormatRGBA_ASTC_4x4
	TextureFormatRGB_BC1
	TextureFormatRGBA_BC3
	TextureFormatR_BC4
	TextureFormatRG_BC5
	TextureFormatRGBA_BC7

	TextureFormatCount
)

/** @brief Bits per pixel for each format. Formats absent from the table report 0. */
var textureFormatBPP = map[TextureFormat]uint32{
	TextureFormatLuminance:         8,
	TextureFormatLuminanceAlpha:    16,
	TextureFormatRGB:               24,
	TextureFormatRGBA:              32,
	TextureFormatRGB_DXT1:          4,
	TextureFormatRGBA_DXT1:         4,
	TextureFormatRGBA_DXT3:         8,
	TextureFormatRGBA_DXT5:         8,
	TextureFormatDepth:             24,
	TextureFormatStencil:           8,
	TextureFormatRGB_PVRTC_2BPPV1:  2,
	TextureFormatRGB_PVRTC_4BPPV1:  4,
	TextureFormatRGBA_PVRTC_2BPPV1: 2,
	TextureFormatRGBA_PVRTC_4BPPV1: 4,
	TextureFormatRGB_ETC1:          4,
	TextureFormatRGB_16BPP:         16,
	TextureFormatRGBA_16BPP:        16,
	TextureFormatRGBA_ETC2:         8,
	TextureFormatRGBA_ASTC_4x4:     8,
	TextureFormatRGB_BC1:           4,
	TextureFormatRGBA_BC3:          8,
	TextureFormatR_BC4:             4,
	TextureFormatRG_BC5:            8,
	TextureFormatRGBA_BC7:          8,
}

func TextureFormatBPP(format TextureFormat) uint32 {
	return textureFormatBPP[format]
}

/** @brief Represents supported texture filtering modes. */
type TextureFilter int

const (
	TextureFilterDefault TextureFilter = iota
	/** @brief Nearest-neighbor filtering. */
	TextureFilterNearest
	/** @brief Linear (i.e. bilinear) filtering.*/
	TextureFilterLinear
	TextureFilterNearestMipmapNearest
	TextureFilterNearestMipmapLinear
	TextureFilterLinearMipmapNearest
	TextureFilterLinearMipmapLinear
)

var textureFilterNames = map[string]TextureFilter{
	"default":                TextureFilterDefault,
	"nearest":                TextureFilterNearest,
	"linear":                 TextureFilterLinear,
	"nearest_mipmap_nearest": TextureFilterNearestMipmapNearest,
	"nearest_mipmap_linear":  TextureFilterNearestMipmapLinear,
	"linear_mipmap_nearest":  TextureFilterLinearMipmapNearest,
	"linear_mipmap_linear":   TextureFilterLinearMipmapLinear,
}

/** @brief Parses a filter name as written in configuration files. Unknown names yield TextureFilterDefault and false. */
func TextureFilterFromString(name string) (TextureFilter, bool) {
	f, ok := textureFilterNames[strings.ToLower(strings.TrimSpace(name))]
	return f, ok
}

type TextureWrap int

const (
	TextureWrapClampToBorder TextureWrap = iota
	TextureWrapClampToEdge
	TextureWrapMirroredRepeat
	TextureWrapRepeat
)

type TextureType int

const (
	/** @brief A standard two-dimensional texture. */
	TextureType2D TextureType = iota
	/** @brief A cube texture, used for cubemaps. */
	TextureTypeCubeMap
)

/** @brief Status bits reported by GetTextureStatusFlags. */
type TextureStatusFlags uint32

const (
	TextureStatusOK TextureStatusFlags = 0
	/** @brief An asynchronous upload is still in flight. */
	TextureStatusDataPending TextureStatusFlags = 0x1
)

/** @brief Parameters used to create a texture. */
type TextureCreationParams struct {
	Type           TextureType
	Width          uint32
	Height         uint32
	/** @brief Size of the source image. Zero means "same as Width/Height". */
	OriginalWidth  uint32
	OriginalHeight uint32
	MipMapCount    uint32
}

/** @brief Parameters used to upload texture data. */
type TextureParams struct {
	/** @brief The raw texture data (pixels). */
	Data      []byte
	/** @brief Bytes to allocate. Zero means len(Data); a nil Data allocates zeroed storage. */
	DataSize  uint32
	Format    TextureFormat
	MinFilter TextureFilter
	MagFilter TextureFilter
	UWrap     TextureWrap
	VWrap     TextureWrap
	/** @brief Destination offset of a sub update. */
	X, Y          uint32
	Width, Height uint32
	MipMap        uint32
	/** @brief Update only the X, Y, Width, Height region of an existing image. */
	SubUpdate bool
}
