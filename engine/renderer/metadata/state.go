package metadata

/** @brief Toggles accepted by EnableState and DisableState. */
type State int

const (
	StateDepthTest State = iota
	StateScissorTest
	StateStencilTest
	StateAlphaTest
	StateBlend
	StateCullFace
	StatePolygonOffsetFill

	StateCount
)

type BlendFactor int

const (
	BlendFactorZero BlendFactor = iota
	BlendFactorOne
	BlendFactorSrcColor
	BlendFactorOneMinusSrcColor
	BlendFactorDstColor
	BlendFactorOneMinusDstColor
	BlendFactorSrcAlpha
	BlendFactorOneMinusSrcAlpha
	BlendFactorDstAlpha
	BlendFactorOneMinusDstAlpha
	BlendFactorSrcAlphaSaturate
	BlendFactorConstantColor
	BlendFactorOneMinusConstantColor
	BlendFactorConstantAlpha
	BlendFactorOneMinusConstantAlpha
)

type CompareFunc int

const (
	CompareFuncNever CompareFunc = iota
	CompareFuncLess
	CompareFuncLEqual
	CompareFuncGreater
	CompareFuncGEqual
	CompareFuncEqual
	CompareFuncNotEqual
	CompareFuncAlways
)

type StencilOp int

const (
	StencilOpKeep StencilOp = iota
	StencilOpZero
	StencilOpReplace
	StencilOpIncr
	StencilOpIncrWrap
	StencilOpDecr
	StencilOpDecrWrap
	StencilOpInvert
)

type FaceType int

const (
	FaceTypeFront FaceType = iota
	FaceTypeBack
	FaceTypeFrontAndBack
)

/** @brief Rectangle in window coordinates, stored as two corners. */
type Rect struct {
	X0, Y0, X1, Y1 int32
}

/**
 * @brief The fixed function state recorded by the software pipeline. Nothing is
 * rasterized; the values exist so callers and tests can observe them.
 */
type RenderState struct {
	Enabled          [StateCount]bool
	BlendSource      BlendFactor
	BlendDestination BlendFactor
	/** @brief Packed as r<<3 | g<<2 | b<<1 | a. */
	ColorMask        uint8
	DepthMask        bool
	DepthFunc        CompareFunc
	Scissor          Rect
	Viewport         Rect
	StencilMask      uint32
	StencilFunc      CompareFunc
	StencilRef       uint32
	StencilFuncMask  uint32
	StencilFail      StencilOp
	StencilDepthFail StencilOp
	StencilPass      StencilOp
	CullFace         FaceType
	PolygonFactor    float32
	PolygonUnits     float32
}
