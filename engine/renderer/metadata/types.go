package metadata

/** @brief The data types understood by vertex streams, index buffers and shader uniforms. */
type Type int

const (
	TypeByte Type = iota
	TypeUnsignedByte
	TypeShort
	TypeUnsignedShort
	TypeInt
	TypeUnsignedInt
	TypeFloat
	/** @brief Uniform only types. They carry no per-element size. */
	TypeFloatVec4
	TypeFloatMat4
	TypeSampler2D
	TypeSamplerCube
)

var typeNames = map[Type]string{
	TypeByte:          "byte",
	TypeUnsignedByte:  "ubyte",
	TypeShort:         "short",
	TypeUnsignedShort: "ushort",
	TypeInt:           "int",
	TypeUnsignedInt:   "uint",
	TypeFloat:         "float",
	TypeFloatVec4:     "vec4",
	TypeFloatMat4:     "mat4",
	TypeSampler2D:     "sampler2D",
	TypeSamplerCube:   "samplerCube",
}

func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return "unknown"
}

/**
 * @brief Size in bytes of a single value of the given type. Only the scalar
 * types used by vertex and index data have a size; every other type reports 0.
 */
func TypeSize(t Type) uint32 {
	switch t {
	case TypeByte, TypeUnsignedByte:
		return 1
	case TypeShort, TypeUnsignedShort:
		return 2
	case TypeInt, TypeUnsignedInt, TypeFloat:
		return 4
	default:
		return 0
	}
}

/** @brief Primitive topologies accepted by Draw and DrawElements. */
type PrimitiveType int

const (
	PrimitiveLines PrimitiveType = iota
	PrimitiveTriangles
	PrimitiveTriangleStrip
)

/** @brief A usage hint for buffer contents. */
type BufferUsage int

const (
	BufferUsageStreamDraw BufferUsage = iota
	BufferUsageDynamicDraw
	BufferUsageStaticDraw
)

/** @brief Access requested when mapping a buffer. */
type BufferAccess int

const (
	BufferAccessReadOnly BufferAccess = iota
	BufferAccessWriteOnly
	BufferAccessReadWrite
)

/** @brief The attachment kinds of a frame buffer. */
type BufferType uint32

const (
	BufferTypeColorBit   BufferType = 0x1
	BufferTypeDepthBit   BufferType = 0x2
	BufferTypeStencilBit BufferType = 0x4
)

/** @brief The number of attachment kinds in a frame buffer. */
const MaxBufferTypeCount = 3

/**
 * @brief Maps an attachment bit to its position in a frame buffer, or -1
 * when the value is not exactly one of the attachment bits.
 */
func BufferTypeIndex(t BufferType) int {
	switch t {
	case BufferTypeColorBit:
		return 0
	case BufferTypeDepthBit:
		return 1
	case BufferTypeStencilBit:
		return 2
	default:
		return -1
	}
}

/** @brief Inverse of BufferTypeIndex. */
func BufferTypeFromIndex(i int) BufferType {
	return BufferType(1) << uint(i)
}

/** @brief A single element of a vertex declaration. */
type VertexElement struct {
	/** @brief The attribute name, informational only. */
	Name string
	/** @brief The stream slot this element is bound to. */
	Stream uint32
	/** @brief Number of components of Type. */
	Size uint32
	/** @brief The component type. */
	Type Type
	Normalize bool
}

/** @brief Result of querying a native handle. */
type HandleResult int

const (
	HandleResultOK HandleResult = iota
	HandleResultNotAvailable
	HandleResultError
)
