package uniform

import (
	"testing"

	"github.com/spaghettifunk/anima-gfx/engine/renderer/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const vertexSource = `#version 140
// uniform vec4 commented_out;
uniform mediump mat4 view_proj;
uniform highp mat4 world;
/* uniform vec4 also_commented; */
in vec4 position;
uniform vec4 tint, offset;
uniform vec4 lights[4];
uniform vec3 ignored_type;
uniform Block { vec4 inside; };
void main() { gl_Position = view_proj * world * position; }
`

func collect(t *testing.T, source string) []Declaration {
	t.Helper()
	var out []Declaration
	for decl := range (GLSLScanner{}).Uniforms([]byte(source)) {
		out = append(out, decl)
	}
	return out
}

func TestGLSLScannerFindsDeclarations(t *testing.T) {
	decls := collect(t, vertexSource)
	require.Len(t, decls, 5)

	names := make([]string, len(decls))
	for i, d := range decls {
		names[i] = string(d.Name)
	}
	assert.Equal(t, []string{"view_proj", "world", "tint", "offset", "lights"}, names)
	assert.Equal(t, metadata.TypeFloatMat4, decls[0].Type)
	assert.Equal(t, metadata.TypeFloatVec4, decls[2].Type)
	assert.Equal(t, metadata.TypeFloatVec4, decls[4].Type)
}

func TestGLSLScannerStopsAtNul(t *testing.T) {
	decls := collect(t, "uniform sampler2D texture_sampler;\x00uniform vec4 garbage;")
	require.Len(t, decls, 1)
	assert.Equal(t, "texture_sampler", string(decls[0].Name))
	assert.Equal(t, metadata.TypeSampler2D, decls[0].Type)
}

func TestGLSLScannerEarlyStop(t *testing.T) {
	seen := 0
	for range (GLSLScanner{}).Uniforms([]byte(vertexSource)) {
		seen++
		break
	}
	assert.Equal(t, 1, seen)
}

func TestReflectCopiesNames(t *testing.T) {
	source := []byte("uniform vec4 tint;")
	list := NewList()

	assert.Equal(t, 1, Reflect(list, source, GLSLScanner{}))

	// Clobber the source: the reflected name must not change.
	copy(source, "xxxxxxxxxxxxxxxxx")
	assert.Equal(t, "tint", list.At(0).Name)
	assert.Equal(t, uint32(0), list.At(0).Index)
}

func TestReflectKeepsDuplicatesAndIndexes(t *testing.T) {
	list := NewList()
	Reflect(list, []byte("uniform vec4 tint;"), GLSLScanner{})
	Reflect(list, []byte("uniform vec4 tint; uniform sampler2D tex;"), GLSLScanner{})

	require.Equal(t, 3, list.Len())
	for i, u := range list.Slice() {
		assert.Equal(t, uint32(i), u.Index)
	}
	assert.Equal(t, "tint", list.At(0).Name)
	assert.Equal(t, "tint", list.At(1).Name)
	assert.Equal(t, "tex", list.At(2).Name)
}

func TestReflectGrowsInSteps(t *testing.T) {
	scan := ScanFunc(func(source []byte, onUniform func([]byte, metadata.Type) bool) {
		for i := 0; i < 17; i++ {
			if !onUniform([]byte{'u', byte('a' + i)}, metadata.TypeFloatVec4) {
				return
			}
		}
	})

	list := NewList()
	assert.Equal(t, 17, Reflect(list, nil, scan))
	assert.Equal(t, 17, list.Len())
	assert.Equal(t, 2*ListGrowStep, list.Cap())
	assert.Equal(t, "uq", list.At(16).Name)
}
