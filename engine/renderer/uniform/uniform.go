package uniform

import (
	"github.com/spaghettifunk/anima-gfx/engine/containers"
	"github.com/spaghettifunk/anima-gfx/engine/renderer/metadata"
)

// The uniform list grows by this many entries when full.
const ListGrowStep = 16

// Uniform is a reflected uniform. Name is owned by the uniform.
type Uniform struct {
	Name  string
	Index uint32
	Type  metadata.Type
}

func NewList() *containers.Array[Uniform] {
	return containers.NewArray[Uniform](ListGrowStep)
}

// Reflect appends every uniform scanner finds in source to list and returns
// how many were added. Names are copied out of source; Index is the position
// the uniform was appended at. Duplicates are kept.
func Reflect(list *containers.Array[Uniform], source []byte, scanner Scanner) int {
	added := 0
	for decl := range scanner.Uniforms(source) {
		list.Push(Uniform{
			Name:  string(decl.Name),
			Index: uint32(list.Len()),
			Type:  decl.Type,
		})
		added++
	}
	return added
}
