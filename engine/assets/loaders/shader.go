package loaders

import (
	"fmt"
	"os"
	"path/filepath"
)

type ShaderStage int

const (
	ShaderStageNone ShaderStage = iota
	ShaderStageVertex
	ShaderStageFragment
)

// ShaderStageOf maps a shader file extension to its pipeline stage.
func ShaderStageOf(path string) ShaderStage {
	switch filepath.Ext(path) {
	case ".vp", ".vert":
		return ShaderStageVertex
	case ".fp", ".frag":
		return ShaderStageFragment
	default:
		return ShaderStageNone
	}
}

type ShaderLoader struct{}

// Load reads a shader source file. The graphics context appends the
// terminating NUL itself.
func (sl *ShaderLoader) Load(path string) ([]byte, error) {
	if ShaderStageOf(path) == ShaderStageNone {
		return nil, fmt.Errorf("not a shader source: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return data, nil
}
