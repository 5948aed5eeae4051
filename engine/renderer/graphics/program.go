package graphics

import (
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/anima-gfx/engine/containers"
	"github.com/spaghettifunk/anima-gfx/engine/core"
	"github.com/spaghettifunk/anima-gfx/engine/renderer/metadata"
	"github.com/spaghettifunk/anima-gfx/engine/renderer/uniform"
)

// shaderProgram is the NUL terminated copy of a vertex or fragment blob.
type shaderProgram struct {
	data []byte
}

func newShaderProgram(source []byte) *shaderProgram {
	data := make([]byte, len(source)+1)
	copy(data, source)
	return &shaderProgram{data: data}
}

type program struct {
	vertex   HVertexProgram
	fragment HFragmentProgram
	uniforms *containers.Array[uniform.Uniform]
}

func (c *Context) NewVertexProgram(source []byte) HVertexProgram {
	core.Assert(source != nil, "NewVertexProgram called without a program")
	return HVertexProgram(c.vertexPrograms.Acquire(newShaderProgram(source)))
}

func (c *Context) NewFragmentProgram(source []byte) HFragmentProgram {
	core.Assert(source != nil, "NewFragmentProgram called without a program")
	return HFragmentProgram(c.fragmentPrograms.Acquire(newShaderProgram(source)))
}

// ReloadVertexProgram replaces the program source. It reports false when
// reload failures are being forced.
func (c *Context) ReloadVertexProgram(h HVertexProgram, source []byte) bool {
	core.Assert(source != nil, "ReloadVertexProgram called without a program")
	p := lookup(&c.vertexPrograms, core.Handle(h), "vertex program")
	p.data = newShaderProgram(source).data
	return !c.forceVertexReloadFail
}

func (c *Context) ReloadFragmentProgram(h HFragmentProgram, source []byte) bool {
	core.Assert(source != nil, "ReloadFragmentProgram called without a program")
	p := lookup(&c.fragmentPrograms, core.Handle(h), "fragment program")
	p.data = newShaderProgram(source).data
	return !c.forceFragmentReloadFail
}

// DeleteVertexProgram frees the stage. Programs linked against it keep their
// reflected uniforms but can no longer be reloaded from it.
func (c *Context) DeleteVertexProgram(h HVertexProgram) {
	release(&c.vertexPrograms, core.Handle(h), "vertex program")
	c.programs.Each(func(ph core.Handle, p *program) {
		if p.vertex == h {
			core.LogWarn("vertex program deleted while still linked into program %d", ph)
		}
	})
}

func (c *Context) DeleteFragmentProgram(h HFragmentProgram) {
	release(&c.fragmentPrograms, core.Handle(h), "fragment program")
	c.programs.Each(func(ph core.Handle, p *program) {
		if p.fragment == h {
			core.LogWarn("fragment program deleted while still linked into program %d", ph)
		}
	})
}

// VertexProgramData returns the stored source including its trailing NUL.
func (c *Context) VertexProgramData(h HVertexProgram) []byte {
	return lookup(&c.vertexPrograms, core.Handle(h), "vertex program").data
}

func (c *Context) FragmentProgramData(h HFragmentProgram) []byte {
	return lookup(&c.fragmentPrograms, core.Handle(h), "fragment program").data
}

func (c *Context) SetForceVertexReloadFail(fail bool) {
	c.forceVertexReloadFail = fail
}

func (c *Context) SetForceFragmentReloadFail(fail bool) {
	c.forceFragmentReloadFail = fail
}

// NewProgram links the given stages. Either may be the zero handle. Uniforms
// are reflected from the vertex stage first, then the fragment stage.
func (c *Context) NewProgram(vp HVertexProgram, fp HFragmentProgram) HProgram {
	p := &program{vertex: vp, fragment: fp}
	c.reflect(p)
	return HProgram(c.programs.Acquire(p))
}

func (c *Context) reflect(p *program) {
	p.uniforms = uniform.NewList()
	if p.vertex != 0 {
		vertex := lookup(&c.vertexPrograms, core.Handle(p.vertex), "vertex program")
		uniform.Reflect(p.uniforms, vertex.data, c.scanner)
	}
	if p.fragment != 0 {
		fragment := lookup(&c.fragmentPrograms, core.Handle(p.fragment), "fragment program")
		uniform.Reflect(p.uniforms, fragment.data, c.scanner)
	}
}

func (c *Context) DeleteProgram(h HProgram) {
	release(&c.programs, core.Handle(h), "program")
	if c.program == h {
		c.program = 0
	}
}

// ReloadProgram relinks the program against the given stages and reflects
// its uniforms again.
func (c *Context) ReloadProgram(h HProgram, vp HVertexProgram, fp HFragmentProgram) bool {
	p := lookup(&c.programs, core.Handle(h), "program")
	p.vertex = vp
	p.fragment = fp
	c.reflect(p)
	return true
}

func (c *Context) EnableProgram(h HProgram) {
	lookup(&c.programs, core.Handle(h), "program")
	c.program = h
}

func (c *Context) DisableProgram() {
	c.program = 0
}

func (c *Context) GetUniformCount(h HProgram) uint32 {
	return uint32(lookup(&c.programs, core.Handle(h), "program").uniforms.Len())
}

// GetUniformName returns the name and type of the uniform at index.
func (c *Context) GetUniformName(h HProgram, index uint32) (string, metadata.Type) {
	p := lookup(&c.programs, core.Handle(h), "program")
	core.Assert(int(index) < p.uniforms.Len(), "uniform index %d out of range (count=%d)", index, p.uniforms.Len())
	u := p.uniforms.At(int(index))
	return u.Name, u.Type
}

// GetUniformLocation looks name up ignoring case. Returns
// InvalidUniformLocation when the program has no such uniform.
func (c *Context) GetUniformLocation(h HProgram, name string) int32 {
	p := lookup(&c.programs, core.Handle(h), "program")
	for _, u := range p.uniforms.Slice() {
		if strings.EqualFold(u.Name, name) {
			return int32(u.Index)
		}
	}
	return InvalidUniformLocation
}

func (c *Context) requireProgram(op string) {
	core.Assert(c.program != 0, "%s called without an enabled program", op)
}

func registerInRange(base, count int) bool {
	return base >= 0 && base+count <= MaxRegisterCount
}

func (c *Context) SetConstantV4(data mgl32.Vec4, base int) {
	c.requireProgram("SetConstantV4")
	core.Assert(registerInRange(base, 1), "register %d out of range", base)
	c.programRegisters[base] = data
}

// SetConstantM4 stores the matrix column by column in four consecutive registers.
func (c *Context) SetConstantM4(data mgl32.Mat4, base int) {
	c.requireProgram("SetConstantM4")
	core.Assert(registerInRange(base, 4), "registers %d..%d out of range", base, base+3)
	for i := 0; i < 4; i++ {
		c.programRegisters[base+i] = data.Col(i)
	}
}

func (c *Context) GetConstantV4(base int) mgl32.Vec4 {
	c.requireProgram("GetConstantV4")
	core.Assert(registerInRange(base, 1), "register %d out of range", base)
	return c.programRegisters[base]
}

// SetSampler is accepted for API compatibility. Units are bound through EnableTexture.
func (c *Context) SetSampler(location int32, unit int32) {}
