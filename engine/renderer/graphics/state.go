package graphics

import (
	"github.com/spaghettifunk/anima-gfx/engine/core"
	"github.com/spaghettifunk/anima-gfx/engine/renderer/metadata"
)

func (c *Context) EnableState(state metadata.State) {
	core.Assert(state >= 0 && state < metadata.StateCount, "invalid state %d", state)
	c.renderState.Enabled[state] = true
}

func (c *Context) DisableState(state metadata.State) {
	core.Assert(state >= 0 && state < metadata.StateCount, "invalid state %d", state)
	c.renderState.Enabled[state] = false
}

func (c *Context) SetBlendFunc(source, destination metadata.BlendFactor) {
	c.renderState.BlendSource = source
	c.renderState.BlendDestination = destination
}

func (c *Context) SetColorMask(red, green, blue, alpha bool) {
	var mask uint8
	if red {
		mask |= 1 << 3
	}
	if green {
		mask |= 1 << 2
	}
	if blue {
		mask |= 1 << 1
	}
	if alpha {
		mask |= 1
	}
	c.renderState.ColorMask = mask
}

func (c *Context) SetDepthMask(mask bool) {
	c.renderState.DepthMask = mask
}

func (c *Context) SetDepthFunc(fn metadata.CompareFunc) {
	c.renderState.DepthFunc = fn
}

// SetScissor stores the rectangle as its two corners.
func (c *Context) SetScissor(x, y, width, height int32) {
	c.renderState.Scissor = metadata.Rect{X0: x, Y0: y, X1: x + width, Y1: y + height}
}

func (c *Context) SetViewport(x, y, width, height int32) {
	c.renderState.Viewport = metadata.Rect{X0: x, Y0: y, X1: x + width, Y1: y + height}
}

func (c *Context) SetStencilMask(mask uint32) {
	c.renderState.StencilMask = mask
}

func (c *Context) SetStencilFunc(fn metadata.CompareFunc, ref, mask uint32) {
	c.renderState.StencilFunc = fn
	c.renderState.StencilRef = ref
	c.renderState.StencilFuncMask = mask
}

func (c *Context) SetStencilOp(stencilFail, depthFail, depthPass metadata.StencilOp) {
	c.renderState.StencilFail = stencilFail
	c.renderState.StencilDepthFail = depthFail
	c.renderState.StencilPass = depthPass
}

func (c *Context) SetCullFace(face metadata.FaceType) {
	c.renderState.CullFace = face
}

func (c *Context) SetPolygonOffset(factor, units float32) {
	c.renderState.PolygonFactor = factor
	c.renderState.PolygonUnits = units
}

// RenderState returns a copy of the recorded fixed function state.
func (c *Context) RenderState() metadata.RenderState {
	return c.renderState
}
