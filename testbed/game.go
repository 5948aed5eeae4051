package testbed

import (
	_ "embed"
	"encoding/binary"
	"image"
	"image/color"
	"math"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/anima-gfx/engine"
	"github.com/spaghettifunk/anima-gfx/engine/assets/loaders"
	"github.com/spaghettifunk/anima-gfx/engine/core"
	"github.com/spaghettifunk/anima-gfx/engine/renderer/graphics"
	"github.com/spaghettifunk/anima-gfx/engine/renderer/metadata"
)

var (
	//go:embed shaders/sprite.vp
	spriteVertexProgram []byte
	//go:embed shaders/sprite.fp
	spriteFragmentProgram []byte
)

const (
	checkerSize   = 1536
	offscreenSize = 256
)

type TestGame struct {
	*engine.Game
}

type gameState struct {
	vertexBuffer    graphics.HVertexBuffer
	indexBuffer     graphics.HIndexBuffer
	declaration     graphics.HVertexDeclaration
	vertexProgram   graphics.HVertexProgram
	fragmentProgram graphics.HFragmentProgram
	program         graphics.HProgram
	texture         graphics.HTexture
	renderTarget    graphics.HRenderTarget

	viewProjLocation int32
	tintLocation     int32

	angle  float32
	width  uint32
	height uint32
	frames uint64
}

func NewTestGame(configPath string) *TestGame {
	tg := &TestGame{
		Game: &engine.Game{
			ApplicationConfig: &engine.ApplicationConfig{
				ConfigPath: configPath,
			},
			State: &gameState{},
		},
	}

	tg.FnInitialize = tg.Initialize
	tg.FnUpdate = tg.Update
	tg.FnRender = tg.Render
	tg.FnOnResize = tg.OnResize
	tg.FnShutdown = tg.Shutdown

	return tg
}

func (g *TestGame) state() *gameState {
	return g.State.(*gameState)
}

func (g *TestGame) Initialize(e *engine.Engine) error {
	core.LogInfo("initializing testbed...")
	ctx := e.Context()
	s := g.state()

	// Interleaved position (vec3) + texcoord (vec2) quad.
	vertices := []float32{
		-0.5, -0.5, 0, 0, 1,
		0.5, -0.5, 0, 1, 1,
		0.5, 0.5, 0, 1, 0,
		-0.5, 0.5, 0, 0, 0,
	}
	indices := []uint16{0, 1, 2, 2, 3, 0}

	vb := make([]byte, 0, 4*len(vertices))
	for _, v := range vertices {
		vb = binary.LittleEndian.AppendUint32(vb, math.Float32bits(v))
	}
	ib := make([]byte, 0, 2*len(indices))
	for _, i := range indices {
		ib = binary.LittleEndian.AppendUint16(ib, i)
	}
	s.vertexBuffer = ctx.NewVertexBuffer(uint32(len(vb)), vb, metadata.BufferUsageStaticDraw)
	s.indexBuffer = ctx.NewIndexBuffer(uint32(len(ib)), ib, metadata.BufferUsageStaticDraw)
	s.declaration = ctx.NewVertexDeclaration([]metadata.VertexElement{
		{Name: "position", Stream: 0, Size: 3, Type: metadata.TypeFloat},
		{Name: "texcoord0", Stream: 1, Size: 2, Type: metadata.TypeFloat},
	})

	s.vertexProgram = ctx.NewVertexProgram(spriteVertexProgram)
	s.fragmentProgram = ctx.NewFragmentProgram(spriteFragmentProgram)
	s.program = ctx.NewProgram(s.vertexProgram, s.fragmentProgram)
	s.viewProjLocation = ctx.GetUniformLocation(s.program, "view_proj")
	s.tintLocation = ctx.GetUniformLocation(s.program, "tint")
	for i := uint32(0); i < ctx.GetUniformCount(s.program); i++ {
		name, typ := ctx.GetUniformName(s.program, i)
		core.LogDebug("uniform %d: %s %s", i, typ, name)
	}

	if sw := e.ShaderWatcher(); sw != nil {
		dir := e.Config().Graphics.ShaderDir
		sw.WatchVertexProgram(filepath.Join(dir, "sprite.vp"), s.vertexProgram)
		sw.WatchFragmentProgram(filepath.Join(dir, "sprite.fp"), s.fragmentProgram)
	}

	creation, params := loaders.TextureFromImage(checkerboard(checkerSize, 64))
	if graphics.FitTextureParams(&creation, &params, ctx.GetMaxTextureSize()) {
		core.LogInfo("checkerboard scaled from %dx%d to %dx%d",
			creation.OriginalWidth, creation.OriginalHeight, creation.Width, creation.Height)
	}
	s.texture = ctx.NewTexture(creation)
	ctx.SetTexture(s.texture, params)

	var rtCreation [metadata.MaxBufferTypeCount]metadata.TextureCreationParams
	var rtParams [metadata.MaxBufferTypeCount]metadata.TextureParams
	for _, kind := range []metadata.BufferType{metadata.BufferTypeColorBit, metadata.BufferTypeDepthBit} {
		i := metadata.BufferTypeIndex(kind)
		rtCreation[i] = metadata.TextureCreationParams{Type: metadata.TextureType2D, Width: offscreenSize, Height: offscreenSize}
		rtParams[i] = metadata.TextureParams{Format: metadata.TextureFormatRGBA, Width: offscreenSize, Height: offscreenSize}
	}
	s.renderTarget = ctx.NewRenderTarget(metadata.BufferTypeColorBit|metadata.BufferTypeDepthBit, rtCreation, rtParams)
	return nil
}

func (g *TestGame) Update(deltaTime float64) error {
	s := g.state()
	s.angle += float32(0.5 * deltaTime)
	return nil
}

func (g *TestGame) Render(ctx *graphics.Context, deltaTime float64) error {
	s := g.state()
	rotation := mgl32.HomogRotate3DZ(s.angle)

	// Offscreen pass: the checkerboard into the render target.
	ctx.SetRenderTarget(s.renderTarget, 0)
	ctx.SetViewport(0, 0, offscreenSize, offscreenSize)
	ctx.Clear(metadata.BufferTypeColorBit|metadata.BufferTypeDepthBit, 0, 0, 0, 255, 1, 0)
	g.drawQuad(ctx, s.texture, rotation, mgl32.Vec4{1, 1, 1, 1})

	// Main pass: the render target texture, aspect corrected.
	ctx.SetRenderTarget(0, 0)
	ctx.SetViewport(0, 0, int32(s.width), int32(s.height))
	ctx.Clear(metadata.BufferTypeColorBit|metadata.BufferTypeDepthBit, 32, 32, 48, 255, 1, 0)
	aspect := float32(1)
	if s.height != 0 {
		aspect = float32(s.width) / float32(s.height)
	}
	viewProj := mgl32.Ortho2D(-aspect, aspect, -1, 1).Mul4(rotation)
	ctx.EnableState(metadata.StateBlend)
	ctx.SetBlendFunc(metadata.BlendFactorSrcAlpha, metadata.BlendFactorOneMinusSrcAlpha)
	g.drawQuad(ctx, ctx.GetRenderTargetTexture(s.renderTarget, metadata.BufferTypeColorBit), viewProj, mgl32.Vec4{1, 0.8, 0.8, 1})
	ctx.DisableState(metadata.StateBlend)

	s.frames++
	if s.frames%600 == 0 {
		fps, frameTime := ctx.Metrics().Frame()
		core.LogDebug("fps %.1f, frame %.3fms, draws %d", fps, frameTime, ctx.GetDrawCount())
	}
	return nil
}

func (g *TestGame) drawQuad(ctx *graphics.Context, texture graphics.HTexture, viewProj mgl32.Mat4, tint mgl32.Vec4) {
	s := g.state()
	ctx.EnableProgram(s.program)
	if s.viewProjLocation != graphics.InvalidUniformLocation {
		ctx.SetConstantM4(viewProj, int(s.viewProjLocation))
	}
	if s.tintLocation != graphics.InvalidUniformLocation {
		ctx.SetConstantV4(tint, int(s.tintLocation))
	}
	ctx.EnableTexture(0, texture)
	ctx.EnableVertexDeclaration(s.declaration, s.vertexBuffer)
	ctx.DrawElements(metadata.PrimitiveTriangles, 0, 6, metadata.TypeUnsignedShort, s.indexBuffer)
	ctx.DisableVertexDeclaration(s.declaration)
	ctx.DisableTexture(0, texture)
	ctx.DisableProgram()
}

func (g *TestGame) OnResize(width uint32, height uint32) error {
	s := g.state()
	s.width = width
	s.height = height
	return nil
}

func (g *TestGame) Shutdown(ctx *graphics.Context) error {
	s := g.state()
	ctx.DeleteRenderTarget(s.renderTarget)
	ctx.DeleteTexture(s.texture)
	ctx.DeleteProgram(s.program)
	ctx.DeleteVertexProgram(s.vertexProgram)
	ctx.DeleteFragmentProgram(s.fragmentProgram)
	ctx.DeleteVertexDeclaration(s.declaration)
	ctx.DeleteIndexBuffer(s.indexBuffer)
	ctx.DeleteVertexBuffer(s.vertexBuffer)
	core.LogInfo("testbed shut down after %d frames", s.frames)
	return nil
}

func checkerboard(size, cell int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	light := color.NRGBA{R: 230, G: 230, B: 230, A: 255}
	dark := color.NRGBA{R: 40, G: 40, B: 40, A: 255}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x/cell+y/cell)%2 == 0 {
				img.SetNRGBA(x, y, light)
			} else {
				img.SetNRGBA(x, y, dark)
			}
		}
	}
	return img
}
