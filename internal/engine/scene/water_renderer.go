package scene

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/midgard-terrain/internal/engine/scene/shaders"
	"github.com/Faultbox/midgard-terrain/internal/engine/shader"
	"github.com/Faultbox/midgard-terrain/internal/engine/water"
)

// WaterRenderer draws the translucent water plane that travels with the terrain.
type WaterRenderer struct {
	// Shader
	program uint32

	// Uniform locations
	locViewProj   int32
	locWaterColor int32
	locTime       int32

	// Mesh
	vao uint32
	vbo uint32

	// Water properties
	Color     mgl32.Vec4
	placement water.Placement
	hasWater  bool
	waterTime float32
}

// NewWaterRenderer creates a water renderer. Requires a current GL context.
func NewWaterRenderer() (*WaterRenderer, error) {
	wr := &WaterRenderer{
		Color: mgl32.Vec4{0.2, 0.4, 0.6, 0.7},
	}

	program, err := shader.CompileProgram(shaders.WaterVertexShader, shaders.WaterFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("water shader: %w", err)
	}
	wr.program = program

	wr.locViewProj = shader.GetUniform(program, "uViewProj")
	wr.locWaterColor = shader.GetUniform(program, "uWaterColor")
	wr.locTime = shader.GetUniform(program, "uTime")

	// Four vertices, rewritten on every placement.
	gl.GenVertexArrays(1, &wr.vao)
	gl.BindVertexArray(wr.vao)

	gl.GenBuffers(1, &wr.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, wr.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, 4*3*4, nil, gl.DYNAMIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)

	gl.BindVertexArray(0)

	return wr, nil
}

// SetPlacement moves the water plane to p.
func (wr *WaterRenderer) SetPlacement(p water.Placement) {
	wr.placement = p
	wr.hasWater = true

	plane := p.Plane()
	gl.BindBuffer(gl.ARRAY_BUFFER, wr.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(plane.Vertices)*4, unsafe.Pointer(&plane.Vertices[0]))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// Placement returns the current water transform.
func (wr *WaterRenderer) Placement() water.Placement {
	return wr.placement
}

// Update advances the ripple animation by dt seconds.
func (wr *WaterRenderer) Update(dt float32) {
	wr.waterTime += dt
}

// Render draws the water plane.
func (wr *WaterRenderer) Render(viewProj mgl32.Mat4) {
	if !wr.hasWater || wr.vao == 0 {
		return
	}

	gl.UseProgram(wr.program)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.DepthMask(false)

	gl.UniformMatrix4fv(wr.locViewProj, 1, false, &viewProj[0])
	gl.Uniform4f(wr.locWaterColor, wr.Color.X(), wr.Color.Y(), wr.Color.Z(), wr.Color.W())
	gl.Uniform1f(wr.locTime, wr.waterTime)

	gl.BindVertexArray(wr.vao)
	gl.DrawArrays(gl.TRIANGLE_FAN, 0, 4)
	gl.BindVertexArray(0)

	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
}

// Destroy releases all resources.
func (wr *WaterRenderer) Destroy() {
	if wr.vao != 0 {
		gl.DeleteVertexArrays(1, &wr.vao)
		wr.vao = 0
	}
	if wr.vbo != 0 {
		gl.DeleteBuffers(1, &wr.vbo)
		wr.vbo = 0
	}
	if wr.program != 0 {
		gl.DeleteProgram(wr.program)
		wr.program = 0
	}
}
