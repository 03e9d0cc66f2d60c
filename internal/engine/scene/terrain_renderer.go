// Package scene renders a procedural terrain footprint and its water plane.
package scene

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/midgard-terrain/internal/engine/scene/shaders"
	"github.com/Faultbox/midgard-terrain/internal/engine/shader"
	"github.com/Faultbox/midgard-terrain/internal/engine/terrain"
)

// TerrainRenderer draws the latest terrain mesh, one draw call per biome group.
type TerrainRenderer struct {
	// Shader
	program uint32

	// Uniform locations
	locViewProj   int32
	locBiomeColor int32
	locLightDir   int32
	locAmbient    int32
	locDiffuse    int32

	// Terrain mesh
	vao    uint32
	vbo    uint32
	ebo    uint32
	groups []terrain.Group

	palette terrain.Palette

	// Bounds
	Bounds terrain.Bounds
}

// NewTerrainRenderer creates a terrain renderer. Requires a current GL context.
func NewTerrainRenderer(palette terrain.Palette) (*TerrainRenderer, error) {
	tr := &TerrainRenderer{palette: palette}

	program, err := shader.CompileProgram(shaders.TerrainVertexShader, shaders.TerrainFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("terrain shader: %w", err)
	}
	tr.program = program

	locs, err := shader.RequireUniforms(program, "uViewProj", "uBiomeColor", "uLightDir", "uAmbient", "uDiffuse")
	if err != nil {
		gl.DeleteProgram(program)
		return nil, fmt.Errorf("terrain shader: %w", err)
	}
	tr.locViewProj = locs["uViewProj"]
	tr.locBiomeColor = locs["uBiomeColor"]
	tr.locLightDir = locs["uLightDir"]
	tr.locAmbient = locs["uAmbient"]
	tr.locDiffuse = locs["uDiffuse"]

	return tr, nil
}

// SetMesh replaces the GPU buffers with mesh.
func (tr *TerrainRenderer) SetMesh(mesh *terrain.Mesh) error {
	if err := mesh.Validate(); err != nil {
		return err
	}

	tr.clearTerrain()

	indices, groups := mesh.Flatten()
	tr.groups = groups
	tr.Bounds = mesh.Bounds
	tr.uploadTerrainMesh(mesh.Interleave(), indices)
	return nil
}

func (tr *TerrainRenderer) uploadTerrainMesh(vertices []terrain.Vertex, indices []uint32) {
	gl.GenVertexArrays(1, &tr.vao)
	gl.BindVertexArray(tr.vao)

	// VBO
	gl.GenBuffers(1, &tr.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, tr.vbo)
	vertexSize := int(unsafe.Sizeof(terrain.Vertex{}))
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*vertexSize, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	// Position (location 0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(vertexSize), 0)
	gl.EnableVertexAttribArray(0)

	// Normal (location 1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, int32(vertexSize), 3*4)
	gl.EnableVertexAttribArray(1)

	// TexCoord (location 2)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, int32(vertexSize), 6*4)
	gl.EnableVertexAttribArray(2)

	// EBO
	gl.GenBuffers(1, &tr.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, tr.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
}

// Render draws the terrain.
func (tr *TerrainRenderer) Render(viewProj mgl32.Mat4, light Light) {
	if tr.vao == 0 {
		return
	}

	gl.UseProgram(tr.program)

	gl.UniformMatrix4fv(tr.locViewProj, 1, false, &viewProj[0])
	gl.Uniform3f(tr.locLightDir, light.Direction.X(), light.Direction.Y(), light.Direction.Z())
	gl.Uniform3f(tr.locAmbient, light.Ambient.X(), light.Ambient.Y(), light.Ambient.Z())
	gl.Uniform3f(tr.locDiffuse, light.Diffuse.X(), light.Diffuse.Y(), light.Diffuse.Z())

	gl.BindVertexArray(tr.vao)
	for _, group := range tr.groups {
		c := tr.palette.Color(group.Biome)
		gl.Uniform3f(tr.locBiomeColor, c.X(), c.Y(), c.Z())
		gl.DrawElementsWithOffset(gl.TRIANGLES, group.IndexCount, gl.UNSIGNED_INT, uintptr(group.StartIndex*4))
	}
	gl.BindVertexArray(0)
}

func (tr *TerrainRenderer) clearTerrain() {
	if tr.vao != 0 {
		gl.DeleteVertexArrays(1, &tr.vao)
		tr.vao = 0
	}
	if tr.vbo != 0 {
		gl.DeleteBuffers(1, &tr.vbo)
		tr.vbo = 0
	}
	if tr.ebo != 0 {
		gl.DeleteBuffers(1, &tr.ebo)
		tr.ebo = 0
	}
	tr.groups = nil
}

// Destroy releases all resources.
func (tr *TerrainRenderer) Destroy() {
	tr.clearTerrain()
	if tr.program != 0 {
		gl.DeleteProgram(tr.program)
		tr.program = 0
	}
}
