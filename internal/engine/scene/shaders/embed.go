// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// TerrainVertexShader is the vertex shader for terrain rendering.
//
//go:embed terrain.vert
var TerrainVertexShader string

// TerrainFragmentShader is the fragment shader for terrain rendering.
//
//go:embed terrain.frag
var TerrainFragmentShader string

// WaterVertexShader is the vertex shader for water rendering.
//
//go:embed water.vert
var WaterVertexShader string

// WaterFragmentShader is the fragment shader for water rendering.
//
//go:embed water.frag
var WaterFragmentShader string
