package terrain

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/midgard-terrain/internal/engine/biome"
)

// ErrDegenerateMesh reports vertex or index buffers that break the grid invariants.
var ErrDegenerateMesh = errors.New("terrain: degenerate mesh")

// GridOrigin returns the world position of cell (0, 0) at zero height.
// centerX and centerZ are the fractions of the footprint placed behind the
// follower along each axis.
func GridOrigin(follower mgl32.Vec3, size int, centerX, centerZ float64, baseY float32) mgl32.Vec3 {
	return mgl32.Vec3{
		follower.X() - float32(float64(size)*centerX),
		baseY,
		follower.Z() - float32(float64(size)*centerZ),
	}
}

// Mesher turns a height function and a biome function into a partitioned mesh.
// Buffers are rebuilt from scratch by each Build call.
type Mesher struct {
	size      int
	positions []mgl32.Vec3
	uvs       []mgl32.Vec2
	buckets   [biome.Count][]uint32
}

// NewMesher returns an empty mesher.
func NewMesher() *Mesher {
	return &Mesher{}
}

// VertexIndex returns the vertex buffer index of grid coordinate (x, z).
func VertexIndex(size, x, z int) int {
	return x*(size+1) + z
}

// BuildVertices lays out one vertex per grid coordinate, x-major, at
// origin + (x, heightFn(x, z), z).
func (m *Mesher) BuildVertices(size int, origin mgl32.Vec3, heightFn func(x, z int) float64) {
	m.size = size
	n := (size + 1) * (size + 1)
	m.positions = make([]mgl32.Vec3, n)
	m.uvs = make([]mgl32.Vec2, n)

	for i, x := 0, 0; x <= size; x++ {
		for z := 0; z <= size; z++ {
			y := float32(heightFn(x, z))
			m.positions[i] = mgl32.Vec3{origin.X() + float32(x), origin.Y() + y, origin.Z() + float32(z)}
			m.uvs[i] = mgl32.Vec2{float32(x) / float32(size), float32(z) / float32(size)}
			i++
		}
	}
}

// BuildTriangles emits two triangles per grid quad into the bucket of the
// quad's anchor biome, then reverses every bucket so the surface faces +Y.
func (m *Mesher) BuildTriangles(size int, biomeFn func(x, z int) biome.Biome) {
	perBucket := size * size * 6
	for b := range m.buckets {
		m.buckets[b] = make([]uint32, 0, perBucket/biome.Count+6)
	}

	stride := uint32(size + 1)
	for x := 0; x < size; x++ {
		for z := 0; z < size; z++ {
			v := uint32(VertexIndex(size, x, z))
			b := biomeFn(x, z)
			m.buckets[b] = append(m.buckets[b],
				v, v+stride, v+1,
				v+1, v+stride, v+stride+1,
			)
		}
	}

	for _, indices := range m.buckets {
		reverseIndices(indices)
	}
}

func reverseIndices(s []uint32) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// Submeshes returns the per-biome index lists in biome order.
func (m *Mesher) Submeshes() []Submesh {
	subs := make([]Submesh, biome.Count)
	for b, indices := range m.buckets {
		subs[b] = Submesh{Biome: biome.Biome(b), Indices: indices}
	}
	return subs
}

// Mesh assembles the built buffers with normals and bounds.
func (m *Mesher) Mesh() *Mesh {
	mesh := &Mesh{
		Size:      m.size,
		Positions: m.positions,
		UVs:       m.uvs,
		Submeshes: m.Submeshes(),
	}
	mesh.Normals = computeNormals(mesh.Positions, mesh.Submeshes)
	mesh.Bounds = computeBounds(mesh.Positions)
	return mesh
}

// IndexCount returns the total number of indices across submeshes.
func (mesh *Mesh) IndexCount() int {
	total := 0
	for _, s := range mesh.Submeshes {
		total += len(s.Indices)
	}
	return total
}

// Validate checks the buffer invariants for mesh.Size.
func (mesh *Mesh) Validate() error {
	size := mesh.Size
	if size <= 0 {
		return fmt.Errorf("%w: size %d", ErrDegenerateMesh, size)
	}
	wantVerts := (size + 1) * (size + 1)
	if len(mesh.Positions) != wantVerts {
		return fmt.Errorf("%w: %d vertices, want %d", ErrDegenerateMesh, len(mesh.Positions), wantVerts)
	}
	if len(mesh.UVs) != wantVerts || len(mesh.Normals) != wantVerts {
		return fmt.Errorf("%w: %d uvs and %d normals, want %d", ErrDegenerateMesh, len(mesh.UVs), len(mesh.Normals), wantVerts)
	}
	if len(mesh.Submeshes) != biome.Count {
		return fmt.Errorf("%w: %d submeshes, want %d", ErrDegenerateMesh, len(mesh.Submeshes), biome.Count)
	}
	if got, want := mesh.IndexCount(), size*size*6; got != want {
		return fmt.Errorf("%w: %d indices, want %d", ErrDegenerateMesh, got, want)
	}
	for _, s := range mesh.Submeshes {
		if len(s.Indices)%3 != 0 {
			return fmt.Errorf("%w: submesh %s has %d indices", ErrDegenerateMesh, s.Biome, len(s.Indices))
		}
		for _, idx := range s.Indices {
			if int(idx) >= wantVerts {
				return fmt.Errorf("%w: submesh %s index %d out of range", ErrDegenerateMesh, s.Biome, idx)
			}
		}
	}
	return nil
}

// Flatten concatenates the submeshes into one index buffer with a group per
// non-empty submesh.
func (mesh *Mesh) Flatten() ([]uint32, []Group) {
	indices := make([]uint32, 0, mesh.IndexCount())
	var groups []Group
	for _, s := range mesh.Submeshes {
		if len(s.Indices) == 0 {
			continue
		}
		groups = append(groups, Group{
			Biome:      s.Biome,
			StartIndex: int32(len(indices)),
			IndexCount: int32(len(s.Indices)),
		})
		indices = append(indices, s.Indices...)
	}
	return indices, groups
}

// Interleave packs positions, normals and UVs into GPU vertices.
func (mesh *Mesh) Interleave() []Vertex {
	out := make([]Vertex, len(mesh.Positions))
	for i := range mesh.Positions {
		out[i].Position = mesh.Positions[i]
		if i < len(mesh.Normals) {
			out[i].Normal = mesh.Normals[i]
		}
		if i < len(mesh.UVs) {
			out[i].TexCoord = mesh.UVs[i]
		}
	}
	return out
}

// computeNormals accumulates area-weighted face normals on shared vertices.
func computeNormals(positions []mgl32.Vec3, subs []Submesh) []mgl32.Vec3 {
	normals := make([]mgl32.Vec3, len(positions))
	for _, s := range subs {
		for i := 0; i+2 < len(s.Indices); i += 3 {
			a, b, c := s.Indices[i], s.Indices[i+1], s.Indices[i+2]
			n := positions[b].Sub(positions[a]).Cross(positions[c].Sub(positions[a]))
			normals[a] = normals[a].Add(n)
			normals[b] = normals[b].Add(n)
			normals[c] = normals[c].Add(n)
		}
	}
	for i, n := range normals {
		if n.Len() < 0.0001 {
			normals[i] = mgl32.Vec3{0, 1, 0}
			continue
		}
		normals[i] = n.Normalize()
	}
	return normals
}

func computeBounds(positions []mgl32.Vec3) Bounds {
	if len(positions) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: positions[0], Max: positions[0]}
	for _, p := range positions[1:] {
		for axis := 0; axis < 3; axis++ {
			if p[axis] < b.Min[axis] {
				b.Min[axis] = p[axis]
			}
			if p[axis] > b.Max[axis] {
				b.Max[axis] = p[axis]
			}
		}
	}
	return b
}
