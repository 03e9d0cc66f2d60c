package biome

import "fmt"

// Grid is a dense (size+1)x(size+1) biome label container.
//
// Cells are stored x-major: Index(x, z) = x*(size+1) + z. The terrain vertex
// buffer uses the same mapping, so a cell index is also its vertex index.
type Grid struct {
	size   int
	stride int
	cells  []Biome
}

// NewGrid allocates a grid for a terrain of the given size, all cells Baseline.
func NewGrid(size int) *Grid {
	if size < 0 {
		size = 0
	}
	stride := size + 1
	return &Grid{
		size:   size,
		stride: stride,
		cells:  make([]Biome, stride*stride),
	}
}

// Size returns the terrain size (cells per side minus one).
func (g *Grid) Size() int { return g.size }

// Len returns the number of cells.
func (g *Grid) Len() int { return len(g.cells) }

// Cells exposes the backing slice in Index order.
func (g *Grid) Cells() []Biome { return g.cells }

// InBounds reports whether (x, z) addresses a cell.
func (g *Grid) InBounds(x, z int) bool {
	return x >= 0 && z >= 0 && x <= g.size && z <= g.size
}

// Index returns the linear index for (x, z). Panics when out of range.
func (g *Grid) Index(x, z int) int {
	if !g.InBounds(x, z) {
		panic(fmt.Sprintf("biome: cell (%d,%d) outside grid [0,%d]", x, z, g.size))
	}
	return x*g.stride + z
}

// At returns the biome at (x, z).
func (g *Grid) At(x, z int) Biome {
	return g.cells[g.Index(x, z)]
}

// Set assigns the biome at (x, z).
func (g *Grid) Set(x, z int, b Biome) {
	g.cells[g.Index(x, z)] = b
}

// Fill sets every cell to b.
func (g *Grid) Fill(b Biome) {
	for i := range g.cells {
		g.cells[i] = b
	}
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{size: g.size, stride: g.stride, cells: make([]Biome, len(g.cells))}
	copy(c.cells, g.cells)
	return c
}

// NeighborCount counts the up-to-8 neighbors of (x, z) labeled b.
// Neighbors outside the grid are skipped; there is no wraparound.
func (g *Grid) NeighborCount(x, z int, b Biome) int {
	count := 0
	for dx := -1; dx <= 1; dx++ {
		for dz := -1; dz <= 1; dz++ {
			if dx == 0 && dz == 0 {
				continue
			}
			nx, nz := x+dx, z+dz
			if !g.InBounds(nx, nz) {
				continue
			}
			if g.cells[nx*g.stride+nz] == b {
				count++
			}
		}
	}
	return count
}

// NeighborSlots returns how many in-grid neighbors (x, z) has.
func (g *Grid) NeighborSlots(x, z int) int {
	slots := 0
	for dx := -1; dx <= 1; dx++ {
		for dz := -1; dz <= 1; dz++ {
			if (dx != 0 || dz != 0) && g.InBounds(x+dx, z+dz) {
				slots++
			}
		}
	}
	return slots
}

// Counts returns the number of cells per biome, indexed by Biome.
func (g *Grid) Counts() [Count]int {
	var counts [Count]int
	for _, b := range g.cells {
		if b.Valid() {
			counts[b]++
		}
	}
	return counts
}
