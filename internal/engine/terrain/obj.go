package terrain

import (
	"bufio"
	"fmt"
	"io"
)

// WriteOBJ writes the mesh as Wavefront OBJ with one group per non-empty
// submesh. OBJ indices are 1-based.
func (mesh *Mesh) WriteOBJ(w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# terrain size %d, %d vertices, %d triangles\n",
		mesh.Size, len(mesh.Positions), mesh.IndexCount()/3)
	for _, p := range mesh.Positions {
		fmt.Fprintf(bw, "v %g %g %g\n", p.X(), p.Y(), p.Z())
	}
	for _, uv := range mesh.UVs {
		fmt.Fprintf(bw, "vt %g %g\n", uv.X(), uv.Y())
	}
	for _, n := range mesh.Normals {
		fmt.Fprintf(bw, "vn %g %g %g\n", n.X(), n.Y(), n.Z())
	}

	for _, s := range mesh.Submeshes {
		if len(s.Indices) == 0 {
			continue
		}
		fmt.Fprintf(bw, "g %s\nusemtl %s\n", s.Biome, s.Biome)
		for i := 0; i+2 < len(s.Indices); i += 3 {
			a, b, c := s.Indices[i]+1, s.Indices[i+1]+1, s.Indices[i+2]+1
			fmt.Fprintf(bw, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
		}
	}

	return bw.Flush()
}
