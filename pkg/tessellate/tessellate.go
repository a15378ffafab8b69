// Package tessellate walks B-rep topology (edges, faces, shells) and
// produces sampled geometry for the visualization bridge (spec §6):
// one mesh.Mesh per face, one mesh.Segments polyline per edge, and a
// mesh.Points glyph list for a shell's vertices. It never mutates the
// topology it reads.
package tessellate

import (
	"github.com/chazu/geop/pkg/config"
	"github.com/chazu/geop/pkg/containment"
	"github.com/chazu/geop/pkg/curve"
	"github.com/chazu/geop/pkg/efloat"
	"github.com/chazu/geop/pkg/errs"
	"github.com/chazu/geop/pkg/mesh"
	"github.com/chazu/geop/pkg/surface"
	"github.com/chazu/geop/pkg/topology"
	"github.com/chazu/geop/pkg/vector"
)

// DefaultDensity is the per-dimension sample count used when callers
// don't need finer control.
const DefaultDensity = 16

// Edge samples e into a line-strip polyline. e must be bounded at
// both ends (unbounded curves have no finite sample range to draw).
func Edge(cfg config.Config, e topology.Edge, density int, color mesh.Color) (*mesh.Segments, error) {
	if density < 2 {
		return nil, errs.New(errs.DomainError, "tessellate.Edge: density must be at least 2")
	}
	if e.Start == nil || e.End == nil {
		return nil, errs.New(errs.DomainError, "tessellate.Edge: cannot sample an unbounded edge")
	}

	seg := &mesh.Segments{Color: color, Points: make([]float32, 0, density*3)}
	for i := 0; i < density; i++ {
		t := efloat.New(float64(i) / float64(density-1))
		p, err := curve.Interpolate(e.Curve, cfg, e.Start, e.End, t)
		if err != nil {
			return nil, errs.Wrapf(err, "tessellate.Edge: sampling point %d", i)
		}
		seg.Points = append(seg.Points, float32(p.X.Mid()), float32(p.Y.Mid()), float32(p.Z.Mid()))
	}
	return seg, nil
}

// Vertices collects a glyph point for every distinct vertex in shell.
func Vertices(shell topology.Shell, color mesh.Color) *mesh.Points {
	seen := make(map[vector.Vec]bool)
	pts := &mesh.Points{Color: color}
	for _, f := range shell.Faces {
		for _, e := range f.AllEdges() {
			for _, v := range []*vector.Vec{e.Start, e.End} {
				if v == nil || seen[*v] {
					continue
				}
				seen[*v] = true
				pts.Points = append(pts.Points, float32(v.X.Mid()), float32(v.Y.Mid()), float32(v.Z.Mid()))
			}
		}
	}
	return pts
}

// Face samples f's surface on a regular parametric grid and keeps the
// quads whose four corners all lie in or on f, triangulating each
// surviving quad into two triangles. This is a visualization
// approximation, not an exact boundary-conforming triangulation: grid
// cells straddling f's boundary are dropped rather than clipped.
func Face(cfg config.Config, f topology.Face, density int, color mesh.Color) (*mesh.Mesh, error) {
	if density < 2 {
		return nil, errs.New(errs.DomainError, "tessellate.Face: density must be at least 2")
	}
	grid, err := surface.PointGrid(f.Surface, density)
	if err != nil {
		return nil, errs.Wrap(err, "tessellate.Face: sampling surface grid")
	}

	inside := make([]bool, len(grid))
	for i, p := range grid {
		res, err := containment.PointInFace(cfg, f, p)
		if err != nil {
			if errs.Is(err, errs.IndeterminateCorner) {
				continue
			}
			return nil, errs.Wrapf(err, "tessellate.Face: classifying grid point %d", i)
		}
		inside[i] = res.State != containment.FaceOutside && res.State != containment.FaceNotOnSurface
	}

	m := &mesh.Mesh{Color: color}
	index := make(map[int]uint32)
	addVertex := func(i int) (uint32, error) {
		if idx, ok := index[i]; ok {
			return idx, nil
		}
		n, err := surface.Normal(f.Surface, grid[i])
		if err != nil {
			return 0, errs.Wrap(err, "tessellate.Face: computing vertex normal")
		}
		idx := uint32(len(m.Vertices) / 3)
		m.Vertices = append(m.Vertices, float32(grid[i].X.Mid()), float32(grid[i].Y.Mid()), float32(grid[i].Z.Mid()))
		m.Normals = append(m.Normals, float32(n.X.Mid()), float32(n.Y.Mid()), float32(n.Z.Mid()))
		index[i] = idx
		return idx, nil
	}

	for row := 0; row < density-1; row++ {
		for col := 0; col < density-1; col++ {
			i00 := row*density + col
			i01 := row*density + col + 1
			i10 := (row+1)*density + col
			i11 := (row+1)*density + col + 1
			if !(inside[i00] && inside[i01] && inside[i10] && inside[i11]) {
				continue
			}
			v00, err := addVertex(i00)
			if err != nil {
				return nil, err
			}
			v01, err := addVertex(i01)
			if err != nil {
				return nil, err
			}
			v10, err := addVertex(i10)
			if err != nil {
				return nil, err
			}
			v11, err := addVertex(i11)
			if err != nil {
				return nil, err
			}
			m.Indices = append(m.Indices, v00, v10, v11, v00, v11, v01)
		}
	}
	m.PartName = f.ID.String()
	return m, nil
}

// Shell samples every face of shell into a mesh, returning one
// mesh.Mesh per face.
func Shell(cfg config.Config, shell topology.Shell, density int, color mesh.Color) ([]*mesh.Mesh, error) {
	meshes := make([]*mesh.Mesh, 0, len(shell.Faces))
	for _, f := range shell.Faces {
		m, err := Face(cfg, f, density, color)
		if err != nil {
			return nil, errs.Wrapf(err, "tessellate.Shell: face %s", f.ID)
		}
		meshes = append(meshes, m)
	}
	return meshes, nil
}
