package hull

import (
	"github.com/chazu/geop/pkg/efloat"
	"github.com/chazu/geop/pkg/vector"
)

// Intersects runs the separating-axis test (spec §4.3) between two
// convex polyhedra: projects both hulls onto every face normal and
// every pair of edge-direction cross products, and reports false the
// moment some axis's projected intervals are definitely disjoint.
// Exhausting every axis without finding a separating one proves the
// hulls intersect. Degenerate axes (parallel edges, zero-norm cross
// product) are skipped.
func Intersects(a, b Hull) bool {
	for _, f := range a.Faces {
		if separates(f.Normal, a, b) {
			return false
		}
	}
	for _, f := range b.Faces {
		if separates(f.Normal, a, b) {
			return false
		}
	}

	aEdges := edgeDirections(a)
	bEdges := edgeDirections(b)
	for _, ea := range aEdges {
		for _, eb := range bEdges {
			axis := vector.Cross(ea, eb)
			if isZeroAxis(axis) {
				continue
			}
			if separates(axis, a, b) {
				return false
			}
		}
	}
	return true
}

func isZeroAxis(v vector.Vec) bool {
	return efloat.Equal(vector.NormSquared(v), efloat.Zero())
}

func edgeDirections(h Hull) []vector.Vec {
	seen := make(map[edge]bool)
	var dirs []vector.Vec
	add := func(i, j int) {
		e := edge{i, j}
		if i > j {
			e = edge{j, i}
		}
		if seen[e] {
			return
		}
		seen[e] = true
		dirs = append(dirs, vector.Sub(h.Vertices[j], h.Vertices[i]))
	}
	for _, f := range h.Faces {
		add(f.A, f.B)
		add(f.B, f.C)
		add(f.C, f.A)
	}
	return dirs
}

// separates reports whether axis separates a and b: their 1-D
// projections onto axis are definitely disjoint intervals.
func separates(axis vector.Vec, a, b Hull) bool {
	aLo, aHi := projectExtent(axis, a)
	bLo, bHi := projectExtent(axis, b)
	return efloat.Cmp(aHi, bLo) == efloat.Less || efloat.Cmp(bHi, aLo) == efloat.Less
}

func projectExtent(axis vector.Vec, h Hull) (efloat.EFloat, efloat.EFloat) {
	lo := vector.Dot(axis, h.Vertices[0])
	hi := lo
	for _, v := range h.Vertices[1:] {
		d := vector.Dot(axis, v)
		lo = efloat.Min(lo, d)
		hi = efloat.Max(hi, d)
	}
	return lo, hi
}
