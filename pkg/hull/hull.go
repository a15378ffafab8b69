// Package hull implements Quickhull and the separating-axis test over
// convex polyhedra (spec §4.3): a fast broad-phase reject ahead of the
// exact curve/surface intersection math in pkg/intersect and pkg/bisect.
package hull

import (
	"github.com/chazu/geop/pkg/config"
	"github.com/chazu/geop/pkg/efloat"
	"github.com/chazu/geop/pkg/errs"
	"github.com/chazu/geop/pkg/vector"
	"gonum.org/v1/gonum/mat"
)

// Face is one oriented triangular facet, carried as indices into the
// owning Hull's Vertices plus its outward unit normal.
type Face struct {
	A, B, C int
	Normal  vector.Vec
}

// Hull is a triangulated convex polyhedron: every input point is
// either a hull vertex or lies within tolerance of some Face (spec §8
// property 9).
type Hull struct {
	Vertices []vector.Vec
	Faces    []Face
}

type edge struct{ a, b int }

// Build runs Quickhull over points (spec §4.3): seeds a tetrahedron
// from the four most extreme points, then repeatedly finds a point
// outside some face, removes every face it's outside of, and
// re-triangulates the resulting hole with a fan from the horizon
// edges to that point. Terminates when no remaining point is outside
// any face.
func Build(cfg config.Config, points []vector.Vec) (Hull, error) {
	if len(points) < 4 {
		return Hull{}, errs.New(errs.DegenerateConfiguration, "hull: need at least 4 points to build a polyhedron")
	}

	seed, err := seedTetrahedron(points)
	if err != nil {
		return Hull{}, err
	}
	faces, err := seedFaces(points, seed)
	if err != nil {
		return Hull{}, err
	}
	h := Hull{Vertices: points, Faces: faces}

	assigned := make(map[int]bool, 4)
	for _, i := range seed {
		assigned[i] = true
	}

	// A point whose signed distance is within EQ_THRESHOLD of zero is
	// treated as on the face, not outside it, so coplanar input jitter
	// can't make the loop below reprocess the same point forever.
	tol := efloat.New(cfg.EqThreshold)

	for {
		outsideIdx := -1
		for i := range points {
			if assigned[i] {
				continue
			}
			for _, f := range h.Faces {
				if efloat.Cmp(signedDistance(points, f, i), tol) == efloat.Greater {
					outsideIdx = i
					break
				}
			}
			if outsideIdx != -1 {
				break
			}
		}
		if outsideIdx == -1 {
			return h, nil
		}

		visible := make(map[int]bool)
		for fi, f := range h.Faces {
			if efloat.Cmp(signedDistance(points, f, outsideIdx), tol) == efloat.Greater {
				visible[fi] = true
			}
		}

		var horizon []edge
		kept := make([]Face, 0, len(h.Faces))
		for fi, f := range h.Faces {
			if !visible[fi] {
				kept = append(kept, f)
				continue
			}
			horizon = toggleEdge(horizon, edge{f.A, f.B})
			horizon = toggleEdge(horizon, edge{f.B, f.C})
			horizon = toggleEdge(horizon, edge{f.C, f.A})
		}

		for _, e := range horizon {
			n, err := faceNormal(points, e.a, e.b, outsideIdx)
			if err != nil {
				return Hull{}, err
			}
			kept = append(kept, Face{A: e.a, B: e.b, C: outsideIdx, Normal: n})
		}
		h.Faces = kept
		assigned[outsideIdx] = true
	}
}

// toggleEdge mirrors the GJK/EPA polytope-expansion idiom: an edge
// shared by two visible faces is interior to the removed region and
// cancels out; an edge appearing once is a horizon edge.
func toggleEdge(edges []edge, e edge) []edge {
	for i, cur := range edges {
		if (cur.a == e.a && cur.b == e.b) || (cur.a == e.b && cur.b == e.a) {
			return append(edges[:i], edges[i+1:]...)
		}
	}
	return append(edges, e)
}

func signedDistance(points []vector.Vec, f Face, pointIdx int) efloat.EFloat {
	rel := vector.Sub(points[pointIdx], points[f.A])
	return vector.Dot(f.Normal, rel)
}

func faceNormal(points []vector.Vec, a, b, c int) (vector.Vec, error) {
	ab := vector.Sub(points[b], points[a])
	ac := vector.Sub(points[c], points[a])
	n := vector.Cross(ab, ac)
	nz, err := efloat.NewNonZero(vector.Norm(n))
	if err != nil {
		return vector.Vec{}, errs.Wrap(err, "hull: degenerate (zero-area) face")
	}
	return vector.ScaleE(n, efloat.DivBy(efloat.New(1), nz)), nil
}

// tetrahedronVolumeSign computes the sign of 6x the signed tetrahedron
// volume via a gonum dense-matrix determinant on plain float64
// midpoints (the fast, uncertified path), used only to decide winding
// order; the resulting face normal is rebuilt and certified immediately
// afterward by faceNormal.
func tetrahedronVolumeSign(points []vector.Vec, a, b, c, d int) float64 {
	pa, pb, pc, pd := points[a], points[b], points[c], points[d]
	m := mat.NewDense(3, 3, []float64{
		pb.X.Mid() - pa.X.Mid(), pb.Y.Mid() - pa.Y.Mid(), pb.Z.Mid() - pa.Z.Mid(),
		pc.X.Mid() - pa.X.Mid(), pc.Y.Mid() - pa.Y.Mid(), pc.Z.Mid() - pa.Z.Mid(),
		pd.X.Mid() - pa.X.Mid(), pd.Y.Mid() - pa.Y.Mid(), pd.Z.Mid() - pa.Z.Mid(),
	})
	return mat.Det(m)
}

// orientTriple returns (i, j, k) in the winding order whose normal
// points away from apex.
func orientTriple(points []vector.Vec, i, j, k, apex int) (int, int, int) {
	if tetrahedronVolumeSign(points, i, j, k, apex) > 0 {
		return i, k, j
	}
	return i, j, k
}

// seedFaces builds the seed tetrahedron's four faces, each oriented
// away from its opposite vertex via orientTriple, per spec §4.3
// ("orientation chosen so that the fourth point is on the negative
// side of the seed triangle") generalized to all four faces.
func seedFaces(points []vector.Vec, seed [4]int) ([]Face, error) {
	a, b, c, d := seed[0], seed[1], seed[2], seed[3]
	combos := [4][4]int{
		{b, c, d, a},
		{a, c, d, b},
		{a, b, d, c},
		{a, b, c, d},
	}
	faces := make([]Face, 0, 4)
	for _, combo := range combos {
		oi, oj, ok := orientTriple(points, combo[0], combo[1], combo[2], combo[3])
		n, err := faceNormal(points, oi, oj, ok)
		if err != nil {
			return nil, err
		}
		faces = append(faces, Face{A: oi, B: oj, C: ok, Normal: n})
	}
	return faces, nil
}

func midOf(v vector.Vec) [3]float64 { return [3]float64{v.X.Mid(), v.Y.Mid(), v.Z.Mid()} }

func subMid(a, b [3]float64) [3]float64 {
	return [3]float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func dotMid(a, b [3]float64) float64 { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }

func crossMid(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// seedTetrahedron picks the four extreme points spec §4.3 names: two
// extrema along x, the point farthest from that line, and the point
// farthest from that triangle's plane. Selection uses each point's
// midpoint coordinates (a heuristic pick, not a certified decision —
// any sufficiently non-degenerate choice of four points works, and
// seedFaces re-derives the certified outward normals afterward).
func seedTetrahedron(points []vector.Vec) ([4]int, error) {
	minI, maxI := 0, 0
	for i, p := range points {
		if p.X.Mid() < points[minI].X.Mid() {
			minI = i
		}
		if p.X.Mid() > points[maxI].X.Mid() {
			maxI = i
		}
	}
	if minI == maxI {
		return [4]int{}, errs.New(errs.DegenerateConfiguration, "hull: all points coincide on the x axis")
	}

	lineOrigin := midOf(points[minI])
	lineDir := subMid(midOf(points[maxI]), lineOrigin)
	lineDirSq := dotMid(lineDir, lineDir)

	thirdI, thirdDist := -1, 0.0
	for i, p := range points {
		if i == minI || i == maxI {
			continue
		}
		rel := subMid(midOf(p), lineOrigin)
		t := dotMid(rel, lineDir) / lineDirSq
		proj := [3]float64{lineDir[0] * t, lineDir[1] * t, lineDir[2] * t}
		perp := subMid(rel, proj)
		d := dotMid(perp, perp)
		if d > thirdDist {
			thirdDist, thirdI = d, i
		}
	}
	if thirdI == -1 || thirdDist == 0 {
		return [4]int{}, errs.New(errs.DegenerateConfiguration, "hull: all points are collinear")
	}

	planeOrigin := midOf(points[minI])
	planeNormal := crossMid(subMid(midOf(points[maxI]), planeOrigin), subMid(midOf(points[thirdI]), planeOrigin))

	fourthI, fourthDist := -1, 0.0
	for i, p := range points {
		if i == minI || i == maxI || i == thirdI {
			continue
		}
		rel := subMid(midOf(p), planeOrigin)
		d := dotMid(rel, planeNormal)
		if d < 0 {
			d = -d
		}
		if d > fourthDist {
			fourthDist, fourthI = d, i
		}
	}
	if fourthI == -1 || fourthDist == 0 {
		return [4]int{}, errs.New(errs.DegenerateConfiguration, "hull: all points are coplanar")
	}

	return [4]int{minI, maxI, thirdI, fourthI}, nil
}
