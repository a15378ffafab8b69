package boolean_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chazu/geop/pkg/boolean"
	"github.com/chazu/geop/pkg/config"
	"github.com/chazu/geop/pkg/curve"
	"github.com/chazu/geop/pkg/surface"
	"github.com/chazu/geop/pkg/topology"
	"github.com/chazu/geop/pkg/vector"
)

func lineEdge(t *testing.T, a, b vector.Vec) topology.Edge {
	t.Helper()
	c, err := curve.NewLine(a, vector.Sub(b, a))
	require.NoError(t, err)
	e, err := topology.NewEdge(&a, &b, c)
	require.NoError(t, err)
	return e
}

func square(t *testing.T, origin vector.Vec, side float64) topology.Face {
	t.Helper()
	cfg := config.DefaultConfig()
	p0 := origin
	p1 := vector.Add(origin, vector.New(side, 0, 0))
	p2 := vector.Add(origin, vector.New(side, side, 0))
	p3 := vector.Add(origin, vector.New(0, side, 0))
	loop, err := topology.NewContour([]topology.Edge{
		lineEdge(t, p0, p1), lineEdge(t, p1, p2), lineEdge(t, p2, p3), lineEdge(t, p3, p0),
	})
	require.NoError(t, err)
	plane, err := surface.NewPlane(p0, vector.New(0, 0, 1))
	require.NoError(t, err)
	f, err := topology.NewFace(cfg, []topology.Contour{loop}, plane)
	require.NoError(t, err)
	return f
}

func TestUnionOfCoincidentSquaresReturnsOneFace(t *testing.T) {
	cfg := config.DefaultConfig()
	a := square(t, vector.New(0, 0, 0), 1)
	b := square(t, vector.New(0, 0, 0), 1)

	faces, err := boolean.UnionFaces(cfg, a, b)
	require.NoError(t, err)
	require.Len(t, faces, 1)
	require.Len(t, faces[0].Boundaries, 1)
	require.Len(t, faces[0].Boundaries[0].Edges, 4)
}

func cubeShell(t *testing.T, origin vector.Vec, side float64) topology.Shell {
	t.Helper()
	cfg := config.DefaultConfig()
	v := func(x, y, z float64) vector.Vec { return vector.Add(origin, vector.New(x, y, z)) }
	n := vector.New
	mk := func(normal vector.Vec, pts ...vector.Vec) topology.Face {
		edges := make([]topology.Edge, len(pts))
		for i := range pts {
			edges[i] = lineEdge(t, pts[i], pts[(i+1)%len(pts)])
		}
		loop, err := topology.NewContour(edges)
		require.NoError(t, err)
		plane, err := surface.NewPlane(pts[0], normal)
		require.NoError(t, err)
		f, err := topology.NewFace(cfg, []topology.Contour{loop}, plane)
		require.NoError(t, err)
		return f
	}
	s := side
	faces := []topology.Face{
		mk(n(0, 0, -1), v(0, 0, 0), v(0, s, 0), v(s, s, 0), v(s, 0, 0)),
		mk(n(0, 0, 1), v(0, 0, s), v(s, 0, s), v(s, s, s), v(0, s, s)),
		mk(n(0, -1, 0), v(0, 0, 0), v(s, 0, 0), v(s, 0, s), v(0, 0, s)),
		mk(n(0, 1, 0), v(0, s, 0), v(0, s, s), v(s, s, s), v(s, s, 0)),
		mk(n(-1, 0, 0), v(0, 0, 0), v(0, 0, s), v(0, s, s), v(0, s, 0)),
		mk(n(1, 0, 0), v(s, 0, 0), v(s, s, 0), v(s, s, s), v(s, 0, s)),
	}
	shell, err := topology.NewShell(cfg, faces)
	require.NoError(t, err)
	return shell
}

func TestVolumesDisjointCubesUnion(t *testing.T) {
	cfg := config.DefaultConfig()
	a := cubeShell(t, vector.New(0, 0, 0), 1)
	b := cubeShell(t, vector.New(10, 10, 10), 1)

	out, err := boolean.UnionVolumes(cfg, a, b)
	require.NoError(t, err)
	require.Len(t, out.Faces, 12)
}

func TestVolumesDisjointCubesIntersectionIsEmpty(t *testing.T) {
	cfg := config.DefaultConfig()
	a := cubeShell(t, vector.New(0, 0, 0), 1)
	b := cubeShell(t, vector.New(10, 10, 10), 1)

	out, err := boolean.IntersectVolumes(cfg, a, b)
	require.NoError(t, err)
	require.Empty(t, out.Faces)
}

func TestVolumesDifferenceOfIdenticalCubesIsEmpty(t *testing.T) {
	cfg := config.DefaultConfig()
	a := cubeShell(t, vector.New(0, 0, 0), 1)
	b := cubeShell(t, vector.New(0, 0, 0), 1)

	out, err := boolean.DiffVolumes(cfg, a, b)
	require.NoError(t, err)
	require.Empty(t, out.Faces)
}

func TestVolumesDisjointCubesDifferenceIsUnchanged(t *testing.T) {
	cfg := config.DefaultConfig()
	a := cubeShell(t, vector.New(0, 0, 0), 1)
	b := cubeShell(t, vector.New(10, 10, 10), 1)

	out, err := boolean.DiffVolumes(cfg, a, b)
	require.NoError(t, err)
	require.Len(t, out.Faces, 6)
}

func TestSplitEdgesClassifiesOverlap(t *testing.T) {
	cfg := config.DefaultConfig()
	a := lineEdge(t, vector.New(0, 0, 0), vector.New(2, 0, 0))
	b := lineEdge(t, vector.New(1, 0, 0), vector.New(3, 0, 0))

	tagged, err := boolean.SplitEdges(cfg, a, b)
	require.NoError(t, err)
	require.NotEmpty(t, tagged)
}
