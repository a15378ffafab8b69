package vector

import "github.com/chazu/geop/pkg/efloat"

// BoundingBox is an axis-aligned bounding box carried as certified
// intervals on each axis, rather than a plain min/max pair: the box
// itself is interval-conservative (spec §4.4's bounding_box contract),
// so a point whose coordinate interval only partially overlaps the box
// is still reported as possibly-inside.
type BoundingBox struct {
	MinX, MaxX efloat.EFloat
	MinY, MaxY efloat.EFloat
	MinZ, MaxZ efloat.EFloat
}

// BoxFromPoints returns the tightest certified bounding box containing
// every given point.
func BoxFromPoints(points ...Vec) BoundingBox {
	if len(points) == 0 {
		z := efloat.Zero()
		return BoundingBox{z, z, z, z, z, z}
	}
	b := BoundingBox{
		MinX: points[0].X, MaxX: points[0].X,
		MinY: points[0].Y, MaxY: points[0].Y,
		MinZ: points[0].Z, MaxZ: points[0].Z,
	}
	for _, p := range points[1:] {
		b = b.Extend(p)
	}
	return b
}

// Extend returns a box that also contains p.
func (b BoundingBox) Extend(p Vec) BoundingBox {
	return BoundingBox{
		MinX: efloat.Min(b.MinX, p.X), MaxX: efloat.Max(b.MaxX, p.X),
		MinY: efloat.Min(b.MinY, p.Y), MaxY: efloat.Max(b.MaxY, p.Y),
		MinZ: efloat.Min(b.MinZ, p.Z), MaxZ: efloat.Max(b.MaxZ, p.Z),
	}
}

// Union returns the smallest box containing both a and b.
func Union(a, b BoundingBox) BoundingBox {
	return BoundingBox{
		MinX: efloat.Min(a.MinX, b.MinX), MaxX: efloat.Max(a.MaxX, b.MaxX),
		MinY: efloat.Min(a.MinY, b.MinY), MaxY: efloat.Max(a.MaxY, b.MaxY),
		MinZ: efloat.Min(a.MinZ, b.MinZ), MaxZ: efloat.Max(a.MaxZ, b.MaxZ),
	}
}

// Overlaps reports whether a and b may share a point: disjoint only
// when some axis's intervals are definitely disjoint.
func Overlaps(a, b BoundingBox) bool {
	axisDisjoint := func(aLo, aHi, bLo, bHi efloat.EFloat) bool {
		return efloat.Cmp(aHi, bLo) == efloat.Less || efloat.Cmp(bHi, aLo) == efloat.Less
	}
	if axisDisjoint(a.MinX, a.MaxX, b.MinX, b.MaxX) {
		return false
	}
	if axisDisjoint(a.MinY, a.MaxY, b.MinY, b.MaxY) {
		return false
	}
	if axisDisjoint(a.MinZ, a.MaxZ, b.MinZ, b.MaxZ) {
		return false
	}
	return true
}

// Contains reports whether p may lie within the box on every axis: an
// axis rules p out only when p's interval is definitely below the
// minimum or definitely above the maximum (used for the fast-reject
// path ahead of exact on_curve/on_surface tests).
func (b BoundingBox) Contains(p Vec) bool {
	within := func(lo, hi, v efloat.EFloat) bool {
		return efloat.Cmp(v, lo) != efloat.Less && efloat.Cmp(v, hi) != efloat.Greater
	}
	return within(b.MinX, b.MaxX, p.X) && within(b.MinY, b.MaxY, p.Y) && within(b.MinZ, b.MaxZ, p.Z)
}

// Center returns the box's midpoint (using each axis interval's Mid).
func (b BoundingBox) Center() Vec {
	return Vec{
		X: efloat.New(b.MinX.Mid()/2 + b.MaxX.Mid()/2),
		Y: efloat.New(b.MinY.Mid()/2 + b.MaxY.Mid()/2),
		Z: efloat.New(b.MinZ.Mid()/2 + b.MaxZ.Mid()/2),
	}
}
