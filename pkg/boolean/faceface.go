package boolean

import (
	"github.com/google/uuid"

	"github.com/chazu/geop/pkg/config"
	"github.com/chazu/geop/pkg/containment"
	"github.com/chazu/geop/pkg/curve"
	"github.com/chazu/geop/pkg/errs"
	"github.com/chazu/geop/pkg/intersect"
	"github.com/chazu/geop/pkg/klog"
	"github.com/chazu/geop/pkg/spatial"
	"github.com/chazu/geop/pkg/split"
	"github.com/chazu/geop/pkg/surface"
	"github.com/chazu/geop/pkg/topology"
	"github.com/chazu/geop/pkg/vector"
)

// Faces combines two faces sharing the same supporting surface (spec
// §4.10's "Split/Classify/Assemble (face-face), same surface"). Both
// boundaries are split at their mutual intersection points, every
// resulting sub-edge is tagged by classifying it against the other
// face, the tag subset for op survives, and the survivors are stitched
// back into closed contours and grouped into faces by nesting.
func Faces(cfg config.Config, a, b topology.Face, op Op) ([]topology.Face, error) {
	logger.Log(klog.LevelDebug, "boolean.Faces: starting", "op", op, "a", a.ID, "b", b.ID)
	if !surface.SameSupport(a.Surface, b.Surface) {
		return nil, errs.New(errs.DomainError, "boolean.Faces: a and b do not share a supporting surface")
	}

	aEdges, err := splitBoundaryByOther(cfg, a, b)
	if err != nil {
		return nil, errs.Wrap(err, "boolean.Faces: splitting A's boundary")
	}
	bEdges, err := splitBoundaryByOther(cfg, b, a)
	if err != nil {
		return nil, errs.Wrap(err, "boolean.Faces: splitting B's boundary")
	}

	var survivors []taggedEdge
	for _, e := range aEdges {
		state, err := containment.EdgeInFace(cfg, e, b)
		if err != nil {
			return nil, errs.Wrap(err, "boolean.Faces: classifying A sub-edge against B")
		}
		tag := tagFromEdgeInFace(state, true)
		if keepForOp(op, tag) {
			survivors = append(survivors, taggedEdge{edge: e, source: "A", tag: tag})
		}
	}
	for _, e := range bEdges {
		state, err := containment.EdgeInFace(cfg, e, a)
		if err != nil {
			return nil, errs.Wrap(err, "boolean.Faces: classifying B sub-edge against A")
		}
		tag := tagFromEdgeInFace(state, false)
		if op == Difference {
			// A \ B keeps the part of B's boundary lying inside A
			// (BinA), traversed backwards so the result still winds
			// consistently with A's retained outside.
			if tag == BinA {
				survivors = append(survivors, taggedEdge{edge: e.Flip(), source: "B", tag: tag})
			}
			continue
		}
		if keepForOp(op, tag) {
			survivors = append(survivors, taggedEdge{edge: e, source: "B", tag: tag})
		}
	}

	contours, err := stitch(survivors)
	if err != nil {
		return nil, errs.Wrap(err, "boolean.Faces: stitching survivors")
	}
	if len(contours) == 0 {
		logger.Log(klog.LevelDebug, "boolean.Faces: no survivors, result is empty", "op", op)
		return nil, nil
	}
	return assembleFaces(cfg, contours, a.Surface)
}

// splitBoundaryByOther refines every boundary edge of f at its mutual
// intersection points with other's boundary edges (spec §4.10's
// "compute all edge-edge intersections between the two face
// boundaries; split both boundaries by those points"). other's edges
// are broad-phase indexed first (pkg/spatial) so exact curve-curve
// math only runs on bounding-box-overlapping pairs.
func splitBoundaryByOther(cfg config.Config, f, other topology.Face) ([]topology.Edge, error) {
	otherEdges := other.AllEdges()
	byID := make(map[uuid.UUID]topology.Edge, len(otherEdges))
	idx := spatial.NewIndex(cfg)
	for _, oe := range otherEdges {
		box, err := curve.BoundingBox(oe.Curve, cfg, oe.Start, oe.End)
		if err != nil {
			return nil, errs.Wrap(err, "boolean.splitBoundaryByOther: bounding other's edge")
		}
		byID[oe.ID] = oe
		idx.Insert(oe.ID, box)
	}

	var all []topology.Edge
	for _, bdy := range f.Boundaries {
		edges := append([]topology.Edge(nil), bdy.Edges...)
		for _, e := range edges {
			box, err := curve.BoundingBox(e.Curve, cfg, e.Start, e.End)
			if err != nil {
				return nil, errs.Wrap(err, "boolean.splitBoundaryByOther: bounding f's edge")
			}
			var candidates []topology.Edge
			for _, id := range idx.Candidates(box) {
				candidates = append(candidates, byID[id])
			}

			cur := []topology.Edge{e}
			for _, oe := range candidates {
				var next []topology.Edge
				for _, sub := range cur {
					res, err := intersect.Curves(cfg, sub.Curve, sub.Start, sub.End, oe.Curve, oe.Start, oe.End)
					if err != nil {
						next = append(next, sub)
						continue
					}
					pts := resultPoints(res)
					if len(pts) == 0 {
						next = append(next, sub)
						continue
					}
					parts, err := split.Edge(cfg, sub, pts)
					if err != nil {
						return nil, err
					}
					next = append(next, parts...)
				}
				cur = next
			}
			all = append(all, cur...)
		}
	}
	return all, nil
}

func resultPoints(res intersect.Result) []vector.Vec {
	switch res.Kind {
	case intersect.KindPoint:
		return []vector.Vec{res.P}
	case intersect.KindPoints:
		return []vector.Vec{res.P, res.Q}
	default:
		return nil
	}
}

// taggedEdge is a sub-edge survivor carrying which original face it
// came from (used by stitch to prefer same-source continuations) and
// its classification tag (kept for diagnostics).
type taggedEdge struct {
	edge   topology.Edge
	source string
	tag    Tag
}

// stitch assembles tagged sub-edges into closed contours by chaining
// end == next.start, preferring a continuation from the same source
// face when more than one candidate matches (spec §4.10: "prefer the
// one on the same source to preserve orientation").
func stitch(tagged []taggedEdge) ([]topology.Contour, error) {
	remaining := append([]taggedEdge(nil), tagged...)
	var contours []topology.Contour
	for len(remaining) > 0 {
		first := remaining[0]
		remaining = remaining[1:]
		if first.edge.IsClosed() {
			c, err := topology.NewContour([]topology.Edge{first.edge})
			if err != nil {
				return nil, err
			}
			contours = append(contours, c)
			continue
		}
		chain := []topology.Edge{first.edge}
		source := first.source
		for {
			last := chain[len(chain)-1]
			if last.End == nil {
				break
			}
			foundIdx := -1
			for i, te := range remaining {
				if te.edge.Start == nil || !vector.Equal(*te.edge.Start, *last.End) {
					continue
				}
				if foundIdx == -1 {
					foundIdx = i
				}
				if te.source == source {
					foundIdx = i
					break
				}
			}
			if foundIdx == -1 {
				break
			}
			chain = append(chain, remaining[foundIdx].edge)
			source = remaining[foundIdx].source
			remaining = append(remaining[:foundIdx], remaining[foundIdx+1:]...)
			if chain[0].Start != nil && vector.Equal(*chain[0].Start, *chain[len(chain)-1].End) {
				break
			}
		}
		c, err := topology.NewContour(chain)
		if err != nil {
			return nil, errs.Wrap(err, "boolean.stitch: assembling a closed contour")
		}
		contours = append(contours, c)
	}
	return contours, nil
}

// assembleFaces groups closed contours into faces by nesting (spec
// §4.10's hierarchy test): a contour not enclosed by any other starts
// a new face; a contour enclosed by exactly one other becomes that
// face's hole. Contours nested more than one level deep (an island
// inside a hole inside an island) are not supported; they are treated
// as additional top-level faces, which is a conservative approximation
// rather than a silent loss of geometry.
func assembleFaces(cfg config.Config, contours []topology.Contour, s surface.Surface) ([]topology.Face, error) {
	n := len(contours)
	containedBy := make([][]bool, n)
	for i := range containedBy {
		containedBy[i] = make([]bool, n)
	}
	for i := range contours {
		tentative, err := topology.NewFace(cfg, []topology.Contour{contours[i]}, s)
		if err != nil {
			continue
		}
		for j := range contours {
			if i == j {
				continue
			}
			p, err := contours[j].Edges[0].Midpoint(cfg)
			if err != nil {
				continue
			}
			res, err := containment.PointInFace(cfg, tentative, p)
			if err == nil && res.State == containment.FaceInside {
				containedBy[j][i] = true
			}
		}
	}
	depth := make([]int, n)
	for i := range contours {
		for j := range contours {
			if containedBy[i][j] {
				depth[i]++
			}
		}
	}
	var faces []topology.Face
	for i := range contours {
		if depth[i]%2 != 0 {
			continue
		}
		boundaries := []topology.Contour{contours[i]}
		for j := range contours {
			if depth[j] == depth[i]+1 && containedBy[j][i] {
				boundaries = append(boundaries, contours[j])
			}
		}
		f, err := topology.NewFace(cfg, boundaries, s)
		if err != nil {
			return nil, errs.Wrap(err, "boolean.assembleFaces: building face from nested contours")
		}
		faces = append(faces, f)
	}
	return faces, nil
}
