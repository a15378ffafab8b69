package boolean

import (
	"github.com/chazu/geop/pkg/config"
	"github.com/chazu/geop/pkg/containment"
	"github.com/chazu/geop/pkg/errs"
	"github.com/chazu/geop/pkg/intersect"
	"github.com/chazu/geop/pkg/split"
	"github.com/chazu/geop/pkg/topology"
	"github.com/chazu/geop/pkg/vector"
)

// EdgeTag is the four-way edge-edge classification of spec §4.10:
// AinB/AoutB for a's sub-edges against b, BinA/BoutA for b's against a.
// Touching at a single point is not membership (endpoints are not part
// of an edge's open interior), matching containment.PointInEdge's own
// EdgeOnPoint/EdgeInside distinction.
type EdgeTag int

const (
	EdgeAinB EdgeTag = iota
	EdgeAoutB
	EdgeBinA
	EdgeBoutA
)

func (t EdgeTag) String() string {
	switch t {
	case EdgeAinB:
		return "AinB"
	case EdgeAoutB:
		return "AoutB"
	case EdgeBinA:
		return "BinA"
	case EdgeBoutA:
		return "BoutA"
	default:
		return "unknown"
	}
}

// TaggedSubEdge pairs a sub-edge from SplitEdges with its tag.
type TaggedSubEdge struct {
	Edge topology.Edge
	Tag  EdgeTag
}

// SplitEdges implements spec §4.10's edge-edge Split+Classify: collect
// both edges' own endpoints plus every mutual intersection point,
// split both by that point set, then classify each sub-edge's
// midpoint against the other raw edge.
func SplitEdges(cfg config.Config, a, b topology.Edge) ([]TaggedSubEdge, error) {
	res, err := intersect.Curves(cfg, a.Curve, a.Start, a.End, b.Curve, b.Start, b.End)
	if err != nil {
		return nil, errs.Wrap(err, "boolean.SplitEdges: computing mutual intersections")
	}
	pts := resultPoints(res)
	for _, p := range []*vector.Vec{a.Start, a.End, b.Start, b.End} {
		if p != nil {
			pts = append(pts, *p)
		}
	}

	aParts, err := split.Edge(cfg, a, pts)
	if err != nil {
		return nil, errs.Wrap(err, "boolean.SplitEdges: splitting A")
	}
	bParts, err := split.Edge(cfg, b, pts)
	if err != nil {
		return nil, errs.Wrap(err, "boolean.SplitEdges: splitting B")
	}

	var out []TaggedSubEdge
	for _, e := range aParts {
		mid, err := e.Midpoint(cfg)
		if err != nil {
			return nil, errs.Wrap(err, "boolean.SplitEdges: A sub-edge midpoint")
		}
		state, err := containment.PointInEdge(cfg, b, mid)
		if err != nil {
			return nil, errs.Wrap(err, "boolean.SplitEdges: classifying A sub-edge")
		}
		if state == containment.EdgeInside {
			out = append(out, TaggedSubEdge{Edge: e, Tag: EdgeAinB})
		} else {
			out = append(out, TaggedSubEdge{Edge: e, Tag: EdgeAoutB})
		}
	}
	for _, e := range bParts {
		mid, err := e.Midpoint(cfg)
		if err != nil {
			return nil, errs.Wrap(err, "boolean.SplitEdges: B sub-edge midpoint")
		}
		state, err := containment.PointInEdge(cfg, a, mid)
		if err != nil {
			return nil, errs.Wrap(err, "boolean.SplitEdges: classifying B sub-edge")
		}
		if state == containment.EdgeInside {
			out = append(out, TaggedSubEdge{Edge: e, Tag: EdgeBinA})
		} else {
			out = append(out, TaggedSubEdge{Edge: e, Tag: EdgeBoutA})
		}
	}
	return out, nil
}
