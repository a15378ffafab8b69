package split

import (
	"github.com/chazu/geop/pkg/config"
	"github.com/chazu/geop/pkg/containment"
	"github.com/chazu/geop/pkg/curve"
	"github.com/chazu/geop/pkg/efloat"
	"github.com/chazu/geop/pkg/errs"
	"github.com/chazu/geop/pkg/topology"
	"github.com/chazu/geop/pkg/vector"
)

// Face refines f by a set of chord edges, each of which must run
// between two points of f's outer boundary (spec §4.9). Splitters are
// applied one at a time: each divides every face it chords into two,
// redistributing the original holes into whichever half contains them
// (approximated, for want of a standalone face-in-face primitive, by
// testing each hole's boundary point with PointInFace against a
// boundary-only version of the candidate half).
func Face(cfg config.Config, f topology.Face, splitters []topology.Edge) ([]topology.Face, error) {
	faces := []topology.Face{f}
	for si, s := range splitters {
		var next []topology.Face
		for _, candidate := range faces {
			parts, matched, err := splitOneByChord(cfg, candidate, s)
			if err != nil {
				return nil, errs.Wrapf(err, "split.Face: applying splitter %d", si)
			}
			if matched {
				next = append(next, parts...)
			} else {
				next = append(next, candidate)
			}
		}
		faces = next
	}
	return faces, nil
}

// splitOneByChord tries to cut f's outer boundary along s. It reports
// matched=false (leaving f untouched) when s's endpoints are not both
// on f's outer boundary.
func splitOneByChord(cfg config.Config, f topology.Face, s topology.Edge) ([]topology.Face, bool, error) {
	outer := f.Boundaries[0]

	a, err := curve.Interpolate(s.Curve, cfg, s.Start, s.End, efloat.New(0))
	if err != nil {
		return nil, false, errs.Wrap(err, "split.Face: resolving chord start")
	}
	b, err := curve.Interpolate(s.Curve, cfg, s.Start, s.End, efloat.New(1))
	if err != nil {
		return nil, false, errs.Wrap(err, "split.Face: resolving chord end")
	}

	onBoundary := func(p vector.Vec) bool {
		for _, e := range outer.Edges {
			state, err := containment.PointInEdge(cfg, e, p)
			if err == nil && (state == containment.EdgeInside || state == containment.EdgeOnPoint) {
				return true
			}
		}
		return false
	}
	if !onBoundary(a) || !onBoundary(b) {
		return nil, false, nil
	}

	outer, err = Contour(cfg, outer, a)
	if err != nil {
		return nil, false, errs.Wrap(err, "split.Face: inserting chord start vertex")
	}
	outer, err = Contour(cfg, outer, b)
	if err != nil {
		return nil, false, errs.Wrap(err, "split.Face: inserting chord end vertex")
	}

	startIdx, endIdx := -1, -1
	for i, e := range outer.Edges {
		if e.Start != nil && vector.Equal(*e.Start, a) {
			startIdx = i
		}
		if e.Start != nil && vector.Equal(*e.Start, b) {
			endIdx = i
		}
	}
	if startIdx < 0 || endIdx < 0 {
		return nil, false, errs.New(errs.InvalidTopology, "split.Face: chord endpoint vertex not found after insertion")
	}

	runFrom := func(from, to int) []topology.Edge {
		n := len(outer.Edges)
		var run []topology.Edge
		for i := from; ; i = (i + 1) % n {
			run = append(run, outer.Edges[i])
			if i == to {
				break
			}
		}
		return run
	}
	chainA := runFrom(startIdx, (endIdx-1+len(outer.Edges))%len(outer.Edges))
	chainB := runFrom(endIdx, (startIdx-1+len(outer.Edges))%len(outer.Edges))

	loopA, err := topology.NewContour(append(append([]topology.Edge{}, chainA...), s.Flip()))
	if err != nil {
		return nil, false, errs.Wrap(err, "split.Face: assembling first half boundary")
	}
	loopB, err := topology.NewContour(append(append([]topology.Edge{}, chainB...), s))
	if err != nil {
		return nil, false, errs.Wrap(err, "split.Face: assembling second half boundary")
	}

	holesA, holesB, err := distributeHoles(cfg, f, loopA, loopB)
	if err != nil {
		return nil, false, err
	}

	faceA, err := topology.NewFace(cfg, append([]topology.Contour{loopA}, holesA...), f.Surface)
	if err != nil {
		return nil, false, errs.Wrap(err, "split.Face: building first half face")
	}
	faceB, err := topology.NewFace(cfg, append([]topology.Contour{loopB}, holesB...), f.Surface)
	if err != nil {
		return nil, false, errs.Wrap(err, "split.Face: building second half face")
	}
	return []topology.Face{faceA, faceB}, true, nil
}

// distributeHoles assigns each of f's original hole contours to
// whichever of the two candidate outer loops bounds it.
func distributeHoles(cfg config.Config, f topology.Face, loopA, loopB topology.Contour) ([]topology.Contour, []topology.Contour, error) {
	var holesA, holesB []topology.Contour
	for _, hole := range f.Boundaries[1:] {
		p, err := hole.Edges[0].Midpoint(cfg)
		if err != nil {
			return nil, nil, errs.Wrap(err, "split.Face: hole representative point")
		}
		probeA, err := topology.NewFace(cfg, []topology.Contour{loopA}, f.Surface)
		if err != nil {
			return nil, nil, errs.Wrap(err, "split.Face: probing first half for hole containment")
		}
		res, err := containment.PointInFace(cfg, probeA, p)
		if err != nil {
			return nil, nil, errs.Wrap(err, "split.Face: classifying hole against first half")
		}
		if res.State == containment.FaceInside || res.State == containment.FaceOnEdge || res.State == containment.FaceOnPoint {
			holesA = append(holesA, hole)
			continue
		}
		holesB = append(holesB, hole)
	}
	return holesA, holesB, nil
}
