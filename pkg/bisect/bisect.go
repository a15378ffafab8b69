// Package bisect implements the generic numerical bisector of spec
// §4.6.1: the fallback intersector used whenever a pair of primitives
// has no closed-form intersection formula. It recursively narrows a
// pair of parameter intervals (held in point form, per the spec) until
// their bounding boxes separate or shrink below precision, bounded by
// an explicit depth limit and wall-clock deadline so it can never hang
// (spec §9: "the bisection intersector is recursive but bounded").
package bisect

import (
	"time"

	"github.com/chazu/geop/pkg/config"
	"github.com/chazu/geop/pkg/curve"
	"github.com/chazu/geop/pkg/errs"
	"github.com/chazu/geop/pkg/vector"
)

// Interval is a curve parameter range held in point form: the two
// on-curve points bounding the range, per spec §4.6.1.
type Interval struct {
	Lo, Hi vector.Vec
}

// result carries a bisection's outcome through the deadline-guarding
// goroutine, mirroring the teacher's evalResult/waitWithTimeout shape.
type result struct {
	points []vector.Vec
	err    error
}

// Curves intersects curve a over interval ia with curve b over
// interval ib, returning every point where their bounding boxes
// converge to within cfg.BisectionEpsilon(), deduplicated within
// cfg.DedupDistance(). Returns a typed Timeout error if cfg's deadline
// elapses, or IntersectionResolutionFailed if cfg.MaxBisectionDepth is
// exhausted first.
func Curves(cfg config.Config, a curve.Curve, ia Interval, b curve.Curve, ib Interval) ([]vector.Vec, error) {
	deadline := time.Now().Add(cfg.BisectionDeadline)
	ch := make(chan result, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- result{err: errs.Newf(errs.IntersectionResolutionFailed, "bisect: panic during bisection: %v", r)}
			}
		}()
		pts, err := bisectCurves(cfg, a, ia, b, ib, 0, deadline)
		ch <- result{points: dedup(cfg, pts), err: err}
	}()

	// The recursion checks the deadline itself at every call; this
	// timer is a backstop against a hang the internal check missed
	// (e.g. while blocked inside a single Curve operation), same role
	// as the teacher's outer timer around a possibly-stuck goroutine.
	timer := time.NewTimer(time.Until(deadline) + 50*time.Millisecond)
	defer timer.Stop()

	select {
	case res := <-ch:
		return res.points, res.err
	case <-timer.C:
		return nil, errs.New(errs.Timeout, "bisect: wall-clock deadline exceeded")
	}
}

func bisectCurves(cfg config.Config, a curve.Curve, ia Interval, b curve.Curve, ib Interval, depth int, deadline time.Time) ([]vector.Vec, error) {
	if time.Now().After(deadline) {
		return nil, errs.New(errs.Timeout, "bisect: wall-clock deadline exceeded")
	}
	if depth > cfg.MaxBisectionDepth {
		return nil, errs.New(errs.IntersectionResolutionFailed, "bisect: exhausted maximum bisection depth")
	}

	boxA, err := curve.BoundingBox(a, cfg, &ia.Lo, &ia.Hi)
	if err != nil {
		return nil, errs.Wrap(err, "bisect: bounding_box failed on first curve")
	}
	boxB, err := curve.BoundingBox(b, cfg, &ib.Lo, &ib.Hi)
	if err != nil {
		return nil, errs.Wrap(err, "bisect: bounding_box failed on second curve")
	}
	if !vector.Overlaps(boxA, boxB) {
		return nil, nil
	}

	eps := cfg.BisectionEpsilon()
	if largestEdge(boxA) < eps && largestEdge(boxB) < eps {
		mid, err := curve.Midpoint(a, cfg, &ia.Lo, &ia.Hi)
		if err != nil {
			return nil, errs.Wrap(err, "bisect: midpoint failed at convergence")
		}
		return []vector.Vec{mid}, nil
	}

	aMid, err := curve.Midpoint(a, cfg, &ia.Lo, &ia.Hi)
	if err != nil {
		return nil, errs.Wrap(err, "bisect: first curve midpoint failed")
	}
	bMid, err := curve.Midpoint(b, cfg, &ib.Lo, &ib.Hi)
	if err != nil {
		return nil, errs.Wrap(err, "bisect: second curve midpoint failed")
	}

	aChildren := [2]Interval{{ia.Lo, aMid}, {aMid, ia.Hi}}
	bChildren := [2]Interval{{ib.Lo, bMid}, {bMid, ib.Hi}}

	var points []vector.Vec
	for _, achild := range aChildren {
		for _, bchild := range bChildren {
			pts, err := bisectCurves(cfg, a, achild, b, bchild, depth+1, deadline)
			if err != nil {
				return nil, err
			}
			points = append(points, pts...)
		}
	}
	return points, nil
}

func largestEdge(b vector.BoundingBox) float64 {
	dx := b.MaxX.Mid() - b.MinX.Mid()
	dy := b.MaxY.Mid() - b.MinY.Mid()
	dz := b.MaxZ.Mid() - b.MinZ.Mid()
	largest := dx
	if dy > largest {
		largest = dy
	}
	if dz > largest {
		largest = dz
	}
	return largest
}

// dedup removes points within cfg.DedupDistance() of one another,
// keeping the first of each cluster (spec §4.6.1's final step).
func dedup(cfg config.Config, points []vector.Vec) []vector.Vec {
	threshold := cfg.DedupDistance()
	var kept []vector.Vec
	for _, p := range points {
		duplicate := false
		for _, k := range kept {
			d := vector.Norm(vector.Sub(p, k)).Mid()
			if d < threshold {
				duplicate = true
				break
			}
		}
		if !duplicate {
			kept = append(kept, p)
		}
	}
	return kept
}
