package split

import (
	"sort"

	"github.com/chazu/geop/pkg/config"
	"github.com/chazu/geop/pkg/containment"
	"github.com/chazu/geop/pkg/curve"
	"github.com/chazu/geop/pkg/efloat"
	"github.com/chazu/geop/pkg/errs"
	"github.com/chazu/geop/pkg/topology"
	"github.com/chazu/geop/pkg/vector"
)

// Edge refines e by pts (spec §4.9): points not strictly interior to e
// (tested via containment.PointInEdge) are discarded, the remainder
// are deduped and sorted along e's orientation by curve.distance from
// e's resolved start, and the result is the chain of sub-edges running
// start -> p0 -> p1 -> ... -> end. A point list with nothing strictly
// interior returns []Edge{e} unchanged.
func Edge(cfg config.Config, e topology.Edge, pts []vector.Vec) ([]topology.Edge, error) {
	start, err := curve.Interpolate(e.Curve, cfg, e.Start, e.End, efloat.New(0))
	if err != nil {
		return nil, errs.Wrap(err, "split.Edge: resolving start point")
	}
	end, err := curve.Interpolate(e.Curve, cfg, e.Start, e.End, efloat.New(1))
	if err != nil {
		return nil, errs.Wrap(err, "split.Edge: resolving end point")
	}

	type keyed struct {
		p    vector.Vec
		dist float64
	}
	var interior []keyed
	for _, p := range pts {
		state, err := containment.PointInEdge(cfg, e, p)
		if err != nil {
			return nil, errs.Wrap(err, "split.Edge: classifying candidate split point")
		}
		if state != containment.EdgeInside {
			continue
		}
		d, err := curve.Distance(e.Curve, start, p)
		if err != nil {
			return nil, errs.Wrap(err, "split.Edge: ordering candidate split point")
		}
		interior = append(interior, keyed{p: p, dist: d.Mid()})
	}
	if len(interior) == 0 {
		return []topology.Edge{e}, nil
	}
	sort.Slice(interior, func(i, j int) bool { return interior[i].dist < interior[j].dist })

	deduped := interior[:0:0]
	for _, k := range interior {
		if len(deduped) > 0 && vector.Equal(deduped[len(deduped)-1].p, k.p) {
			continue
		}
		deduped = append(deduped, k)
	}

	verts := make([]vector.Vec, 0, len(deduped)+2)
	starts := make([]*vector.Vec, 0, len(deduped)+1)
	ends := make([]*vector.Vec, 0, len(deduped)+1)
	verts = append(verts, start)
	for _, k := range deduped {
		verts = append(verts, k.p)
	}
	verts = append(verts, end)

	boundedStart := e.Start != nil
	boundedEnd := e.End != nil
	for i := 0; i < len(verts)-1; i++ {
		var a, b *vector.Vec
		if i == 0 && !boundedStart {
			a = nil
		} else {
			v := verts[i]
			a = &v
		}
		if i == len(verts)-2 && !boundedEnd {
			b = nil
		} else {
			v := verts[i+1]
			b = &v
		}
		starts = append(starts, a)
		ends = append(ends, b)
	}

	out := make([]topology.Edge, 0, len(starts))
	for i := range starts {
		sub, err := topology.NewEdge(starts[i], ends[i], e.Curve)
		if err != nil {
			return nil, errs.Wrapf(err, "split.Edge: building sub-edge %d", i)
		}
		out = append(out, sub)
	}
	return out, nil
}
