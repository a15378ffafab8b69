package split

import (
	"sort"

	"github.com/chazu/geop/pkg/config"
	"github.com/chazu/geop/pkg/curve"
	"github.com/chazu/geop/pkg/errs"
	"github.com/chazu/geop/pkg/intersect"
	"github.com/chazu/geop/pkg/topology"
	"github.com/chazu/geop/pkg/vector"
)

// Shell refines every face of s that a splitting face intersects,
// using the chord produced by their face-face intersection (spec
// §4.9's "split shell by faces"), and returns the regrouped face list
// (not yet reassembled into a new Shell — pkg/boolean's volume-volume
// phase does that once both shells' faces have been split and
// classified).
func Shell(cfg config.Config, s topology.Shell, splitters []topology.Face) ([]topology.Face, error) {
	faces := append([]topology.Face(nil), s.Faces...)
	for _, other := range splitters {
		var next []topology.Face
		for _, f := range faces {
			chords, err := faceFaceChords(cfg, f, other)
			if err != nil {
				return nil, errs.Wrap(err, "split.Shell: computing face-face chords")
			}
			if len(chords) == 0 {
				next = append(next, f)
				continue
			}
			parts, err := Face(cfg, f, chords)
			if err != nil {
				return nil, errs.Wrap(err, "split.Shell: splitting face by chords")
			}
			next = append(next, parts...)
		}
		faces = next
	}
	return faces, nil
}

// faceFaceChords computes the boundary edges produced by intersecting
// a's and b's supporting surfaces, clipped to a's own boundary extent
// (spec §4.10's "Split (face-face), different surfaces"): a full
// structural clip against both faces belongs to pkg/boolean, which has
// the classification machinery to decide what survives; this helper
// only hands back the raw chord candidates worth trying as splitters.
func faceFaceChords(cfg config.Config, a, b topology.Face) ([]topology.Edge, error) {
	res, err := intersect.Surfaces(cfg, a.Surface, b.Surface)
	if err != nil {
		return nil, err
	}
	if res.Kind != intersect.KindCurve {
		return nil, nil
	}
	line := res.Curve

	var crossings []vector.Vec
	for _, f := range []topology.Face{a} {
		for _, bdy := range f.Boundaries {
			for _, e := range bdy.Edges {
				cres, err := intersect.Curves(cfg, line, nil, nil, e.Curve, e.Start, e.End)
				if err != nil {
					continue
				}
				switch cres.Kind {
				case intersect.KindPoint:
					crossings = append(crossings, cres.P)
				case intersect.KindPoints:
					crossings = append(crossings, cres.P, cres.Q)
				}
			}
		}
	}
	if len(crossings) < 2 {
		return nil, nil
	}
	origin := crossings[0]
	sort.Slice(crossings, func(i, j int) bool {
		di, err := curve.Distance(line, origin, crossings[i])
		if err != nil {
			return false
		}
		dj, err := curve.Distance(line, origin, crossings[j])
		if err != nil {
			return false
		}
		return di.Mid() < dj.Mid()
	})
	lo := crossings[0]
	hi := crossings[len(crossings)-1]
	if vector.Equal(lo, hi) {
		return nil, nil
	}
	e, err := topology.NewEdge(&lo, &hi, line)
	if err != nil {
		return nil, errs.Wrap(err, "split.Shell: building clipped face-face chord")
	}
	return []topology.Edge{e}, nil
}
