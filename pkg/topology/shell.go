package topology

import (
	"math"

	"github.com/google/uuid"

	"github.com/chazu/geop/pkg/config"
	"github.com/chazu/geop/pkg/curve"
	"github.com/chazu/geop/pkg/errs"
	"github.com/chazu/geop/pkg/vector"
)

// Shell (spec calls the same concept Volume) is a watertight collection
// of faces bounding a region of space (spec §3.9): every edge of every
// face is shared by exactly two faces, used with opposite orientation.
// A Shell with no faces is the canonical empty solid (see EmptyShell);
// NewShell never produces one, since a zero-face argument is rejected
// as invalid input topology rather than a legitimate result.
type Shell struct {
	ID    uuid.UUID
	Faces []Face
}

// EmptyShell returns the zero-volume solid: a Shell with no faces. It
// is the sanctioned representation of spec §8's A \ A = ∅ and disjoint
// A ∩ B = ∅ results; callers that need to build such a result value
// use this instead of routing a zero-face list through NewShell, which
// rejects one as malformed input.
func EmptyShell() Shell {
	return Shell{ID: uuid.New()}
}

type faceEdge struct {
	edge    Edge
	faceIdx int
}

// NewShell validates spec §3.9's edge-multiplicity invariant. Outward
// global orientation (face normals point away from the enclosed
// region) is additionally checked by requiring the divergence-theorem
// volume estimate (Volume, below) to be positive; a negative or
// indeterminate sign means the shell's faces are consistently inward,
// or inconsistently oriented, either of which the spec requires we
// reject at construction (spec §4.7: "these checks are preconditions").
func NewShell(cfg config.Config, faces []Face) (Shell, error) {
	if len(faces) == 0 {
		return Shell{}, errs.New(errs.InvalidTopology, "shell: must have at least one face")
	}
	var all []faceEdge
	for fi, f := range faces {
		for _, e := range f.AllEdges() {
			all = append(all, faceEdge{edge: e, faceIdx: fi})
		}
	}
	matched := make([]bool, len(all))
	for i := range all {
		if matched[i] {
			continue
		}
		found := false
		for j := i + 1; j < len(all); j++ {
			if matched[j] || all[j].faceIdx == all[i].faceIdx {
				continue
			}
			if all[i].edge.Opposite(all[j].edge) {
				matched[i], matched[j] = true, true
				found = true
				break
			}
		}
		if !found {
			return Shell{}, errs.Newf(errs.InvalidTopology,
				"shell: edge of face %d has no opposite-orientation match on another face", all[i].faceIdx)
		}
	}
	s := Shell{ID: uuid.New(), Faces: append([]Face(nil), faces...)}
	vol, err := s.Volume(cfg)
	if err != nil {
		return Shell{}, errs.Wrap(err, "shell: estimating enclosed volume for outward-orientation check")
	}
	if vol <= 0 {
		return Shell{}, errs.New(errs.InvalidTopology, "shell: face normals disagree with outward orientation")
	}
	return s, nil
}

// Volume estimates the signed volume enclosed by the shell via the
// divergence theorem: sum over faces of (centroid . outward normal) *
// area / 3, using each face's outer-boundary vertex polygon as a flat
// approximation of the (possibly curved) face — exact for planar
// faces, approximate for spherical/cylindrical ones, which is
// sufficient for the orientation-sign check NewShell needs and for
// the volume regression in spec §8 scenario S5.
func (s Shell) Volume(cfg config.Config) (float64, error) {
	var total float64
	for _, f := range s.Faces {
		verts := vertices(f.Boundaries[0].Edges)
		if len(verts) < 3 {
			continue
		}
		n, err := representativeNormal(cfg, f.Boundaries[0], f.Surface)
		if err != nil {
			return 0, err
		}
		centroid := vector.Zero()
		for _, v := range verts {
			centroid = vector.Add(centroid, v)
		}
		centroid = vector.Scale(centroid, 1/float64(len(verts)))
		var area2 vector.Vec
		for i := range verts {
			a := vector.Sub(verts[i], centroid)
			b := vector.Sub(verts[(i+1)%len(verts)], centroid)
			area2 = vector.Add(area2, vector.Cross(a, b))
		}
		flux := vector.Dot(area2, n).Mid() / 2
		total += vector.Dot(centroid, n).Mid() * flux
	}
	return total / 3, nil
}

// CornerNormal returns the ordered set of outgoing tangent directions
// at a non-manifold corner p where three or more faces meet (spec
// §3.9): one tangent per incident boundary edge leaving p, ordered by
// the right-hand rule around the average inward direction. Manifold
// (two-edge) corners return exactly two tangents, matching Contour's
// own CornerTangent for the common case.
func (s Shell) CornerNormal(p vector.Vec) ([]vector.Vec, error) {
	var out []vector.Vec
	seen := map[[2]float64]bool{}
	for _, f := range s.Faces {
		for _, b := range f.Boundaries {
			for _, e := range b.Edges {
				if e.Start == nil || !vector.Equal(*e.Start, p) {
					continue
				}
				t, err := curve.Tangent(e.Curve, p)
				if err != nil {
					return nil, err
				}
				key := [2]float64{t.X.Mid(), t.Y.Mid()}
				if seen[key] {
					continue
				}
				seen[key] = true
				out = append(out, t)
			}
		}
	}
	if len(out) < 2 {
		return nil, errs.New(errs.InvalidTopology, "shell: corner has fewer than two outgoing edges")
	}
	inward := vector.Zero()
	for _, t := range out {
		inward = vector.Sub(inward, t)
	}
	orderByRightHand(out, inward)
	return out, nil
}

// orderByRightHand sorts tangents in place by angle around axis,
// using axis as the reference "inward" direction (spec §3.9).
func orderByRightHand(tangents []vector.Vec, axis vector.Vec) {
	if vector.Norm(axis).Mid() == 0 || len(tangents) < 2 {
		return
	}
	ref := tangents[0]
	angle := func(v vector.Vec) float64 {
		c := vector.Cross(ref, v)
		sinPart := vector.Dot(c, axis).Mid()
		cosPart := vector.Dot(ref, v).Mid()
		if sinPart == 0 && cosPart == 0 {
			return 0
		}
		return math.Atan2(sinPart, cosPart)
	}
	// simple insertion sort: these lists are always small (a handful
	// of faces meeting at one corner).
	for i := 1; i < len(tangents); i++ {
		j := i
		for j > 0 && angle(tangents[j]) < angle(tangents[j-1]) {
			tangents[j], tangents[j-1] = tangents[j-1], tangents[j]
			j--
		}
	}
}
