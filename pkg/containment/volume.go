package containment

import (
	"sort"

	"github.com/chazu/geop/pkg/config"
	"github.com/chazu/geop/pkg/curve"
	"github.com/chazu/geop/pkg/efloat"
	"github.com/chazu/geop/pkg/errs"
	"github.com/chazu/geop/pkg/intersect"
	"github.com/chazu/geop/pkg/surface"
	"github.com/chazu/geop/pkg/topology"
	"github.com/chazu/geop/pkg/vector"
)

// VolumeState is spec §4.8's point-in-volume classification, one
// dimension up from FaceState: Outside, OnPoint, OnEdge, OnFace(face),
// Inside.
type VolumeState int

const (
	VolumeOutside VolumeState = iota
	VolumeOnPoint
	VolumeOnEdge
	VolumeOnFace
	VolumeInside
)

func (s VolumeState) String() string {
	switch s {
	case VolumeOutside:
		return "outside"
	case VolumeOnPoint:
		return "on_point"
	case VolumeOnEdge:
		return "on_edge"
	case VolumeOnFace:
		return "on_face"
	case VolumeInside:
		return "inside"
	default:
		return "unknown"
	}
}

// VolumeResult carries the boundary entity p landed on.
type VolumeResult struct {
	State VolumeState
	Face  *topology.Face
	Edge  *topology.Edge
}

// PointInVolume classifies p against shell (spec §4.8): every face is
// tested directly first; failing that, a straight ray is cast from p
// to a known boundary point (the flat-space geodesic one dimension up
// from PointInFace's curved one) and the closest crossing's face
// normal is compared against the ray direction.
func PointInVolume(cfg config.Config, shell topology.Shell, p vector.Vec) (VolumeResult, error) {
	for i := range shell.Faces {
		f := shell.Faces[i]
		res, err := PointInFace(cfg, f, p)
		if err != nil {
			return VolumeResult{}, errs.Wrap(err, "containment.PointInVolume: direct face test")
		}
		switch res.State {
		case FaceOnPoint:
			return VolumeResult{State: VolumeOnPoint, Edge: res.Edge}, nil
		case FaceOnEdge:
			return VolumeResult{State: VolumeOnEdge, Edge: res.Edge}, nil
		case FaceInside:
			return VolumeResult{State: VolumeOnFace, Face: &f}, nil
		}
	}

	q, err := shell.Faces[0].BoundaryPoint(cfg)
	if err != nil {
		return VolumeResult{}, errs.Wrap(err, "containment.PointInVolume: boundary reference point")
	}
	dir := vector.Sub(q, p)
	if efloat.Equal(vector.NormSquared(dir), efloat.Zero()) {
		return VolumeResult{State: VolumeOnPoint}, nil
	}
	ray, err := curve.NewLine(p, dir)
	if err != nil {
		return VolumeResult{}, errs.Wrap(err, "containment.PointInVolume: ray construction")
	}

	type crossing struct {
		point vector.Vec
		dist  float64
		face  topology.Face
	}
	var crossings []crossing
	for _, f := range shell.Faces {
		res, err := intersect.CurveSurface(cfg, ray, &p, &q, f.Surface)
		if err != nil {
			continue
		}
		for _, x := range resultPoints(res) {
			if vector.Equal(x, p) {
				continue
			}
			inFace, err := PointInFace(cfg, f, x)
			if err != nil || inFace.State == FaceOutside || inFace.State == FaceNotOnSurface {
				continue
			}
			dist := vector.Dot(vector.Sub(x, p), dir).Mid()
			crossings = append(crossings, crossing{point: x, dist: dist, face: f})
		}
	}
	if len(crossings) == 0 {
		return VolumeResult{}, errs.New(errs.NumericalError, "containment.PointInVolume: ray found no crossing of the reference boundary point's face")
	}
	sort.Slice(crossings, func(i, j int) bool { return crossings[i].dist < crossings[j].dist })
	closest := crossings[0]

	n, err := surface.Normal(closest.face.Surface, closest.point)
	if err != nil {
		return VolumeResult{}, errs.Wrap(err, "containment.PointInVolume: face normal at crossing")
	}
	sign := efloat.Cmp(vector.Dot(dir, n), efloat.Zero())
	if sign == efloat.Indeterminate {
		return VolumeResult{}, errs.New(errs.IndeterminateCorner, "containment.PointInVolume: ray grazes crossing face")
	}
	if sign == efloat.Greater {
		return VolumeResult{State: VolumeInside}, nil
	}
	return VolumeResult{State: VolumeOutside}, nil
}

// FaceInVolumeState is spec §4.8's face-in-volume classification.
type FaceInVolumeState int

const (
	FaceVolOutside FaceInVolumeState = iota
	FaceVolInside
	FaceVolOnBorderSameDir
	FaceVolOnBorderOppositeDir
)

func (s FaceInVolumeState) String() string {
	switch s {
	case FaceVolOutside:
		return "outside"
	case FaceVolInside:
		return "inside"
	case FaceVolOnBorderSameDir:
		return "on_border_same_dir"
	case FaceVolOnBorderOppositeDir:
		return "on_border_opposite_dir"
	default:
		return "unknown"
	}
}

// FaceInVolume classifies f against shell (spec §4.8): every edge of f
// is checked with EdgeInFace against shell's own faces is the caller's
// job when a finer per-edge breakdown is needed (split/classify, spec
// §4.9-§4.10); this entry point answers the whole-face question by
// testing the single point f.BoundaryPoint returns (the midpoint of f's
// first outer-boundary edge, which lies on f's boundary, not in its
// interior) and, on a boundary hit, comparing f's normal with the
// matching volume face's normal.
func FaceInVolume(cfg config.Config, f topology.Face, shell topology.Shell) (FaceInVolumeState, error) {
	p, err := f.BoundaryPoint(cfg)
	if err != nil {
		return FaceVolOutside, errs.Wrap(err, "containment.FaceInVolume: representative point")
	}
	res, err := PointInVolume(cfg, shell, p)
	if err != nil {
		return FaceVolOutside, errs.Wrap(err, "containment.FaceInVolume: representative point classification")
	}
	switch res.State {
	case VolumeInside:
		return FaceVolInside, nil
	case VolumeOnFace:
		n1, err := surface.Normal(f.Surface, p)
		if err != nil {
			return FaceVolOutside, errs.Wrap(err, "containment.FaceInVolume: face normal")
		}
		n2, err := surface.Normal(res.Face.Surface, p)
		if err != nil {
			return FaceVolOutside, errs.Wrap(err, "containment.FaceInVolume: matching volume face normal")
		}
		if vector.Equal(n1, n2) {
			return FaceVolOnBorderSameDir, nil
		}
		return FaceVolOnBorderOppositeDir, nil
	default:
		return FaceVolOutside, nil
	}
}
