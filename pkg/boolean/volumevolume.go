package boolean

import (
	"github.com/chazu/geop/pkg/config"
	"github.com/chazu/geop/pkg/containment"
	"github.com/chazu/geop/pkg/errs"
	"github.com/chazu/geop/pkg/hull"
	"github.com/chazu/geop/pkg/klog"
	"github.com/chazu/geop/pkg/split"
	"github.com/chazu/geop/pkg/topology"
	"github.com/chazu/geop/pkg/vector"
)

// Volumes combines two shells (spec §4.10's volume-volume phase): each
// shell's faces are split by their face-face intersections with the
// other shell, every resulting face is classified against the other
// shell via containment.FaceInVolume (reusing the same eight-way tag
// vocabulary face-face uses), the tag subset for op survives, and the
// survivors are regrouped into a shell with a watertightness re-check.
func Volumes(cfg config.Config, a, b topology.Shell, op Op) (topology.Shell, error) {
	logger.Log(klog.LevelDebug, "boolean.Volumes: starting", "op", op, "a", a.ID, "b", b.ID)

	if fast, handled, ferr := disjointFastPath(cfg, a, b, op); handled {
		logger.Log(klog.LevelDebug, "boolean.Volumes: hulls disjoint, fast path", "op", op)
		return fast, ferr
	}

	aFaces, err := split.Shell(cfg, a, b.Faces)
	if err != nil {
		return topology.Shell{}, errs.Wrap(err, "boolean.Volumes: splitting A by B's faces")
	}
	bFaces, err := split.Shell(cfg, b, a.Faces)
	if err != nil {
		return topology.Shell{}, errs.Wrap(err, "boolean.Volumes: splitting B by A's faces")
	}

	var survivors []topology.Face
	for _, f := range aFaces {
		state, err := containment.FaceInVolume(cfg, f, b)
		if err != nil {
			return topology.Shell{}, errs.Wrap(err, "boolean.Volumes: classifying A face against B")
		}
		tag := tagFromFaceInVolume(state, true)
		if op == Difference {
			if tag == AoutB || tag == AonBOpp {
				survivors = append(survivors, f)
			}
			continue
		}
		if keepForOp(op, tag) {
			survivors = append(survivors, f)
		}
	}
	for _, f := range bFaces {
		state, err := containment.FaceInVolume(cfg, f, a)
		if err != nil {
			return topology.Shell{}, errs.Wrap(err, "boolean.Volumes: classifying B face against A")
		}
		tag := tagFromFaceInVolume(state, false)
		if op == Difference {
			if tag == BinA {
				survivors = append(survivors, f.Flip())
			}
			continue
		}
		if keepForOp(op, tag) {
			survivors = append(survivors, f)
		}
	}

	if len(survivors) == 0 {
		logger.Log(klog.LevelDebug, "boolean.Volumes: no survivors, result is the empty solid", "op", op)
		return topology.EmptyShell(), nil
	}

	if verrs, _ := topology.ValidateShell(cfg, survivors); len(verrs) > 0 {
		logger.Log(klog.LevelWarn, "boolean.Volumes: assembled shell failed watertightness",
			"op", op, "error", verrs[0].Error())
		return topology.Shell{}, errs.Newf(errs.InvalidTopology,
			"boolean.Volumes: assembled shell failed watertightness: %s", verrs[0].Error())
	}
	return topology.NewShell(cfg, survivors)
}

// disjointFastPath is the hull/SAT broad-phase reject spec §4.3 names
// ("used as a fast reject before exact intersection"): if a's and b's
// convex hulls don't overlap at all, the shells can't either, and the
// op's result follows without running Split/Classify. handled is false
// whenever a hull can't be built or the hulls do overlap, telling the
// caller to fall through to the exact path; handled true means the
// returned (shell, error) pair is the final answer.
func disjointFastPath(cfg config.Config, a, b topology.Shell, op Op) (topology.Shell, bool, error) {
	ah, err := hull.Build(cfg, shellVertices(a))
	if err != nil {
		return topology.Shell{}, false, nil
	}
	bh, err := hull.Build(cfg, shellVertices(b))
	if err != nil {
		return topology.Shell{}, false, nil
	}
	if hull.Intersects(ah, bh) {
		return topology.Shell{}, false, nil
	}

	switch op {
	case Union:
		s, err := topology.NewShell(cfg, append(append([]topology.Face(nil), a.Faces...), b.Faces...))
		return s, true, err
	case Difference:
		return a, true, nil
	default: // Intersection: disjoint bodies share no volume (spec §8: A ∩ B = ∅).
		return topology.EmptyShell(), true, nil
	}
}

func shellVertices(s topology.Shell) []vector.Vec {
	seen := make(map[vector.Vec]bool)
	var pts []vector.Vec
	for _, f := range s.Faces {
		for _, e := range f.AllEdges() {
			for _, v := range []*vector.Vec{e.Start, e.End} {
				if v == nil || seen[*v] {
					continue
				}
				seen[*v] = true
				pts = append(pts, *v)
			}
		}
	}
	return pts
}
