package topology

import (
	"fmt"

	"github.com/chazu/geop/pkg/config"
)

// ValidationError is a structural defect severe enough that the entity
// cannot be used (mirrors the teacher's three-tier validator: spec.md
// §4.7's construction invariants re-checked post-assembly, per
// SPEC_FULL's "structured, tiered validation" supplemented feature).
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string { return e.Message }

// ValidationWarning flags a condition worth surfacing to a caller (a
// degenerate but not outright invalid configuration) without failing
// the operation outright.
type ValidationWarning struct {
	Message string
}

// ValidateShell re-checks spec §3.9's watertightness invariant without
// constructing a new Shell (and therefore without erroring out of a
// multi-step Boolean assembly the moment one face is wrong) — the
// Boolean engine's post-assembly re-check (spec §4.10) calls this
// instead of NewShell so it can report every defect found, not just
// the first.
func ValidateShell(cfg config.Config, faces []Face) ([]ValidationError, []ValidationWarning) {
	var errs []ValidationError
	var warns []ValidationWarning
	if len(faces) == 0 {
		errs = append(errs, ValidationError{Message: "shell: no faces"})
		return errs, warns
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
			errs = append(errs, ValidationError{
				Message: fmt.Sprintf("shell: edge of face %d has no opposite-orientation match", all[i].faceIdx),
			})
		}
	}
	if len(faces) == 1 {
		warns = append(warns, ValidationWarning{Message: "shell: single-face shell, unusual but not invalid for a closed curved surface"})
	}
	s := Shell{Faces: faces}
	if vol, err := s.Volume(cfg); err == nil && vol <= 0 {
		warns = append(warns, ValidationWarning{Message: "shell: enclosed-volume sign suggests inward-facing normals"})
	}
	return errs, warns
}
