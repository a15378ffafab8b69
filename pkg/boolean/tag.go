package boolean

import "github.com/chazu/geop/pkg/containment"

// Op is the requested set operation.
type Op int

const (
	Union Op = iota
	Intersection
	Difference
)

// Tag is the eight-way classification spec §4.10 assigns to every
// sub-edge of a face-face split (and, one dimension up, every
// sub-face of a volume-volume split): which side of the other entity
// it falls on, with AonB/BonA further split into same-direction
// (coincident boundary, same orientation) and opposite-direction
// (coincident boundary, reversed orientation).
type Tag int

const (
	AinB Tag = iota
	AoutB
	AonBSameSide
	AonBOpp
	BinA
	BoutA
	BonASameSide
	BonAOpp
)

func (t Tag) String() string {
	switch t {
	case AinB:
		return "AinB"
	case AoutB:
		return "AoutB"
	case AonBSameSide:
		return "AonBSameSide"
	case AonBOpp:
		return "AonBOpp"
	case BinA:
		return "BinA"
	case BoutA:
		return "BoutA"
	case BonASameSide:
		return "BonASameSide"
	case BonAOpp:
		return "BonAOpp"
	default:
		return "unknown"
	}
}

// tagFromEdgeInFace translates containment's edge-in-face classification
// into the A-side (or, with fromA=false, B-side) tag vocabulary.
func tagFromEdgeInFace(state containment.EdgeInFaceState, fromA bool) Tag {
	switch state {
	case containment.EdgeFaceInside:
		if fromA {
			return AinB
		}
		return BinA
	case containment.EdgeFaceOnBorderSameDir:
		if fromA {
			return AonBSameSide
		}
		return BonASameSide
	case containment.EdgeFaceOnBorderOppositeDir:
		if fromA {
			return AonBOpp
		}
		return BonAOpp
	default:
		if fromA {
			return AoutB
		}
		return BoutA
	}
}

// tagFromFaceInVolume translates containment's face-in-volume
// classification into the same eight-way tag vocabulary, used by the
// volume-volume phase (spec §4.10).
func tagFromFaceInVolume(state containment.FaceInVolumeState, fromA bool) Tag {
	switch state {
	case containment.FaceVolInside:
		if fromA {
			return AinB
		}
		return BinA
	case containment.FaceVolOnBorderSameDir:
		if fromA {
			return AonBSameSide
		}
		return BonASameSide
	case containment.FaceVolOnBorderOppositeDir:
		if fromA {
			return AonBOpp
		}
		return BonAOpp
	default:
		if fromA {
			return AoutB
		}
		return BoutA
	}
}

// keepForOp reports whether a tagged sub-entity survives assembly for
// op, per spec §4.10's three subset policies. B-side AonB tags are
// always dropped here: the matching A-side AonBSameSide/AonBOpp entity
// already represents that shared boundary, so keeping both would
// duplicate it.
func keepForOp(op Op, t Tag) bool {
	switch op {
	case Union:
		switch t {
		case AoutB, BoutA, AonBSameSide:
			return true
		}
	case Intersection:
		switch t {
		case AinB, BinA, AonBSameSide:
			return true
		}
	case Difference:
		switch t {
		case AoutB, BinA, AonBOpp:
			return true
		}
	}
	return false
}
