// Package boolean implements spec §4.10's Boolean engine: Split,
// Classify, Assemble for edges, faces sharing one supporting surface
// (Faces returns a DomainError for faces on different surfaces), and
// volumes, plus the Union/Intersection/Difference entry
// points built on top. Classify is not reimplemented here — a
// sub-edge's tag against the other face is exactly pkg/containment's
// EdgeInFace result, and a sub-face's tag against the other volume is
// exactly FaceInVolume's, so this package's own work is Split
// (delegated to pkg/split) and Assemble (stitching and hierarchy).
package boolean
