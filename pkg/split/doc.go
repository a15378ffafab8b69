// Package split implements spec §4.9's split-if-necessary refinements:
// cutting an edge by a set of points, a contour at a single point, a
// face by a set of chord edges, and (by extension, for the Boolean
// engine's volume-volume phase) a shell by a set of faces. These are
// the building blocks pkg/boolean's Split phase composes; nothing here
// decides which side of a cut survives, that is Classify's job.
package split
