// Package topology implements the oriented B-rep entity hierarchy of
// spec §3.6-§3.9 and §4.7: Edge, Contour, Face, and Shell (Volume),
// built from the curve/surface libraries of pkg/curve and pkg/surface.
// Every constructor validates the invariants spec §4.7 lists as
// preconditions rather than runtime checks during Boolean operations:
// an edge must lie on its curve, a contour must close, a face's
// boundaries must lie on its surface, and a shell's edges must each be
// shared by exactly two faces with opposite orientation.
//
// Entities are value types (spec §3.10): every operation (Flip,
// Transform) returns a new value rather than mutating in place.
package topology
