// Package containment implements spec §4.8's containment queries:
// point-in-edge, point-in-face, point-in-volume, edge-in-face, and
// face-in-volume, all built on the "ray-cast + tangent-vs-normal"
// policy the spec names: classify a point by walking its entity's
// boundary directly when the point sits on it, and otherwise shoot a
// geodesic (or, one dimension up, a straight ray) to a known boundary
// point and read inside/outside off the sign of the closest crossing's
// tangent against the ambient normal.
package containment
