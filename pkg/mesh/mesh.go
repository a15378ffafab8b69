// Package mesh is the visualization bridge (spec §6): it turns
// topology entities into sampled geometry an external renderer can
// draw without the core ever touching a GPU or window resource — a
// triangle mesh per face, a line-segment list per edge, and a point
// list for vertex glyphs, each carrying a uniform color.
package mesh

// Color is an RGBA color in [0,1], uniform across whatever it's
// attached to (spec §6: "together with uniform colors").
type Color struct {
	R, G, B, A float32
}

// Mesh is a triangle mesh suitable for rendering. All arrays are
// flat: Vertices has 3 floats per vertex (x,y,z), Normals has 3
// floats per vertex, Indices has 3 uint32s per triangle.
type Mesh struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	Indices  []uint32  `json:"indices"`
	Color    Color     `json:"color"`
	PartName string    `json:"partName"`
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int { return len(m.Vertices) / 3 }

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int { return len(m.Indices) / 3 }

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool { return len(m.Vertices) == 0 }

// Segments is a polyline sample of an edge: flat (x,y,z) triples, one
// per sample point, drawn as a connected line strip.
type Segments struct {
	Points   []float32 `json:"points"`
	Color    Color     `json:"color"`
	PartName string    `json:"partName"`
}

// PointCount returns the number of sample points on the polyline.
func (s *Segments) PointCount() int { return len(s.Points) / 3 }

// Points is a standalone point list for vertex glyphs (corners,
// intersection markers), flat (x,y,z) triples.
type Points struct {
	Points   []float32 `json:"points"`
	Color    Color     `json:"color"`
	PartName string    `json:"partName"`
}

// Count returns the number of points.
func (p *Points) Count() int { return len(p.Points) / 3 }
