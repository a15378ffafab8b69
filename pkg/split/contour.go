package split

import (
	"github.com/chazu/geop/pkg/config"
	"github.com/chazu/geop/pkg/containment"
	"github.com/chazu/geop/pkg/errs"
	"github.com/chazu/geop/pkg/topology"
	"github.com/chazu/geop/pkg/vector"
)

// Contour refines c by inserting a vertex at p (spec §4.9): the edge
// (or corner) containing p is located, and if p is strictly interior
// to that edge the edge is replaced by its two sub-edges. If p is
// already a corner, c is returned unchanged.
func Contour(cfg config.Config, c topology.Contour, p vector.Vec) (topology.Contour, error) {
	for i, e := range c.Edges {
		state, err := containment.PointInEdge(cfg, e, p)
		if err != nil {
			return topology.Contour{}, errs.Wrap(err, "split.Contour: locating point on boundary")
		}
		switch state {
		case containment.EdgeOnPoint:
			return c, nil
		case containment.EdgeInside:
			parts, err := Edge(cfg, e, []vector.Vec{p})
			if err != nil {
				return topology.Contour{}, errs.Wrap(err, "split.Contour: splitting edge at point")
			}
			edges := make([]topology.Edge, 0, len(c.Edges)+len(parts)-1)
			edges = append(edges, c.Edges[:i]...)
			edges = append(edges, parts...)
			edges = append(edges, c.Edges[i+1:]...)
			return topology.NewContour(edges)
		}
	}
	return topology.Contour{}, errs.New(errs.DomainError, "split.Contour: point does not lie on the contour")
}
