package boolean

import (
	"github.com/chazu/geop/pkg/config"
	"github.com/chazu/geop/pkg/topology"
)

// UnionFaces, IntersectFaces and DiffFaces are the spec §6 public
// entry points ("combine two faces... with union/intersection/
// difference") for two faces sharing a supporting surface.
func UnionFaces(cfg config.Config, a, b topology.Face) ([]topology.Face, error) {
	return Faces(cfg, a, b, Union)
}

func IntersectFaces(cfg config.Config, a, b topology.Face) ([]topology.Face, error) {
	return Faces(cfg, a, b, Intersection)
}

func DiffFaces(cfg config.Config, a, b topology.Face) ([]topology.Face, error) {
	return Faces(cfg, a, b, Difference)
}

// UnionVolumes, IntersectVolumes and DiffVolumes are the spec §6 public
// entry points for two shells.
func UnionVolumes(cfg config.Config, a, b topology.Shell) (topology.Shell, error) {
	return Volumes(cfg, a, b, Union)
}

func IntersectVolumes(cfg config.Config, a, b topology.Shell) (topology.Shell, error) {
	return Volumes(cfg, a, b, Intersection)
}

func DiffVolumes(cfg config.Config, a, b topology.Shell) (topology.Shell, error) {
	return Volumes(cfg, a, b, Difference)
}
