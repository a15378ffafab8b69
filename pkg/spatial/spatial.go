// Package spatial implements the broad-phase candidate index: an
// R-tree over entity bounding boxes (via rtreego, the teacher's own
// indirect dependency promoted to direct use here), consulted by
// pkg/boolean's face-face phase before its exact edge-edge
// intersection math. Entities are identified by uuid.UUID, the same ID
// the topology entities carry.
package spatial

import (
	"bytes"

	"github.com/chazu/geop/pkg/config"
	"github.com/chazu/geop/pkg/vector"
	"github.com/dhconnelly/rtreego"
	"github.com/google/uuid"
)

const dims = 3

// rtreego's fan-out bounds; unrelated to any geometric tolerance, just
// the tree's branching factor.
const (
	minBranches = 25
	maxBranches = 50
)

// item adapts a bounding box to rtreego.Spatial.
type item struct {
	id  uuid.UUID
	box vector.BoundingBox
	pad float64
}

func (it item) Bounds() rtreego.Rect {
	minX, maxX := it.box.MinX.Mid(), it.box.MaxX.Mid()
	minY, maxY := it.box.MinY.Mid(), it.box.MaxY.Mid()
	minZ, maxZ := it.box.MinZ.Mid(), it.box.MaxZ.Mid()

	origin := rtreego.Point{minX, minY, minZ}
	lengths := []float64{
		padLength(maxX-minX, it.pad),
		padLength(maxY-minY, it.pad),
		padLength(maxZ-minZ, it.pad),
	}
	rect, err := rtreego.NewRect(origin, lengths)
	if err != nil {
		// rtreego.NewRect only fails on a non-positive length, which
		// padLength rules out; a BoundingBox can never reach here
		// with min > max since every constructor keeps it sorted.
		panic("spatial: degenerate bounding box: " + err.Error())
	}
	return rect
}

// padLength guards against rtreego's requirement that every dimension
// have strictly positive extent — a flat entity (a Plane-bound face,
// an edge lying exactly on an axis) would otherwise produce a
// zero-length side.
func padLength(length, pad float64) float64 {
	if length < pad {
		return pad
	}
	return length
}

// Index is an R-tree over entity bounding boxes, keyed by uuid.UUID.
type Index struct {
	tree *rtreego.Rtree
	pad  float64
	byID map[uuid.UUID]item
}

// NewIndex builds an empty index. pad sets the minimum side length of
// any inserted box (cfg.EqThreshold is the natural choice: anything
// tighter isn't distinguishable from degenerate at this kernel's
// working tolerance).
func NewIndex(cfg config.Config) *Index {
	return &Index{
		tree: rtreego.NewTree(dims, minBranches, maxBranches),
		pad:  cfg.EqThreshold,
		byID: make(map[uuid.UUID]item),
	}
}

// Insert adds or replaces the entity id's bounding box.
func (idx *Index) Insert(id uuid.UUID, box vector.BoundingBox) {
	idx.Remove(id)
	it := item{id: id, box: box, pad: idx.pad}
	idx.byID[id] = it
	idx.tree.Insert(it)
}

// Remove drops id from the index, reporting whether it was present.
func (idx *Index) Remove(id uuid.UUID) bool {
	it, ok := idx.byID[id]
	if !ok {
		return false
	}
	delete(idx.byID, id)
	return idx.tree.Delete(it)
}

// Len reports how many entities are currently indexed.
func (idx *Index) Len() int {
	return len(idx.byID)
}

// Candidates returns every indexed entity whose bounding box might
// overlap box — the broad-phase set pkg/boolean's face-face phase
// filters down with exact edge-edge intersection.
func (idx *Index) Candidates(box vector.BoundingBox) []uuid.UUID {
	probe := item{box: box, pad: idx.pad}
	hits := idx.tree.SearchIntersect(probe.Bounds())
	ids := make([]uuid.UUID, 0, len(hits))
	for _, h := range hits {
		ids = append(ids, h.(item).id)
	}
	return ids
}

// Pairs returns every pair of indexed entities whose bounding boxes
// might overlap, each unordered pair reported exactly once.
func (idx *Index) Pairs() [][2]uuid.UUID {
	var pairs [][2]uuid.UUID
	seen := make(map[[2]uuid.UUID]bool)
	for id, it := range idx.byID {
		for _, other := range idx.Candidates(it.box) {
			if other == id {
				continue
			}
			pair := orderedPair(id, other)
			if seen[pair] {
				continue
			}
			seen[pair] = true
			pairs = append(pairs, pair)
		}
	}
	return pairs
}

func orderedPair(a, b uuid.UUID) [2]uuid.UUID {
	if bytes.Compare(a[:], b[:]) <= 0 {
		return [2]uuid.UUID{a, b}
	}
	return [2]uuid.UUID{b, a}
}
