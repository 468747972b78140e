package workspace

import (
	"github.com/dhconnelly/rtreego"

	"rrt-planner/internal/geometry"
)

// queryTolerance pads a point query so integer points on a box face still
// intersect it. Exact half-open containment is applied afterwards.
const queryTolerance = 0.25

// ObstacleEntry wraps an obstacle square for R-tree storage
type ObstacleEntry struct {
	Rect geometry.Rect
	BBox rtreego.Rect
}

// Bounds implements rtreego.Spatial interface
func (o *ObstacleEntry) Bounds() rtreego.Rect {
	return o.BBox
}

// Index manages obstacle spatial queries
type Index struct {
	tree *rtreego.Rtree
}

// NewIndex creates a new spatial index over the given obstacles.
func NewIndex(rects []geometry.Rect) (*Index, error) {
	idx := &Index{tree: rtreego.NewTree(2, 25, 50)} // 2D, min 25, max 50 entries per node
	for _, r := range rects {
		if err := idx.Insert(r); err != nil {
			return nil, err
		}
	}
	return idx, nil
}

// Insert adds an obstacle to the index.
func (idx *Index) Insert(r geometry.Rect) error {
	bbox, err := boundingBox(r)
	if err != nil {
		return err
	}
	idx.tree.Insert(&ObstacleEntry{Rect: r, BBox: bbox})
	return nil
}

// Size returns the number of indexed obstacles.
func (idx *Index) Size() int {
	return idx.tree.Size()
}

// Containing returns the obstacles whose half-open area contains p.
func (idx *Index) Containing(p geometry.Point) []geometry.Rect {
	query, err := rtreego.NewRect(
		rtreego.Point{float64(p.X) - queryTolerance, float64(p.Y) - queryTolerance},
		[]float64{2 * queryTolerance, 2 * queryTolerance},
	)
	if err != nil {
		return nil
	}

	var hits []geometry.Rect
	for _, item := range idx.tree.SearchIntersect(query) {
		entry := item.(*ObstacleEntry)
		if entry.Rect.Contains(p) {
			hits = append(hits, entry.Rect)
		}
	}
	return hits
}

// Overlapping returns the indexed obstacles sharing interior area with r.
func (idx *Index) Overlapping(r geometry.Rect) []geometry.Rect {
	query, err := boundingBox(r)
	if err != nil {
		return nil
	}

	var hits []geometry.Rect
	for _, item := range idx.tree.SearchIntersect(query) {
		entry := item.(*ObstacleEntry)
		if entry.Rect.Overlaps(r) {
			hits = append(hits, entry.Rect)
		}
	}
	return hits
}

// boundingBox computes the closed R-tree box for an obstacle square.
func boundingBox(r geometry.Rect) (rtreego.Rect, error) {
	side := float64(r.Size)
	return rtreego.NewRect(
		rtreego.Point{float64(r.Min.X), float64(r.Min.Y)},
		[]float64{side, side},
	)
}
