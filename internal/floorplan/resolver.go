package floorplan

import (
	"math"
	"sort"

	"github.com/dhconnelly/rtreego"
)

// ResolveWalls collapses duplicate detections of the same physical wall.
//
// Raster wall detection usually reports both edges of a drawn wall as two
// near-identical parallel lines. ResolveWalls walks the segments in input
// order; each segment not yet claimed by an earlier group starts a group and
// claims every later, unclaimed segment of the same orientation whose
// coordinates are within Params.GroupThreshold of it:
//
//   - horizontal pair: |Δx1|, |Δx2| and |Δy1| all below the threshold
//   - vertical pair:   |Δy1|, |Δy2| and |Δx1| all below the threshold
//
// A group of one is kept as is. A larger group is replaced by its interior
// representative: the member with the smallest Y1 for a horizontal group, or
// the largest X1 for a vertical group, earliest member winning ties. The
// representative is returned verbatim; coordinates are never averaged.
//
// Segments that are neither horizontal nor vertical never group and pass
// through unchanged. The result preserves discovery order, never exceeds the
// input length and only contains input segments.
func ResolveWalls(segments []Segment, p Params) []Segment {
	if len(segments) == 0 {
		return []Segment{}
	}
	if p.IndexThreshold > 0 && len(segments) >= p.IndexThreshold {
		return resolveIndexed(segments, p)
	}
	return resolvePairwise(segments, p)
}

// sameWall reports whether other belongs in the group started by current.
func (p Params) sameWall(current, other Segment) bool {
	t := p.GroupThreshold
	if p.horizontal(current) && p.horizontal(other) &&
		math.Abs(current.X1-other.X1) < t &&
		math.Abs(current.X2-other.X2) < t &&
		math.Abs(current.Y1-other.Y1) < t {
		return true
	}
	return p.vertical(current) && p.vertical(other) &&
		math.Abs(current.Y1-other.Y1) < t &&
		math.Abs(current.Y2-other.Y2) < t &&
		math.Abs(current.X1-other.X1) < t
}

// interior picks the representative of a group given as ascending input
// indices; group[0] is the segment that started it.
func (p Params) interior(segments []Segment, group []int) Segment {
	best := segments[group[0]]
	if len(group) == 1 {
		return best
	}
	horizontal := p.horizontal(best)
	for _, idx := range group[1:] {
		s := segments[idx]
		if horizontal && s.Y1 < best.Y1 || !horizontal && s.X1 > best.X1 {
			best = s
		}
	}
	return best
}

func resolvePairwise(segments []Segment, p Params) []Segment {
	used := make([]bool, len(segments))
	out := make([]Segment, 0, len(segments))

	for i := range segments {
		if used[i] {
			continue
		}
		used[i] = true
		group := []int{i}

		for j := i + 1; j < len(segments); j++ {
			if used[j] {
				continue
			}
			if p.sameWall(segments[i], segments[j]) {
				group = append(group, j)
				used[j] = true
			}
		}

		out = append(out, p.interior(segments, group))
	}
	return out
}

// indexedSegment places a segment in a 3-D key space so that the grouping
// predicate becomes a box query: (x1, x2, y1) for horizontal segments and
// (y1, y2, x1) for vertical ones.
type indexedSegment struct {
	index int
	key   rtreego.Point
}

func (s *indexedSegment) Bounds() rtreego.Rect {
	return s.key.ToRect(keyTolerance)
}

// keyTolerance gives indexed points a non-degenerate extent. The box query
// is only a prefilter, so its exact size is irrelevant to the result.
const keyTolerance = 1e-6

func horizontalKey(s Segment) rtreego.Point { return rtreego.Point{s.X1, s.X2, s.Y1} }
func verticalKey(s Segment) rtreego.Point   { return rtreego.Point{s.Y1, s.Y2, s.X1} }

// resolveIndexed produces the same result as resolvePairwise but finds
// candidates through one R-tree per orientation instead of scanning every
// later segment.
func resolveIndexed(segments []Segment, p Params) []Segment {
	hTree := rtreego.NewTree(3, 25, 50)
	vTree := rtreego.NewTree(3, 25, 50)
	for i, s := range segments {
		if p.horizontal(s) {
			hTree.Insert(&indexedSegment{index: i, key: horizontalKey(s)})
		}
		if p.vertical(s) {
			vTree.Insert(&indexedSegment{index: i, key: verticalKey(s)})
		}
	}

	used := make([]bool, len(segments))
	out := make([]Segment, 0, len(segments))

	for i, current := range segments {
		if used[i] {
			continue
		}
		used[i] = true

		var candidates []rtreego.Spatial
		if p.horizontal(current) {
			candidates = append(candidates, hTree.SearchIntersect(queryBox(horizontalKey(current), p.GroupThreshold))...)
		}
		if p.vertical(current) {
			candidates = append(candidates, vTree.SearchIntersect(queryBox(verticalKey(current), p.GroupThreshold))...)
		}

		group := []int{i}
		for _, c := range candidates {
			j := c.(*indexedSegment).index
			if j <= i || used[j] {
				continue
			}
			if p.sameWall(current, segments[j]) {
				group = append(group, j)
				used[j] = true
			}
		}
		sort.Ints(group)

		out = append(out, p.interior(segments, group))
	}
	return out
}

func queryBox(center rtreego.Point, threshold float64) rtreego.Rect {
	corner := make(rtreego.Point, len(center))
	lengths := make([]float64, len(center))
	for d := range center {
		corner[d] = center[d] - threshold
		lengths[d] = 2 * threshold
	}
	// lengths are positive whenever Params.Validate passed.
	box, _ := rtreego.NewRect(corner, lengths)
	return box
}
