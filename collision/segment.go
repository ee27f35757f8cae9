// Package collision implements static tile-based level collision: a grid of
// tile indices, a table of per-tile line segments, ray casts and box sweeps
// against them, plus a one-frame set of temporary segments submitted by
// moving solids.
package collision

import (
	"math"

	"github.com/automoto/islandcore/shared/gamemath"
)

// OwnerID identifies the game object that submitted a temporary segment.
// It is a weak reference: stale IDs simply never match a live object.
type OwnerID uint32

// NoOwner marks static level geometry.
const NoOwner OwnerID = 0

// LineSegment is one collision surface. Normal is unit length and points to
// the side the surface pushes objects toward.
type LineSegment struct {
	Start  gamemath.Vector2
	End    gamemath.Vector2
	Normal gamemath.Vector2
	Owner  OwnerID
}

func NewSegment(start, end, normal gamemath.Vector2) LineSegment {
	return LineSegment{Start: start, End: end, Normal: normal.Normalize()}
}

// Translate returns the segment moved by offset.
func (s LineSegment) Translate(offset gamemath.Vector2) LineSegment {
	s.Start = s.Start.Add(offset)
	s.End = s.End.Add(offset)
	return s
}

// Intersect tests s against the segment from a to b. Parallel lines never
// intersect, and neither do non-finite inputs.
func (s *LineSegment) Intersect(a, b gamemath.Vector2) (gamemath.Vector2, bool) {
	x1, y1 := s.Start.X, s.Start.Y
	x2, y2 := s.End.X, s.End.Y
	x3, y3 := a.X, a.Y
	x4, y4 := b.X, b.Y

	denom := (y4-y3)*(x2-x1) - (x4-x3)*(y2-y1)
	if denom == 0 || !finite(denom) {
		return gamemath.Vector2{}, false
	}

	ua := ((x4-x3)*(y1-y3) - (y4-y3)*(x1-x3)) / denom
	ub := ((x2-x1)*(y1-y3) - (y2-y1)*(x1-x3)) / denom
	// Written so NaN fails the range test.
	if !(ua >= 0 && ua <= 1 && ub >= 0 && ub <= 1) {
		return gamemath.Vector2{}, false
	}
	p := gamemath.Vector2{X: x1 + ua*(x2-x1), Y: y1 + ua*(y2-y1)}
	if !finite(p.X) || !finite(p.Y) {
		return gamemath.Vector2{}, false
	}
	return p, true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// IntersectBox clips s against the box and returns the point where the
// segment enters it. Y points up, so bottom < top.
func (s *LineSegment) IntersectBox(left, right, top, bottom float64) (gamemath.Vector2, bool) {
	x1, y1 := s.Start.X, s.Start.Y
	x2, y2 := s.End.X, s.End.Y

	tStart, tEnd := 0.0, 1.0

	enter, exit, ok := clipSlab(x1, x2, left, right)
	if !ok {
		return gamemath.Vector2{}, false
	}
	tStart = max(tStart, enter)
	tEnd = min(tEnd, exit)
	if tEnd < tStart {
		return gamemath.Vector2{}, false
	}

	enter, exit, ok = clipSlab(y1, y2, bottom, top)
	if !ok {
		return gamemath.Vector2{}, false
	}
	tStart = max(tStart, enter)
	tEnd = min(tEnd, exit)
	if tEnd < tStart {
		return gamemath.Vector2{}, false
	}

	p := gamemath.Vector2{X: x1 + (x2-x1)*tStart, Y: y1 + (y2-y1)*tStart}
	if !finite(p.X) || !finite(p.Y) {
		return gamemath.Vector2{}, false
	}
	return p, true
}

// clipSlab returns the parametric range of p1->p2 that lies inside [lo, hi].
// A zero-length span on this axis is either fully inside or rejected, so the
// divisions below never see a zero delta.
func clipSlab(p1, p2, lo, hi float64) (enter, exit float64, ok bool) {
	delta := p2 - p1
	enter, exit = 0, 1
	if p1 < p2 {
		if p1 > hi || p2 < lo {
			return 0, 0, false
		}
		if p1 < lo {
			enter = (lo - p1) / delta
		}
		if p2 > hi {
			exit = (hi - p1) / delta
		}
		return enter, exit, true
	}
	if p2 > hi || p1 < lo {
		return 0, 0, false
	}
	if p1 > hi {
		enter = (hi - p1) / delta
	}
	if p2 < lo {
		exit = (lo - p1) / delta
	}
	return enter, exit, true
}

// HitPoint is a collision result: where the hit happened and the normal of
// the surface that was hit.
type HitPoint struct {
	Point  gamemath.Vector2
	Normal gamemath.Vector2
}

// Filter narrows which segments a query may hit.
type Filter struct {
	// Direction, when Directed is set, rejects every segment whose normal does
	// not face against it (dot >= 0).
	Direction gamemath.Vector2
	Directed  bool
	// Exclude skips segments submitted by this owner.
	Exclude OwnerID
}

// AnyDirection accepts every segment.
var AnyDirection = Filter{}

// Moving filters by movement direction.
func Moving(direction gamemath.Vector2) Filter {
	return Filter{Direction: direction, Directed: true}
}

// Excluding returns f that also skips segments owned by id.
func (f Filter) Excluding(id OwnerID) Filter {
	f.Exclude = id
	return f
}

func (f Filter) accepts(s *LineSegment) bool {
	if f.Exclude != NoOwner && s.Owner == f.Exclude {
		return false
	}
	if f.Directed && f.Direction.Dot(s.Normal) >= 0 {
		return false
	}
	return true
}
