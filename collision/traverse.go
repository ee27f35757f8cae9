package collision

import (
	"math"

	"github.com/automoto/islandcore/shared/gamemath"
)

// tileStepper walks every grid cell a ray passes through, from the start
// cell to the end cell inclusive. Both end cells are clamped into the grid.
// Rays that keep a constant column or row degrade to a straight walk along
// the other axis. It is a value type so a cast allocates nothing.
type tileStepper struct {
	x, y         int
	endX, endY   int
	stepX, stepY int

	tMaxX, tMaxY     float64
	tDeltaX, tDeltaY float64

	started bool
	done    bool
}

func newTileStepper(start, end gamemath.Vector2, tileWidth, tileHeight float64, width, height int) tileStepper {
	s := tileStepper{
		x:    tileIndex(start.X, tileWidth, width),
		y:    tileIndex(start.Y, tileHeight, height),
		endX: tileIndex(end.X, tileWidth, width),
		endY: tileIndex(end.Y, tileHeight, height),
	}
	s.stepX, s.tMaxX, s.tDeltaX = axisStep(start.X, end.X-start.X, s.x, tileWidth)
	s.stepY, s.tMaxY, s.tDeltaY = axisStep(start.Y, end.Y-start.Y, s.y, tileHeight)
	return s
}

func axisStep(origin, delta float64, cell int, size float64) (step int, tMax, tDelta float64) {
	switch {
	case delta > 0:
		return 1, (float64(cell+1)*size - origin) / delta, size / delta
	case delta < 0:
		return -1, (float64(cell)*size - origin) / delta, -size / delta
	}
	return 0, math.Inf(1), math.Inf(1)
}

// next returns the next cell on the ray.
func (s *tileStepper) next() (x, y int, ok bool) {
	if s.done {
		return 0, 0, false
	}
	if !s.started {
		s.started = true
		return s.x, s.y, true
	}
	if s.x == s.endX && s.y == s.endY {
		s.done = true
		return 0, 0, false
	}

	switch {
	case s.x == s.endX:
		s.advanceY()
	case s.y == s.endY:
		s.advanceX()
	case s.tMaxX < s.tMaxY:
		s.advanceX()
	default:
		s.advanceY()
	}
	return s.x, s.y, true
}

func (s *tileStepper) advanceX() {
	s.x += towards(s.x, s.endX, s.stepX)
	s.tMaxX += s.tDeltaX
}

func (s *tileStepper) advanceY() {
	s.y += towards(s.y, s.endY, s.stepY)
	s.tMaxY += s.tDeltaY
}

// towards keeps the walk moving at the end cell even when a non-finite
// delta produced no step.
func towards(cell, end, step int) int {
	switch {
	case cell < end:
		return 1
	case cell > end:
		return -1
	}
	return step
}

// tileIndex converts a world coordinate to a cell index clamped to
// [0, count-1].
func tileIndex(v, size float64, count int) int {
	if count <= 0 || math.IsNaN(v) {
		return 0
	}
	// Clamp before converting; huge floats do not convert to int sanely.
	cell := gamemath.ClampFloat(math.Floor(v/size), 0, float64(count-1))
	return int(cell)
}
