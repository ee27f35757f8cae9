package collision

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/automoto/islandcore/pool"
	"github.com/automoto/islandcore/shared/gamemath"
)

// Config sizes a collision System.
type Config struct {
	TileWidth            float64
	TileHeight           float64
	MaxTemporarySurfaces int
}

// System answers ray and box queries against the static tile world and the
// temporary segments submitted for the current frame. All of its state is
// owned by the simulation goroutine.
type System struct {
	tileWidth  float64
	tileHeight float64

	tiles *TileSet
	world *World

	// Temporary segments are double buffered: submissions land in pending and
	// become active at the next Update, so a surface submitted during frame N
	// is visible for all of frame N+1 regardless of system order. The pool
	// holds both buffers, so it is twice the per-frame budget.
	active   []*LineSegment
	pending  []*LineSegment
	segments *pool.Pool[LineSegment]
	dropped  int

	logger *log.Logger
}

func NewSystem(cfg Config, logger *log.Logger) *System {
	if logger == nil {
		logger = log.Default()
	}
	if cfg.TileWidth <= 0 {
		cfg.TileWidth = 32
	}
	if cfg.TileHeight <= 0 {
		cfg.TileHeight = 32
	}
	return &System{
		tileWidth:  cfg.TileWidth,
		tileHeight: cfg.TileHeight,
		tiles:      NewTileSet(),
		active:     make([]*LineSegment, 0, cfg.MaxTemporarySurfaces),
		pending:    make([]*LineSegment, 0, cfg.MaxTemporarySurfaces),
		segments:   pool.New[LineSegment]("temporary-segments", 2*cfg.MaxTemporarySurfaces, nil, logger),
		logger:     logger,
	}
}

func (s *System) TileWidth() float64  { return s.tileWidth }
func (s *System) TileHeight() float64 { return s.tileHeight }
func (s *System) Tiles() *TileSet     { return s.tiles }
func (s *System) World() *World       { return s.world }

// SegmentPool exposes the temporary segment pool for audits.
func (s *System) SegmentPool() *pool.Pool[LineSegment] { return s.segments }

// SetWorld installs the tile grid. A nil world disables static queries.
func (s *System) SetWorld(world *World) {
	s.world = world
}

// SetTiles installs the tile table. Nil installs an empty table.
func (s *System) SetTiles(tiles *TileSet) {
	if tiles == nil {
		tiles = NewTileSet()
	}
	s.tiles = tiles
}

// LoadCollisionTiles parses a collision tile file into the tile table.
// Malformed data leaves the table empty and returns false; the level then
// simply has no static collision.
func (s *System) LoadCollisionTiles(r io.Reader) bool {
	tiles, err := ParseTiles(r)
	if err != nil {
		s.logger.Warn("collision tiles not loaded", "error", err)
		s.tiles = NewTileSet()
		return false
	}
	s.tiles = tiles
	s.logger.Info("loaded collision tiles", "tiles", tiles.Len(), "segments", tiles.SegmentCount())
	return true
}

// LoadWorld parses a tile grid file. Malformed data removes the world.
func (s *System) LoadWorld(r io.Reader) bool {
	world, err := ParseWorld(r)
	if err != nil {
		s.logger.Warn("collision world not loaded", "error", err)
		s.world = nil
		return false
	}
	s.world = world
	s.logger.Info("loaded collision world", "width", world.Width(), "height", world.Height())
	return true
}

// Update swaps the temporary segment buffers. Call it exactly once per
// simulation step, before any query that should see last step's surfaces.
func (s *System) Update(timeDelta float64) {
	for _, seg := range s.active {
		s.segments.Release(seg)
	}
	clear(s.active)
	s.active = s.active[:0]
	s.active, s.pending = s.pending, s.active
}

// AddTemporarySurface stages a surface that will be visible for exactly one
// step after the next Update. It returns false when the frame's surface
// budget is spent.
func (s *System) AddTemporarySurface(start, end, normal gamemath.Vector2, owner OwnerID) bool {
	if len(s.pending) == cap(s.pending) {
		s.dropped++
		return false
	}
	seg, ok := s.segments.Allocate()
	if !ok {
		s.dropped++
		return false
	}
	*seg = NewSegment(start, end, normal)
	seg.Owner = owner
	s.pending = append(s.pending, seg)
	return true
}

// ClearTemporarySurfaces drops both buffers, used when a level unloads.
func (s *System) ClearTemporarySurfaces() {
	for _, seg := range s.active {
		s.segments.Release(seg)
	}
	for _, seg := range s.pending {
		s.segments.Release(seg)
	}
	clear(s.active)
	clear(s.pending)
	s.active = s.active[:0]
	s.pending = s.pending[:0]
}

// EachTemporarySurface visits the surfaces queries currently see.
func (s *System) EachTemporarySurface(fn func(LineSegment)) {
	for _, seg := range s.active {
		fn(*seg)
	}
}

// EachStaticSegment visits every static segment in world coordinates.
func (s *System) EachStaticSegment(fn func(LineSegment)) {
	if s.world == nil {
		return
	}
	for y := 0; y < s.world.Height(); y++ {
		for x := 0; x < s.world.Width(); x++ {
			tile := s.tiles.Tile(s.world.TileAt(x, y))
			if tile == nil {
				continue
			}
			offset := s.tileOrigin(x, y)
			for _, seg := range tile.Segments {
				fn(seg.Translate(offset))
			}
		}
	}
}

// DroppedSurfaces counts temporary surfaces rejected for lack of room.
func (s *System) DroppedSurfaces() int { return s.dropped }

// WorldBounds returns the size of the tile world in world units.
func (s *System) WorldBounds() gamemath.Vector2 {
	if s.world == nil {
		return gamemath.Vector2{}
	}
	return gamemath.Vec(float64(s.world.Width())*s.tileWidth, float64(s.world.Height())*s.tileHeight)
}

// CastRay returns the first surface hit travelling from start to end. The
// static grid is walked cell by cell and stops at the first cell holding a
// qualifying segment; within that cell the hit nearest start wins. Temporary
// surfaces are tested afterwards and replace the static hit only when
// strictly closer.
func (s *System) CastRay(start, end gamemath.Vector2, filter Filter) (HitPoint, bool) {
	hit, found := s.castStatic(start, end, filter)

	if len(s.active) > 0 {
		if temp, ok := nearestOnList(s.active, start, end, filter); ok {
			if !found || start.Distance2(temp.Point) < start.Distance2(hit.Point) {
				hit, found = temp, true
			}
		}
	}
	return hit, found
}

func (s *System) castStatic(start, end gamemath.Vector2, filter Filter) (HitPoint, bool) {
	if s.world == nil {
		return HitPoint{}, false
	}

	stepper := newTileStepper(start, end, s.tileWidth, s.tileHeight, s.world.Width(), s.world.Height())
	for {
		x, y, ok := stepper.next()
		if !ok {
			return HitPoint{}, false
		}
		tile := s.tiles.Tile(s.world.TileAt(x, y))
		if tile == nil {
			continue
		}

		origin := s.tileOrigin(x, y)
		localStart := start.Sub(origin)
		localEnd := end.Sub(origin)
		if hit, ok := nearestOnTile(tile.Segments, localStart, localEnd, filter); ok {
			hit.Point = hit.Point.Add(origin)
			return hit, true
		}
	}
}

func nearestOnTile(segments []LineSegment, start, end gamemath.Vector2, filter Filter) (HitPoint, bool) {
	var best HitPoint
	bestDistance := 0.0
	found := false
	for i := range segments {
		seg := &segments[i]
		if !filter.accepts(seg) {
			continue
		}
		point, ok := seg.Intersect(start, end)
		if !ok {
			continue
		}
		if d := start.Distance2(point); !found || d < bestDistance {
			best = HitPoint{Point: point, Normal: seg.Normal}
			bestDistance = d
			found = true
		}
	}
	return best, found
}

func nearestOnList(segments []*LineSegment, start, end gamemath.Vector2, filter Filter) (HitPoint, bool) {
	var best HitPoint
	bestDistance := 0.0
	found := false
	for _, seg := range segments {
		if !filter.accepts(seg) {
			continue
		}
		point, ok := seg.Intersect(start, end)
		if !ok {
			continue
		}
		if d := start.Distance2(point); !found || d < bestDistance {
			best = HitPoint{Point: point, Normal: seg.Normal}
			bestDistance = d
			found = true
		}
	}
	return best, found
}

// TestBox collects every qualifying segment crossing the box into hits,
// stopping once hits is full. Static tiles are scanned in the direction of
// travel so earlier entries are the ones met first; dynamicOnly skips them.
// Temporary surfaces are always tested. The bool reports whether any
// qualifying hit existed, even if hits had no room for it.
func (s *System) TestBox(left, right, top, bottom float64, filter Filter, dynamicOnly bool, hits []HitPoint) ([]HitPoint, bool) {
	found := false

	if s.world != nil && !dynamicOnly {
		width, height := s.world.Width(), s.world.Height()
		leftTile := tileIndex(left, s.tileWidth, width)
		rightTile := tileIndex(right, s.tileWidth, width)
		bottomTile := tileIndex(bottom, s.tileHeight, height)
		topTile := tileIndex(top, s.tileHeight, height)

		startX, endX, stepX := leftTile, rightTile, 1
		startY, endY, stepY := bottomTile, topTile, 1
		if filter.Directed {
			if filter.Direction.X < 0 {
				startX, endX, stepX = rightTile, leftTile, -1
			}
			if filter.Direction.Y < 0 {
				startY, endY, stepY = topTile, bottomTile, -1
			}
		}

		for y := startY; y != endY+stepY; y += stepY {
			for x := startX; x != endX+stepX; x += stepX {
				tile := s.tiles.Tile(s.world.TileAt(x, y))
				if tile == nil {
					continue
				}
				origin := s.tileOrigin(x, y)
				var hit bool
				hits, hit = boxAgainstTile(tile.Segments, left-origin.X, right-origin.X, top-origin.Y, bottom-origin.Y, origin, filter, hits)
				found = found || hit
			}
		}
	}

	for _, seg := range s.active {
		if !filter.accepts(seg) {
			continue
		}
		point, ok := seg.IntersectBox(left, right, top, bottom)
		if !ok {
			continue
		}
		found = true
		if len(hits) < cap(hits) {
			hits = append(hits, HitPoint{Point: point, Normal: seg.Normal})
		}
	}
	return hits, found
}

func boxAgainstTile(segments []LineSegment, left, right, top, bottom float64, origin gamemath.Vector2, filter Filter, hits []HitPoint) ([]HitPoint, bool) {
	found := false
	for i := range segments {
		seg := &segments[i]
		if !filter.accepts(seg) {
			continue
		}
		point, ok := seg.IntersectBox(left, right, top, bottom)
		if !ok {
			continue
		}
		found = true
		if len(hits) < cap(hits) {
			hits = append(hits, HitPoint{Point: point.Add(origin), Normal: seg.Normal})
		}
	}
	return hits, found
}

// tileOrigin is the world position of cell (x, y)'s bottom-left corner.
func (s *System) tileOrigin(x, y int) gamemath.Vector2 {
	return gamemath.Vec(float64(x)*s.tileWidth, float64(y)*s.tileHeight)
}
