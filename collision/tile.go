package collision

// MaxTiles is the size of the tile definition table; tile indices are bytes.
const MaxTiles = 256

// Tile holds the segments of one collision tile in tile-local coordinates,
// with (0,0) at the tile's bottom-left corner. Its length is fixed when the
// tile is loaded.
type Tile struct {
	Segments []LineSegment
}

// TileSet maps tile indices to collision tiles. Most indices are empty.
type TileSet struct {
	tiles [MaxTiles]*Tile
}

func NewTileSet() *TileSet {
	return &TileSet{}
}

// Tile returns the tile for index, or nil when index has no collision.
func (ts *TileSet) Tile(index int) *Tile {
	if ts == nil || index < 0 || index >= MaxTiles {
		return nil
	}
	return ts.tiles[index]
}

// Set stores segments for index. An empty segment list clears the entry.
func (ts *TileSet) Set(index int, segments []LineSegment) {
	if index < 0 || index >= MaxTiles {
		return
	}
	if len(segments) == 0 {
		ts.tiles[index] = nil
		return
	}
	ts.tiles[index] = &Tile{Segments: segments}
}

// Len returns the number of non-empty tiles.
func (ts *TileSet) Len() int {
	if ts == nil {
		return 0
	}
	n := 0
	for _, t := range ts.tiles {
		if t != nil {
			n++
		}
	}
	return n
}

// SegmentCount returns the total number of segments across all tiles.
func (ts *TileSet) SegmentCount() int {
	if ts == nil {
		return 0
	}
	n := 0
	for _, t := range ts.tiles {
		if t != nil {
			n += len(t.Segments)
		}
	}
	return n
}

// Each visits non-empty tiles in index order.
func (ts *TileSet) Each(fn func(index int, t *Tile)) {
	if ts == nil {
		return
	}
	for i, t := range ts.tiles {
		if t != nil {
			fn(i, t)
		}
	}
}
