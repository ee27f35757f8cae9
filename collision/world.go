package collision

// EmptyCell marks a grid cell with no tile.
const EmptyCell = -1

// World is the level's grid of tile indices. Coordinates passed to its
// methods have row 0 at the bottom of the level; storage keeps row 0 at the
// top, matching the level files.
type World struct {
	width  int
	height int
	cells  []int16
}

// NewWorld returns a width x height grid with every cell empty.
func NewWorld(width, height int) *World {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	w := &World{width: width, height: height, cells: make([]int16, width*height)}
	for i := range w.cells {
		w.cells[i] = EmptyCell
	}
	return w
}

func (w *World) Width() int  { return w.width }
func (w *World) Height() int { return w.height }

// TileAt returns the tile index at column x, row y (bottom-up), or EmptyCell
// when the cell is empty or out of range.
func (w *World) TileAt(x, y int) int {
	if w == nil || x < 0 || y < 0 || x >= w.width || y >= w.height {
		return EmptyCell
	}
	return int(w.cells[w.offset(x, y)])
}

// SetTile stores index at column x, row y (bottom-up). Negative indices
// clear the cell.
func (w *World) SetTile(x, y, index int) {
	if x < 0 || y < 0 || x >= w.width || y >= w.height {
		return
	}
	if index < 0 {
		index = EmptyCell
	}
	w.cells[w.offset(x, y)] = int16(index)
}

func (w *World) offset(x, y int) int {
	return (w.height-1-y)*w.width + x
}
