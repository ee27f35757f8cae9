package leveldata

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lafriks/go-tiled"

	"github.com/automoto/islandcore/collision"
	"github.com/automoto/islandcore/object"
	"github.com/automoto/islandcore/shared/gamemath"
)

// Tile indices written by the converter. A solid tile's index is its mask of
// faces open to a non-solid neighbor; fully enclosed tiles stay empty.
const (
	exposedTop = 1 << iota
	exposedBottom
	exposedLeft
	exposedRight

	solidVariants = 16
)

const (
	TilePlatform     = solidVariants + iota
	TileSlopeUpRight
	TileSlopeUpLeft
)

// cellKind is what one map cell contributes to collision.
type cellKind uint8

const (
	cellEmpty cellKind = iota
	cellSolid
	cellPlatform
	cellSlopeUpRight
	cellSlopeUpLeft
)

// Load parses a TMX file and converts its collision layer and spawn group.
// It takes an fs.FS so callers can pass embed.FS or os.DirFS.
func Load(fsys fs.FS, tmxPath string) (*Level, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}
	level, err := Convert(levelMap)
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", tmxPath, err)
	}
	level.Name = strings.TrimSuffix(filepath.Base(tmxPath), ".tmx")
	return level, nil
}

// Convert builds a level from a parsed map.
func Convert(levelMap *tiled.Map) (*Level, error) {
	kinds, err := cellKinds(levelMap)
	if err != nil {
		return nil, err
	}

	w, h := levelMap.Width, levelMap.Height
	tileW, tileH := float64(levelMap.TileWidth), float64(levelMap.TileHeight)
	level := &Level{
		Tiles:      TileSet(tileW, tileH),
		World:      collision.NewWorld(w, h),
		TileWidth:  tileW,
		TileHeight: tileH,
	}

	// Map rows run top-down; world rows run bottom-up. Past the map's sides
	// and bottom counts as solid, above it as open.
	at := func(x, y int) cellKind {
		if y < 0 {
			return cellEmpty
		}
		if x < 0 || x >= w || y >= h {
			return cellSolid
		}
		return kinds[y*w+x]
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			index := collision.EmptyCell
			switch at(x, y) {
			case cellSolid:
				mask := 0
				if at(x, y-1) != cellSolid {
					mask |= exposedTop
				}
				if at(x, y+1) != cellSolid {
					mask |= exposedBottom
				}
				if at(x-1, y) != cellSolid {
					mask |= exposedLeft
				}
				if at(x+1, y) != cellSolid {
					mask |= exposedRight
				}
				if mask != 0 {
					index = mask
				}
			case cellPlatform:
				index = TilePlatform
			case cellSlopeUpRight:
				index = TileSlopeUpRight
			case cellSlopeUpLeft:
				index = TileSlopeUpLeft
			}
			level.World.SetTile(x, h-1-y, index)
		}
	}

	level.Spawns, err = spawns(levelMap)
	if err != nil {
		return nil, err
	}
	return level, nil
}

func cellKinds(levelMap *tiled.Map) ([]cellKind, error) {
	for _, layer := range levelMap.Layers {
		if layer.Name != CollisionLayer {
			continue
		}
		kinds := make([]cellKind, levelMap.Width*levelMap.Height)
		for i := range kinds {
			if i >= len(layer.Tiles) {
				break
			}
			tile := layer.Tiles[i]
			if tile == nil || tile.IsNil() {
				continue
			}
			name := KindSolid
			if tile.Tileset != nil {
				if tilesetTile, err := tile.Tileset.GetTilesetTile(tile.ID); err == nil {
					if v := tilesetTile.Properties.GetString(PropertyCollision); v != "" {
						name = v
					}
				}
			}
			kind, err := parseKind(name)
			if err != nil {
				return nil, fmt.Errorf("tile %d at (%d,%d): %w", tile.ID, i%levelMap.Width, i/levelMap.Width, err)
			}
			kinds[i] = kind
		}
		return kinds, nil
	}
	return nil, ErrNoCollisionLayer
}

func parseKind(name string) (cellKind, error) {
	switch name {
	case KindSolid:
		return cellSolid, nil
	case KindPlatform:
		return cellPlatform, nil
	case KindSlopeUpRight:
		return cellSlopeUpRight, nil
	case KindSlopeUpLeft:
		return cellSlopeUpLeft, nil
	case KindNone:
		return cellEmpty, nil
	}
	return cellEmpty, fmt.Errorf("%w %q", ErrUnknownKind, name)
}

func spawns(levelMap *tiled.Map) ([]Spawn, error) {
	mapH := float64(levelMap.Height * levelMap.TileHeight)
	var out []Spawn
	for _, og := range levelMap.ObjectGroups {
		if og.Name != SpawnGroup {
			continue
		}
		for _, o := range og.Objects {
			name := o.Properties.GetString(PropertySpawn)
			if name == "" {
				name = o.Name
			}
			t, ok := object.ParseSpawnType(name)
			if !ok {
				return nil, fmt.Errorf("%w %q (object %d)", ErrUnknownSpawn, name, o.ID)
			}
			out = append(out, Spawn{
				Type: t,
				X:    o.X,
				Y:    mapH - (o.Y + o.Height),
				Flip: o.Properties.GetBool(PropertyFlip),
			})
		}
	}

	// Left to right, then bottom up, for a stable spawn order.
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].X != out[j].X {
			return out[i].X < out[j].X
		}
		return out[i].Y < out[j].Y
	})
	return out, nil
}

// TileSet returns the collision tiles every converted level indexes into.
func TileSet(tileW, tileH float64) *collision.TileSet {
	var (
		top    = collision.NewSegment(gamemath.Vec(0, tileH), gamemath.Vec(tileW, tileH), gamemath.Vec(0, 1))
		bottom = collision.NewSegment(gamemath.Vec(0, 0), gamemath.Vec(tileW, 0), gamemath.Vec(0, -1))
		left   = collision.NewSegment(gamemath.Vec(0, 0), gamemath.Vec(0, tileH), gamemath.Vec(-1, 0))
		right  = collision.NewSegment(gamemath.Vec(tileW, 0), gamemath.Vec(tileW, tileH), gamemath.Vec(1, 0))
	)

	ts := collision.NewTileSet()
	for mask := 1; mask < solidVariants; mask++ {
		segments := make([]collision.LineSegment, 0, 4)
		if mask&exposedTop != 0 {
			segments = append(segments, top)
		}
		if mask&exposedBottom != 0 {
			segments = append(segments, bottom)
		}
		if mask&exposedLeft != 0 {
			segments = append(segments, left)
		}
		if mask&exposedRight != 0 {
			segments = append(segments, right)
		}
		ts.Set(mask, segments)
	}
	ts.Set(TilePlatform, []collision.LineSegment{top})
	ts.Set(TileSlopeUpRight, []collision.LineSegment{
		collision.NewSegment(gamemath.Vec(0, 0), gamemath.Vec(tileW, tileH), gamemath.Vec(-1, 1)),
		bottom,
		right,
	})
	ts.Set(TileSlopeUpLeft, []collision.LineSegment{
		collision.NewSegment(gamemath.Vec(0, tileH), gamemath.Vec(tileW, 0), gamemath.Vec(1, 1)),
		bottom,
		left,
	})
	return ts
}

// LoadAll discovers all .tmx files in dir within fsys, converts each, and
// returns them keyed by stem name plus a sorted list of names.
func LoadAll(fsys fs.FS, dir string) (map[string]*Level, []string, error) {
	pattern := dir + "/*.tmx"
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("no .tmx files found in %s", dir)
	}

	levels := make(map[string]*Level, len(matches))
	names := make([]string, 0, len(matches))
	for _, path := range matches {
		level, err := Load(fsys, path)
		if err != nil {
			return nil, nil, err
		}
		levels[level.Name] = level
		names = append(names, level.Name)
	}

	sort.Strings(names)
	return levels, names, nil
}
