// Package leveldata converts Tiled TMX maps into collision tiles, a tile
// grid and spawn points. It has no dependencies on ebitengine or donburi.
package leveldata

import (
	"errors"
	"io"

	"github.com/automoto/islandcore/collision"
	"github.com/automoto/islandcore/object"
)

// Layer and object group names read from a map.
const (
	CollisionLayer = "collision"
	SpawnGroup     = "spawns"
)

// Tile properties.
const (
	PropertyCollision = "collision"
	PropertySpawn     = "spawn"
	PropertyFlip      = "flip"
)

// Values of the collision tile property. Tiles without it are solid.
const (
	KindSolid        = "solid"
	KindPlatform     = "platform"
	KindSlopeUpRight = "45_up_right"
	KindSlopeUpLeft  = "45_up_left"
	KindNone         = "none"
)

var (
	ErrNoCollisionLayer = errors.New("leveldata: no collision layer")
	ErrUnknownSpawn     = errors.New("leveldata: unknown spawn type")
	ErrUnknownKind      = errors.New("leveldata: unknown collision kind")
)

// Level is one converted map. World row 0 is the bottom of the map.
type Level struct {
	Name       string
	Tiles      *collision.TileSet
	World      *collision.World
	Spawns     []Spawn
	TileWidth  float64
	TileHeight float64
}

// Size returns the level's extent in world units.
func (l *Level) Size() (width, height float64) {
	return float64(l.World.Width()) * l.TileWidth, float64(l.World.Height()) * l.TileHeight
}

// Encode writes the level's collision tiles and grid in the binary formats
// collision.ParseTiles and collision.ParseWorld read.
func (l *Level) Encode(tiles, world io.Writer) error {
	if err := collision.WriteTiles(tiles, l.Tiles); err != nil {
		return err
	}
	return collision.WriteWorld(world, l.World)
}

// Spawn places one object. X and Y are the bottom-left corner of the
// object's box, Y up.
type Spawn struct {
	Type object.SpawnType
	X, Y float64
	Flip bool
}
