package archetypes

import (
	"github.com/automoto/islandcore/shared/gamemath"
	"github.com/automoto/islandcore/shared/leveldata"
	"github.com/automoto/islandcore/systems"
)

// Start installs level's collision on e and queues every placed object. It
// returns how many spawns were queued; the rest did not fit the pools.
func Start(e *systems.Engine, level *leveldata.Level) int {
	if level.TileWidth != e.Collision.TileWidth() || level.TileHeight != e.Collision.TileHeight() {
		e.Logger().Warn("level tile size differs from engine",
			"level", level.Name,
			"level_tile", gamemath.Vec(level.TileWidth, level.TileHeight),
			"engine_tile", gamemath.Vec(e.Collision.TileWidth(), e.Collision.TileHeight()))
	}
	e.SetLevel(level.Tiles, level.World)

	queued := 0
	for _, s := range level.Spawns {
		if e.Objects.Spawn(s.Type, gamemath.Vec(s.X, s.Y), s.Flip) != nil {
			queued++
		}
	}
	if queued < len(level.Spawns) {
		e.Logger().Warn("level spawns dropped", "level", level.Name, "placed", len(level.Spawns), "queued", queued)
	}
	return queued
}
