package systems

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/islandcore/collision"
	"github.com/automoto/islandcore/components"
	"github.com/automoto/islandcore/config"
	"github.com/automoto/islandcore/object"
	"github.com/automoto/islandcore/pool"
)

// ErrLevelData reports collision data that could not be loaded. The level
// still runs, without static collision.
var ErrLevelData = errors.New("level data not loaded")

// Engine runs the simulation of one level at a time. Each Step is one pass
// of the ecs pipeline: swap temporary surfaces, commit spawns and component
// changes, sweep every phase in order, then flush despawns.
type Engine struct {
	ecs *ecs.ECS

	Collision  *collision.System
	Objects    *ObjectManager
	Hits       *HitSystem
	Components *components.Pools
	Context    *object.Context

	dt     float64
	frames int
	logger *log.Logger
}

// NewEngine builds every pool and system from the config vars.
func NewEngine(logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	world := donburi.NewWorld()
	pools := components.NewPools(logger)
	coll := collision.NewSystem(collision.Config{
		TileWidth:            config.Collision.TileWidth,
		TileHeight:           config.Collision.TileHeight,
		MaxTemporarySurfaces: config.Collision.MaxTemporarySurfaces,
	}, logger)
	objects := NewObjectManager(world, config.Pools.Objects, config.Pools.ComponentsPerObject, config.Pools.SpawnReserve, pools.Release, logger)
	hits := NewHitSystem(config.Pools.HitVolumes, logger)

	e := &Engine{
		Collision:  coll,
		Objects:    objects,
		Hits:       hits,
		Components: pools,
		Context: &object.Context{
			Collision: coll,
			Objects:   objects,
			Hits:      hits,
			Input:     object.NoInput{},
			Sound:     object.NoSound{},
			Log:       logger,
		},
		logger: logger,
	}

	e.ecs = ecs.NewECS(world)
	e.ecs.AddSystem(e.swapSurfaces)
	e.ecs.AddSystem(e.commit)
	e.ecs.AddSystem(e.sweep)
	e.ecs.AddSystem(e.flush)
	return e
}

// LoadLevel reads the collision tile table and the tile grid. Bad data is
// logged and reported, and the level is left without static collision.
func (e *Engine) LoadLevel(tiles, world io.Reader) error {
	tilesOK := e.Collision.LoadCollisionTiles(tiles)
	worldOK := e.Collision.LoadWorld(world)
	e.resize()

	switch {
	case !tilesOK:
		return fmt.Errorf("collision tiles: %w", ErrLevelData)
	case !worldOK:
		return fmt.Errorf("collision world: %w", ErrLevelData)
	}
	return nil
}

// SetLevel installs an already decoded level.
func (e *Engine) SetLevel(tiles *collision.TileSet, world *collision.World) {
	e.Collision.SetTiles(tiles)
	e.Collision.SetWorld(world)
	e.resize()
}

func (e *Engine) resize() {
	bounds := e.Collision.WorldBounds()
	e.Hits.SetBounds(bounds.X, bounds.Y, int(e.Collision.TileWidth()))
}

// Step advances the simulation by dt seconds.
func (e *Engine) Step(dt float64) {
	e.dt = dt
	e.Context.GameTime += dt
	e.ecs.Update()
	e.frames++
}

func (e *Engine) swapSurfaces(_ *ecs.ECS) {
	e.Collision.Update(e.dt)
	e.Hits.Clear()
}

func (e *Engine) commit(_ *ecs.ECS) {
	e.Objects.Commit(e.Context.Camera)
	e.Context.Player = e.Objects.Player()
}

func (e *Engine) sweep(_ *ecs.ECS) {
	for _, phase := range object.Phases() {
		e.Objects.UpdatePhase(e.Context, e.dt, phase)
		if phase == object.PhaseCollisionDetection {
			e.Hits.Resolve(e.Context.GameTime)
		}
	}
}

func (e *Engine) flush(_ *ecs.ECS) {
	e.Objects.FlushDestroys()
	if p := e.Objects.Player(); p != nil {
		e.Context.Camera = p.Center()
	}
}

// UnloadLevel despawns everything and checks that every pool is back to
// zero outstanding. The returned error lists the pools that leaked.
func (e *Engine) UnloadLevel() error {
	e.Objects.DestroyAll()
	e.Objects.FlushDestroys()
	e.Hits.Clear()
	e.Collision.ClearTemporarySurfaces()
	e.Context.Player = nil

	if !config.Debug.LeakCheck {
		return nil
	}
	if err := pool.LeakCheck(e.Auditors()...); err != nil {
		e.logger.Error("pools leaked on unload", "error", err)
		return err
	}
	return nil
}

// Auditors lists every pool the engine owns.
func (e *Engine) Auditors() []pool.Auditor {
	return append(e.Components.Auditors(), e.Objects.Pool(), e.Collision.SegmentPool())
}

// Stats snapshots every pool.
func (e *Engine) Stats() []pool.Stats {
	return pool.Snapshot(e.Auditors()...)
}

func (e *Engine) Frames() int         { return e.frames }
func (e *Engine) Logger() *log.Logger { return e.logger }
