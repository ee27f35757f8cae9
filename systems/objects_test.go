package systems

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"

	"github.com/automoto/islandcore/collision"
	"github.com/automoto/islandcore/object"
	"github.com/automoto/islandcore/shared/gamemath"
	"github.com/automoto/islandcore/tags"
)

const step = 1.0 / 60

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

// floorLevel is 8x4 tiles of 32 with a floor at y=16 along the bottom row.
func floorLevel() (*collision.TileSet, *collision.World) {
	tiles := collision.NewTileSet()
	tiles.Set(1, []collision.LineSegment{
		collision.NewSegment(gamemath.Vec(0, 16), gamemath.Vec(32, 16), gamemath.Vec(0, 1)),
	})
	world := collision.NewWorld(8, 4)
	for x := 0; x < 8; x++ {
		world.SetTile(x, 0, 1)
	}
	return tiles, world
}

func newTestEngine() *Engine {
	e := NewEngine(quietLogger())
	e.SetLevel(floorLevel())
	return e
}

// registerFaller spawns a 16x16 object that falls under gravity.
func registerFaller(e *Engine, t object.SpawnType, team object.Team, radius float64) {
	e.Objects.Register(t, Factory{Build: func(o *object.GameObject) bool {
		o.Team = team
		o.Width, o.Height = 16, 16
		o.ActivationRadius = radius
		gravity, ok := e.Components.Gravity.Allocate()
		if !ok {
			return false
		}
		o.Add(gravity)
		movement, ok := e.Components.Movement.Allocate()
		if !ok {
			return false
		}
		o.Add(movement)
		return true
	}})
}

func newManager(capacity, reserve int) *ObjectManager {
	m := NewObjectManager(donburi.NewWorld(), capacity, 4, reserve, nil, quietLogger())
	m.Register(object.SpawnCoin, Factory{
		Components: []donburi.IComponentType{tags.Pickup},
		Build: func(o *object.GameObject) bool {
			o.ActivationRadius = object.AlwaysActive
			return true
		},
	})
	return m
}

func TestSpawnBecomesLiveAtCommit(t *testing.T) {
	m := newManager(4, 0)
	o := m.Spawn(object.SpawnCoin, gamemath.Vec(10, 20), true)
	if o == nil {
		t.Fatal("spawn failed")
	}
	if o.ID == collision.NoOwner || o.SpawnType != object.SpawnCoin || !o.Flipped() || o.Position != gamemath.Vec(10, 20) {
		t.Errorf("spawned object = %+v", o)
	}
	if len(m.Live()) != 0 || m.Pending() != 1 {
		t.Fatalf("live %d pending %d before commit", len(m.Live()), m.Pending())
	}

	m.Commit(gamemath.Vector2{})
	if len(m.Live()) != 1 || m.Pending() != 0 || len(m.Active()) != 1 {
		t.Fatalf("live %d pending %d active %d after commit", len(m.Live()), m.Pending(), len(m.Active()))
	}
	if n := donburi.NewQuery(filter.Contains(tags.Pickup)).Count(m.World()); n != 1 {
		t.Errorf("pickup entries = %d", n)
	}
	if n := m.CountTeam(object.TeamNone); n != 1 {
		t.Errorf("neutral entries = %d", n)
	}
}

func TestSpawnIDsIncrease(t *testing.T) {
	m := newManager(4, 0)
	var last collision.OwnerID
	for i := 0; i < 6; i++ {
		o := m.Spawn(object.SpawnCoin, gamemath.Vector2{}, false)
		if o == nil {
			t.Fatalf("spawn %d failed", i)
		}
		if o.ID <= last {
			t.Errorf("id %d after %d", o.ID, last)
		}
		last = o.ID
		m.Destroy(o)
		m.FlushDestroys()
	}
}

func TestSpawnFailures(t *testing.T) {
	m := newManager(2, 0)
	if o := m.Spawn(object.SpawnPlayer, gamemath.Vector2{}, false); o != nil {
		t.Error("spawned a type with no factory")
	}
	if o := m.Spawn(object.SpawnNone, gamemath.Vector2{}, false); o != nil {
		t.Error("spawned SpawnNone")
	}

	m.Register(object.SpawnDustEffect, Factory{Build: func(*object.GameObject) bool { return false }})
	if o := m.Spawn(object.SpawnDustEffect, gamemath.Vector2{}, false); o != nil {
		t.Error("spawn succeeded with a failing factory")
	}
	if n := m.Pool().Allocated(); n != 0 {
		t.Errorf("failed spawn kept %d objects", n)
	}

	m.Spawn(object.SpawnCoin, gamemath.Vector2{}, false)
	m.Spawn(object.SpawnCoin, gamemath.Vector2{}, false)
	if o := m.Spawn(object.SpawnCoin, gamemath.Vector2{}, false); o != nil {
		t.Error("spawned past capacity")
	}
}

func TestDestroyIsDeferredAndIdempotent(t *testing.T) {
	m := newManager(4, 0)
	a := m.Spawn(object.SpawnCoin, gamemath.Vector2{}, false)
	b := m.Spawn(object.SpawnCoin, gamemath.Vector2{}, false)
	c := m.Spawn(object.SpawnCoin, gamemath.Vector2{}, false)
	m.Commit(gamemath.Vector2{})

	m.Destroy(b)
	m.Destroy(b)
	if len(m.Live()) != 3 {
		t.Fatal("destroy took effect before the flush")
	}
	m.FlushDestroys()

	live := m.Live()
	if len(live) != 2 || live[0] != a || live[1] != c {
		t.Errorf("live after flush = %v", live)
	}
	if n := m.Pool().Allocated(); n != 2 {
		t.Errorf("allocated = %d, want 2", n)
	}
	if n := m.CountTeam(object.TeamNone); n != 2 {
		t.Errorf("entries = %d, want 2", n)
	}

	// b has been reset; destroying the stale pointer again is ignored.
	m.Destroy(b)
	m.FlushDestroys()
	if n := m.Pool().Allocated(); n != 2 {
		t.Errorf("allocated after stale destroy = %d", n)
	}
}

func TestDestroyBeforeCommit(t *testing.T) {
	m := newManager(4, 0)
	o := m.Spawn(object.SpawnCoin, gamemath.Vector2{}, false)
	m.Destroy(o)
	m.FlushDestroys()
	m.Commit(gamemath.Vector2{})
	if len(m.Live()) != 0 || m.Pool().Allocated() != 0 {
		t.Errorf("live %d allocated %d", len(m.Live()), m.Pool().Allocated())
	}
}

func TestCanSpawnKeepsReserve(t *testing.T) {
	m := newManager(4, 2)
	if !m.CanSpawn(2) {
		t.Fatal("CanSpawn(2) = false with 4 free and 2 reserved")
	}
	if m.CanSpawn(3) {
		t.Fatal("CanSpawn(3) = true with 4 free and 2 reserved")
	}
	m.Spawn(object.SpawnCoin, gamemath.Vector2{}, false)
	m.Spawn(object.SpawnCoin, gamemath.Vector2{}, false)
	if m.CanSpawn(1) {
		t.Error("CanSpawn dipped into the reserve")
	}
	// Required spawns may still use the reserve.
	if o := m.Spawn(object.SpawnCoin, gamemath.Vector2{}, false); o == nil {
		t.Error("reserve not available to Spawn")
	}
}

func TestActivationRadius(t *testing.T) {
	e := newTestEngine()
	registerFaller(e, object.SpawnPatrolEnemy, object.TeamEnemy, 64)
	registerFaller(e, object.SpawnDustEffect, object.TeamNone, object.AlwaysActive)

	near := e.Objects.Spawn(object.SpawnPatrolEnemy, gamemath.Vec(40, 80), false)
	far := e.Objects.Spawn(object.SpawnPatrolEnemy, gamemath.Vec(1000, 80), false)
	always := e.Objects.Spawn(object.SpawnDustEffect, gamemath.Vec(2000, 80), false)
	e.Context.Camera = gamemath.Vec(40, 80)

	e.Step(step)

	if near.Velocity.Y >= 0 {
		t.Errorf("object in range did not fall: %v", near.Velocity)
	}
	if far.Velocity.Y != 0 || far.Position != gamemath.Vec(1000, 80) {
		t.Errorf("object out of range was updated: %+v", far.Position)
	}
	if always.Velocity.Y >= 0 {
		t.Errorf("always-active object did not fall: %v", always.Velocity)
	}
}

func TestPlayerLookupByTag(t *testing.T) {
	e := newTestEngine()
	registerFaller(e, object.SpawnPlayer, object.TeamPlayer, object.AlwaysActive)
	p := e.Objects.Spawn(object.SpawnPlayer, gamemath.Vec(40, 80), false)

	if e.Context.Player != nil {
		t.Fatal("player set before commit")
	}
	e.Step(step)
	if e.Context.Player != p {
		t.Fatalf("context player = %p, want %p", e.Context.Player, p)
	}
	if e.Context.Camera != p.Center() {
		t.Errorf("camera %v does not follow player %v", e.Context.Camera, p.Center())
	}

	e.Objects.Destroy(p)
	e.Step(step)
	e.Step(step)
	if e.Context.Player != nil {
		t.Error("context player not cleared")
	}
}
