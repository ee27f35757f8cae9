package systems

import (
	"bytes"
	"errors"
	"testing"

	"github.com/automoto/islandcore/collision"
	"github.com/automoto/islandcore/components"
	"github.com/automoto/islandcore/object"
	"github.com/automoto/islandcore/pool"
	"github.com/automoto/islandcore/shared/gamemath"
)

func encodedLevel(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	tiles, world := floorLevel()
	var tb, wb bytes.Buffer
	if err := collision.WriteTiles(&tb, tiles); err != nil {
		t.Fatal(err)
	}
	if err := collision.WriteWorld(&wb, world); err != nil {
		t.Fatal(err)
	}
	return &tb, &wb
}

func TestEngineLoadLevel(t *testing.T) {
	e := NewEngine(quietLogger())
	tiles, world := encodedLevel(t)
	if err := e.LoadLevel(tiles, world); err != nil {
		t.Fatalf("LoadLevel: %v", err)
	}
	if got := e.Collision.WorldBounds(); got != gamemath.Vec(256, 128) {
		t.Errorf("bounds = %v", got)
	}
	hit, ok := e.Collision.CastRay(gamemath.Vec(100, 100), gamemath.Vec(100, 0), collision.AnyDirection)
	if !ok || hit.Point.Y != 16 {
		t.Errorf("floor not loaded: %+v %v", hit, ok)
	}
}

func TestEngineLoadLevelBadData(t *testing.T) {
	tests := []struct {
		name  string
		tiles func(t *testing.T) *bytes.Buffer
		world func(t *testing.T) *bytes.Buffer
	}{
		{
			name:  "bad tiles",
			tiles: func(*testing.T) *bytes.Buffer { return bytes.NewBuffer([]byte{1, 2, 3}) },
			world: func(t *testing.T) *bytes.Buffer { _, w := encodedLevel(t); return w },
		},
		{
			name:  "bad world",
			tiles: func(t *testing.T) *bytes.Buffer { tl, _ := encodedLevel(t); return tl },
			world: func(*testing.T) *bytes.Buffer { return bytes.NewBuffer([]byte{42, 0}) },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine(quietLogger())
			err := e.LoadLevel(tt.tiles(t), tt.world(t))
			if !errors.Is(err, ErrLevelData) {
				t.Fatalf("err = %v, want ErrLevelData", err)
			}
			// The level still steps; static queries just miss.
			e.Step(step)
			if _, ok := e.Collision.CastRay(gamemath.Vec(100, 100), gamemath.Vec(100, 0), collision.AnyDirection); ok {
				t.Error("ray hit in a level with no collision")
			}
		})
	}
}

// registerFighter spawns a 16x16 body with hit volumes and a reaction.
func registerFighter(e *Engine, t object.SpawnType, team object.Team, attack gamemath.HitType) {
	e.Objects.Register(t, Factory{Build: func(o *object.GameObject) bool {
		o.Team = team
		o.Width, o.Height = 16, 16
		o.Life = 3
		o.ActivationRadius = object.AlwaysActive
		volumes, ok := e.Components.HitVolumes.Allocate()
		if !ok {
			return false
		}
		o.Add(volumes)
		if attack != gamemath.HitNone {
			volumes.AddAttack(gamemath.BoxVolume(0, 0, 16, 16, attack))
		}
		volumes.AddVulnerable(gamemath.BoxVolume(0, 0, 16, 16, gamemath.HitNone))
		reaction, ok := e.Components.HitReaction.Allocate()
		if !ok {
			return false
		}
		reaction.InvincibleTime = 1
		o.Add(reaction)
		return true
	}})
}

func TestEngineResolvesHitsBeforeResponse(t *testing.T) {
	e := newTestEngine()
	registerFighter(e, object.SpawnPlayer, object.TeamPlayer, gamemath.HitNone)
	registerFighter(e, object.SpawnPatrolEnemy, object.TeamEnemy, gamemath.HitHit)

	player := e.Objects.Spawn(object.SpawnPlayer, gamemath.Vec(40, 32), false)
	enemy := e.Objects.Spawn(object.SpawnPatrolEnemy, gamemath.Vec(48, 32), false)

	e.Step(step)
	if player.Life != 2 {
		t.Fatalf("player life = %d, want 2", player.Life)
	}
	if enemy.Life != 3 {
		t.Errorf("enemy life = %d, want 3", enemy.Life)
	}
	reaction := enemy.Find(components.KindHitReaction).(*components.HitReaction)
	if reaction.Landed != gamemath.HitHit {
		t.Errorf("enemy landed %v", reaction.Landed)
	}

	// Invincibility holds off the next frame's hit.
	e.Step(step)
	if player.Life != 2 {
		t.Errorf("player life after invincible frame = %d", player.Life)
	}
}

func TestEngineTemporarySurfaceVisibleNextStep(t *testing.T) {
	e := newTestEngine()
	e.Objects.Register(object.SpawnMovingPlatform, Factory{Build: func(o *object.GameObject) bool {
		o.Width, o.Height = 64, 8
		o.ActivationRadius = object.AlwaysActive
		solid, ok := e.Components.SolidSurface.Allocate()
		if !ok {
			return false
		}
		solid.AddSegment(gamemath.Vec(0, 8), gamemath.Vec(64, 8), gamemath.Vec(0, 1))
		o.Add(solid)
		return true
	}})
	e.Objects.Spawn(object.SpawnMovingPlatform, gamemath.Vec(64, 64), false)

	count := func() int {
		n := 0
		e.Collision.EachTemporarySurface(func(collision.LineSegment) { n++ })
		return n
	}

	e.Step(step)
	if n := count(); n != 0 {
		t.Fatalf("surface visible in the step it was submitted: %d", n)
	}
	e.Step(step)
	if n := count(); n != 1 {
		t.Fatalf("surfaces on the next step = %d", n)
	}
	hit, ok := e.Collision.CastRay(gamemath.Vec(80, 100), gamemath.Vec(80, 0), collision.AnyDirection)
	if !ok || hit.Point.Y != 72 {
		t.Errorf("ray hit %+v %v, want the platform top at 72", hit, ok)
	}
}

func TestEngineUnloadReturnsEveryPool(t *testing.T) {
	e := newTestEngine()
	registerFaller(e, object.SpawnPatrolEnemy, object.TeamEnemy, object.AlwaysActive)
	registerFighter(e, object.SpawnPlayer, object.TeamPlayer, gamemath.HitNone)
	for i := 0; i < 10; i++ {
		e.Objects.Spawn(object.SpawnPatrolEnemy, gamemath.Vec(float64(i*20), 64), false)
	}
	e.Objects.Spawn(object.SpawnPlayer, gamemath.Vec(40, 64), false)
	for i := 0; i < 30; i++ {
		e.Step(step)
	}
	// Spawned but never committed.
	e.Objects.Spawn(object.SpawnPatrolEnemy, gamemath.Vec(0, 64), false)

	if err := e.UnloadLevel(); err != nil {
		t.Fatalf("UnloadLevel: %v", err)
	}
	for _, s := range e.Stats() {
		if s.Allocated != 0 {
			t.Errorf("%s: %d allocated", s.Name, s.Allocated)
		}
	}
	if e.Context.Player != nil {
		t.Error("player survived unload")
	}
}

func TestEngineUnloadReportsLeaks(t *testing.T) {
	e := newTestEngine()
	if _, ok := e.Components.Lifetime.Allocate(); !ok {
		t.Fatal("allocate failed")
	}

	err := e.UnloadLevel()
	var leak *pool.LeakError
	if !errors.As(err, &leak) {
		t.Fatalf("err = %v, want a LeakError", err)
	}
	if leak.Pool != components.KindName(components.KindLifetime) || leak.Outstanding != 1 {
		t.Errorf("leak = %+v", leak)
	}
}
