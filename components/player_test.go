package components

import (
	"testing"

	"github.com/automoto/islandcore/object"
	"github.com/automoto/islandcore/shared/gamemath"
)

func newPlayer() (*PlayerController, *object.GameObject) {
	var p PlayerController
	resetPlayerController(&p)
	o := object.NewGameObject(4)
	o.Life = 3
	o.Width, o.Height = 16, 40
	return &p, o
}

func TestPlayerRunsAndJumps(t *testing.T) {
	p, o := newPlayer()
	input := &object.ScriptedInput{Dir: gamemath.Vec(-1, 0)}
	sound := &recordingSound{}
	ctx := &object.Context{Input: input, Sound: sound, GameTime: 1}
	o.LastTouchedFloor = 1

	p.Update(ctx, step, o)
	if o.TargetVelocity.X != -p.RunSpeed || !o.Flipped() || o.CurrentAction != object.ActionMove {
		t.Errorf("run: target %v flipped %v action %v", o.TargetVelocity, o.Flipped(), o.CurrentAction)
	}

	input.JustFired[object.ButtonJump] = true
	p.Update(ctx, step, o)
	if o.Velocity.Y != p.JumpImpulse {
		t.Errorf("jump velocity = %v, expected %v", o.Velocity.Y, p.JumpImpulse)
	}
	if len(sound.played) != 1 || sound.played[0] != SoundJump {
		t.Errorf("sounds = %v", sound.played)
	}

	// Airborne: no second jump.
	o.Velocity.Y = 0
	ctx.GameTime = 2
	p.Update(ctx, step, o)
	if o.Velocity.Y != 0 {
		t.Error("jumped while airborne")
	}
}

func TestPlayerStompLandsAndSpawnsDust(t *testing.T) {
	p, o := newPlayer()
	input := &object.ScriptedInput{}
	spawner := &fakeSpawner{room: true}
	ctx := &object.Context{Input: input, Objects: spawner, GameTime: 5}

	input.JustFired[object.ButtonAttack] = true
	p.Update(ctx, step, o)
	if p.State() != PlayerStomp {
		t.Fatalf("state = %v, expected stomp", p.State())
	}
	input.JustFired[object.ButtonAttack] = false

	ctx.GameTime += step
	p.Update(ctx, step, o)
	if o.Velocity.Y != -p.StompSpeed {
		t.Errorf("stomp velocity = %v", o.Velocity)
	}

	o.LastTouchedFloor = ctx.GameTime
	ctx.GameTime += step
	p.Update(ctx, step, o)
	if p.State() != PlayerMove {
		t.Errorf("state after landing = %v", p.State())
	}
	if len(spawner.spawned) != 1 || spawner.spawned[0] != object.SpawnDustEffect {
		t.Errorf("spawned = %v", spawner.spawned)
	}
}

func TestPlayerStompEnablesAttackVolumes(t *testing.T) {
	p, o := newPlayer()
	var volumes HitVolumes
	resetHitVolumes(&volumes)
	volumes.AddAttack(gamemath.BoxVolume(0, 0, 16, 4, gamemath.HitHit))
	volumes.AddAttack(gamemath.BoxVolume(0, 0, 16, 24, gamemath.HitCollect))
	o.Add(&volumes)
	o.CommitUpdates()

	input := &object.ScriptedInput{}
	ctx := &object.Context{Input: input, GameTime: 1}
	p.Update(ctx, step, o)
	if got := volumes.Attack(); len(got) != 1 || got[0].HitType != gamemath.HitCollect {
		t.Errorf("attack volumes outside a stomp = %v", got)
	}

	input.JustFired[object.ButtonAttack] = true
	p.Update(ctx, step, o)
	ctx.GameTime += step
	p.Update(ctx, step, o)
	if len(volumes.Attack()) != 2 {
		t.Error("stomp volume off during a stomp")
	}
}

func TestPlayerHitReactAndDeath(t *testing.T) {
	p, o := newPlayer()
	ctx := &object.Context{Input: object.NoInput{}, GameTime: 1}

	o.CurrentAction = object.ActionHitReact
	p.Update(ctx, step, o)
	if p.State() != PlayerHitReact {
		t.Fatalf("state = %v, expected hit-react", p.State())
	}
	ctx.GameTime += p.HitReactTime + step
	p.Update(ctx, step, o)
	if p.State() != PlayerMove {
		t.Errorf("state after hit react = %v", p.State())
	}

	o.Life = 0
	p.Update(ctx, step, o)
	if p.State() != PlayerDead || o.CurrentAction != object.ActionDeath {
		t.Fatalf("state %v action %v after death", p.State(), o.CurrentAction)
	}
	if p.GameOver() {
		t.Error("game over before the death time")
	}
	ctx.GameTime += p.DeathTime + step
	p.Update(ctx, step, o)
	if !p.GameOver() {
		t.Error("game over not reported after the death time")
	}
}

func TestPlayerFrozenThenGhostDelay(t *testing.T) {
	p, o := newPlayer()
	input := &object.ScriptedInput{Dir: gamemath.Vec(1, 0)}
	ctx := &object.Context{Input: input, GameTime: 1}

	p.Freeze(0.5)
	p.Update(ctx, step, o)
	if o.TargetVelocity.X != 0 || o.CurrentAction != object.ActionFrozen {
		t.Errorf("frozen player moved: %v %v", o.TargetVelocity, o.CurrentAction)
	}

	ctx.GameTime += 0.5 + step
	p.Update(ctx, step, o)
	if p.State() != PlayerPostGhostDelay {
		t.Fatalf("state = %v, expected post-ghost-delay", p.State())
	}

	input.JustFired[object.ButtonAttack] = true
	p.Update(ctx, step, o)
	if p.State() == PlayerStomp {
		t.Error("attack honored during the ghost delay")
	}

	ctx.GameTime += p.GhostDelay + step
	p.Update(ctx, step, o)
	if p.State() != PlayerMove {
		t.Errorf("state = %v, expected move", p.State())
	}
}

func TestPlayerWin(t *testing.T) {
	p, o := newPlayer()
	ctx := &object.Context{Input: &object.ScriptedInput{Dir: gamemath.Vec(1, 0)}, GameTime: 1}
	p.Win()
	p.Update(ctx, step, o)
	if p.State() != PlayerWin || o.TargetVelocity.X != 0 {
		t.Errorf("state %v target %v", p.State(), o.TargetVelocity)
	}
}
