package components

import (
	"github.com/automoto/islandcore/config"
	"github.com/automoto/islandcore/object"
	"github.com/automoto/islandcore/shared/gamemath"
)

// PlayerState is the player controller's current mode.
type PlayerState uint8

const (
	PlayerMove PlayerState = iota
	PlayerStomp
	PlayerHitReact
	PlayerDead
	PlayerWin
	PlayerFrozen
	PlayerPostGhostDelay
)

var playerStateNames = [...]string{"move", "stomp", "hit-react", "dead", "win", "frozen", "post-ghost-delay"}

func (s PlayerState) String() string {
	if int(s) < len(playerStateNames) {
		return playerStateNames[s]
	}
	return "unknown"
}

// Sound effect names the controller plays.
const (
	SoundJump      = "jump"
	SoundStomp     = "stomp"
	SoundStompLand = "stomp-land"
)

// PlayerController turns input into movement. It runs its own small state
// machine; hits and deaths reach it through the owner's action and life.
type PlayerController struct {
	object.Base
	RunSpeed     float64
	Acceleration float64
	JumpImpulse  float64
	StompSpeed   float64
	StompBounce  float64
	HitReactTime float64
	DeathTime    float64
	GhostDelay   float64
	GroundGrace  float64
	DustEffect   object.SpawnType

	state        PlayerState
	stateStarted float64
	frozenFor    float64
	winRequested bool
	gameOver     bool
}

func resetPlayerController(p *PlayerController) {
	*p = PlayerController{
		Base:         object.NewBase(KindPlayerController, object.PhaseThink),
		RunSpeed:     config.Player.RunSpeed,
		Acceleration: config.Player.Acceleration,
		JumpImpulse:  config.Player.JumpImpulse,
		StompSpeed:   config.Player.StompSpeed,
		StompBounce:  config.Player.StompBounce,
		HitReactTime: config.Player.HitReactTime,
		DeathTime:    config.Player.DeathTime,
		GhostDelay:   config.Player.GhostDelay,
		GroundGrace:  config.Physics.GroundGrace,
		DustEffect:   object.SpawnDustEffect,
	}
}

func (p *PlayerController) State() PlayerState { return p.state }

// GameOver reports that the death sequence has finished.
func (p *PlayerController) GameOver() bool { return p.gameOver }

// Freeze ignores input for duration seconds, then eases back in through the
// post-ghost delay.
func (p *PlayerController) Freeze(duration float64) {
	p.frozenFor = duration
	p.state = PlayerFrozen
	p.stateStarted = -1
}

// Win ends player control at the next update.
func (p *PlayerController) Win() {
	p.winRequested = true
}

func (p *PlayerController) enter(state PlayerState, now float64) {
	p.state = state
	p.stateStarted = now
}

func (p *PlayerController) Update(ctx *object.Context, _ float64, owner *object.GameObject) {
	now := ctx.GameTime
	if p.stateStarted < 0 {
		p.stateStarted = now
	}

	switch {
	case p.state == PlayerDead || p.state == PlayerWin:
	case owner.Life <= 0:
		p.enter(PlayerDead, now)
	case p.winRequested:
		p.enter(PlayerWin, now)
	case owner.CurrentAction == object.ActionHitReact && (p.state == PlayerMove || p.state == PlayerStomp):
		p.enter(PlayerHitReact, now)
	}

	elapsed := now - p.stateStarted
	grounded := owner.TouchingGround(now, p.GroundGrace)
	volumes, _ := owner.Find(KindHitVolumes).(*HitVolumes)
	if volumes != nil {
		volumes.SetAttackEnabled(gamemath.HitHit, p.state == PlayerStomp)
	}

	switch p.state {
	case PlayerMove:
		p.move(ctx, owner, grounded, true)

	case PlayerStomp:
		owner.TargetVelocity = gamemath.Vector2{}
		owner.Acceleration.X = 0
		owner.Velocity = gamemath.Vec(0, -p.StompSpeed)
		owner.CurrentAction = object.ActionAttack

		if reaction, ok := owner.Find(KindHitReaction).(*HitReaction); ok && reaction.Landed == gamemath.HitHit && reaction.LandedAt > p.stateStarted {
			owner.Velocity.Y = p.StompBounce
			p.enter(PlayerMove, now)
			break
		}
		if owner.LastTouchedFloor > p.stateStarted {
			p.land(ctx, owner)
			p.enter(PlayerMove, now)
		}

	case PlayerHitReact:
		owner.TargetVelocity = gamemath.Vector2{}
		owner.Acceleration.X = 0
		if elapsed >= p.HitReactTime {
			owner.CurrentAction = object.ActionMove
			p.enter(PlayerMove, now)
		}

	case PlayerDead:
		owner.TargetVelocity = gamemath.Vector2{}
		owner.Acceleration.X = p.Acceleration
		owner.CurrentAction = object.ActionDeath
		if elapsed >= p.DeathTime {
			p.gameOver = true
		}

	case PlayerWin:
		owner.TargetVelocity = gamemath.Vector2{}
		owner.Acceleration.X = p.Acceleration
		owner.CurrentAction = object.ActionIdle

	case PlayerFrozen:
		owner.TargetVelocity = gamemath.Vector2{}
		owner.Acceleration.X = p.Acceleration
		owner.CurrentAction = object.ActionFrozen
		if elapsed >= p.frozenFor {
			owner.CurrentAction = object.ActionIdle
			p.enter(PlayerPostGhostDelay, now)
		}

	case PlayerPostGhostDelay:
		p.move(ctx, owner, grounded, false)
		if elapsed >= p.GhostDelay {
			p.enter(PlayerMove, now)
		}
	}
}

// move applies run and jump input. Attacks are only honored when
// canAttack is set.
func (p *PlayerController) move(ctx *object.Context, owner *object.GameObject, grounded, canAttack bool) {
	input := ctx.Input
	if input == nil {
		input = object.NoInput{}
	}

	dir := gamemath.Sign(input.Direction().X)
	owner.TargetVelocity.X = dir * p.RunSpeed
	owner.Acceleration.X = p.Acceleration
	if dir != 0 {
		owner.Facing = gamemath.Vec(dir, 0)
		owner.CurrentAction = object.ActionMove
	} else {
		owner.CurrentAction = object.ActionIdle
	}

	if grounded && input.Triggered(object.ButtonJump) {
		owner.Velocity.Y = p.JumpImpulse
		owner.LastTouchedFloor = 0
		play(ctx, SoundJump)
	}
	if canAttack && !grounded && input.Triggered(object.ButtonAttack) {
		owner.Velocity = gamemath.Vec(0, -p.StompSpeed)
		owner.CurrentAction = object.ActionAttack
		play(ctx, SoundStomp)
		p.enter(PlayerStomp, ctx.GameTime)
	}
}

// land kicks up a dust cloud when there is room for one.
func (p *PlayerController) land(ctx *object.Context, owner *object.GameObject) {
	play(ctx, SoundStompLand)
	if p.DustEffect == object.SpawnNone || ctx.Objects == nil || !ctx.Objects.CanSpawn(1) {
		return
	}
	ctx.Objects.Spawn(p.DustEffect, gamemath.Vec(owner.Center().X, owner.Position.Y), owner.Flipped())
}

func play(ctx *object.Context, sound string) {
	if ctx.Sound != nil {
		ctx.Sound.Play(sound)
	}
}
