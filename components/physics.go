package components

import (
	"github.com/automoto/islandcore/config"
	"github.com/automoto/islandcore/object"
	"github.com/automoto/islandcore/shared/gamemath"
)

// Gravity accelerates its owner every frame.
type Gravity struct {
	object.Base
	Gravity gamemath.Vector2
}

func resetGravity(g *Gravity) {
	*g = Gravity{
		Base:    object.NewBase(KindGravity, object.PhasePhysics),
		Gravity: gamemath.Vec(0, config.Physics.Gravity),
	}
}

func (g *Gravity) Update(_ *object.Context, dt float64, owner *object.GameObject) {
	owner.Velocity = owner.Velocity.Add(g.Gravity.Scale(dt))
}

// Physics steers velocity toward the owner's target velocity. An axis with
// zero acceleration is left to friction instead.
type Physics struct {
	object.Base
	Friction     float64
	AirFriction  float64
	MaxFallSpeed float64
	GroundGrace  float64
}

func resetPhysics(p *Physics) {
	*p = Physics{
		Base:         object.NewBase(KindPhysics, object.PhasePhysics),
		Friction:     config.Physics.Friction,
		AirFriction:  config.Physics.AirFriction,
		MaxFallSpeed: config.Physics.MaxFallSpeed,
		GroundGrace:  config.Physics.GroundGrace,
	}
}

func (p *Physics) Update(ctx *object.Context, dt float64, owner *object.GameObject) {
	v := owner.Velocity

	if owner.Acceleration.X != 0 {
		v.X = gamemath.Approach(v.X, owner.TargetVelocity.X, owner.Acceleration.X*dt)
	} else {
		friction := p.AirFriction
		if owner.TouchingGround(ctx.GameTime, p.GroundGrace) {
			friction = p.Friction
		}
		v.X = gamemath.ApplyFriction(v.X, friction*dt)
	}

	if owner.Acceleration.Y != 0 {
		v.Y = gamemath.Approach(v.Y, owner.TargetVelocity.Y, owner.Acceleration.Y*dt)
	}
	if p.MaxFallSpeed > 0 && v.Y < -p.MaxFallSpeed {
		v.Y = -p.MaxFallSpeed
	}

	owner.Velocity = v
}

// Movement integrates velocity into position.
type Movement struct {
	object.Base
}

func resetMovement(m *Movement) {
	*m = Movement{Base: object.NewBase(KindMovement, object.PhaseMovement)}
}

func (m *Movement) Update(_ *object.Context, dt float64, owner *object.GameObject) {
	owner.Position = gamemath.Integrate(owner.Position, owner.Velocity, dt)
}
