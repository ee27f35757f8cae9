package components

import (
	"github.com/automoto/islandcore/collision"
	"github.com/automoto/islandcore/config"
	"github.com/automoto/islandcore/object"
	"github.com/automoto/islandcore/shared/gamemath"
)

const patrolTurnCooldown = 0.25

// PatrolAI walks its owner along the ground, turning around at walls and
// ledges. Both are found with short ray probes ahead of the owner.
type PatrolAI struct {
	object.Base
	Speed        float64
	Acceleration float64
	WallProbe    float64
	LedgeProbe   float64
	GroundGrace  float64

	lastTurn float64
}

func resetPatrolAI(p *PatrolAI) {
	*p = PatrolAI{
		Base:         object.NewBase(KindPatrolAI, object.PhaseThink),
		Speed:        config.Enemy.PatrolSpeed,
		Acceleration: config.Enemy.PatrolSpeed * 8,
		WallProbe:    config.Enemy.WallProbe,
		LedgeProbe:   config.Enemy.LedgeProbe,
		GroundGrace:  config.Physics.GroundGrace,
		lastTurn:     -patrolTurnCooldown,
	}
}

func (p *PatrolAI) Update(ctx *object.Context, _ float64, owner *object.GameObject) {
	switch owner.CurrentAction {
	case object.ActionDeath, object.ActionHitReact:
		owner.TargetVelocity.X = 0
		return
	}

	dir := gamemath.Sign(owner.Facing.X)
	if dir == 0 {
		dir = 1
	}
	grounded := owner.TouchingGround(ctx.GameTime, p.GroundGrace)
	if grounded && ctx.GameTime-p.lastTurn >= patrolTurnCooldown && p.blocked(ctx, owner, dir) {
		dir = -dir
		p.lastTurn = ctx.GameTime
	}

	owner.Facing = gamemath.Vec(dir, 0)
	owner.TargetVelocity.X = dir * p.Speed
	owner.Acceleration.X = p.Acceleration
	owner.CurrentAction = object.ActionMove
}

// blocked reports a wall ahead or missing floor just past the leading edge.
func (p *PatrolAI) blocked(ctx *object.Context, owner *object.GameObject, dir float64) bool {
	if ctx.Collision == nil {
		return false
	}
	front := owner.Position.X + owner.Width/2 + dir*owner.Width/2
	mid := owner.Position.Y + owner.Height/2

	wall := collision.Moving(gamemath.Vec(dir, 0)).Excluding(owner.ID)
	if _, hit := ctx.Collision.CastRay(gamemath.Vec(front, mid), gamemath.Vec(front+dir*p.WallProbe, mid), wall); hit {
		return true
	}

	foot := gamemath.Vec(front+dir, owner.Position.Y+1)
	floor := collision.Moving(gamemath.Vec(0, -1)).Excluding(owner.ID)
	_, hit := ctx.Collision.CastRay(foot, foot.Add(gamemath.Vec(0, -p.LedgeProbe)), floor)
	return !hit
}
