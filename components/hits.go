package components

import (
	"github.com/automoto/islandcore/config"
	"github.com/automoto/islandcore/object"
	"github.com/automoto/islandcore/shared/gamemath"
)

// MaxVolumes bounds each of an object's attack and vulnerability lists.
const MaxVolumes = 4

// HitVolumes exposes the owner's attack and vulnerability volumes to the hit
// system each frame.
type HitVolumes struct {
	object.Base
	attack          [MaxVolumes]gamemath.Volume
	attackCount     int
	vulnerable      [MaxVolumes]gamemath.Volume
	vulnerableCount int
	disabled        uint16
	enabled         [MaxVolumes]gamemath.Volume
}

func resetHitVolumes(h *HitVolumes) {
	*h = HitVolumes{Base: object.NewBase(KindHitVolumes, object.PhaseCollisionDetection)}
}

func (h *HitVolumes) AddAttack(v gamemath.Volume) bool {
	if h.attackCount == len(h.attack) {
		return false
	}
	h.attack[h.attackCount] = v
	h.attackCount++
	return true
}

func (h *HitVolumes) AddVulnerable(v gamemath.Volume) bool {
	if h.vulnerableCount == len(h.vulnerable) {
		return false
	}
	h.vulnerable[h.vulnerableCount] = v
	h.vulnerableCount++
	return true
}

// SetAttackEnabled switches the attack volumes dealing hit on or off
// without dropping them.
func (h *HitVolumes) SetAttackEnabled(hit gamemath.HitType, enabled bool) {
	if enabled {
		h.disabled &^= 1 << hit
	} else {
		h.disabled |= 1 << hit
	}
}

// Attack returns the enabled attack volumes.
func (h *HitVolumes) Attack() []gamemath.Volume {
	if h.disabled == 0 {
		return h.attack[:h.attackCount]
	}
	n := 0
	for _, v := range h.attack[:h.attackCount] {
		if h.disabled&(1<<v.HitType) == 0 {
			h.enabled[n] = v
			n++
		}
	}
	return h.enabled[:n]
}

func (h *HitVolumes) Vulnerable() []gamemath.Volume {
	return h.vulnerable[:h.vulnerableCount]
}

func (h *HitVolumes) Update(ctx *object.Context, _ float64, owner *object.GameObject) {
	if ctx.Hits == nil {
		return
	}
	ctx.Hits.Register(owner, h.Attack(), h.Vulnerable())
}

// HitReaction applies the hits the hit system delivered to its owner during
// collision detection.
type HitReaction struct {
	object.Base
	InvincibleTime   float64
	Knockback        float64
	SpawnOnDeath     object.SpawnType
	DestroyOnDeath   bool
	DestroyOnCollect bool
	CollectSound     string

	pending         gamemath.HitType
	source          gamemath.Vector2
	invincibleUntil float64

	// Last hit this object received and dealt, with the game time.
	Received   gamemath.HitType
	ReceivedAt float64
	Landed     gamemath.HitType
	LandedAt   float64
}

func resetHitReaction(r *HitReaction) {
	*r = HitReaction{
		Base:      object.NewBase(KindHitReaction, object.PhaseCollisionResponse),
		Knockback: config.Enemy.Knockback,
	}
}

// ReceiveHit queues hit for the response phase. Hits during invincibility
// are refused unless they kill outright; only the first hit of a frame is
// kept.
func (r *HitReaction) ReceiveHit(hit gamemath.HitType, source gamemath.Vector2, now float64) bool {
	if hit == gamemath.HitNone || r.pending != gamemath.HitNone {
		return false
	}
	if now < r.invincibleUntil && hit != gamemath.HitDeath {
		return false
	}
	r.pending = hit
	r.source = source
	return true
}

// LandHit records a hit the owner dealt.
func (r *HitReaction) LandHit(hit gamemath.HitType, now float64) {
	r.Landed = hit
	r.LandedAt = now
}

// Invincible reports whether hits are currently refused.
func (r *HitReaction) Invincible(now float64) bool {
	return now < r.invincibleUntil
}

func (r *HitReaction) Update(ctx *object.Context, _ float64, owner *object.GameObject) {
	hit := r.pending
	if hit == gamemath.HitNone {
		return
	}
	r.pending = gamemath.HitNone
	r.Received = hit
	r.ReceivedAt = ctx.GameTime

	switch hit {
	case gamemath.HitHit:
		owner.Life--
		r.invincibleUntil = ctx.GameTime + r.InvincibleTime
		away := gamemath.Sign(owner.Center().X - r.source.X)
		if away == 0 {
			away = -gamemath.Sign(owner.Facing.X)
		}
		owner.Velocity = gamemath.Vec(away*r.Knockback, r.Knockback/2)
		owner.CurrentAction = object.ActionHitReact
	case gamemath.HitDeath:
		owner.Life = 0
	case gamemath.HitLaunch:
		owner.Velocity.Y = r.Knockback * 2
	case gamemath.HitCollect:
		if r.CollectSound != "" && ctx.Sound != nil {
			ctx.Sound.Play(r.CollectSound)
		}
		if r.DestroyOnCollect && ctx.Objects != nil {
			ctx.Objects.Destroy(owner)
		}
		return
	case gamemath.HitDepress:
		return
	}

	if owner.Life <= 0 {
		owner.CurrentAction = object.ActionDeath
		if ctx.Objects == nil {
			return
		}
		if r.SpawnOnDeath != object.SpawnNone && ctx.Objects.CanSpawn(1) {
			ctx.Objects.Spawn(r.SpawnOnDeath, owner.Center(), owner.Flipped())
		}
		if r.DestroyOnDeath {
			ctx.Objects.Destroy(owner)
		}
	}
}
