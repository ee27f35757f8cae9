package components

import (
	"github.com/charmbracelet/log"

	"github.com/automoto/islandcore/config"
	"github.com/automoto/islandcore/object"
	"github.com/automoto/islandcore/pool"
)

const defaultCapacity = 64

// Pools holds one fixed pool per pooled component kind. It is built once at
// startup; capacities come from config.Pools.Components.
type Pools struct {
	Gravity             *pool.Pool[Gravity]
	Physics             *pool.Pool[Physics]
	Movement            *pool.Pool[Movement]
	BackgroundCollision *pool.Pool[BackgroundCollision]
	SolidSurface        *pool.Pool[SolidSurface]
	TweenPath           *pool.Pool[TweenPath]
	PatrolAI            *pool.Pool[PatrolAI]
	HitVolumes          *pool.Pool[HitVolumes]
	HitReaction         *pool.Pool[HitReaction]
	Lifetime            *pool.Pool[Lifetime]
	PlayerController    *pool.Pool[PlayerController]

	logger *log.Logger
}

func newPool[T any](kind object.Kind, reset func(*T), logger *log.Logger) *pool.Pool[T] {
	name := KindName(kind)
	return pool.New(name, config.ComponentCapacity(name, defaultCapacity), reset, logger)
}

func NewPools(logger *log.Logger) *Pools {
	if logger == nil {
		logger = log.Default()
	}
	return &Pools{
		Gravity:             newPool(KindGravity, resetGravity, logger),
		Physics:             newPool(KindPhysics, resetPhysics, logger),
		Movement:            newPool(KindMovement, resetMovement, logger),
		BackgroundCollision: newPool(KindBackgroundCollision, resetBackgroundCollision, logger),
		SolidSurface:        newPool(KindSolidSurface, resetSolidSurface, logger),
		TweenPath:           newPool(KindTweenPath, resetTweenPath, logger),
		PatrolAI:            newPool(KindPatrolAI, resetPatrolAI, logger),
		HitVolumes:          newPool(KindHitVolumes, resetHitVolumes, logger),
		HitReaction:         newPool(KindHitReaction, resetHitReaction, logger),
		Lifetime:            newPool(KindLifetime, resetLifetime, logger),
		PlayerController:    newPool(KindPlayerController, resetPlayerController, logger),
		logger:              logger,
	}
}

// Release returns c to the pool for its kind. Shared components are never
// pooled and are ignored.
func (p *Pools) Release(c object.Component) {
	if c == nil || c.Shared() {
		return
	}
	switch c.Kind() {
	case KindGravity:
		release[Gravity, *Gravity](p.Gravity, c, p.logger)
	case KindPhysics:
		release[Physics, *Physics](p.Physics, c, p.logger)
	case KindMovement:
		release[Movement, *Movement](p.Movement, c, p.logger)
	case KindBackgroundCollision:
		release[BackgroundCollision, *BackgroundCollision](p.BackgroundCollision, c, p.logger)
	case KindSolidSurface:
		release[SolidSurface, *SolidSurface](p.SolidSurface, c, p.logger)
	case KindTweenPath:
		release[TweenPath, *TweenPath](p.TweenPath, c, p.logger)
	case KindPatrolAI:
		release[PatrolAI, *PatrolAI](p.PatrolAI, c, p.logger)
	case KindHitVolumes:
		release[HitVolumes, *HitVolumes](p.HitVolumes, c, p.logger)
	case KindHitReaction:
		release[HitReaction, *HitReaction](p.HitReaction, c, p.logger)
	case KindLifetime:
		release[Lifetime, *Lifetime](p.Lifetime, c, p.logger)
	case KindPlayerController:
		release[PlayerController, *PlayerController](p.PlayerController, c, p.logger)
	default:
		p.logger.Error("release of unpooled component", "kind", KindName(c.Kind()))
	}
}

func release[T any, PT interface {
	*T
	object.Component
}](p *pool.Pool[T], c object.Component, logger *log.Logger) {
	item, ok := c.(PT)
	if !ok {
		logger.Error("component kind does not match its type", "pool", p.Name())
		return
	}
	p.Release(item)
}

// Auditors lists every component pool for stats and leak checks.
func (p *Pools) Auditors() []pool.Auditor {
	return []pool.Auditor{
		p.Gravity,
		p.Physics,
		p.Movement,
		p.BackgroundCollision,
		p.SolidSurface,
		p.TweenPath,
		p.PatrolAI,
		p.HitVolumes,
		p.HitReaction,
		p.Lifetime,
		p.PlayerController,
	}
}
