package archetypes

import (
	"github.com/yohamta/donburi"

	"github.com/automoto/islandcore/components"
	"github.com/automoto/islandcore/config"
	"github.com/automoto/islandcore/object"
	"github.com/automoto/islandcore/pool"
	"github.com/automoto/islandcore/shared/gamemath"
	"github.com/automoto/islandcore/systems"
	"github.com/automoto/islandcore/tags"
)

// Sound names played by archetype components.
const SoundCoin = "coin"

var (
	Player = newArchetype(
		object.SpawnPlayer,
		buildPlayer,
	)
	PatrolEnemy = newArchetype(
		object.SpawnPatrolEnemy,
		buildPatrolEnemy,
	)
	MovingPlatform = newArchetype(
		object.SpawnMovingPlatform,
		buildMovingPlatform,
		tags.Platform,
	)
	DustEffect = newArchetype(
		object.SpawnDustEffect,
		buildDustEffect,
		tags.Effect,
	)
	Coin = newArchetype(
		object.SpawnCoin,
		buildCoin,
		tags.Pickup,
	)

	all = []*archetype{Player, PatrolEnemy, MovingPlatform, DustEffect, Coin}
)

type archetype struct {
	spawnType  object.SpawnType
	components []donburi.IComponentType
	build      func(b *builder) bool
}

func newArchetype(t object.SpawnType, build func(b *builder) bool, cs ...donburi.IComponentType) *archetype {
	return &archetype{
		spawnType:  t,
		components: cs,
		build:      build,
	}
}

// tables holds the animation tables shared by every object of an archetype.
type tables struct {
	player *components.AnimationTable
	enemy  *components.AnimationTable
	effect *components.AnimationTable
	coin   *components.AnimationTable
}

func newTables() *tables {
	return &tables{
		player: components.NewAnimationTable(config.CharacterAnimations["player"]),
		enemy:  components.NewAnimationTable(config.CharacterAnimations["patrol-enemy"]),
		effect: components.NewAnimationTable(config.CharacterAnimations["effect"]),
		coin:   components.NewAnimationTable(config.CharacterAnimations["coin"]),
	}
}

// Register installs a factory for every archetype on e.
func Register(e *systems.Engine) {
	shared := newTables()
	for _, a := range all {
		e.Objects.Register(a.spawnType, systems.Factory{
			Components: a.components,
			Build: func(o *object.GameObject) bool {
				return a.build(&builder{pools: e.Components, tables: shared, o: o})
			},
		})
	}
}

// builder attaches components to one object and remembers whether any
// attachment failed.
type builder struct {
	pools  *components.Pools
	tables *tables
	o      *object.GameObject
	failed bool
}

func attach[T any, PT interface {
	*T
	object.Component
}](b *builder, p *pool.Pool[T]) PT {
	if b.failed {
		return nil
	}
	item, ok := p.Allocate()
	if !ok {
		b.failed = true
		return nil
	}
	c := PT(item)
	if !b.o.Add(c) {
		p.Release(item)
		b.failed = true
		return nil
	}
	return c
}

func (b *builder) share(c object.Component) {
	if !b.failed && !b.o.Add(c) {
		b.failed = true
	}
}

// body attaches gravity, physics, movement and background collision sized
// to the object.
func (b *builder) body() {
	attach(b, b.pools.Gravity)
	attach(b, b.pools.Physics)
	attach(b, b.pools.Movement)
	if bg := attach(b, b.pools.BackgroundCollision); bg != nil {
		bg.SetSize(b.o.Width, b.o.Height, gamemath.Vector2{})
	}
}

func activationRadius() float64 {
	return float64(config.C.Width)
}

func buildPlayer(b *builder) bool {
	o := b.o
	o.Team = object.TeamPlayer
	o.Width, o.Height = config.Player.Width, config.Player.Height
	o.Life = config.Player.Life
	o.ActivationRadius = object.AlwaysActive
	o.CurrentAction = object.ActionIdle

	b.body()
	volumes := attach(b, b.pools.HitVolumes)
	reaction := attach(b, b.pools.HitReaction)
	attach(b, b.pools.PlayerController)
	b.share(b.tables.player)
	if b.failed {
		return false
	}

	volumes.AddVulnerable(gamemath.BoxVolume(0, 4, o.Width, o.Height-4, gamemath.HitNone))
	volumes.AddAttack(gamemath.BoxVolume(0, 0, o.Width, o.Height, gamemath.HitCollect))
	// Stomp, switched on by the controller.
	volumes.AddAttack(gamemath.BoxVolume(-2, -6, o.Width+4, 8, gamemath.HitHit))
	reaction.InvincibleTime = config.Player.InvincibleTime
	reaction.Knockback = config.Player.Knockback
	return true
}

func buildPatrolEnemy(b *builder) bool {
	o := b.o
	o.Team = object.TeamEnemy
	o.Width, o.Height = config.Enemy.Width, config.Enemy.Height
	o.Life = config.Enemy.Life
	o.ActivationRadius = activationRadius()
	o.CurrentAction = object.ActionMove

	b.body()
	attach(b, b.pools.PatrolAI)
	volumes := attach(b, b.pools.HitVolumes)
	reaction := attach(b, b.pools.HitReaction)
	b.share(b.tables.enemy)
	if b.failed {
		return false
	}

	volumes.AddAttack(gamemath.BoxVolume(2, 0, o.Width-4, o.Height-4, gamemath.HitHit))
	// Only stomps hurt; a player walking in gets hit instead.
	volumes.AddVulnerable(gamemath.BoxVolume(0, o.Height-6, o.Width, 6, gamemath.HitHit))
	reaction.Knockback = config.Enemy.Knockback
	reaction.SpawnOnDeath = object.SpawnCoin
	reaction.DestroyOnDeath = true
	return true
}

func buildMovingPlatform(b *builder) bool {
	o := b.o
	o.Width, o.Height = config.Platform.Width, config.Platform.Height
	o.ActivationRadius = activationRadius()

	path := attach(b, b.pools.TweenPath)
	solid := attach(b, b.pools.SolidSurface)
	if b.failed {
		return false
	}

	travel := config.Platform.Travel
	if o.Flipped() {
		travel = -travel
	}
	path.From = o.Position
	path.To = o.Position.Add(gamemath.Vec(travel, 0))
	path.Period = config.Platform.Period
	solid.AddBox(o.Width, o.Height)
	return true
}

func buildDustEffect(b *builder) bool {
	o := b.o
	o.Width, o.Height = 16, 8
	o.ActivationRadius = object.AlwaysActive
	o.CurrentAction = object.ActionIdle

	lifetime := attach(b, b.pools.Lifetime)
	b.share(b.tables.effect)
	if b.failed {
		return false
	}
	lifetime.TimeUntilDeath = config.Effects.DustLifetime
	return true
}

func buildCoin(b *builder) bool {
	o := b.o
	o.Width, o.Height = 12, 12
	o.Life = 1
	o.ActivationRadius = activationRadius()
	o.CurrentAction = object.ActionIdle
	o.Velocity = gamemath.Vec(0, config.Player.JumpImpulse/2)

	b.body()
	volumes := attach(b, b.pools.HitVolumes)
	reaction := attach(b, b.pools.HitReaction)
	lifetime := attach(b, b.pools.Lifetime)
	b.share(b.tables.coin)
	if b.failed {
		return false
	}

	volumes.AddVulnerable(gamemath.BoxVolume(0, 0, o.Width, o.Height, gamemath.HitCollect))
	reaction.DestroyOnCollect = true
	reaction.CollectSound = SoundCoin
	lifetime.TimeUntilDeath = config.Effects.CoinLifetime
	return true
}
