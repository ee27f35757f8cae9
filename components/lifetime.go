package components

import "github.com/automoto/islandcore/object"

// Lifetime destroys its owner after a fixed time, or once its life runs out
// and the death delay has passed.
type Lifetime struct {
	object.Base
	TimeUntilDeath  float64 // zero disables the timer
	DieWhenLifeGone bool
	DeathDelay      float64

	dyingFor  float64
	destroyed bool
}

func resetLifetime(l *Lifetime) {
	*l = Lifetime{Base: object.NewBase(KindLifetime, object.PhaseFrameEnd)}
}

func (l *Lifetime) Update(ctx *object.Context, dt float64, owner *object.GameObject) {
	if l.destroyed || ctx.Objects == nil {
		return
	}
	if l.TimeUntilDeath > 0 {
		l.TimeUntilDeath -= dt
		if l.TimeUntilDeath <= 0 {
			l.destroy(ctx, owner)
			return
		}
	}
	if l.DieWhenLifeGone && owner.Life <= 0 {
		l.dyingFor += dt
		if l.dyingFor >= l.DeathDelay {
			l.destroy(ctx, owner)
		}
	}
}

func (l *Lifetime) destroy(ctx *object.Context, owner *object.GameObject) {
	l.destroyed = true
	ctx.Objects.Destroy(owner)
}
