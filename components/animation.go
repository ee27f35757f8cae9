package components

import (
	"github.com/automoto/islandcore/config"
	"github.com/automoto/islandcore/object"
)

// AnimationTable picks the owner's animation frame from its current action.
// It holds no per-object state, so one table is shared by every object of
// an archetype; frame and time live on the object.
type AnimationTable struct {
	object.Base
	anims [object.ActionCount]config.AnimationDef
}

// NewAnimationTable builds a shared table from definitions keyed by action
// name. Unknown names are ignored.
func NewAnimationTable(defs map[string]config.AnimationDef) *AnimationTable {
	t := &AnimationTable{Base: object.NewBase(KindAnimationTable, object.PhaseAnimation)}
	t.SetShared(true)
	for action := object.Action(0); action < object.ActionCount; action++ {
		if def, ok := defs[action.String()]; ok {
			t.anims[action] = def
		}
	}
	return t
}

// Animation returns the definition used for action.
func (t *AnimationTable) Animation(action object.Action) config.AnimationDef {
	if action < object.ActionCount {
		return t.anims[action]
	}
	return config.AnimationDef{}
}

func (t *AnimationTable) Update(_ *object.Context, dt float64, owner *object.GameObject) {
	if owner.AnimationAction != owner.CurrentAction {
		owner.AnimationAction = owner.CurrentAction
		owner.AnimationTime = 0
	} else {
		owner.AnimationTime += dt
	}

	anim := t.Animation(owner.CurrentAction)
	frames := anim.Frames()
	if frames <= 1 || anim.FrameTime <= 0 {
		owner.AnimationFrame = anim.First
		return
	}

	frame := int(owner.AnimationTime / anim.FrameTime)
	if anim.Loop {
		frame %= frames
	} else if frame >= frames {
		frame = frames - 1
	}
	owner.AnimationFrame = anim.First + frame
}
