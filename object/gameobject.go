package object

import (
	"github.com/automoto/islandcore/collision"
	"github.com/automoto/islandcore/shared/gamemath"
)

// Team decides who may hurt whom.
type Team uint8

const (
	TeamNone Team = iota
	TeamPlayer
	TeamEnemy
)

// Action is the object's current high-level activity, read by animation and
// hit handling.
type Action uint8

const (
	ActionInvalid Action = iota
	ActionIdle
	ActionMove
	ActionAttack
	ActionHitReact
	ActionDeath
	ActionFrozen

	ActionCount
)

var actionNames = [ActionCount]string{"invalid", "idle", "move", "attack", "hit-react", "death", "frozen"}

func (a Action) String() string {
	if a < ActionCount {
		return actionNames[a]
	}
	return "unknown"
}

// SpawnType names an archetype the object manager knows how to build.
type SpawnType uint8

const (
	SpawnNone SpawnType = iota
	SpawnPlayer
	SpawnPatrolEnemy
	SpawnMovingPlatform
	SpawnDustEffect
	SpawnCoin

	SpawnTypeCount
)

var spawnTypeNames = [SpawnTypeCount]string{"none", "player", "patrol-enemy", "moving-platform", "dust-effect", "coin"}

func (t SpawnType) String() string {
	if t < SpawnTypeCount {
		return spawnTypeNames[t]
	}
	return "unknown"
}

// ParseSpawnType looks a spawn type up by its String name.
func ParseSpawnType(name string) (SpawnType, bool) {
	for t := SpawnPlayer; t < SpawnTypeCount; t++ {
		if spawnTypeNames[t] == name {
			return t, true
		}
	}
	return SpawnNone, false
}

// AlwaysActive disables activation radius culling for an object.
const AlwaysActive = -1.0

// GameObject is a pooled container of components. Position is the bottom
// left corner of the object's box in world units, Y up.
type GameObject struct {
	ID        collision.OwnerID
	SpawnType SpawnType

	Position       gamemath.Vector2
	Velocity       gamemath.Vector2
	TargetVelocity gamemath.Vector2
	Acceleration   gamemath.Vector2
	Facing         gamemath.Vector2
	Width          float64
	Height         float64

	Life          int
	Team          Team
	CurrentAction Action

	ActivationRadius float64

	// Written by background collision.
	BackgroundNormal     gamemath.Vector2
	LastTouchedFloor     float64
	LastTouchedCeiling   float64
	LastTouchedLeftWall  float64
	LastTouchedRightWall float64

	AnimationAction Action
	AnimationFrame  int
	AnimationTime   float64

	components    []Component
	phases        []Phase
	pendingAdd    []Component
	pendingRemove []Component
	phaseMask     uint16
}

// claimer is implemented by components embedding Base. A non-shared component
// may be attached to one object at a time.
type claimer interface {
	claim(o *GameObject) bool
	unclaim(o *GameObject)
}

// NewGameObject returns an object able to hold up to capacity components.
// Its slices are sized once and reused across every spawn.
func NewGameObject(capacity int) *GameObject {
	return &GameObject{
		components:    make([]Component, 0, capacity),
		phases:        make([]Phase, 0, capacity),
		pendingAdd:    make([]Component, 0, capacity),
		pendingRemove: make([]Component, 0, capacity),
		Facing:        gamemath.Vec(1, 0),
	}
}

// Reserve grows the component lists to hold capacity components. Pools call
// it once per slot so spawning never allocates.
func (o *GameObject) Reserve(capacity int) {
	if cap(o.components) >= capacity {
		return
	}
	o.components = make([]Component, 0, capacity)
	o.phases = make([]Phase, 0, capacity)
	o.pendingAdd = make([]Component, 0, capacity)
	o.pendingRemove = make([]Component, 0, capacity)
}

// Center returns the middle of the object's box.
func (o *GameObject) Center() gamemath.Vector2 {
	return gamemath.Vec(o.Position.X+o.Width/2, o.Position.Y+o.Height/2)
}

// Flipped reports whether the object faces left.
func (o *GameObject) Flipped() bool {
	return o.Facing.X < 0
}

// Placement positions the object's volumes.
func (o *GameObject) Placement() gamemath.Placement {
	return gamemath.Placement{Position: o.Position, Width: o.Width, Flip: o.Flipped()}
}

// TouchingGround reports whether the floor was touched within window
// seconds of now.
func (o *GameObject) TouchingGround(now, window float64) bool {
	return o.LastTouchedFloor > 0 && now-o.LastTouchedFloor <= window
}

// Add stages c for attachment at the next CommitUpdates. It returns false
// if c is already attached or staged, is held by another object, or the
// object has no room.
func (o *GameObject) Add(c Component) bool {
	if c == nil {
		return false
	}
	if i := indexOf(o.pendingRemove, c); i >= 0 {
		o.pendingRemove = removeAt(o.pendingRemove, i)
		return true
	}
	if indexOf(o.components, c) >= 0 || indexOf(o.pendingAdd, c) >= 0 {
		return false
	}
	if len(o.pendingAdd) == cap(o.pendingAdd) || len(o.components)+len(o.pendingAdd) >= cap(o.components) {
		return false
	}
	if b, ok := c.(claimer); ok && !c.Shared() && !b.claim(o) {
		return false
	}
	o.pendingAdd = append(o.pendingAdd, c)
	return true
}

// Remove stages c for detachment at the next CommitUpdates. The caller keeps
// ownership of the detached component.
func (o *GameObject) Remove(c Component) bool {
	if c == nil {
		return false
	}
	if i := indexOf(o.pendingAdd, c); i >= 0 {
		o.pendingAdd = removeAt(o.pendingAdd, i)
		o.unclaim(c)
		return true
	}
	if indexOf(o.components, c) < 0 || indexOf(o.pendingRemove, c) >= 0 {
		return false
	}
	o.pendingRemove = append(o.pendingRemove, c)
	return true
}

// RemoveAll stages every attached component for detachment and drops any
// staged additions.
func (o *GameObject) RemoveAll() {
	for _, c := range o.pendingAdd {
		o.unclaim(c)
	}
	clear(o.pendingAdd)
	o.pendingAdd = o.pendingAdd[:0]
	clear(o.pendingRemove)
	o.pendingRemove = append(o.pendingRemove[:0], o.components...)
}

// CommitUpdates applies staged changes to the live component list. Live
// order is attachment order.
func (o *GameObject) CommitUpdates() {
	if len(o.pendingRemove) > 0 {
		kept := o.components[:0]
		for _, c := range o.components {
			if indexOf(o.pendingRemove, c) < 0 {
				kept = append(kept, c)
			} else {
				o.unclaim(c)
			}
		}
		clear(o.components[len(kept):])
		o.components = kept
		clear(o.pendingRemove)
		o.pendingRemove = o.pendingRemove[:0]
	}
	if len(o.pendingAdd) > 0 {
		o.components = append(o.components, o.pendingAdd...)
		clear(o.pendingAdd)
		o.pendingAdd = o.pendingAdd[:0]
	}

	// Phases are read once here so a SetPhase during the sweep waits for
	// the next commit.
	o.phases = o.phases[:0]
	o.phaseMask = 0
	for _, c := range o.components {
		phase := c.Phase()
		o.phases = append(o.phases, phase)
		o.phaseMask |= phase.mask()
	}
}

// HasPendingUpdates reports whether CommitUpdates has work to do.
func (o *GameObject) HasPendingUpdates() bool {
	return len(o.pendingAdd) > 0 || len(o.pendingRemove) > 0
}

// UpdatePhase runs every live component committed under phase, in
// attachment order. Changes staged while it runs are not seen until the next
// commit.
func (o *GameObject) UpdatePhase(ctx *Context, dt float64, phase Phase) {
	if o.phaseMask&phase.mask() == 0 {
		return
	}
	for i, c := range o.components {
		if o.phases[i] == phase {
			c.Update(ctx, dt, o)
		}
	}
}

// Components returns the live component list. Callers must not modify it.
func (o *GameObject) Components() []Component {
	return o.components
}

// Find returns the first live or staged component of kind.
func (o *GameObject) Find(kind Kind) Component {
	for _, c := range o.components {
		if c.Kind() == kind && indexOf(o.pendingRemove, c) < 0 {
			return c
		}
	}
	for _, c := range o.pendingAdd {
		if c.Kind() == kind {
			return c
		}
	}
	return nil
}

// Reset commits staged changes, hands every non-shared component to release,
// and returns the object to its freshly built state. Slice capacity is kept.
// Components staged for removal are released too: the object is their last
// owner.
func (o *GameObject) Reset(release func(Component)) {
	clear(o.pendingRemove)
	o.pendingRemove = o.pendingRemove[:0]
	o.CommitUpdates()

	for _, c := range o.components {
		o.unclaim(c)
		if release != nil && !c.Shared() {
			release(c)
		}
	}
	clear(o.components)

	components, phases, pendingAdd, pendingRemove := o.components[:0], o.phases[:0], o.pendingAdd, o.pendingRemove
	*o = GameObject{
		components:    components,
		phases:        phases,
		pendingAdd:    pendingAdd,
		pendingRemove: pendingRemove,
		Facing:        gamemath.Vec(1, 0),
	}
}

func (o *GameObject) unclaim(c Component) {
	if b, ok := c.(claimer); ok {
		b.unclaim(o)
	}
}

func indexOf(list []Component, c Component) int {
	for i, item := range list {
		if item == c {
			return i
		}
	}
	return -1
}

func removeAt(list []Component, i int) []Component {
	copy(list[i:], list[i+1:])
	list[len(list)-1] = nil
	return list[:len(list)-1]
}
