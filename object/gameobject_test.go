package object

import "testing"

const (
	kindCounter Kind = iota + 1
	kindSpawner
	kindRemover
)

type counter struct {
	Base
	calls int
	order *[]Phase
}

func newCounter(phase Phase) *counter {
	return &counter{Base: NewBase(kindCounter, phase)}
}

func (c *counter) Update(_ *Context, _ float64, _ *GameObject) {
	c.calls++
	if c.order != nil {
		*c.order = append(*c.order, c.Phase())
	}
}

// adder attaches child the first time it runs.
type adder struct {
	Base
	child Component
	done  bool
}

func (a *adder) Update(_ *Context, _ float64, owner *GameObject) {
	if !a.done {
		owner.Add(a.child)
		a.done = true
	}
}

// remover detaches target the first time it runs.
type remover struct {
	Base
	target Component
}

func (r *remover) Update(_ *Context, _ float64, owner *GameObject) {
	owner.Remove(r.target)
}

func sweep(o *GameObject) {
	ctx := &Context{}
	for _, phase := range Phases() {
		o.UpdatePhase(ctx, 1.0/60, phase)
	}
}

func TestAddIsDeferredUntilCommit(t *testing.T) {
	o := NewGameObject(4)
	child := newCounter(PhaseMovement)
	o.Add(&adder{Base: NewBase(kindSpawner, PhaseThink), child: child})
	o.CommitUpdates()

	sweep(o)
	if child.calls != 0 {
		t.Fatalf("component added mid-sweep ran %d times in the same sweep", child.calls)
	}
	if len(o.Components()) != 1 {
		t.Fatalf("live list changed before commit: %d", len(o.Components()))
	}

	o.CommitUpdates()
	sweep(o)
	if child.calls != 1 {
		t.Errorf("child ran %d times after commit, expected 1", child.calls)
	}
}

func TestRemoveIsDeferredUntilCommit(t *testing.T) {
	o := NewGameObject(4)
	victim := newCounter(PhaseAnimation)
	o.Add(&remover{Base: NewBase(kindRemover, PhaseThink), target: victim})
	o.Add(victim)
	o.CommitUpdates()

	sweep(o)
	if victim.calls != 1 {
		t.Fatalf("component removed mid-sweep ran %d times, expected 1", victim.calls)
	}

	o.CommitUpdates()
	sweep(o)
	if victim.calls != 1 {
		t.Errorf("removed component ran after commit (%d calls)", victim.calls)
	}
	if o.Find(kindCounter) != nil {
		t.Error("Find() returned a removed component")
	}
}

func TestUpdatePhaseOrder(t *testing.T) {
	var order []Phase
	o := NewGameObject(4)
	for _, p := range []Phase{PhaseAnimation, PhaseThink, PhaseCollisionResponse, PhaseMovement} {
		c := newCounter(p)
		c.order = &order
		o.Add(c)
	}
	o.CommitUpdates()
	sweep(o)

	expected := []Phase{PhaseThink, PhaseMovement, PhaseCollisionResponse, PhaseAnimation}
	if len(order) != len(expected) {
		t.Fatalf("ran %d components, expected %d", len(order), len(expected))
	}
	for i := range expected {
		if order[i] != expected[i] {
			t.Errorf("step %d ran %v, expected %v", i, order[i], expected[i])
		}
	}
}

func TestAddRules(t *testing.T) {
	o := NewGameObject(2)
	a, b, c := newCounter(PhaseThink), newCounter(PhaseThink), newCounter(PhaseThink)

	if !o.Add(a) {
		t.Fatal("Add() rejected a fresh component")
	}
	if o.Add(a) {
		t.Error("Add() accepted the same component twice")
	}
	o.Add(b)
	if o.Add(c) {
		t.Error("Add() accepted a component past capacity")
	}
	if o.Add(nil) {
		t.Error("Add(nil) succeeded")
	}

	o.CommitUpdates()
	o.Remove(a)
	if !o.Add(a) {
		t.Error("Add() could not cancel a staged removal")
	}
	o.CommitUpdates()
	if len(o.Components()) != 2 {
		t.Errorf("live components = %d, expected 2", len(o.Components()))
	}
}

func TestRemoveAll(t *testing.T) {
	o := NewGameObject(4)
	o.Add(newCounter(PhaseThink))
	o.Add(newCounter(PhaseMovement))
	o.CommitUpdates()
	o.Add(newCounter(PhaseAnimation))

	o.RemoveAll()
	o.CommitUpdates()
	if len(o.Components()) != 0 {
		t.Errorf("RemoveAll() left %d components", len(o.Components()))
	}
}

func TestResetReleasesOnlyOwnedComponents(t *testing.T) {
	o := NewGameObject(4)
	owned := newCounter(PhaseThink)
	shared := newCounter(PhaseAnimation)
	shared.SetShared(true)
	staged := newCounter(PhaseMovement)

	o.Add(owned)
	o.Add(shared)
	o.CommitUpdates()
	o.Add(staged)
	o.Life = 3
	o.Team = TeamEnemy

	var released []Component
	o.Reset(func(c Component) { released = append(released, c) })

	if len(released) != 2 {
		t.Fatalf("released %d components, expected 2", len(released))
	}
	for _, c := range released {
		if c == shared {
			t.Error("shared component was released")
		}
	}
	if len(o.Components()) != 0 || o.HasPendingUpdates() {
		t.Error("Reset() left components behind")
	}
	if o.Life != 0 || o.Team != TeamNone {
		t.Error("Reset() kept object state")
	}
	if cap(o.Components()) != 4 {
		t.Errorf("Reset() dropped capacity: %d", cap(o.Components()))
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseCollisionDetection.String() != "collision-detection" {
		t.Errorf("String() = %q", PhaseCollisionDetection.String())
	}
	if Phase(200).String() != "unknown" {
		t.Error("out of range phase has a name")
	}
}

// phaseMover moves target to phase every time it runs.
type phaseMover struct {
	Base
	target *counter
	phase  Phase
}

func (m *phaseMover) Update(_ *Context, _ float64, _ *GameObject) {
	m.target.SetPhase(m.phase)
}

func TestSetPhaseWaitsForCommit(t *testing.T) {
	o := NewGameObject(4)
	target := newCounter(PhaseMovement)
	o.Add(&phaseMover{Base: NewBase(kindSpawner, PhaseThink), target: target, phase: PhaseAnimation})
	o.Add(target)
	o.CommitUpdates()

	ranIn := func() []Phase {
		var ran []Phase
		ctx := &Context{}
		for _, phase := range Phases() {
			before := target.calls
			o.UpdatePhase(ctx, 1.0/60, phase)
			if target.calls > before {
				ran = append(ran, phase)
			}
		}
		return ran
	}

	if ran := ranIn(); len(ran) != 1 || ran[0] != PhaseMovement {
		t.Fatalf("first sweep ran target in %v, expected [movement]", ran)
	}
	o.CommitUpdates()
	if ran := ranIn(); len(ran) != 1 || ran[0] != PhaseAnimation {
		t.Errorf("sweep after commit ran target in %v, expected [animation]", ran)
	}
}

func TestComponentHasOneOwner(t *testing.T) {
	a, b := NewGameObject(4), NewGameObject(4)
	c := newCounter(PhaseThink)

	if !a.Add(c) {
		t.Fatal("Add() rejected a fresh component")
	}
	if b.Add(c) {
		t.Error("a staged component was attached to a second object")
	}
	a.CommitUpdates()
	if b.Add(c) {
		t.Error("a live component was attached to a second object")
	}

	a.Remove(c)
	if b.Add(c) {
		t.Error("component attached elsewhere before its removal committed")
	}
	a.CommitUpdates()
	if !b.Add(c) {
		t.Error("detached component could not move to another object")
	}

	// Cancelling a staged add and resetting both give the component up.
	b.Remove(c)
	if !a.Add(c) {
		t.Error("cancelled add kept the component claimed")
	}
	a.CommitUpdates()
	a.Reset(nil)
	if !b.Add(c) {
		t.Error("Reset() kept the component claimed")
	}

	table := newCounter(PhaseAnimation)
	table.SetShared(true)
	if !a.Add(table) || !b.Add(table) {
		t.Error("shared component limited to one object")
	}
}
