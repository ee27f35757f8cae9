package object

// Kind is the compile-time type tag of a concrete component. It selects the
// pool a component is returned to; the concrete values live with the
// components themselves.
type Kind uint8

// Component is one unit of behavior attached to a GameObject.
type Component interface {
	Kind() Kind
	Phase() Phase
	// Shared components hold read-only data reused by many objects and are
	// never released when an object is destroyed.
	Shared() bool
	Update(ctx *Context, dt float64, owner *GameObject)
}

// Base carries the scheduling tags every component embeds.
type Base struct {
	kind   Kind
	phase  Phase
	shared bool
	owner  *GameObject
}

func NewBase(kind Kind, phase Phase) Base {
	return Base{kind: kind, phase: phase}
}

func (b *Base) Kind() Kind   { return b.kind }
func (b *Base) Phase() Phase { return b.phase }
func (b *Base) Shared() bool { return b.shared }

// SetPhase moves the component to another phase. It takes effect at the
// owner's next commit; the current sweep keeps the phase it committed with.
func (b *Base) SetPhase(p Phase) { b.phase = p }

func (b *Base) SetShared(shared bool) { b.shared = shared }

// claim records o as the owner. It fails while another object holds the
// component.
func (b *Base) claim(o *GameObject) bool {
	if b.owner != nil && b.owner != o {
		return false
	}
	b.owner = o
	return true
}

func (b *Base) unclaim(o *GameObject) {
	if b.owner == o {
		b.owner = nil
	}
}
