package components

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/automoto/islandcore/collision"
	"github.com/automoto/islandcore/object"
	"github.com/automoto/islandcore/shared/gamemath"
)

// MaxSolidSegments bounds the surfaces one solid object can expose.
const MaxSolidSegments = 4

// SolidSurface turns its owner into level geometry by resubmitting its
// segments as temporary surfaces every frame. Segments are relative to the
// owner's position.
type SolidSurface struct {
	object.Base
	segments [MaxSolidSegments]collision.LineSegment
	count    int
}

func resetSolidSurface(s *SolidSurface) {
	*s = SolidSurface{Base: object.NewBase(KindSolidSurface, object.PhasePostCollision)}
}

// AddSegment appends a surface. It returns false when the object is full.
func (s *SolidSurface) AddSegment(start, end, normal gamemath.Vector2) bool {
	if s.count == len(s.segments) {
		return false
	}
	s.segments[s.count] = collision.NewSegment(start, end, normal)
	s.count++
	return true
}

// AddBox surrounds a width x height box at the owner's origin with four
// outward facing surfaces.
func (s *SolidSurface) AddBox(width, height float64) bool {
	bl, br := gamemath.Vec(0, 0), gamemath.Vec(width, 0)
	tl, tr := gamemath.Vec(0, height), gamemath.Vec(width, height)
	return s.AddSegment(tl, tr, gamemath.Vec(0, 1)) &&
		s.AddSegment(bl, br, gamemath.Vec(0, -1)) &&
		s.AddSegment(bl, tl, gamemath.Vec(-1, 0)) &&
		s.AddSegment(br, tr, gamemath.Vec(1, 0))
}

func (s *SolidSurface) Segments() []collision.LineSegment {
	return s.segments[:s.count]
}

func (s *SolidSurface) Update(ctx *object.Context, _ float64, owner *object.GameObject) {
	if ctx.Collision == nil {
		return
	}
	for i := range s.segments[:s.count] {
		seg := &s.segments[i]
		ctx.Collision.AddTemporarySurface(seg.Start.Add(owner.Position), seg.End.Add(owner.Position), seg.Normal, owner.ID)
	}
}

// TweenPath moves its owner back and forth between From and To, spending
// Period seconds on each leg. The easing sequence is built once per pooled
// instance and rewound on reuse.
type TweenPath struct {
	object.Base
	From   gamemath.Vector2
	To     gamemath.Vector2
	Period float64

	seq *gween.Sequence
}

func newPingPong() *gween.Sequence {
	seq := gween.NewSequence()
	seq.Add(
		gween.New(0, 1, 1, ease.InOutQuad),
		gween.New(1, 0, 1, ease.InOutQuad),
	)
	return seq
}

func resetTweenPath(t *TweenPath) {
	seq := t.seq
	if seq == nil {
		seq = newPingPong()
	}
	seq.Reset()
	*t = TweenPath{
		Base: object.NewBase(KindTweenPath, object.PhaseMovement),
		seq:  seq,
	}
}

func (t *TweenPath) Update(_ *object.Context, dt float64, owner *object.GameObject) {
	if t.Period <= 0 || dt <= 0 {
		return
	}
	value, _, done := t.seq.Update(float32(dt / t.Period))
	if done {
		t.seq.Reset()
	}

	target := t.From.Add(t.To.Sub(t.From).Scale(float64(value)))
	owner.Velocity = target.Sub(owner.Position).Scale(1 / dt)
	owner.Position = target
}
