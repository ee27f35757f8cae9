package gamemath

import (
	"math"

	dmath "github.com/yohamta/donburi/features/math"
)

// Vector2 is a 2D point or direction. It is a plain value; callers copy it
// rather than sharing scratch instances.
type Vector2 struct {
	X, Y float64
}

// Zero is the zero vector.
var Zero = Vector2{}

func Vec(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vector2) Sub(o Vector2) Vector2 {
	return Vector2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vector2) Scale(s float64) Vector2 {
	return Vector2{X: v.X * s, Y: v.Y * s}
}

// Mul multiplies component-wise.
func (v Vector2) Mul(o Vector2) Vector2 {
	return Vector2{X: v.X * o.X, Y: v.Y * o.Y}
}

func (v Vector2) Dot(o Vector2) float64 {
	return v.X*o.X + v.Y*o.Y
}

func (v Vector2) Length2() float64 {
	return v.X*v.X + v.Y*v.Y
}

func (v Vector2) Length() float64 {
	return math.Sqrt(v.Length2())
}

// Normalize returns the unit vector in v's direction, or the zero vector when
// v has no length.
func (v Vector2) Normalize() Vector2 {
	l := v.Length()
	if l == 0 {
		return Vector2{}
	}
	inv := 1 / l
	return Vector2{X: v.X * inv, Y: v.Y * inv}
}

// Distance2 returns the squared distance between v and o.
func (v Vector2) Distance2(o Vector2) float64 {
	dx := v.X - o.X
	dy := v.Y - o.Y
	return dx*dx + dy*dy
}

func (v Vector2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// FlipX mirrors the vector horizontally.
func (v Vector2) FlipX() Vector2 {
	return Vector2{X: -v.X, Y: v.Y}
}

// ApproxEqual reports whether v and o differ by less than eps on both axes.
func (v Vector2) ApproxEqual(o Vector2, eps float64) bool {
	return math.Abs(v.X-o.X) < eps && math.Abs(v.Y-o.Y) < eps
}

// ToVec2 converts to the donburi math vector used by render-side code.
func (v Vector2) ToVec2() dmath.Vec2 {
	return dmath.Vec2{X: v.X, Y: v.Y}
}

func FromVec2(v dmath.Vec2) Vector2 {
	return Vector2{X: v.X, Y: v.Y}
}

// Sign returns -1, 0 or 1.
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// ClampInt constrains value to [lo, hi].
func ClampInt(value, lo, hi int) int {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

// ClampFloat constrains value to [lo, hi].
func ClampFloat(value, lo, hi float64) float64 {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
