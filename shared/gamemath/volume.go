package gamemath

// AABB is an axis-aligned box in world space with Y pointing up.
type AABB struct {
	Min, Max Vector2
}

func NewAABB(left, bottom, width, height float64) AABB {
	return AABB{Min: Vector2{X: left, Y: bottom}, Max: Vector2{X: left + width, Y: bottom + height}}
}

func (b AABB) Width() float64  { return b.Max.X - b.Min.X }
func (b AABB) Height() float64 { return b.Max.Y - b.Min.Y }

func (b AABB) Center() Vector2 {
	return Vector2{X: (b.Min.X + b.Max.X) * 0.5, Y: (b.Min.Y + b.Max.Y) * 0.5}
}

// Overlaps treats touching edges as overlapping.
func (b AABB) Overlaps(o AABB) bool {
	return b.Min.X <= o.Max.X && b.Max.X >= o.Min.X &&
		b.Min.Y <= o.Max.Y && b.Max.Y >= o.Min.Y
}

func (b AABB) Contains(p Vector2) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// ClosestPoint returns the point inside b nearest to p.
func (b AABB) ClosestPoint(p Vector2) Vector2 {
	return Vector2{X: ClampFloat(p.X, b.Min.X, b.Max.X), Y: ClampFloat(p.Y, b.Min.Y, b.Max.Y)}
}

// VolumeShape tags the variant stored in a Volume.
type VolumeShape uint8

const (
	ShapeBox VolumeShape = iota
	ShapeSphere
)

// HitType says what a collision between an attack and a vulnerability volume means.
type HitType uint8

const (
	HitNone HitType = iota
	HitHit
	HitDeath
	HitCollect
	HitLaunch
	HitDepress
)

var hitTypeNames = [...]string{"none", "hit", "death", "collect", "launch", "depress"}

func (h HitType) String() string {
	if int(h) < len(hitTypeNames) {
		return hitTypeNames[h]
	}
	return "unknown"
}

// Volume is a box or sphere collision volume positioned relative to its owner.
// For boxes Offset is the bottom-left corner; for spheres it is the center.
type Volume struct {
	Shape   VolumeShape
	Offset  Vector2
	Size    Vector2
	Radius  float64
	HitType HitType
}

func BoxVolume(offsetX, offsetY, width, height float64, hit HitType) Volume {
	return Volume{Shape: ShapeBox, Offset: Vec(offsetX, offsetY), Size: Vec(width, height), HitType: hit}
}

func SphereVolume(centerX, centerY, radius float64, hit HitType) Volume {
	return Volume{Shape: ShapeSphere, Offset: Vec(centerX, centerY), Radius: radius, HitType: hit}
}

// Placement is where a volume's owner sits this frame. Flip mirrors the
// volume about the owner's width.
type Placement struct {
	Position Vector2
	Width    float64
	Flip     bool
}

func (v Volume) center(p Placement) Vector2 {
	x := v.Offset.X
	if p.Flip {
		x = p.Width - x
	}
	return Vector2{X: p.Position.X + x, Y: p.Position.Y + v.Offset.Y}
}

// Bounds returns the world-space box enclosing the volume.
func (v Volume) Bounds(p Placement) AABB {
	if v.Shape == ShapeSphere {
		c := v.center(p)
		return AABB{
			Min: Vector2{X: c.X - v.Radius, Y: c.Y - v.Radius},
			Max: Vector2{X: c.X + v.Radius, Y: c.Y + v.Radius},
		}
	}
	left := v.Offset.X
	if p.Flip {
		left = p.Width - (v.Offset.X + v.Size.X)
	}
	return NewAABB(p.Position.X+left, p.Position.Y+v.Offset.Y, v.Size.X, v.Size.Y)
}

// Intersects tests v placed at p against o placed at op.
func (v Volume) Intersects(p Placement, o Volume, op Placement) bool {
	switch {
	case v.Shape == ShapeBox && o.Shape == ShapeBox:
		return v.Bounds(p).Overlaps(o.Bounds(op))
	case v.Shape == ShapeSphere && o.Shape == ShapeSphere:
		r := v.Radius + o.Radius
		return v.center(p).Distance2(o.center(op)) <= r*r
	case v.Shape == ShapeSphere:
		return sphereBox(v.center(p), v.Radius, o.Bounds(op))
	default:
		return sphereBox(o.center(op), o.Radius, v.Bounds(p))
	}
}

func sphereBox(center Vector2, radius float64, box AABB) bool {
	return box.ClosestPoint(center).Distance2(center) <= radius*radius
}
