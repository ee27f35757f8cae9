package components

import (
	"math"

	"github.com/automoto/islandcore/collision"
	"github.com/automoto/islandcore/config"
	"github.com/automoto/islandcore/object"
	"github.com/automoto/islandcore/shared/gamemath"
)

// BackgroundCollision keeps its owner's box out of the level geometry. The
// box center is swept from last frame's position to stop tunneling, then the
// box is pushed out of every surface it still overlaps.
type BackgroundCollision struct {
	object.Base
	Width  float64
	Height float64
	Offset gamemath.Vector2
	Skin   float64

	previous    gamemath.Vector2
	hasPrevious bool
	hits        []collision.HitPoint
}

func resetBackgroundCollision(c *BackgroundCollision) {
	hits := c.hits
	if hits == nil {
		hits = make([]collision.HitPoint, 0, max(config.Collision.BoxHitCapacity, 1))
	}
	*c = BackgroundCollision{
		Base: object.NewBase(KindBackgroundCollision, object.PhaseCollisionDetection),
		Skin: config.Physics.SkinWidth,
		hits: hits[:0],
	}
}

// SetSize sets the collision box relative to the owner's position.
func (c *BackgroundCollision) SetSize(width, height float64, offset gamemath.Vector2) {
	c.Width = width
	c.Height = height
	c.Offset = offset
}

func (c *BackgroundCollision) center() gamemath.Vector2 {
	return gamemath.Vec(c.Offset.X+c.Width/2, c.Offset.Y+c.Height/2)
}

func (c *BackgroundCollision) Update(ctx *object.Context, _ float64, owner *object.GameObject) {
	if ctx.Collision == nil || c.Width <= 0 || c.Height <= 0 {
		return
	}
	if !c.hasPrevious {
		c.previous = owner.Position
		c.hasPrevious = true
	}
	owner.BackgroundNormal = gamemath.Vector2{}

	delta := owner.Position.Sub(c.previous)
	filter := collision.AnyDirection.Excluding(owner.ID)
	if !delta.IsZero() {
		filter = collision.Moving(delta).Excluding(owner.ID)

		from := c.previous.Add(c.center())
		to := owner.Position.Add(c.center())
		if hit, ok := ctx.Collision.CastRay(from, to, filter); ok {
			extent := math.Abs(hit.Normal.X)*c.Width/2 + math.Abs(hit.Normal.Y)*c.Height/2
			owner.Position = hit.Point.Add(hit.Normal.Scale(extent + c.Skin)).Sub(c.center())
			c.touch(ctx, owner, hit.Normal)
		}
	}

	left := owner.Position.X + c.Offset.X
	bottom := owner.Position.Y + c.Offset.Y
	hits, _ := ctx.Collision.TestBox(left, left+c.Width, bottom+c.Height, bottom, filter, false, c.hits[:0])
	for _, hit := range hits {
		depth := c.penetration(owner.Position, hit)
		limit := math.Abs(hit.Normal.X)*c.Width + math.Abs(hit.Normal.Y)*c.Height
		if depth <= 0 || depth > limit {
			continue
		}
		owner.Position = owner.Position.Add(hit.Normal.Scale(depth))
		c.touch(ctx, owner, hit.Normal)
	}
	clear(hits)

	c.previous = owner.Position
}

// penetration is how far the box corner deepest behind the hit surface lies
// past it, measured along the surface normal.
func (c *BackgroundCollision) penetration(position gamemath.Vector2, hit collision.HitPoint) float64 {
	corner := gamemath.Vec(position.X+c.Offset.X, position.Y+c.Offset.Y)
	if hit.Normal.X < 0 {
		corner.X += c.Width
	}
	if hit.Normal.Y < 0 {
		corner.Y += c.Height
	}
	return hit.Point.Sub(corner).Dot(hit.Normal)
}

func (c *BackgroundCollision) touch(ctx *object.Context, owner *object.GameObject, normal gamemath.Vector2) {
	owner.BackgroundNormal = owner.BackgroundNormal.Add(normal).Normalize()

	switch {
	case normal.Y > 0.5:
		owner.LastTouchedFloor = ctx.GameTime
	case normal.Y < -0.5:
		owner.LastTouchedCeiling = ctx.GameTime
	case normal.X > 0.5:
		owner.LastTouchedLeftWall = ctx.GameTime
	case normal.X < -0.5:
		owner.LastTouchedRightWall = ctx.GameTime
	}

	if d := owner.Velocity.Dot(normal); d < 0 {
		owner.Velocity = owner.Velocity.Sub(normal.Scale(d))
	}
}
