package systems

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"

	"github.com/automoto/islandcore/collision"
	"github.com/automoto/islandcore/components"
	"github.com/automoto/islandcore/config"
	"github.com/automoto/islandcore/shared/gamemath"
	"github.com/automoto/islandcore/tags"
)

var (
	colorStatic     = color.RGBA{100, 100, 100, 255}
	colorTemporary  = color.RGBA{255, 160, 0, 255}
	colorNormal     = color.RGBA{0, 200, 0, 255}
	colorAttack     = color.RGBA{255, 0, 255, 255}
	colorVulnerable = color.RGBA{255, 255, 0, 255}
)

// screenSpace maps Y-up world coordinates onto the screen with camera at
// the center.
type screenSpace struct {
	camera        gamemath.Vector2
	width, height float64
}

func (s screenSpace) point(p gamemath.Vector2) (float32, float32) {
	return float32(p.X - s.camera.X + s.width/2), float32(s.height/2 - (p.Y - s.camera.Y))
}

func (s screenSpace) visible(b gamemath.AABB) bool {
	return b.Max.X >= s.camera.X-s.width/2 && b.Min.X <= s.camera.X+s.width/2 &&
		b.Max.Y >= s.camera.Y-s.height/2 && b.Min.Y <= s.camera.Y+s.height/2
}

// DrawDebug draws the collision world, this frame's temporary surfaces,
// every object's box and the registered hit volumes, centered on camera.
func DrawDebug(e *Engine, screen *ebiten.Image, camera gamemath.Vector2) {
	width, height := screen.Bounds().Dx(), screen.Bounds().Dy()
	view := screenSpace{camera: camera, width: float64(width), height: float64(height)}

	if config.Debug.DrawCollision {
		e.Collision.EachStaticSegment(func(s collision.LineSegment) {
			drawSegment(screen, view, s, colorStatic)
		})
		e.Collision.EachTemporarySurface(func(s collision.LineSegment) {
			drawSegment(screen, view, s, colorTemporary)
		})
	}

	components.Object.Each(e.Objects.World(), func(entry *donburi.Entry) {
		o := components.Object.Get(entry)
		box := gamemath.NewAABB(o.Position.X, o.Position.Y, o.Width, o.Height)
		if !view.visible(box) {
			return
		}

		// Determine color based on tags
		c := color.RGBA{0, 255, 255, 255}
		switch {
		case entry.HasComponent(tags.Player):
			c = color.RGBA{0, 0, 255, 255}
		case entry.HasComponent(tags.Enemy):
			c = color.RGBA{255, 0, 0, 255}
		case entry.HasComponent(tags.Platform):
			c = color.RGBA{160, 160, 160, 255}
		case entry.HasComponent(tags.Pickup):
			c = color.RGBA{255, 215, 0, 255}
		}
		drawBox(screen, view, box, c)
	})

	if config.Debug.DrawVolumes {
		e.Hits.EachVolume(func(b gamemath.AABB, attack bool) {
			if !view.visible(b) {
				return
			}
			c := colorVulnerable
			if attack {
				c = colorAttack
			}
			drawBox(screen, view, b, c)
		})
	}
}

func drawSegment(screen *ebiten.Image, view screenSpace, s collision.LineSegment, c color.Color) {
	x0, y0 := view.point(s.Start)
	x1, y1 := view.point(s.End)
	vector.StrokeLine(screen, x0, y0, x1, y1, 1, c, false)

	mid := s.Start.Add(s.End).Scale(0.5)
	nx, ny := view.point(mid.Add(s.Normal.Scale(4)))
	mx, my := view.point(mid)
	vector.StrokeLine(screen, mx, my, nx, ny, 1, colorNormal, false)
}

func drawBox(screen *ebiten.Image, view screenSpace, b gamemath.AABB, c color.Color) {
	// Top-left on screen is the world box's min X, max Y.
	x, y := view.point(gamemath.Vec(b.Min.X, b.Max.Y))
	w, h := float32(b.Width()), float32(b.Height())

	vector.FillRect(screen, x, y, w, 1, c, false)     // Top
	vector.FillRect(screen, x, y+h-1, w, 1, c, false) // Bottom
	vector.FillRect(screen, x, y, 1, h, c, false)     // Left
	vector.FillRect(screen, x+w-1, y, 1, h, c, false) // Right
}
