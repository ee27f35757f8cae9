package main

import (
	dmath "github.com/yohamta/donburi/features/math"

	"github.com/automoto/islandcore/shared/gamemath"
)

// camera follows a target with smoothing and keeps the view inside the
// level wherever the level is larger than the screen.
type camera struct {
	position  dmath.Vec2
	smoothing float64
}

// Follow moves the view toward target, clamped so the level fills the
// screen. Levels smaller than the screen are centered.
func (c *camera) Follow(target, level gamemath.Vector2, screenW, screenH float64) {
	goal := gamemath.Vec(clampView(target.X, level.X, screenW), clampView(target.Y, level.Y, screenH)).ToVec2()
	c.position = c.position.Add(goal.Sub(c.position).MulScalar(c.smoothing))
}

// Snap moves the view straight to target.
func (c *camera) Snap(target, level gamemath.Vector2, screenW, screenH float64) {
	c.position = gamemath.Vec(clampView(target.X, level.X, screenW), clampView(target.Y, level.Y, screenH)).ToVec2()
}

func (c *camera) Position() gamemath.Vector2 {
	return gamemath.FromVec2(c.position)
}

func clampView(v, level, screen float64) float64 {
	if level <= screen {
		return level / 2
	}
	return gamemath.ClampFloat(v, screen/2, level-screen/2)
}
