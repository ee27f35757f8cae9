package main

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/automoto/islandcore/config"
	"github.com/automoto/islandcore/object"
	"github.com/automoto/islandcore/shared/gamemath"
)

// gameInput polls keyboard and gamepads once per frame and serves the
// result to the engine as an object.InputProvider.
type gameInput struct {
	current  [config.ActionCount]bool
	previous [config.ActionCount]bool
	analog   gamemath.Vector2

	// Reusable slice for gamepad IDs to avoid allocations
	gamepads []ebiten.GamepadID
}

// Poll swaps buffers and reads this frame's state.
func (in *gameInput) Poll() {
	in.previous = in.current
	in.current = [config.ActionCount]bool{}
	in.analog = gamemath.Vector2{}

	in.gamepads = ebiten.AppendGamepadIDs(in.gamepads[:0])
	for action, binding := range config.Input.Bindings {
		for _, key := range binding.Keys {
			if ebiten.IsKeyPressed(key) {
				in.current[action] = true
			}
		}
		for _, id := range in.gamepads {
			if !ebiten.IsStandardGamepadLayoutAvailable(id) {
				continue
			}
			for _, btn := range binding.StandardGamepadButtons {
				if ebiten.IsStandardGamepadButtonPressed(id, btn) {
					in.current[action] = true
				}
			}
		}
	}

	deadzone := config.Input.AnalogDeadzone
	for _, id := range in.gamepads {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		h := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		v := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if h < -deadzone || h > deadzone {
			in.analog.X = h
		}
		// Stick up is negative; the world is Y up.
		if v < -deadzone || v > deadzone {
			in.analog.Y = -v
		}
	}
}

// Held reports whether action is down this frame.
func (in *gameInput) Held(action config.ActionID) bool {
	return in.current[action]
}

// JustPressed reports whether action went down this frame.
func (in *gameInput) JustPressed(action config.ActionID) bool {
	return in.current[action] && !in.previous[action]
}

func (in *gameInput) Direction() gamemath.Vector2 {
	dir := in.analog
	if in.current[config.ActionMoveLeft] {
		dir.X = -1
	}
	if in.current[config.ActionMoveRight] {
		dir.X = 1
	}
	if in.current[config.ActionMoveUp] {
		dir.Y = 1
	}
	if in.current[config.ActionMoveDown] {
		dir.Y = -1
	}
	return dir
}

func (in *gameInput) Pressed(b object.Button) bool {
	return in.Held(buttonAction(b))
}

func (in *gameInput) Triggered(b object.Button) bool {
	return in.JustPressed(buttonAction(b))
}

func buttonAction(b object.Button) config.ActionID {
	switch b {
	case object.ButtonJump:
		return config.ActionJump
	case object.ButtonAttack:
		return config.ActionAttack
	}
	return config.ActionNone
}
