package config

import "github.com/hajimehoshi/ebiten/v2"

// ActionID represents a logical viewer action
type ActionID int

const (
	ActionNone ActionID = iota
	ActionMoveLeft
	ActionMoveRight
	ActionMoveUp
	ActionMoveDown
	ActionJump
	ActionAttack
	ActionPause
	ActionStep
	ActionToggleDebug
	ActionRestart
	ActionCount // Must be last - used for array sizing
)

// InputBinding represents the keys and buttons bound to an action
type InputBinding struct {
	Keys                   []ebiten.Key
	StandardGamepadButtons []ebiten.StandardGamepadButton
}

// InputConfig holds all input mappings
type InputConfig struct {
	Bindings map[ActionID]InputBinding
	// Deadzone for analog stick input (0.0 to 1.0)
	AnalogDeadzone float64
}

// Input is the global input configuration
var Input InputConfig

func init() {
	Input = InputConfig{
		AnalogDeadzone: 0.25,
		Bindings: map[ActionID]InputBinding{
			ActionMoveLeft: {
				Keys:                   []ebiten.Key{ebiten.KeyLeft, ebiten.KeyA},
				StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonLeftLeft},
			},
			ActionMoveRight: {
				Keys:                   []ebiten.Key{ebiten.KeyRight, ebiten.KeyD},
				StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonLeftRight},
			},
			ActionMoveUp: {
				Keys:                   []ebiten.Key{ebiten.KeyUp},
				StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonLeftTop},
			},
			ActionMoveDown: {
				Keys:                   []ebiten.Key{ebiten.KeyDown, ebiten.KeyS},
				StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonLeftBottom},
			},
			ActionJump: {
				Keys: []ebiten.Key{ebiten.KeyX, ebiten.KeyW, ebiten.KeySpace},
				// A / Cross button
				StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonRightBottom},
			},
			ActionAttack: {
				Keys: []ebiten.Key{ebiten.KeyZ},
				// X / Square button
				StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonRightLeft},
			},
			ActionPause: {
				Keys:                   []ebiten.Key{ebiten.KeyEscape, ebiten.KeyP},
				StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonCenterRight},
			},
			ActionStep: {
				Keys: []ebiten.Key{ebiten.KeyPeriod},
			},
			ActionToggleDebug: {
				Keys: []ebiten.Key{ebiten.KeyF1},
			},
			ActionRestart: {
				Keys:                   []ebiten.Key{ebiten.KeyR},
				StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonCenterLeft},
			},
		},
	}
}
