package object

import (
	"github.com/charmbracelet/log"

	"github.com/automoto/islandcore/collision"
	"github.com/automoto/islandcore/shared/gamemath"
)

// Spawner creates and destroys objects. Both take effect at frame
// boundaries, never mid-sweep.
type Spawner interface {
	Spawn(t SpawnType, position gamemath.Vector2, flip bool) *GameObject
	Destroy(o *GameObject)
	// CanSpawn reports whether count more objects fit while keeping the
	// reserve needed by required spawns.
	CanSpawn(count int) bool
}

// HitRegistry collects the volumes objects expose this frame.
type HitRegistry interface {
	Register(owner *GameObject, attack, vulnerable []gamemath.Volume) bool
}

// Button is a digital input.
type Button uint8

const (
	ButtonJump Button = iota
	ButtonAttack
)

// InputProvider reports the state of the player's controls for the current
// frame.
type InputProvider interface {
	Direction() gamemath.Vector2
	Pressed(b Button) bool
	// Triggered is true only on the frame the button went down.
	Triggered(b Button) bool
}

// SoundPlayer plays short effects by name.
type SoundPlayer interface {
	Play(name string)
}

// Context carries the services components need during an update. One is
// built per engine; nothing in it is global.
type Context struct {
	Collision *collision.System
	Objects   Spawner
	Hits      HitRegistry
	Input     InputProvider
	Sound     SoundPlayer
	Log       *log.Logger

	// Camera is the point activation radii are measured from.
	Camera   gamemath.Vector2
	Player   *GameObject
	GameTime float64
}

// NoInput is an InputProvider with nothing pressed.
type NoInput struct{}

func (NoInput) Direction() gamemath.Vector2 { return gamemath.Vector2{} }
func (NoInput) Pressed(Button) bool         { return false }
func (NoInput) Triggered(Button) bool       { return false }

// ScriptedInput replays a fixed input state, for tools and tests.
type ScriptedInput struct {
	Dir       gamemath.Vector2
	Held      [2]bool
	JustFired [2]bool
}

func (s *ScriptedInput) Direction() gamemath.Vector2 { return s.Dir }

func (s *ScriptedInput) Pressed(b Button) bool {
	return int(b) < len(s.Held) && s.Held[b]
}

func (s *ScriptedInput) Triggered(b Button) bool {
	return int(b) < len(s.JustFired) && s.JustFired[b]
}

// NoSound discards every sound.
type NoSound struct{}

func (NoSound) Play(string) {}
