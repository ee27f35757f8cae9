// Package object defines the game object container, the component contract
// and the per-frame phase ordering the object manager sweeps in.
package object

// Phase orders component updates within a frame. The manager visits every
// live object once per phase, lowest phase first.
type Phase uint8

const (
	PhaseThink Phase = iota
	PhasePhysics
	PhaseMovement
	PhaseCollisionDetection
	PhaseCollisionResponse
	PhasePostCollision
	PhaseAnimation
	PhasePreDraw
	PhaseFrameEnd

	PhaseCount
)

var phaseNames = [PhaseCount]string{
	"think",
	"physics",
	"movement",
	"collision-detection",
	"collision-response",
	"post-collision",
	"animation",
	"pre-draw",
	"frame-end",
}

func (p Phase) String() string {
	if p < PhaseCount {
		return phaseNames[p]
	}
	return "unknown"
}

// Phases lists every phase in sweep order.
func Phases() [PhaseCount]Phase {
	var out [PhaseCount]Phase
	for i := range out {
		out[i] = Phase(i)
	}
	return out
}

func (p Phase) mask() uint16 {
	return 1 << p
}
