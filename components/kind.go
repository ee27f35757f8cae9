package components

import "github.com/automoto/islandcore/object"

// Component kinds. Each pooled kind has its own pool in Pools.
const (
	KindInvalid object.Kind = iota
	KindGravity
	KindPhysics
	KindMovement
	KindBackgroundCollision
	KindSolidSurface
	KindTweenPath
	KindPatrolAI
	KindHitVolumes
	KindHitReaction
	KindLifetime
	KindAnimationTable
	KindPlayerController

	kindCount
)

var kindNames = [kindCount]string{
	"invalid",
	"gravity",
	"physics",
	"movement",
	"background-collision",
	"solid-surface",
	"tween-path",
	"patrol-ai",
	"hit-volumes",
	"hit-reaction",
	"lifetime",
	"animation-table",
	"player-controller",
}

// KindName returns the config key for kind.
func KindName(kind object.Kind) string {
	if kind < kindCount {
		return kindNames[kind]
	}
	return "unknown"
}
