package tags

import (
	"github.com/yohamta/donburi"

	"github.com/automoto/islandcore/object"
)

var (
	Player   = donburi.NewTag().SetName("Player")
	Enemy    = donburi.NewTag().SetName("Enemy")
	Neutral  = donburi.NewTag().SetName("Neutral")
	Platform = donburi.NewTag().SetName("Platform")
	Pickup   = donburi.NewTag().SetName("Pickup")
	Effect   = donburi.NewTag().SetName("Effect")
)

// Resolv tags for hit volumes
const (
	ResolvAttack     = "attack"
	ResolvVulnerable = "vulnerable"
)

// ForTeam returns the tag an object of team t is filed under.
func ForTeam(t object.Team) donburi.IComponentType {
	switch t {
	case object.TeamPlayer:
		return Player
	case object.TeamEnemy:
		return Enemy
	default:
		return Neutral
	}
}
