package components

import (
	"github.com/yohamta/donburi"

	"github.com/automoto/islandcore/object"
)

// ObjectData links a donburi entry to the pooled game object it tracks.
type ObjectData struct {
	*object.GameObject
}

var Object = donburi.NewComponentType[ObjectData]()
