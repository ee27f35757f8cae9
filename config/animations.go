package config

// AnimationDef is a frame range played while an object performs an action.
type AnimationDef struct {
	First     int
	Last      int
	FrameTime float64 // seconds per frame
	Loop      bool
}

// Frames returns the number of frames in the range.
func (a AnimationDef) Frames() int {
	if a.Last < a.First {
		return 1
	}
	return a.Last - a.First + 1
}

// CharacterAnimations maps an archetype key (e.g., "player") to its
// animation definitions keyed by action name.
var CharacterAnimations = map[string]map[string]AnimationDef{
	"player": {
		"idle":      {First: 0, Last: 6, FrameTime: 0.08, Loop: true},
		"move":      {First: 0, Last: 7, FrameTime: 0.08, Loop: true},
		"attack":    {First: 0, Last: 2, FrameTime: 0.05},
		"hit-react": {First: 0, Last: 2, FrameTime: 0.08},
		"death":     {First: 0, Last: 8, FrameTime: 0.08},
		"frozen":    {First: 0, Last: 0},
	},
	"patrol-enemy": {
		"idle":      {First: 0, Last: 3, FrameTime: 0.1, Loop: true},
		"move":      {First: 0, Last: 5, FrameTime: 0.1, Loop: true},
		"hit-react": {First: 0, Last: 2, FrameTime: 0.08},
		"death":     {First: 0, Last: 4, FrameTime: 0.1},
	},
	// Effects (dust clouds and pickups)
	"effect": {
		"idle": {First: 0, Last: 5, FrameTime: 0.05},
	},
	"coin": {
		"idle": {First: 0, Last: 7, FrameTime: 0.1, Loop: true},
	},
}
