package main

import (
	"fmt"
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/automoto/islandcore/archetypes"
	"github.com/automoto/islandcore/config"
	"github.com/automoto/islandcore/object"
	"github.com/automoto/islandcore/shared/gamemath"
	"github.com/automoto/islandcore/shared/leveldata"
	"github.com/automoto/islandcore/systems"
)

var colorBackground = color.RGBA{24, 28, 40, 255}

// logSound stands in for audio: the viewer has no sound assets.
type logSound struct {
	logger *log.Logger
}

func (s logSound) Play(name string) {
	s.logger.Debug("sound", "name", name)
}

// Game runs one level in a window with debug drawing.
type Game struct {
	engine *systems.Engine
	level  *leveldata.Level
	input  *gameInput
	camera camera
	logger *log.Logger

	paused    bool
	showDebug bool
}

func NewGame(level *leveldata.Level, logger *log.Logger) *Game {
	e := systems.NewEngine(logger.WithPrefix("engine"))
	archetypes.Register(e)

	g := &Game{
		engine:    e,
		level:     level,
		input:     &gameInput{},
		camera:    camera{smoothing: config.C.CameraSmoothing},
		logger:    logger,
		showDebug: true,
	}
	e.Context.Input = g.input
	e.Context.Sound = logSound{logger: logger}
	g.start()
	return g
}

// start spawns the level and steps once so the player exists before the
// first draw.
func (g *Game) start() {
	archetypes.Start(g.engine, g.level)
	g.engine.Step(config.Loop.Step())
	g.camera.Snap(g.focus(), g.levelSize(), float64(config.C.Width), float64(config.C.Height))
}

func (g *Game) restart() {
	if err := g.engine.UnloadLevel(); err != nil {
		g.logger.Error("level unload found leaks", "err", err)
	}
	g.start()
}

func (g *Game) levelSize() gamemath.Vector2 {
	w, h := g.level.Size()
	return gamemath.Vec(w, h)
}

// focus is the point the camera follows: the player, else the engine's
// activation camera.
func (g *Game) focus() gamemath.Vector2 {
	if p := g.engine.Context.Player; p != nil {
		return p.Center()
	}
	return g.engine.Context.Camera
}

func (g *Game) Update() error {
	g.input.Poll()

	switch {
	case g.input.JustPressed(config.ActionRestart):
		g.restart()
		return nil
	case g.input.JustPressed(config.ActionPause):
		g.paused = !g.paused
	case g.input.JustPressed(config.ActionToggleDebug):
		g.showDebug = !g.showDebug
	}

	if !g.paused || g.input.JustPressed(config.ActionStep) {
		g.engine.Step(config.Loop.Step())
	}
	g.camera.Follow(g.focus(), g.levelSize(), float64(config.C.Width), float64(config.C.Height))
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	if g.showDebug {
		systems.DrawDebug(g.engine, screen, g.camera.Position())
	}
	ebitenutil.DebugPrint(screen, g.status())
}

func (g *Game) status() string {
	life, action := 0, object.ActionInvalid
	if p := g.engine.Context.Player; p != nil {
		life, action = p.Life, p.CurrentAction
	}
	state := ""
	if g.paused {
		state = "  PAUSED (. steps)"
	}
	return fmt.Sprintf("%s  tps %.0f  objects %d/%d  enemies %d\nlife %d  %s%s",
		g.level.Name, ebiten.ActualTPS(),
		len(g.engine.Objects.Active()), len(g.engine.Objects.Live()),
		g.engine.Objects.CountTeam(object.TeamEnemy),
		life, action, state)
}

func (g *Game) Layout(width, height int) (int, int) {
	return config.C.Width, config.C.Height
}
