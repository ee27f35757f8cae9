package systems

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// GameLoop steps an engine at a fixed tick rate.
type GameLoop struct {
	engine   *Engine
	tickRate int
	stopChan chan struct{}
	stopOnce sync.Once
	logger   *log.Logger

	// OnTick runs after every step with the number of ticks so far.
	OnTick func(tick int)
}

func NewGameLoop(engine *Engine, tickRate int) *GameLoop {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &GameLoop{
		engine:   engine,
		tickRate: tickRate,
		stopChan: make(chan struct{}),
		logger:   engine.Logger().WithPrefix("loop"),
	}
}

// Step returns the simulated time of one tick in seconds.
func (g *GameLoop) Step() float64 {
	return 1 / float64(g.tickRate)
}

// Run ticks in real time until ctx is done, Stop is called or maxTicks
// ticks have run. maxTicks <= 0 means no limit. It returns the tick count.
func (g *GameLoop) Run(ctx context.Context, maxTicks int) int {
	ticker := time.NewTicker(time.Second / time.Duration(g.tickRate))
	defer ticker.Stop()

	g.logger.Info("game loop started", "tickRate", g.tickRate)

	ticks := 0
	for maxTicks <= 0 || ticks < maxTicks {
		select {
		case <-ctx.Done():
			g.logger.Info("game loop cancelled", "ticks", ticks)
			return ticks
		case <-g.stopChan:
			g.logger.Info("game loop stopped", "ticks", ticks)
			return ticks
		case <-ticker.C:
			ticks++
			g.tick(ticks)
		}
	}
	g.logger.Info("game loop finished", "ticks", ticks)
	return ticks
}

// RunFrames steps n ticks back to back without waiting on the clock.
func (g *GameLoop) RunFrames(n int) int {
	for i := 1; i <= n; i++ {
		g.tick(i)
	}
	return n
}

func (g *GameLoop) Stop() {
	g.stopOnce.Do(func() { close(g.stopChan) })
}

func (g *GameLoop) tick(n int) {
	g.engine.Step(g.Step())
	if g.OnTick != nil {
		g.OnTick(n)
	}
}
