package ebitenx

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/rowan"
)

// Game adapts a rowan.Engine to ebiten.Game: Update polls input and advances
// the engine one tick, Draw renders the scene through the command queue.
type Game struct {
	// ScreenshotDir is where RequestScreenshot writes PNG files.
	ScreenshotDir string

	engine          *rowan.Engine
	renderer        *Renderer
	poller          eventPoller
	clear           color.RGBA
	screenshotQueue []string
}

// NewGame wraps an engine for ebiten.RunGame. The clear color defaults to
// opaque black and screenshots are written to "screenshots".
func NewGame(engine *rowan.Engine) *Game {
	return &Game{
		ScreenshotDir: "screenshots",
		engine:        engine,
		renderer:      NewRenderer(),
		clear:         color.RGBA{A: 255},
	}
}

// Engine returns the wrapped engine.
func (g *Game) Engine() *rowan.Engine { return g.engine }

// Renderer returns the game's renderer, for preloading textures and fonts.
func (g *Game) Renderer() *Renderer { return g.renderer }

// SetClearColor sets the color the screen is filled with before each frame.
func (g *Game) SetClearColor(c rowan.Color) { g.clear = rgba(c) }

// Update polls device input into the engine and advances it by one tick.
func (g *Game) Update() error {
	for _, ev := range g.poller.Poll() {
		g.engine.HandleInput(ev)
	}
	g.engine.Update(1.0 / float64(ebiten.TPS()))
	return nil
}

// Draw clears the screen, renders the scene into the command queue, and
// flushes it. In debug mode an FPS/TPS readout is printed in the top-left
// corner. Queued screenshots are captured after everything else has drawn.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.clear)
	b := screen.Bounds()
	viewport := rowan.NewRect2(0, 0, float64(b.Dx()), float64(b.Dy()))
	g.engine.Render(g.renderer, viewport)
	g.renderer.Flush(screen)

	if g.engine.Config().Debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}

	g.flushScreenshots(screen)
}

// Layout reports the logical screen size from the engine config.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	cfg := g.engine.Config()
	return cfg.WindowWidth, cfg.WindowHeight
}

// Run opens a window sized from the engine's config and drives the engine
// until the window closes. Blocks until the game loop ends.
func Run(engine *rowan.Engine) error {
	cfg := engine.Config()
	ebiten.SetWindowTitle(cfg.WindowTitle)
	ebiten.SetWindowSize(cfg.WindowWidth, cfg.WindowHeight)
	ebiten.SetTPS(cfg.TargetFPS)
	ebiten.SetVsyncEnabled(cfg.VSync)
	return ebiten.RunGame(NewGame(engine))
}
