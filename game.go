package particlefield

import "github.com/hajimehoshi/ebiten/v2"

// Game hosts one Scheduler/Controller/BatchRenderer triple inside an
// Ebitengine game loop: Update advances the frame clock, Draw renders.
// Embed or wrap it to add your own Update logic.
type Game struct {
	Scheduler  *Scheduler
	Controller *Controller
	Renderer   *BatchRenderer

	// ClearColor fills the screen before each draw when its alpha is > 0.
	ClearColor Color
	// ShowFPS overlays the current FPS/TPS in the top-left corner.
	ShowFPS bool
	// ScreenshotDir is where queued screenshots are written.
	ScreenshotDir string

	// UpdateFunc, if set, runs at the end of each Update.
	UpdateFunc func() error

	width, height   int
	fps             *fpsOverlay
	screenshotQueue []string
}

// NewGame wires a controller to a fresh scheduler and renderer. The
// scheduler uses clock (SystemClock when nil) and is started immediately.
func NewGame(c *Controller, clock Clock) *Game {
	g := &Game{
		Scheduler:     NewScheduler(c, clock),
		Controller:    c,
		Renderer:      NewBatchRenderer(c),
		ScreenshotDir: "screenshots",
	}
	g.Scheduler.Start()
	return g
}

// Update implements ebiten.Game. A render error stops the game loop.
func (g *Game) Update() error {
	if err := g.Renderer.Err(); err != nil {
		return err
	}
	g.Scheduler.Frame()
	if g.ShowFPS {
		if g.fps == nil {
			g.fps = newFPSOverlay()
		}
		g.fps.update(1.0 / float64(ebiten.TPS()))
	}
	if g.UpdateFunc != nil {
		return g.UpdateFunc()
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.ClearColor.A > 0 {
		screen.Fill(g.ClearColor.toRGBA())
	}
	g.Renderer.Draw(screen)
	if g.ShowFPS && g.fps != nil {
		g.fps.draw(screen)
	}
	g.flushScreenshots(screen)
}

// Layout implements ebiten.Game. A fixed size set by Run wins; otherwise
// the canvas follows the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.width > 0 && g.height > 0 {
		return g.width, g.height
	}
	return outsideWidth, outsideHeight
}

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// Resizable lets the canvas follow the window size.
	Resizable bool
	ShowFPS   bool
}

// Run opens a window and blocks until it is closed or Update fails. The
// scheduler is disposed on every return path.
func Run(g *Game, cfg RunConfig) error {
	defer g.Scheduler.Dispose()

	if cfg.Width > 0 && cfg.Height > 0 {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
		if !cfg.Resizable {
			g.width, g.height = cfg.Width, cfg.Height
		}
	}
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if cfg.ShowFPS {
		g.ShowFPS = true
	}
	return ebiten.RunGame(g)
}
