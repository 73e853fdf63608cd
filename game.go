package main

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/macho/config"
	"github.com/milk9111/macho/editor"
	"github.com/milk9111/macho/ui"
)

// Game is the ebiten game: a button panel on the left and the zoomable
// canvas filling the rest of the window.
type Game struct {
	cfg        *config.Config
	configPath string
	watcher    *config.Watcher

	editor *editor.Editor
	panel  *ui.Panel
	canvas *ebiten.Image

	screenW int
	screenH int
	lastMX  int
	lastMY  int
}

func NewGame(cfg *config.Config, configPath string) (*Game, error) {
	ed, err := editor.New(cfg, ebiten.SetCursorShape)
	if err != nil {
		return nil, err
	}
	g := &Game{
		cfg:        cfg,
		configPath: configPath,
		editor:     ed,
		screenW:    cfg.Window.Width,
		screenH:    cfg.Window.Height,
		lastMX:     -1,
		lastMY:     -1,
	}
	panel, err := ui.BuildPanel(cfg.Window.PanelWidth,
		func() { ed.AddNamespace() },
		func() { ed.AddDefinition() },
	)
	if err != nil {
		return nil, err
	}
	g.panel = panel
	ed.OnModeChange(func(m editor.Mode) {
		panel.SetPlacing(m == editor.ModePlacingDefinition)
	})
	return g, nil
}

// Watch hot-reloads styles and zoom constants when the config file changes.
func (g *Game) Watch(w *config.Watcher) { g.watcher = w }

func (g *Game) canvasSize() (int, int) {
	w := g.screenW - g.cfg.Window.PanelWidth
	h := g.screenH - g.cfg.Window.BottomMargin
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

func (g *Game) reloadConfig() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			cfg, err := config.Load(name)
			if err != nil {
				log.Printf("config reload failed: %v", err)
				continue
			}
			if err := g.editor.ApplyConfig(cfg); err != nil {
				log.Printf("config reload failed: %v", err)
				continue
			}
			g.cfg.Viewport = cfg.Viewport
			g.cfg.Namespace = cfg.Namespace
			g.cfg.Definition = cfg.Definition
			log.Printf("config reloaded from %s", name)
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Printf("config watch error: %v", err)
			}
		default:
			return
		}
	}
}

func (g *Game) Update() error {
	g.reloadConfig()
	g.panel.UI.Update()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) && g.editor.Mode() == editor.ModePlacingDefinition {
		g.editor.CancelPlacement()
	}

	mx, my := ebiten.CursorPosition()
	cw, ch := g.canvasSize()
	lx := float64(mx - g.cfg.Window.PanelWidth)
	ly := float64(my)
	inCanvas := lx >= 0 && lx < float64(cw) && ly >= 0 && ly < float64(ch)

	if (mx != g.lastMX || my != g.lastMY) && (inCanvas || g.editor.Stage().Dragging() != nil) {
		g.editor.Move(lx, ly)
	}
	g.lastMX, g.lastMY = mx, my

	if inCanvas {
		if _, wy := ebiten.Wheel(); wy != 0 {
			g.editor.Wheel(lx, ly, wy)
		}
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			g.editor.Click(lx, ly)
		}
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.editor.Release(lx, ly)
	}

	g.panel.SetStatus(g.editor.View().Scale(), g.editor.Stage().Len())
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	cw, ch := g.canvasSize()
	stage := g.editor.Stage()
	if g.canvas == nil || g.canvas.Bounds().Dx() != cw || g.canvas.Bounds().Dy() != ch {
		if g.canvas != nil {
			g.canvas.Deallocate()
		}
		g.canvas = ebiten.NewImage(cw, ch)
		stage.Redraw()
	}
	if stage.NeedsRedraw() {
		stage.Draw(g.canvas)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(g.cfg.Window.PanelWidth), 0)
	screen.DrawImage(g.canvas, op)

	g.panel.UI.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.screenW, g.screenH = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}
