// Package editor is the page controller of the namespace editor. It owns the
// viewport and the stage and turns canvas input into shape operations.
package editor

import (
	"errors"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/macho/config"
	"github.com/milk9111/macho/scene"
	"github.com/milk9111/macho/viewport"
)

// Mode is the placement state of the editor.
type Mode int

const (
	ModeIdle Mode = iota
	ModePlacingDefinition
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "Idle"
	case ModePlacingDefinition:
		return "PlacingDefinition"
	default:
		return "Unknown"
	}
}

// ErrNotPlacing is returned by PlaceDefinition when no definition is
// pending.
var ErrNotPlacing = errors.New("editor: no definition pending placement")

// NoTargetError is returned when a placement click hits no shape.
type NoTargetError struct {
	X, Y float64
}

func (e *NoTargetError) Error() string {
	return fmt.Sprintf("editor: no shape at (%.1f, %.1f)", e.X, e.Y)
}

// CursorFunc changes the mouse cursor. The game passes ebiten.SetCursorShape.
type CursorFunc func(shape ebiten.CursorShapeType)

type Editor struct {
	stage *scene.Stage
	view  *viewport.Controller

	namespace      scene.Style
	namespaceX     float64
	namespaceY     float64
	definition     scene.Style
	setCursor      CursorFunc
	mode           Mode
	pending        *scene.Shape
	onModeChange   func(Mode)
	onShapeCreated func(*scene.Shape)
}

// New builds an editor from cfg. setCursor may be nil.
func New(cfg *config.Config, setCursor CursorFunc) (*Editor, error) {
	stage := scene.NewStage()
	view, err := viewport.NewController(cfg.Viewport.ZoomFactor, cfg.Viewport.ZoomOutReduction, stage)
	if err != nil {
		return nil, err
	}
	e := &Editor{
		stage:     stage,
		view:      view,
		setCursor: setCursor,
	}
	if err := e.ApplyConfig(cfg); err != nil {
		return nil, err
	}
	return e, nil
}

// ApplyConfig replaces zoom constants and the styles used for new shapes.
// Existing shapes keep their style.
func (e *Editor) ApplyConfig(cfg *config.Config) error {
	ns, err := cfg.Namespace.Style()
	if err != nil {
		return fmt.Errorf("editor: namespace style: %w", err)
	}
	def, err := cfg.Definition.Style()
	if err != nil {
		return fmt.Errorf("editor: definition style: %w", err)
	}
	if err := e.view.SetZoom(cfg.Viewport.ZoomFactor, cfg.Viewport.ZoomOutReduction); err != nil {
		return err
	}
	e.namespace = ns
	e.namespaceX = cfg.Namespace.X
	e.namespaceY = cfg.Namespace.Y
	e.definition = def
	return nil
}

func (e *Editor) Stage() *scene.Stage                  { return e.stage }
func (e *Editor) View() *viewport.Controller           { return e.view }
func (e *Editor) Mode() Mode                           { return e.mode }
func (e *Editor) Pending() *scene.Shape                { return e.pending }
func (e *Editor) OnModeChange(fn func(Mode))           { e.onModeChange = fn }
func (e *Editor) OnShapeCreated(fn func(*scene.Shape)) { e.onShapeCreated = fn }

func (e *Editor) setMode(m Mode) {
	if e.mode == m {
		return
	}
	e.mode = m
	if e.onModeChange != nil {
		e.onModeChange(m)
	}
}

func (e *Editor) cursorHandlers(s *scene.Shape) {
	s.On(scene.EventMouseOver, func(*scene.Shape) {
		if e.setCursor != nil {
			e.setCursor(ebiten.CursorShapePointer)
		}
	})
	s.On(scene.EventMouseOut, func(*scene.Shape) {
		if e.setCursor != nil {
			e.setCursor(ebiten.CursorShapeDefault)
		}
	})
}

// AddNamespace adds a namespace circle at the configured content position.
func (e *Editor) AddNamespace() *scene.Shape {
	ns := scene.NewShape(e.namespaceX, e.namespaceY, e.namespace)
	e.cursorHandlers(ns)
	e.stage.Add(ns)
	if e.onShapeCreated != nil {
		e.onShapeCreated(ns)
	}
	return ns
}

// AddDefinition creates a pending definition and waits for the next canvas
// click to choose its container. Calling it again while placing replaces the
// pending definition.
func (e *Editor) AddDefinition() *scene.Shape {
	def := scene.NewShape(0, 0, e.definition)
	e.cursorHandlers(def)
	e.pending = def
	e.setMode(ModePlacingDefinition)
	return def
}

// CancelPlacement drops the pending definition.
func (e *Editor) CancelPlacement() {
	e.pending = nil
	e.setMode(ModeIdle)
}

// PlaceDefinition adds the pending definition as a child of the topmost shape
// at the content point (x, y), positioned at that point.
func (e *Editor) PlaceDefinition(x, y float64) error {
	if e.pending == nil {
		return ErrNotPlacing
	}
	target, ok := e.stage.HitTest(x, y)
	if !ok {
		return &NoTargetError{X: x, Y: y}
	}
	tx, ty := target.AbsolutePosition()
	def := e.pending
	def.SetPosition(x-tx, y-ty)
	target.Add(def)
	e.pending = nil
	if e.onShapeCreated != nil {
		e.onShapeCreated(def)
	}
	return nil
}

// Click handles a canvas press at a canvas-relative screen point. While a
// definition is pending the click places it, or cancels the placement when
// nothing is under the cursor; either way the editor returns to Idle.
// Otherwise the press goes to the stage.
func (e *Editor) Click(sx, sy float64) {
	cx, cy := e.view.ScreenToContent(sx, sy)
	if e.mode != ModePlacingDefinition {
		e.stage.PointerDown(cx, cy)
		return
	}

	err := e.PlaceDefinition(cx, cy)
	var noTarget *NoTargetError
	switch {
	case errors.As(err, &noTarget):
		log.Printf("editor: placement cancelled: %v", err)
		e.pending = nil
	case err != nil:
		log.Printf("editor: placement failed: %v", err)
		e.pending = nil
	}
	e.setMode(ModeIdle)
	e.stage.RefreshHover(cx, cy)
}

// Release ends a press started by Click.
func (e *Editor) Release(sx, sy float64) {
	cx, cy := e.view.ScreenToContent(sx, sy)
	e.stage.PointerUp(cx, cy)
}

// Move updates hover and drag state for a canvas-relative cursor position.
func (e *Editor) Move(sx, sy float64) {
	cx, cy := e.view.ScreenToContent(sx, sy)
	e.stage.PointerMove(cx, cy)
}

// Wheel zooms around the canvas-relative cursor position and refreshes the
// hovered shape for the new transform.
func (e *Editor) Wheel(sx, sy, delta float64) {
	e.view.OnWheel(sx, sy, delta)
	cx, cy := e.view.ScreenToContent(sx, sy)
	e.stage.RefreshHover(cx, cy)
}
