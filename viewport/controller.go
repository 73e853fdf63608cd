// Package viewport maps screen pixels to content coordinates for a canvas
// that is zoomed with the mouse wheel around the cursor.
package viewport

import "fmt"

const (
	DefaultZoomFactor       = 1.1
	DefaultZoomOutReduction = 0.2
)

// Surface is the rendering target a Controller drives. The scene stage
// implements it.
type Surface interface {
	SetOffset(x, y float64)
	SetScale(s float64)
	Redraw()
}

// Controller keeps the pan offset and scale of a canvas viewport.
//
// A screen point (sx, sy), relative to the canvas origin, maps to the content
// point (sx/scale + offsetX, sy/scale + offsetY).
type Controller struct {
	offsetX float64
	offsetY float64
	scale   float64

	// zoomFactor is applied on wheel-up. Wheel-down uses
	// zoomFactor-zoomOutReduction, so zooming out is not the inverse of
	// zooming in.
	zoomFactor       float64
	zoomOutReduction float64

	surface Surface
}

// NewController returns a controller at scale 1 and offset (0,0). surface may
// be nil.
func NewController(zoomFactor, zoomOutReduction float64, surface Surface) (*Controller, error) {
	if zoomFactor <= 0 {
		return nil, fmt.Errorf("viewport: zoom factor must be positive, got %v", zoomFactor)
	}
	if zoomFactor-zoomOutReduction <= 0 {
		return nil, fmt.Errorf("viewport: zoom-out multiplier %v-%v must be positive", zoomFactor, zoomOutReduction)
	}
	c := &Controller{
		scale:            1,
		zoomFactor:       zoomFactor,
		zoomOutReduction: zoomOutReduction,
		surface:          surface,
	}
	c.apply()
	return c, nil
}

// SetZoom replaces the zoom constants. The current offset and scale are kept.
func (c *Controller) SetZoom(zoomFactor, zoomOutReduction float64) error {
	if zoomFactor <= 0 || zoomFactor-zoomOutReduction <= 0 {
		return fmt.Errorf("viewport: invalid zoom constants %v/%v", zoomFactor, zoomOutReduction)
	}
	c.zoomFactor = zoomFactor
	c.zoomOutReduction = zoomOutReduction
	return nil
}

// SetSurface attaches the rendering surface and pushes the current transform
// to it.
func (c *Controller) SetSurface(s Surface) {
	c.surface = s
	c.apply()
}

// Multiplier returns the scale multiplier used for a wheel delta.
func (c *Controller) Multiplier(wheelDelta float64) float64 {
	if wheelDelta < 0 {
		return c.zoomFactor - c.zoomOutReduction
	}
	return c.zoomFactor
}

// OnWheel zooms by one step keeping the content point under the cursor fixed.
// cursorX and cursorY are relative to the canvas origin.
func (c *Controller) OnWheel(cursorX, cursorY, wheelDelta float64) {
	m := c.Multiplier(wheelDelta)
	newScale := c.scale * m

	c.offsetX = cursorX/c.scale + c.offsetX - cursorX/newScale
	c.offsetY = cursorY/c.scale + c.offsetY - cursorY/newScale
	c.scale = newScale

	c.apply()
}

func (c *Controller) apply() {
	if c.surface == nil {
		return
	}
	c.surface.SetOffset(c.offsetX, c.offsetY)
	c.surface.SetScale(c.scale)
	c.surface.Redraw()
}

// Scale returns the current scale.
func (c *Controller) Scale() float64 { return c.scale }

// Offset returns the current offset in content coordinates.
func (c *Controller) Offset() (float64, float64) { return c.offsetX, c.offsetY }

// ZoomFactor returns the zoom-in multiplier.
func (c *Controller) ZoomFactor() float64 { return c.zoomFactor }

// ScreenToContent converts a canvas-relative screen point to content
// coordinates.
func (c *Controller) ScreenToContent(sx, sy float64) (float64, float64) {
	return sx/c.scale + c.offsetX, sy/c.scale + c.offsetY
}

// ContentToScreen converts a content point to canvas-relative screen
// coordinates.
func (c *Controller) ContentToScreen(cx, cy float64) (float64, float64) {
	return (cx - c.offsetX) * c.scale, (cy - c.offsetY) * c.scale
}
