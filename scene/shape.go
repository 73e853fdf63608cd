package scene

import (
	"image/color"

	"github.com/google/uuid"
	"github.com/jakecoffman/cp"
)

// Style holds the visual attributes of a circle.
type Style struct {
	Radius      float64
	Fill        color.RGBA
	Stroke      color.RGBA
	StrokeWidth float64
	Draggable   bool
}

// EventType identifies a pointer event delivered to shape handlers.
type EventType int

const (
	EventMouseOver EventType = iota
	EventMouseOut
	EventClick
	EventDragStart
	EventDragEnd
)

func (e EventType) String() string {
	switch e {
	case EventMouseOver:
		return "mouseover"
	case EventMouseOut:
		return "mouseout"
	case EventClick:
		return "click"
	case EventDragStart:
		return "dragstart"
	case EventDragEnd:
		return "dragend"
	default:
		return "unknown"
	}
}

// Handler is called with the shape the event fired on.
type Handler func(s *Shape)

// Shape is a styled circle positioned relative to its parent. Shapes can
// contain other shapes.
type Shape struct {
	ID uuid.UUID

	x, y  float64
	style Style

	parent   *Shape
	children []*Shape
	stage    *Stage

	handlers map[EventType][]Handler

	// set while the shape is attached to a stage
	body     *cp.Body
	collider *cp.Shape
}

// NewShape creates a detached shape at local position (x, y).
func NewShape(x, y float64, style Style) *Shape {
	return &Shape{
		ID:    uuid.New(),
		x:     x,
		y:     y,
		style: style,
	}
}

func (s *Shape) Style() Style { return s.style }

// SetStyle replaces the style. The collider is rebuilt when the radius
// changes.
func (s *Shape) SetStyle(style Style) {
	radiusChanged := style.Radius != s.style.Radius
	s.style = style
	if s.stage == nil {
		return
	}
	if radiusChanged && s.collider != nil {
		s.stage.detachCollider(s)
		s.stage.attachCollider(s)
	}
	s.stage.Redraw()
}

// Position returns the position relative to the parent.
func (s *Shape) Position() (float64, float64) { return s.x, s.y }

// SetPosition moves the shape (and its children) to a new local position.
func (s *Shape) SetPosition(x, y float64) {
	s.x, s.y = x, y
	if s.stage != nil {
		s.stage.sync(s)
		s.stage.Redraw()
	}
}

// AbsolutePosition returns the position in content coordinates.
func (s *Shape) AbsolutePosition() (float64, float64) {
	x, y := s.x, s.y
	for p := s.parent; p != nil; p = p.parent {
		x += p.x
		y += p.y
	}
	return x, y
}

func (s *Shape) Parent() *Shape { return s.parent }

// Children returns a copy of the children in draw order.
func (s *Shape) Children() []*Shape {
	out := make([]*Shape, len(s.children))
	copy(out, s.children)
	return out
}

// Stage returns the stage the shape is attached to, or nil.
func (s *Shape) Stage() *Stage { return s.stage }

// Add makes child the last child of s, detaching it from its previous
// parent. The child's local position is kept. Adding s to itself or to one of
// its descendants is refused.
func (s *Shape) Add(child *Shape) bool {
	if child == nil || child == s || child.isAncestorOf(s) {
		return false
	}
	if child.parent != nil {
		child.parent.removeChild(child)
	}
	child.parent = s
	s.children = append(s.children, child)

	switch {
	case s.stage != nil && child.stage != s.stage:
		if child.stage != nil {
			child.stage.detach(child)
		}
		s.stage.attach(child)
	case s.stage == nil && child.stage != nil:
		child.stage.detach(child)
	case s.stage != nil:
		s.stage.sync(child)
	}
	if s.stage != nil {
		s.stage.Redraw()
	}
	return true
}

func (s *Shape) removeChild(child *Shape) {
	for i, c := range s.children {
		if c == child {
			s.children = append(s.children[:i], s.children[i+1:]...)
			break
		}
	}
	child.parent = nil
}

func (s *Shape) isAncestorOf(other *Shape) bool {
	for p := other.parent; p != nil; p = p.parent {
		if p == s {
			return true
		}
	}
	return false
}

// On subscribes h to events of the given type.
func (s *Shape) On(evt EventType, h Handler) {
	if h == nil {
		return
	}
	if s.handlers == nil {
		s.handlers = make(map[EventType][]Handler)
	}
	s.handlers[evt] = append(s.handlers[evt], h)
}

// Off removes every handler for the event type.
func (s *Shape) Off(evt EventType) {
	delete(s.handlers, evt)
}

func (s *Shape) fire(evt EventType) {
	for _, h := range s.handlers[evt] {
		h(s)
	}
}

// Contains reports whether the content point (x, y) lies strictly inside the
// circle.
func (s *Shape) Contains(x, y float64) bool {
	ax, ay := s.AbsolutePosition()
	dx, dy := x-ax, y-ay
	return dx*dx+dy*dy < s.style.Radius*s.style.Radius
}
