// Package scene is a small retained-mode scene graph of nested circles with
// hit-testing, hover/click/drag events and ebiten drawing.
package scene

import (
	"github.com/jakecoffman/cp"
)

// Stage is the root container of a scene. It also holds the view transform
// it is drawn with and implements viewport.Surface.
type Stage struct {
	root  *Shape
	space *cp.Space

	offsetX float64
	offsetY float64
	scale   float64
	dirty   bool

	// pointer state, content coordinates
	hovered  *Shape
	pressed  *Shape
	dragging *Shape
	lastX    float64
	lastY    float64
	moved    bool
}

// NewStage returns an empty stage at scale 1 with no offset.
func NewStage() *Stage {
	st := &Stage{
		space: cp.NewSpace(),
		scale: 1,
		dirty: true,
	}
	st.root = &Shape{stage: st}
	return st
}

// Root returns the container every top-level shape is added to. The root is
// never returned by HitTest.
func (st *Stage) Root() *Shape { return st.root }

// Add adds a shape to the stage root.
func (st *Stage) Add(s *Shape) bool { return st.root.Add(s) }

// SetOffset and SetScale receive the view transform from the viewport
// controller. They satisfy viewport.Surface.
func (st *Stage) SetOffset(x, y float64) {
	st.offsetX, st.offsetY = x, y
}

func (st *Stage) SetScale(s float64) {
	st.scale = s
}

// Redraw marks the stage for re-rendering on the next Draw.
func (st *Stage) Redraw() { st.dirty = true }

// NeedsRedraw reports whether the stage changed since the last Draw.
func (st *Stage) NeedsRedraw() bool { return st.dirty }

// Offset and Scale report the transform last pushed by the viewport.
func (st *Stage) Offset() (float64, float64) { return st.offsetX, st.offsetY }
func (st *Stage) Scale() float64             { return st.scale }

// Shapes returns every attached shape in draw order.
func (st *Stage) Shapes() []*Shape {
	var out []*Shape
	st.walk(func(s *Shape) { out = append(out, s) })
	return out
}

// Len returns the number of shapes on the stage.
func (st *Stage) Len() int {
	n := 0
	st.walk(func(*Shape) { n++ })
	return n
}

// walk visits shapes depth-first, parents before children.
func (st *Stage) walk(fn func(s *Shape)) {
	var visit func(s *Shape)
	visit = func(s *Shape) {
		for _, c := range s.children {
			fn(c)
			visit(c)
		}
	}
	visit(st.root)
}

// Find returns the attached shape with the given id string.
func (st *Stage) Find(id string) (*Shape, bool) {
	var found *Shape
	st.walk(func(s *Shape) {
		if found == nil && s.ID.String() == id {
			found = s
		}
	})
	return found, found != nil
}

// HitTest returns the topmost shape containing the content point (x, y).
func (st *Stage) HitTest(x, y float64) (*Shape, bool) {
	pt := cp.Vector{X: x, Y: y}
	hits := make(map[*Shape]struct{})
	st.space.EachShape(func(sh *cp.Shape) {
		if sh.PointQuery(pt).Distance >= 0 {
			return
		}
		if s, ok := sh.UserData.(*Shape); ok {
			hits[s] = struct{}{}
		}
	})
	if len(hits) == 0 {
		return nil, false
	}
	order := st.Shapes()
	for i := len(order) - 1; i >= 0; i-- {
		if _, ok := hits[order[i]]; ok {
			return order[i], true
		}
	}
	return nil, false
}

func (st *Stage) attach(s *Shape) {
	s.stage = st
	st.attachCollider(s)
	for _, c := range s.children {
		st.attach(c)
	}
}

func (st *Stage) detach(s *Shape) {
	for _, c := range s.children {
		st.detach(c)
	}
	st.detachCollider(s)
	if st.hovered == s {
		st.hovered = nil
	}
	if st.pressed == s {
		st.pressed = nil
	}
	if st.dragging == s {
		st.dragging = nil
	}
	s.stage = nil
}

func (st *Stage) attachCollider(s *Shape) {
	body := st.space.AddBody(cp.NewKinematicBody())
	collider := cp.NewCircle(body, s.style.Radius, cp.Vector{})
	collider.UserData = s
	st.space.AddShape(collider)
	s.body = body
	s.collider = collider
	st.place(s)
}

func (st *Stage) detachCollider(s *Shape) {
	if s.collider != nil {
		st.space.RemoveShape(s.collider)
		s.collider = nil
	}
	if s.body != nil {
		st.space.RemoveBody(s.body)
		s.body = nil
	}
}

// place moves the collider of s to its absolute position. The space is never
// stepped, so the cached circle centre is refreshed by hand.
func (st *Stage) place(s *Shape) {
	if s.body == nil || s.collider == nil {
		return
	}
	x, y := s.AbsolutePosition()
	s.body.SetPosition(cp.Vector{X: x, Y: y})
	s.collider.CacheBB()
}

// sync moves the colliders of s and its descendants to their current
// absolute positions.
func (st *Stage) sync(s *Shape) {
	st.place(s)
	for _, c := range s.children {
		st.sync(c)
	}
}

// PointerMove updates hover state and drags the pressed shape. x and y are
// content coordinates.
func (st *Stage) PointerMove(x, y float64) {
	if st.dragging != nil {
		dx, dy := x-st.lastX, y-st.lastY
		if dx != 0 || dy != 0 {
			if !st.moved {
				st.dragging.fire(EventDragStart)
			}
			st.moved = true
			st.dragging.SetPosition(st.dragging.x+dx, st.dragging.y+dy)
		}
		st.lastX, st.lastY = x, y
	} else if st.pressed != nil && (x != st.lastX || y != st.lastY) {
		st.moved = true
	}

	st.RefreshHover(x, y)
}

// RefreshHover recomputes the hovered shape for a pointer at (x, y) without
// touching press or drag state. Use it when the scene or the view changed
// under a still pointer.
func (st *Stage) RefreshHover(x, y float64) {
	top, _ := st.HitTest(x, y)
	if top == st.hovered {
		return
	}
	if st.hovered != nil {
		st.hovered.fire(EventMouseOut)
	}
	st.hovered = top
	if top != nil {
		top.fire(EventMouseOver)
	}
}

// PointerDown presses the topmost shape at (x, y), starting a drag when it is
// draggable. It returns the pressed shape.
func (st *Stage) PointerDown(x, y float64) (*Shape, bool) {
	top, ok := st.HitTest(x, y)
	st.pressed = top
	st.dragging = nil
	st.moved = false
	st.lastX, st.lastY = x, y
	if ok && top.style.Draggable {
		st.dragging = top
	}
	return top, ok
}

// PointerUp releases the pointer. A press and release without movement fires
// EventClick on the pressed shape.
func (st *Stage) PointerUp(x, y float64) {
	if st.pressed != nil {
		if !st.moved {
			st.pressed.fire(EventClick)
		} else if st.dragging != nil {
			st.dragging.fire(EventDragEnd)
		}
	}
	st.pressed = nil
	st.dragging = nil
	st.moved = false
	st.lastX, st.lastY = x, y
}

// Dragging returns the shape currently being dragged.
func (st *Stage) Dragging() *Shape { return st.dragging }

// Hovered returns the shape under the pointer.
func (st *Stage) Hovered() *Shape { return st.hovered }
