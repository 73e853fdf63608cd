package scene

import (
	"image/color"
	"testing"
)

var (
	bigStyle   = Style{Radius: 50, Fill: color.RGBA{0, 0xd2, 0xcc, 0xff}, StrokeWidth: 2, Draggable: true}
	smallStyle = Style{Radius: 10, Fill: color.RGBA{0x11, 0xd2, 0xff, 0xff}, StrokeWidth: 1, Draggable: true}
)

func TestHitTest(t *testing.T) {
	st := NewStage()
	outer := NewShape(100, 100, bigStyle)
	st.Add(outer)
	inner := NewShape(0, -40, smallStyle)
	outer.Add(inner)

	cases := []struct {
		name string
		x, y float64
		want *Shape
	}{
		{"empty_space", 300, 300, nil},
		{"outer_only", 100, 130, outer},
		{"inner_on_top", 100, 60, inner},
		{"inner_edge", 100, 51, inner},
		{"just_outside", 151, 100, nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := st.HitTest(c.x, c.y)
			if c.want == nil {
				if ok || got != nil {
					t.Fatalf("expected no hit, got %v", got)
				}
				return
			}
			if !ok || got != c.want {
				t.Fatalf("expected %v, got %v (ok=%v)", c.want.ID, got, ok)
			}
		})
	}
}

func TestHitTestPrefersLaterSibling(t *testing.T) {
	st := NewStage()
	first := NewShape(100, 100, bigStyle)
	second := NewShape(100, 100, bigStyle)
	st.Add(first)
	st.Add(second)

	got, ok := st.HitTest(100, 100)
	if !ok || got != second {
		t.Fatalf("expected later sibling on top")
	}
}

func TestHitTestFollowsMoves(t *testing.T) {
	st := NewStage()
	outer := NewShape(100, 100, bigStyle)
	st.Add(outer)
	inner := NewShape(0, 0, smallStyle)
	outer.Add(inner)

	outer.SetPosition(400, 300)

	cases := []struct {
		name string
		x, y float64
		want *Shape
	}{
		{"old_position_misses", 100, 100, nil},
		{"outer_at_new_position", 400, 340, outer},
		{"child_followed_parent", 400, 300, inner},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, _ := st.HitTest(c.x, c.y)
			if got != c.want {
				t.Fatalf("hit %v, want %v", got, c.want)
			}
		})
	}
}

func TestRefreshHover(t *testing.T) {
	st := NewStage()
	var events []string
	st.PointerMove(100, 100)

	s := NewShape(100, 100, bigStyle)
	s.On(EventMouseOver, func(*Shape) { events = append(events, "over") })
	st.Add(s)
	if st.Hovered() != nil {
		t.Fatalf("hover changed without a refresh")
	}

	st.RefreshHover(100, 100)
	if st.Hovered() != s {
		t.Fatalf("expected shape under still pointer to be hovered")
	}
	if len(events) != 1 || events[0] != "over" {
		t.Fatalf("events %v, want [over]", events)
	}
	if x, y := s.Position(); x != 100 || y != 100 {
		t.Fatalf("refresh moved the shape to (%v,%v)", x, y)
	}
}

func TestAddReparents(t *testing.T) {
	st := NewStage()
	a := NewShape(100, 100, bigStyle)
	b := NewShape(400, 100, bigStyle)
	st.Add(a)
	st.Add(b)
	child := NewShape(0, 0, smallStyle)

	if !a.Add(child) {
		t.Fatalf("Add to a failed")
	}
	if child.Parent() != a || len(a.Children()) != 1 {
		t.Fatalf("child not under a")
	}
	if !b.Add(child) {
		t.Fatalf("Add to b failed")
	}
	if child.Parent() != b || len(a.Children()) != 0 || len(b.Children()) != 1 {
		t.Fatalf("child not moved to b: a=%d b=%d", len(a.Children()), len(b.Children()))
	}
	if got, ok := st.HitTest(400, 100); !ok || got != child {
		t.Fatalf("collider did not follow the new parent")
	}
	if st.Len() != 3 {
		t.Fatalf("expected 3 shapes, got %d", st.Len())
	}
}

func TestAddRefusesCycles(t *testing.T) {
	st := NewStage()
	a := NewShape(0, 0, bigStyle)
	b := NewShape(0, 0, smallStyle)
	st.Add(a)
	a.Add(b)

	if a.Add(a) {
		t.Fatalf("shape added to itself")
	}
	if b.Add(a) {
		t.Fatalf("ancestor added to descendant")
	}
	if a.Parent() != st.Root() {
		t.Fatalf("refused Add must not change the parent")
	}
}

func TestDetachedSubtreeAttachesWithParent(t *testing.T) {
	st := NewStage()
	parent := NewShape(200, 200, bigStyle)
	child := NewShape(10, 10, smallStyle)
	parent.Add(child)
	if child.Stage() != nil {
		t.Fatalf("detached parent must not attach child")
	}
	st.Add(parent)
	if child.Stage() != st {
		t.Fatalf("child not attached with parent")
	}
	if got, ok := st.HitTest(210, 210); !ok || got != child {
		t.Fatalf("expected child hit at its absolute position")
	}
}

func TestDragMovesChildren(t *testing.T) {
	st := NewStage()
	ns := NewShape(100, 100, bigStyle)
	def := NewShape(0, 20, smallStyle)
	st.Add(ns)
	ns.Add(def)

	var started, ended, clicked int
	ns.On(EventDragStart, func(*Shape) { started++ })
	ns.On(EventDragEnd, func(*Shape) { ended++ })
	ns.On(EventClick, func(*Shape) { clicked++ })

	if got, ok := st.PointerDown(100, 80); !ok || got != ns {
		t.Fatalf("expected press on namespace")
	}
	st.PointerMove(150, 80)
	st.PointerMove(150, 130)
	st.PointerUp(150, 130)

	if x, y := ns.Position(); x != 150 || y != 150 {
		t.Fatalf("namespace at (%v,%v), want (150,150)", x, y)
	}
	if x, y := def.AbsolutePosition(); x != 150 || y != 170 {
		t.Fatalf("definition at (%v,%v), want (150,170)", x, y)
	}
	if got, ok := st.HitTest(150, 170); !ok || got != def {
		t.Fatalf("definition collider did not move with parent")
	}
	if started != 1 || ended != 1 || clicked != 0 {
		t.Fatalf("events start=%d end=%d click=%d", started, ended, clicked)
	}
	if st.Dragging() != nil {
		t.Fatalf("drag not released")
	}
}

func TestNonDraggableShapeStaysPut(t *testing.T) {
	st := NewStage()
	style := bigStyle
	style.Draggable = false
	s := NewShape(100, 100, style)
	st.Add(s)

	st.PointerDown(100, 100)
	st.PointerMove(140, 100)
	st.PointerUp(140, 100)
	if x, y := s.Position(); x != 100 || y != 100 {
		t.Fatalf("non-draggable shape moved to (%v,%v)", x, y)
	}
}

func TestClickAndHoverEvents(t *testing.T) {
	st := NewStage()
	s := NewShape(100, 100, bigStyle)
	st.Add(s)

	var log []string
	s.On(EventMouseOver, func(*Shape) { log = append(log, "over") })
	s.On(EventMouseOut, func(*Shape) { log = append(log, "out") })
	s.On(EventClick, func(*Shape) { log = append(log, "click") })

	st.PointerMove(0, 0)
	st.PointerMove(100, 100)
	st.PointerMove(101, 100)
	st.PointerDown(101, 100)
	st.PointerUp(101, 100)
	st.PointerMove(400, 400)

	want := []string{"over", "click", "out"}
	if len(log) != len(want) {
		t.Fatalf("events %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("events %v, want %v", log, want)
		}
	}

	s.Off(EventClick)
	st.PointerDown(100, 100)
	st.PointerUp(100, 100)
	if log[len(log)-1] == "click" {
		t.Fatalf("Off did not remove click handler")
	}
}

func TestSetStyleResizesCollider(t *testing.T) {
	st := NewStage()
	s := NewShape(0, 0, smallStyle)
	st.Add(s)
	if _, ok := st.HitTest(30, 0); ok {
		t.Fatalf("unexpected hit before resize")
	}
	s.SetStyle(bigStyle)
	if got, ok := st.HitTest(30, 0); !ok || got != s {
		t.Fatalf("expected hit after resize")
	}
}

func TestSurface(t *testing.T) {
	st := NewStage()
	st.SetOffset(3, 4)
	st.SetScale(2)
	st.Redraw()
	if x, y := st.Offset(); x != 3 || y != 4 || st.Scale() != 2 || !st.NeedsRedraw() {
		t.Fatalf("surface state not applied")
	}
}

func TestFind(t *testing.T) {
	st := NewStage()
	s := NewShape(0, 0, smallStyle)
	st.Add(s)
	if got, ok := st.Find(s.ID.String()); !ok || got != s {
		t.Fatalf("Find did not return shape")
	}
	if _, ok := st.Find("missing"); ok {
		t.Fatalf("Find returned a shape for unknown id")
	}
}
