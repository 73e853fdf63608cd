package scene

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Background is the canvas clear colour.
var Background = color.RGBA{0xf4, 0xf4, 0xf4, 0xff}

// Draw renders the stage into dst using the current offset and scale and
// clears the redraw flag.
func (st *Stage) Draw(dst *ebiten.Image) {
	dst.Fill(Background)
	st.walk(func(s *Shape) {
		ax, ay := s.AbsolutePosition()
		sx := float32((ax - st.offsetX) * st.scale)
		sy := float32((ay - st.offsetY) * st.scale)
		r := float32(s.style.Radius * st.scale)
		vector.DrawFilledCircle(dst, sx, sy, r, s.style.Fill, true)
		if s.style.StrokeWidth > 0 {
			vector.StrokeCircle(dst, sx, sy, r, float32(s.style.StrokeWidth*st.scale), s.style.Stroke, true)
		}
	})
	st.dirty = false
}
