package ui

import (
	"bytes"
	"image/color"

	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// Panel palette, picked to sit next to the namespace teal on the canvas.
var (
	panelBackground = color.RGBA{0x1e, 0x26, 0x2b, 0xff}
	buttonIdle      = color.RGBA{0x2f, 0x6f, 0x73, 0xff}
	buttonHover     = color.RGBA{0x00, 0x9a, 0x96, 0xff}
	buttonPressed   = color.RGBA{0x00, 0xd2, 0xcc, 0xff}
	buttonLabel     = color.RGBA{0xf0, 0xf6, 0xf6, 0xff}
	buttonLabelDim  = color.RGBA{0x8a, 0x99, 0x9c, 0xff}
	statusLabel     = color.RGBA{0xb8, 0xc7, 0xca, 0xff}
)

func loadFace(size float64) (text.Face, error) {
	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, err
	}
	return &text.GoTextFace{Source: s, Size: size}, nil
}

func newPanelTheme(fontFace *text.Face) *widget.Theme {
	return &widget.Theme{
		PanelTheme: &widget.PanelParams{
			BackgroundImage: image.NewNineSliceColor(panelBackground),
		},
		ButtonTheme: &widget.ButtonParams{
			Image: &widget.ButtonImage{
				Idle:     image.NewNineSliceColor(buttonIdle),
				Hover:    image.NewNineSliceColor(buttonHover),
				Pressed:  image.NewNineSliceColor(buttonPressed),
				Disabled: image.NewNineSliceColor(panelBackground),
			},
			TextFace: fontFace,
			TextColor: &widget.ButtonTextColor{
				Idle:     buttonLabel,
				Hover:    buttonLabel,
				Pressed:  panelBackground,
				Disabled: buttonLabelDim,
			},
		},
	}
}
