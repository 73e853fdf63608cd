// Package ui builds the ebitenui side panel of the editor.
package ui

import (
	"fmt"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
)

// Panel is the button column left of the canvas.
type Panel struct {
	UI *ebitenui.UI

	status *widget.Text
	defBtn *widget.Button
}

// BuildPanel creates the panel with the "Add namespace" and "Add definition"
// buttons. width is the panel width in pixels.
func BuildPanel(width int, onAddNamespace, onAddDefinition func()) (*Panel, error) {
	ui := &ebitenui.UI{}

	face, err := loadFace(14)
	if err != nil {
		return nil, fmt.Errorf("ui: load font: %w", err)
	}
	fontFace := &face
	ui.PrimaryTheme = newPanelTheme(fontFace)
	theme := ui.PrimaryTheme

	column := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(width, 200),
		),
		widget.ContainerOpts.BackgroundImage(theme.PanelTheme.BackgroundImage),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(8),
				widget.RowLayoutOpts.Padding(&widget.Insets{Top: 8, Bottom: 8, Left: 8, Right: 8}),
			),
		),
	)

	stretch := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Stretch: true})

	nsBtn := widget.NewButton(
		widget.ButtonOpts.Image(theme.ButtonTheme.Image),
		widget.ButtonOpts.Text("Add namespace", fontFace, theme.ButtonTheme.TextColor),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(width-16, 32), stretch),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			if onAddNamespace != nil {
				onAddNamespace()
			}
		}),
	)
	defBtn := widget.NewButton(
		widget.ButtonOpts.Image(theme.ButtonTheme.Image),
		widget.ButtonOpts.Text("Add definition", fontFace, theme.ButtonTheme.TextColor),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(width-16, 32), stretch),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			if onAddDefinition != nil {
				onAddDefinition()
			}
		}),
	)
	status := widget.NewText(
		widget.TextOpts.Text("", fontFace, statusLabel),
		widget.TextOpts.WidgetOpts(stretch),
	)

	column.AddChild(nsBtn)
	column.AddChild(defBtn)
	column.AddChild(status)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	column.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionStart,
		VerticalPosition:   widget.AnchorLayoutPositionStart,
		StretchVertical:    true,
	}
	root.AddChild(column)
	ui.Container = root

	return &Panel{UI: ui, status: status, defBtn: defBtn}, nil
}

// SetPlacing updates the definition button while a placement is pending.
func (p *Panel) SetPlacing(placing bool) {
	if p == nil || p.defBtn == nil {
		return
	}
	label := "Add definition"
	if placing {
		label = "Click a shape..."
	}
	if t := p.defBtn.Text(); t != nil {
		t.Label = label
	}
}

// SetStatus shows the zoom level and shape count.
func (p *Panel) SetStatus(scale float64, shapes int) {
	if p == nil || p.status == nil {
		return
	}
	p.status.Label = fmt.Sprintf("Zoom %.0f%%\nShapes %d", scale*100, shapes)
}
