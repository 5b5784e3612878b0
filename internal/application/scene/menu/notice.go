package menu

import (
	"image/color"

	"github.com/ebitenui/ebitenui/widget"
)

// notice is a dismissable banner for flow errors.
type notice struct {
	container *widget.Container
	title     *widget.Text
	message   *widget.Text
	visible   bool
}

func newNotice(theme *widget.Theme, f *faces, bg, fg, accent color.Color, dismiss string) *notice {
	n := &notice{}

	n.container = widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(solidNineSlice(bg)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(6),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 10, Bottom: 10, Left: 16, Right: 16}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionEnd,
				StretchHorizontal:  true,
			}),
		),
	)
	n.container.GetWidget().Visibility = widget.Visibility_Hide

	n.title = widget.NewText(widget.TextOpts.Text("", &f.body, accent))
	n.message = widget.NewText(widget.TextOpts.Text("", &f.body, fg))
	n.container.AddChild(n.title)
	n.container.AddChild(n.message)
	n.container.AddChild(newButton(theme, &f.body, dismiss, n.hide))

	return n
}

func (n *notice) show(title, message string) {
	n.title.Label = title
	n.message.Label = message
	n.visible = true
	n.container.GetWidget().Visibility = widget.Visibility_Show
	n.container.RequestRelayout()
}

func (n *notice) hide() {
	n.visible = false
	n.container.GetWidget().Visibility = widget.Visibility_Hide
}
