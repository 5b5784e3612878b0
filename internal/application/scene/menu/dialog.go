package menu

import (
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/younwookim/dungeonmenu/internal/application/newgame"
	"github.com/younwookim/dungeonmenu/internal/domain/dungeon"
	"github.com/younwookim/dungeonmenu/internal/infrastructure/config"
)

const noneLabel = "-"

// listEntry is a row in a selection list. The empty id is the "nothing
// selected" row.
type listEntry struct {
	id    string
	label string
}

func dungeonEntries(ds []dungeon.DungeonSummary) []any {
	entries := make([]any, 0, len(ds)+1)
	entries = append(entries, listEntry{label: noneLabel})
	for _, d := range ds {
		entries = append(entries, listEntry{id: d.ID, label: d.Label()})
	}
	return entries
}

func configEntries(cs []dungeon.ConfigSummary) []any {
	entries := make([]any, 0, len(cs)+1)
	entries = append(entries, listEntry{label: noneLabel})
	for _, c := range cs {
		entries = append(entries, listEntry{id: c.ID, label: c.Label()})
	}
	return entries
}

func sameEntries(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func findEntry(entries []any, id string) (any, bool) {
	for _, e := range entries {
		if le, ok := e.(listEntry); ok && le.id == id {
			return e, true
		}
	}
	return nil, false
}

// dialog is the new game selection dialog.
type dialog struct {
	overlay  *widget.Container
	dungeons *widget.List
	configs  *widget.List
	message  *widget.Text
	loading  *widget.Text
	confirm  *widget.Button
	cancel   *widget.Button

	dungeonRows []any
	configRows  []any
	selection   dungeon.Selection
	loadingText string
	visible     bool
}

func newDialog(theme *widget.Theme, f *faces, cfg *config.MenuConfig, dispatch func(newgame.Event)) *dialog {
	loc := cfg.Localisation.NewGame
	skin := cfg.Skin.Dialog
	d := &dialog{loadingText: loc.Loading}

	width := skin.Width
	if width <= 0 {
		width = 400
	}
	listHeight := skin.ListHeight
	if listHeight <= 0 {
		listHeight = 100
	}

	d.overlay = widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
				StretchHorizontal:  true,
				StretchVertical:    true,
			}),
			widget.WidgetOpts.MinSize(1, 1),
		),
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(dim(cfg.Skin.MainMenu.Background.RGBA()))),
	)
	d.overlay.GetWidget().Visibility = widget.Visibility_Hide

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(solidNineSlice(skin.Background.RGBA())),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(8),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 16, Bottom: 16, Left: 20, Right: 20}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(width, 0),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
	)

	textColor := skin.TextColor.RGBA()
	labelColor := &widget.LabelColor{Idle: textColor, Disabled: dim(textColor)}

	panel.AddChild(widget.NewText(
		widget.TextOpts.Text(loc.Title, &f.title, textColor),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	))

	newList := func(onSelect func(id string)) *widget.List {
		l := widget.NewList(
			widget.ListOpts.Entries([]any{}),
			widget.ListOpts.EntryLabelFunc(func(e any) string {
				if le, ok := e.(listEntry); ok {
					return le.label
				}
				return ""
			}),
			widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
				if le, ok := args.Entry.(listEntry); ok {
					onSelect(le.id)
				}
			}),
		)
		l.GetWidget().LayoutData = widget.RowLayoutData{Stretch: true}
		l.GetWidget().MinHeight = listHeight
		return l
	}

	// Programmatic selections made in apply also fire the handler, so only
	// changes against the last rendered selection are dispatched.
	d.dungeons = newList(func(id string) {
		if id != d.selection.DungeonID {
			dispatch(newgame.SelectDungeon(id))
		}
	})
	d.configs = newList(func(id string) {
		if id != d.selection.ConfigID {
			dispatch(newgame.SelectConfig(id))
		}
	})

	panel.AddChild(widget.NewLabel(widget.LabelOpts.Text(loc.DungeonLabel, &f.body, labelColor)))
	panel.AddChild(d.dungeons)
	panel.AddChild(widget.NewLabel(widget.LabelOpts.Text(loc.ConfigLabel, &f.body, labelColor)))
	panel.AddChild(d.configs)

	d.message = widget.NewText(widget.TextOpts.Text("", &f.body, skin.ErrorColor.RGBA()))
	d.loading = widget.NewText(widget.TextOpts.Text("", &f.body, textColor))
	panel.AddChild(d.message)
	panel.AddChild(d.loading)

	buttons := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(8),
		)),
		widget.ContainerOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)
	d.confirm = newButton(theme, &f.body, loc.Confirm, func() { dispatch(newgame.Submit()) })
	d.cancel = newButton(theme, &f.body, loc.Cancel, func() { dispatch(newgame.Cancel()) })
	buttons.AddChild(d.confirm)
	buttons.AddChild(d.cancel)
	panel.AddChild(buttons)

	d.overlay.AddChild(panel)
	return d
}

func newButton(theme *widget.Theme, face *text.Face, label string, onClick func()) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.Image(theme.ButtonTheme.Image),
		widget.ButtonOpts.Text(label, face, theme.ButtonTheme.TextColor),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(120, 32)),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			onClick()
		}),
	)
}

// apply renders v.
func (d *dialog) apply(v newgame.View) {
	// Set before touching the lists so the selection handlers see it.
	d.selection = v.Selection

	if rows := dungeonEntries(v.Dungeons); !sameEntries(rows, d.dungeonRows) {
		d.dungeonRows = rows
		d.dungeons.SetEntries(rows)
	}
	if rows := configEntries(v.Configs); !sameEntries(rows, d.configRows) {
		d.configRows = rows
		d.configs.SetEntries(rows)
	}
	if e, ok := findEntry(d.dungeonRows, v.Selection.DungeonID); ok && d.dungeons.SelectedEntry() != e {
		d.dungeons.SetSelectedEntry(e)
	}
	if e, ok := findEntry(d.configRows, v.Selection.ConfigID); ok && d.configs.SelectedEntry() != e {
		d.configs.SetSelectedEntry(e)
	}

	d.message.Label = v.Message
	d.loading.Label = ""
	if v.Loading {
		d.loading.Label = d.loadingText
	}

	d.dungeons.GetWidget().Disabled = v.Loading
	d.configs.GetWidget().Disabled = v.Loading
	d.confirm.GetWidget().Disabled = !v.CanConfirm
	d.cancel.GetWidget().Disabled = !v.CanCancel

	d.show()
}

func (d *dialog) show() {
	d.visible = true
	d.overlay.GetWidget().Visibility = widget.Visibility_Show
	d.overlay.RequestRelayout()
}

func (d *dialog) hide() {
	d.visible = false
	d.overlay.GetWidget().Visibility = widget.Visibility_Hide
}
