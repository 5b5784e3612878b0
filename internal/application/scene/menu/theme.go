package menu

import (
	"bytes"
	"image/color"
	"sync"

	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/younwookim/dungeonmenu/internal/infrastructure/config"
)

const (
	defaultTitleSize = 28
	defaultTextSize  = 14
)

var fontSource = sync.OnceValues(func() (*text.GoTextFaceSource, error) {
	return text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
})

// faces holds the font faces used by the menu widgets.
type faces struct {
	title text.Face
	body  text.Face
}

func newFaces(skin config.MainMenuSkin) (*faces, error) {
	src, err := fontSource()
	if err != nil {
		return nil, err
	}
	titleSize := skin.TitleSize
	if titleSize <= 0 {
		titleSize = defaultTitleSize
	}
	bodySize := skin.TextSize
	if bodySize <= 0 {
		bodySize = defaultTextSize
	}
	return &faces{
		title: &text.GoTextFace{Source: src, Size: titleSize},
		body:  &text.GoTextFace{Source: src, Size: bodySize},
	}, nil
}

func solidNineSlice(c color.Color) *image.NineSlice {
	return image.NewNineSliceColor(c)
}

// dim darkens c for disabled widgets.
func dim(c color.RGBA) color.RGBA {
	return color.RGBA{R: c.R / 2, G: c.G / 2, B: c.B / 2, A: c.A}
}

func newMenuTheme(face *text.Face, skin *config.Skin) *widget.Theme {
	textColor := skin.MainMenu.TextColor.RGBA()
	button := skin.MainMenu.Button.RGBA()
	selected := skin.Dialog.Selected.RGBA()
	listBG := skin.Dialog.Background.RGBA()

	return &widget.Theme{
		ListTheme: &widget.ListParams{
			EntryFace: face,
			EntryColor: &widget.ListEntryColor{
				Unselected:          textColor,
				Selected:            textColor,
				DisabledUnselected:  dim(textColor),
				DisabledSelected:    dim(textColor),
				SelectingBackground: dim(selected),
				SelectedBackground:  selected,
			},
			ScrollContainerImage: &widget.ScrollContainerImage{
				Idle: solidNineSlice(listBG),
				Mask: solidNineSlice(listBG),
			},
		},
		ButtonTheme: &widget.ButtonParams{
			Image: &widget.ButtonImage{
				Idle:     solidNineSlice(button),
				Hover:    solidNineSlice(skin.MainMenu.ButtonHover.RGBA()),
				Pressed:  solidNineSlice(dim(button)),
				Disabled: solidNineSlice(dim(button)),
			},
			TextFace: face,
			TextColor: &widget.ButtonTextColor{
				Idle:     textColor,
				Disabled: dim(textColor),
			},
		},
	}
}
