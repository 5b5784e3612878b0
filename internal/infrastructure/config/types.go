package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// MenuConfig holds everything the menu scene reads from disk.
type MenuConfig struct {
	Localisation *Localisation
	Skin         *Skin
}

// Localisation is localisation.json.
type Localisation struct {
	MainMenu MainMenuText `json:"main_menu"`
	NewGame  NewGameText  `json:"new_game"`
	OnExit   NoticeText   `json:"on_exit"`
	Errors   ErrorText    `json:"errors"`
	Dungeon  DungeonText  `json:"dungeon"`
}

type MainMenuText struct {
	Title     string      `json:"title"`
	Subtitle1 string      `json:"subtitle_1"`
	Subtitle2 string      `json:"subtitle_2"`
	Buttons   ButtonsText `json:"buttons"`
}

type ButtonsText struct {
	NewGame  string `json:"new_game"`
	QuitGame string `json:"quit_game"`
}

// NewGameText labels the selection dialog.
type NewGameText struct {
	Title        string         `json:"title"`
	DungeonLabel string         `json:"dungeon_label"`
	ConfigLabel  string         `json:"config_label"`
	Confirm      string         `json:"confirm"`
	Cancel       string         `json:"cancel"`
	Loading      string         `json:"loading"`
	Validation   ValidationText `json:"validation"`
}

type ValidationText struct {
	MissingDungeon string `json:"missing_dungeon"`
	MissingConfig  string `json:"missing_config"`
	CreateFailed   string `json:"create_failed"`
}

type NoticeText struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

type ErrorText struct {
	CatalogTitle string `json:"catalog_title"`
	// NotFound replaces the cause when the server has no catalog endpoint.
	NotFound string `json:"not_found"`
	Dismiss  string `json:"dismiss"`
}

type DungeonText struct {
	Goals     string `json:"goals"`
	Inventory string `json:"inventory"`
	Complete  string `json:"complete"`
	Back      string `json:"back"`
}

// Skin is skin.yaml.
type Skin struct {
	MainMenu MainMenuSkin `yaml:"main_menu"`
	Dialog   DialogSkin   `yaml:"dialog"`
	Dungeon  DungeonSkin  `yaml:"dungeon"`
}

type MainMenuSkin struct {
	Background  Color   `yaml:"background_color"`
	TextColor   Color   `yaml:"text_color"`
	TitleSize   float64 `yaml:"title_size"`
	TextSize    float64 `yaml:"text_size"`
	Button      Color   `yaml:"button_color"`
	ButtonHover Color   `yaml:"button_hover_color"`
}

type DialogSkin struct {
	Background Color `yaml:"background_color"`
	TextColor  Color `yaml:"text_color"`
	ErrorColor Color `yaml:"error_color"`
	Selected   Color `yaml:"selected_color"`
	Width      int   `yaml:"width"`
	ListHeight int   `yaml:"list_height"`
}

type DungeonSkin struct {
	Background Color            `yaml:"background_color"`
	TileSize   int              `yaml:"tile_size"`
	Entities   map[string]Color `yaml:"entities"`
	Fallback   Color            `yaml:"fallback_color"`
}

// Color is a hex color such as "#ffcc00" or "#ffcc0080".
type Color string

// RGBA parses the color. Invalid values fall back to opaque white.
func (c Color) RGBA() color.RGBA {
	rgba, err := ParseColor(string(c))
	if err != nil {
		return color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	return rgba
}

// ParseColor parses "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return color.RGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

// EntityColor returns the color for an entity type.
func (s DungeonSkin) EntityColor(kind string) color.RGBA {
	if c, ok := s.Entities[kind]; ok {
		return c.RGBA()
	}
	return s.Fallback.RGBA()
}
