// Package dungeon provides the scene that shows a freshly created dungeon.
package dungeon

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"go.uber.org/zap"

	"github.com/younwookim/dungeonmenu/internal/application/scene"
	"github.com/younwookim/dungeonmenu/internal/application/system"
	domain "github.com/younwookim/dungeonmenu/internal/domain/dungeon"
	"github.com/younwookim/dungeonmenu/internal/infrastructure/config"
)

const panSpeed = 4

var (
	colorInteractable = color.RGBA{255, 255, 255, 200}
	colorHUDBG        = color.RGBA{0, 0, 0, 160}
)

// Options configure the scene.
type Options struct {
	Skin    config.DungeonSkin
	Text    config.DungeonText
	ScreenW int
	ScreenH int
	// Back builds the scene shown when the player leaves. Nil disables leaving.
	Back   func() scene.Scene
	Logger *zap.Logger
}

// Scene renders a dungeon instance received from the server.
type Scene struct {
	inst     *domain.Instance
	order    []domain.Entity
	skin     config.DungeonSkin
	text     config.DungeonText
	back     func() scene.Scene
	input    *system.InputSystem
	logger   *zap.Logger
	screenW  int
	screenH  int
	tileSize int
	camX     int
	camY     int
	showHUD  bool
}

// New creates the scene for inst. inst must not be nil.
func New(inst *domain.Instance, opts Options) *Scene {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	tileSize := opts.Skin.TileSize
	if tileSize <= 0 {
		tileSize = 16
	}
	s := &Scene{
		inst:     inst,
		order:    inst.DrawOrder(),
		skin:     opts.Skin,
		text:     opts.Text,
		back:     opts.Back,
		input:    system.NewInputSystem(),
		logger:   logger.Named("DungeonScene"),
		screenW:  opts.ScreenW,
		screenH:  opts.ScreenH,
		tileSize: tileSize,
		showHUD:  true,
	}
	s.camX, s.camY = Camera(inst, tileSize, opts.ScreenW, opts.ScreenH)
	return s
}

// Name implements scene.Named.
func (s *Scene) Name() string { return "dungeon" }

// Instance returns the dungeon this scene was built with.
func (s *Scene) Instance() *domain.Instance { return s.inst }

// Update implements scene.Scene.
func (s *Scene) Update(_ float64) (scene.Scene, error) {
	return s.handle(system.DungeonIntents(s.input.GetInput(), panSpeed)), nil
}

func (s *Scene) handle(intents []system.Intent) scene.Scene {
	for _, in := range intents {
		switch in := in.(type) {
		case system.BackIntent:
			if s.back != nil {
				return s.back()
			}
		case system.ToggleHUDIntent:
			s.showHUD = !s.showHUD
		case system.PanIntent:
			s.camX += in.DX
			s.camY += in.DY
		}
	}
	return nil
}

// Draw implements scene.Scene.
func (s *Scene) Draw(screen *ebiten.Image) {
	screen.Fill(s.skin.Background.RGBA())

	ts := float64(s.tileSize)
	for _, e := range s.order {
		x := float64(e.Position.X*s.tileSize - s.camX)
		y := float64(e.Position.Y*s.tileSize - s.camY)
		if x+ts < 0 || y+ts < 0 || x > float64(s.screenW) || y > float64(s.screenH) {
			continue
		}
		ebitenutil.DrawRect(screen, x+1, y+1, ts-2, ts-2, s.skin.EntityColor(e.Type))
		if e.IsInteractable {
			ebitenutil.DrawRect(screen, x+ts/2-2, y+ts/2-2, 4, 4, colorInteractable)
		}
	}

	if s.showHUD {
		s.drawHUD(screen)
	}
}

func (s *Scene) drawHUD(screen *ebiten.Image) {
	lines := HUDLines(s.inst, s.text)
	ebitenutil.DrawRect(screen, 0, 0, float64(s.screenW), float64(16*len(lines)+8), colorHUDBG)
	ebitenutil.DebugPrintAt(screen, strings.Join(lines, "\n"), 8, 4)
}

// OnEnter implements scene.Scene.
func (s *Scene) OnEnter() {
	s.logger.Info("Entered dungeon",
		zap.String("dungeon_id", s.inst.DungeonID),
		zap.String("dungeon_name", s.inst.DungeonName),
		zap.Int("entities", len(s.inst.Entities)))
}

// OnExit implements scene.Scene.
func (s *Scene) OnExit() {}

// Camera returns the top-left pixel of the view, centered on the player
// and clamped to the dungeon bounds. Dungeons smaller than the screen are
// centered.
func Camera(inst *domain.Instance, tileSize, screenW, screenH int) (int, int) {
	minX, minY, maxX, maxY, ok := inst.Bounds()
	if !ok {
		return 0, 0
	}
	worldX0, worldY0 := minX*tileSize, minY*tileSize
	worldW := (maxX - minX + 1) * tileSize
	worldH := (maxY - minY + 1) * tileSize

	centerX, centerY := worldX0+worldW/2, worldY0+worldH/2
	if p, found := inst.Player(); found {
		centerX = p.Position.X*tileSize + tileSize/2
		centerY = p.Position.Y*tileSize + tileSize/2
	}

	return clampAxis(centerX-screenW/2, worldX0, worldW, screenW),
		clampAxis(centerY-screenH/2, worldY0, worldH, screenH)
}

func clampAxis(cam, world0, worldSize, screenSize int) int {
	if worldSize <= screenSize {
		return world0 - (screenSize-worldSize)/2
	}
	if cam < world0 {
		return world0
	}
	if maxCam := world0 + worldSize - screenSize; cam > maxCam {
		return maxCam
	}
	return cam
}

// HUDLines returns the overlay text for inst.
func HUDLines(inst *domain.Instance, text config.DungeonText) []string {
	lines := []string{fmt.Sprintf("%s (%s)", inst.DungeonName, inst.DungeonID)}

	if inst.GoalsComplete() {
		lines = append(lines, orDefault(text.Complete, "All goals complete"))
	} else {
		lines = append(lines, fmt.Sprintf("%s: %s", orDefault(text.Goals, "Goals"), inst.Goals))
	}

	counts := make(map[string]int)
	var kinds []string
	for _, item := range inst.Inventory {
		if counts[item.Type] == 0 {
			kinds = append(kinds, item.Type)
		}
		counts[item.Type]++
	}
	parts := make([]string, 0, len(kinds))
	for _, k := range kinds {
		parts = append(parts, fmt.Sprintf("%s x%d", k, counts[k]))
	}
	inventory := "-"
	if len(parts) > 0 {
		inventory = strings.Join(parts, ", ")
	}
	lines = append(lines, fmt.Sprintf("%s: %s", orDefault(text.Inventory, "Inventory"), inventory))

	if len(inst.Buildables) > 0 {
		lines = append(lines, "Buildable: "+strings.Join(inst.Buildables, ", "))
	}
	if n := len(inst.Battles); n > 0 {
		lines = append(lines, fmt.Sprintf("Battles: %d", n))
	}
	lines = append(lines, orDefault(text.Back, "Esc: back to menu"))
	return lines
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
