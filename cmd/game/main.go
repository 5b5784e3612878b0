package main

import (
	"flag"
	"fmt"
	"io/fs"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/younwookim/dungeonmenu/internal/application/game"
	"github.com/younwookim/dungeonmenu/internal/application/newgame"
	"github.com/younwookim/dungeonmenu/internal/application/scene"
	dungeonscene "github.com/younwookim/dungeonmenu/internal/application/scene/dungeon"
	"github.com/younwookim/dungeonmenu/internal/application/scene/menu"
	"github.com/younwookim/dungeonmenu/internal/domain/dungeon"
	"github.com/younwookim/dungeonmenu/internal/infrastructure/api"
	"github.com/younwookim/dungeonmenu/internal/infrastructure/config"
	"github.com/younwookim/dungeonmenu/internal/infrastructure/logger"
	"github.com/younwookim/dungeonmenu/internal/infrastructure/session"
)

var (
	_ newgame.CatalogClient  = (*api.Client)(nil)
	_ newgame.CreationClient = (*api.Client)(nil)
	_ newgame.Preferences    = (*session.Store)(nil)
)

func main() {
	configDir := flag.String("config", "", "Directory with localisation.json and skin.yaml (default: embedded)")
	watch := flag.Bool("watch", false, "Reload menu files from -config when they change")
	flag.Parse()

	cfg, err := config.LoadClientConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zl, err := logger.New(logger.Config{
		Level:      cfg.LogLevel,
		Encoding:   cfg.LogEncoding,
		OutputPath: cfg.LogOutput,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if err := run(cfg, *configDir, *watch, zl); err != nil {
		zl.Fatal("Game exited with error", zap.Error(err))
	}
}

func run(cfg *config.ClientConfig, configDir string, watch bool, zl *zap.Logger) error {
	loader, err := newMenuLoader(configDir)
	if err != nil {
		return err
	}
	menuCfg, err := loader.LoadAll()
	if err != nil {
		return fmt.Errorf("failed to load menu config from %s: %w", loader.BasePath(), err)
	}
	zl.Info("Menu config loaded", zap.String("dir", loader.BasePath()), zap.Bool("embedded", configDir == ""))

	var reloader *config.Reloader
	if watch {
		if configDir == "" {
			return fmt.Errorf("-watch needs -config")
		}
		w, err := config.NewWatcher(loader.BasePath())
		if err != nil {
			return fmt.Errorf("failed to watch %s: %w", loader.BasePath(), err)
		}
		defer func() { _ = w.Close() }()
		reloader = config.NewReloader(loader, w, func(err error) {
			zl.Warn("Menu config reload failed", zap.Error(err))
		})
		zl.Info("Watching menu config", zap.String("dir", loader.BasePath()))
	}

	client, err := api.NewClient(cfg.APIBaseURL, cfg.APITimeout, zl)
	if err != nil {
		return err
	}
	store := session.NewStore(cfg.SessionFile, zl)

	// The dungeon scene reads the skin current at the time of the switch,
	// so a reload while the menu is shown carries over.
	var (
		handoff *newgame.SceneHandoff
		newMenu func() (scene.Scene, error)
	)
	handoff = newgame.NewSceneHandoff(func(inst *dungeon.Instance) scene.Scene {
		return dungeonscene.New(inst, dungeonscene.Options{
			Skin:    menuCfg.Skin.Dungeon,
			Text:    menuCfg.Localisation.Dungeon,
			ScreenW: cfg.ScreenWidth,
			ScreenH: cfg.ScreenHeight,
			Logger:  zl,
			Back: func() scene.Scene {
				m, err := newMenu()
				if err != nil {
					zl.Error("Failed to build menu", zap.Error(err))
					return nil
				}
				return m
			},
		})
	})
	newMenu = func() (scene.Scene, error) {
		m, err := menu.New(menu.Options{
			Config:      menuCfg,
			Reloader:    reloader,
			Catalog:     client,
			Creator:     client,
			Handoff:     handoff,
			Preferences: store,
			Timeout:     cfg.APITimeout,
			Logger:      zl,
		})
		if err != nil {
			return nil, err
		}
		m.OnConfigChange(func(c *config.MenuConfig) { menuCfg = c })
		return m, nil
	}

	first, err := newMenu()
	if err != nil {
		return fmt.Errorf("failed to build menu: %w", err)
	}

	g := game.New(first, cfg.ScreenWidth, cfg.ScreenHeight, zl)

	ebiten.SetWindowSize(cfg.ScreenWidth, cfg.ScreenHeight)
	ebiten.SetWindowTitle(menuCfg.Localisation.MainMenu.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	zl.Info("Starting game",
		zap.String("api", cfg.APIBaseURL),
		zap.Duration("api_timeout", cfg.APITimeout),
		zap.String("session_file", store.Path()))

	if err := ebiten.RunGame(g); err != nil {
		return err
	}
	return nil
}

// newMenuLoader reads menu files from dir, or from the embedded defaults
// when dir is empty.
func newMenuLoader(dir string) (*config.Loader, error) {
	if dir != "" {
		return config.NewLoader(dir), nil
	}
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, fmt.Errorf("failed to get config subfs: %w", err)
	}
	return config.NewFSLoader(fsys, "configs"), nil
}
