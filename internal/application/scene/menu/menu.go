// Package menu provides the main menu scene and its New Game dialog.
package menu

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/younwookim/dungeonmenu/internal/application/newgame"
	"github.com/younwookim/dungeonmenu/internal/application/scene"
	"github.com/younwookim/dungeonmenu/internal/application/system"
	"github.com/younwookim/dungeonmenu/internal/infrastructure/api"
	"github.com/younwookim/dungeonmenu/internal/infrastructure/config"
)

// Options configure the menu scene. Reloader, Preferences and Logger may be nil.
type Options struct {
	Config      *config.MenuConfig
	Reloader    *config.Reloader
	Catalog     newgame.CatalogClient
	Creator     newgame.CreationClient
	Handoff     *newgame.SceneHandoff
	Preferences newgame.Preferences
	Timeout     time.Duration
	Logger      *zap.Logger
}

// Menu is the main menu scene.
type Menu struct {
	cfg      *config.MenuConfig
	reloader *config.Reloader
	handoff  *newgame.SceneHandoff
	flow     *newgame.Flow
	renderer *promptRenderer
	input    *system.InputSystem
	logger   *zap.Logger

	ui         *ebitenui.UI
	newGameBtn *widget.Button
	dialog     *dialog
	notice     *notice

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	onConfig func(*config.MenuConfig)

	lastView     *newgame.View
	lastErr      error
	exitPressed  bool
	startPressed bool
}

// New creates the menu scene.
func New(opts Options) (*Menu, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Menu{
		cfg:      opts.Config,
		reloader: opts.Reloader,
		handoff:  opts.Handoff,
		renderer: &promptRenderer{},
		input:    system.NewInputSystem(),
		logger:   logger.Named("MenuScene"),
	}
	m.flow = newgame.NewFlow(
		newgame.Config{
			Timeout:  opts.Timeout,
			Messages: messagesFrom(opts.Config.Localisation),
		},
		newgame.Deps{
			Catalog:     opts.Catalog,
			Creator:     opts.Creator,
			Renderer:    m.renderer,
			Handoff:     opts.Handoff,
			Preferences: opts.Preferences,
			Logger:      logger,
		},
	)
	m.ctx, m.cancel = context.WithCancel(context.Background())

	if err := m.buildUI(); err != nil {
		return nil, err
	}
	return m, nil
}

func messagesFrom(loc *config.Localisation) newgame.Messages {
	v := loc.NewGame.Validation
	return newgame.Messages{
		MissingDungeon: v.MissingDungeon,
		MissingConfig:  v.MissingConfig,
		CreateFailed:   v.CreateFailed,
	}
}

// Name implements scene.Named.
func (m *Menu) Name() string { return "menu" }

func (m *Menu) buildUI() error {
	f, err := newFaces(m.cfg.Skin.MainMenu)
	if err != nil {
		return err
	}
	loc := m.cfg.Localisation
	skin := m.cfg.Skin

	face := f.body
	theme := newMenuTheme(&face, skin)
	ui := &ebitenui.UI{PrimaryTheme: theme}

	root := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(solidNineSlice(skin.MainMenu.Background.RGBA())),
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)

	textColor := skin.MainMenu.TextColor.RGBA()
	center := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	column := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(12),
		)),
		widget.ContainerOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
			HorizontalPosition: widget.AnchorLayoutPositionCenter,
			VerticalPosition:   widget.AnchorLayoutPositionCenter,
		})),
	)
	column.AddChild(widget.NewText(widget.TextOpts.Text(loc.MainMenu.Title, &f.title, textColor), widget.TextOpts.WidgetOpts(center)))
	column.AddChild(widget.NewText(widget.TextOpts.Text(loc.MainMenu.Subtitle1, &f.body, textColor), widget.TextOpts.WidgetOpts(center)))
	column.AddChild(widget.NewText(widget.TextOpts.Text(loc.MainMenu.Subtitle2, &f.body, textColor), widget.TextOpts.WidgetOpts(center)))

	// Click handlers run inside ui.Update on the loop goroutine.
	m.newGameBtn = newButton(theme, &f.body, loc.MainMenu.Buttons.NewGame, func() { m.startPressed = true })
	m.newGameBtn.GetWidget().LayoutData = widget.RowLayoutData{Position: widget.RowLayoutPositionCenter}
	exitBtn := newButton(theme, &f.body, loc.MainMenu.Buttons.QuitGame, func() { m.exitPressed = true })
	exitBtn.GetWidget().LayoutData = widget.RowLayoutData{Position: widget.RowLayoutPositionCenter}
	column.AddChild(m.newGameBtn)
	column.AddChild(exitBtn)

	m.dialog = newDialog(theme, f, m.cfg, m.dispatch)
	m.notice = newNotice(theme, f, skin.Dialog.Background.RGBA(), skin.Dialog.TextColor.RGBA(),
		skin.Dialog.ErrorColor.RGBA(), loc.Errors.Dismiss)

	root.AddChild(column)
	root.AddChild(m.notice.container)
	root.AddChild(m.dialog.overlay)
	ui.Container = root
	m.ui = ui

	if m.lastView != nil {
		m.dialog.apply(*m.lastView)
	}
	if m.lastErr != nil {
		m.showError(m.lastErr)
	}
	m.newGameBtn.GetWidget().Disabled = m.flow.Active()
	return nil
}

// dialogEvents turns keyboard intents into prompt events.
func dialogEvents(intents []system.Intent) []newgame.Event {
	var events []newgame.Event
	for _, in := range intents {
		switch in.(type) {
		case system.SubmitIntent:
			events = append(events, newgame.Submit())
		case system.CancelIntent:
			events = append(events, newgame.Cancel())
		}
	}
	return events
}

// OnConfigChange registers fn to be called with each reloaded config.
func (m *Menu) OnConfigChange(fn func(*config.MenuConfig)) {
	m.onConfig = fn
}

func (m *Menu) dispatch(ev newgame.Event) {
	if !m.flow.Dispatch(ev) {
		m.logger.Debug("Prompt event ignored", zap.Stringer("event", ev.Kind))
	}
}

// Update implements scene.Scene.
func (m *Menu) Update(_ float64) (scene.Scene, error) {
	if m.reloader != nil {
		if cfg, ok := m.reloader.Poll(); ok {
			m.logger.Info("Menu config reloaded")
			m.cfg = cfg
			m.flow.SetMessages(messagesFrom(cfg.Localisation))
			if err := m.buildUI(); err != nil {
				m.logger.Error("Failed to rebuild menu", zap.Error(err))
			}
			if m.onConfig != nil {
				m.onConfig(cfg)
			}
		}
	}

	m.applyRenderer()

	for _, ev := range dialogEvents(system.MenuIntents(m.input.GetInput(), m.dialog.visible)) {
		m.dispatch(ev)
	}

	m.ui.Update()

	if m.exitPressed {
		m.logger.Info(m.cfg.Localisation.OnExit.Title, zap.String("message", m.cfg.Localisation.OnExit.Message))
		return nil, ebiten.Termination
	}
	if m.startPressed {
		m.startPressed = false
		m.startFlow()
	}

	if next := m.handoff.Next(); next != nil {
		return next, nil
	}
	return nil, nil
}

func (m *Menu) applyRenderer() {
	// Active clears after the flow's last callback, so refresh every frame.
	m.newGameBtn.GetWidget().Disabled = m.flow.Active()

	u := m.renderer.take()
	if u.empty() {
		return
	}
	if u.err != nil {
		m.lastErr = u.err
		m.showError(u.err)
	}
	if u.closed {
		m.lastView = nil
		m.dialog.hide()
	}
	if u.view != nil {
		m.lastView = u.view
		m.dialog.apply(*u.view)
	}
}

// showError shows a flow failure. The flow reports only catalog failures
// this way; creation failures stay inside the dialog.
func (m *Menu) showError(err error) {
	text := m.cfg.Localisation.Errors
	m.notice.show(text.CatalogTitle, noticeMessage(text, err))
}

// noticeMessage words a catalog failure for the notice banner.
func noticeMessage(text config.ErrorText, err error) string {
	if text.NotFound != "" && api.IsStatus(err, http.StatusNotFound) {
		return text.NotFound
	}
	return err.Error()
}

// startFlow runs the New Game flow in the background. The flow guards
// against a second run itself.
func (m *Menu) startFlow() {
	if m.flow.Active() {
		return
	}
	m.lastErr = nil
	m.notice.hide()
	m.newGameBtn.GetWidget().Disabled = true

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		outcome, err := m.flow.Run(m.ctx)
		switch {
		case errors.Is(err, newgame.ErrFlowActive):
		case errors.Is(err, context.Canceled):
			m.logger.Debug("New game flow cancelled with the menu")
		case err != nil:
			m.logger.Warn("New game flow failed", zap.Error(err))
		default:
			m.logger.Info("New game flow finished", zap.Stringer("outcome", outcome.Kind))
		}
	}()
}

// Draw implements scene.Scene.
func (m *Menu) Draw(screen *ebiten.Image) {
	m.ui.Draw(screen)
}

// OnEnter implements scene.Scene.
func (m *Menu) OnEnter() {
	m.logger.Debug("Menu shown")
}

// OnExit implements scene.Scene. It cancels a running flow and waits for
// it; a creation request already sent still completes first.
func (m *Menu) OnExit() {
	m.cancel()
	m.wg.Wait()
}
