// Package newgame runs the New Game flow: fetch the dungeon and config
// catalogs, let the player pick one of each, ask the server to create the
// dungeon and hand it to the next scene.
package newgame

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/younwookim/dungeonmenu/internal/application/state"
	"github.com/younwookim/dungeonmenu/internal/domain/dungeon"
)

var (
	// ErrFlowActive is returned by Run while another flow is running.
	ErrFlowActive = errors.New("new game flow already running")
	// ErrCatalogUnavailable wraps catalog fetch failures.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)

// DefaultTimeout bounds each remote call when Config.Timeout is zero.
const DefaultTimeout = 10 * time.Second

const eventQueueSize = 16

// CatalogClient lists what the server can create.
type CatalogClient interface {
	ListDungeons(ctx context.Context) ([]dungeon.DungeonSummary, error)
	ListConfigs(ctx context.Context) ([]dungeon.ConfigSummary, error)
}

// CreationClient asks the server for a new dungeon. A nil instance with a
// nil error means the server declined without saying why.
type CreationClient interface {
	CreateGame(ctx context.Context, dungeonID, configID string) (*dungeon.Instance, error)
}

// Renderer displays the flow. Methods are called from the flow goroutine.
type Renderer interface {
	ShowPrompt(v View)
	ClosePrompt()
	ShowError(err error)
}

// Handoff passes a created dungeon to the next scene.
// Publish always happens before Transition.
type Handoff interface {
	Publish(inst *dungeon.Instance)
	Transition()
}

// Preferences remembers the last confirmed selection. Optional.
type Preferences interface {
	LastSelection() (dungeon.Selection, bool)
	SaveSelection(sel dungeon.Selection) error
}

// OutcomeKind tells how the prompt closed.
type OutcomeKind int

const (
	Cancelled OutcomeKind = iota
	Confirmed
)

func (k OutcomeKind) String() string {
	if k == Confirmed {
		return "Confirmed"
	}
	return "Cancelled"
}

// Outcome is the result of one flow.
type Outcome struct {
	Kind     OutcomeKind
	Instance *dungeon.Instance
}

// Config holds flow settings.
type Config struct {
	// Timeout bounds each remote call.
	Timeout  time.Duration
	Messages Messages
}

// Deps are the flow's collaborators. Preferences and Logger may be nil.
type Deps struct {
	Catalog     CatalogClient
	Creator     CreationClient
	Renderer    Renderer
	Handoff     Handoff
	Preferences Preferences
	Logger      *zap.Logger
}

// Flow orchestrates catalog fetch, the selection prompt, creation and handoff.
// At most one Run is active at a time.
type Flow struct {
	catalog  CatalogClient
	creator  CreationClient
	renderer Renderer
	handoff  Handoff
	prefs    Preferences
	logger   *zap.Logger
	timeout  time.Duration
	messages atomic.Pointer[Messages]

	events chan Event
	active atomic.Bool
	open   atomic.Bool
}

// NewFlow creates a flow.
func NewFlow(cfg Config, deps Deps) *Flow {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	f := &Flow{
		catalog:  deps.Catalog,
		creator:  deps.Creator,
		renderer: deps.Renderer,
		handoff:  deps.Handoff,
		prefs:    deps.Preferences,
		logger:   logger.Named("NewGameFlow"),
		timeout:  timeout,
		events:   make(chan Event, eventQueueSize),
	}
	f.SetMessages(cfg.Messages)
	return f
}

// SetMessages replaces the prompt texts. A running prompt keeps the texts
// it opened with.
func (f *Flow) SetMessages(m Messages) {
	m = m.withDefaults()
	f.messages.Store(&m)
}

// Active reports whether a flow is running.
func (f *Flow) Active() bool {
	return f.active.Load()
}

// Dispatch queues a UI event for the running flow. It never blocks and
// returns false when no prompt is open or the queue is full.
func (f *Flow) Dispatch(ev Event) bool {
	if !f.open.Load() {
		return false
	}
	select {
	case f.events <- ev:
		return true
	default:
		f.logger.Warn("Dropping prompt event, queue full", zap.Stringer("event", ev.Kind))
		return false
	}
}

type creationResult struct {
	instance *dungeon.Instance
	err      error
}

// Run executes one flow and blocks until the prompt closes. It returns
// ErrFlowActive if another flow is running, an error wrapping
// ErrCatalogUnavailable if the catalogs could not be fetched, and ctx.Err()
// if ctx ended before the player confirmed.
func (f *Flow) Run(ctx context.Context) (Outcome, error) {
	if !f.active.CompareAndSwap(false, true) {
		return Outcome{}, ErrFlowActive
	}
	defer f.active.Store(false)

	log := f.logger.With(zap.String("flow_id", uuid.NewString()))
	log.Info("New game flow started")

	dungeons, configs, err := f.fetchCatalogs(ctx)
	if ctxErr := ctx.Err(); ctxErr != nil {
		log.Info("New game flow aborted before prompt", zap.Error(ctxErr))
		return Outcome{}, ctxErr
	}
	if err != nil {
		log.Error("Failed to fetch catalogs", zap.Error(err))
		f.renderer.ShowError(err)
		return Outcome{}, err
	}
	log.Debug("Catalogs fetched", zap.Int("dungeons", len(dungeons)), zap.Int("configs", len(configs)))

	p := NewPrompt(dungeons, configs, *f.messages.Load())
	if f.prefs != nil {
		if last, ok := f.prefs.LastSelection(); ok {
			p.Preselect(last)
		}
	}

	f.drainEvents()
	f.open.Store(true)
	f.renderer.ShowPrompt(p.View())

	outcome, err := f.loop(ctx, log, p)
	f.open.Store(false)
	f.renderer.ClosePrompt()
	if err != nil {
		log.Info("New game flow aborted", zap.Error(err))
		return outcome, err
	}

	log.Info("Prompt closed", zap.Stringer("outcome", outcome.Kind))
	if outcome.Kind == Confirmed {
		f.remember(log, p.Selection())
		f.handoff.Publish(outcome.Instance)
		f.handoff.Transition()
	}
	return outcome, nil
}

func (f *Flow) loop(ctx context.Context, log *zap.Logger, p *Prompt) (Outcome, error) {
	results := make(chan creationResult, 1)
	done := ctx.Done()
	var ctxErr error

	for {
		select {
		case ev := <-f.events:
			if sel, start := f.apply(p, ev); start {
				log.Info("Creating dungeon", zap.String("dungeon", sel.DungeonID), zap.String("config", sel.ConfigID))
				go f.create(ctx, sel, results)
			}
		case res := <-results:
			p.Resolve(res.instance, res.err)
			switch {
			case res.err != nil:
				log.Warn("Dungeon creation failed", zap.Error(res.err))
			case res.instance == nil:
				log.Warn("Server returned no dungeon")
			}
			if ctxErr != nil && !p.State().IsClosed() {
				p.Abort()
			}
		case <-done:
			ctxErr = ctx.Err()
			done = nil
			if p.State() != state.PromptCreating {
				p.Abort()
			}
		}

		if outcome, closed := p.Outcome(); closed {
			if ctxErr != nil && outcome.Kind == Cancelled {
				return outcome, ctxErr
			}
			return outcome, nil
		}
		f.renderer.ShowPrompt(p.View())
	}
}

func (f *Flow) apply(p *Prompt, ev Event) (dungeon.Selection, bool) {
	switch ev.Kind {
	case EventSelectDungeon:
		p.SelectDungeon(ev.ID)
	case EventSelectConfig:
		p.SelectConfig(ev.ID)
	case EventSubmit:
		return p.Submit()
	case EventCancel:
		p.Cancel()
	}
	return dungeon.Selection{}, false
}

// create runs to completion even if the flow's context is cancelled;
// only the timeout bounds it. Client errors already name the operation.
func (f *Flow) create(ctx context.Context, sel dungeon.Selection, results chan<- creationResult) {
	cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), f.timeout)
	defer cancel()

	inst, err := f.creator.CreateGame(cctx, sel.DungeonID, sel.ConfigID)
	results <- creationResult{instance: inst, err: err}
}

func (f *Flow) fetchCatalogs(ctx context.Context) ([]dungeon.DungeonSummary, []dungeon.ConfigSummary, error) {
	var (
		dungeons []dungeon.DungeonSummary
		configs  []dungeon.ConfigSummary
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cctx, cancel := context.WithTimeout(gctx, f.timeout)
		defer cancel()
		var err error
		dungeons, err = f.catalog.ListDungeons(cctx)
		return err
	})
	g.Go(func() error {
		cctx, cancel := context.WithTimeout(gctx, f.timeout)
		defer cancel()
		var err error
		configs, err = f.catalog.ListConfigs(cctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}
	return dungeons, configs, nil
}

func (f *Flow) drainEvents() {
	for {
		select {
		case <-f.events:
		default:
			return
		}
	}
}

func (f *Flow) remember(log *zap.Logger, sel dungeon.Selection) {
	if f.prefs == nil {
		return
	}
	if err := f.prefs.SaveSelection(sel); err != nil {
		log.Warn("Failed to remember selection", zap.Error(err))
	}
}
