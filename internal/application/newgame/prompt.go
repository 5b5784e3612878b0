package newgame

import (
	"fmt"

	"github.com/younwookim/dungeonmenu/internal/application/state"
	"github.com/younwookim/dungeonmenu/internal/domain/dungeon"
)

// Messages are the player-facing texts shown in the dialog's message slot.
type Messages struct {
	MissingDungeon string
	MissingConfig  string
	CreateFailed   string
}

// DefaultMessages returns the built-in English messages.
func DefaultMessages() Messages {
	return Messages{
		MissingDungeon: "You need to select a dungeon",
		MissingConfig:  "You need to select a config file",
		CreateFailed:   "Could not create the dungeon",
	}
}

func (m Messages) withDefaults() Messages {
	def := DefaultMessages()
	if m.MissingDungeon == "" {
		m.MissingDungeon = def.MissingDungeon
	}
	if m.MissingConfig == "" {
		m.MissingConfig = def.MissingConfig
	}
	if m.CreateFailed == "" {
		m.CreateFailed = def.CreateFailed
	}
	return m
}

// View is a snapshot of the prompt for rendering.
type View struct {
	State     state.PromptState
	Dungeons  []dungeon.DungeonSummary
	Configs   []dungeon.ConfigSummary
	Selection dungeon.Selection
	Message   string
	Loading   bool

	CanConfirm bool
	CanCancel  bool
}

// Prompt is the new game selection dialog as a state machine.
// It performs no I/O: Submit tells the caller when to issue the creation
// request and Resolve feeds the result back.
type Prompt struct {
	dungeons  []dungeon.DungeonSummary
	configs   []dungeon.ConfigSummary
	selection dungeon.Selection
	state     state.PromptState
	message   string
	instance  *dungeon.Instance
	messages  Messages
}

// NewPrompt opens a prompt over the two catalogs. The first entry of each
// catalog starts selected, like a single-select list.
func NewPrompt(dungeons []dungeon.DungeonSummary, configs []dungeon.ConfigSummary, msgs Messages) *Prompt {
	p := &Prompt{
		dungeons: dungeons,
		configs:  configs,
		state:    state.PromptOpen,
		messages: msgs.withDefaults(),
	}
	if len(dungeons) > 0 {
		p.selection.DungeonID = dungeons[0].ID
	}
	if len(configs) > 0 {
		p.selection.ConfigID = configs[0].ID
	}
	return p
}

// Preselect applies a remembered selection. Ids missing from the catalogs are skipped.
func (p *Prompt) Preselect(sel dungeon.Selection) {
	if sel.DungeonID != "" {
		p.SelectDungeon(sel.DungeonID)
	}
	if sel.ConfigID != "" {
		p.SelectConfig(sel.ConfigID)
	}
}

func (p *Prompt) acceptsInput() bool {
	return p.state == state.PromptOpen || p.state == state.PromptRejected
}

// SelectDungeon changes the dungeon selection. An empty id clears it.
// Returns false when the event was ignored.
func (p *Prompt) SelectDungeon(id string) bool {
	if !p.acceptsInput() {
		return false
	}
	if id != "" && !dungeon.ContainsDungeon(p.dungeons, id) {
		return false
	}
	p.selection.DungeonID = id
	return true
}

// SelectConfig changes the config selection. An empty id clears it.
// Returns false when the event was ignored.
func (p *Prompt) SelectConfig(id string) bool {
	if !p.acceptsInput() {
		return false
	}
	if id != "" && !dungeon.ContainsConfig(p.configs, id) {
		return false
	}
	p.selection.ConfigID = id
	return true
}

// Submit validates the current selection. When it returns true the prompt
// is in PromptCreating and the caller must issue exactly one creation
// request for the returned selection, then call Resolve.
func (p *Prompt) Submit() (dungeon.Selection, bool) {
	if !p.acceptsInput() {
		return dungeon.Selection{}, false
	}
	// Dungeon is checked first; with both missing only its message shows.
	if p.selection.DungeonID == "" {
		p.reject(p.messages.MissingDungeon)
		return dungeon.Selection{}, false
	}
	if p.selection.ConfigID == "" {
		p.reject(p.messages.MissingConfig)
		return dungeon.Selection{}, false
	}
	p.state = state.PromptCreating
	p.message = ""
	return p.selection, true
}

func (p *Prompt) reject(msg string) {
	p.state = state.PromptRejected
	p.message = msg
}

// Resolve applies the creation result. Only valid while creating.
//
// A nil instance without an error leaves the prompt open with no message.
// An error re-enables the prompt and shows CreateFailed with the cause.
func (p *Prompt) Resolve(inst *dungeon.Instance, err error) {
	if p.state != state.PromptCreating {
		return
	}
	switch {
	case err != nil:
		p.reject(fmt.Sprintf("%s: %v", p.messages.CreateFailed, err))
	case inst == nil:
		p.state = state.PromptOpen
		p.message = ""
	default:
		p.state = state.PromptConfirmed
		p.instance = inst
		p.message = ""
	}
}

// Cancel closes the prompt. Ignored while a creation request is in flight.
func (p *Prompt) Cancel() bool {
	if !p.acceptsInput() {
		return false
	}
	p.state = state.PromptCancelled
	p.message = ""
	return true
}

// Abort closes the prompt as cancelled regardless of its state.
// Used when the flow is torn down after any pending request finished.
func (p *Prompt) Abort() {
	if p.state.IsClosed() {
		return
	}
	p.state = state.PromptCancelled
	p.message = ""
}

// State returns the current state.
func (p *Prompt) State() state.PromptState { return p.state }

// Selection returns the current selection.
func (p *Prompt) Selection() dungeon.Selection { return p.selection }

// Outcome returns the terminal outcome once the prompt is closed.
func (p *Prompt) Outcome() (Outcome, bool) {
	switch p.state {
	case state.PromptConfirmed:
		return Outcome{Kind: Confirmed, Instance: p.instance}, true
	case state.PromptCancelled:
		return Outcome{Kind: Cancelled}, true
	default:
		return Outcome{}, false
	}
}

// View returns a rendering snapshot.
func (p *Prompt) View() View {
	loading := p.state == state.PromptCreating
	return View{
		State:      p.state,
		Dungeons:   p.dungeons,
		Configs:    p.configs,
		Selection:  p.selection,
		Message:    p.message,
		Loading:    loading,
		CanConfirm: p.acceptsInput(),
		CanCancel:  p.acceptsInput(),
	}
}
