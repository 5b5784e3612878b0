package newgame

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/dungeonmenu/internal/application/state"
	"github.com/younwookim/dungeonmenu/internal/domain/dungeon"
)

func testDungeons() []dungeon.DungeonSummary {
	return []dungeon.DungeonSummary{{ID: "D1", Name: "D1"}, {ID: "D2", Name: "D2"}}
}

func testConfigs() []dungeon.ConfigSummary {
	return []dungeon.ConfigSummary{{ID: "C1", Name: "C1"}, {ID: "C2", Name: "C2"}}
}

func newTestPrompt() *Prompt {
	return NewPrompt(testDungeons(), testConfigs(), DefaultMessages())
}

func TestNewPrompt_SelectsFirstEntries(t *testing.T) {
	p := newTestPrompt()

	assert.Equal(t, state.PromptOpen, p.State())
	assert.Equal(t, dungeon.Selection{DungeonID: "D1", ConfigID: "C1"}, p.Selection())

	v := p.View()
	assert.Empty(t, v.Message)
	assert.False(t, v.Loading)
	assert.True(t, v.CanConfirm)
	assert.True(t, v.CanCancel)
	assert.Len(t, v.Dungeons, 2)
	assert.Len(t, v.Configs, 2)
}

func TestNewPrompt_EmptyCatalogs(t *testing.T) {
	p := NewPrompt(nil, nil, DefaultMessages())

	assert.Equal(t, dungeon.Selection{}, p.Selection())

	_, ok := p.Submit()
	assert.False(t, ok)
	assert.Equal(t, state.PromptRejected, p.State())
	assert.Equal(t, "You need to select a dungeon", p.View().Message)
}

func TestPrompt_Submit_MissingDungeon(t *testing.T) {
	// Dungeon is checked first whatever the config holds.
	configs := []string{"", "C1", "C2"}

	for _, configID := range configs {
		t.Run("config="+configID, func(t *testing.T) {
			p := newTestPrompt()
			require.True(t, p.SelectDungeon(""))
			require.True(t, p.SelectConfig(configID))

			sel, ok := p.Submit()
			assert.False(t, ok)
			assert.Equal(t, dungeon.Selection{}, sel)
			assert.Equal(t, state.PromptRejected, p.State())
			assert.Equal(t, "You need to select a dungeon", p.View().Message)
			assert.True(t, p.State().IsOpen(), "rejected submission keeps the prompt open")
		})
	}
}

func TestPrompt_Submit_MissingConfig(t *testing.T) {
	for _, dungeonID := range []string{"D1", "D2"} {
		t.Run("dungeon="+dungeonID, func(t *testing.T) {
			p := newTestPrompt()
			require.True(t, p.SelectDungeon(dungeonID))
			require.True(t, p.SelectConfig(""))

			_, ok := p.Submit()
			assert.False(t, ok)
			assert.Equal(t, state.PromptRejected, p.State())
			assert.Equal(t, "You need to select a config file", p.View().Message)
		})
	}
}

func TestPrompt_Submit_Complete(t *testing.T) {
	p := newTestPrompt()
	p.SelectDungeon("D2")
	p.SelectConfig("C1")

	sel, ok := p.Submit()
	require.True(t, ok)
	assert.Equal(t, dungeon.Selection{DungeonID: "D2", ConfigID: "C1"}, sel)
	assert.Equal(t, state.PromptCreating, p.State())

	v := p.View()
	assert.True(t, v.Loading)
	assert.False(t, v.CanConfirm)
	assert.False(t, v.CanCancel)
}

func TestPrompt_Submit_AfterRejectionClearsMessage(t *testing.T) {
	p := newTestPrompt()
	p.SelectConfig("")
	_, ok := p.Submit()
	require.False(t, ok)

	p.SelectConfig("C2")
	_, ok = p.Submit()
	require.True(t, ok)
	assert.Empty(t, p.View().Message)
}

func TestPrompt_NoDoubleSubmission(t *testing.T) {
	p := newTestPrompt()

	_, ok := p.Submit()
	require.True(t, ok)

	_, ok = p.Submit()
	assert.False(t, ok, "second submit while creating is a no-op")
	assert.Equal(t, state.PromptCreating, p.State())
}

func TestPrompt_SelectionIgnoredWhileCreating(t *testing.T) {
	p := newTestPrompt()
	_, ok := p.Submit()
	require.True(t, ok)

	assert.False(t, p.SelectDungeon("D2"))
	assert.False(t, p.SelectConfig("C2"))
	assert.Equal(t, dungeon.Selection{DungeonID: "D1", ConfigID: "C1"}, p.Selection())
}

func TestPrompt_UnknownIDsIgnored(t *testing.T) {
	p := newTestPrompt()

	assert.False(t, p.SelectDungeon("D9"))
	assert.False(t, p.SelectConfig("C9"))
	assert.Equal(t, dungeon.Selection{DungeonID: "D1", ConfigID: "C1"}, p.Selection())
}

func TestPrompt_Resolve(t *testing.T) {
	inst := &dungeon.Instance{DungeonID: "dungeon-1"}

	tests := []struct {
		name        string
		inst        *dungeon.Instance
		err         error
		wantState   state.PromptState
		wantMessage string
	}{
		{"created", inst, nil, state.PromptConfirmed, ""},
		{"falsy response stays open silently", nil, nil, state.PromptOpen, ""},
		{"transport error shows message", nil, errors.New("connection refused"), state.PromptRejected,
			"Could not create the dungeon: connection refused"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPrompt()
			_, ok := p.Submit()
			require.True(t, ok)

			p.Resolve(tt.inst, tt.err)
			assert.Equal(t, tt.wantState, p.State())
			assert.Equal(t, tt.wantMessage, p.View().Message)
			assert.False(t, p.View().Loading, "never stuck loading")
		})
	}
}

func TestPrompt_Resolve_FalsyAllowsRetry(t *testing.T) {
	p := newTestPrompt()
	_, ok := p.Submit()
	require.True(t, ok)
	p.Resolve(nil, nil)

	_, ok = p.Submit()
	assert.True(t, ok, "prompt accepts another submission after a falsy response")
}

func TestPrompt_Resolve_IgnoredWhenNotCreating(t *testing.T) {
	p := newTestPrompt()

	p.Resolve(&dungeon.Instance{}, nil)
	assert.Equal(t, state.PromptOpen, p.State())

	_, closed := p.Outcome()
	assert.False(t, closed)
}

func TestPrompt_Outcome(t *testing.T) {
	inst := &dungeon.Instance{DungeonID: "dungeon-1"}
	p := newTestPrompt()
	_, ok := p.Submit()
	require.True(t, ok)
	p.Resolve(inst, nil)

	out, closed := p.Outcome()
	require.True(t, closed)
	assert.Equal(t, Confirmed, out.Kind)
	assert.Same(t, inst, out.Instance)
	assert.False(t, p.View().CanConfirm)
}

func TestPrompt_Cancel(t *testing.T) {
	p := newTestPrompt()

	assert.True(t, p.Cancel())
	assert.Equal(t, state.PromptCancelled, p.State())

	out, closed := p.Outcome()
	require.True(t, closed)
	assert.Equal(t, Cancelled, out.Kind)
	assert.Nil(t, out.Instance)

	_, ok := p.Submit()
	assert.False(t, ok, "closed prompt ignores submit")
}

func TestPrompt_CancelFromRejected(t *testing.T) {
	p := newTestPrompt()
	p.SelectDungeon("")
	p.Submit()
	require.Equal(t, state.PromptRejected, p.State())

	assert.True(t, p.Cancel())
	assert.Equal(t, state.PromptCancelled, p.State())
}

func TestPrompt_CancelIgnoredWhileCreating(t *testing.T) {
	p := newTestPrompt()
	_, ok := p.Submit()
	require.True(t, ok)

	assert.False(t, p.Cancel())
	assert.Equal(t, state.PromptCreating, p.State())
}

func TestPrompt_Abort(t *testing.T) {
	p := newTestPrompt()
	_, ok := p.Submit()
	require.True(t, ok)

	p.Abort()
	assert.Equal(t, state.PromptCancelled, p.State())

	confirmed := newTestPrompt()
	confirmed.Submit()
	confirmed.Resolve(&dungeon.Instance{}, nil)
	confirmed.Abort()
	assert.Equal(t, state.PromptConfirmed, confirmed.State(), "abort leaves a closed prompt alone")
}

func TestPrompt_Preselect(t *testing.T) {
	p := newTestPrompt()

	p.Preselect(dungeon.Selection{DungeonID: "D2", ConfigID: "C9"})
	assert.Equal(t, dungeon.Selection{DungeonID: "D2", ConfigID: "C1"}, p.Selection())

	p.Preselect(dungeon.Selection{})
	assert.Equal(t, dungeon.Selection{DungeonID: "D2", ConfigID: "C1"}, p.Selection(), "empty preselect changes nothing")
}

func TestPrompt_CustomMessages(t *testing.T) {
	p := NewPrompt(testDungeons(), testConfigs(), Messages{MissingDungeon: "Pick a dungeon"})

	p.SelectDungeon("")
	p.Submit()
	assert.Equal(t, "Pick a dungeon", p.View().Message)

	p.SelectDungeon("D1")
	p.SelectConfig("")
	p.Submit()
	assert.Equal(t, "You need to select a config file", p.View().Message, "missing texts fall back to defaults")
}
