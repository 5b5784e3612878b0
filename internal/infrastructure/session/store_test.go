package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/dungeonmenu/internal/domain/dungeon"
)

func TestStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")

	s := NewStore(path, nil)
	_, ok := s.LastSelection()
	assert.False(t, ok, "fresh store has no selection")

	sel := dungeon.Selection{DungeonID: "maze", ConfigID: "c_simple"}
	require.NoError(t, s.SaveSelection(sel))

	got, ok := s.LastSelection()
	require.True(t, ok)
	assert.Equal(t, sel, got)

	reopened := NewStore(path, nil)
	got, ok = reopened.LastSelection()
	require.True(t, ok)
	assert.Equal(t, sel, got)

	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file is renamed away")
}

func TestStore_SaveIncomplete(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "session.json"), nil)

	assert.Error(t, s.SaveSelection(dungeon.Selection{DungeonID: "maze"}))
	_, ok := s.LastSelection()
	assert.False(t, ok)
}

func TestStore_CorruptFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", "{{{"},
		{"wrong version", `{"version":"99","selection":{"dungeonId":"a","configId":"b"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "session.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			s := NewStore(path, nil)
			_, ok := s.LastSelection()
			assert.False(t, ok)

			require.NoError(t, s.SaveSelection(dungeon.Selection{DungeonID: "a", ConfigID: "b"}))
			data, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, "a", data.Selection.DungeonID)
			assert.NotEmpty(t, data.SavedAt)
		})
	}
}

func TestSave_UnwritableDir(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	err := Save(filepath.Join(blocker, "session.json"), &Data{Version: fileVersion})
	assert.Error(t, err)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
