package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeMenuFiles replaces the files by rename so a reload never sees a
// half-written file.
func writeMenuFiles(t *testing.T, dir, title string) {
	t.Helper()
	replace := func(name, data string) {
		tmp := filepath.Join(dir, name+".tmp")
		require.NoError(t, os.WriteFile(tmp, []byte(data), 0o644))
		require.NoError(t, os.Rename(tmp, filepath.Join(dir, name)))
	}
	replace(SkinFile, "dungeon:\n  tile_size: 8\n")
	replace(LocalisationFile, `{"main_menu": {"title": "`+title+`"}}`)
}

func TestWatcher_ReportsMenuFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, SkinFile), []byte("dialog: {}\n"), 0o644))

	select {
	case name := <-w.Events:
		assert.Equal(t, SkinFile, filepath.Base(name))
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for watcher event")
	}
}

func TestWatcher_CloseTwice(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())

	_, ok := <-w.Events
	assert.False(t, ok, "events channel is closed")
}

func TestNewWatcher_MissingDir(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestReloader_Poll(t *testing.T) {
	dir := t.TempDir()
	writeMenuFiles(t, dir, "Before")

	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	var errs []error
	r := NewReloader(NewLoader(dir), w, func(err error) { errs = append(errs, err) })

	_, changed := r.Poll()
	assert.False(t, changed, "nothing to reload yet")

	writeMenuFiles(t, dir, "After")

	var cfg *MenuConfig
	require.Eventually(t, func() bool {
		next, ok := r.Poll()
		if ok {
			cfg = next
		}
		return cfg != nil && cfg.Localisation.MainMenu.Title == "After"
	}, 2*time.Second, 20*time.Millisecond)

	assert.Equal(t, "After", cfg.Localisation.MainMenu.Title)
	assert.Equal(t, 8, cfg.Skin.Dungeon.TileSize)
	assert.Empty(t, errs)
}

func TestReloader_PollAfterClose(t *testing.T) {
	dir := t.TempDir()
	writeMenuFiles(t, dir, "Title")

	w, err := NewWatcher(dir)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r := NewReloader(NewLoader(dir), w, nil)
	_, changed := r.Poll()
	assert.False(t, changed)
}
