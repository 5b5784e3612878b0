package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMenuLoader_Embedded(t *testing.T) {
	loader, err := newMenuLoader("")
	require.NoError(t, err)

	cfg, err := loader.LoadAll()
	require.NoError(t, err)

	assert.Equal(t, "New Game", cfg.Localisation.MainMenu.Buttons.NewGame)
	assert.Equal(t, "You need to select a dungeon", cfg.Localisation.NewGame.Validation.MissingDungeon)
	assert.NotEmpty(t, cfg.Localisation.Errors.NotFound)
	assert.Positive(t, cfg.Skin.Dungeon.TileSize)
}

func TestNewMenuLoader_Dir(t *testing.T) {
	loader, err := newMenuLoader("configs")
	require.NoError(t, err)
	assert.Equal(t, "configs", loader.BasePath())

	_, err = loader.LoadAll()
	assert.NoError(t, err)
}

func TestNewMenuLoader_MissingDir(t *testing.T) {
	loader, err := newMenuLoader(t.TempDir())
	require.NoError(t, err)

	_, err = loader.LoadAll()
	assert.Error(t, err)
}
