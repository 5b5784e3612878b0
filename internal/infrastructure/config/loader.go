package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	LocalisationFile = "localisation.json"
	SkinFile         = "skin.yaml"
)

// Loader loads menu configuration using fs.FS
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a loader over a directory
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// BasePath is the directory the loader reads from, if any.
func (l *Loader) BasePath() string {
	return l.basePath
}

// LoadLocalisation loads localisation.json
func (l *Loader) LoadLocalisation() (*Localisation, error) {
	data, err := fs.ReadFile(l.fsys, LocalisationFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", LocalisationFile, err)
	}

	var loc Localisation
	if err := json.Unmarshal(data, &loc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", LocalisationFile, err)
	}

	return &loc, nil
}

// LoadSkin loads skin.yaml
func (l *Loader) LoadSkin() (*Skin, error) {
	data, err := fs.ReadFile(l.fsys, SkinFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", SkinFile, err)
	}

	var skin Skin
	if err := yaml.Unmarshal(data, &skin); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", SkinFile, err)
	}
	if skin.Dungeon.TileSize <= 0 {
		skin.Dungeon.TileSize = 16
	}

	return &skin, nil
}

// LoadAll loads localisation and skin
func (l *Loader) LoadAll() (*MenuConfig, error) {
	loc, err := l.LoadLocalisation()
	if err != nil {
		return nil, err
	}

	skin, err := l.LoadSkin()
	if err != nil {
		return nil, err
	}

	return &MenuConfig{
		Localisation: loc,
		Skin:         skin,
	}, nil
}
