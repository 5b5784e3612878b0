// Package scene defines the Scene interface for game screens.
//
// Each game screen (main menu, dungeon view) implements the Scene
// interface to handle its own update logic and rendering.
package scene

import "github.com/hajimehoshi/ebiten/v2"

// Scene represents a game screen (main menu, dungeon view, etc.)
//
// The game loop delegates Update and Draw calls to the current scene.
// Scene transitions are handled by returning a new Scene from Update.
// Data a scene needs from the previous one is passed to its constructor.
type Scene interface {
	// Update updates the scene state.
	// dt is the delta time in seconds (typically 1/60).
	// Returns the next scene if a transition is needed, nil to stay on current scene.
	// Returns an error to terminate the game; ebiten.Termination ends it cleanly.
	Update(dt float64) (next Scene, err error)

	// Draw renders the scene to the screen.
	Draw(screen *ebiten.Image)

	// OnEnter is called when entering this scene.
	OnEnter()

	// OnExit is called when leaving this scene.
	// Use this to stop background work the scene started.
	OnExit()
}

// Named is implemented by scenes that report a name for logging.
type Named interface {
	Name() string
}

// NameOf returns the scene's name, or "unnamed".
func NameOf(s Scene) string {
	if n, ok := s.(Named); ok {
		return n.Name()
	}
	return "unnamed"
}
