package newgame

import (
	"sync"

	"github.com/younwookim/dungeonmenu/internal/application/scene"
	"github.com/younwookim/dungeonmenu/internal/domain/dungeon"
)

// SceneFactory builds the scene that receives a created dungeon.
type SceneFactory func(inst *dungeon.Instance) scene.Scene

// SceneHandoff holds the published dungeon until the menu scene picks up
// the transition. The next scene gets the dungeon through its constructor.
type SceneHandoff struct {
	mu      sync.Mutex
	build   SceneFactory
	slot    *dungeon.Instance
	pending bool
}

// NewSceneHandoff creates a handoff that builds the next scene with build.
func NewSceneHandoff(build SceneFactory) *SceneHandoff {
	return &SceneHandoff{build: build}
}

// Publish stores inst, replacing any earlier dungeon.
func (h *SceneHandoff) Publish(inst *dungeon.Instance) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.slot = inst
}

// Transition requests a switch to the next scene. Without a published
// dungeon it does nothing.
func (h *SceneHandoff) Transition() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.slot == nil {
		return
	}
	h.pending = true
}

// Next returns the next scene once per requested transition, nil otherwise.
// Called from the game loop, so the scene is built on the loop goroutine.
func (h *SceneHandoff) Next() scene.Scene {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.pending {
		return nil
	}
	h.pending = false
	return h.build(h.slot)
}
