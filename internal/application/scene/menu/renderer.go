package menu

import (
	"sync"

	"github.com/younwookim/dungeonmenu/internal/application/newgame"
)

// promptRenderer receives flow callbacks on the flow goroutine and hands
// them to the game loop, which applies them to the widgets in Update.
type promptRenderer struct {
	mu     sync.Mutex
	view   *newgame.View
	closed bool
	err    error
}

var _ newgame.Renderer = (*promptRenderer)(nil)

// frameUpdate is what changed since the last take.
type frameUpdate struct {
	view   *newgame.View
	closed bool
	err    error
}

func (u frameUpdate) empty() bool {
	return u.view == nil && !u.closed && u.err == nil
}

func (r *promptRenderer) ShowPrompt(v newgame.View) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.view = &v
	r.closed = false
}

func (r *promptRenderer) ClosePrompt() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.view = nil
	r.closed = true
}

func (r *promptRenderer) ShowError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

// take returns and clears the pending update. Only the latest view survives.
func (r *promptRenderer) take() frameUpdate {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := frameUpdate{view: r.view, closed: r.closed, err: r.err}
	r.view, r.closed, r.err = nil, false, nil
	return u
}
