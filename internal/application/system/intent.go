package system

// Intent represents an action a scene should perform
type Intent interface {
	isIntent()
}

// SubmitIntent confirms the open dialog
type SubmitIntent struct{}

func (SubmitIntent) isIntent() {}

// CancelIntent dismisses the open dialog
type CancelIntent struct{}

func (CancelIntent) isIntent() {}

// BackIntent leaves the current scene
type BackIntent struct{}

func (BackIntent) isIntent() {}

// ToggleHUDIntent shows or hides the overlay
type ToggleHUDIntent struct{}

func (ToggleHUDIntent) isIntent() {}

// PanIntent moves the camera
type PanIntent struct {
	DX, DY int // Pixels to move
}

func (PanIntent) isIntent() {}

// MenuIntents maps input to menu intents. Keys only act on an open dialog.
func MenuIntents(input InputState, dialogOpen bool) []Intent {
	if !dialogOpen {
		return nil
	}
	switch {
	case input.Confirm:
		return []Intent{SubmitIntent{}}
	case input.Back:
		return []Intent{CancelIntent{}}
	}
	return nil
}

// DungeonIntents maps input to dungeon view intents. speed is the pan
// distance per frame in pixels.
func DungeonIntents(input InputState, speed int) []Intent {
	var intents []Intent
	if input.Back {
		intents = append(intents, BackIntent{})
	}
	if input.ToggleHUD {
		intents = append(intents, ToggleHUDIntent{})
	}

	dx, dy := 0, 0
	if input.Left {
		dx -= speed
	}
	if input.Right {
		dx += speed
	}
	if input.Up {
		dy -= speed
	}
	if input.Down {
		dy += speed
	}
	if dx != 0 || dy != 0 {
		intents = append(intents, PanIntent{DX: dx, DY: dy})
	}
	return intents
}
