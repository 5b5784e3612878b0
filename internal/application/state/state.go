package state

// PromptState is the state of the new game selection dialog
type PromptState int

const (
	// PromptOpen: dialog shown, no rejected submission pending
	PromptOpen PromptState = iota
	// PromptRejected: dialog shown with a validation message
	PromptRejected
	// PromptCreating: creation request in flight, input disabled
	PromptCreating
	// PromptConfirmed: closed with a created dungeon
	PromptConfirmed
	// PromptCancelled: closed by the player
	PromptCancelled
)

// String returns the string representation of the prompt state
func (s PromptState) String() string {
	switch s {
	case PromptOpen:
		return "Open"
	case PromptRejected:
		return "Rejected"
	case PromptCreating:
		return "Creating"
	case PromptConfirmed:
		return "Confirmed"
	case PromptCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// IsOpen reports whether the dialog is still shown
func (s PromptState) IsOpen() bool {
	return s == PromptOpen || s == PromptRejected || s == PromptCreating
}

// IsClosed reports whether the dialog reached a terminal state
func (s PromptState) IsClosed() bool {
	return s == PromptConfirmed || s == PromptCancelled
}
