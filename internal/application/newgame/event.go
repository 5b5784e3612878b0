package newgame

// EventKind identifies a player action on the prompt.
type EventKind int

const (
	EventSelectDungeon EventKind = iota
	EventSelectConfig
	EventSubmit
	EventCancel
)

func (k EventKind) String() string {
	switch k {
	case EventSelectDungeon:
		return "SelectDungeon"
	case EventSelectConfig:
		return "SelectConfig"
	case EventSubmit:
		return "Submit"
	case EventCancel:
		return "Cancel"
	default:
		return "Unknown"
	}
}

// Event is a player action dispatched from the UI into a running flow.
type Event struct {
	Kind EventKind
	// ID is the selected catalog id for selection events.
	ID string
}

func SelectDungeon(id string) Event { return Event{Kind: EventSelectDungeon, ID: id} }

func SelectConfig(id string) Event { return Event{Kind: EventSelectConfig, ID: id} }

func Submit() Event { return Event{Kind: EventSubmit} }

func Cancel() Event { return Event{Kind: EventCancel} }
