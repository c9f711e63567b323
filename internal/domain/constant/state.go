package constant

// ConversationState is the tagged union of per-user conversation states.
// StateIdle is both the initial state and the terminal state of every flow.
type ConversationState int

const (
	// StateIdle means no flow is in progress.
	StateIdle ConversationState = iota
	// StateAwaitingTitle waits for the title of a new reminder.
	StateAwaitingTitle
	// StateAwaitingTime waits for the time of a new reminder.
	StateAwaitingTime
	// StateAwaitingMessage waits for the message of a new reminder.
	StateAwaitingMessage
	// StateAwaitingEditSelection waits for a list index to edit.
	StateAwaitingEditSelection
	// StateAwaitingEditTitle waits for the replacement title.
	StateAwaitingEditTitle
	// StateAwaitingEditTime waits for the replacement time.
	StateAwaitingEditTime
	// StateAwaitingEditMessage waits for the replacement message.
	StateAwaitingEditMessage
	// StateAwaitingDeleteSelection waits for a list index to delete.
	StateAwaitingDeleteSelection
	// StateAwaitingShowSelection waits for a list index to display.
	StateAwaitingShowSelection
)

func (s ConversationState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingTitle:
		return "awaiting_title"
	case StateAwaitingTime:
		return "awaiting_time"
	case StateAwaitingMessage:
		return "awaiting_message"
	case StateAwaitingEditSelection:
		return "awaiting_edit_selection"
	case StateAwaitingEditTitle:
		return "awaiting_edit_title"
	case StateAwaitingEditTime:
		return "awaiting_edit_time"
	case StateAwaitingEditMessage:
		return "awaiting_edit_message"
	case StateAwaitingDeleteSelection:
		return "awaiting_delete_selection"
	case StateAwaitingShowSelection:
		return "awaiting_show_selection"
	default:
		return "unknown"
	}
}
