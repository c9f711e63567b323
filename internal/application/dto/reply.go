package dto

// Keyboard identifies which inline keyboard, if any, accompanies a reply.
// The conversation layer stays transport-agnostic: it names the keyboard and
// the Telegram handler builds the concrete markup.
type Keyboard int

const (
	// KeyboardNone sends the reply as plain text.
	KeyboardNone Keyboard = iota
	// KeyboardActions shows the Create/Delete/Show/Edit action row.
	KeyboardActions
	// KeyboardTimezones shows the 25 UTC offset choices.
	KeyboardTimezones
	// KeyboardBack shows a single button that cancels the active flow.
	KeyboardBack
)

// Reply is the outcome of one conversation step, ready to be delivered back
// to the user.
type Reply struct {
	Text     string
	Keyboard Keyboard
}
