package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/afrolingo/internal/ui/layout"
)

// Screen is one page of the terminal app.
type Screen interface {
	// Init returns an initial command when the screen is pushed.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is implemented by screens with custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider is implemented by screens that show a status (hearts, XP)
// on the right of the header.
type StatusProvider interface {
	Status() string
}
