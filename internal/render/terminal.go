package render

import (
	"github.com/gdamore/tcell/v2"
)

// Terminal owns the tcell screen lifecycle.
type Terminal struct {
	screen tcell.Screen
}

// NewTerminal allocates a terminal screen.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

// Init initializes the screen and enables mouse and focus reporting.
func (t *Terminal) Init() error {
	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnableMouse()
	t.screen.EnableFocus()
	return nil
}

// Shutdown restores the terminal.
func (t *Terminal) Shutdown() {
	t.screen.Fini()
}

// Screen returns the underlying tcell screen.
func (t *Terminal) Screen() tcell.Screen {
	return t.screen
}

// Size returns the screen size in cells.
func (t *Terminal) Size() (int, int) {
	return t.screen.Size()
}

// PollEvent blocks for the next terminal event.
func (t *Terminal) PollEvent() tcell.Event {
	return t.screen.PollEvent()
}

// Interrupt wakes a blocked PollEvent, used for shutdown.
func (t *Terminal) Interrupt() {
	t.screen.PostEvent(tcell.NewEventInterrupt(nil)) //nolint:errcheck
}
